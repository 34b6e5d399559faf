// Package libdiff computes textual diffs between document trees.
//
// Trees are rendered to their canonical text form and diffed at the
// text level; the main consumer is the resolve -d subcommand, which
// shows what reference resolution changed in a document.
package libdiff
