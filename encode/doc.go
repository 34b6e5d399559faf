// Package encode renders document trees to YAML text.
//
// The emitter honors the tree's shape and style flags: maps and
// sequences in block style by default, flow style where the Flow flag
// is set, double quoting where the Quoted flag is set or the scalar
// text requires it, and tags where present. It defines no grammar of
// its own beyond what those flags demand.
package encode
