package libdiff

import (
	"github.com/signadot/ydoc-format/go-ydoc/encode"
	"github.com/signadot/ydoc-format/go-ydoc/tree"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders both trees and returns the semantic text diff between
// them, colorized for terminals.
func Diff(from, to *tree.Tree) (string, error) {
	a, err := encode.String(from, from.Root())
	if err != nil {
		return "", err
	}
	b, err := encode.String(to, to.Root())
	if err != nil {
		return "", err
	}
	return DiffStrings(a, b), nil
}

// DiffStrings diffs two rendered documents.
func DiffStrings(a, b string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

// Equal reports whether two trees render to the same text.
func Equal(from, to *tree.Tree) (bool, error) {
	a, err := encode.String(from, from.Root())
	if err != nil {
		return false, err
	}
	b, err := encode.String(to, to.Root())
	if err != nil {
		return false, err
	}
	return a == b, nil
}
