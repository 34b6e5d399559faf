// Package ydoc works with anchored document trees: YAML-style
// documents whose anchors and aliases are resolved into plain trees,
// then read and written through a typed, location-aware access layer.
//
// The subpackages divide the work:
//
//   - parse: text to tree.Tree, positions retained
//   - tree: the arena tree and reference resolution
//   - encode: tree back to text, optionally colorized
//   - doc: typed readers and writers over resolved trees
//
// This package re-exports the common entry points so that casual use
// needs a single import.
package ydoc

import (
	"github.com/signadot/ydoc-format/go-ydoc/doc"
	"github.com/signadot/ydoc-format/go-ydoc/parse"
)

// Parse parses d, resolves references, and returns a typed root
// reader. source names the document in error locations.
func Parse(d []byte, source string, opts ...parse.ParseOption) (*doc.RootReader, error) {
	return doc.Parse(d, source, opts...)
}

// ParseString parses an in-memory document without retaining
// positions.
func ParseString(s, description string) (*doc.RootReader, error) {
	return doc.ParseString(s, description)
}

// Load parses the document at path.
func Load(path string) (*doc.RootReader, error) {
	return doc.LoadFile(path)
}

// LoadHeader parses only the leading document of the file at path.
func LoadHeader(path string) (*doc.RootReader, error) {
	return doc.LoadFileHeader(path)
}

// NewWriter returns a writer over a fresh document tree.
func NewWriter() *doc.RootWriter {
	return doc.NewRootWriter()
}
