package doc

import (
	"fmt"
	"os"

	"github.com/signadot/ydoc-format/go-ydoc/encode"
	"github.com/signadot/ydoc-format/go-ydoc/parse"
	"github.com/signadot/ydoc-format/go-ydoc/tree"
)

// Reader is a read-only view over one node of a document tree. The
// zero Reader is invalid. Readers are cheap values; copying one never
// copies tree data. An optional key index, built by WithIndex, is
// private to the readers derived from that call and goes stale if the
// underlying node's children change.
type Reader struct {
	root  *RootReader
	id    tree.ID
	index map[string]tree.ID
}

// RootReader owns a parsed, reference-resolved tree and hands out
// Readers into it. Readers must not outlive their RootReader's tree.
type RootReader struct {
	Reader
	tree *tree.Tree
}

// NewRootReader wraps an existing tree. The tree is used as-is; run
// tree.ResolveRefs first if it may still carry anchors or aliases.
func NewRootReader(t *tree.Tree) *RootReader {
	rr := &RootReader{tree: t}
	rr.Reader = Reader{root: rr, id: t.Root()}
	return rr
}

// Parse parses d, resolves references, and returns a root reader.
// source names the document in error locations.
func Parse(d []byte, source string, opts ...parse.ParseOption) (*RootReader, error) {
	pOpts := append([]parse.ParseOption{parse.Source(source)}, opts...)
	t, err := parse.Parse(d, pOpts...)
	if err != nil {
		return nil, err
	}
	if err := t.ResolveRefs(); err != nil {
		return nil, err
	}
	return NewRootReader(t), nil
}

// ParseString parses an in-memory document. Positions are not
// retained; errors will omit locations. description names the
// document in the errors that remain.
func ParseString(s, description string) (*RootReader, error) {
	return Parse([]byte(s), description, parse.Positions(false))
}

// LoadFile parses the document at path with positions retained.
func LoadFile(path string) (*RootReader, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	return Parse(d, path)
}

// LoadFileHeader parses only the leading document of the file at
// path, stopping at the first document separator.
func LoadFileHeader(path string) (*RootReader, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	return Parse(d, path, parse.HeaderOnly())
}

func (r Reader) tree() *tree.Tree {
	if r.root == nil {
		return nil
	}
	return r.root.tree
}

// IsValid reports whether the reader addresses a node. Invalid
// readers are safe to navigate from; all lookups yield further
// invalid readers.
func (r Reader) IsValid() bool {
	return r.root != nil && r.id != tree.None
}

func (r Reader) invalid() Reader {
	return Reader{root: r.root, id: tree.None}
}

// WithIndex returns a copy of this map view with a key index built
// over its direct children, making Child O(1) amortized after one
// O(children) pass. The index is a snapshot: it must not be relied
// upon after the node's children change. Non-map and invalid readers
// are returned unchanged.
func (r Reader) WithIndex() Reader {
	t := r.tree()
	if !r.IsValid() || !t.IsMap(r.id) {
		return r
	}
	idx := make(map[string]tree.ID, t.NumChildren(r.id))
	for c := t.FirstChild(r.id); c != tree.None; c = t.NextSibling(c) {
		if t.HasKey(c) {
			idx[t.Key(c)] = c
		}
	}
	return Reader{root: r.root, id: r.id, index: idx}
}

// Child returns the child with the given key, or an invalid reader
// if this is not a map view or no such child exists.
func (r Reader) Child(key string) Reader {
	if !r.IsValid() {
		return r.invalid()
	}
	if r.index != nil {
		if id, ok := r.index[key]; ok {
			return Reader{root: r.root, id: id}
		}
		return r.invalid()
	}
	t := r.tree()
	if !t.IsMap(r.id) {
		return r.invalid()
	}
	return Reader{root: r.root, id: t.FindChild(r.id, key)}
}

// At returns the i-th child, or an invalid reader.
func (r Reader) At(i int) Reader {
	if !r.IsValid() || i < 0 {
		return r.invalid()
	}
	return Reader{root: r.root, id: r.tree().Child(r.id, i)}
}

// ChildCount returns the number of direct children. O(children),
// O(1) on an indexed view.
func (r Reader) ChildCount() int {
	if !r.IsValid() {
		return 0
	}
	if r.index != nil {
		return len(r.index)
	}
	return r.tree().NumChildren(r.id)
}

// Children returns readers over the direct children in document order.
func (r Reader) Children() []Reader {
	if !r.IsValid() {
		return nil
	}
	t := r.tree()
	res := make([]Reader, 0, t.NumChildren(r.id))
	for c := t.FirstChild(r.id); c != tree.None; c = t.NextSibling(c) {
		res = append(res, Reader{root: r.root, id: c})
	}
	return res
}

func (r Reader) IsMap() bool {
	return r.IsValid() && r.tree().IsMap(r.id)
}

func (r Reader) IsSeq() bool {
	return r.IsValid() && r.tree().IsSeq(r.id)
}

func (r Reader) HasVal() bool {
	return r.IsValid() && r.tree().HasVal(r.id)
}

// HasNullVal reports whether the node holds an explicit null (or
// empty) plain scalar. Quoted empty strings are not null.
func (r Reader) HasNullVal() bool {
	if !r.HasVal() {
		return false
	}
	t := r.tree()
	if t.Flags(r.id)&tree.Quoted != 0 {
		return false
	}
	switch t.Val(r.id) {
	case "", "~", "null", "Null", "NULL":
		return true
	}
	return false
}

func (r Reader) HasKey() bool {
	return r.IsValid() && r.tree().HasKey(r.id)
}

// Key returns the node's raw key text, or "".
func (r Reader) Key() string {
	if !r.IsValid() {
		return ""
	}
	return r.tree().Key(r.id)
}

// Val returns the node's raw scalar text, or "".
func (r Reader) Val() string {
	if !r.IsValid() {
		return ""
	}
	return r.tree().Val(r.id)
}

func (r Reader) HasTag() bool {
	return r.IsValid() && r.tree().Tag(r.id) != ""
}

// HasTagNamed reports whether the node carries exactly the given tag.
func (r Reader) HasTagNamed(name string) bool {
	return r.IsValid() && r.tree().Tag(r.id) == name
}

// Tag returns the node's tag, or "".
func (r Reader) Tag() string {
	if !r.IsValid() {
		return ""
	}
	return r.tree().Tag(r.id)
}

// Location returns the node's 1-based source location. ok is false
// when the parse did not retain positions or the reader is invalid.
func (r Reader) Location() (Location, bool) {
	if !r.IsValid() {
		return Location{}, false
	}
	t := r.tree()
	p, ok := t.Pos(r.id)
	if !ok {
		return Location{}, false
	}
	return Location{Name: t.Source, Line: p.Line + 1, Col: p.Col + 1}, true
}

func (r Reader) locOrNil() *Location {
	if loc, ok := r.Location(); ok {
		return &loc
	}
	return nil
}

// Emit serializes the node and its descendants to YAML text.
func (r Reader) Emit() (string, error) {
	if !r.IsValid() {
		return "", &Error{Msg: "cannot emit invalid node", Err: ErrInvalidNode}
	}
	return encode.String(r.tree(), r.id)
}

// EmitDescendants serializes only the node's children, dropping the
// node's own key. Scalar nodes yield the empty string.
func (r Reader) EmitDescendants() (string, error) {
	if !r.IsValid() {
		return "", &Error{Msg: "cannot emit invalid node", Err: ErrInvalidNode}
	}
	t := r.tree()
	out := tree.New()
	switch {
	case t.IsMap(r.id):
		out.AddFlags(out.Root(), tree.Map)
	case t.IsSeq(r.id):
		out.AddFlags(out.Root(), tree.Seq)
	default:
		return "", nil
	}
	out.DuplicateChildren(t, r.id, out.Root())
	return encode.String(out, out.Root())
}
