package doc

import (
	"github.com/signadot/ydoc-format/go-ydoc/encode"
	"github.com/signadot/ydoc-format/go-ydoc/tree"
)

// Writer is a mutable view over one node of a tree under
// construction. Like Reader, it is a cheap value; unlike Reader, the
// zero Writer is unusable and operations on it fail with
// ErrInvalidNode.
type Writer struct {
	root *RootWriter
	id   tree.ID
}

// RootWriter owns a tree being built and hands out Writers into it.
type RootWriter struct {
	Writer
	tree *tree.Tree
}

// NewRootWriter returns a writer over a fresh single-root tree.
func NewRootWriter() *RootWriter {
	rw := &RootWriter{tree: tree.New()}
	rw.Writer = Writer{root: rw, id: rw.tree.Root()}
	return rw
}

// NewTreeWriter wraps an existing tree, writing at its root.
func NewTreeWriter(t *tree.Tree) *RootWriter {
	rw := &RootWriter{tree: t}
	rw.Writer = Writer{root: rw, id: t.Root()}
	return rw
}

func (w Writer) tree() *tree.Tree {
	if w.root == nil {
		return nil
	}
	return w.root.tree
}

func (w Writer) IsValid() bool {
	return w.root != nil && w.id != tree.None
}

// Append adds an unkeyed child node and returns a writer over it.
// The parent is marked as a sequence container.
func (w Writer) Append() Writer {
	if !w.IsValid() {
		return w
	}
	t := w.tree()
	if t.Flags(w.id)&tree.Map == 0 {
		t.AddFlags(w.id, tree.Seq)
	}
	return Writer{root: w.root, id: t.AppendChild(w.id)}
}

// AppendKey adds a keyed child node and returns a writer over it.
// The parent is marked as a map container.
func (w Writer) AppendKey(key string) Writer {
	if !w.IsValid() {
		return w
	}
	t := w.tree()
	t.AddFlags(w.id, tree.Map)
	c := t.AppendChild(w.id)
	t.SetKey(c, key)
	return Writer{root: w.root, id: c}
}

// SetAsMap marks the node as a map container.
func (w Writer) SetAsMap() Writer {
	if w.IsValid() {
		w.tree().AddFlags(w.id, tree.Map)
	}
	return w
}

// SetAsSeq marks the node as a sequence container.
func (w Writer) SetAsSeq() Writer {
	if w.IsValid() {
		w.tree().AddFlags(w.id, tree.Seq)
	}
	return w
}

// SetFlowStyle requests single-line rendering for this container.
func (w Writer) SetFlowStyle() Writer {
	if w.IsValid() {
		w.tree().RemFlags(w.id, tree.Block)
		w.tree().AddFlags(w.id, tree.Flow)
	}
	return w
}

// SetBlockStyle requests indented multi-line rendering.
func (w Writer) SetBlockStyle() Writer {
	if w.IsValid() {
		w.tree().RemFlags(w.id, tree.Flow)
		w.tree().AddFlags(w.id, tree.Block)
	}
	return w
}

// SetAsQuoted forces quoting of the node's scalar on output.
func (w Writer) SetAsQuoted() Writer {
	if w.IsValid() {
		w.tree().AddFlags(w.id, tree.Quoted)
	}
	return w
}

func (w Writer) UnsetMap() Writer {
	if w.IsValid() {
		w.tree().RemFlags(w.id, tree.Map)
	}
	return w
}

func (w Writer) UnsetSeq() Writer {
	if w.IsValid() {
		w.tree().RemFlags(w.id, tree.Seq)
	}
	return w
}

func (w Writer) UnsetFlowStyle() Writer {
	if w.IsValid() {
		w.tree().RemFlags(w.id, tree.Flow)
	}
	return w
}

func (w Writer) UnsetBlockStyle() Writer {
	if w.IsValid() {
		w.tree().RemFlags(w.id, tree.Block)
	}
	return w
}

func (w Writer) UnsetQuoted() Writer {
	if w.IsValid() {
		w.tree().RemFlags(w.id, tree.Quoted)
	}
	return w
}

// SetTag sets the node's tag.
func (w Writer) SetTag(tag string) Writer {
	if w.IsValid() {
		w.tree().SetTag(w.id, tag)
	}
	return w
}

// SetRawVal sets the node's scalar text without conversion.
func (w Writer) SetRawVal(s string) Writer {
	if w.IsValid() {
		w.tree().SetVal(w.id, s)
	}
	return w
}

// SaveString copies s into the tree's string store, returning a copy
// whose lifetime matches the tree rather than the caller's buffer.
func (w Writer) SaveString(s string) string {
	if !w.IsValid() {
		return s
	}
	return w.tree().SaveStr(s)
}

// AsReader returns a read view over the same node. The reader shares
// the writer's tree and goes stale under further structural mutation.
func (w Writer) AsReader() Reader {
	if !w.IsValid() {
		return Reader{}
	}
	rr := &RootReader{tree: w.tree()}
	rr.Reader = Reader{root: rr, id: w.tree().Root()}
	return Reader{root: rr, id: w.id}
}

// Emit serializes the node and its descendants to YAML text.
func (w Writer) Emit() (string, error) {
	if !w.IsValid() {
		return "", &Error{Msg: "cannot emit invalid node", Err: ErrInvalidNode}
	}
	return encode.String(w.tree(), w.id)
}
