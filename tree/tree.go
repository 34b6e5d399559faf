package tree

import "strings"

// ID identifies a node within its Tree's arena.
type ID int32

// None is the absent node ID. Navigation past the edges of the tree
// yields None rather than an error.
const None ID = -1

type node struct {
	flags  Flags
	parent ID

	firstChild ID
	lastChild  ID
	prevSib    ID
	nextSib    ID

	key    string
	val    string
	anchor string
	ref    string
	tag    string

	pos    Pos
	hasPos bool
}

// Tree is an arena of document nodes. A new tree has a single root
// node with no flags. The tree exclusively owns all node storage;
// IDs handed out by it are only meaningful against this tree.
type Tree struct {
	// Source names where the document came from, for error messages.
	Source string

	nodes []node
	strs  []string
}

// New returns a tree containing only a root node.
func New() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, node{
		parent:     None,
		firstChild: None,
		lastChild:  None,
		prevSib:    None,
		nextSib:    None,
	})
	return t
}

// Root returns the root node ID.
func (t *Tree) Root() ID { return 0 }

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) valid(id ID) bool {
	return id != None && int(id) < len(t.nodes)
}

// AppendChild appends a new empty node under parent and returns its ID.
func (t *Tree) AppendChild(parent ID) ID {
	id := ID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		parent:     parent,
		firstChild: None,
		lastChild:  None,
		prevSib:    None,
		nextSib:    None,
	})
	p := &t.nodes[parent]
	if p.lastChild == None {
		p.firstChild = id
		p.lastChild = id
		return id
	}
	t.nodes[p.lastChild].nextSib = id
	t.nodes[id].prevSib = p.lastChild
	p.lastChild = id
	return id
}

func (t *Tree) Parent(id ID) ID {
	if !t.valid(id) {
		return None
	}
	return t.nodes[id].parent
}

func (t *Tree) FirstChild(id ID) ID {
	if !t.valid(id) {
		return None
	}
	return t.nodes[id].firstChild
}

func (t *Tree) LastChild(id ID) ID {
	if !t.valid(id) {
		return None
	}
	return t.nodes[id].lastChild
}

func (t *Tree) NextSibling(id ID) ID {
	if !t.valid(id) {
		return None
	}
	return t.nodes[id].nextSib
}

func (t *Tree) PrevSibling(id ID) ID {
	if !t.valid(id) {
		return None
	}
	return t.nodes[id].prevSib
}

// NumChildren counts the direct children of id. O(children).
func (t *Tree) NumChildren(id ID) int {
	n := 0
	for c := t.FirstChild(id); c != None; c = t.NextSibling(c) {
		n++
	}
	return n
}

// Child returns the i-th child of id, or None.
func (t *Tree) Child(id ID, i int) ID {
	c := t.FirstChild(id)
	for ; c != None && i > 0; c = t.NextSibling(c) {
		i--
	}
	return c
}

// FindChild returns the first child of id whose key is key, or None.
// O(children) per call; the doc package offers an indexed view for
// repeated lookups.
func (t *Tree) FindChild(id ID, key string) ID {
	for c := t.FirstChild(id); c != None; c = t.NextSibling(c) {
		n := &t.nodes[c]
		if n.flags.HasKey() && n.key == key {
			return c
		}
	}
	return None
}

func (t *Tree) Flags(id ID) Flags {
	if !t.valid(id) {
		return 0
	}
	return t.nodes[id].flags
}

func (t *Tree) SetFlags(id ID, f Flags) { t.nodes[id].flags = f }
func (t *Tree) AddFlags(id ID, f Flags) { t.nodes[id].flags |= f }
func (t *Tree) RemFlags(id ID, f Flags) { t.nodes[id].flags &^= f }

func (t *Tree) IsMap(id ID) bool     { return t.Flags(id).IsMap() }
func (t *Tree) IsSeq(id ID) bool     { return t.Flags(id).IsSeq() }
func (t *Tree) HasKey(id ID) bool    { return t.Flags(id).HasKey() }
func (t *Tree) HasVal(id ID) bool    { return t.Flags(id).HasVal() }
func (t *Tree) HasAnchor(id ID) bool { return t.Flags(id).HasAnchor() }
func (t *Tree) IsRef(id ID) bool     { return t.Flags(id).IsRef() }

func (t *Tree) Key(id ID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].key
}

func (t *Tree) SetKey(id ID, key string) {
	t.nodes[id].key = key
	t.nodes[id].flags |= Key
}

func (t *Tree) Val(id ID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].val
}

func (t *Tree) SetVal(id ID, val string) {
	t.nodes[id].val = val
	t.nodes[id].flags |= Val
}

func (t *Tree) AnchorName(id ID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].anchor
}

func (t *Tree) SetAnchor(id ID, name string) {
	t.nodes[id].anchor = name
	t.nodes[id].flags |= Anchor
}

func (t *Tree) ClearAnchor(id ID) {
	t.nodes[id].anchor = ""
	t.nodes[id].flags &^= Anchor
}

// RefName returns the anchor name an alias node points at.
func (t *Tree) RefName(id ID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].ref
}

func (t *Tree) SetRef(id ID, name string) {
	t.nodes[id].ref = name
	t.nodes[id].flags |= Ref
}

func (t *Tree) ClearRef(id ID) {
	t.nodes[id].ref = ""
	t.nodes[id].flags &^= Ref
}

func (t *Tree) Tag(id ID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].tag
}

func (t *Tree) SetTag(id ID, tag string) { t.nodes[id].tag = tag }

// Pos reports the node's source position, if the originating parse
// recorded one. Positions are 0-based.
func (t *Tree) Pos(id ID) (Pos, bool) {
	if !t.valid(id) {
		return Pos{}, false
	}
	n := &t.nodes[id]
	return n.pos, n.hasPos
}

func (t *Tree) SetPos(id ID, p Pos) {
	t.nodes[id].pos = p
	t.nodes[id].hasPos = true
}

// SaveStr copies s into the tree's backing storage and returns the
// stored copy. Callers constructing keys or values from transient
// buffers should route them through SaveStr so the text stays valid
// until emission completes.
func (t *Tree) SaveStr(s string) string {
	c := strings.Clone(s)
	t.strs = append(t.strs, c)
	return c
}

// Duplicate appends a deep copy of the subtree rooted at src under
// parent and returns the copy's root ID. The copy is independent:
// mutating it does not affect the original. src may belong to a
// different tree; parent must belong to t and must not be inside the
// src subtree when both live in the same tree.
func (t *Tree) Duplicate(src *Tree, srcID, parent ID) ID {
	id := t.AppendChild(parent)
	s := src.nodes[srcID]
	n := &t.nodes[id]
	n.flags = s.flags
	n.key = s.key
	n.val = s.val
	n.anchor = s.anchor
	n.ref = s.ref
	n.tag = s.tag
	n.pos = s.pos
	n.hasPos = s.hasPos
	t.DuplicateChildren(src, srcID, id)
	return id
}

// DuplicateChildren appends deep copies of srcID's children under
// parent, preserving order.
func (t *Tree) DuplicateChildren(src *Tree, srcID, parent ID) {
	for c := src.FirstChild(srcID); c != None; c = src.NextSibling(c) {
		t.Duplicate(src, c, parent)
	}
}
