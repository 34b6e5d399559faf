package tree

import "fmt"

type refKind uint8

const (
	anchorRec refKind = iota
	aliasRec
)

// refRecord is one gathered anchor or alias. Anchor records for the
// same name are chained chronologically through prevAnchor, so an
// alias binds to the nearest preceding anchor without rescanning.
type refRecord struct {
	kind refKind
	node ID

	// prevAnchor is the index of the previous anchor record with the
	// same name, or -1. For alias records it is the chain head that
	// was most recent at gather time, which is exactly the anchor the
	// alias must bind to under serialization-order rules.
	prevAnchor int

	// target is the resolved anchor node, filled in during the
	// resolve pass.
	target ID

	// parentRef is the record index of the nearest enclosing alias
	// node, or -1. An alias nested under another alias cannot be
	// materialized before its container is.
	parentRef        int
	parentRefSibling ID
}

// Resolver rewrites a tree in place so every alias node is replaced
// by a deep copy of its resolved anchor's subtree. A Resolver is
// reusable across trees; its gathered records are transient state
// valid only for the duration of a Resolve call.
//
// An alias binds to the most recent anchor of its name that precedes
// it in serialization order (pre-order document order). An alias with
// no preceding anchor fails with ErrAnchorNotFound even if a matching
// anchor appears later in the document. An anchor whose subtree
// reaches itself through an alias fails with ErrRefCycle.
//
// On failure the tree may be partially rewritten; callers are
// expected to discard it.
type Resolver struct {
	tree *Tree
	refs []refRecord
}

// Resolve binds and materializes all aliases in t and strips anchor
// markup, leaving a tree with no anchor or alias semantics.
func (r *Resolver) Resolve(t *Tree) error {
	r.tree = t
	r.refs = r.refs[:0]
	r.gather()
	if err := r.lookup(); err != nil {
		return err
	}
	r.stripAnchors(t.Root())
	return nil
}

// gather walks the tree once in pre-order, recording anchors and
// aliases in serialization order. A transient name-to-record map
// supplies each new record's back-link, forming per-name
// chronological chains.
func (r *Resolver) gather() {
	recent := map[string]int{}
	r.gatherNode(r.tree.Root(), -1, recent)
}

func (r *Resolver) gatherNode(id ID, parentRef int, recent map[string]int) {
	t := r.tree
	if t.HasAnchor(id) {
		name := t.AnchorName(id)
		prev, ok := recent[name]
		if !ok {
			prev = -1
		}
		recent[name] = len(r.refs)
		r.refs = append(r.refs, refRecord{
			kind:       anchorRec,
			node:       id,
			prevAnchor: prev,
			target:     None,
			parentRef:  parentRef,
		})
	}
	if t.IsRef(id) {
		prev, ok := recent[t.RefName(id)]
		if !ok {
			prev = -1
		}
		rec := refRecord{
			kind:       aliasRec,
			node:       id,
			prevAnchor: prev,
			target:     None,
			parentRef:  parentRef,
		}
		if parentRef >= 0 {
			rec.parentRefSibling = t.PrevSibling(id)
		}
		parentRef = len(r.refs)
		r.refs = append(r.refs, rec)
	}
	for c := t.FirstChild(id); c != None; c = t.NextSibling(c) {
		r.gatherNode(c, parentRef, recent)
	}
}

// lookup resolves the gathered aliases in gather order. Gather order
// is document order, so by the time an alias is materialized every
// alias inside its target's subtree has already been materialized.
func (r *Resolver) lookup() error {
	t := r.tree
	for i := range r.refs {
		rec := &r.refs[i]
		if rec.kind != aliasRec {
			continue
		}
		if rec.parentRef >= i {
			return fmt.Errorf("%w: reference %q nested in an unresolved reference%s",
				ErrRefCycle, t.RefName(rec.node), r.locSuffix(rec.node))
		}
		target, err := r.lookupAnchor(rec)
		if err != nil {
			return err
		}
		rec.target = target
		if err := r.materialize(rec.node, target); err != nil {
			return err
		}
	}
	return nil
}

// lookupAnchor walks the name's chronological chain starting at the
// record that was most recent when the alias was gathered.
func (r *Resolver) lookupAnchor(rec *refRecord) (ID, error) {
	t := r.tree
	name := t.RefName(rec.node)
	at := rec.prevAnchor
	for at >= 0 {
		a := &r.refs[at]
		if a.kind == anchorRec && t.AnchorName(a.node) == name {
			// reject binding to an anchor whose subtree contains the
			// alias: materializing would copy the alias into itself
			for n := rec.node; n != None; n = t.Parent(n) {
				if n == a.node {
					return None, fmt.Errorf("%w: anchor %q refers to itself%s",
						ErrRefCycle, name, r.locSuffix(rec.node))
				}
			}
			return a.node, nil
		}
		at = a.prevAnchor
	}
	return None, fmt.Errorf("%w: %q%s", ErrAnchorNotFound, name, r.locSuffix(rec.node))
}

// materialize replaces the alias node with a deep copy of the target
// subtree, keeping the alias's key and anchor (if any) and clearing
// its reference markup.
func (r *Resolver) materialize(ref, target ID) error {
	t := r.tree
	keep := t.Flags(ref) & (Key | Anchor)
	t.SetFlags(ref, keep|(t.Flags(target)&^(Key|Anchor|Ref)))
	t.nodes[ref].val = t.nodes[target].val
	t.nodes[ref].tag = t.nodes[target].tag
	t.ClearRef(ref)
	for c := t.FirstChild(target); c != None; c = t.NextSibling(c) {
		if err := r.dupResolved(c, ref); err != nil {
			return err
		}
	}
	return nil
}

// dupResolved deep-copies like Tree.Duplicate but refuses unresolved
// reference nodes and drops anchor markup from the copies, so the
// materialized data carries no reference semantics of its own.
func (r *Resolver) dupResolved(src, parent ID) error {
	t := r.tree
	if t.IsRef(src) {
		return fmt.Errorf("%w: unresolved reference %q inside anchor subtree%s",
			ErrRefCycle, t.RefName(src), r.locSuffix(src))
	}
	id := t.AppendChild(parent)
	s := t.nodes[src]
	n := &t.nodes[id]
	n.flags = s.flags &^ Anchor
	n.key = s.key
	n.val = s.val
	n.tag = s.tag
	n.pos = s.pos
	n.hasPos = s.hasPos
	for c := t.FirstChild(src); c != None; c = t.NextSibling(c) {
		if err := r.dupResolved(c, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) stripAnchors(id ID) {
	t := r.tree
	if t.HasAnchor(id) {
		t.ClearAnchor(id)
	}
	for c := t.FirstChild(id); c != None; c = t.NextSibling(c) {
		r.stripAnchors(c)
	}
}

// locSuffix renders " at name:line:col" for error messages, 1-based,
// or "" when the parse retained no positions.
func (r *Resolver) locSuffix(id ID) string {
	p, ok := r.tree.Pos(id)
	if !ok {
		return ""
	}
	if r.tree.Source == "" {
		return fmt.Sprintf(" at %d:%d", p.Line+1, p.Col+1)
	}
	return fmt.Sprintf(" at %s:%d:%d", r.tree.Source, p.Line+1, p.Col+1)
}

// ResolveRefs resolves all anchors and aliases in t in place.
func (t *Tree) ResolveRefs() error {
	var r Resolver
	return r.Resolve(t)
}
