package tree

import "strings"

// Flags is a node kind and style bitmask. A node is exactly one of
// map, sequence, or scalar: Map and Seq are mutually exclusive, and a
// node carrying Val must carry neither. Key marks a node that is a
// keyed child of a map.
type Flags uint16

const (
	// Key is set on nodes that carry a key (children of maps).
	Key Flags = 1 << iota
	// Val is set on scalar nodes carrying a plain value.
	Val
	// Map marks a mapping container.
	Map
	// Seq marks a sequence container.
	Seq
	// Anchor is set on nodes carrying an anchor name.
	Anchor
	// Ref marks an alias node referencing an anchor by name.
	Ref
	// Flow requests single-line flow-style emission.
	Flow
	// Block requests multi-line block-style emission.
	Block
	// Quoted requests double-quoted emission of the node's value.
	Quoted
)

func (f Flags) IsMap() bool     { return f&Map != 0 }
func (f Flags) IsSeq() bool     { return f&Seq != 0 }
func (f Flags) HasKey() bool    { return f&Key != 0 }
func (f Flags) HasVal() bool    { return f&Val != 0 }
func (f Flags) HasAnchor() bool { return f&Anchor != 0 }
func (f Flags) IsRef() bool     { return f&Ref != 0 }

func (f Flags) String() string {
	names := []struct {
		flag Flags
		name string
	}{
		{Key, "key"}, {Val, "val"}, {Map, "map"}, {Seq, "seq"},
		{Anchor, "anchor"}, {Ref, "ref"}, {Flow, "flow"},
		{Block, "block"}, {Quoted, "quoted"},
	}
	parts := []string{}
	for _, n := range names {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
