// Package tree provides the document tree for YAML-like documents.
//
// A Tree is an arena of nodes addressed by integer IDs. Each node has a
// kind bitmask (map, sequence, scalar key/value, anchor, reference, plus
// style flags), parent/child/sibling links, and optionally a source
// position recorded by the parser. The tree owns all node storage;
// readers and writers built on top of it hold non-owning IDs into it.
//
// The package also implements reference resolution: Resolver rewrites a
// tree in place so that every alias node is replaced by a deep copy of
// the most recent preceding anchor of the same name, after which the
// tree carries no anchor or alias markup.
package tree
