// Package doc provides typed, location-aware access to document trees.
//
// A Reader is a non-owning view over one node of a resolved tree.
// Invalid readers are first-class values rather than errors, so
// chained lookups like r.Child("a").Child("b") never need nil checks:
// the chain yields either the addressed node or a final invalid
// reader. A reader over a map can build a one-shot key index
// (WithIndex) trading one O(n) pass for O(1) amortized lookups.
//
// Reading and writing values dispatches generically: types implement
// Unmarshaler/Marshaler to opt in, scalar types can register word
// conversions via RegisterScalar, and built-in conversions cover
// booleans (as words), integers, floats, strings, pairs, slices, and
// maps. Conversion failures surface as *Error values carrying the
// node's source location (1-based) and the target type's name.
//
// Readers and writers borrow their tree and must not outlive it, nor
// be trusted across structural mutation of the nodes they wrap; both
// are caller obligations, not runtime-checked.
package doc
