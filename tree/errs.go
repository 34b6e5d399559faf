package tree

import "errors"

var (
	ErrAnchorNotFound = errors.New("anchor not found")
	ErrRefCycle       = errors.New("cyclic reference")
)
