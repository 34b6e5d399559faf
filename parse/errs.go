package parse

import "errors"

var (
	ErrParse       = errors.New("parse error")
	ErrUnsupported = errors.New("unsupported yaml construct")
)
