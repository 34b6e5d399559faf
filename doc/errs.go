package doc

import "errors"

var (
	ErrInvalidNode  = errors.New("invalid node")
	ErrNoKey        = errors.New("node has no key")
	ErrDeserialize  = errors.New("could not deserialize value")
	ErrSerialize    = errors.New("could not serialize value")
	ErrNoConversion = errors.New("no conversion registered")
	ErrNoLocation   = errors.New("document parsed without location data")
)
