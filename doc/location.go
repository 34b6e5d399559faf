package doc

import "fmt"

// Location is a 1-based source position. The underlying parser and
// tree record 0-based positions; conversion happens here, once, at
// the surfacing boundary.
type Location struct {
	Name string
	Line int
	Col  int
}

func (l Location) String() string {
	if l.Name == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d:%d", l.Name, l.Line, l.Col)
}

// Error is a structured deserialization or access error. Loc is nil
// when the originating parse retained no location data; the message
// then simply omits the position.
type Error struct {
	Loc  *Location
	Type string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Type != "" {
		msg = fmt.Sprintf("%s (target type %s)", msg, e.Type)
	}
	if e.Loc != nil {
		return fmt.Sprintf("%s ERROR: %s", e.Loc, msg)
	}
	return "ERROR: " + msg
}

func (e *Error) Unwrap() error { return e.Err }
