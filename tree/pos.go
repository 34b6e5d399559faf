package tree

import "fmt"

// Pos is a 0-based source position as reported by the parser. Callers
// surfacing positions to humans are expected to convert to 1-based
// line/column themselves (see the doc package's Location).
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("line=%d, col=%d (offset %d)", p.Line, p.Col, p.Offset)
}
