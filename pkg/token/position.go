package token

import "fmt"

// Position identifies a location in a source file by line and column.
// Both are 1-indexed, matching how editors and error messages present them.
type Position struct {
	Line   int
	Column int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
