package shading

import "fmt"

// SourceLocation identifies a position in a shader source file.
//
// Every token, declaration, statement, expression and type carries one so
// that diagnostics can point at the exact offending character. Two
// locations within the same file are ordered by byte offset.
type SourceLocation struct {
	File   string
	Line   int
	Column int
	Offset int
}

// String returns the location in the "<file>(<line>, <col>)" form used by
// diagnostics.
func (l SourceLocation) String() string {
	return fmt.Sprintf("%s(%d, %d)", l.File, l.Line, l.Column)
}

// Before reports whether l precedes other. Only meaningful for locations
// in the same file.
func (l SourceLocation) Before(other SourceLocation) bool {
	return l.Offset < other.Offset
}
