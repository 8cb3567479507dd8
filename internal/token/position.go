package token

import "fmt"

// Position is a location in Recolon source code.
type Position struct {
	Filename string // source file name, empty for inline scripts
	Line     int    // line number, starting at 1
	Column   int    // column in characters, starting at 1
	Offset   int    // byte offset from the start of the source, starting at 0
}

// String formats the position as "filename:line:column", or "line:column"
// when no filename is set.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position refers to an actual source location.
func (p Position) IsValid() bool {
	return p.Line > 0
}
