// Package interp implements the tree-walking evaluator.
//
// A Machine executes a parsed program against a global environment.
// Statement execution returns explicit control signals for break,
// continue, and return; runtime failures surface as positional *Error
// values, never panics.
package interp

import (
	"fmt"

	"github.com/recolon-lang/recolon/internal/token"
)

// Kind classifies a runtime error.
type Kind int

const (
	UndefinedVariable Kind = iota
	NoMatchingOverload
	FieldNotFound
	DivisionByZero
	BadArgument
)

// String returns the diagnostic name of the kind.
func (k Kind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case NoMatchingOverload:
		return "NoMatchingOverload"
	case FieldNotFound:
		return "FieldNotFound"
	case DivisionByZero:
		return "DivisionByZero"
	case BadArgument:
		return "BadArgument"
	default:
		return "unknown"
	}
}

// Error is a runtime error with source location.
type Error struct {
	Pos     token.Position
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

func errorf(pos token.Position, kind Kind, format string, args ...any) *Error {
	return &Error{Pos: pos, Kind: kind, Message: fmt.Sprintf(format, args...)}
}
