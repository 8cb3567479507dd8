// Package ownership implements the pre-execution ownership/borrow pass.
//
// The analyzer performs a single forward pass over each script and
// function body, maintaining a per-scope table of binding ownership
// states. Branches of an if/elif/else are merged conservatively
// (moved on any branch means moved after the join), and loop bodies are
// analyzed twice in sequence to model repeated execution.
//
// The pass is a safety overlay over a dynamically typed runtime: it
// rejects programs that use moved-from or conflictingly borrowed values,
// but it does not replace runtime lifetime management.
package ownership

import (
	"fmt"
	"strings"

	"github.com/recolon-lang/recolon/internal/token"
)

// Kind classifies an ownership error.
type Kind int

const (
	UseAfterMove Kind = iota
	ConflictingBorrow
)

// String returns the diagnostic name of the kind.
func (k Kind) String() string {
	switch k {
	case UseAfterMove:
		return "UseAfterMove"
	case ConflictingBorrow:
		return "ConflictingBorrow"
	default:
		return "unknown"
	}
}

// Error represents an ownership violation with source location.
type Error struct {
	Pos     token.Position
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

// ErrorList is a collection of ownership errors in source order.
type ErrorList []*Error

// Add appends an error, skipping exact duplicates (loop bodies are
// analyzed twice, which would otherwise report each violation twice).
func (el *ErrorList) Add(pos token.Position, kind Kind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	for _, e := range *el {
		if e.Pos == pos && e.Kind == kind && e.Message == msg {
			return
		}
	}
	*el = append(*el, &Error{Pos: pos, Kind: kind, Message: msg})
}

// Err returns an error if the list is non-empty, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Error implements the error interface for ErrorList.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		var sb strings.Builder
		sb.WriteString(el[0].Error())
		for _, e := range el[1:] {
			sb.WriteByte('\n')
			sb.WriteString(e.Error())
		}
		return sb.String()
	}
}
