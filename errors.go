package recolon

import (
	"fmt"

	"github.com/recolon-lang/recolon/internal/interp"
	"github.com/recolon-lang/recolon/internal/lexer"
	"github.com/recolon-lang/recolon/internal/ownership"
	"github.com/recolon-lang/recolon/internal/parser"
)

// LexError represents an invalid token in Recolon source code.
type LexError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// ParseError represents a syntax error in Recolon source code.
type ParseError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// OwnershipError represents a move or borrow violation found by static
// analysis. Programs with ownership errors never execute.
type OwnershipError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Kind    string // "UseAfterMove" or "ConflictingBorrow"
	Message string // Error description
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("ownership error at %d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

// EvalError represents an error during execution.
type EvalError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Kind    string // e.g. "UndefinedVariable", "DivisionByZero"
	Message string // Error description
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

// convertCompileError maps internal lexer/parser errors to public types.
func convertCompileError(err error) error {
	switch e := err.(type) {
	case *lexer.Error:
		return &LexError{
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Message: e.Message,
		}
	case *parser.ParseError:
		return &ParseError{
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Message: e.Message,
		}
	case parser.ErrorList:
		if len(e) > 0 {
			return &ParseError{
				Line:    e[0].Pos.Line,
				Column:  e[0].Pos.Column,
				Message: e[0].Message,
			}
		}
	}
	return &ParseError{Message: err.Error()}
}

// convertOwnershipError surfaces the first violation of an analysis run.
func convertOwnershipError(err error) error {
	if el, ok := err.(ownership.ErrorList); ok && len(el) > 0 {
		return &OwnershipError{
			Line:    el[0].Pos.Line,
			Column:  el[0].Pos.Column,
			Kind:    el[0].Kind.String(),
			Message: el[0].Message,
		}
	}
	return &OwnershipError{Message: err.Error()}
}

// convertEvalError maps internal runtime errors to the public type.
func convertEvalError(err error) error {
	if e, ok := err.(*interp.Error); ok {
		return &EvalError{
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Kind:    e.Kind.String(),
			Message: e.Message,
		}
	}
	return &EvalError{Message: err.Error()}
}
