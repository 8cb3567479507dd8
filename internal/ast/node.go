// Package ast defines the abstract syntax tree for Recolon programs.
//
// The AST is designed for:
//   - Source location tracking for error reporting
//   - A single pre-execution ownership analysis pass
//   - Direct tree-walking evaluation
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	│   ├── NumberLit, StringLit, BoolLit, NilLit - literals
//	│   ├── Ident, ThisExpr, FieldExpr, IndexExpr - references
//	│   ├── UnaryExpr, BinaryExpr, LogicalExpr - operations
//	│   └── CallExpr, AssignExpr, ArrayLit, GroupExpr - other
//	├── Stmt (interface) - statements that perform actions
//	│   ├── VarStmt, ExprStmt, LogStmt, ErrStmt - basic
//	│   ├── IfStmt, WhileStmt, ForStmt, ComposeStmt - control flow
//	│   ├── BreakStmt, ContinueStmt, ReturnStmt - jumps
//	│   └── BlockStmt, FnStmt, ClassStmt - compound and declarations
//	└── Program - top-level structure
package ast

import "github.com/recolon-lang/recolon/internal/token"

// Node is the interface implemented by all AST nodes.
// It provides source position information for error reporting.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position

	// End returns the position of the first character immediately after this node.
	End() token.Position
}

// Expr is the interface for all expression nodes.
// Expressions are AST nodes that evaluate to a value.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// Stmt is the interface for all statement nodes.
// Statements are AST nodes that perform actions.
type Stmt interface {
	Node
	stmtNode() // marker method to prevent external implementations
}

// BaseExpr provides common fields for all expression nodes.
// Embedded in concrete expression types for position tracking.
type BaseExpr struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) End() token.Position { return b.EndPos }
func (b *BaseExpr) exprNode()           {}

// BaseStmt provides common fields for all statement nodes.
// Embedded in concrete statement types for position tracking.
type BaseStmt struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseStmt) Pos() token.Position { return b.StartPos }
func (b *BaseStmt) End() token.Position { return b.EndPos }
func (b *BaseStmt) stmtNode()           {}

// IsLValue returns true if the expression can be used as an lvalue
// (left-hand side of assignment).
func IsLValue(e Expr) bool {
	switch e.(type) {
	case *Ident, *FieldExpr, *IndexExpr:
		return true
	default:
		return false
	}
}

// MakeBaseExpr creates a BaseExpr with the given positions.
func MakeBaseExpr(start, end token.Position) BaseExpr {
	return BaseExpr{StartPos: start, EndPos: end}
}

// MakeBaseStmt creates a BaseStmt with the given positions.
func MakeBaseStmt(start, end token.Position) BaseStmt {
	return BaseStmt{StartPos: start, EndPos: end}
}
