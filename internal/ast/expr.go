package ast

import "github.com/recolon-lang/recolon/internal/token"

// -----------------------------------------------------------------------------
// Literals
// -----------------------------------------------------------------------------

// NumberLit represents a numeric literal (integer or decimal).
// Examples: 42, 3.14
type NumberLit struct {
	BaseExpr
	Value float64 // Parsed numeric value
	Raw   string  // Original source text (for exact representation)
}

// StringLit represents a double-quoted string literal.
// Examples: "hello", "multi\nline" (literal newline, no escapes)
type StringLit struct {
	BaseExpr
	Value string // String value without quotes
}

// BoolLit represents a boolean literal: True or False.
type BoolLit struct {
	BaseExpr
	Value bool
}

// NilLit represents the Nil literal.
type NilLit struct {
	BaseExpr
}

// -----------------------------------------------------------------------------
// References
// -----------------------------------------------------------------------------

// Ident represents an identifier (variable, function, or type name).
type Ident struct {
	BaseExpr
	Name string // Identifier name
}

// ThisExpr represents the implicit receiver inside a method body.
type ThisExpr struct {
	BaseExpr
}

// FieldExpr represents a field or member access expression.
// Examples: p.x, math.pi, dog.speak (before a call)
type FieldExpr struct {
	BaseExpr
	Object  Expr           // Object expression
	Name    string         // Field or method name
	NamePos token.Position // Position of the name (for diagnostics)
}

// IndexExpr represents an array subscript expression.
// Examples: xs[0], xs[i + 1]
type IndexExpr struct {
	BaseExpr
	Object Expr // Array expression
	Index  Expr // Subscript expression
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// UnaryExpr represents a unary operation.
// Examples: -x, !flag
type UnaryExpr struct {
	BaseExpr
	Op   token.Token // Operator token (SUB or NOT)
	Expr Expr        // Operand
}

// BinaryExpr represents a binary operation.
// Examples: a + b, x == y, n < limit
type BinaryExpr struct {
	BaseExpr
	Left  Expr        // Left operand
	Op    token.Token // Operator token
	Right Expr        // Right operand
}

// LogicalExpr represents a short-circuiting logical operation.
// Examples: a and b, a or b
// Kept distinct from BinaryExpr because the right operand is evaluated
// conditionally.
type LogicalExpr struct {
	BaseExpr
	Left  Expr        // Left operand
	Op    token.Token // AND or OR
	Right Expr        // Right operand
}

// AssignExpr represents an assignment expression.
// Examples: x = 1, p.x = 2, xs[0] = v
type AssignExpr struct {
	BaseExpr
	Target Expr // Target (must be lvalue: Ident, FieldExpr, or IndexExpr)
	Value  Expr // Value expression
}

// GroupExpr represents a parenthesized expression.
// Used to preserve explicit grouping in the source.
type GroupExpr struct {
	BaseExpr
	Expr Expr // Inner expression
}

// -----------------------------------------------------------------------------
// Calls and aggregates
// -----------------------------------------------------------------------------

// CallExpr represents a function, method, or constructor call.
// Examples: greet("x"), dog.speak(), Point()
type CallExpr struct {
	BaseExpr
	Callee Expr   // Callee expression (Ident or FieldExpr)
	Args   []Expr // Arguments (may be empty)
}

// ArrayLit represents an array literal.
// Example: [1, 2, 3]
type ArrayLit struct {
	BaseExpr
	Elems []Expr // Element expressions (may be empty)
}

// Compile-time interface checks.
var (
	_ Expr = (*NumberLit)(nil)
	_ Expr = (*StringLit)(nil)
	_ Expr = (*BoolLit)(nil)
	_ Expr = (*NilLit)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*ThisExpr)(nil)
	_ Expr = (*FieldExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*LogicalExpr)(nil)
	_ Expr = (*AssignExpr)(nil)
	_ Expr = (*GroupExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*ArrayLit)(nil)
)
