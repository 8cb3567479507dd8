package ast

import "github.com/recolon-lang/recolon/internal/token"

// -----------------------------------------------------------------------------
// Basic statements
// -----------------------------------------------------------------------------

// VarStmt represents a variable declaration.
// Example: var x = 1;
type VarStmt struct {
	BaseStmt
	Name    string         // Variable name
	NamePos token.Position // Position of the name
	Init    Expr           // Initializer expression
}

// ExprStmt represents an expression used as a statement.
// Examples: x = x + 1;, greet("x");
type ExprStmt struct {
	BaseStmt
	Expr Expr // Expression to evaluate
}

// LogStmt writes its argument's displayable form to standard output.
// Example: log(x);
type LogStmt struct {
	BaseStmt
	Arg Expr
}

// ErrStmt writes its argument's displayable form to the error stream.
// It does not halt execution by itself.
// Example: err("boom");
type ErrStmt struct {
	BaseStmt
	Arg Expr
}

// BlockStmt represents a braced block of statements.
// Example: { stmt1; stmt2; }
type BlockStmt struct {
	BaseStmt
	Stmts []Stmt // Statements in the block (may be empty)
}

// -----------------------------------------------------------------------------
// Control flow
// -----------------------------------------------------------------------------

// IfStmt represents an if/elif/else statement.
// elif chains are represented as a nested IfStmt in Else with Elif set,
// so the printer can reproduce the original keyword.
type IfStmt struct {
	BaseStmt
	Cond Expr       // Condition expression
	Then *BlockStmt // Then branch
	Else Stmt       // *IfStmt (elif), *BlockStmt (else), or nil
	Elif bool       // true if this branch was written as elif
}

// WhileStmt represents a while loop.
// Example: while (cond) { body }
type WhileStmt struct {
	BaseStmt
	Cond Expr       // Loop condition, re-evaluated before each iteration
	Body *BlockStmt // Loop body
}

// ForStmt represents a for loop with an initializer/condition/increment
// triple, evaluated in that fixed order each pass.
// Example: for (var i = 0; i < 3; i = i + 1) { body }
type ForStmt struct {
	BaseStmt
	Init Stmt       // Initialization statement (VarStmt or ExprStmt, may be nil)
	Cond Expr       // Condition expression (may be nil, means True)
	Post Expr       // Post-iteration expression (may be nil)
	Body *BlockStmt // Loop body
}

// ComposeStmt represents a compose loop: an unbounded repeating block
// whose termination is driven entirely by an internal break.
// Example: compose { if (done) { break; } ... }
type ComposeStmt struct {
	BaseStmt
	Body *BlockStmt // Loop body
}

// BreakStmt exits the innermost enclosing loop.
type BreakStmt struct {
	BaseStmt
}

// ContinueStmt jumps to the next iteration of the innermost enclosing loop.
type ContinueStmt struct {
	BaseStmt
}

// ReturnStmt returns from the current function, optionally with a value.
// Example: return x + 1;
type ReturnStmt struct {
	BaseStmt
	Value Expr // Return value (nil for bare return)
}

// -----------------------------------------------------------------------------
// Declarations
// -----------------------------------------------------------------------------

// Param represents a function parameter.
type Param struct {
	Name string
	Pos  token.Position
}

// FnStmt represents a function declaration.
// Parameter types are not checked at parse time; overload resolution by
// argument count happens at call time.
// Example: fn greet(name) { log(name); }
type FnStmt struct {
	BaseStmt
	Name    string         // Function name
	NamePos token.Position // Position of the name
	Params  []Param        // Parameters (may be empty)
	Body    *BlockStmt     // Function body
}

// FieldDef represents a field declaration with its default expression
// inside a struct/class block.
// Example: x = 0;
type FieldDef struct {
	Name    string
	NamePos token.Position
	Default Expr
}

// ClassStmt represents a struct or class declaration with an optional
// single parent and a flat field/method block.
// Examples:
//
//	struct Point { x = 0; y = 0; }
//	class Dog : Animal { fn speak() { log("woof"); } }
type ClassStmt struct {
	BaseStmt
	Keyword token.Token    // STRUCT or CLASS (surface keyword only)
	Name    string         // Type name
	NamePos token.Position // Position of the name
	Parent  string         // Parent type name ("" if none)
	Fields  []FieldDef     // Field declarations in source order
	Methods []*FnStmt      // Method declarations in source order
}

// Compile-time interface checks.
var (
	_ Stmt = (*VarStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*LogStmt)(nil)
	_ Stmt = (*ErrStmt)(nil)
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*ComposeStmt)(nil)
	_ Stmt = (*BreakStmt)(nil)
	_ Stmt = (*ContinueStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*FnStmt)(nil)
	_ Stmt = (*ClassStmt)(nil)
)
