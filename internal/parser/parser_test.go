package parser_test

import (
	"strings"
	"testing"

	"github.com/recolon-lang/recolon/internal/ast"
	"github.com/recolon-lang/recolon/internal/parser"
	"github.com/recolon-lang/recolon/internal/token"
)

func parseOne(t *testing.T, src string) ast.Stmt {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("Parse(%q): expected 1 statement, got %d", src, len(prog.Stmts))
	}
	return prog.Stmts[0]
}

func TestParseVarStmt(t *testing.T) {
	s := parseOne(t, `var answer = 42;`)
	vs, ok := s.(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", s)
	}
	if vs.Name != "answer" {
		t.Errorf("expected name %q, got %q", "answer", vs.Name)
	}
	num, ok := vs.Init.(*ast.NumberLit)
	if !ok {
		t.Fatalf("expected *ast.NumberLit initializer, got %T", vs.Init)
	}
	if num.Value != 42 {
		t.Errorf("expected 42, got %v", num.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3).
	e, err := parser.ParseExpr(`1 + 2 * 3`)
	if err != nil {
		t.Fatal(err)
	}
	add, ok := e.(*ast.BinaryExpr)
	if !ok || add.Op != token.ADD {
		t.Fatalf("expected top-level +, got %T", e)
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != token.MUL {
		t.Fatalf("expected * on the right, got %T", add.Right)
	}
}

func TestParseComparisonBindsTighterThanLogical(t *testing.T) {
	// a < b and c < d must parse as (a < b) and (c < d).
	e, err := parser.ParseExpr(`a < b and c < d`)
	if err != nil {
		t.Fatal(err)
	}
	land, ok := e.(*ast.LogicalExpr)
	if !ok || land.Op != token.AND {
		t.Fatalf("expected top-level and, got %T", e)
	}
	if _, ok := land.Left.(*ast.BinaryExpr); !ok {
		t.Errorf("expected comparison on the left, got %T", land.Left)
	}
	if _, ok := land.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected comparison on the right, got %T", land.Right)
	}
}

func TestParseAssignRightAssociative(t *testing.T) {
	e, err := parser.ParseExpr(`a = b = 1`)
	if err != nil {
		t.Fatal(err)
	}
	outer, ok := e.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected *ast.AssignExpr, got %T", e)
	}
	if _, ok := outer.Value.(*ast.AssignExpr); !ok {
		t.Errorf("expected nested assignment on the right, got %T", outer.Value)
	}
}

func TestParsePostfixChain(t *testing.T) {
	// a.b[0](1).c parses postfix operators left to right.
	e, err := parser.ParseExpr(`a.b[0](1).c`)
	if err != nil {
		t.Fatal(err)
	}
	field, ok := e.(*ast.FieldExpr)
	if !ok || field.Name != "c" {
		t.Fatalf("expected trailing field access, got %T", e)
	}
	call, ok := field.Object.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("expected call below field, got %T", field.Object)
	}
	if _, ok := call.Callee.(*ast.IndexExpr); !ok {
		t.Errorf("expected index below call, got %T", call.Callee)
	}
}

func TestParseIfElifElse(t *testing.T) {
	s := parseOne(t, `if (a) { log(1); } elif (b) { log(2); } else { log(3); }`)
	ifs, ok := s.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", s)
	}
	elif, ok := ifs.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected elif chain, got %T", ifs.Else)
	}
	if !elif.Elif {
		t.Error("nested branch not marked as elif")
	}
	if _, ok := elif.Else.(*ast.BlockStmt); !ok {
		t.Errorf("expected final else block, got %T", elif.Else)
	}
}

func TestParseForClauses(t *testing.T) {
	s := parseOne(t, `for (var i = 0; i < 3; i = i + 1) { log(i); }`)
	fs, ok := s.(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", s)
	}
	if _, ok := fs.Init.(*ast.VarStmt); !ok {
		t.Errorf("expected var init, got %T", fs.Init)
	}
	if fs.Cond == nil || fs.Post == nil {
		t.Error("expected condition and post clauses")
	}
}

func TestParseForEmptyClauses(t *testing.T) {
	s := parseOne(t, `for (;;) { break; }`)
	fs, ok := s.(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", s)
	}
	if fs.Init != nil || fs.Cond != nil || fs.Post != nil {
		t.Error("expected all clauses empty")
	}
}

func TestParseCompose(t *testing.T) {
	s := parseOne(t, `compose { break; }`)
	if _, ok := s.(*ast.ComposeStmt); !ok {
		t.Fatalf("expected *ast.ComposeStmt, got %T", s)
	}
}

func TestParseFnOverloads(t *testing.T) {
	prog, err := parser.Parse(`
fn greet() { log("hi"); }
fn greet(name) { log(name); }
`)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Stmts))
	}
	for _, s := range prog.Stmts {
		fn, ok := s.(*ast.FnStmt)
		if !ok {
			t.Fatalf("expected *ast.FnStmt, got %T", s)
		}
		if fn.Name != "greet" {
			t.Errorf("expected name greet, got %q", fn.Name)
		}
	}
}

func TestParseClass(t *testing.T) {
	s := parseOne(t, `
class Dog : Animal {
	name = "rex";
	fn speak() { log(this.name); }
	fn speak(times) { log(times); }
}`)
	cs, ok := s.(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected *ast.ClassStmt, got %T", s)
	}
	if cs.Keyword != token.CLASS {
		t.Errorf("expected class keyword, got %v", cs.Keyword)
	}
	if cs.Parent != "Animal" {
		t.Errorf("expected parent Animal, got %q", cs.Parent)
	}
	if len(cs.Fields) != 1 || cs.Fields[0].Name != "name" {
		t.Errorf("unexpected fields: %+v", cs.Fields)
	}
	if len(cs.Methods) != 2 {
		t.Errorf("expected 2 method declarations, got %d", len(cs.Methods))
	}
}

func TestParseStruct(t *testing.T) {
	s := parseOne(t, `struct Point { x = 0; y = 0; }`)
	cs, ok := s.(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected *ast.ClassStmt, got %T", s)
	}
	if cs.Keyword != token.STRUCT {
		t.Errorf("expected struct keyword, got %v", cs.Keyword)
	}
	if len(cs.Fields) != 2 {
		t.Errorf("expected 2 fields, got %d", len(cs.Fields))
	}
}

func TestParseLogErrStatements(t *testing.T) {
	prog, err := parser.Parse(`log(1); err("boom");`)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := prog.Stmts[0].(*ast.LogStmt); !ok {
		t.Errorf("expected *ast.LogStmt, got %T", prog.Stmts[0])
	}
	if _, ok := prog.Stmts[1].(*ast.ErrStmt); !ok {
		t.Errorf("expected *ast.ErrStmt, got %T", prog.Stmts[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"break outside loop", `break;`, "inside a loop"},
		{"continue outside loop", `continue;`, "inside a loop"},
		{"return outside function", `return 1;`, "inside a function"},
		{"bad assign target", `1 = 2;`, "cannot assign"},
		{"duplicate field", `struct P { x = 0; x = 1; }`, "duplicate field"},
		{"missing semicolon", `var x = 1`, "expected"},
		{"missing condition paren", `if a { }`, "expected"},
		{"unexpected token", `var = 1;`, "expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tt.src)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse(%q): error %q does not contain %q", tt.src, err, tt.want)
			}
		})
	}
}

func TestParseErrorRecovery(t *testing.T) {
	// The parser resynchronizes at statement boundaries and reports
	// every error, not just the first.
	_, err := parser.Parse(`var = 1; var = 2;`)
	if err == nil {
		t.Fatal("expected errors")
	}
	el, ok := err.(parser.ErrorList)
	if !ok {
		t.Fatalf("expected parser.ErrorList, got %T", err)
	}
	if len(el) < 2 {
		t.Errorf("expected at least 2 errors, got %d", len(el))
	}
}

func TestParseBreakInsideLoop(t *testing.T) {
	srcs := []string{
		`while (True) { break; }`,
		`for (;;) { continue; }`,
		`compose { break; }`,
	}
	for _, src := range srcs {
		if _, err := parser.Parse(src); err != nil {
			t.Errorf("Parse(%q): %v", src, err)
		}
	}
}

func TestParseReturnInsideFn(t *testing.T) {
	if _, err := parser.Parse(`fn f() { return; }`); err != nil {
		t.Fatal(err)
	}
	// A function body resets loop depth: break inside a function that is
	// inside a loop body is still an error without an inner loop.
	if _, err := parser.Parse(`while (True) { fn f() { break; } }`); err == nil {
		t.Error("expected error for break inside fn body")
	}
}
