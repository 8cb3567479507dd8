package ast

import (
	"fmt"
	"io"
	"strconv"
)

// Printer writes an AST back out as Recolon source text.
// Comments and original whitespace are not preserved, but re-lexing the
// output yields a token sequence equivalent to the original program's.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the program as source text.
func (p *Printer) Print(prog *Program) error {
	for _, s := range prog.Stmts {
		p.printStmt(s)
	}
	return p.err
}

// PrintExpr writes a single expression as source text.
func (p *Printer) PrintExpr(e Expr) error {
	p.printExpr(e)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, "    ")
	}
}

func (p *Printer) printStmt(s Stmt) {
	switch n := s.(type) {
	case *VarStmt:
		p.writeIndent()
		p.printf("var %s = ", n.Name)
		p.printExpr(n.Init)
		p.printf(";\n")

	case *ExprStmt:
		p.writeIndent()
		p.printExpr(n.Expr)
		p.printf(";\n")

	case *LogStmt:
		p.writeIndent()
		p.printf("log(")
		p.printExpr(n.Arg)
		p.printf(");\n")

	case *ErrStmt:
		p.writeIndent()
		p.printf("err(")
		p.printExpr(n.Arg)
		p.printf(");\n")

	case *BlockStmt:
		p.writeIndent()
		p.printBlock(n)
		p.printf("\n")

	case *IfStmt:
		p.writeIndent()
		p.printIf(n, false)
		p.printf("\n")

	case *WhileStmt:
		p.writeIndent()
		p.printf("while (")
		p.printExpr(n.Cond)
		p.printf(") ")
		p.printBlock(n.Body)
		p.printf("\n")

	case *ForStmt:
		p.writeIndent()
		p.printf("for (")
		p.printForClause(n.Init)
		p.printf(" ")
		if n.Cond != nil {
			p.printExpr(n.Cond)
		}
		p.printf("; ")
		if n.Post != nil {
			p.printExpr(n.Post)
		}
		p.printf(") ")
		p.printBlock(n.Body)
		p.printf("\n")

	case *ComposeStmt:
		p.writeIndent()
		p.printf("compose ")
		p.printBlock(n.Body)
		p.printf("\n")

	case *BreakStmt:
		p.writeIndent()
		p.printf("break;\n")

	case *ContinueStmt:
		p.writeIndent()
		p.printf("continue;\n")

	case *ReturnStmt:
		p.writeIndent()
		if n.Value != nil {
			p.printf("return ")
			p.printExpr(n.Value)
			p.printf(";\n")
		} else {
			p.printf("return;\n")
		}

	case *FnStmt:
		p.writeIndent()
		p.printFn(n)
		p.printf("\n")

	case *ClassStmt:
		p.writeIndent()
		p.printf("%s %s", n.Keyword, n.Name)
		if n.Parent != "" {
			p.printf(" : %s", n.Parent)
		}
		p.printf(" {\n")
		p.indent++
		for _, f := range n.Fields {
			p.writeIndent()
			p.printf("%s = ", f.Name)
			p.printExpr(f.Default)
			p.printf(";\n")
		}
		for _, m := range n.Methods {
			p.writeIndent()
			p.printFn(m)
		}
		p.indent--
		p.writeIndent()
		p.printf("}\n")

	default:
		p.printf("<%T>", s)
	}
}

// printForClause prints a for-initializer without trailing newline.
func (p *Printer) printForClause(s Stmt) {
	switch n := s.(type) {
	case nil:
		p.printf(";")
	case *VarStmt:
		p.printf("var %s = ", n.Name)
		p.printExpr(n.Init)
		p.printf(";")
	case *ExprStmt:
		p.printExpr(n.Expr)
		p.printf(";")
	default:
		p.printf("<%T>;", s)
	}
}

func (p *Printer) printFn(fn *FnStmt) {
	p.printf("fn %s(", fn.Name)
	for i, param := range fn.Params {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%s", param.Name)
	}
	p.printf(") ")
	p.printBlock(fn.Body)
}

func (p *Printer) printIf(n *IfStmt, elif bool) {
	if elif {
		p.printf("elif (")
	} else {
		p.printf("if (")
	}
	p.printExpr(n.Cond)
	p.printf(") ")
	p.printBlock(n.Then)
	switch e := n.Else.(type) {
	case nil:
	case *IfStmt:
		p.printf(" ")
		p.printIf(e, true)
	case *BlockStmt:
		p.printf(" else ")
		p.printBlock(e)
	}
}

// printBlock prints a braced block without trailing newline.
func (p *Printer) printBlock(b *BlockStmt) {
	if len(b.Stmts) == 0 {
		p.printf("{}")
		return
	}
	p.printf("{\n")
	p.indent++
	for _, s := range b.Stmts {
		p.printStmt(s)
	}
	p.indent--
	p.writeIndent()
	p.printf("}")
}

func (p *Printer) printExpr(e Expr) {
	switch n := e.(type) {
	case *NumberLit:
		if n.Raw != "" {
			p.printf("%s", n.Raw)
		} else {
			p.printf("%s", strconv.FormatFloat(n.Value, 'g', -1, 64))
		}

	case *StringLit:
		p.printf("\"%s\"", n.Value)

	case *BoolLit:
		if n.Value {
			p.printf("True")
		} else {
			p.printf("False")
		}

	case *NilLit:
		p.printf("Nil")

	case *Ident:
		p.printf("%s", n.Name)

	case *ThisExpr:
		p.printf("this")

	case *FieldExpr:
		p.printExpr(n.Object)
		p.printf(".%s", n.Name)

	case *IndexExpr:
		p.printExpr(n.Object)
		p.printf("[")
		p.printExpr(n.Index)
		p.printf("]")

	case *UnaryExpr:
		p.printf("%s", n.Op)
		p.printExpr(n.Expr)

	case *BinaryExpr:
		p.printExpr(n.Left)
		p.printf(" %s ", n.Op)
		p.printExpr(n.Right)

	case *LogicalExpr:
		p.printExpr(n.Left)
		p.printf(" %s ", n.Op)
		p.printExpr(n.Right)

	case *AssignExpr:
		p.printExpr(n.Target)
		p.printf(" = ")
		p.printExpr(n.Value)

	case *GroupExpr:
		p.printf("(")
		p.printExpr(n.Expr)
		p.printf(")")

	case *CallExpr:
		p.printExpr(n.Callee)
		p.printf("(")
		for i, arg := range n.Args {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(arg)
		}
		p.printf(")")

	case *ArrayLit:
		p.printf("[")
		for i, el := range n.Elems {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(el)
		}
		p.printf("]")

	default:
		p.printf("<%T>", e)
	}
}
