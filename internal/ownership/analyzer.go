package ownership

import (
	"github.com/recolon-lang/recolon/internal/ast"
)

// Info records what the pass inferred, keyed by declaration node.
// It is exposed for debugging tools and tests; the evaluator does not
// depend on it.
type Info struct {
	// Classes maps each var declaration to its inferred ownership class.
	Classes map[*ast.VarStmt]Class
}

// Analyze runs the ownership/borrow pass over a parsed program.
// It returns inference results and an ErrorList of every violation found;
// a non-nil error means the program must not be executed.
func Analyze(prog *ast.Program) (*Info, error) {
	a := &analyzer{
		info: &Info{Classes: make(map[*ast.VarStmt]Class)},
	}
	sc := newScope(nil)
	for _, s := range prog.Stmts {
		a.stmt(s, sc)
	}
	return a.info, a.errors.Err()
}

type analyzer struct {
	errors ErrorList
	info   *Info
}

// exprCtx tracks transient borrows during the analysis of one full
// expression. Multiple simultaneous immutable borrows of a binding are
// fine; a mutable borrow (assignment through a field or index) conflicts
// with any already-active borrow of the same binding.
type exprCtx struct {
	borrows map[*binding]int
}

func newExprCtx() *exprCtx {
	return &exprCtx{borrows: make(map[*binding]int)}
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (a *analyzer) stmt(s ast.Stmt, sc *scope) {
	switch n := s.(type) {
	case *ast.VarStmt:
		class := a.initExpr(n.Init, sc)
		sc.declare(n.Name, class, n.NamePos)
		a.info.Classes[n] = class

	case *ast.ExprStmt:
		a.expr(n.Expr, sc, newExprCtx())

	case *ast.LogStmt:
		a.expr(n.Arg, sc, newExprCtx())

	case *ast.ErrStmt:
		a.expr(n.Arg, sc, newExprCtx())

	case *ast.BlockStmt:
		inner := newScope(sc)
		for _, st := range n.Stmts {
			a.stmt(st, inner)
		}

	case *ast.IfStmt:
		a.ifStmt(n, sc)

	case *ast.WhileStmt:
		// Two passes model iteration n and n+1: a move in the body that
		// invalidates a use at the top of the next iteration surfaces on
		// the second pass.
		for pass := 0; pass < 2; pass++ {
			a.expr(n.Cond, sc, newExprCtx())
			a.stmt(n.Body, sc)
		}

	case *ast.ForStmt:
		loop := newScope(sc)
		if n.Init != nil {
			a.stmt(n.Init, loop)
		}
		for pass := 0; pass < 2; pass++ {
			if n.Cond != nil {
				a.expr(n.Cond, loop, newExprCtx())
			}
			a.stmt(n.Body, loop)
			if n.Post != nil {
				a.expr(n.Post, loop, newExprCtx())
			}
		}

	case *ast.ComposeStmt:
		for pass := 0; pass < 2; pass++ {
			a.stmt(n.Body, sc)
		}

	case *ast.ReturnStmt:
		if n.Value != nil {
			a.expr(n.Value, sc, newExprCtx())
		}

	case *ast.BreakStmt, *ast.ContinueStmt:
		// no ownership effect

	case *ast.FnStmt:
		sc.declare(n.Name, ClassValue, n.NamePos)
		a.fnBody(n)

	case *ast.ClassStmt:
		b := sc.declare(n.Name, ClassValue, n.NamePos)
		b.isClass = true
		for _, f := range n.Fields {
			fs := newScope(nil)
			a.expr(f.Default, fs, newExprCtx())
		}
		for _, m := range n.Methods {
			a.fnBody(m)
		}
	}
}

// fnBody analyzes a function or method body independently of the calling
// context: parameters start Owned with unknown content.
func (a *analyzer) fnBody(fn *ast.FnStmt) {
	sc := newScope(nil)
	for _, p := range fn.Params {
		sc.declare(p.Name, ClassUnknown, p.Pos)
	}
	for _, st := range fn.Body.Stmts {
		a.stmt(st, sc)
	}
}

// ifStmt analyzes every branch from the same entry state and merges the
// terminal states conservatively: moved on any branch means moved after
// the join, because which branch executed is unknown statically.
func (a *analyzer) ifStmt(n *ast.IfStmt, sc *scope) {
	a.expr(n.Cond, sc, newExprCtx())

	base := sc.snapshot()
	var outcomes []map[*binding]State

	a.stmt(n.Then, sc)
	outcomes = append(outcomes, sc.snapshot())
	restore(base)

	switch els := n.Else.(type) {
	case nil:
		// Implicit fall-through branch keeps the entry state.
		outcomes = append(outcomes, base)
	case *ast.IfStmt:
		a.ifStmt(els, sc)
		outcomes = append(outcomes, sc.snapshot())
		restore(base)
	case *ast.BlockStmt:
		a.stmt(els, sc)
		outcomes = append(outcomes, sc.snapshot())
		restore(base)
	}

	mergeMoved(base, outcomes)
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// initExpr analyzes the initializer of a declaration or the right side of
// an assignment: a bare identifier read of reference-typed content is a
// move of the source; everything else is an ordinary read.
func (a *analyzer) initExpr(e ast.Expr, sc *scope) Class {
	if id, ok := e.(*ast.Ident); ok {
		if b := sc.lookup(id.Name); b != nil {
			a.checkUse(b, id)
			if b.class == ClassRef {
				b.state = Moved
			}
			return b.class
		}
		return ClassUnknown
	}
	return a.expr(e, sc, newExprCtx())
}

// expr analyzes an expression, recording transient borrows in ctx, and
// returns the ownership class of the produced value.
func (a *analyzer) expr(e ast.Expr, sc *scope, ctx *exprCtx) Class {
	switch n := e.(type) {
	case *ast.NumberLit, *ast.StringLit, *ast.BoolLit, *ast.NilLit:
		return ClassValue

	case *ast.Ident:
		if b := sc.lookup(n.Name); b != nil {
			a.checkUse(b, n)
			ctx.borrows[b]++
			return b.class
		}
		// Globals, builtins, and forward references are resolved at
		// runtime; the pass has nothing to track for them.
		return ClassUnknown

	case *ast.ThisExpr:
		return ClassUnknown

	case *ast.GroupExpr:
		return a.expr(n.Expr, sc, ctx)

	case *ast.UnaryExpr:
		a.expr(n.Expr, sc, ctx)
		return ClassValue

	case *ast.BinaryExpr:
		a.expr(n.Left, sc, ctx)
		a.expr(n.Right, sc, ctx)
		return ClassValue

	case *ast.LogicalExpr:
		a.expr(n.Left, sc, ctx)
		// The right operand may not run, but analyzing it keeps the pass
		// conservative; borrows it records stay within this expression.
		a.expr(n.Right, sc, ctx)
		return ClassUnknown

	case *ast.FieldExpr:
		a.expr(n.Object, sc, ctx)
		return ClassUnknown

	case *ast.IndexExpr:
		a.expr(n.Object, sc, ctx)
		a.expr(n.Index, sc, ctx)
		return ClassUnknown

	case *ast.ArrayLit:
		for _, el := range n.Elems {
			// Embedding a reference-typed binding in an array literal
			// transfers ownership into the array.
			if id, ok := el.(*ast.Ident); ok {
				if b := sc.lookup(id.Name); b != nil {
					a.checkUse(b, id)
					if b.class == ClassRef {
						b.state = Moved
					}
					continue
				}
			}
			a.expr(el, sc, ctx)
		}
		return ClassRef

	case *ast.CallExpr:
		return a.call(n, sc, ctx)

	case *ast.AssignExpr:
		return a.assign(n, sc, ctx)

	default:
		return ClassUnknown
	}
}

// call analyzes a call expression. Passing an existing reference-typed
// binding as a plain-name argument to a function moves it into the callee;
// method and module calls (dotted callees) only read their arguments.
func (a *analyzer) call(n *ast.CallExpr, sc *scope, ctx *exprCtx) Class {
	moves := true
	result := ClassUnknown
	switch callee := n.Callee.(type) {
	case *ast.Ident:
		// Reading the function binding itself is not a data borrow.
		// Calls on struct/class names construct reference-typed instances.
		if b := sc.lookup(callee.Name); b != nil && b.isClass {
			result = ClassRef
		}
	case *ast.FieldExpr:
		// The left side of a method call is a transient immutable borrow.
		a.expr(callee.Object, sc, ctx)
		moves = false
	default:
		a.expr(callee, sc, ctx)
	}

	for _, arg := range n.Args {
		if id, ok := arg.(*ast.Ident); ok && moves {
			if b := sc.lookup(id.Name); b != nil {
				a.checkUse(b, id)
				if b.class == ClassRef {
					b.state = Moved
				}
				continue
			}
		}
		a.expr(arg, sc, ctx)
	}
	return result
}

// assign analyzes an assignment expression. An assignment through a field
// or index is a mutable borrow of the target's root binding and conflicts
// with any borrow of that binding already active in this expression.
func (a *analyzer) assign(n *ast.AssignExpr, sc *scope, ctx *exprCtx) Class {
	rhsClass := a.initExprCtx(n.Value, sc, ctx)

	switch target := n.Target.(type) {
	case *ast.Ident:
		if b := sc.lookup(target.Name); b != nil {
			// Reassignment updates the content class but never revives a
			// moved binding: Owned returns only via a fresh declaration.
			if b.state == Owned {
				b.class = rhsClass
			}
		}

	case *ast.IndexExpr:
		a.expr(target.Index, sc, ctx)
		a.mutableBorrow(target.Object, sc, ctx)

	case *ast.FieldExpr:
		a.mutableBorrow(target.Object, sc, ctx)
	}
	return rhsClass
}

// initExprCtx is initExpr with an existing borrow context, used for the
// right side of assignments so its borrows stay visible to the mutable
// borrow check.
func (a *analyzer) initExprCtx(e ast.Expr, sc *scope, ctx *exprCtx) Class {
	if id, ok := e.(*ast.Ident); ok {
		if b := sc.lookup(id.Name); b != nil {
			a.checkUse(b, id)
			if b.class == ClassRef {
				b.state = Moved
			}
			return b.class
		}
		return ClassUnknown
	}
	return a.expr(e, sc, ctx)
}

// mutableBorrow checks the root binding of a field/index assignment
// target against the active borrow set.
func (a *analyzer) mutableBorrow(obj ast.Expr, sc *scope, ctx *exprCtx) {
	root := rootIdent(obj)
	if root == nil {
		a.expr(obj, sc, ctx)
		return
	}
	b := sc.lookup(root.Name)
	if b == nil {
		return
	}
	a.checkUse(b, root)
	if ctx.borrows[b] > 0 {
		a.errors.Add(root.Pos(), ConflictingBorrow,
			"cannot mutate %q while it is borrowed in the same expression", root.Name)
	}
	// Intermediate path segments are ordinary reads.
	a.pathReads(obj, sc, ctx)
}

// pathReads analyzes the non-root parts of an access path (indexes and
// nested objects) without re-borrowing the root identifier.
func (a *analyzer) pathReads(e ast.Expr, sc *scope, ctx *exprCtx) {
	switch n := e.(type) {
	case *ast.Ident:
		// root; already checked by mutableBorrow
	case *ast.FieldExpr:
		a.pathReads(n.Object, sc, ctx)
	case *ast.IndexExpr:
		a.pathReads(n.Object, sc, ctx)
		a.expr(n.Index, sc, ctx)
	default:
		a.expr(e, sc, ctx)
	}
}

// rootIdent returns the identifier at the root of an access path, or nil.
func rootIdent(e ast.Expr) *ast.Ident {
	for {
		switch n := e.(type) {
		case *ast.Ident:
			return n
		case *ast.FieldExpr:
			e = n.Object
		case *ast.IndexExpr:
			e = n.Object
		case *ast.GroupExpr:
			e = n.Expr
		default:
			return nil
		}
	}
}

// checkUse reports a read of a moved-from binding.
func (a *analyzer) checkUse(b *binding, at ast.Node) {
	if b.state == Moved {
		a.errors.Add(at.Pos(), UseAfterMove, "use of moved value %q", b.name)
	}
}
