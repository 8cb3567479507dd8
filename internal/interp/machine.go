package interp

import (
	"fmt"
	"io"

	"github.com/recolon-lang/recolon/internal/ast"
	"github.com/recolon-lang/recolon/internal/value"
)

// Machine executes a program against a global environment.
// The environment is expected to have the standard library registered
// before Execute is called.
type Machine struct {
	globals *value.Environment
	out     io.Writer
	errOut  io.Writer
}

// New creates a machine writing log output to out and err output to errOut.
func New(globals *value.Environment, out, errOut io.Writer) *Machine {
	return &Machine{globals: globals, out: out, errOut: errOut}
}

// Execute runs every top-level statement in order.
// A break, continue, or return escaping to the top level is impossible:
// the parser rejects them outside loops and function bodies.
func (m *Machine) Execute(prog *ast.Program) error {
	for _, s := range prog.Stmts {
		if _, err := m.execStmt(s, m.globals); err != nil {
			return err
		}
	}
	return nil
}

// ctrl is the control signal produced by statement execution.
type ctrl uint8

const (
	ctrlNone ctrl = iota
	ctrlBreak
	ctrlContinue
	ctrlReturn
)

// signal pairs a control kind with the value carried by return.
type signal struct {
	kind ctrl
	val  value.Value
}

var signalNone = signal{kind: ctrlNone}

func (m *Machine) execStmt(s ast.Stmt, env *value.Environment) (signal, error) {
	switch n := s.(type) {
	case *ast.VarStmt:
		v, err := m.evalExpr(n.Init, env)
		if err != nil {
			return signalNone, err
		}
		env.Define(n.Name, v)
		return signalNone, nil

	case *ast.ExprStmt:
		_, err := m.evalExpr(n.Expr, env)
		return signalNone, err

	case *ast.LogStmt:
		v, err := m.evalExpr(n.Arg, env)
		if err != nil {
			return signalNone, err
		}
		fmt.Fprintln(m.out, v.Display())
		return signalNone, nil

	case *ast.ErrStmt:
		v, err := m.evalExpr(n.Arg, env)
		if err != nil {
			return signalNone, err
		}
		fmt.Fprintln(m.errOut, v.Display())
		return signalNone, nil

	case *ast.BlockStmt:
		return m.execBlock(n, value.NewEnvironment(env))

	case *ast.IfStmt:
		cond, err := m.evalExpr(n.Cond, env)
		if err != nil {
			return signalNone, err
		}
		if cond.Truthy() {
			return m.execStmt(n.Then, env)
		}
		if n.Else != nil {
			return m.execStmt(n.Else, env)
		}
		return signalNone, nil

	case *ast.WhileStmt:
		for {
			cond, err := m.evalExpr(n.Cond, env)
			if err != nil {
				return signalNone, err
			}
			if !cond.Truthy() {
				return signalNone, nil
			}
			sig, err := m.execStmt(n.Body, env)
			if err != nil {
				return signalNone, err
			}
			switch sig.kind {
			case ctrlBreak:
				return signalNone, nil
			case ctrlReturn:
				return sig, nil
			}
		}

	case *ast.ForStmt:
		loop := value.NewEnvironment(env)
		if n.Init != nil {
			if _, err := m.execStmt(n.Init, loop); err != nil {
				return signalNone, err
			}
		}
		for {
			if n.Cond != nil {
				cond, err := m.evalExpr(n.Cond, loop)
				if err != nil {
					return signalNone, err
				}
				if !cond.Truthy() {
					return signalNone, nil
				}
			}
			sig, err := m.execStmt(n.Body, loop)
			if err != nil {
				return signalNone, err
			}
			switch sig.kind {
			case ctrlBreak:
				return signalNone, nil
			case ctrlReturn:
				return sig, nil
			}
			if n.Post != nil {
				if _, err := m.evalExpr(n.Post, loop); err != nil {
					return signalNone, err
				}
			}
		}

	case *ast.ComposeStmt:
		// Repeats until an explicit break; there is no loop condition.
		for {
			sig, err := m.execStmt(n.Body, env)
			if err != nil {
				return signalNone, err
			}
			switch sig.kind {
			case ctrlBreak:
				return signalNone, nil
			case ctrlReturn:
				return sig, nil
			}
		}

	case *ast.BreakStmt:
		return signal{kind: ctrlBreak}, nil

	case *ast.ContinueStmt:
		return signal{kind: ctrlContinue}, nil

	case *ast.ReturnStmt:
		v := value.Nil()
		if n.Value != nil {
			var err error
			v, err = m.evalExpr(n.Value, env)
			if err != nil {
				return signalNone, err
			}
		}
		return signal{kind: ctrlReturn, val: v}, nil

	case *ast.FnStmt:
		m.declareFn(n, env)
		return signalNone, nil

	case *ast.ClassStmt:
		return signalNone, m.declareClass(n, env)

	default:
		return signalNone, errorf(s.Pos(), BadArgument, "unsupported statement")
	}
}

// execBlock runs the block's statements in env, forwarding the first
// non-none control signal.
func (m *Machine) execBlock(b *ast.BlockStmt, env *value.Environment) (signal, error) {
	for _, s := range b.Stmts {
		sig, err := m.execStmt(s, env)
		if err != nil {
			return signalNone, err
		}
		if sig.kind != ctrlNone {
			return sig, nil
		}
	}
	return signalNone, nil
}

// declareFn adds a function declaration to the overload set bound in the
// current frame, or starts a new set.
func (m *Machine) declareFn(n *ast.FnStmt, env *value.Environment) {
	fn := &value.Function{
		Name:   n.Name,
		Params: paramNames(n.Params),
		Body:   n.Body,
		Env:    env,
	}
	if prev, ok := env.GetLocal(n.Name); ok && prev.Kind() == value.KindFunction {
		prev.FuncSet().Add(fn)
		return
	}
	fs := &value.FuncSet{Name: n.Name}
	fs.Add(fn)
	env.Define(n.Name, value.FuncVal(fs))
}

// declareClass builds the class object: parent resolution, field defaults,
// and the method table with per-name overload sets.
func (m *Machine) declareClass(n *ast.ClassStmt, env *value.Environment) error {
	var parent *value.Class
	if n.Parent != "" {
		pv, ok := env.Get(n.Parent)
		if !ok {
			return errorf(n.NamePos, UndefinedVariable, "undefined variable %q", n.Parent)
		}
		parent = pv.Class()
		if parent == nil {
			return errorf(n.NamePos, BadArgument,
				"%q is not a %s and cannot be inherited from", n.Parent, n.Keyword)
		}
	}

	c := &value.Class{
		Name:        n.Name,
		KeywordName: n.Keyword.String(),
		Parent:      parent,
		Methods:     make(map[string]*value.FuncSet),
		Env:         env,
	}
	for _, f := range n.Fields {
		c.Fields = append(c.Fields, value.FieldDef{Name: f.Name, Default: f.Default})
	}
	for _, meth := range n.Methods {
		fn := &value.Function{
			Name:   meth.Name,
			Params: paramNames(meth.Params),
			Body:   meth.Body,
			Env:    env,
		}
		fs, ok := c.Methods[meth.Name]
		if !ok {
			fs = &value.FuncSet{Name: meth.Name}
			c.Methods[meth.Name] = fs
		}
		fs.Add(fn)
	}

	env.Define(n.Name, value.ClassVal(c))
	return nil
}

func paramNames(params []ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}
