package interp

import (
	"math"
	"strconv"

	"github.com/recolon-lang/recolon/internal/ast"
	"github.com/recolon-lang/recolon/internal/token"
	"github.com/recolon-lang/recolon/internal/value"
)

func (m *Machine) evalExpr(e ast.Expr, env *value.Environment) (value.Value, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		return value.Num(n.Value), nil

	case *ast.StringLit:
		return value.Str(n.Value), nil

	case *ast.BoolLit:
		return value.Bool(n.Value), nil

	case *ast.NilLit:
		return value.Nil(), nil

	case *ast.Ident:
		v, ok := env.Get(n.Name)
		if !ok {
			return value.Nil(), errorf(n.Pos(), UndefinedVariable, "undefined variable %q", n.Name)
		}
		return v, nil

	case *ast.ThisExpr:
		v, ok := env.Get("this")
		if !ok {
			return value.Nil(), errorf(n.Pos(), UndefinedVariable, "this used outside a method")
		}
		return v, nil

	case *ast.GroupExpr:
		return m.evalExpr(n.Expr, env)

	case *ast.UnaryExpr:
		return m.evalUnary(n, env)

	case *ast.BinaryExpr:
		return m.evalBinary(n, env)

	case *ast.LogicalExpr:
		left, err := m.evalExpr(n.Left, env)
		if err != nil {
			return value.Nil(), err
		}
		if n.Op == token.OR {
			if left.Truthy() {
				return left, nil
			}
		} else {
			if !left.Truthy() {
				return left, nil
			}
		}
		return m.evalExpr(n.Right, env)

	case *ast.FieldExpr:
		return m.evalField(n, env)

	case *ast.IndexExpr:
		return m.evalIndex(n, env)

	case *ast.ArrayLit:
		arr := &value.Array{Elems: make([]value.Value, len(n.Elems))}
		for i, el := range n.Elems {
			v, err := m.evalExpr(el, env)
			if err != nil {
				return value.Nil(), err
			}
			arr.Elems[i] = v
		}
		return value.ArrayVal(arr), nil

	case *ast.CallExpr:
		return m.evalCall(n, env)

	case *ast.AssignExpr:
		return m.evalAssign(n, env)

	default:
		return value.Nil(), errorf(e.Pos(), BadArgument, "unsupported expression")
	}
}

func (m *Machine) evalUnary(n *ast.UnaryExpr, env *value.Environment) (value.Value, error) {
	v, err := m.evalExpr(n.Expr, env)
	if err != nil {
		return value.Nil(), err
	}
	switch n.Op {
	case token.SUB:
		if !v.IsNumber() {
			return value.Nil(), errorf(n.Pos(), BadArgument,
				"operator - expects a Number, got %s", v.TypeName())
		}
		return value.Num(-v.Num()), nil
	case token.NOT:
		return value.Bool(!v.Truthy()), nil
	}
	return value.Nil(), errorf(n.Pos(), BadArgument, "unsupported unary operator %s", n.Op)
}

func (m *Machine) evalBinary(n *ast.BinaryExpr, env *value.Environment) (value.Value, error) {
	left, err := m.evalExpr(n.Left, env)
	if err != nil {
		return value.Nil(), err
	}
	right, err := m.evalExpr(n.Right, env)
	if err != nil {
		return value.Nil(), err
	}

	switch n.Op {
	case token.EQUALS:
		return value.Bool(value.Equal(left, right)), nil
	case token.NOT_EQUALS:
		return value.Bool(!value.Equal(left, right)), nil
	}

	if n.Op == token.ADD && left.Kind() == value.KindString && right.Kind() == value.KindString {
		return value.Str(left.Str() + right.Str()), nil
	}

	if !left.IsNumber() || !right.IsNumber() {
		return value.Nil(), errorf(n.Pos(), BadArgument,
			"operator %s expects Numbers, got %s and %s", n.Op, left.TypeName(), right.TypeName())
	}
	a, b := left.Num(), right.Num()

	switch n.Op {
	case token.ADD:
		return value.Num(a + b), nil
	case token.SUB:
		return value.Num(a - b), nil
	case token.MUL:
		return value.Num(a * b), nil
	case token.DIV:
		if b == 0 {
			return value.Nil(), errorf(n.Pos(), DivisionByZero, "division by zero")
		}
		return value.Num(a / b), nil
	case token.LESS:
		return value.Bool(a < b), nil
	case token.LTE:
		return value.Bool(a <= b), nil
	case token.GREATER:
		return value.Bool(a > b), nil
	case token.GTE:
		return value.Bool(a >= b), nil
	}
	return value.Nil(), errorf(n.Pos(), BadArgument, "unsupported operator %s", n.Op)
}

func (m *Machine) evalField(n *ast.FieldExpr, env *value.Environment) (value.Value, error) {
	obj, err := m.evalExpr(n.Object, env)
	if err != nil {
		return value.Nil(), err
	}
	switch obj.Kind() {
	case value.KindInstance:
		if v, ok := obj.Instance().Get(n.Name); ok {
			return v, nil
		}
		return value.Nil(), errorf(n.NamePos, FieldNotFound,
			"%s has no field %q", obj.Instance().Class.Name, n.Name)
	case value.KindModule:
		if v, ok := obj.Module().Get(n.Name); ok {
			return v, nil
		}
		return value.Nil(), errorf(n.NamePos, FieldNotFound,
			"module %s has no member %q", obj.Module().Name, n.Name)
	default:
		return value.Nil(), errorf(n.NamePos, FieldNotFound,
			"%s has no fields", obj.TypeName())
	}
}

func (m *Machine) evalIndex(n *ast.IndexExpr, env *value.Environment) (value.Value, error) {
	obj, err := m.evalExpr(n.Object, env)
	if err != nil {
		return value.Nil(), err
	}
	arr := obj.Array()
	if arr == nil {
		return value.Nil(), errorf(n.Pos(), BadArgument,
			"cannot index a %s", obj.TypeName())
	}
	i, err := m.indexValue(n.Index, env, len(arr.Elems))
	if err != nil {
		return value.Nil(), err
	}
	return arr.Elems[i], nil
}

// indexValue evaluates an index expression and validates it against the
// array length.
func (m *Machine) indexValue(e ast.Expr, env *value.Environment, length int) (int, error) {
	idx, err := m.evalExpr(e, env)
	if err != nil {
		return 0, err
	}
	if !idx.IsNumber() || idx.Num() != math.Trunc(idx.Num()) {
		return 0, errorf(e.Pos(), BadArgument,
			"array index must be an integer, got %s", idx.Display())
	}
	i := int(idx.Num())
	if i < 0 || i >= length {
		return 0, errorf(e.Pos(), BadArgument,
			"array index %d out of range for length %d", i, length)
	}
	return i, nil
}

func (m *Machine) evalAssign(n *ast.AssignExpr, env *value.Environment) (value.Value, error) {
	v, err := m.evalExpr(n.Value, env)
	if err != nil {
		return value.Nil(), err
	}

	switch target := n.Target.(type) {
	case *ast.Ident:
		if !env.Assign(target.Name, v) {
			return value.Nil(), errorf(target.Pos(), UndefinedVariable,
				"undefined variable %q", target.Name)
		}
		return v, nil

	case *ast.FieldExpr:
		obj, err := m.evalExpr(target.Object, env)
		if err != nil {
			return value.Nil(), err
		}
		inst := obj.Instance()
		if inst == nil {
			return value.Nil(), errorf(target.NamePos, FieldNotFound,
				"cannot set a field on a %s", obj.TypeName())
		}
		if !inst.Set(target.Name, v) {
			return value.Nil(), errorf(target.NamePos, FieldNotFound,
				"%s has no field %q", inst.Class.Name, target.Name)
		}
		return v, nil

	case *ast.IndexExpr:
		obj, err := m.evalExpr(target.Object, env)
		if err != nil {
			return value.Nil(), err
		}
		arr := obj.Array()
		if arr == nil {
			return value.Nil(), errorf(target.Pos(), BadArgument,
				"cannot index a %s", obj.TypeName())
		}
		i, err := m.indexValue(target.Index, env, len(arr.Elems))
		if err != nil {
			return value.Nil(), err
		}
		arr.Elems[i] = v
		return v, nil
	}
	return value.Nil(), errorf(n.Pos(), BadArgument, "invalid assignment target")
}

func (m *Machine) evalCall(n *ast.CallExpr, env *value.Environment) (value.Value, error) {
	// Dotted callees dispatch on the receiver: instance method lookup
	// walks the parent chain, module members call directly.
	if fe, ok := n.Callee.(*ast.FieldExpr); ok {
		obj, err := m.evalExpr(fe.Object, env)
		if err != nil {
			return value.Nil(), err
		}
		switch obj.Kind() {
		case value.KindInstance:
			return m.callMethod(obj.Instance(), fe, n, env)
		case value.KindModule:
			member, ok := obj.Module().Get(fe.Name)
			if !ok {
				return value.Nil(), errorf(fe.NamePos, FieldNotFound,
					"module %s has no member %q", obj.Module().Name, fe.Name)
			}
			return m.callValue(member, fe.NamePos, n, env)
		default:
			return value.Nil(), errorf(fe.NamePos, FieldNotFound,
				"%s has no fields", obj.TypeName())
		}
	}

	callee, err := m.evalExpr(n.Callee, env)
	if err != nil {
		return value.Nil(), err
	}
	return m.callValue(callee, n.Callee.Pos(), n, env)
}

// callValue dispatches a call on an already evaluated callee.
func (m *Machine) callValue(callee value.Value, pos token.Position, n *ast.CallExpr, env *value.Environment) (value.Value, error) {
	args, err := m.evalArgs(n.Args, env)
	if err != nil {
		return value.Nil(), err
	}

	switch callee.Kind() {
	case value.KindFunction:
		fs := callee.FuncSet()
		fn := fs.Resolve(len(args))
		if fn == nil {
			return value.Nil(), errorf(pos, NoMatchingOverload,
				"no overload of %s accepts %d arguments (have %v)", fs.Name, len(args), fs.Arities())
		}
		return m.callFunction(fn, args, nil)

	case value.KindBuiltin:
		b := callee.Builtin()
		if len(args) < b.MinArgs || len(args) > b.MaxArgs {
			return value.Nil(), errorf(pos, BadArgument,
				"%s expects %s, got %d", b.Name, arityRange(b.MinArgs, b.MaxArgs), len(args))
		}
		v, err := b.Fn(args)
		if err != nil {
			return value.Nil(), errorf(pos, BadArgument, "%s: %s", b.Name, err.Error())
		}
		return v, nil

	case value.KindClass:
		if len(args) != 0 {
			return value.Nil(), errorf(pos, BadArgument,
				"%s takes no constructor arguments", callee.Class().Name)
		}
		return m.instantiate(callee.Class(), pos)

	default:
		return value.Nil(), errorf(pos, BadArgument,
			"value of type %s is not callable", callee.TypeName())
	}
}

// callMethod resolves and invokes a method on an instance, binding this.
func (m *Machine) callMethod(inst *value.Instance, fe *ast.FieldExpr, n *ast.CallExpr, env *value.Environment) (value.Value, error) {
	fs := inst.Class.FindMethod(fe.Name)
	if fs == nil {
		// A field holding a callable can still be invoked.
		if v, ok := inst.Get(fe.Name); ok {
			return m.callValue(v, fe.NamePos, n, env)
		}
		return value.Nil(), errorf(fe.NamePos, FieldNotFound,
			"%s has no method %q", inst.Class.Name, fe.Name)
	}
	args, err := m.evalArgs(n.Args, env)
	if err != nil {
		return value.Nil(), err
	}
	fn := fs.Resolve(len(args))
	if fn == nil {
		return value.Nil(), errorf(fe.NamePos, NoMatchingOverload,
			"no overload of %s accepts %d arguments (have %v)", fs.Name, len(args), fs.Arities())
	}
	return m.callFunction(fn, args, inst)
}

// callFunction executes a function body in a fresh frame over its closure
// environment, with this bound for method calls.
func (m *Machine) callFunction(fn *value.Function, args []value.Value, this *value.Instance) (value.Value, error) {
	frame := value.NewEnvironment(fn.Env)
	if this != nil {
		frame.Define("this", value.InstanceVal(this))
	}
	for i, name := range fn.Params {
		frame.Define(name, args[i])
	}
	sig, err := m.execBlock(fn.Body, frame)
	if err != nil {
		return value.Nil(), err
	}
	if sig.kind == ctrlReturn {
		return sig.val, nil
	}
	return value.Nil(), nil
}

// instantiate allocates an instance and evaluates field defaults in the
// class's declaration environment, root-first with derived overrides.
func (m *Machine) instantiate(c *value.Class, pos token.Position) (value.Value, error) {
	fields := c.AllFields()
	order := make([]string, len(fields))
	for i, f := range fields {
		order[i] = f.Name
	}
	inst := value.NewInstance(c, order)
	for _, f := range fields {
		v, err := m.evalExpr(f.Default, c.Env)
		if err != nil {
			return value.Nil(), err
		}
		inst.Fields[f.Name] = v
	}
	return value.InstanceVal(inst), nil
}

func (m *Machine) evalArgs(exprs []ast.Expr, env *value.Environment) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v, err := m.evalExpr(e, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func arityRange(min, max int) string {
	if min == max {
		if min == 1 {
			return "1 argument"
		}
		return strconv.Itoa(min) + " arguments"
	}
	return strconv.Itoa(min) + " to " + strconv.Itoa(max) + " arguments"
}
