// Package value defines runtime values and environments for Recolon.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/recolon-lang/recolon/internal/ast"
)

// Kind represents the type of a Recolon value.
type Kind uint8

const (
	KindNil      Kind = iota // Nil
	KindNumber               // 64-bit float
	KindBool                 // True/False
	KindString               // immutable string
	KindArray                // mutable sequence, shared by reference
	KindFunction             // user-declared function overload set
	KindBuiltin              // standard-library callable
	KindClass                // struct/class type object
	KindInstance             // struct/class instance, shared by reference
	KindModule               // immutable standard-library module
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindFunction:
		return "Function"
	case KindBuiltin:
		return "Builtin"
	case KindClass:
		return "Class"
	case KindInstance:
		return "Instance"
	case KindModule:
		return "Module"
	default:
		return "unknown"
	}
}

// Value represents a Recolon runtime value.
// Scalars (Number, Bool, String, Nil) are copied by value on assignment;
// Arrays and Instances are shared by reference through the ref pointer.
type Value struct {
	kind Kind
	num  float64
	str  string
	ref  any // *Array, *FuncSet, *Builtin, *Class, *Instance, *Module
}

// Constructors

// Nil returns the Nil value.
func Nil() Value {
	return Value{kind: KindNil}
}

// Num creates a numeric value.
func Num(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Str creates a string value.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

// ArrayVal wraps an Array.
func ArrayVal(a *Array) Value {
	return Value{kind: KindArray, ref: a}
}

// FuncVal wraps a function overload set.
func FuncVal(f *FuncSet) Value {
	return Value{kind: KindFunction, ref: f}
}

// BuiltinVal wraps a builtin function.
func BuiltinVal(b *Builtin) Value {
	return Value{kind: KindBuiltin, ref: b}
}

// ClassVal wraps a class object.
func ClassVal(c *Class) Value {
	return Value{kind: KindClass, ref: c}
}

// InstanceVal wraps an instance.
func InstanceVal(i *Instance) Value {
	return Value{kind: KindInstance, ref: i}
}

// ModuleVal wraps a module table.
func ModuleVal(m *Module) Value {
	return Value{kind: KindModule, ref: m}
}

// Accessors

// Kind returns the value's type.
func (v Value) Kind() Kind { return v.kind }

// IsNil returns true if the value is Nil.
func (v Value) IsNil() bool { return v.kind == KindNil }

// IsNumber returns true if the value is a Number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsRef returns true if the value is shared by reference.
func (v Value) IsRef() bool {
	return v.kind == KindArray || v.kind == KindInstance
}

// Num returns the numeric value. Valid only for KindNumber.
func (v Value) Num() float64 { return v.num }

// Str returns the string value. Valid only for KindString.
func (v Value) Str() string { return v.str }

// BoolVal returns the boolean value. Valid only for KindBool.
func (v Value) BoolVal() bool { return v.num != 0 }

// Array returns the underlying array, or nil for other kinds.
func (v Value) Array() *Array {
	a, _ := v.ref.(*Array)
	return a
}

// FuncSet returns the underlying overload set, or nil for other kinds.
func (v Value) FuncSet() *FuncSet {
	f, _ := v.ref.(*FuncSet)
	return f
}

// Builtin returns the underlying builtin, or nil for other kinds.
func (v Value) Builtin() *Builtin {
	b, _ := v.ref.(*Builtin)
	return b
}

// Class returns the underlying class, or nil for other kinds.
func (v Value) Class() *Class {
	c, _ := v.ref.(*Class)
	return c
}

// Instance returns the underlying instance, or nil for other kinds.
func (v Value) Instance() *Instance {
	i, _ := v.ref.(*Instance)
	return i
}

// Module returns the underlying module, or nil for other kinds.
func (v Value) Module() *Module {
	m, _ := v.ref.(*Module)
	return m
}

// Truthy returns the boolean interpretation of the value:
// False, Nil, 0, and "" are falsy; everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.num != 0
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	default:
		return true
	}
}

// Equal compares two values: by value for Number/Bool/String/Nil,
// by identity for Array/Instance/Function/Class/Module/Builtin.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindNumber:
		return a.num == b.num
	case KindBool:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	default:
		return a.ref == b.ref
	}
}

// Display returns the user-visible form of the value, as printed by log.
func (v Value) Display() string {
	switch v.kind {
	case KindNil:
		return "Nil"
	case KindNumber:
		return FormatNum(v.num)
	case KindBool:
		if v.num != 0 {
			return "True"
		}
		return "False"
	case KindString:
		return v.str
	case KindArray:
		return v.Array().Display()
	case KindFunction:
		return v.FuncSet().Display()
	case KindBuiltin:
		b := v.Builtin()
		return fmt.Sprintf("<builtin %s>", b.Name)
	case KindClass:
		return fmt.Sprintf("<%s %s>", v.Class().KeywordName, v.Class().Name)
	case KindInstance:
		return v.Instance().Display()
	case KindModule:
		return fmt.Sprintf("<module %s>", v.Module().Name)
	default:
		return "<unknown>"
	}
}

// TypeName returns the language-level type name for diagnostics.
func (v Value) TypeName() string {
	return v.kind.String()
}

// FormatNum formats a Number the way log displays it: integral values
// without a decimal point, others in shortest round-trip form.
func FormatNum(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case n == math.Trunc(n) && math.Abs(n) < 1e15:
		return strconv.FormatInt(int64(n), 10)
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}

// -----------------------------------------------------------------------------
// Reference types
// -----------------------------------------------------------------------------

// Array is an ordered, mutable sequence of values, shared by reference.
type Array struct {
	Elems []Value
}

// Display returns the array in literal form.
func (a *Array) Display() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, el := range a.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(el.Display())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Function is a single function declaration: parameter list, body, and
// the environment captured at declaration (closure).
type Function struct {
	Name   string
	Params []string
	Body   *ast.BlockStmt
	Env    *Environment
}

// Arity returns the number of parameters.
func (f *Function) Arity() int { return len(f.Params) }

// FuncSet is an ordered set of same-named function declarations.
// Calls resolve by argument count; when several declarations share an
// arity, the most recently declared one wins.
type FuncSet struct {
	Name      string
	Overloads []*Function // in declaration order
}

// Add appends a declaration to the set.
func (fs *FuncSet) Add(fn *Function) {
	fs.Overloads = append(fs.Overloads, fn)
}

// Resolve returns the declaration matching the argument count, scanning
// newest-first, or nil if no declaration matches.
func (fs *FuncSet) Resolve(argc int) *Function {
	for i := len(fs.Overloads) - 1; i >= 0; i-- {
		if fs.Overloads[i].Arity() == argc {
			return fs.Overloads[i]
		}
	}
	return nil
}

// Arities returns the distinct arities in the set, for diagnostics.
func (fs *FuncSet) Arities() []int {
	seen := map[int]bool{}
	var out []int
	for _, fn := range fs.Overloads {
		if !seen[fn.Arity()] {
			seen[fn.Arity()] = true
			out = append(out, fn.Arity())
		}
	}
	return out
}

// Display returns the function set in name/arity form.
func (fs *FuncSet) Display() string {
	if len(fs.Overloads) == 1 {
		return fmt.Sprintf("<fn %s/%d>", fs.Name, fs.Overloads[0].Arity())
	}
	return fmt.Sprintf("<fn %s (%d overloads)>", fs.Name, len(fs.Overloads))
}

// Builtin is a standard-library callable. MinArgs/MaxArgs bound the
// accepted argument count (equal for fixed arity).
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      func(args []Value) (Value, error)
}

// FieldDef pairs a field name with its default expression, evaluated at
// instantiation time in the class's declaration environment.
type FieldDef struct {
	Name    string
	Default ast.Expr
}

// Class is a struct/class type object: field defaults, a method table,
// and an optional single parent.
type Class struct {
	Name        string
	KeywordName string // "struct" or "class", as written in source
	Parent      *Class
	Fields      []FieldDef // declared fields in source order
	Methods     map[string]*FuncSet
	Env         *Environment // declaration environment for defaults and methods
}

// AllFields returns the effective field list: ancestor fields first,
// most-derived defaults winning on name collisions, in a stable order.
func (c *Class) AllFields() []FieldDef {
	var chain []*Class
	for k := c; k != nil; k = k.Parent {
		chain = append(chain, k)
	}
	var out []FieldDef
	index := map[string]int{}
	// Walk root-first so derived classes override ancestor defaults.
	for i := len(chain) - 1; i >= 0; i-- {
		for _, f := range chain[i].Fields {
			if j, ok := index[f.Name]; ok {
				out[j] = f
				continue
			}
			index[f.Name] = len(out)
			out = append(out, f)
		}
	}
	return out
}

// FindMethod walks the parent chain from c upward and returns the first
// method set with the given name, or nil.
func (c *Class) FindMethod(name string) *FuncSet {
	for k := c; k != nil; k = k.Parent {
		if fs, ok := k.Methods[name]; ok {
			return fs
		}
	}
	return nil
}

// Instance is an allocated struct/class value. Its field key set is fixed
// at construction; no field can be added afterwards.
type Instance struct {
	Class  *Class
	Fields map[string]Value
	order  []string // field names in declaration order, for display
}

// NewInstance allocates an instance with the given ordered field names.
// Values are filled in by the evaluator.
func NewInstance(c *Class, order []string) *Instance {
	return &Instance{
		Class:  c,
		Fields: make(map[string]Value, len(order)),
		order:  order,
	}
}

// Get returns the field value and whether the field exists.
func (i *Instance) Get(name string) (Value, bool) {
	v, ok := i.Fields[name]
	return v, ok
}

// Set updates an existing field. Returns false if the field does not exist.
func (i *Instance) Set(name string, v Value) bool {
	if _, ok := i.Fields[name]; !ok {
		return false
	}
	i.Fields[name] = v
	return true
}

// Display returns the instance with its fields in declaration order.
func (i *Instance) Display() string {
	var sb strings.Builder
	sb.WriteString(i.Class.Name)
	sb.WriteString(" { ")
	for n, name := range i.order {
		if n > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(i.Fields[name].Display())
	}
	sb.WriteString(" }")
	return sb.String()
}

// Module is an immutable named table of standard-library values,
// constructed once per run and installed into the root environment.
type Module struct {
	Name    string
	Members map[string]Value
}

// Get returns the member value and whether it exists.
func (m *Module) Get(name string) (Value, bool) {
	v, ok := m.Members[name]
	return v, ok
}
