package value

// Environment is a mapping from identifier to value with an optional
// reference to an enclosing environment, forming a lexical chain.
// Lookups walk the chain innermost to outermost and return the first
// match; new declarations always write to the innermost frame.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates an environment with the given parent.
// Pass nil for the root (global) environment.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent returns the enclosing environment, or nil for the root.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define binds name in this frame, shadowing any outer binding.
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Get resolves name by walking the chain from innermost to outermost.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// GetLocal resolves name in this frame only.
func (e *Environment) GetLocal(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Assign updates an existing binding on the frame that owns it.
// Returns false if no frame in the chain binds name.
func (e *Environment) Assign(name string, v Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = v
			return true
		}
	}
	return false
}
