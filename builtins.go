package recolon

import "github.com/recolon-lang/recolon/internal/stdlib"

// BuiltinSymbol describes one built-in name available to scripts.
type BuiltinSymbol struct {
	// Name is the qualified name as written in scripts, e.g. "math.sqrt".
	Name string `yaml:"name" json:"name"`

	// Arity is the maximum accepted argument count; constants report 0.
	Arity int `yaml:"arity" json:"arity"`

	// Kind is "constant", "function", or "statement".
	Kind string `yaml:"kind" json:"kind"`
}

// Builtins returns every built-in symbol in a stable order: the output
// statements log and err, the math module, then the std module.
func Builtins() []BuiltinSymbol {
	syms := stdlib.Symbols()
	out := make([]BuiltinSymbol, len(syms))
	for i, s := range syms {
		out[i] = BuiltinSymbol{
			Name:  s.Name,
			Arity: s.Arity,
			Kind:  string(s.Kind),
		}
	}
	return out
}
