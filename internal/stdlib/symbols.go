package stdlib

// SymbolKind distinguishes the three shapes of built-in surface.
type SymbolKind string

const (
	KindConstant  SymbolKind = "constant"
	KindFunction  SymbolKind = "function"
	KindStatement SymbolKind = "statement"
)

// Symbol describes one built-in name for documentation tooling.
// Arity is the maximum accepted argument count; constants report zero.
type Symbol struct {
	Name  string
	Arity int
	Kind  SymbolKind
}

// Symbols returns every built-in name in a stable, documented order:
// the output statements first, then the math module, then std.
func Symbols() []Symbol {
	return []Symbol{
		{Name: "log", Arity: 1, Kind: KindStatement},
		{Name: "err", Arity: 1, Kind: KindStatement},

		{Name: "math.pi", Kind: KindConstant},
		{Name: "math.e", Kind: KindConstant},
		{Name: "math.tau", Kind: KindConstant},
		{Name: "math.nan", Kind: KindConstant},
		{Name: "math.floor", Arity: 1, Kind: KindFunction},
		{Name: "math.ceil", Arity: 1, Kind: KindFunction},
		{Name: "math.round", Arity: 1, Kind: KindFunction},
		{Name: "math.sqrt", Arity: 1, Kind: KindFunction},
		{Name: "math.abs", Arity: 1, Kind: KindFunction},
		{Name: "math.min", Arity: 2, Kind: KindFunction},
		{Name: "math.max", Arity: 2, Kind: KindFunction},
		{Name: "math.random", Arity: 2, Kind: KindFunction},
		{Name: "math.pow", Arity: 2, Kind: KindFunction},
		{Name: "math.lgm", Arity: 2, Kind: KindFunction},
		{Name: "math.sin", Arity: 1, Kind: KindFunction},
		{Name: "math.cos", Arity: 1, Kind: KindFunction},
		{Name: "math.tan", Arity: 1, Kind: KindFunction},
		{Name: "math.degrees", Arity: 1, Kind: KindFunction},
		{Name: "math.radians", Arity: 1, Kind: KindFunction},

		{Name: "std.clock", Arity: 0, Kind: KindFunction},
	}
}
