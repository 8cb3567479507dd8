// Package stdlib registers the built-in modules into an environment.
//
// Two modules exist: math (constants and numeric functions) and std
// (runtime utilities). Module tables are built once per run and are
// immutable afterwards; scripts cannot assign to module members.
package stdlib

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/recolon-lang/recolon/internal/value"
)

// Register installs the math and std modules into env. The random source
// backs math.random; callers seed it for reproducible runs.
func Register(env *value.Environment, rng *rand.Rand) {
	env.Define("math", value.ModuleVal(mathModule(rng)))
	env.Define("std", value.ModuleVal(stdModule()))
}

func mathModule(rng *rand.Rand) *value.Module {
	m := &value.Module{Name: "math", Members: map[string]value.Value{
		"pi":  value.Num(math.Pi),
		"e":   value.Num(math.E),
		"tau": value.Num(2 * math.Pi),
		"nan": value.Num(math.NaN()),
	}}

	oneArg := func(name string, fn func(float64) float64) {
		m.Members[name] = builtin(name, 1, 1, func(args []value.Value) (value.Value, error) {
			x, err := numArg(args, 0)
			if err != nil {
				return value.Nil(), err
			}
			return value.Num(fn(x)), nil
		})
	}
	twoArg := func(name string, fn func(a, b float64) float64) {
		m.Members[name] = builtin(name, 2, 2, func(args []value.Value) (value.Value, error) {
			a, err := numArg(args, 0)
			if err != nil {
				return value.Nil(), err
			}
			b, err := numArg(args, 1)
			if err != nil {
				return value.Nil(), err
			}
			return value.Num(fn(a, b)), nil
		})
	}

	oneArg("floor", math.Floor)
	oneArg("ceil", math.Ceil)
	oneArg("round", math.Round)
	oneArg("sqrt", math.Sqrt)
	oneArg("abs", math.Abs)
	oneArg("sin", math.Sin)
	oneArg("cos", math.Cos)
	oneArg("tan", math.Tan)
	oneArg("degrees", func(x float64) float64 { return x * 180 / math.Pi })
	oneArg("radians", func(x float64) float64 { return x * math.Pi / 180 })

	twoArg("min", math.Min)
	twoArg("max", math.Max)
	twoArg("pow", math.Pow)

	m.Members["random"] = builtin("random", 2, 2, func(args []value.Value) (value.Value, error) {
		low, err := numArg(args, 0)
		if err != nil {
			return value.Nil(), err
		}
		high, err := numArg(args, 1)
		if err != nil {
			return value.Nil(), err
		}
		if high < low {
			return value.Nil(), fmt.Errorf("empty range [%s, %s)", value.FormatNum(low), value.FormatNum(high))
		}
		return value.Num(low + rng.Float64()*(high-low)), nil
	})

	// lgm(x) is the natural logarithm; lgm(x, base) rebases it.
	m.Members["lgm"] = builtin("lgm", 1, 2, func(args []value.Value) (value.Value, error) {
		x, err := numArg(args, 0)
		if err != nil {
			return value.Nil(), err
		}
		if len(args) == 1 {
			return value.Num(math.Log(x)), nil
		}
		base, err := numArg(args, 1)
		if err != nil {
			return value.Nil(), err
		}
		return value.Num(math.Log(x) / math.Log(base)), nil
	})

	return m
}

func stdModule() *value.Module {
	return &value.Module{Name: "std", Members: map[string]value.Value{
		"clock": builtin("clock", 0, 0, func([]value.Value) (value.Value, error) {
			return value.Num(float64(time.Now().UnixNano()) / 1e9), nil
		}),
	}}
}

func builtin(name string, min, max int, fn func([]value.Value) (value.Value, error)) value.Value {
	return value.BuiltinVal(&value.Builtin{Name: name, MinArgs: min, MaxArgs: max, Fn: fn})
}

func numArg(args []value.Value, i int) (float64, error) {
	if !args[i].IsNumber() {
		return 0, fmt.Errorf("argument %d must be a Number, got %s", i+1, args[i].TypeName())
	}
	return args[i].Num(), nil
}
