package recolon

import (
	"bytes"
	"io"
	"math/rand"
	"time"

	"github.com/recolon-lang/recolon/internal/ast"
	"github.com/recolon-lang/recolon/internal/interp"
	"github.com/recolon-lang/recolon/internal/stdlib"
	"github.com/recolon-lang/recolon/internal/value"
)

// Program represents an analyzed Recolon script ready for execution.
// It is safe for concurrent use; each call to Run creates an
// independent global environment and random source.
type Program struct {
	ast    *ast.Program
	source string // Original source for debugging
}

// Run executes the program with the given configuration.
// Returns the log output as a string, or an error if execution fails.
//
// If config is nil, default configuration is used.
// If config.Stdout is set, output is written there and the returned
// string will be empty.
func (p *Program) Run(config *Config) (string, error) {
	if config == nil {
		config = &Config{}
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	globals := value.NewEnvironment(nil)
	stdlib.Register(globals, rng)

	var outputBuf *bytes.Buffer
	out := config.Stdout
	if out == nil {
		outputBuf = &bytes.Buffer{}
		out = outputBuf
	}
	errOut := config.Stderr
	if errOut == nil {
		errOut = io.Discard
	}

	m := interp.New(globals, out, errOut)
	if err := m.Execute(p.ast); err != nil {
		return "", convertEvalError(err)
	}

	if outputBuf != nil {
		return outputBuf.String(), nil
	}
	return "", nil
}

// AST returns the parsed syntax tree, for tooling such as the CLI's
// pretty-printer.
func (p *Program) AST() *ast.Program {
	return p.ast
}

// Source returns the original script source code.
func (p *Program) Source() string {
	return p.source
}
