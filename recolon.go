package recolon

import (
	"fmt"
	"io"

	"github.com/recolon-lang/recolon/internal/ownership"
	"github.com/recolon-lang/recolon/internal/parser"
)

// Version is the recolon version string.
const Version = "0.1.0"

// Run executes a Recolon script.
// This is a convenience function for one-off execution.
// For repeated execution of the same script, use Compile followed by
// Program.Run.
//
// Returns the script's log output as a string when config.Stdout is unset,
// or an error if lexing, parsing, ownership analysis, or execution fails.
//
// Example:
//
//	output, err := recolon.Run(`log("hello");`, nil)
//	// output: "hello\n"
func Run(src string, config *Config) (string, error) {
	prog, err := Compile(src)
	if err != nil {
		return "", err
	}
	return prog.Run(config)
}

// Compile lexes, parses, and ownership-checks a Recolon script.
// The returned Program can be executed multiple times.
//
// Errors are returned as *LexError, *ParseError, or *OwnershipError.
//
// Example:
//
//	prog, err := recolon.Compile(`var x = 2; log(x * 21);`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	output1, _ := prog.Run(nil)
//	output2, _ := prog.Run(nil)
func Compile(src string) (*Program, error) {
	astProg, err := parser.Parse(src)
	if err != nil {
		return nil, convertCompileError(err)
	}

	// Ownership violations are fatal: a rejected program never runs.
	if _, err := ownership.Analyze(astProg); err != nil {
		return nil, convertOwnershipError(err)
	}

	return &Program{
		ast:    astProg,
		source: src,
	}, nil
}

// MustCompile is like Compile but panics on error.
// It simplifies safe initialization of global Program variables.
func MustCompile(src string) *Program {
	prog, err := Compile(src)
	if err != nil {
		panic(`recolon: Compile: ` + err.Error())
	}
	return prog
}

// Exec compiles and runs a script, writing log output to stdout and both
// err output and diagnostics to stderr. It returns the process exit
// status: 0 on success, 1 on any lex, parse, ownership, or runtime error.
//
// Example:
//
//	os.Exit(recolon.Exec(src, os.Stdout, os.Stderr))
func Exec(src string, stdout, stderr io.Writer) int {
	prog, err := Compile(src)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if _, err := prog.Run(&Config{Stdout: stdout, Stderr: stderr}); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
