// Package recolon provides an interpreter for the Recolon scripting
// language.
//
// Recolon is a small dynamically typed language with a static
// ownership/borrow pass: scripts that use moved-from values or create
// conflicting borrows are rejected before execution.
//
// # Quick Start
//
// For simple one-off execution:
//
//	output, err := recolon.Run(`log("hello");`, nil)
//
// With configuration:
//
//	output, err := recolon.Run(src, &recolon.Config{
//	    Seed: 42, // reproducible math.random
//	})
//
// # Compiled Programs
//
// For repeated execution of the same script:
//
//	prog, err := recolon.Compile(`var x = 2; log(x * 21);`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for range runs {
//	    output, err := prog.Run(nil)
//	    // ...
//	}
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [LexError]: invalid tokens in source
//   - [ParseError]: syntax errors
//   - [OwnershipError]: move/borrow violations found by static analysis
//   - [EvalError]: errors during execution
//
// All four carry a 1-based line and column.
//
// # Thread Safety
//
// Compiled [Program] objects are safe for concurrent use.
// Each call to [Program.Run] creates an independent global environment.
package recolon
