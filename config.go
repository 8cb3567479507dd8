package recolon

import "io"

// Config holds configuration options for script execution.
type Config struct {
	// Stdout is the writer for log statements.
	// If nil, output is captured and returned from Run.
	Stdout io.Writer

	// Stderr is the writer for err statements.
	// If nil, err output is discarded.
	Stderr io.Writer

	// Seed initializes the math.random source.
	// Zero means a time-based seed; any other value gives a
	// reproducible sequence.
	Seed int64
}
