// recolon - interpreter for the Recolon scripting language.
//
// Runs a script file, a -e one-liner, or an interactive prompt.
// Uses manual argument parsing so flags and the script path can be
// mixed freely.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/peterh/liner"

	"github.com/recolon-lang/recolon"
	"github.com/recolon-lang/recolon/internal/ast"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: recolon [-d] [--seed N] [-e 'prog' | script.rcn]"
	longUsage  = `Arguments:
  -e 'prog'         run program text instead of a script file
  --seed N          seed math.random for reproducible runs

Debugging arguments:
  -d                print the parsed syntax tree to stderr and exit

Other:
  --builtins        list built-in symbols as YAML and exit
  -h, --help        show this help message
  -version          show recolon version and exit

With no script and no -e, recolon starts an interactive prompt.
`
)

func main() {
	var inline string
	haveInline := false
	debug := false
	listBuiltins := false
	var seed int64

	var i int
	for i = 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		if arg == "--" {
			i++
			break
		}
		if !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-e":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -e")
			}
			i++
			inline = os.Args[i]
			haveInline = true
		case "--seed":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: --seed")
			}
			i++
			n, err := strconv.ParseInt(os.Args[i], 10, 64)
			if err != nil {
				errorExitf("invalid seed: %s", os.Args[i])
			}
			seed = n
		case "-d":
			debug = true
		case "--builtins":
			listBuiltins = true
		case "-h", "--help":
			fmt.Printf("recolon %s - Recolon interpreter\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("recolon version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			os.Exit(0)
		default:
			// Handle flags with no space: -e'prog'.
			switch {
			case strings.HasPrefix(arg, "-e"):
				inline = arg[2:]
				haveInline = true
			default:
				errorExitf("flag provided but not defined: %s", arg)
			}
		}
	}

	if listBuiltins {
		out, err := yaml.Marshal(recolon.Builtins())
		if err != nil {
			errorExit(err)
		}
		os.Stdout.Write(out)
		os.Exit(0)
	}

	args := os.Args[i:]

	var src string
	switch {
	case haveInline:
		src = inline
		if len(args) > 0 {
			errorExitf("unexpected argument after -e: %s", args[0])
		}
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			errorExitf("cannot read script %s: %v", args[0], err)
		}
		src = string(content)
	case len(args) > 1:
		errorExitf(shortUsage)
	default:
		runPrompt(seed)
		return
	}

	prog, err := recolon.Compile(src)
	if err != nil {
		diagExit(err)
	}

	if debug {
		if err := ast.NewPrinter(os.Stderr).Print(prog.AST()); err != nil {
			errorExit(err)
		}
		os.Exit(0)
	}

	_, err = prog.Run(&recolon.Config{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Seed:   seed,
	})
	if err != nil {
		diagExit(err)
	}
}

// runPrompt reads and executes one script per line. Each line runs in a
// fresh environment, matching batch semantics.
func runPrompt(seed int64) {
	fmt.Printf("recolon %s (interactive; ctrl-d to exit)\n", version)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			return
		}
		if err != nil {
			errorExit(err)
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		_, runErr := recolon.Run(input, &recolon.Config{
			Stdout: os.Stdout,
			Stderr: os.Stderr,
			Seed:   seed,
		})
		if runErr != nil {
			color.New(color.FgRed).Fprintln(os.Stderr, runErr)
		}
	}
}

// diagExit prints a compile or runtime diagnostic in red and exits 1.
func diagExit(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, err)
	os.Exit(1)
}

// errorExitf prints a formatted usage error and exits with code 1.
func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "recolon: "+format+"\n", args...)
	os.Exit(1)
}

// errorExit prints an error and exits with code 1.
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "recolon: %v\n", err)
	os.Exit(1)
}
