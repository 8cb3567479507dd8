package recolon_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recolon-lang/recolon"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		wantErr bool
	}{
		{
			name: "hello",
			src:  `log("hello");`,
			want: "hello\n",
		},
		{
			name: "arithmetic",
			src:  `log(1 + 2 * 3);`,
			want: "7\n",
		},
		{
			name: "variables and strings",
			src:  `var who = "world"; log("hello " + who);`,
			want: "hello world\n",
		},
		{
			name: "for loop",
			src:  `for (var i = 0; i < 3; i = i + 1) { log(i); }`,
			want: "0\n1\n2\n",
		},
		{
			name: "compose loop",
			src: `var i = 0;
compose {
	if (i >= 3) { break; }
	log(i);
	i = i + 1;
}`,
			want: "0\n1\n2\n",
		},
		{
			name: "function overloads",
			src: `fn area(s) { return s * s; }
fn area(w, h) { return w * h; }
log(area(3));
log(area(3, 4));`,
			want: "9\n12\n",
		},
		{
			name: "classes",
			src: `class Animal {
	name = "generic";
	fn speak() { return this.name + "?"; }
}
class Dog : Animal {
	name = "rex";
	fn speak() { return this.name + "!"; }
}
var d = Dog();
log(d.speak());`,
			want: "rex!\n",
		},
		{
			name: "math module",
			src:  `log(math.pow(2, 10)); log(math.lgm(8, 2));`,
			want: "1024\n3\n",
		},
		{
			name:    "parse error",
			src:     `var = 1;`,
			wantErr: true,
		},
		{
			name:    "lex error",
			src:     `var s = "open;`,
			wantErr: true,
		},
		{
			name:    "ownership error",
			src:     `var a = [1, 2, 3]; var b = a; log(a);`,
			wantErr: true,
		},
		{
			name:    "runtime error",
			src:     `log(1 / 0);`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := recolon.Run(tt.src, nil)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorTypes(t *testing.T) {
	_, err := recolon.Compile(`var s = "open;`)
	var lexErr *recolon.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Line)

	_, err = recolon.Compile(`var = 1;`)
	var parseErr *recolon.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Line)
	assert.Greater(t, parseErr.Column, 1)

	_, err = recolon.Compile("var a = [1];\nvar b = a;\nlog(a);")
	var ownErr *recolon.OwnershipError
	require.ErrorAs(t, err, &ownErr)
	assert.Equal(t, "UseAfterMove", ownErr.Kind)
	assert.Equal(t, 3, ownErr.Line)

	_, err = recolon.Run(`log(missing);`, nil)
	var evalErr *recolon.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "UndefinedVariable", evalErr.Kind)
}

func TestCompileOnceRunTwice(t *testing.T) {
	prog, err := recolon.Compile(`var x = 1; log(x + 1);`)
	require.NoError(t, err)

	out1, err := prog.Run(nil)
	require.NoError(t, err)
	out2, err := prog.Run(nil)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out1)
	assert.Equal(t, out1, out2, "runs must be independent")
}

func TestRunWithWriters(t *testing.T) {
	var stdout, stderr bytes.Buffer
	captured, err := recolon.Run(`log("out"); err("oops");`, &recolon.Config{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	require.NoError(t, err)
	assert.Empty(t, captured, "capture disabled when Stdout is set")
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestErrOutputDiscardedByDefault(t *testing.T) {
	out, err := recolon.Run(`err("hidden"); log("seen");`, nil)
	require.NoError(t, err)
	assert.Equal(t, "seen\n", out)
}

func TestSeededRandom(t *testing.T) {
	src := `log(math.random(0, 100));`
	cfg := &recolon.Config{Seed: 7}
	out1, err := recolon.Run(src, cfg)
	require.NoError(t, err)
	out2, err := recolon.Run(src, cfg)
	require.NoError(t, err)
	assert.Equal(t, out1, out2, "same seed must reproduce")
}

func TestShortCircuitLaw(t *testing.T) {
	// The err statement on the dead side must never fire.
	var stderr bytes.Buffer
	got, err := recolon.Run(
		`log(False and "skipped"); log(True or "skipped");`,
		&recolon.Config{Stderr: &stderr},
	)
	require.NoError(t, err)
	assert.Equal(t, "False\nTrue\n", got)
	assert.Empty(t, stderr.String())
}

func TestMustCompile(t *testing.T) {
	prog := recolon.MustCompile(`log(1);`)
	out, err := prog.Run(nil)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	assert.Panics(t, func() {
		recolon.MustCompile(`var = 1;`)
	})
}

func TestExec(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := recolon.Exec(`log("fine");`, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "fine\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestExecReportsDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"parse error", `var = 1;`, "parse error"},
		{"ownership error", `var a = [1]; var b = a; log(a);`, "ownership error"},
		{"runtime error", `log(1 / 0);`, "runtime error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := recolon.Exec(tt.src, &stdout, &stderr)
			assert.Equal(t, 1, code)
			assert.True(t, strings.Contains(stderr.String(), tt.want),
				"stderr %q should mention %q", stderr.String(), tt.want)
		})
	}
}

func TestBuiltins(t *testing.T) {
	syms := recolon.Builtins()
	require.NotEmpty(t, syms)
	assert.Equal(t, "log", syms[0].Name)
	assert.Equal(t, "statement", syms[0].Kind)

	names := make(map[string]recolon.BuiltinSymbol)
	for _, s := range syms {
		names[s.Name] = s
	}
	assert.Contains(t, names, "math.pi")
	assert.Contains(t, names, "math.random")
	assert.Contains(t, names, "std.clock")
	assert.Equal(t, "constant", names["math.nan"].Kind)
	assert.Equal(t, 2, names["math.lgm"].Arity)
}

func TestProgramAccessors(t *testing.T) {
	src := `log(1);`
	prog := recolon.MustCompile(src)
	assert.Equal(t, src, prog.Source())
	require.NotNil(t, prog.AST())
	assert.Len(t, prog.AST().Stmts, 1)
}
