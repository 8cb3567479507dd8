package lexer

import (
	"strings"
	"testing"

	"github.com/recolon-lang/recolon/internal/token"
)

func TestScanBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Token
	}{
		{"+", []token.Token{token.ADD, token.EOF}},
		{"-", []token.Token{token.SUB, token.EOF}},
		{"*", []token.Token{token.MUL, token.EOF}},
		{"/", []token.Token{token.DIV, token.EOF}},
		{"=", []token.Token{token.ASSIGN, token.EOF}},
		{"==", []token.Token{token.EQUALS, token.EOF}},
		{"!=", []token.Token{token.NOT_EQUALS, token.EOF}},
		{"<", []token.Token{token.LESS, token.EOF}},
		{"<=", []token.Token{token.LTE, token.EOF}},
		{">", []token.Token{token.GREATER, token.EOF}},
		{">=", []token.Token{token.GTE, token.EOF}},
		{"!", []token.Token{token.NOT, token.EOF}},
		{"(", []token.Token{token.LPAREN, token.EOF}},
		{")", []token.Token{token.RPAREN, token.EOF}},
		{"{", []token.Token{token.LBRACE, token.EOF}},
		{"}", []token.Token{token.RBRACE, token.EOF}},
		{"[", []token.Token{token.LBRACKET, token.EOF}},
		{"]", []token.Token{token.RBRACKET, token.EOF}},
		{",", []token.Token{token.COMMA, token.EOF}},
		{";", []token.Token{token.SEMICOLON, token.EOF}},
		{".", []token.Token{token.DOT, token.EOF}},
		{":", []token.Token{token.COLON, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewFromString(tt.input)
			for i, exp := range tt.expected {
				tok := l.Scan()
				if tok.Type != exp {
					t.Errorf("token[%d]: expected %v, got %v", i, exp, tok.Type)
				}
			}
		})
	}
}

func TestScanKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Token
	}{
		{"var", token.VAR},
		{"if", token.IF},
		{"elif", token.ELIF},
		{"else", token.ELSE},
		{"while", token.WHILE},
		{"for", token.FOR},
		{"in", token.IN},
		{"compose", token.COMPOSE},
		{"fn", token.FN},
		{"struct", token.STRUCT},
		{"class", token.CLASS},
		{"log", token.LOG},
		{"err", token.ERR},
		{"and", token.AND},
		{"or", token.OR},
		{"True", token.TRUE},
		{"False", token.FALSE},
		{"Nil", token.NIL},
		{"break", token.BREAK},
		{"continue", token.CONTINUE},
		{"return", token.RETURN},
		{"this", token.THIS},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, tok.Type)
			}
		})
	}
}

func TestScanIdentifiers(t *testing.T) {
	// Keyword lookup is case-sensitive: "If" and "true" are names.
	tests := []string{"x", "foo", "_tmp", "snake_case", "If", "true", "VAR", "x1"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tok := NewFromString(input).Scan()
			if tok.Type != token.NAME {
				t.Errorf("expected NAME, got %v", tok.Type)
			}
			if tok.Value != input {
				t.Errorf("expected value %q, got %q", input, tok.Value)
			}
		})
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{"0", "0"},
		{"42", "42"},
		{"3.14", "3.14"},
		{"10.0", "10.0"},
		{"007", "007"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != token.NUMBER {
				t.Fatalf("expected NUMBER, got %v", tok.Type)
			}
			if tok.Value != tt.value {
				t.Errorf("expected value %q, got %q", tt.value, tok.Value)
			}
		})
	}
}

func TestScanNumberDotNotFollowedByDigit(t *testing.T) {
	// "1.foo" is NUMBER DOT NAME: the dot belongs to the literal only
	// when a digit follows.
	l := NewFromString("1.foo")
	want := []token.Token{token.NUMBER, token.DOT, token.NAME, token.EOF}
	for i, exp := range want {
		tok := l.Scan()
		if tok.Type != exp {
			t.Errorf("token[%d]: expected %v, got %v", i, exp, tok.Type)
		}
	}
}

func TestScanStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
	}{
		{"simple", `"hello"`, "hello"},
		{"empty", `""`, ""},
		{"spaces", `"a b c"`, "a b c"},
		{"multiline", "\"line one\nline two\"", "line one\nline two"},
		{"no escapes", `"a\nb"`, `a\nb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != token.STRING {
				t.Fatalf("expected STRING, got %v", tok.Type)
			}
			if tok.Value != tt.value {
				t.Errorf("expected value %q, got %q", tt.value, tok.Value)
			}
		})
	}
}

func TestScanUnterminatedString(t *testing.T) {
	tok := NewFromString(`"oops`).Scan()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", tok.Type)
	}
	if !strings.Contains(tok.Value, "unterminated") {
		t.Errorf("unexpected message %q", tok.Value)
	}
}

func TestScanComments(t *testing.T) {
	l := NewFromString("# leading comment\nvar x # trailing\n# another\n= 1")
	want := []token.Token{token.VAR, token.NAME, token.ASSIGN, token.NUMBER, token.EOF}
	for i, exp := range want {
		tok := l.Scan()
		if tok.Type != exp {
			t.Errorf("token[%d]: expected %v, got %v", i, exp, tok.Type)
		}
	}
}

func TestScanPositions(t *testing.T) {
	l := NewFromString("var x\n  = 1")

	type want struct {
		typ          token.Token
		line, column int
	}
	wants := []want{
		{token.VAR, 1, 1},
		{token.NAME, 1, 5},
		{token.ASSIGN, 2, 3},
		{token.NUMBER, 2, 5},
	}
	for i, w := range wants {
		tok := l.Scan()
		if tok.Type != w.typ {
			t.Fatalf("token[%d]: expected %v, got %v", i, w.typ, tok.Type)
		}
		if tok.Pos.Line != w.line || tok.Pos.Column != w.column {
			t.Errorf("token[%d]: expected %d:%d, got %d:%d",
				i, w.line, w.column, tok.Pos.Line, tok.Pos.Column)
		}
	}
}

func TestTokenize(t *testing.T) {
	toks, err := Tokenize(`var nums = [1, 2.5, 3];`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[len(toks)-1].Type != token.EOF {
		t.Errorf("token stream not EOF-terminated")
	}
	want := []token.Token{
		token.VAR, token.NAME, token.ASSIGN, token.LBRACKET,
		token.NUMBER, token.COMMA, token.NUMBER, token.COMMA, token.NUMBER,
		token.RBRACKET, token.SEMICOLON, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}
	for i, exp := range want {
		if toks[i].Type != exp {
			t.Errorf("token[%d]: expected %v, got %v", i, exp, toks[i].Type)
		}
	}
}

func TestTokenizeError(t *testing.T) {
	_, err := Tokenize("var s = \"open")
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if lexErr.Pos.Line != 1 {
		t.Errorf("expected line 1, got %d", lexErr.Pos.Line)
	}
}

func TestTokenizeIllegalChar(t *testing.T) {
	_, err := Tokenize("var x = 1 ? 2")
	if err == nil {
		t.Fatal("expected error for illegal character")
	}
}

func TestScanStringsKeepUnicode(t *testing.T) {
	// String contents are raw bytes; multi-byte runes must pass through
	// intact, including ones whose low byte collides with '"', '#' or an
	// operator (Ģ is U+0122, ģ U+0123, ī U+012B).
	tests := []struct {
		name  string
		input string
		value string
	}{
		{"rune low byte is quote", `"aĢb"`, "aĢb"},
		{"rune low byte is hash", `"aģb"`, "aģb"},
		{"rune low byte is plus", `"aīb"`, "aīb"},
		{"math symbols", `"π ≈ 3"`, "π ≈ 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != token.STRING {
				t.Fatalf("expected STRING, got %v (%q)", tok.Type, tok.Value)
			}
			if tok.Value != tt.value {
				t.Errorf("expected value %q, got %q", tt.value, tok.Value)
			}
		})
	}
}

func TestTokenizeUnicodeString(t *testing.T) {
	toks, err := Tokenize(`log("aĢb");`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Token{
		token.LOG, token.LPAREN, token.STRING, token.RPAREN, token.SEMICOLON, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}
	for i, exp := range want {
		if toks[i].Type != exp {
			t.Errorf("token[%d]: expected %v, got %v", i, exp, toks[i].Type)
		}
	}
	if toks[2].Value != "aĢb" {
		t.Errorf("expected string value %q, got %q", "aĢb", toks[2].Value)
	}
}

func TestTokenizeNonASCIIOutsideString(t *testing.T) {
	// Outside string literals only ASCII is legal. The error must name
	// the offending rune, not a byte of its encoding, and the rest of
	// the line must not be silently swallowed.
	tests := []struct {
		name  string
		input string
		rune  string
	}{
		{"ident tail", "var xģ = 1;", "ģ"},
		{"operator position", "var x = 1 ī 2;", "ī"},
		{"bare", "λ", "λ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatal("expected error for non-ASCII character")
			}
			if !strings.Contains(err.Error(), tt.rune) {
				t.Errorf("error %q should mention %q", err, tt.rune)
			}
		})
	}
}
