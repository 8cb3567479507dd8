package lexer

import (
	"testing"

	"github.com/recolon-lang/recolon/internal/token"
)

// FuzzLexer tests that the lexer handles arbitrary input without panicking
// and produces positioned tokens.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		// Basic programs
		`var x = 1;`,
		`log("hello");`,
		`fn add(a, b) { return a + b; }`,
		`class Dog : Animal { name = "rex"; fn speak() { log(this.name); } }`,

		// Expressions
		`x + y * z`,
		`a == b and c != d`,
		`!done or count >= 10`,
		`nums[i] = nums[j]`,
		`math.sqrt(2)`,

		// Numbers
		`123 456.789 0 007`,

		// Strings
		`"hello" "two words"`,
		"\"spans\nlines\"",

		// Edge cases
		``,
		`# comment only`,
		`"unterminated`,
		`1.`,
		`...`,

		// Unicode
		`"привет мир"`,
		`"こんにちは"`,
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		l := New(data)

		tokenCount := 0
		const maxTokens = 10000 // Prevent infinite loops

		for tokenCount < maxTokens {
			tok := l.Scan()

			if tok.Pos.Line < 0 || tok.Pos.Column < 0 || tok.Pos.Offset < 0 {
				t.Errorf("invalid position: %v", tok.Pos)
			}

			if tok.Type == token.EOF || tok.Type == token.ILLEGAL {
				break
			}
			tokenCount++
		}

		if tokenCount >= maxTokens {
			t.Skip("too many tokens, possibly malformed input")
		}
	})
}
