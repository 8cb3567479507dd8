// Package lexer provides Recolon source code tokenization.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/recolon-lang/recolon/internal/token"
)

// Error represents a lexical error with source position.
type Error struct {
	Pos     token.Position
	Message string
}

// Error returns a formatted error message with position information.
func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// nonASCII stands in for any character outside the ASCII range. It is
// never a token on its own: strings consume the raw bytes, and anywhere
// else it is an unrecognized character.
const nonASCII byte = 0x80

// Lexer tokenizes Recolon source code.
type Lexer struct {
	src     []byte         // Source code
	ch      byte           // Current character (0 at EOF, nonASCII for multi-byte)
	cr      rune           // Decoded rune when ch == nonASCII, for diagnostics
	offset  int            // Current byte offset
	pos     token.Position // Current position
	nextPos token.Position // Position of next character
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   1,
			Column: 1,
		},
	}
	l.next() // Initialize first character
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token.
// Lexical errors are reported as ILLEGAL tokens whose Value holds the message.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()

	// Skip comments; they are discarded, not emitted
	for l.ch == '#' {
		l.skipComment()
		l.skipWhitespace()
	}

	pos := l.pos

	if l.ch == 0 {
		return Token{Type: token.EOF, Pos: pos}
	}

	switch l.ch {
	case '+':
		l.next()
		return Token{Type: token.ADD, Pos: pos, Value: "+"}
	case '-':
		l.next()
		return Token{Type: token.SUB, Pos: pos, Value: "-"}
	case '*':
		l.next()
		return Token{Type: token.MUL, Pos: pos, Value: "*"}
	case '/':
		l.next()
		return Token{Type: token.DIV, Pos: pos, Value: "/"}

	case '=':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.EQUALS, Pos: pos, Value: "=="}
		}
		return Token{Type: token.ASSIGN, Pos: pos, Value: "="}

	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.NOT_EQUALS, Pos: pos, Value: "!="}
		}
		return Token{Type: token.NOT, Pos: pos, Value: "!"}

	case '<':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.LTE, Pos: pos, Value: "<="}
		}
		return Token{Type: token.LESS, Pos: pos, Value: "<"}

	case '>':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.GTE, Pos: pos, Value: ">="}
		}
		return Token{Type: token.GREATER, Pos: pos, Value: ">"}

	case '(':
		l.next()
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}
	case '{':
		l.next()
		return Token{Type: token.LBRACE, Pos: pos, Value: "{"}
	case '}':
		l.next()
		return Token{Type: token.RBRACE, Pos: pos, Value: "}"}
	case '[':
		l.next()
		return Token{Type: token.LBRACKET, Pos: pos, Value: "["}
	case ']':
		l.next()
		return Token{Type: token.RBRACKET, Pos: pos, Value: "]"}
	case ',':
		l.next()
		return Token{Type: token.COMMA, Pos: pos, Value: ","}
	case ';':
		l.next()
		return Token{Type: token.SEMICOLON, Pos: pos, Value: ";"}
	case '.':
		l.next()
		return Token{Type: token.DOT, Pos: pos, Value: "."}
	case ':':
		l.next()
		return Token{Type: token.COLON, Pos: pos, Value: ":"}

	case '"':
		return l.scanString(pos)

	default:
		if isDigit(l.ch) {
			return l.scanNumber(pos)
		}
		if isIdentStart(l.ch) {
			return l.scanIdent(pos)
		}
		ch := rune(l.ch)
		if l.ch == nonASCII {
			ch = l.cr
		}
		l.next()
		return Token{Type: token.ILLEGAL, Pos: pos, Value: fmt.Sprintf("unrecognized character %q", ch)}
	}
}

// Tokenize scans the entire source and returns the token stream,
// terminated by an explicit EOF token. The first lexical error aborts
// tokenization; no partial stream is returned.
func Tokenize(src string) ([]Token, error) {
	l := NewFromString(src)
	var toks []Token
	for {
		tok := l.Scan()
		if tok.Type == token.ILLEGAL {
			return nil, &Error{Pos: tok.Pos, Message: tok.Value}
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// scanString scans a double-quoted string literal. Strings may span lines
// and carry no escape processing; the characters between the quotes are
// the literal value.
func (l *Lexer) scanString(pos token.Position) Token {
	l.next() // consume opening quote
	start := l.pos.Offset

	for l.ch != 0 && l.ch != '"' {
		l.next()
	}

	if l.ch != '"' {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated string"}
	}

	value := string(l.src[start:l.pos.Offset])
	l.next() // consume closing quote
	return Token{Type: token.STRING, Pos: pos, Value: value}
}

// scanNumber scans an integer or decimal literal. A '.' is part of the
// number only when followed by a digit, so "1.foo()" lexes as 1 . foo.
func (l *Lexer) scanNumber(pos token.Position) Token {
	start := pos.Offset

	for isDigit(l.ch) {
		l.next()
	}
	if l.ch == '.' && l.offset < len(l.src) && isDigit(l.src[l.offset]) {
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
	}

	return Token{Type: token.NUMBER, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

func (l *Lexer) scanIdent(pos token.Position) Token {
	start := pos.Offset
	for isIdentContinue(l.ch) {
		l.next()
	}
	name := string(l.src[start:l.endOffset()])
	return Token{Type: token.LookupIdent(name), Pos: pos, Value: name}
}

// endOffset returns the correct end offset for slicing l.src.
// At EOF, l.pos is not updated, so we use len(l.src); otherwise l.pos.Offset.
func (l *Lexer) endOffset() int {
	if l.ch == 0 {
		return len(l.src)
	}
	return l.pos.Offset
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.next()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.next()
	}
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		l.ch = 0
		return
	}

	l.pos = l.nextPos

	// Multi-byte runes advance by their full width but are exposed as
	// the nonASCII sentinel; the decoded rune is kept for diagnostics.
	if l.src[l.offset] >= utf8.RuneSelf {
		r, size := utf8.DecodeRune(l.src[l.offset:])
		l.offset += size
		l.nextPos.Column++
		l.nextPos.Offset = l.offset
		l.ch = nonASCII
		l.cr = r
		return
	}

	l.ch = l.src[l.offset]
	l.offset++
	l.nextPos.Column++
	l.nextPos.Offset = l.offset

	if l.ch == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
	}
}

// Helper functions

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
