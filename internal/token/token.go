// Package token defines lexical tokens for Recolon.
package token

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF

	// Operators and delimiters
	operatorStart
	ADD // +
	SUB // -
	MUL // *
	DIV // /

	ASSIGN     // =
	EQUALS     // ==
	NOT_EQUALS // !=
	LESS       // <
	LTE        // <=
	GREATER    // >
	GTE        // >=
	NOT        // !

	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	SEMICOLON // ;
	DOT       // .
	COLON     // :
	operatorEnd

	// Keywords
	keywordStart
	VAR      // var
	IF       // if
	ELIF     // elif
	ELSE     // else
	WHILE    // while
	FOR      // for
	IN       // in
	COMPOSE  // compose
	FN       // fn
	STRUCT   // struct
	CLASS    // class
	LOG      // log
	ERR      // err
	AND      // and
	OR       // or
	TRUE     // True
	FALSE    // False
	NIL      // Nil
	BREAK    // break
	CONTINUE // continue
	RETURN   // return
	THIS     // this
	keywordEnd

	// Literals
	NAME   // name
	NUMBER // number
	STRING // string
)

// IsOperator returns true if the token is an operator or delimiter.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a literal (name, number, string).
func (t Token) IsLiteral() bool {
	return t == NAME || t == NUMBER || t == STRING
}

// tokenNames maps token types to their display names.
var tokenNames = map[Token]string{
	ILLEGAL:    "<illegal>",
	EOF:        "end of file",
	ADD:        "+",
	SUB:        "-",
	MUL:        "*",
	DIV:        "/",
	ASSIGN:     "=",
	EQUALS:     "==",
	NOT_EQUALS: "!=",
	LESS:       "<",
	LTE:        "<=",
	GREATER:    ">",
	GTE:        ">=",
	NOT:        "!",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	LBRACKET:   "[",
	RBRACKET:   "]",
	COMMA:      ",",
	SEMICOLON:  ";",
	DOT:        ".",
	COLON:      ":",
	VAR:        "var",
	IF:         "if",
	ELIF:       "elif",
	ELSE:       "else",
	WHILE:      "while",
	FOR:        "for",
	IN:         "in",
	COMPOSE:    "compose",
	FN:         "fn",
	STRUCT:     "struct",
	CLASS:      "class",
	LOG:        "log",
	ERR:        "err",
	AND:        "and",
	OR:         "or",
	TRUE:       "True",
	FALSE:      "False",
	NIL:        "Nil",
	BREAK:      "break",
	CONTINUE:   "continue",
	RETURN:     "return",
	THIS:       "this",
	NAME:       "name",
	NUMBER:     "number",
	STRING:     "string",
}

// String returns a human-readable name for the token type.
func (t Token) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "<unknown>"
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Token{
	"var":      VAR,
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"compose":  COMPOSE,
	"fn":       FN,
	"struct":   STRUCT,
	"class":    CLASS,
	"log":      LOG,
	"err":      ERR,
	"and":      AND,
	"or":       OR,
	"True":     TRUE,
	"False":    FALSE,
	"Nil":      NIL,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"this":     THIS,
}

// LookupIdent returns the token type for a given identifier.
// Returns a keyword token if found, otherwise NAME.
func LookupIdent(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}

// LookupKeyword returns the token type for a keyword, or ILLEGAL if not found.
func LookupKeyword(name string) Token {
	if tok, ok := keywords[name]; ok {
		return tok
	}
	return ILLEGAL
}
