package parser

import (
	"strconv"

	"github.com/recolon-lang/recolon/internal/ast"
	"github.com/recolon-lang/recolon/internal/lexer"
	"github.com/recolon-lang/recolon/internal/token"
)

// Parser is a recursive descent parser for Recolon programs.
// Expressions use precedence climbing: or < and < equality < relational <
// additive < multiplicative < unary < postfix (call, field, index) < primary.
type Parser struct {
	toks   []lexer.Token // Token stream, terminated by EOF
	pos    int           // Index of current token
	tok    lexer.Token   // Current token
	errors ErrorList     // Accumulated errors

	fnDepth   int // nesting depth of function bodies (for return validation)
	loopDepth int // nesting depth of loops (for break/continue validation)
}

// Parse tokenizes and parses a Recolon program from source code.
// A lexical error is returned as *lexer.Error; syntax errors as ErrorList.
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses a program from an already-scanned token stream.
func ParseTokens(toks []lexer.Token) (*ast.Program, error) {
	p := &Parser{toks: toks}
	p.tok = toks[0]

	prog := p.parseProgram()

	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (ast.Expr, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	p.tok = toks[0]

	expr := p.parseExpr()

	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return expr, nil
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token.
func (p *Parser) next() {
	if p.pos+1 < len(p.toks) {
		p.pos++
	}
	p.tok = p.toks[p.pos]
}

// at reports whether the current token has the given type.
func (p *Parser) at(tok token.Token) bool {
	return p.tok.Type == tok
}

// accept consumes the current token if it has the given type.
func (p *Parser) accept(tok token.Token) bool {
	if p.tok.Type != tok {
		return false
	}
	p.next()
	return true
}

// expect checks that the current token is tok and advances.
// If not, it records an error.
func (p *Parser) expect(tok token.Token) bool {
	if p.tok.Type != tok {
		p.error(expectedError(p.tok.Pos, tok.String(), p.tokenDesc()))
		return false
	}
	p.next()
	return true
}

// tokenDesc describes the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.NAME, token.NUMBER:
		return strconv.Quote(p.tok.Value)
	case token.STRING:
		return "string"
	default:
		return p.tok.Type.String()
	}
}

func (p *Parser) error(err *ParseError) {
	p.errors = append(p.errors, err)
}

// synchronize skips tokens until a likely statement boundary, so that one
// syntax error does not cascade into dozens of spurious ones.
func (p *Parser) synchronize() {
	for !p.at(token.EOF) {
		if p.accept(token.SEMICOLON) {
			return
		}
		switch p.tok.Type {
		case token.VAR, token.IF, token.WHILE, token.FOR, token.COMPOSE,
			token.FN, token.STRUCT, token.CLASS, token.LOG, token.ERR,
			token.RETURN, token.BREAK, token.CONTINUE, token.RBRACE:
			return
		}
		p.next()
	}
}

// -----------------------------------------------------------------------------
// Program and statements
// -----------------------------------------------------------------------------

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{StartPos: p.tok.Pos}
	for !p.at(token.EOF) {
		before := p.pos
		stmt := p.parseStmt()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
		if p.pos == before {
			// No progress; skip the offending token
			p.next()
		}
	}
	prog.EndPos = p.tok.Pos
	return prog
}

// parseStmt dispatches on the leading keyword or token.
// Returns nil after recording an error.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Type {
	case token.VAR:
		return p.parseVar()
	case token.FN:
		return p.parseFn()
	case token.STRUCT, token.CLASS:
		return p.parseClass()
	case token.IF:
		return p.parseIf(false)
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.COMPOSE:
		return p.parseCompose()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.LOG:
		return p.parseLog()
	case token.ERR:
		return p.parseErr()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseVar() ast.Stmt {
	start := p.tok.Pos
	p.next() // var

	if !p.at(token.NAME) {
		p.error(expectedError(p.tok.Pos, "variable name", p.tokenDesc()))
		p.synchronize()
		return nil
	}
	name := p.tok.Value
	namePos := p.tok.Pos
	p.next()

	if !p.expect(token.ASSIGN) {
		p.synchronize()
		return nil
	}
	init := p.parseExpr()
	if init == nil {
		p.synchronize()
		return nil
	}
	end := p.tok.Pos
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.VarStmt{
		BaseStmt: ast.MakeBaseStmt(start, end),
		Name:     name,
		NamePos:  namePos,
		Init:     init,
	}
}

func (p *Parser) parseFn() *ast.FnStmt {
	start := p.tok.Pos
	p.next() // fn

	if !p.at(token.NAME) {
		p.error(expectedError(p.tok.Pos, "function name", p.tokenDesc()))
		p.synchronize()
		return nil
	}
	name := p.tok.Value
	namePos := p.tok.Pos
	p.next()

	if !p.expect(token.LPAREN) {
		p.synchronize()
		return nil
	}

	var params []ast.Param
	if !p.at(token.RPAREN) {
		for {
			if !p.at(token.NAME) {
				p.error(expectedError(p.tok.Pos, "parameter name", p.tokenDesc()))
				p.synchronize()
				return nil
			}
			params = append(params, ast.Param{Name: p.tok.Value, Pos: p.tok.Pos})
			p.next()
			if !p.accept(token.COMMA) {
				break
			}
		}
	}
	if !p.expect(token.RPAREN) {
		p.synchronize()
		return nil
	}

	p.fnDepth++
	outerLoops := p.loopDepth
	p.loopDepth = 0
	body := p.parseBlock()
	p.loopDepth = outerLoops
	p.fnDepth--
	if body == nil {
		return nil
	}

	return &ast.FnStmt{
		BaseStmt: ast.MakeBaseStmt(start, body.End()),
		Name:     name,
		NamePos:  namePos,
		Params:   params,
		Body:     body,
	}
}

func (p *Parser) parseClass() ast.Stmt {
	start := p.tok.Pos
	keyword := p.tok.Type
	p.next() // struct or class

	if !p.at(token.NAME) {
		p.error(expectedError(p.tok.Pos, "type name", p.tokenDesc()))
		p.synchronize()
		return nil
	}
	name := p.tok.Value
	namePos := p.tok.Pos
	p.next()

	parent := ""
	if p.accept(token.COLON) {
		if !p.at(token.NAME) {
			p.error(expectedError(p.tok.Pos, "parent type name", p.tokenDesc()))
			p.synchronize()
			return nil
		}
		parent = p.tok.Value
		p.next()
	}

	if !p.expect(token.LBRACE) {
		p.synchronize()
		return nil
	}

	decl := &ast.ClassStmt{
		Keyword: keyword,
		Name:    name,
		NamePos: namePos,
		Parent:  parent,
	}
	seen := map[string]bool{}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		switch p.tok.Type {
		case token.FN:
			method := p.parseFn()
			if method == nil {
				return nil
			}
			decl.Methods = append(decl.Methods, method)
		case token.NAME:
			fieldName := p.tok.Value
			fieldPos := p.tok.Pos
			p.next()
			if !p.expect(token.ASSIGN) {
				p.synchronize()
				return nil
			}
			def := p.parseExpr()
			if def == nil {
				p.synchronize()
				return nil
			}
			if !p.expect(token.SEMICOLON) {
				p.synchronize()
				return nil
			}
			if seen[fieldName] {
				p.error(errorf(fieldPos, "duplicate field %q in %s %s", fieldName, keyword, name))
			}
			seen[fieldName] = true
			decl.Fields = append(decl.Fields, ast.FieldDef{
				Name:    fieldName,
				NamePos: fieldPos,
				Default: def,
			})
		default:
			p.error(expectedError(p.tok.Pos, "field or method declaration", p.tokenDesc()))
			p.synchronize()
			return nil
		}
	}
	end := p.tok.Pos
	if !p.expect(token.RBRACE) {
		p.synchronize()
		return nil
	}
	decl.BaseStmt = ast.MakeBaseStmt(start, end)
	return decl
}

// parseIf parses an if or elif statement; elif chains become nested IfStmts.
func (p *Parser) parseIf(elif bool) ast.Stmt {
	start := p.tok.Pos
	p.next() // if or elif

	if !p.expect(token.LPAREN) {
		p.synchronize()
		return nil
	}
	cond := p.parseExpr()
	if cond == nil {
		p.synchronize()
		return nil
	}
	if !p.expect(token.RPAREN) {
		p.synchronize()
		return nil
	}
	then := p.parseBlock()
	if then == nil {
		return nil
	}

	stmt := &ast.IfStmt{Cond: cond, Then: then, Elif: elif}
	end := then.End()

	switch p.tok.Type {
	case token.ELIF:
		els := p.parseIf(true)
		if els == nil {
			return nil
		}
		stmt.Else = els
		end = els.End()
	case token.ELSE:
		p.next()
		els := p.parseBlock()
		if els == nil {
			return nil
		}
		stmt.Else = els
		end = els.End()
	}
	stmt.BaseStmt = ast.MakeBaseStmt(start, end)
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.tok.Pos
	p.next() // while

	if !p.expect(token.LPAREN) {
		p.synchronize()
		return nil
	}
	cond := p.parseExpr()
	if cond == nil {
		p.synchronize()
		return nil
	}
	if !p.expect(token.RPAREN) {
		p.synchronize()
		return nil
	}
	p.loopDepth++
	body := p.parseBlock()
	p.loopDepth--
	if body == nil {
		return nil
	}
	return &ast.WhileStmt{
		BaseStmt: ast.MakeBaseStmt(start, body.End()),
		Cond:     cond,
		Body:     body,
	}
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.tok.Pos
	p.next() // for

	if !p.expect(token.LPAREN) {
		p.synchronize()
		return nil
	}

	// Initializer: var declaration, expression statement, or empty
	var init ast.Stmt
	switch p.tok.Type {
	case token.SEMICOLON:
		p.next()
	case token.VAR:
		init = p.parseVar()
		if init == nil {
			return nil
		}
	default:
		init = p.parseExprStmt()
		if init == nil {
			return nil
		}
	}

	// Condition (empty means True)
	var cond ast.Expr
	if !p.at(token.SEMICOLON) {
		cond = p.parseExpr()
		if cond == nil {
			p.synchronize()
			return nil
		}
	}
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
		return nil
	}

	// Post-iteration expression
	var post ast.Expr
	if !p.at(token.RPAREN) {
		post = p.parseExpr()
		if post == nil {
			p.synchronize()
			return nil
		}
	}
	if !p.expect(token.RPAREN) {
		p.synchronize()
		return nil
	}

	p.loopDepth++
	body := p.parseBlock()
	p.loopDepth--
	if body == nil {
		return nil
	}
	return &ast.ForStmt{
		BaseStmt: ast.MakeBaseStmt(start, body.End()),
		Init:     init,
		Cond:     cond,
		Post:     post,
		Body:     body,
	}
}

func (p *Parser) parseCompose() ast.Stmt {
	start := p.tok.Pos
	p.next() // compose

	p.loopDepth++
	body := p.parseBlock()
	p.loopDepth--
	if body == nil {
		return nil
	}
	return &ast.ComposeStmt{
		BaseStmt: ast.MakeBaseStmt(start, body.End()),
		Body:     body,
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.tok.Pos
	if p.fnDepth == 0 {
		p.error(errorf(start, "return statement must be inside a function"))
	}
	p.next() // return

	var value ast.Expr
	if !p.at(token.SEMICOLON) {
		value = p.parseExpr()
		if value == nil {
			p.synchronize()
			return nil
		}
	}
	end := p.tok.Pos
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.ReturnStmt{
		BaseStmt: ast.MakeBaseStmt(start, end),
		Value:    value,
	}
}

func (p *Parser) parseBreak() ast.Stmt {
	start := p.tok.Pos
	if p.loopDepth == 0 {
		p.error(errorf(start, "break statement must be inside a loop"))
	}
	p.next() // break
	end := p.tok.Pos
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.BreakStmt{BaseStmt: ast.MakeBaseStmt(start, end)}
}

func (p *Parser) parseContinue() ast.Stmt {
	start := p.tok.Pos
	if p.loopDepth == 0 {
		p.error(errorf(start, "continue statement must be inside a loop"))
	}
	p.next() // continue
	end := p.tok.Pos
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.ContinueStmt{BaseStmt: ast.MakeBaseStmt(start, end)}
}

func (p *Parser) parseLog() ast.Stmt {
	start := p.tok.Pos
	p.next() // log
	arg := p.parseCallArg()
	if arg == nil {
		return nil
	}
	end := p.tok.Pos
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.LogStmt{BaseStmt: ast.MakeBaseStmt(start, end), Arg: arg}
}

func (p *Parser) parseErr() ast.Stmt {
	start := p.tok.Pos
	p.next() // err
	arg := p.parseCallArg()
	if arg == nil {
		return nil
	}
	end := p.tok.Pos
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.ErrStmt{BaseStmt: ast.MakeBaseStmt(start, end), Arg: arg}
}

// parseCallArg parses the single parenthesized argument of log/err.
func (p *Parser) parseCallArg() ast.Expr {
	if !p.expect(token.LPAREN) {
		p.synchronize()
		return nil
	}
	arg := p.parseExpr()
	if arg == nil {
		p.synchronize()
		return nil
	}
	if !p.expect(token.RPAREN) {
		p.synchronize()
		return nil
	}
	return arg
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	start := p.tok.Pos
	if !p.expect(token.LBRACE) {
		p.synchronize()
		return nil
	}
	block := &ast.BlockStmt{}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		before := p.pos
		stmt := p.parseStmt()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.pos == before {
			p.next()
		}
	}
	end := p.tok.Pos
	if !p.expect(token.RBRACE) {
		p.synchronize()
		return nil
	}
	block.BaseStmt = ast.MakeBaseStmt(start, end)
	return block
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.tok.Pos
	expr := p.parseExpr()
	if expr == nil {
		p.synchronize()
		return nil
	}
	end := p.tok.Pos
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.ExprStmt{BaseStmt: ast.MakeBaseStmt(start, end), Expr: expr}
}

// -----------------------------------------------------------------------------
// Expressions (precedence climbing, lowest binding first)
// -----------------------------------------------------------------------------

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

// parseAssign handles assignment, which is right-associative and requires
// an lvalue target.
func (p *Parser) parseAssign() ast.Expr {
	left := p.parseOr()
	if left == nil {
		return nil
	}
	if !p.at(token.ASSIGN) {
		return left
	}
	assignPos := p.tok.Pos
	p.next()
	value := p.parseAssign()
	if value == nil {
		return nil
	}
	if !ast.IsLValue(left) {
		p.error(errorf(assignPos, "cannot assign to this expression"))
		return nil
	}
	return &ast.AssignExpr{
		BaseExpr: ast.MakeBaseExpr(left.Pos(), value.End()),
		Target:   left,
		Value:    value,
	}
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for left != nil && p.at(token.OR) {
		op := p.tok.Type
		p.next()
		right := p.parseAnd()
		if right == nil {
			return nil
		}
		left = &ast.LogicalExpr{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for left != nil && p.at(token.AND) {
		op := p.tok.Type
		p.next()
		right := p.parseEquality()
		if right == nil {
			return nil
		}
		left = &ast.LogicalExpr{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for left != nil && (p.at(token.EQUALS) || p.at(token.NOT_EQUALS)) {
		op := p.tok.Type
		p.next()
		right := p.parseRelational()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for left != nil && (p.at(token.GREATER) || p.at(token.LESS) ||
		p.at(token.GTE) || p.at(token.LTE)) {
		op := p.tok.Type
		p.next()
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for left != nil && (p.at(token.ADD) || p.at(token.SUB)) {
		op := p.tok.Type
		p.next()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for left != nil && (p.at(token.MUL) || p.at(token.DIV)) {
		op := p.tok.Type
		p.next()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.at(token.SUB) || p.at(token.NOT) {
		start := p.tok.Pos
		op := p.tok.Type
		p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{
			BaseExpr: ast.MakeBaseExpr(start, operand.End()),
			Op:       op,
			Expr:     operand,
		}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any number of
// call, field access, and index suffixes.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for expr != nil {
		switch p.tok.Type {
		case token.LPAREN:
			p.next()
			var args []ast.Expr
			if !p.at(token.RPAREN) {
				for {
					arg := p.parseExpr()
					if arg == nil {
						return nil
					}
					args = append(args, arg)
					if !p.accept(token.COMMA) {
						break
					}
				}
			}
			end := p.tok.Pos
			if !p.expect(token.RPAREN) {
				return nil
			}
			expr = &ast.CallExpr{
				BaseExpr: ast.MakeBaseExpr(expr.Pos(), end),
				Callee:   expr,
				Args:     args,
			}

		case token.DOT:
			p.next()
			if !p.at(token.NAME) {
				p.error(expectedError(p.tok.Pos, "field or method name", p.tokenDesc()))
				return nil
			}
			name := p.tok.Value
			namePos := p.tok.Pos
			p.next()
			expr = &ast.FieldExpr{
				BaseExpr: ast.MakeBaseExpr(expr.Pos(), namePos),
				Object:   expr,
				Name:     name,
				NamePos:  namePos,
			}

		case token.LBRACKET:
			p.next()
			index := p.parseExpr()
			if index == nil {
				return nil
			}
			end := p.tok.Pos
			if !p.expect(token.RBRACKET) {
				return nil
			}
			expr = &ast.IndexExpr{
				BaseExpr: ast.MakeBaseExpr(expr.Pos(), end),
				Object:   expr,
				Index:    index,
			}

		default:
			return expr
		}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.tok.Pos
	switch p.tok.Type {
	case token.NUMBER:
		raw := p.tok.Value
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			p.error(errorf(pos, "could not parse number %q", raw))
			p.next()
			return nil
		}
		p.next()
		return &ast.NumberLit{
			BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos),
			Value:    value,
			Raw:      raw,
		}

	case token.STRING:
		value := p.tok.Value
		p.next()
		return &ast.StringLit{
			BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos),
			Value:    value,
		}

	case token.TRUE:
		p.next()
		return &ast.BoolLit{BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos), Value: true}

	case token.FALSE:
		p.next()
		return &ast.BoolLit{BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos), Value: false}

	case token.NIL:
		p.next()
		return &ast.NilLit{BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos)}

	case token.THIS:
		p.next()
		return &ast.ThisExpr{BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos)}

	case token.NAME:
		name := p.tok.Value
		p.next()
		return &ast.Ident{BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos), Name: name}

	case token.LPAREN:
		p.next()
		inner := p.parseExpr()
		if inner == nil {
			return nil
		}
		end := p.tok.Pos
		if !p.expect(token.RPAREN) {
			return nil
		}
		return &ast.GroupExpr{BaseExpr: ast.MakeBaseExpr(pos, end), Expr: inner}

	case token.LBRACKET:
		p.next()
		lit := &ast.ArrayLit{}
		if !p.at(token.RBRACKET) {
			for {
				el := p.parseExpr()
				if el == nil {
					return nil
				}
				lit.Elems = append(lit.Elems, el)
				if !p.accept(token.COMMA) {
					break
				}
			}
		}
		end := p.tok.Pos
		if !p.expect(token.RBRACKET) {
			return nil
		}
		lit.BaseExpr = ast.MakeBaseExpr(pos, end)
		return lit

	default:
		p.error(errorf(pos, "expected expression, got %s", p.tokenDesc()))
		return nil
	}
}
