// Package parser turns a token sequence into an ast.Program via recursive
// descent with precedence climbing for expressions.
package parser

import (
	"fmt"

	"github.com/reyna-lang/reyna/internal/ast"
	"github.com/reyna-lang/reyna/internal/reynaerr"
	"github.com/reyna-lang/reyna/internal/token"
)

// parseError is thrown internally to unwind to the nearest synchronization
// point; it never escapes Parse.
type parseError struct{ err *reynaerr.ParseError }

func (p parseError) Error() string { return p.err.Error() }

// Parser consumes a flat token slice and builds an ast.Program, recording
// every error it encounters rather than stopping at the first one.
type Parser struct {
	tokens  []token.Token
	current int

	Errors []*reynaerr.ParseError
}

// New creates a Parser over tokens, which must end with an EOF token.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token stream and returns the resulting program.
// Parse errors are recorded in p.Errors; callers should check len(p.Errors)
// before proceeding to type checking.
func (p *Parser) Parse() *ast.Program {
	var statements []ast.Statement
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return &ast.Program{Statements: statements}
}

func (p *Parser) declaration() (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.IMPORT):
		return p.importStatement()
	case p.match(token.ASYNC):
		p.consume(token.FN, "expect 'fn' after 'async'")
		return p.fnDeclaration()
	case p.match(token.FN):
		return p.fnDeclaration()
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.STRUCT):
		return p.structDeclaration()
	case p.match(token.LET):
		return p.letDeclaration()
	}
	return p.statement()
}

func (p *Parser) importStatement() ast.Statement {
	tok := p.previous()
	if p.match(token.LEFT_BRACE) {
		var names []*ast.Identifier
		for {
			nameTok := p.consume(token.IDENTIFIER, "expect import name")
			names = append(names, &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme})
			if !p.match(token.COMMA) {
				break
			}
		}
		p.consume(token.RIGHT_BRACE, "expect '}' after import names")
		if !p.match(token.FROM) {
			p.errorAt(p.peek(), "expect 'from' keyword")
		}
		path := p.consume(token.STRING, "expect module path string")
		p.consume(token.SEMICOLON, "expect ';' after import")
		return &ast.ImportStmt{Token: tok, Path: path.Literal.(string), Symbols: names}
	}
	path := p.consume(token.STRING, "expect module path string")
	p.consume(token.SEMICOLON, "expect ';' after import")
	return &ast.ImportStmt{Token: tok, Path: path.Literal.(string)}
}

func (p *Parser) classDeclaration() ast.Statement {
	tok := p.previous()
	nameTok := p.consume(token.IDENTIFIER, "expect class name")
	name := &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme}

	var superclass *ast.Identifier
	if p.match(token.LESS) {
		superTok := p.consume(token.IDENTIFIER, "expect superclass name")
		superclass = &ast.Identifier{Token: superTok, Name: superTok.Lexeme}
	}

	p.consume(token.LEFT_BRACE, "expect '{' before class body")
	var methods []*ast.FnDecl
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		p.consume(token.FN, "expect 'fn' before method")
		methods = append(methods, p.functionBody())
	}
	p.consume(token.RIGHT_BRACE, "expect '}' after class body")
	return &ast.ClassDecl{Token: tok, Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) fnDeclaration() ast.Statement {
	return p.functionBody()
}

func (p *Parser) functionBody() *ast.FnDecl {
	tok := p.previous()
	nameTok := p.consume(token.IDENTIFIER, "expect function name")
	name := &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme}

	p.consume(token.LEFT_PAREN, "expect '(' after function name")
	var params []*ast.Param
	if !p.check(token.RIGHT_PAREN) {
		for {
			paramTok := p.consume(token.IDENTIFIER, "expect parameter name")
			p.consume(token.COLON, "expect ':' after parameter name")
			params = append(params, &ast.Param{
				Name: &ast.Identifier{Token: paramTok, Name: paramTok.Lexeme},
				Type: p.parseType(),
			})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after parameters")

	var retType *ast.TypeAnnotation
	if p.match(token.ARROW) {
		retType = p.parseType()
	}

	p.consume(token.LEFT_BRACE, "expect '{' before function body")
	body := &ast.Block{Token: p.previous(), Statements: p.block()}
	return &ast.FnDecl{Token: tok, Name: name, Params: params, ReturnType: retType, Body: body}
}

func (p *Parser) structDeclaration() ast.Statement {
	tok := p.previous()
	nameTok := p.consume(token.IDENTIFIER, "expect struct name")
	name := &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme}

	p.consume(token.LEFT_BRACE, "expect '{' before struct body")
	var fields []*ast.StructField
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		fieldTok := p.consume(token.IDENTIFIER, "expect field name")
		p.consume(token.COLON, "expect ':' after field name")
		fieldType := p.parseType()
		p.consume(token.SEMICOLON, "expect ';' after field declaration")
		fields = append(fields, &ast.StructField{
			Name: &ast.Identifier{Token: fieldTok, Name: fieldTok.Lexeme},
			Type: fieldType,
		})
	}
	p.consume(token.RIGHT_BRACE, "expect '}' after struct body")
	return &ast.StructDecl{Token: tok, Name: name, Fields: fields}
}

func (p *Parser) letDeclaration() ast.Statement {
	tok := p.previous()
	nameTok := p.consume(token.IDENTIFIER, "expect variable name")
	name := &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme}

	var typeAnn *ast.TypeAnnotation
	if p.match(token.COLON) {
		typeAnn = p.parseType()
	}

	var value ast.Expression
	if p.match(token.EQUAL) {
		value = p.expression()
	}

	p.consume(token.SEMICOLON, "expect ';' after variable declaration")
	return &ast.LetStmt{Token: tok, Name: name, Type: typeAnn, Value: value}
}

func (p *Parser) parseType() *ast.TypeAnnotation {
	if p.match(token.LEFT_BRACKET) {
		elem := p.parseType()
		p.consume(token.RIGHT_BRACKET, "expect ']' after array element type")
		return &ast.TypeAnnotation{Token: p.previous(), IsArray: true, Elem: elem}
	}
	if p.match(token.TYPE_INT64, token.TYPE_FLOAT64, token.TYPE_BOOL, token.TYPE_STRING, token.IDENTIFIER, token.FN) {
		tok := p.previous()
		return &ast.TypeAnnotation{Token: tok, Name: tok.Lexeme}
	}
	panic(p.errorAt(p.peek(), "expect type"))
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.TRY):
		return p.tryStatement()
	case p.match(token.THROW):
		return p.throwStatement()
	case p.match(token.LEFT_BRACE):
		return &ast.Block{Token: p.previous(), Statements: p.block()}
	case p.match(token.PRINT):
		return p.printStatement()
	}
	return p.exprStatement()
}

func (p *Parser) tryStatement() ast.Statement {
	tok := p.previous()
	p.consume(token.LEFT_BRACE, "expect '{' after 'try'")
	body := &ast.Block{Token: p.previous(), Statements: p.block()}

	var catch *ast.CatchClause
	if p.match(token.CATCH) {
		p.consume(token.LEFT_PAREN, "expect '(' after 'catch'")
		var name *ast.Identifier
		if !p.check(token.RIGHT_PAREN) {
			nameTok := p.consume(token.IDENTIFIER, "expect exception variable name")
			name = &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme}
		}
		p.consume(token.RIGHT_PAREN, "expect ')' after catch variable")
		p.consume(token.LEFT_BRACE, "expect '{' after catch")
		catch = &ast.CatchClause{Name: name, Body: &ast.Block{Token: p.previous(), Statements: p.block()}}
	}

	var finally *ast.Block
	if p.match(token.FINALLY) {
		p.consume(token.LEFT_BRACE, "expect '{' after 'finally'")
		finally = &ast.Block{Token: p.previous(), Statements: p.block()}
	}

	if catch == nil {
		p.errorAt(tok, "expect 'catch' after try block")
	}

	return &ast.TryStmt{Token: tok, Body: body, Catch: catch, Finally: finally}
}

func (p *Parser) throwStatement() ast.Statement {
	tok := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after throw value")
	return &ast.ThrowStmt{Token: tok, Value: value}
}

func (p *Parser) ifStatement() ast.Statement {
	tok := p.previous()
	condition := p.parseParenOrBareCondition()
	p.consume(token.LEFT_BRACE, "expect '{' after condition")
	thenBranch := &ast.Block{Token: p.previous(), Statements: p.block()}

	var elseBranch ast.Statement
	if p.match(token.ELSE) {
		if p.match(token.IF) {
			elseBranch = p.ifStatement()
		} else {
			p.consume(token.LEFT_BRACE, "expect '{' after 'else'")
			elseBranch = &ast.Block{Token: p.previous(), Statements: p.block()}
		}
	}
	return &ast.IfStmt{Token: tok, Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) printStatement() ast.Statement {
	tok := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after value")
	return &ast.PrintStmt{Token: tok, Expr: value}
}

func (p *Parser) whileStatement() ast.Statement {
	tok := p.previous()
	condition := p.parseParenOrBareCondition()
	p.consume(token.LEFT_BRACE, "expect '{' after condition")
	body := &ast.Block{Token: p.previous(), Statements: p.block()}
	return &ast.WhileStmt{Token: tok, Condition: condition, Body: body}
}

// parseParenOrBareCondition accepts both `if (cond)` and `if cond`.
func (p *Parser) parseParenOrBareCondition() ast.Expression {
	if p.check(token.LEFT_PAREN) {
		p.advance()
		cond := p.expression()
		p.consume(token.RIGHT_PAREN, "expect ')' after condition")
		return cond
	}
	return p.expression()
}

// forStatement desugars `for (init; cond; incr) body` into a Block wrapping
// a WhileStmt, matching how the condition and increment are spliced into
// the loop body.
func (p *Parser) forStatement() ast.Statement {
	tok := p.previous()
	p.consume(token.LEFT_PAREN, "expect '(' after 'for'")

	var initializer ast.Statement
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.LET):
		initializer = p.letDeclaration()
	default:
		initializer = p.exprStatement()
	}

	var condition ast.Expression
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after loop condition")

	var increment ast.Expression
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after for clauses")

	p.consume(token.LEFT_BRACE, "expect '{' before loop body")
	body := ast.Statement(&ast.Block{Token: p.previous(), Statements: p.block()})

	if increment != nil {
		body = &ast.Block{Token: tok, Statements: []ast.Statement{
			body,
			&ast.ExprStmt{Token: tok, Expr: increment},
		}}
	}
	if condition == nil {
		condition = &ast.BoolLiteral{Token: tok, Value: true}
	}
	loop := ast.Statement(&ast.WhileStmt{Token: tok, Condition: condition, Body: body.(*ast.Block)})

	if initializer != nil {
		loop = &ast.Block{Token: tok, Statements: []ast.Statement{initializer, loop}}
	}
	return loop
}

func (p *Parser) returnStatement() ast.Statement {
	tok := p.previous()
	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after return value")
	return &ast.ReturnStmt{Token: tok, Value: value}
}

func (p *Parser) block() []ast.Statement {
	var statements []ast.Statement
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "expect '}' after block")
	return statements
}

func (p *Parser) exprStatement() ast.Statement {
	tok := p.peek()
	expr := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after expression")
	return &ast.ExprStmt{Token: tok, Expr: expr}
}

// --- token-stream primitives ---

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) consume(t token.Type, msg string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), msg))
}

func (p *Parser) errorAt(tok token.Token, msg string) parseError {
	e := &reynaerr.ParseError{Line: tok.Line, Msg: fmt.Sprintf("at '%s': %s", tok.Lexeme, msg)}
	p.Errors = append(p.Errors, e)
	return parseError{err: e}
}

// synchronize discards tokens up to the next statement boundary after a
// parse error, so that one mistake does not cascade into many.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.FN, token.LET, token.FOR, token.IF, token.WHILE, token.RETURN, token.STRUCT, token.CLASS, token.IMPORT:
			return
		}
		p.advance()
	}
}
