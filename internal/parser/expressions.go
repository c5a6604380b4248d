package parser

import "github.com/reyna-lang/reyna/internal/ast"
import "github.com/reyna-lang/reyna/internal/token"

func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

// assignment rewrites a successfully-parsed lvalue expression (Identifier,
// Get, or Index) into the corresponding Assign/Set/IndexSet node.
func (p *Parser) assignment() ast.Expression {
	expr := p.orExpr()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Identifier:
			return &ast.Assign{Token: equals, Name: target, Value: value}
		case *ast.Get:
			return &ast.Set{Token: equals, Object: target.Object, Name: target.Name, Value: value}
		case *ast.Index:
			return &ast.IndexSet{Token: equals, Object: target.Object, Index: target.Index, Value: value}
		default:
			p.errorAt(equals, "invalid assignment target")
		}
	}
	return expr
}

func (p *Parser) orExpr() ast.Expression {
	expr := p.andExpr()
	for p.match(token.OR) {
		op := p.previous()
		right := p.andExpr()
		expr = &ast.Logical{Token: op, Left: expr, Operator: token.OR, Right: right}
	}
	return expr
}

func (p *Parser) andExpr() ast.Expression {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Token: op, Left: expr, Operator: token.AND, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Token: op, Left: expr, Operator: op.Type, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Token: op, Left: expr, Operator: op.Type, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Token: op, Left: expr, Operator: op.Type, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Token: op, Left: expr, Operator: op.Type, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Token: op, Operator: op.Type, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expression {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			nameTok := p.consume(token.IDENTIFIER, "expect property name after '.'")
			expr = &ast.Get{Token: p.previous(), Object: expr, Name: &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme}}
		case p.match(token.LEFT_BRACKET):
			index := p.expression()
			p.consume(token.RIGHT_BRACKET, "expect ']' after index")
			expr = &ast.Index{Token: p.previous(), Object: expr, Index: index}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	tok := p.previous()
	var args []ast.Expression
	if !p.check(token.RIGHT_PAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after arguments")
	return &ast.Call{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) superExpr() ast.Expression {
	tok := p.previous()
	p.consume(token.DOT, "expect '.' after 'super'")
	methodTok := p.consume(token.IDENTIFIER, "expect superclass method name")
	return &ast.Super{Token: tok, Method: &ast.Identifier{Token: methodTok, Name: methodTok.Lexeme}}
}

// matchExpr parses `match subject { pattern [if guard] => body, ... }`. A
// bare identifier arm binds the subject value; `_` is the wildcard arm; any
// other expression arm is compared against the subject for equality. An
// optional `if guard` clause after the pattern must also hold for the arm
// to be taken.
func (p *Parser) matchExpr() ast.Expression {
	tok := p.previous()
	subject := p.expression()
	p.consume(token.LEFT_BRACE, "expect '{' after match subject")

	var arms []*ast.MatchArm
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		arm := &ast.MatchArm{}
		if p.check(token.IDENTIFIER) && p.peek().Lexeme == "_" {
			p.advance()
			arm.IsWildcard = true
		} else if p.match(token.IDENTIFIER) {
			nameTok := p.previous()
			arm.Binding = &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme}
		} else {
			arm.Literal = p.expression()
		}

		if p.match(token.IF) {
			arm.Guard = p.expression()
		}

		p.consume(token.FAT_ARROW, "expect '=>' in match arm")

		if p.check(token.LEFT_BRACE) {
			p.advance()
			arm.Body = &ast.Block{Token: p.previous(), Statements: p.block()}
		} else {
			arm.Body = p.expression()
		}

		arms = append(arms, arm)
		p.match(token.COMMA)
	}
	p.consume(token.RIGHT_BRACE, "expect '}' after match arms")
	return &ast.MatchExpr{Token: tok, Subject: subject, Arms: arms}
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.FALSE):
		return &ast.BoolLiteral{Token: p.previous(), Value: false}
	case p.match(token.TRUE):
		return &ast.BoolLiteral{Token: p.previous(), Value: true}
	case p.match(token.NIL):
		return &ast.NilLiteral{Token: p.previous()}
	case p.match(token.NUMBER):
		tok := p.previous()
		return &ast.IntLiteral{Token: tok, Value: tok.Literal.(int64)}
	case p.match(token.FLOAT):
		tok := p.previous()
		return &ast.FloatLiteral{Token: tok, Value: tok.Literal.(float64)}
	case p.match(token.STRING):
		tok := p.previous()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal.(string)}
	case p.match(token.SUPER):
		return p.superExpr()
	case p.match(token.THIS):
		return &ast.This{Token: p.previous()}
	case p.match(token.MATCH):
		return p.matchExpr()
	case p.match(token.AWAIT):
		// await lowers to ordinary evaluation of its operand.
		return p.expression()
	case p.match(token.FN):
		return p.fnExpr()
	case p.match(token.IDENTIFIER):
		tok := p.previous()
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}
	case p.match(token.LEFT_BRACKET):
		tok := p.previous()
		var elements []ast.Expression
		if !p.check(token.RIGHT_BRACKET) {
			for {
				elements = append(elements, p.expression())
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		p.consume(token.RIGHT_BRACKET, "expect ']' after array elements")
		return &ast.ArrayLiteral{Token: tok, Elements: elements}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "expect ')' after expression")
		return expr
	}
	panic(p.errorAt(p.peek(), "expect expression"))
}

// fnExpr parses an anonymous function literal: `fn(a: int64) -> int64 { ... }`.
func (p *Parser) fnExpr() ast.Expression {
	tok := p.previous()
	p.consume(token.LEFT_PAREN, "expect '(' after 'fn'")
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
	return &ast.FnExpr{Token: tok, Params: params, ReturnType: retType, Body: body}
}
