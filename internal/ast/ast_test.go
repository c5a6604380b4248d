package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reyna-lang/reyna/internal/token"
)

func TestProgram_TokenLiteral_EmptyAndNonEmpty(t *testing.T) {
	empty := &Program{}
	assert.Equal(t, "", empty.TokenLiteral())

	let := &LetStmt{Token: token.Token{Lexeme: "let"}, Name: &Identifier{Name: "x"}}
	prog := &Program{Statements: []Statement{let}}
	assert.Equal(t, "let", prog.TokenLiteral())
}

func TestIfStmt_ElseIfChainIsNestedIfStmt(t *testing.T) {
	inner := &IfStmt{Token: token.Token{Lexeme: "if"}}
	outer := &IfStmt{Token: token.Token{Lexeme: "if"}, Else: inner}
	nested, ok := outer.Else.(*IfStmt)
	assert.True(t, ok)
	assert.Same(t, inner, nested)
}

func TestMatchArm_WildcardHasNilPatterns(t *testing.T) {
	arm := &MatchArm{IsWildcard: true, Body: &NilLiteral{}}
	assert.Nil(t, arm.Literal)
	assert.Nil(t, arm.Binding)
	assert.True(t, arm.IsWildcard)
}
