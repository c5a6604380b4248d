package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reyna-lang/reyna/internal/token"
)

func tokenTypes(tokens []token.Token) []token.Type {
	types := make([]token.Type, len(tokens))
	for i, t := range tokens {
		types[i] = t.Type
	}
	return types
}

func TestScanTokens_Punctuation(t *testing.T) {
	tokens := New(`( ) { } [ ] , . ; -> => :: ! != = == < <= > >=`).ScanTokens()
	assert.Equal(t, []token.Type{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.LEFT_BRACKET, token.RIGHT_BRACKET, token.COMMA, token.DOT,
		token.SEMICOLON, token.ARROW, token.FAT_ARROW, token.COLONCOLON,
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
		token.EOF,
	}, tokenTypes(tokens))
}

func TestScanTokens_Numbers(t *testing.T) {
	tokens := New(`42 3.14 0`).ScanTokens()
	assert.Equal(t, token.NUMBER, tokens[0].Type)
	assert.Equal(t, int64(42), tokens[0].Literal)
	assert.Equal(t, token.FLOAT, tokens[1].Type)
	assert.Equal(t, 3.14, tokens[1].Literal)
	assert.Equal(t, int64(0), tokens[2].Literal)
}

func TestScanTokens_StringLiteral(t *testing.T) {
	l := New(`"hello world"`)
	tokens := l.ScanTokens()
	assert.Equal(t, token.STRING, tokens[0].Type)
	assert.Equal(t, "hello world", tokens[0].Literal)
	assert.Empty(t, l.Errors)
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	l := New(`"oops`)
	l.ScanTokens()
	assert.Len(t, l.Errors, 1)
}

func TestScanTokens_Keywords(t *testing.T) {
	tokens := New(`let fn if else while for return class struct this super try catch throw finally match async await import`).ScanTokens()
	want := []token.Type{
		token.LET, token.FN, token.IF, token.ELSE, token.WHILE, token.FOR,
		token.RETURN, token.CLASS, token.STRUCT, token.THIS, token.SUPER,
		token.TRY, token.CATCH, token.THROW, token.FINALLY, token.MATCH,
		token.ASYNC, token.AWAIT, token.IMPORT, token.EOF,
	}
	assert.Equal(t, want, tokenTypes(tokens))
}

func TestScanTokens_LineComment(t *testing.T) {
	tokens := New("let x = 1; // trailing comment\nlet y = 2;").ScanTokens()
	// the comment contributes no tokens; both statements still parse fully
	want := []token.Type{
		token.LET, token.IDENTIFIER, token.EQUAL, token.NUMBER, token.SEMICOLON,
		token.LET, token.IDENTIFIER, token.EQUAL, token.NUMBER, token.SEMICOLON,
		token.EOF,
	}
	assert.Equal(t, want, tokenTypes(tokens))
}

func TestScanTokens_LineNumbers(t *testing.T) {
	tokens := New("let x = 1;\nlet y = 2;").ScanTokens()
	assert.Equal(t, 1, tokens[0].Line)
	// "y" is on line 2
	var yTok token.Token
	for _, tk := range tokens {
		if tk.Lexeme == "y" {
			yTok = tk
		}
	}
	assert.Equal(t, 2, yTok.Line)
}
