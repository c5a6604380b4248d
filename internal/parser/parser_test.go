package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reyna-lang/reyna/internal/ast"
	"github.com/reyna-lang/reyna/internal/lexer"
)

func parse(t *testing.T, src string) *Parser {
	t.Helper()
	l := lexer.New(src)
	tokens := l.ScanTokens()
	require.Empty(t, l.Errors, "lexer errors in test input")
	return New(tokens)
}

func TestParse_LetDeclaration(t *testing.T) {
	p := parse(t, `let x: int64 = 1 + 2;`)
	prog := p.Parse()
	require.Empty(t, p.Errors)
	require.Len(t, prog.Statements, 1)

	let, ok := prog.Statements[0].(*ast.LetStmt)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name.Name)
	require.NotNil(t, let.Type)
	assert.Equal(t, "int64", let.Type.Name)

	bin, ok := let.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", string(bin.Operator))
}

func TestParse_FnDeclaration(t *testing.T) {
	p := parse(t, `fn add(a: int64, b: int64) -> int64 { return a + b; }`)
	prog := p.Parse()
	require.Empty(t, p.Errors)
	require.Len(t, prog.Statements, 1)

	fn, ok := prog.Statements[0].(*ast.FnDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "int64", fn.ReturnType.Name)
	require.Len(t, fn.Body.Statements, 1)
	_, ok = fn.Body.Statements[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParse_IfElseIfChainNestsIfStmt(t *testing.T) {
	p := parse(t, `if a { print 1; } else if b { print 2; } else { print 3; }`)
	prog := p.Parse()
	require.Empty(t, p.Errors)

	top, ok := prog.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	elseIf, ok := top.Else.(*ast.IfStmt)
	require.True(t, ok)
	_, ok = elseIf.Else.(*ast.Block)
	assert.True(t, ok)
}

func TestParse_ForDesugarsToBlockWithWhile(t *testing.T) {
	p := parse(t, `for (let i = 0; i < 10; i = i + 1) { print i; }`)
	prog := p.Parse()
	require.Empty(t, p.Errors)

	block, ok := prog.Statements[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)
	_, ok = block.Statements[0].(*ast.LetStmt)
	assert.True(t, ok)
	while, ok := block.Statements[1].(*ast.WhileStmt)
	require.True(t, ok)
	// the loop body is wrapped so the increment runs after the user's body
	require.Len(t, while.Body.Statements, 2)
	_, ok = while.Body.Statements[1].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParse_ClassWithSuperclassAndMethods(t *testing.T) {
	p := parse(t, `class Dog < Animal { fn speak() -> string { return "woof"; } }`)
	prog := p.Parse()
	require.Empty(t, p.Errors)

	class, ok := prog.Statements[0].(*ast.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "Dog", class.Name.Name)
	require.NotNil(t, class.Superclass)
	assert.Equal(t, "Animal", class.Superclass.Name)
	require.Len(t, class.Methods, 1)
	assert.Equal(t, "speak", class.Methods[0].Name.Name)
}

func TestParse_StructDeclaration(t *testing.T) {
	p := parse(t, `struct Point { x: int64; y: int64; }`)
	prog := p.Parse()
	require.Empty(t, p.Errors)

	st, ok := prog.Statements[0].(*ast.StructDecl)
	require.True(t, ok)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, "x", st.Fields[0].Name.Name)
}

func TestParse_ImportBareAndNamed(t *testing.T) {
	p := parse(t, `import "geo/shapes";`)
	prog := p.Parse()
	require.Empty(t, p.Errors)
	imp, ok := prog.Statements[0].(*ast.ImportStmt)
	require.True(t, ok)
	assert.Equal(t, "geo/shapes", imp.Path)
	assert.Nil(t, imp.Symbols)

	p2 := parse(t, `import { area, perimeter } from "geo/shapes";`)
	prog2 := p2.Parse()
	require.Empty(t, p2.Errors)
	imp2, ok := prog2.Statements[0].(*ast.ImportStmt)
	require.True(t, ok)
	require.Len(t, imp2.Symbols, 2)
	assert.Equal(t, "area", imp2.Symbols[0].Name)
}

func TestParse_TryCatchFinally(t *testing.T) {
	p := parse(t, `try { throw 1; } catch (e) { print e; } finally { print 0; }`)
	prog := p.Parse()
	require.Empty(t, p.Errors)
	tryStmt, ok := prog.Statements[0].(*ast.TryStmt)
	require.True(t, ok)
	require.NotNil(t, tryStmt.Catch)
	assert.Equal(t, "e", tryStmt.Catch.Name.Name)
	require.NotNil(t, tryStmt.Finally)
}

func TestParse_MatchExpressionArms(t *testing.T) {
	p := parse(t, `let r = match x { 1 => "one", n => "other", _ => "none" };`)
	prog := p.Parse()
	require.Empty(t, p.Errors)
	let := prog.Statements[0].(*ast.LetStmt)
	match, ok := let.Value.(*ast.MatchExpr)
	require.True(t, ok)
	require.Len(t, match.Arms, 3)
	assert.NotNil(t, match.Arms[0].Literal)
	assert.NotNil(t, match.Arms[1].Binding)
	assert.True(t, match.Arms[2].IsWildcard)
}

func TestParse_AssignmentRewritesGetAndIndexTargets(t *testing.T) {
	p := parse(t, `obj.field = 1; arr[0] = 2;`)
	prog := p.Parse()
	require.Empty(t, p.Errors)

	setStmt := prog.Statements[0].(*ast.ExprStmt)
	_, ok := setStmt.Expr.(*ast.Set)
	assert.True(t, ok)

	indexSetStmt := prog.Statements[1].(*ast.ExprStmt)
	_, ok = indexSetStmt.Expr.(*ast.IndexSet)
	assert.True(t, ok)
}

func TestParse_ArrayLiteral(t *testing.T) {
	p := parse(t, `let a = [1, 2, 3];`)
	prog := p.Parse()
	require.Empty(t, p.Errors)
	let := prog.Statements[0].(*ast.LetStmt)
	arr, ok := let.Value.(*ast.ArrayLiteral)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)
}

func TestParse_SyntaxErrorSynchronizes(t *testing.T) {
	p := parse(t, `let x = ; let y = 2;`)
	prog := p.Parse()
	assert.NotEmpty(t, p.Errors)
	// synchronization should still recover the second declaration
	require.Len(t, prog.Statements, 1)
	let, ok := prog.Statements[0].(*ast.LetStmt)
	require.True(t, ok)
	assert.Equal(t, "y", let.Name.Name)
}
