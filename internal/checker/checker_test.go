package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reyna-lang/reyna/internal/lexer"
	"github.com/reyna-lang/reyna/internal/parser"
)

func checkSource(t *testing.T, src string) (*Checker, bool) {
	t.Helper()
	l := lexer.New(src)
	tokens := l.ScanTokens()
	require.Empty(t, l.Errors)
	p := parser.New(tokens)
	prog := p.Parse()
	require.Empty(t, p.Errors)
	c := New(".")
	return c, c.Check(prog)
}

func TestCheck_ValidProgramPasses(t *testing.T) {
	_, ok := checkSource(t, `
		fn add(a: int64, b: int64) -> int64 { return a + b; }
		let x = add(1, 2);
	`)
	assert.True(t, ok)
}

func TestCheck_IntWidensToFloat(t *testing.T) {
	_, ok := checkSource(t, `let x: float64 = 1;`)
	assert.True(t, ok)
}

func TestCheck_MismatchedLetTypeFails(t *testing.T) {
	c, ok := checkSource(t, `let x: bool = 1;`)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
}

func TestCheck_UndefinedVariableFails(t *testing.T) {
	c, ok := checkSource(t, `let x = y;`)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
}

func TestCheck_FunctionArityMismatchFails(t *testing.T) {
	c, ok := checkSource(t, `
		fn add(a: int64, b: int64) -> int64 { return a + b; }
		let x = add(1);
	`)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
}

func TestCheck_StructFieldAccessIsStrict(t *testing.T) {
	_, ok := checkSource(t, `
		struct Point { x: int64; y: int64; }
		let p = Point();
		p.x = 1;
	`)
	assert.True(t, ok)

	c2, ok2 := checkSource(t, `
		struct Point { x: int64; y: int64; }
		let p = Point();
		p.z = 1;
	`)
	assert.False(t, ok2)
	require.NotNil(t, c2.Err)
}

func TestCheck_ClassFieldAccessIsPermissive(t *testing.T) {
	_, ok := checkSource(t, `
		class Animal { fn speak() -> string { return "..."; } }
		let a = Animal();
		a.anything = 1;
	`)
	assert.True(t, ok)
}

func TestCheck_ThisOutsideClassFails(t *testing.T) {
	c, ok := checkSource(t, `let f = fn() -> any { return this; };`)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
}

func TestCheck_IfConditionMustBeBool(t *testing.T) {
	c, ok := checkSource(t, `if (1) { print 1; }`)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
}
