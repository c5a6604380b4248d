package embed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reyna-lang/reyna/pkg/embed"
)

func TestRunExecutesSource(t *testing.T) {
	result, err := embed.Run(`print 1 + 2;`, ".")
	require.NoError(t, err)
	assert.Equal(t, embed.OK, result)
}

func TestRunReportsCompileErrorOnBadSyntax(t *testing.T) {
	result, err := embed.Run(`let x: int64 = ;`, ".")
	assert.Error(t, err)
	assert.Equal(t, embed.CompileError, result)
}

func TestRunReportsCompileErrorOnTypeMismatch(t *testing.T) {
	result, err := embed.Run(`let x: int64 = "not a number";`, ".")
	assert.Error(t, err)
	assert.Equal(t, embed.CompileError, result)
}

func TestRunReportsRuntimeErrorOnUndefinedGlobalAssignment(t *testing.T) {
	result, err := embed.Run(`undeclared = 1;`, ".")
	assert.Error(t, err)
	assert.Equal(t, embed.RuntimeError, result)
}

func TestCheckPassesValidSource(t *testing.T) {
	err := embed.Check(`let x: int64 = 1;`, ".")
	assert.NoError(t, err)
}

func TestCheckFailsOnTypeMismatch(t *testing.T) {
	err := embed.Check(`let x: int64 = "nope";`, ".")
	assert.Error(t, err)
}

func TestCheckDoesNotRunTheScript(t *testing.T) {
	// A script that would throw at runtime must still pass --check, since
	// Check never compiles or executes it.
	err := embed.Check(`throw "boom";`, ".")
	assert.NoError(t, err)
}

func TestCheckResolvesImportedDeclarations(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.reyna")
	require.NoError(t, os.WriteFile(libPath, []byte(`let shared: int64 = 1;`), 0o644))

	mainPath := filepath.Join(dir, "main.reyna")
	source := `import "./lib.reyna"; print shared;`
	require.NoError(t, os.WriteFile(mainPath, []byte(source), 0o644))

	err := embed.Check(source, dir)
	assert.NoError(t, err)
}

func TestRunFileResolvesImportsRelativeToItsOwnDirectory(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "greeting.reyna")
	require.NoError(t, os.WriteFile(libPath, []byte(`let greeting: string = "hi";`), 0o644))

	mainPath := filepath.Join(dir, "main.reyna")
	source := `import "./greeting.reyna"; print greeting;`
	require.NoError(t, os.WriteFile(mainPath, []byte(source), 0o644))

	result, err := embed.RunFile(mainPath, source)
	require.NoError(t, err)
	assert.Equal(t, embed.OK, result)
}

func TestNewVMRegistersStdlib(t *testing.T) {
	fn, err := embed.Compile(`print clock();`, ".")
	require.NoError(t, err)

	machine := embed.NewVM()
	assert.NoError(t, machine.Interpret(fn))
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "ok", embed.OK.String())
	assert.Equal(t, "compile error", embed.CompileError.String())
	assert.Equal(t, "runtime error", embed.RuntimeError.String())
}
