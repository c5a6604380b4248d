package stdlib

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reyna-lang/reyna/internal/vm"
)

func TestWriteFileThenReadFileRoundTrip(t *testing.T) {
	machine := vm.New()
	path := filepath.Join(t.TempDir(), "greeting.txt")

	_, err := ioBuiltins()["write_file"](machine, []vm.Value{
		vm.ObjVal(machine.NewString(path)),
		vm.ObjVal(machine.NewString("hello, reyna")),
	})
	assert.NoError(t, err)

	result, err := ioBuiltins()["read_file"](machine, []vm.Value{vm.ObjVal(machine.NewString(path))})
	assert.NoError(t, err)
	assert.Equal(t, "hello, reyna", result.Obj.(*vm.ObjString).Value)
}

func TestReadFileMissingPathIsRuntimeError(t *testing.T) {
	machine := vm.New()
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")

	_, err := ioBuiltins()["read_file"](machine, []vm.Value{vm.ObjVal(machine.NewString(path))})
	assert.Error(t, err)
}

func TestWriteFileArity(t *testing.T) {
	machine := vm.New()
	_, err := ioBuiltins()["write_file"](machine, []vm.Value{vm.ObjVal(machine.NewString("x"))})
	assert.Error(t, err)
}
