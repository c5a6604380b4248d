package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reyna-lang/reyna/internal/vm"
)

func TestPythonRefusesToExecute(t *testing.T) {
	machine := vm.New()
	_, err := pythonBuiltins()["python"](machine, []vm.Value{vm.ObjVal(machine.NewString("print('hi')"))})
	assert.Error(t, err)
}
