package stdlib

import (
	"testing"

	gouuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/reyna-lang/reyna/internal/vm"
)

func TestUUIDReturnsTrackedParsableString(t *testing.T) {
	machine := vm.New()
	fn := uuidBuiltins()["uuid"]

	result, err := fn(machine, nil)
	assert.NoError(t, err)

	s, ok := result.Obj.(*vm.ObjString)
	assert.True(t, ok)
	_, parseErr := gouuid.Parse(s.Value)
	assert.NoError(t, parseErr)
}

func TestUUIDGeneratesDistinctValues(t *testing.T) {
	machine := vm.New()
	fn := uuidBuiltins()["uuid"]

	a, _ := fn(machine, nil)
	b, _ := fn(machine, nil)
	assert.NotEqual(t, a.Obj.(*vm.ObjString).Value, b.Obj.(*vm.ObjString).Value)
}

func TestUUIDRejectsArguments(t *testing.T) {
	machine := vm.New()
	_, err := uuidBuiltins()["uuid"](machine, []vm.Value{vm.IntVal(1)})
	assert.Error(t, err)
}
