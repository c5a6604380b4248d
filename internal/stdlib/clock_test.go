package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reyna-lang/reyna/internal/vm"
)

func TestClockReturnsIncreasingFloatSeconds(t *testing.T) {
	machine := vm.New()
	fn := clockBuiltins()["clock"]

	first, err := fn(machine, nil)
	assert.NoError(t, err)
	assert.True(t, first.IsFloat())

	second, err := fn(machine, nil)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, second.AsFloat(), first.AsFloat())
}

func TestClockRejectsArguments(t *testing.T) {
	machine := vm.New()
	_, err := clockBuiltins()["clock"](machine, []vm.Value{vm.IntVal(1)})
	assert.Error(t, err)
}
