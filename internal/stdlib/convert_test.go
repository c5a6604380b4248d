package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reyna-lang/reyna/internal/vm"
)

func TestStrConvertsIntAndBool(t *testing.T) {
	machine := vm.New()
	fn := convertBuiltins()["str"]

	result, err := fn(machine, []vm.Value{vm.IntVal(42)})
	assert.NoError(t, err)
	assert.Equal(t, "42", result.Obj.(*vm.ObjString).Value)

	result, err = fn(machine, []vm.Value{vm.BoolVal(true)})
	assert.NoError(t, err)
	assert.Equal(t, "true", result.Obj.(*vm.ObjString).Value)
}

func TestStrArity(t *testing.T) {
	machine := vm.New()
	_, err := convertBuiltins()["str"](machine, nil)
	assert.Error(t, err)
}

func TestLenOfArray(t *testing.T) {
	machine := vm.New()
	arr := vm.ObjVal(machine.NewArray([]vm.Value{vm.IntVal(1), vm.IntVal(2), vm.IntVal(3)}))

	result, err := convertBuiltins()["len"](machine, []vm.Value{arr})
	assert.NoError(t, err)
	assert.True(t, result.IsInt())
	assert.Equal(t, int64(3), result.AsInt())
}

func TestLenOfString(t *testing.T) {
	machine := vm.New()
	s := vm.ObjVal(machine.NewString("hello"))

	result, err := convertBuiltins()["len"](machine, []vm.Value{s})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), result.AsInt())
}

func TestLenRejectsNonContainer(t *testing.T) {
	machine := vm.New()
	_, err := convertBuiltins()["len"](machine, []vm.Value{vm.IntVal(5)})
	assert.Error(t, err)
}

func TestIntConvertsFloatBoolAndString(t *testing.T) {
	machine := vm.New()
	fn := convertBuiltins()["int"]

	result, err := fn(machine, []vm.Value{vm.FloatVal(3.9)})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), result.AsInt())

	result, err = fn(machine, []vm.Value{vm.BoolVal(true)})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.AsInt())

	result, err = fn(machine, []vm.Value{vm.ObjVal(machine.NewString("123"))})
	assert.NoError(t, err)
	assert.Equal(t, int64(123), result.AsInt())
}

func TestIntRejectsNonNumericString(t *testing.T) {
	machine := vm.New()
	_, err := convertBuiltins()["int"](machine, []vm.Value{vm.ObjVal(machine.NewString("not a number"))})
	assert.Error(t, err)
}

func TestFloatConvertsIntAndString(t *testing.T) {
	machine := vm.New()
	fn := convertBuiltins()["float"]

	result, err := fn(machine, []vm.Value{vm.IntVal(4)})
	assert.NoError(t, err)
	assert.Equal(t, 4.0, result.AsFloat())

	result, err = fn(machine, []vm.Value{vm.ObjVal(machine.NewString("2.5"))})
	assert.NoError(t, err)
	assert.Equal(t, 2.5, result.AsFloat())
}
