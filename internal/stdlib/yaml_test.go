package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reyna-lang/reyna/internal/vm"
)

func TestToYamlRendersArrayOfScalars(t *testing.T) {
	machine := vm.New()
	arr := vm.ObjVal(machine.NewArray([]vm.Value{vm.IntVal(1), vm.IntVal(2)}))

	result, err := yamlBuiltins()["to_yaml"](machine, []vm.Value{arr})
	assert.NoError(t, err)
	assert.Equal(t, "- 1\n- 2\n", result.Obj.(*vm.ObjString).Value)
}

func TestFromYamlParsesSequenceIntoArray(t *testing.T) {
	machine := vm.New()
	src := vm.ObjVal(machine.NewString("- 1\n- 2\n- 3\n"))

	result, err := yamlBuiltins()["from_yaml"](machine, []vm.Value{src})
	assert.NoError(t, err)

	arr, ok := result.Obj.(*vm.ObjArray)
	assert.True(t, ok)
	assert.Len(t, arr.Elements, 3)
	assert.Equal(t, int64(1), arr.Elements[0].AsInt())
}

func TestFromYamlParsesMappingIntoInstance(t *testing.T) {
	machine := vm.New()
	src := vm.ObjVal(machine.NewString("name: reyna\nage: 1\n"))

	result, err := yamlBuiltins()["from_yaml"](machine, []vm.Value{src})
	assert.NoError(t, err)

	inst, ok := result.Obj.(*vm.ObjInstance)
	assert.True(t, ok)
	assert.Equal(t, "reyna", inst.Fields["name"].Obj.(*vm.ObjString).Value)
	assert.Equal(t, int64(1), inst.Fields["age"].AsInt())
}

func TestFromYamlRejectsMalformedInput(t *testing.T) {
	machine := vm.New()
	src := vm.ObjVal(machine.NewString("not: [valid\n"))

	_, err := yamlBuiltins()["from_yaml"](machine, []vm.Value{src})
	assert.Error(t, err)
}

func TestRoundTripThroughYaml(t *testing.T) {
	machine := vm.New()
	inst := machine.NewInstance("point", nil)
	inst.Fields["x"] = vm.IntVal(1)
	inst.Fields["y"] = vm.IntVal(2)

	encoded, err := yamlBuiltins()["to_yaml"](machine, []vm.Value{vm.ObjVal(inst)})
	assert.NoError(t, err)

	decoded, err := yamlBuiltins()["from_yaml"](machine, []vm.Value{encoded})
	assert.NoError(t, err)

	out := decoded.Obj.(*vm.ObjInstance)
	assert.Equal(t, int64(1), out.Fields["x"].AsInt())
	assert.Equal(t, int64(2), out.Fields["y"].AsInt())
}
