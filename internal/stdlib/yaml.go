package stdlib

import (
	"gopkg.in/yaml.v3"

	"github.com/reyna-lang/reyna/internal/reynaerr"
	"github.com/reyna-lang/reyna/internal/vm"
)

// yamlBuiltins exposes to_yaml/from_yaml, supplementing the reference
// implementation's bare str/int/float conversions with structured
// serialization for arrays and struct/class instances.
func yamlBuiltins() map[string]vm.NativeFn {
	return map[string]vm.NativeFn{
		"to_yaml": func(machine *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 1 {
				return vm.Value{}, arityError("to_yaml", 1, len(args))
			}
			out, err := yaml.Marshal(valueToGo(args[0]))
			if err != nil {
				return vm.Value{}, &reynaerr.RuntimeError{Msg: "to_yaml: " + err.Error()}
			}
			return vm.ObjVal(machine.NewString(string(out))), nil
		},

		"from_yaml": func(machine *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 1 {
				return vm.Value{}, arityError("from_yaml", 1, len(args))
			}
			s, err := argString("from_yaml", args, 0)
			if err != nil {
				return vm.Value{}, err
			}
			var data interface{}
			if unmarshalErr := yaml.Unmarshal([]byte(s), &data); unmarshalErr != nil {
				return vm.Value{}, &reynaerr.RuntimeError{Msg: "from_yaml: " + unmarshalErr.Error()}
			}
			return goToValue(machine, data), nil
		},
	}
}

// valueToGo converts a Reyna Value into a plain Go value yaml.Marshal can
// encode: arrays become []interface{}, struct/class instances become
// map[string]interface{} keyed by field name.
func valueToGo(v vm.Value) interface{} {
	switch {
	case v.IsNil():
		return nil
	case v.IsBool():
		return v.AsBool()
	case v.IsInt():
		return v.AsInt()
	case v.IsFloat():
		return v.AsFloat()
	case v.IsObj():
		switch o := v.Obj.(type) {
		case *vm.ObjString:
			return o.Value
		case *vm.ObjArray:
			out := make([]interface{}, len(o.Elements))
			for i, el := range o.Elements {
				out[i] = valueToGo(el)
			}
			return out
		case *vm.ObjInstance:
			out := make(map[string]interface{}, len(o.Fields))
			for k, val := range o.Fields {
				out[k] = valueToGo(val)
			}
			return out
		}
	}
	return v.String()
}

// goToValue converts a yaml.Unmarshal result back into a Reyna Value:
// sequences become arrays, mappings become instances of an anonymous
// struct-like type with no declared class.
func goToValue(machine *vm.VM, data interface{}) vm.Value {
	switch d := data.(type) {
	case nil:
		return vm.NilVal()
	case bool:
		return vm.BoolVal(d)
	case int:
		return vm.IntVal(int64(d))
	case int64:
		return vm.IntVal(d)
	case float64:
		return vm.FloatVal(d)
	case string:
		return vm.ObjVal(machine.NewString(d))
	case []interface{}:
		elements := make([]vm.Value, len(d))
		for i, el := range d {
			elements[i] = goToValue(machine, el)
		}
		return vm.ObjVal(machine.NewArray(elements))
	case map[string]interface{}:
		instance := machine.NewInstance("yaml", nil)
		for k, val := range d {
			instance.Fields[k] = goToValue(machine, val)
		}
		return vm.ObjVal(instance)
	default:
		return vm.NilVal()
	}
}
