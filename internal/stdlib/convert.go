package stdlib

import (
	"strconv"

	"github.com/reyna-lang/reyna/internal/vm"
)

// convertBuiltins exposes str/int/float (the reference implementation's
// trio of explicit conversion natives) plus len, a supplement for arrays
// and strings grounded on the pack's conventional length builtin.
func convertBuiltins() map[string]vm.NativeFn {
	return map[string]vm.NativeFn{
		"str": func(machine *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 1 {
				return vm.Value{}, arityError("str", 1, len(args))
			}
			return vm.ObjVal(machine.NewString(args[0].String())), nil
		},

		"len": func(_ *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 1 {
				return vm.Value{}, arityError("len", 1, len(args))
			}
			if !args[0].IsObj() {
				return vm.Value{}, typeError("len", "array or string", args[0])
			}
			switch o := args[0].Obj.(type) {
			case *vm.ObjArray:
				return vm.IntVal(int64(len(o.Elements))), nil
			case *vm.ObjString:
				return vm.IntVal(int64(len(o.Value))), nil
			default:
				return vm.Value{}, typeError("len", "array or string", args[0])
			}
		},

		"int": func(_ *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 1 {
				return vm.Value{}, arityError("int", 1, len(args))
			}
			v := args[0]
			switch {
			case v.IsInt():
				return v, nil
			case v.IsFloat():
				return vm.IntVal(int64(v.AsFloat())), nil
			case v.IsBool():
				if v.AsBool() {
					return vm.IntVal(1), nil
				}
				return vm.IntVal(0), nil
			}
			s, err := argString("int", args, 0)
			if err != nil {
				return vm.Value{}, err
			}
			n, convErr := strconv.ParseInt(s, 10, 64)
			if convErr != nil {
				return vm.Value{}, typeError("int", "a numeric string", args[0])
			}
			return vm.IntVal(n), nil
		},

		"float": func(_ *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 1 {
				return vm.Value{}, arityError("float", 1, len(args))
			}
			v := args[0]
			switch {
			case v.IsFloat():
				return v, nil
			case v.IsInt():
				return vm.FloatVal(float64(v.AsInt())), nil
			}
			s, err := argString("float", args, 0)
			if err != nil {
				return vm.Value{}, err
			}
			f, convErr := strconv.ParseFloat(s, 64)
			if convErr != nil {
				return vm.Value{}, typeError("float", "a numeric string", args[0])
			}
			return vm.FloatVal(f), nil
		},
	}
}
