package stdlib

import "github.com/reyna-lang/reyna/internal/vm"

// pythonBuiltins registers `python` so scripts written against the
// reference implementation's escape hatch get a clear runtime error
// instead of an undefined-global compile error. The host never executes
// arbitrary code on a script's behalf.
func pythonBuiltins() map[string]vm.NativeFn {
	return map[string]vm.NativeFn{
		"python": func(machine *vm.VM, args []vm.Value) (vm.Value, error) {
			return vm.Value{}, machine.RuntimeError("python(): this host refuses to execute arbitrary code")
		},
	}
}
