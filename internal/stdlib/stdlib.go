// Package stdlib registers Reyna's native functions: the small set of
// host-implemented builtins a Reyna program can call without an import.
package stdlib

import (
	"fmt"

	"github.com/reyna-lang/reyna/internal/reynaerr"
	"github.com/reyna-lang/reyna/internal/vm"
)

// Register installs every native function into vm's globals.
func Register(machine *vm.VM) {
	register(machine, clockBuiltins())
	register(machine, convertBuiltins())
	register(machine, ioBuiltins())
	register(machine, uuidBuiltins())
	register(machine, yamlBuiltins())
	register(machine, sqlBuiltins())
	register(machine, pythonBuiltins())
}

func register(machine *vm.VM, fns map[string]vm.NativeFn) {
	for name, fn := range fns {
		machine.DefineGlobal(name, vm.ObjVal(&vm.ObjNative{Name: name, Fn: fn}))
	}
}

// arityError builds the RuntimeError every native returns on a wrong
// argument count, in the teacher's "X expects N arguments, got M" phrasing.
func arityError(name string, want, got int) error {
	return &reynaerr.RuntimeError{Msg: fmt.Sprintf("%s expects %d argument(s), got %d", name, want, got)}
}

func typeError(name, want string, got vm.Value) error {
	return &reynaerr.RuntimeError{Msg: fmt.Sprintf("%s: expected %s, got %s", name, want, got.TypeName())}
}

func argString(name string, args []vm.Value, i int) (string, error) {
	if !args[i].IsObj() {
		return "", typeError(name, "string", args[i])
	}
	s, ok := args[i].Obj.(*vm.ObjString)
	if !ok {
		return "", typeError(name, "string", args[i])
	}
	return s.Value, nil
}
