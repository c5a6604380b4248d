package stdlib

import (
	"github.com/google/uuid"

	"github.com/reyna-lang/reyna/internal/vm"
)

// uuidBuiltins exposes a single `uuid()` native returning a fresh v4 UUID
// string, for generating unique instance/session ids from Reyna scripts.
func uuidBuiltins() map[string]vm.NativeFn {
	return map[string]vm.NativeFn{
		"uuid": func(machine *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 0 {
				return vm.Value{}, arityError("uuid", 0, len(args))
			}
			return vm.ObjVal(machine.NewString(uuid.New().String())), nil
		},
	}
}
