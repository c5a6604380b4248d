package stdlib

import (
	"time"

	"github.com/reyna-lang/reyna/internal/vm"
)

// clockBuiltins exposes wall-clock time, grounded on the reference
// implementation's zero-argument `clock()` native.
func clockBuiltins() map[string]vm.NativeFn {
	return map[string]vm.NativeFn{
		"clock": func(_ *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 0 {
				return vm.Value{}, arityError("clock", 0, len(args))
			}
			return vm.FloatVal(float64(time.Now().UnixNano()) / 1e9), nil
		},
	}
}
