package vm

// NewString allocates and tracks a string for a native function or
// embedding host that needs to hand a freshly built value back into Reyna.
func (vm *VM) NewString(s string) *ObjString { return vm.newString(s) }

// NewArray allocates and tracks an array for a native function or
// embedding host.
func (vm *VM) NewArray(elements []Value) *ObjArray { return vm.newArray(elements) }

// NewInstance allocates and tracks an instance for a native function or
// embedding host; class is nil for a struct-shaped instance with no
// method table.
func (vm *VM) NewInstance(typeName string, class *ObjClass) *ObjInstance {
	return vm.newInstance(typeName, class)
}

// RuntimeError builds a *reynaerr.RuntimeError stamped with the currently
// executing line, for native functions that need to raise the same kind
// of error the VM itself raises.
func (vm *VM) RuntimeError(format string, args ...interface{}) error {
	return vm.runtimeError(format, args...)
}

// NewOpaque allocates and tracks a native resource handle, for natives
// like sql_open that must hand a Go value back into Reyna code without
// exposing its internals.
func (vm *VM) NewOpaque(kind string, data interface{}) *ObjOpaque {
	return vm.gc.Track(&ObjOpaque{Kind: kind, Data: data}).(*ObjOpaque)
}
