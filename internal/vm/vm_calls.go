package vm

// callValue dispatches an OP_CALL against whatever value sits at the
// callee slot (vm.peek(argCount)): a closure, a bound method, a class
// (instantiation, with "init" invoked if declared), a struct definition
// (zero-argument instantiation), or a native function.
func (vm *VM) callValue(callee Value, argCount int) error {
	if !callee.IsObj() {
		return vm.runtimeError("'%s' is not callable", callee.TypeName())
	}

	switch obj := callee.Obj.(type) {
	case *ObjClosure:
		return vm.callClosure(obj, argCount)

	case *ObjBoundMethod:
		vm.stack[vm.sp-argCount-1] = obj.Receiver
		return vm.callClosure(obj.Method, argCount)

	case *ObjClass:
		instance := vm.newInstance(obj.Name, obj)
		if init, ok := obj.Methods["init"]; ok {
			vm.stack[vm.sp-argCount-1] = ObjVal(instance)
			return vm.callClosure(init, argCount)
		}
		if argCount != 0 {
			return vm.runtimeError("class %s has no init and takes no arguments", obj.Name)
		}
		vm.stack[vm.sp-argCount-1] = ObjVal(instance)
		return nil

	case *ObjStructDef:
		if argCount != 0 {
			return vm.runtimeError("struct %s takes no call arguments", obj.Name)
		}
		instance := vm.newInstance(obj.Name, nil)
		vm.stack[vm.sp-argCount-1] = ObjVal(instance)
		return nil

	case *ObjNative:
		args := make([]Value, argCount)
		copy(args, vm.stack[vm.sp-argCount:vm.sp])
		vm.sp -= argCount
		result, err := obj.Fn(vm, args)
		if err != nil {
			return err
		}
		vm.stack[vm.sp-1] = result
		return nil

	default:
		return vm.runtimeError("'%s' is not callable", callee.TypeName())
	}
}

// callClosure validates arity and pushes a new call frame for closure,
// with its base set so slot 0 is the receiver/callee stack position.
func (vm *VM) callClosure(closure *ObjClosure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError("expected %d arguments but got %d", closure.Function.Arity, argCount)
	}
	if vm.frameCount >= MaxFrameCount {
		return vm.runtimeError("stack overflow")
	}
	if vm.frameCount >= len(vm.frames) {
		vm.frames = append(vm.frames, CallFrame{})
	}
	frame := &vm.frames[vm.frameCount]
	frame.closure = closure
	frame.chunk = closure.Function.Chunk
	frame.ip = 0
	frame.base = vm.sp - argCount - 1
	vm.frameCount++
	vm.frame = frame
	return nil
}
