package vm

import (
	"fmt"
	"math"

	"github.com/reyna-lang/reyna/internal/reynaerr"
)

// Interpret runs fn as the top-level script: fn is wrapped in a closure,
// pushed into stack slot 0 (the conventional receiver slot every call frame
// reserves), and executed to completion.
func (vm *VM) Interpret(fn *ObjFunction) error {
	closure := vm.newClosure(fn)
	vm.push(ObjVal(closure))
	if err := vm.callClosure(closure, 0); err != nil {
		return err
	}
	return vm.run()
}

func (vm *VM) currentLine() int {
	f := vm.frame
	if f == nil || f.ip == 0 || f.ip > len(f.chunk.Lines) {
		return 0
	}
	return f.chunk.Lines[f.ip-1]
}

func (vm *VM) runtimeError(format string, args ...interface{}) error {
	return &reynaerr.RuntimeError{Line: vm.currentLine(), Msg: fmt.Sprintf(format, args...)}
}

func (vm *VM) readByte() byte {
	f := vm.frame
	if f.ip >= len(f.chunk.Code) {
		panic(errTruncatedBytecode)
	}
	b := f.chunk.Code[f.ip]
	f.ip++
	return b
}

func (vm *VM) readShort() int {
	hi := vm.readByte()
	lo := vm.readByte()
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant() Value {
	idx := vm.readShort()
	if idx >= len(vm.frame.chunk.Constants) {
		panic(errInvalidConstantIndex)
	}
	return vm.frame.chunk.Constants[idx]
}

func (vm *VM) readName() string {
	v := vm.readConstant()
	return v.Obj.(*ObjString).Value
}

// run is the main dispatch loop. It returns nil on a clean OP_RETURN from
// the top-level frame, or the error (a *reynaerr.RuntimeError for anything
// the interpreter itself raises, an uncaught-throw error, or a Go error
// from a native function) that ended execution early.
func (vm *VM) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	for {
		op := Opcode(vm.readByte())
		switch op {
		case OP_RETURN:
			if done, rerr := vm.doReturn(); rerr != nil {
				return rerr
			} else if done {
				return nil
			}

		case OP_CALL:
			argCount := int(vm.readByte())
			callee := vm.peek(argCount)
			if err := vm.callValue(callee, argCount); err != nil {
				return err
			}

		case OP_THROW:
			if err := vm.doThrow(); err != nil {
				return err
			}

		default:
			if err := vm.executeOneOp(op); err != nil {
				return err
			}
		}
	}
}

// executeOneOp handles every opcode except OP_RETURN, OP_CALL, and
// OP_THROW, which need to manipulate the frame stack in ways the run loop
// itself must observe.
func (vm *VM) executeOneOp(op Opcode) error {
	line := vm.currentLine()

	switch op {
	case OP_CONST:
		vm.push(vm.readConstant())

	case OP_NIL:
		vm.push(NilVal())

	case OP_TRUE:
		vm.push(BoolVal(true))

	case OP_FALSE:
		vm.push(BoolVal(false))

	case OP_POP:
		vm.pop()

	case OP_DUP:
		vm.push(vm.peek(0))

	case OP_CLOSE_SCOPE:
		n := int(vm.readByte())
		result := vm.pop()
		vm.closeUpvalues(vm.sp - n)
		for i := 0; i < n; i++ {
			vm.pop()
		}
		vm.push(result)

	case OP_GET_LOCAL:
		slot := int(vm.readByte())
		vm.push(vm.stack[vm.frame.base+slot])

	case OP_SET_LOCAL:
		slot := int(vm.readByte())
		vm.stack[vm.frame.base+slot] = vm.peek(0)

	case OP_GET_GLOBAL:
		name := vm.readName()
		v, ok := vm.globals[name]
		if !ok {
			return vm.runtimeError("undefined variable '%s'", name)
		}
		vm.push(v)

	case OP_DEFINE_GLOBAL:
		name := vm.readName()
		vm.globals[name] = vm.pop()

	case OP_SET_GLOBAL:
		name := vm.readName()
		if _, ok := vm.globals[name]; !ok {
			return vm.runtimeError("undefined variable '%s'", name)
		}
		vm.globals[name] = vm.peek(0)

	case OP_EQUAL:
		b := vm.pop()
		a := vm.pop()
		vm.push(BoolVal(a.Equals(b)))

	case OP_GREATER, OP_LESS:
		if err := vm.comparisonOp(op); err != nil {
			return err
		}

	case OP_ADD, OP_SUBTRACT, OP_MULTIPLY, OP_DIVIDE:
		if err := vm.arithOp(op); err != nil {
			return err
		}

	case OP_NOT:
		vm.push(BoolVal(!vm.pop().Truthy()))

	case OP_NEGATE:
		v := vm.pop()
		switch {
		case v.IsInt():
			vm.push(IntVal(-v.AsInt()))
		case v.IsFloat():
			vm.push(FloatVal(-v.AsFloat()))
		default:
			return vm.runtimeError("operand of '-' must be a number, got %s", v.TypeName())
		}

	case OP_PRINT:
		fmt.Fprintln(vm.out, vm.pop().String())

	case OP_JUMP:
		offset := vm.readShort()
		vm.frame.ip += offset

	case OP_JUMP_IF_FALSE:
		offset := vm.readShort()
		if !vm.peek(0).Truthy() {
			vm.frame.ip += offset
		}

	case OP_LOOP:
		offset := vm.readShort()
		vm.frame.ip -= offset

	case OP_GET_FIELD:
		return vm.doGetField()

	case OP_SET_FIELD:
		return vm.doSetField()

	case OP_STRUCT:
		name := vm.readName()
		vm.push(ObjVal(vm.newStructDef(name)))

	case OP_BUILD_ARRAY:
		count := int(vm.readByte())
		elements := make([]Value, count)
		for i := count - 1; i >= 0; i-- {
			elements[i] = vm.pop()
		}
		vm.push(ObjVal(vm.newArray(elements)))

	case OP_GET_INDEX:
		return vm.doGetIndex()

	case OP_SET_INDEX:
		return vm.doSetIndex()

	case OP_CLOSURE:
		fnVal := vm.readConstant()
		fn := fnVal.Obj.(*ObjFunction)
		closure := vm.newClosure(fn)
		for i := 0; i < fn.UpvalueCount; i++ {
			isLocal := vm.readByte()
			index := int(vm.readByte())
			if isLocal != 0 {
				closure.Upvalues[i] = vm.captureUpvalue(vm.frame.base + index)
			} else {
				closure.Upvalues[i] = vm.frame.closure.Upvalues[index]
			}
		}
		vm.push(ObjVal(closure))

	case OP_GET_UPVALUE:
		slot := int(vm.readByte())
		uv := vm.frame.closure.Upvalues[slot]
		if uv.Location >= 0 {
			vm.push(vm.stack[uv.Location])
		} else {
			vm.push(uv.Closed)
		}

	case OP_SET_UPVALUE:
		slot := int(vm.readByte())
		uv := vm.frame.closure.Upvalues[slot]
		if uv.Location >= 0 {
			vm.stack[uv.Location] = vm.peek(0)
		} else {
			uv.Closed = vm.peek(0)
		}

	case OP_CLOSE_UPVALUE:
		vm.closeUpvalues(vm.sp - 1)
		vm.pop()

	case OP_CLASS:
		name := vm.readName()
		vm.push(ObjVal(vm.newClass(name)))

	case OP_METHOD:
		// Pops the method closure, leaving the class on the stack; the
		// compiler follows each OP_METHOD with one OP_POP that discards the
		// class copy it re-fetched for that method.
		name := vm.readName()
		method := vm.pop().Obj.(*ObjClosure)
		class := vm.peek(0).Obj.(*ObjClass)
		class.Methods[name] = method

	case OP_INHERIT:
		superVal := vm.peek(0)
		super, ok := superVal.Obj.(*ObjClass)
		if !ok {
			return vm.runtimeError("superclass must be a class, got %s", superVal.TypeName())
		}
		sub := vm.peek(1).Obj.(*ObjClass)
		for name, m := range super.Methods {
			sub.Methods[name] = m
		}
		// Both class values stay on the stack; the enclosing scope's
		// end-of-scope cleanup pops them (see compileClassDecl).

	case OP_GET_SUPER:
		name := vm.readName()
		superVal := vm.pop()
		receiver := vm.pop()
		super, ok := superVal.Obj.(*ObjClass)
		if !ok {
			return vm.runtimeError("'super' did not resolve to a class")
		}
		method, ok := super.Methods[name]
		if !ok {
			return vm.runtimeError("undefined property '%s' in superclass", name)
		}
		vm.push(ObjVal(vm.newBoundMethod(receiver, method)))

	case OP_TRY_BEGIN:
		offset := vm.readShort()
		catchIP := vm.frame.ip + offset
		vm.handlers = append(vm.handlers, handler{catchIP: catchIP, stackDepth: vm.sp, frameDepth: vm.frameCount})

	case OP_TRY_END:
		if len(vm.handlers) > 0 {
			vm.handlers = vm.handlers[:len(vm.handlers)-1]
		}

	default:
		return fmt.Errorf("unknown opcode %s at line %d", op, line)
	}
	return nil
}

func (vm *VM) comparisonOp(op Opcode) error {
	b := vm.pop()
	a := vm.pop()
	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeError("operands of comparison must be numbers, got %s and %s", a.TypeName(), b.TypeName())
	}
	var result bool
	if op == OP_GREATER {
		result = a.AsNumber() > b.AsNumber()
	} else {
		result = a.AsNumber() < b.AsNumber()
	}
	vm.push(BoolVal(result))
	return nil
}

// arithOp implements +, -, *, / with the widening and truncating-integer-
// division rules: two ints stay integer arithmetic (division truncates
// toward zero), any float operand widens the whole operation to float64,
// and '+' additionally supports string concatenation when either operand
// is a string.
func (vm *VM) arithOp(op Opcode) error {
	b := vm.pop()
	a := vm.pop()

	if op == OP_ADD {
		_, aIsStr := a.Obj.(*ObjString)
		_, bIsStr := b.Obj.(*ObjString)
		if aIsStr || bIsStr {
			vm.push(ObjVal(vm.newString(a.String() + b.String())))
			return nil
		}
	}

	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeError("operands of '%s' must be numbers, got %s and %s", op, a.TypeName(), b.TypeName())
	}

	if a.IsInt() && b.IsInt() {
		ai, bi := a.AsInt(), b.AsInt()
		switch op {
		case OP_ADD:
			vm.push(IntVal(ai + bi))
		case OP_SUBTRACT:
			vm.push(IntVal(ai - bi))
		case OP_MULTIPLY:
			vm.push(IntVal(ai * bi))
		case OP_DIVIDE:
			if bi == 0 {
				return vm.runtimeError("division by zero")
			}
			vm.push(IntVal(ai / bi)) // Go's integer division truncates toward zero
		}
		return nil
	}

	af, bf := a.AsNumber(), b.AsNumber()
	switch op {
	case OP_ADD:
		vm.push(FloatVal(af + bf))
	case OP_SUBTRACT:
		vm.push(FloatVal(af - bf))
	case OP_MULTIPLY:
		vm.push(FloatVal(af * bf))
	case OP_DIVIDE:
		if bf == 0 {
			vm.push(FloatVal(math.NaN()))
		} else {
			vm.push(FloatVal(af / bf))
		}
	}
	return nil
}

func (vm *VM) doGetField() error {
	name := vm.readName()
	obj := vm.pop()
	inst, ok := obj.Obj.(*ObjInstance)
	if !ok {
		return vm.runtimeError("only instances have properties, got %s", obj.TypeName())
	}
	if field, ok := inst.Fields[name]; ok {
		vm.push(field)
		return nil
	}
	if inst.Class != nil {
		if method, ok := inst.Class.Methods[name]; ok {
			vm.push(ObjVal(vm.newBoundMethod(obj, method)))
			return nil
		}
	}
	return vm.runtimeError("undefined property '%s'", name)
}

func (vm *VM) doSetField() error {
	name := vm.readName()
	val := vm.pop()
	obj := vm.pop()
	inst, ok := obj.Obj.(*ObjInstance)
	if !ok {
		return vm.runtimeError("only instances have properties, got %s", obj.TypeName())
	}
	inst.Fields[name] = val
	vm.push(val)
	return nil
}

func (vm *VM) doGetIndex() error {
	idx := vm.pop()
	target := vm.pop()
	arr, ok := target.Obj.(*ObjArray)
	if !ok {
		return vm.runtimeError("can only index arrays, got %s", target.TypeName())
	}
	if !idx.IsNumber() {
		return vm.runtimeError("array index must be a number, got %s", idx.TypeName())
	}
	i := int(idx.AsNumber())
	if i < 0 || i >= len(arr.Elements) {
		return vm.runtimeError("index %d out of bounds for array of length %d", i, len(arr.Elements))
	}
	vm.push(arr.Elements[i])
	return nil
}

func (vm *VM) doSetIndex() error {
	val := vm.pop()
	idx := vm.pop()
	target := vm.pop()
	arr, ok := target.Obj.(*ObjArray)
	if !ok {
		return vm.runtimeError("can only index arrays, got %s", target.TypeName())
	}
	if !idx.IsNumber() {
		return vm.runtimeError("array index must be a number, got %s", idx.TypeName())
	}
	i := int(idx.AsNumber())
	if i < 0 || i >= len(arr.Elements) {
		return vm.runtimeError("index %d out of bounds for array of length %d", i, len(arr.Elements))
	}
	arr.Elements[i] = val
	vm.push(val)
	return nil
}

// captureUpvalue finds or creates the open upvalue for absolute stack slot
// loc, keeping the open list sorted by slot so closeUpvalues can stop early.
func (vm *VM) captureUpvalue(loc int) *ObjUpvalue {
	var prev *ObjUpvalue
	cur := vm.openUpvalues
	for cur != nil && cur.Location > loc {
		prev = cur
		cur = cur.Next
	}
	if cur != nil && cur.Location == loc {
		return cur
	}
	created := vm.newUpvalue(loc)
	created.Next = cur
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.Next = created
	}
	return created
}

// closeUpvalues closes every open upvalue at or above absolute stack slot
// last, copying the live stack value into the upvalue before it stops
// being reachable from the stack.
func (vm *VM) closeUpvalues(last int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Location >= last {
		uv := vm.openUpvalues
		uv.Closed = vm.stack[uv.Location]
		uv.Location = -1
		vm.openUpvalues = uv.Next
		uv.Next = nil
	}
}

// doReturn pops the current frame's result, closes any upvalues it owns,
// and resumes the caller. done is true once the top-level frame returns.
func (vm *VM) doReturn() (done bool, err error) {
	result := vm.pop()
	vm.closeUpvalues(vm.frame.base)
	vm.frameCount--
	if vm.frameCount == 0 {
		vm.pop() // the script closure pushed by Interpret
		return true, nil
	}
	vm.sp = vm.frame.base
	vm.push(result)
	vm.frame = &vm.frames[vm.frameCount-1]
	return false, nil
}

// doThrow pops the thrown value and either unwinds to the nearest handler
// or, if none remains, reports an uncaught exception.
func (vm *VM) doThrow() error {
	exception := vm.pop()
	if len(vm.handlers) == 0 {
		return vm.runtimeError("uncaught exception: %s", exception.String())
	}
	h := vm.handlers[len(vm.handlers)-1]
	vm.handlers = vm.handlers[:len(vm.handlers)-1]

	for vm.frameCount > h.frameDepth {
		vm.frameCount--
	}
	vm.frame = &vm.frames[vm.frameCount-1]
	vm.closeUpvalues(h.stackDepth)
	vm.sp = h.stackDepth

	vm.push(exception)
	vm.frame.ip = h.catchIP
	return nil
}
