package vm

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/reyna-lang/reyna/internal/config"
)

// GC is a stop-the-world, precise, mark-and-sweep collector over every
// heap object the VM has allocated. Unlike the collector this is grounded
// on, it traces every out-edge the data model actually has: closures trace
// their function *and* their upvalue vector, classes trace their method
// table, bound methods trace receiver and method, and arrays trace their
// elements — not just instance field maps.
type GC struct {
	vm    *VM
	heap  []GCObject
	gray  []GCObject
	bytes int
	next  int

	// Log receives one line per collection when non-nil; the embedding
	// host leaves it nil to stay silent.
	Log io.Writer

	// Disabled stops collect from ever running; tests that want a
	// deterministic heap set this instead of tuning thresholds.
	Disabled bool
}

// roughObjectSize is a coarse per-object accounting unit; Reyna does not
// need byte-exact accounting, only a threshold that scales with how much
// has actually been allocated.
const roughObjectSize = 64

// NewGC creates a collector with the configured initial threshold.
func NewGC(vm *VM) *GC {
	return &GC{vm: vm, next: config.GCInitialThreshold}
}

// Track registers a freshly allocated heap object with the collector and
// triggers a collection if the allocation threshold has been crossed. It
// must only be called between instructions, never mid-instruction, so that
// a half-built object is never swept out from under its constructor.
func (gc *GC) Track(obj GCObject) GCObject {
	gc.heap = append(gc.heap, obj)
	gc.bytes += roughObjectSize
	if !gc.Disabled && gc.bytes > gc.next {
		gc.collect()
		gc.next = int(float64(gc.bytes) * config.GCGrowthFactor)
	}
	return obj
}

func (gc *GC) collect() {
	before := len(gc.heap)
	gc.markRoots()
	gc.traceReferences()
	gc.sweep()
	if gc.Log != nil {
		after := len(gc.heap)
		fmt.Fprintf(gc.Log, "-- gc: collected %d objects, %s live, %d remain\n",
			before-after, humanize.Bytes(uint64(gc.bytes)), after)
	}
}

// markRoots marks every value reachable without tracing: the value stack,
// the globals map, every live frame's closure, and every open upvalue.
func (gc *GC) markRoots() {
	for i := 0; i < gc.vm.sp; i++ {
		gc.markValue(gc.vm.stack[i])
	}
	for _, v := range gc.vm.globals {
		gc.markValue(v)
	}
	for i := 0; i < gc.vm.frameCount; i++ {
		if gc.vm.frames[i].closure != nil {
			gc.markObject(gc.vm.frames[i].closure)
		}
	}
	for uv := gc.vm.openUpvalues; uv != nil; uv = uv.Next {
		gc.markObject(uv)
	}
}

func (gc *GC) markValue(v Value) {
	if v.Type == ValObj && v.Obj != nil {
		gc.markObject(v.Obj)
	}
}

func (gc *GC) markObject(obj GCObject) {
	if obj == nil || obj.marked() {
		return
	}
	obj.setMarked(true)
	gc.gray = append(gc.gray, obj)
}

func (gc *GC) traceReferences() {
	for len(gc.gray) > 0 {
		obj := gc.gray[len(gc.gray)-1]
		gc.gray = gc.gray[:len(gc.gray)-1]
		gc.blacken(obj)
	}
}

func (gc *GC) blacken(obj GCObject) {
	switch o := obj.(type) {
	case *ObjInstance:
		if o.Class != nil {
			gc.markObject(o.Class)
		}
		for _, field := range o.Fields {
			gc.markValue(field)
		}
	case *ObjClass:
		for _, method := range o.Methods {
			gc.markObject(method)
		}
	case *ObjClosure:
		gc.markObject(o.Function)
		for _, uv := range o.Upvalues {
			gc.markObject(uv)
		}
	case *ObjBoundMethod:
		gc.markValue(o.Receiver)
		gc.markObject(o.Method)
	case *ObjArray:
		for _, el := range o.Elements {
			gc.markValue(el)
		}
	case *ObjUpvalue:
		if o.Location < 0 {
			gc.markValue(o.Closed)
		}
	case *ObjFunction, *ObjString, *ObjNative, *ObjStructDef, *ObjOpaque:
		// no out-edges
	}
}

func (gc *GC) sweep() {
	survivors := gc.heap[:0]
	for _, obj := range gc.heap {
		if obj.marked() {
			obj.setMarked(false)
			survivors = append(survivors, obj)
		}
	}
	gc.heap = survivors
	gc.bytes = len(gc.heap) * roughObjectSize
}

// newString allocates and tracks an ObjString.
func (vm *VM) newString(s string) *ObjString {
	return vm.gc.Track(&ObjString{Value: s}).(*ObjString)
}

// newArray allocates and tracks an ObjArray.
func (vm *VM) newArray(elements []Value) *ObjArray {
	return vm.gc.Track(&ObjArray{Elements: elements}).(*ObjArray)
}

// newInstance allocates and tracks an ObjInstance. class is nil for a
// struct instance, which has no method table.
func (vm *VM) newInstance(typeName string, class *ObjClass) *ObjInstance {
	return vm.gc.Track(&ObjInstance{ClassName: typeName, Class: class, Fields: make(map[string]Value)}).(*ObjInstance)
}

// newClosure allocates and tracks an ObjClosure wrapping fn, with an
// Upvalues slice pre-sized for the caller to fill in.
func (vm *VM) newClosure(fn *ObjFunction) *ObjClosure {
	return vm.gc.Track(&ObjClosure{Function: fn, Upvalues: make([]*ObjUpvalue, fn.UpvalueCount)}).(*ObjClosure)
}

// newClass allocates and tracks an ObjClass with an empty method table.
func (vm *VM) newClass(name string) *ObjClass {
	return vm.gc.Track(&ObjClass{Name: name, Methods: make(map[string]*ObjClosure)}).(*ObjClass)
}

// newStructDef allocates and tracks an ObjStructDef.
func (vm *VM) newStructDef(name string) *ObjStructDef {
	return vm.gc.Track(&ObjStructDef{Name: name}).(*ObjStructDef)
}

// newUpvalue allocates and tracks an open ObjUpvalue over stack slot loc.
func (vm *VM) newUpvalue(loc int) *ObjUpvalue {
	return vm.gc.Track(&ObjUpvalue{Location: loc}).(*ObjUpvalue)
}

// newBoundMethod allocates and tracks an ObjBoundMethod.
func (vm *VM) newBoundMethod(receiver Value, method *ObjClosure) *ObjBoundMethod {
	return vm.gc.Track(&ObjBoundMethod{Receiver: receiver, Method: method}).(*ObjBoundMethod)
}
