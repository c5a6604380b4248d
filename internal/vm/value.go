package vm

import (
	"fmt"
	"math"
)

// ValueType tags the variant held by a Value.
type ValueType uint8

const (
	ValNil ValueType = iota
	ValInt
	ValFloat
	ValBool
	ValObj
)

// Value is a stack-allocated tagged union: int64, float64, and bool live
// inline in Data with no heap allocation; everything else is a GCObject
// handle kept alive in Obj so the collector can trace it.
type Value struct {
	Type ValueType
	Data uint64
	Obj  GCObject
}

func NilVal() Value                { return Value{Type: ValNil} }
func IntVal(v int64) Value         { return Value{Type: ValInt, Data: uint64(v)} }
func FloatVal(v float64) Value     { return Value{Type: ValFloat, Data: math.Float64bits(v)} }
func ObjVal(o GCObject) Value      { return Value{Type: ValObj, Obj: o} }

func BoolVal(v bool) Value {
	var data uint64
	if v {
		data = 1
	}
	return Value{Type: ValBool, Data: data}
}

func (v Value) AsInt() int64     { return int64(v.Data) }
func (v Value) AsFloat() float64 { return math.Float64frombits(v.Data) }
func (v Value) AsBool() bool     { return v.Data == 1 }

func (v Value) IsInt() bool   { return v.Type == ValInt }
func (v Value) IsFloat() bool { return v.Type == ValFloat }
func (v Value) IsBool() bool  { return v.Type == ValBool }
func (v Value) IsNil() bool   { return v.Type == ValNil }
func (v Value) IsObj() bool   { return v.Type == ValObj }

// IsNumber reports whether v holds an int64 or a float64.
func (v Value) IsNumber() bool { return v.Type == ValInt || v.Type == ValFloat }

// AsNumber widens an int or float Value to float64, for mixed arithmetic.
func (v Value) AsNumber() float64 {
	if v.Type == ValInt {
		return float64(v.AsInt())
	}
	return v.AsFloat()
}

// Truthy implements Reyna's branch condition rule: nil, false, and numeric
// zero (int or float) are falsy; every other value is truthy.
func (v Value) Truthy() bool {
	switch v.Type {
	case ValNil:
		return false
	case ValBool:
		return v.AsBool()
	case ValInt:
		return v.AsInt() != 0
	case ValFloat:
		return v.AsFloat() != 0
	default:
		return true
	}
}

// Equals implements == with implicit int<->float widening, matching the
// checker's widening rule so comparisons never surprise a caller who just
// had an int64 promoted to float64.
func (v Value) Equals(other Value) bool {
	if v.Type != other.Type {
		if v.Type == ValInt && other.Type == ValFloat {
			return float64(v.AsInt()) == other.AsFloat()
		}
		if v.Type == ValFloat && other.Type == ValInt {
			return v.AsFloat() == float64(other.AsInt())
		}
		return false
	}
	switch v.Type {
	case ValInt, ValBool, ValFloat:
		return v.Data == other.Data
	case ValNil:
		return true
	case ValObj:
		if s1, ok := v.Obj.(*ObjString); ok {
			if s2, ok := other.Obj.(*ObjString); ok {
				return s1.Value == s2.Value
			}
			return false
		}
		return v.Obj == other.Obj
	default:
		return false
	}
}

// String renders v for `print` and for error messages.
func (v Value) String() string {
	switch v.Type {
	case ValInt:
		return fmt.Sprintf("%d", v.AsInt())
	case ValFloat:
		return fmt.Sprintf("%g", v.AsFloat())
	case ValBool:
		return fmt.Sprintf("%t", v.AsBool())
	case ValNil:
		return "nil"
	case ValObj:
		if v.Obj == nil {
			return "<nil>"
		}
		return v.Obj.Inspect()
	default:
		return "<?>"
	}
}

// TypeName reports the checker-facing type name of v, used by native
// functions that need to report a runtime type mismatch.
func (v Value) TypeName() string {
	switch v.Type {
	case ValInt:
		return "int64"
	case ValFloat:
		return "float64"
	case ValBool:
		return "bool"
	case ValNil:
		return "nil"
	case ValObj:
		if v.Obj != nil {
			return v.Obj.TypeName()
		}
		return "nil"
	default:
		return "?"
	}
}
