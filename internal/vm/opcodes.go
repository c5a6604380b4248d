package vm

// Opcode identifies one bytecode instruction. Each is followed by its
// operand bytes, if any; offsets are big-endian unsigned 16 bits.
type Opcode byte

const (
	OP_CONST Opcode = iota
	OP_NIL
	OP_TRUE
	OP_FALSE
	OP_POP
	OP_DUP // duplicates the top of stack; used to evaluate a match subject once

	OP_GET_LOCAL
	OP_SET_LOCAL
	OP_GET_GLOBAL
	OP_DEFINE_GLOBAL
	OP_SET_GLOBAL

	OP_EQUAL
	OP_GREATER
	OP_LESS
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NOT
	OP_NEGATE

	OP_PRINT

	OP_JUMP
	OP_JUMP_IF_FALSE
	OP_LOOP

	OP_CALL
	OP_RETURN

	OP_GET_FIELD
	OP_SET_FIELD
	OP_STRUCT
	OP_BUILD_ARRAY
	OP_GET_INDEX
	OP_SET_INDEX

	OP_CLOSURE
	OP_GET_UPVALUE
	OP_SET_UPVALUE
	OP_CLOSE_UPVALUE

	OP_CLASS
	OP_METHOD
	OP_INHERIT
	OP_GET_SUPER

	OP_TRY_BEGIN
	OP_TRY_END
	OP_THROW

	// OP_CLOSE_SCOPE <n> drops the n stack slots below the top value, closing
	// any open upvalues over them, while keeping that top value in place. It closes a scope that was entered
	// to evaluate an expression (a match arm's block body) rather than a
	// statement, where plain OP_POP would discard the result instead of
	// the scope's locals.
	OP_CLOSE_SCOPE
)

var opcodeNames = map[Opcode]string{
	OP_CONST:         "OP_CONST",
	OP_NIL:           "OP_NIL",
	OP_TRUE:          "OP_TRUE",
	OP_FALSE:         "OP_FALSE",
	OP_POP:           "OP_POP",
	OP_DUP:           "OP_DUP",
	OP_GET_LOCAL:     "OP_GET_LOCAL",
	OP_SET_LOCAL:     "OP_SET_LOCAL",
	OP_GET_GLOBAL:    "OP_GET_GLOBAL",
	OP_DEFINE_GLOBAL: "OP_DEFINE_GLOBAL",
	OP_SET_GLOBAL:    "OP_SET_GLOBAL",
	OP_EQUAL:         "OP_EQUAL",
	OP_GREATER:       "OP_GREATER",
	OP_LESS:          "OP_LESS",
	OP_ADD:           "OP_ADD",
	OP_SUBTRACT:      "OP_SUBTRACT",
	OP_MULTIPLY:      "OP_MULTIPLY",
	OP_DIVIDE:        "OP_DIVIDE",
	OP_NOT:           "OP_NOT",
	OP_NEGATE:        "OP_NEGATE",
	OP_PRINT:         "OP_PRINT",
	OP_JUMP:          "OP_JUMP",
	OP_JUMP_IF_FALSE: "OP_JUMP_IF_FALSE",
	OP_LOOP:          "OP_LOOP",
	OP_CALL:          "OP_CALL",
	OP_RETURN:        "OP_RETURN",
	OP_GET_FIELD:     "OP_GET_FIELD",
	OP_SET_FIELD:     "OP_SET_FIELD",
	OP_STRUCT:        "OP_STRUCT",
	OP_BUILD_ARRAY:   "OP_BUILD_ARRAY",
	OP_GET_INDEX:     "OP_GET_INDEX",
	OP_SET_INDEX:     "OP_SET_INDEX",
	OP_CLOSURE:       "OP_CLOSURE",
	OP_GET_UPVALUE:   "OP_GET_UPVALUE",
	OP_SET_UPVALUE:   "OP_SET_UPVALUE",
	OP_CLOSE_UPVALUE: "OP_CLOSE_UPVALUE",
	OP_CLASS:         "OP_CLASS",
	OP_METHOD:        "OP_METHOD",
	OP_INHERIT:       "OP_INHERIT",
	OP_GET_SUPER:     "OP_GET_SUPER",
	OP_TRY_BEGIN:     "OP_TRY_BEGIN",
	OP_TRY_END:       "OP_TRY_END",
	OP_THROW:         "OP_THROW",
	OP_CLOSE_SCOPE:   "OP_CLOSE_SCOPE",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "OP_UNKNOWN"
}
