package vm

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of chunk's bytecode under
// the given name, recursing into any OP_CLOSURE's function chunk.
func Disassemble(chunk *Chunk, name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", name)
	offset := 0
	for offset < len(chunk.Code) {
		offset = disassembleInstruction(&sb, chunk, offset)
	}
	return sb.String()
}

func disassembleInstruction(sb *strings.Builder, chunk *Chunk, offset int) int {
	fmt.Fprintf(sb, "%04d ", offset)
	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		sb.WriteString("   | ")
	} else {
		fmt.Fprintf(sb, "%4d ", chunk.Lines[offset])
	}

	op := Opcode(chunk.Code[offset])
	switch op {
	case OP_CONST, OP_GET_GLOBAL, OP_DEFINE_GLOBAL, OP_SET_GLOBAL,
		OP_GET_FIELD, OP_SET_FIELD, OP_STRUCT, OP_CLASS, OP_METHOD, OP_GET_SUPER:
		return constantInstruction(sb, op.String(), chunk, offset)

	case OP_GET_LOCAL, OP_SET_LOCAL, OP_GET_UPVALUE, OP_SET_UPVALUE,
		OP_CALL, OP_BUILD_ARRAY, OP_CLOSE_SCOPE:
		return byteInstruction(sb, op.String(), chunk, offset)

	case OP_JUMP, OP_JUMP_IF_FALSE, OP_TRY_BEGIN:
		return jumpInstruction(sb, op.String(), 1, chunk, offset)
	case OP_LOOP:
		return jumpInstruction(sb, op.String(), -1, chunk, offset)

	case OP_CLOSURE:
		return closureInstruction(sb, op.String(), chunk, offset)

	default:
		return simpleInstruction(sb, op.String(), offset)
	}
}

func simpleInstruction(sb *strings.Builder, name string, offset int) int {
	fmt.Fprintf(sb, "%s\n", name)
	return offset + 1
}

func constantInstruction(sb *strings.Builder, name string, chunk *Chunk, offset int) int {
	idx := chunk.ReadConstantIndex(offset + 1)
	if idx < len(chunk.Constants) {
		fmt.Fprintf(sb, "%-16s %4d '%s'\n", name, idx, chunk.Constants[idx].String())
	} else {
		fmt.Fprintf(sb, "%-16s %4d (invalid)\n", name, idx)
	}
	return offset + 3
}

func byteInstruction(sb *strings.Builder, name string, chunk *Chunk, offset int) int {
	operand := chunk.Code[offset+1]
	fmt.Fprintf(sb, "%-16s %4d\n", name, operand)
	return offset + 2
}

func jumpInstruction(sb *strings.Builder, name string, sign int, chunk *Chunk, offset int) int {
	jump := chunk.ReadConstantIndex(offset + 1)
	target := offset + 3 + sign*jump
	fmt.Fprintf(sb, "%-16s %4d -> %d\n", name, jump, target)
	return offset + 3
}

// closureInstruction disassembles OP_CLOSURE plus its trailing upvalue
// descriptor bytes, recursing into the captured function's own chunk.
func closureInstruction(sb *strings.Builder, name string, chunk *Chunk, offset int) int {
	idx := chunk.ReadConstantIndex(offset + 1)
	offset += 3

	if idx >= len(chunk.Constants) {
		fmt.Fprintf(sb, "%-16s %4d (invalid)\n", name, idx)
		return offset
	}
	fn, ok := chunk.Constants[idx].Obj.(*ObjFunction)
	if !ok {
		fmt.Fprintf(sb, "%-16s %4d (not a function)\n", name, idx)
		return offset
	}
	fmt.Fprintf(sb, "%-16s %4d '%s'\n", name, idx, fn.Inspect())

	funcDisasm := Disassemble(fn.Chunk, fn.Name)
	indented := strings.ReplaceAll(funcDisasm, "\n", "\n    | ")
	sb.WriteString("    | " + indented + "\n")

	for i := 0; i < fn.UpvalueCount; i++ {
		isLocal := chunk.Code[offset]
		index := chunk.Code[offset+1]
		offset += 2
		localStr := "upvalue"
		if isLocal == 1 {
			localStr = "local"
		}
		fmt.Fprintf(sb, "%04d    |                     %s %d\n", offset-2, localStr, index)
	}
	return offset
}
