package vm

import (
	"fmt"

	"github.com/reyna-lang/reyna/internal/ast"
	"github.com/reyna-lang/reyna/internal/modules"
)

// Local is a compile-time record of one stack-resident variable: its name,
// the scope depth it was declared at, and whether a nested function has
// captured it (in which case leaving its scope emits OP_CLOSE_UPVALUE
// instead of a bare OP_POP).
type Local struct {
	Name       string
	Depth      int
	Captured   bool
}

// Upvalue records how a function reaches a variable from an enclosing
// function: either directly off the enclosing frame's locals (IsLocal) or
// by forwarding one of the enclosing function's own upvalues.
type Upvalue struct {
	Index   int
	IsLocal bool
}

// FunctionType distinguishes the few shapes of compiled function body that
// need special-cased codegen: a bare script, an ordinary function, a class
// method, and a class's "init" method (whose implicit return value is the
// receiver rather than nil).
type FunctionType int

const (
	TypeScript FunctionType = iota
	TypeFunction
	TypeMethod
	TypeInitializer
)

// classCompiler tracks the class currently being compiled, so methods know
// whether `super` resolves to anything.
type classCompiler struct {
	enclosing    *classCompiler
	hasSuperclass bool
}

// Compiler lowers a parsed, type-checked program into a Chunk of bytecode.
// One Compiler exists per function body being compiled; nested function
// literals get their own Compiler chained through enclosing.
type Compiler struct {
	enclosing *Compiler

	function *ObjFunction
	funcType FunctionType

	locals     []Local
	scopeDepth int

	upvalues []Upvalue

	class *classCompiler

	loader *modules.Loader
}

// NewCompiler creates the root compiler for a whole program, compiling
// top-level code as an implicit script function of arity 0.
func NewCompiler(baseDir string) *Compiler {
	c := &Compiler{
		function: &ObjFunction{Name: "", Chunk: NewChunk()},
		funcType: TypeScript,
		loader:   modules.New(baseDir),
	}
	// Slot 0 is reserved for the receiver; scripts and plain functions
	// never address it, but keeping the slot uniform simplifies CALL.
	c.locals = append(c.locals, Local{Name: "", Depth: 0})
	return c
}

func newFunctionCompiler(enclosing *Compiler, funcType FunctionType, name string) *Compiler {
	c := &Compiler{
		enclosing: enclosing,
		function:  &ObjFunction{Name: name, Chunk: NewChunk()},
		funcType:  funcType,
		loader:    enclosing.loader,
		class:     enclosing.class,
	}
	receiver := ""
	if funcType == TypeMethod || funcType == TypeInitializer {
		receiver = "this"
	}
	c.locals = append(c.locals, Local{Name: receiver, Depth: 0})
	return c
}

// Compile lowers an entire program into its top-level ObjFunction.
func Compile(prog *ast.Program, baseDir string) (fn *ObjFunction, err error) {
	c := NewCompiler(baseDir)
	for _, stmt := range prog.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return nil, err
		}
	}
	c.emit(OP_NIL, 0)
	c.emit(OP_RETURN, 0)
	return c.function, nil
}

func (c *Compiler) currentChunk() *Chunk { return c.function.Chunk }

func (c *Compiler) emit(op Opcode, line int) { c.currentChunk().WriteOp(op, line) }

func (c *Compiler) emitByte(b byte, line int) { c.currentChunk().Write(b, line) }

// emit2 emits op followed by a single-byte operand: a local/upvalue slot,
// an argument count, or an array element count. Argument and element counts
// are checked against 255 by their callers; addLocal and addUpvalue below do
// not check slot indexes against that limit.
func (c *Compiler) emit2(op Opcode, operand byte, line int) {
	c.emit(op, line)
	c.emitByte(operand, line)
}

// emitIdx emits op followed by a two-byte big-endian constant-pool index,
// for every opcode that names something (a global, a field, a class) via
// the constant pool rather than the stack.
func (c *Compiler) emitIdx(op Opcode, idx int, line int) {
	c.emit(op, line)
	c.emitByte(byte(idx>>8), line)
	c.emitByte(byte(idx), line)
}

func (c *Compiler) makeConstant(v Value) int {
	return c.currentChunk().AddConstant(v)
}

// emitConstantOp pushes a literal value via OP_CONST.
func (c *Compiler) emitConstantOp(v Value, line int) {
	idx := c.makeConstant(v)
	c.emitIdx(OP_CONST, idx, line)
}

// emitNameIdx interns name as a string constant and returns its index, for
// opcodes that name a global, field, class, or method by identifier.
func (c *Compiler) emitNameIdx(op Opcode, name string, line int) {
	idx := c.makeConstant(ObjVal(&ObjString{Value: name}))
	c.emitIdx(op, idx, line)
}

// emitJump emits op followed by a two-byte placeholder offset and returns
// the offset of that placeholder for a later patchJump call.
func (c *Compiler) emitJump(op Opcode, line int) int {
	c.emit(op, line)
	c.emitByte(0xff, line)
	c.emitByte(0xff, line)
	return c.currentChunk().Len() - 2
}

// patchJump backfills the jump distance from offset to the current end of
// the chunk into the two placeholder bytes written by emitJump.
func (c *Compiler) patchJump(offset int) error {
	jump := c.currentChunk().Len() - offset - 2
	if jump > 0xffff {
		return fmt.Errorf("jump target too far (%d bytes)", jump)
	}
	c.currentChunk().Code[offset] = byte(jump >> 8)
	c.currentChunk().Code[offset+1] = byte(jump)
	return nil
}

// emitLoop emits OP_LOOP with a backward offset to loopStart.
func (c *Compiler) emitLoop(loopStart int, line int) error {
	c.emit(OP_LOOP, line)
	offset := c.currentChunk().Len() - loopStart + 2
	if offset > 0xffff {
		return fmt.Errorf("loop body too large (%d bytes)", offset)
	}
	c.emitByte(byte(offset>>8), line)
	c.emitByte(byte(offset), line)
	return nil
}

func (c *Compiler) beginScope() { c.scopeDepth++ }

func (c *Compiler) endScope(line int) {
	c.scopeDepth--
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].Depth > c.scopeDepth {
		last := c.locals[len(c.locals)-1]
		if last.Captured {
			c.emit(OP_CLOSE_UPVALUE, line)
		} else {
			c.emit(OP_POP, line)
		}
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// endScopeKeepTop closes the current scope like endScope, but preserves the
// value already sitting on top of the stack above the scope's locals via
// OP_CLOSE_SCOPE instead of popping it. Used when the scope was opened to
// evaluate an expression (a match arm) rather than a statement block.
func (c *Compiler) endScopeKeepTop(line int) {
	c.scopeDepth--
	dropped := 0
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].Depth > c.scopeDepth {
		c.locals = c.locals[:len(c.locals)-1]
		dropped++
	}
	if dropped > 0 {
		c.emit2(OP_CLOSE_SCOPE, byte(dropped), line)
	}
}

func (c *Compiler) addLocal(name string) int {
	c.locals = append(c.locals, Local{Name: name, Depth: c.scopeDepth})
	return len(c.locals) - 1
}

func (c *Compiler) resolveLocal(name string) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].Name == name {
			return i
		}
	}
	return -1
}

func (c *Compiler) resolveUpvalue(name string) int {
	if c.enclosing == nil {
		return -1
	}
	if idx := c.enclosing.resolveLocal(name); idx != -1 {
		c.enclosing.locals[idx].Captured = true
		return c.addUpvalue(idx, true)
	}
	if idx := c.enclosing.resolveUpvalue(name); idx != -1 {
		return c.addUpvalue(idx, false)
	}
	return -1
}

func (c *Compiler) addUpvalue(index int, isLocal bool) int {
	for i, uv := range c.upvalues {
		if uv.Index == index && uv.IsLocal == isLocal {
			return i
		}
	}
	c.upvalues = append(c.upvalues, Upvalue{Index: index, IsLocal: isLocal})
	c.function.UpvalueCount = len(c.upvalues)
	return len(c.upvalues) - 1
}
