package vm

import (
	"fmt"

	"github.com/reyna-lang/reyna/internal/ast"
)

func (c *Compiler) compileStatement(stmt ast.Statement) error {
	line := stmt.GetToken().Line
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		if err := c.compileExpression(s.Expr); err != nil {
			return err
		}
		c.emit(OP_POP, line)
		return nil

	case *ast.PrintStmt:
		if err := c.compileExpression(s.Expr); err != nil {
			return err
		}
		c.emit(OP_PRINT, line)
		return nil

	case *ast.LetStmt:
		return c.compileLetStmt(s)

	case *ast.Block:
		c.beginScope()
		for _, inner := range s.Statements {
			if err := c.compileStatement(inner); err != nil {
				return err
			}
		}
		c.endScope(line)
		return nil

	case *ast.IfStmt:
		return c.compileIfStmt(s)

	case *ast.WhileStmt:
		return c.compileWhileStmt(s)

	case *ast.ReturnStmt:
		return c.compileReturnStmt(s)

	case *ast.FnDecl:
		return c.compileFnDecl(s)

	case *ast.StructDecl:
		c.emitNameIdx(OP_STRUCT, s.Name.Name, line)
		c.emitNameIdx(OP_DEFINE_GLOBAL, s.Name.Name, line)
		return nil

	case *ast.ClassDecl:
		return c.compileClassDecl(s)

	case *ast.ImportStmt:
		return c.compileImportStmt(s)

	case *ast.TryStmt:
		return c.compileTryStmt(s)

	case *ast.ThrowStmt:
		if err := c.compileExpression(s.Value); err != nil {
			return err
		}
		c.emit(OP_THROW, line)
		return nil

	default:
		return fmt.Errorf("compiler: unknown statement type %T", stmt)
	}
}

func (c *Compiler) compileLetStmt(s *ast.LetStmt) error {
	line := s.Token.Line
	if s.Value != nil {
		if err := c.compileExpression(s.Value); err != nil {
			return err
		}
	} else {
		c.emit(OP_NIL, line)
	}
	if c.scopeDepth > 0 {
		c.addLocal(s.Name.Name)
		return nil
	}
	c.emitNameIdx(OP_DEFINE_GLOBAL, s.Name.Name, line)
	return nil
}

func (c *Compiler) compileIfStmt(s *ast.IfStmt) error {
	line := s.Token.Line
	if err := c.compileExpression(s.Condition); err != nil {
		return err
	}
	thenJump := c.emitJump(OP_JUMP_IF_FALSE, line)
	c.emit(OP_POP, line)
	if err := c.compileStatement(s.Then); err != nil {
		return err
	}
	elseJump := c.emitJump(OP_JUMP, line)
	if err := c.patchJump(thenJump); err != nil {
		return err
	}
	c.emit(OP_POP, line)
	if s.Else != nil {
		if err := c.compileStatement(s.Else); err != nil {
			return err
		}
	}
	return c.patchJump(elseJump)
}

func (c *Compiler) compileWhileStmt(s *ast.WhileStmt) error {
	line := s.Token.Line
	loopStart := c.currentChunk().Len()
	if err := c.compileExpression(s.Condition); err != nil {
		return err
	}
	exitJump := c.emitJump(OP_JUMP_IF_FALSE, line)
	c.emit(OP_POP, line)
	if err := c.compileStatement(s.Body); err != nil {
		return err
	}
	if err := c.emitLoop(loopStart, line); err != nil {
		return err
	}
	if err := c.patchJump(exitJump); err != nil {
		return err
	}
	c.emit(OP_POP, line)
	return nil
}

func (c *Compiler) compileReturnStmt(s *ast.ReturnStmt) error {
	line := s.Token.Line
	if c.funcType == TypeInitializer {
		if s.Value != nil {
			return fmt.Errorf("line %d: can't return a value from init", line)
		}
		c.emit2(OP_GET_LOCAL, 0, line)
		c.emit(OP_RETURN, line)
		return nil
	}
	if s.Value != nil {
		if err := c.compileExpression(s.Value); err != nil {
			return err
		}
	} else {
		c.emit(OP_NIL, line)
	}
	c.emit(OP_RETURN, line)
	return nil
}

func (c *Compiler) compileFnDecl(s *ast.FnDecl) error {
	line := s.Token.Line
	if err := c.compileFunction(s.Name.Name, s.Params, s.Body, TypeFunction); err != nil {
		return err
	}
	if c.scopeDepth > 0 {
		c.addLocal(s.Name.Name)
		return nil
	}
	c.emitNameIdx(OP_DEFINE_GLOBAL, s.Name.Name, line)
	return nil
}

// compileFunction compiles Params/Body as a new nested function, emitting
// OP_CLOSURE in the enclosing chunk followed by one (is_local, index) byte
// pair per captured upvalue.
func (c *Compiler) compileFunction(name string, params []*ast.Param, body *ast.Block, funcType FunctionType) error {
	fc := newFunctionCompiler(c, funcType, name)
	fc.beginScope()
	for _, p := range params {
		fc.addLocal(p.Name.Name)
	}
	fc.function.Arity = len(params)

	for _, stmt := range body.Statements {
		if err := fc.compileStatement(stmt); err != nil {
			return err
		}
	}

	line := body.Token.Line
	if funcType == TypeInitializer {
		fc.emit2(OP_GET_LOCAL, 0, line)
	} else {
		fc.emit(OP_NIL, line)
	}
	fc.emit(OP_RETURN, line)

	idx := c.makeConstant(ObjVal(fc.function))
	c.emitIdx(OP_CLOSURE, idx, line)
	for _, uv := range fc.upvalues {
		isLocal := byte(0)
		if uv.IsLocal {
			isLocal = 1
		}
		c.emitByte(isLocal, line)
		c.emitByte(byte(uv.Index), line)
	}
	return nil
}

func (c *Compiler) compileClassDecl(s *ast.ClassDecl) error {
	line := s.Token.Line
	if s.Superclass != nil && s.Superclass.Name == s.Name.Name {
		return fmt.Errorf("line %d: class %s cannot inherit from itself", line, s.Name.Name)
	}

	c.emitNameIdx(OP_CLASS, s.Name.Name, line)
	c.emitNameIdx(OP_DEFINE_GLOBAL, s.Name.Name, line)
	c.emitNameIdx(OP_GET_GLOBAL, s.Name.Name, line)

	cc := &classCompiler{enclosing: c.class}
	c.class = cc

	if s.Superclass != nil {
		cc.hasSuperclass = true
		c.beginScope()
		c.addLocal("") // dummy local keeping the subclass's slot aligned
		if err := c.compileExpression(s.Superclass); err != nil {
			return err
		}
		c.addLocal("super")
		c.emit(OP_INHERIT, line)
	}

	for _, method := range s.Methods {
		c.emitNameIdx(OP_GET_GLOBAL, s.Name.Name, line)
		funcType := TypeMethod
		if method.Name.Name == "init" {
			funcType = TypeInitializer
		}
		if err := c.compileFunction(method.Name.Name, method.Params, method.Body, funcType); err != nil {
			return err
		}
		c.emitNameIdx(OP_METHOD, method.Name.Name, line)
		c.emit(OP_POP, line)
	}

	if s.Superclass != nil {
		c.endScope(line)
	} else {
		c.emit(OP_POP, line)
	}

	c.class = cc.enclosing
	return nil
}

func (c *Compiler) compileImportStmt(s *ast.ImportStmt) error {
	prog, ok, err := c.loader.Load(s.Path)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	for _, inner := range prog.Statements {
		if err := c.compileStatement(inner); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileTryStmt(s *ast.TryStmt) error {
	line := s.Token.Line
	tryJump := c.emitJump(OP_TRY_BEGIN, line)

	if err := c.compileStatement(s.Body); err != nil {
		return err
	}
	c.emit(OP_TRY_END, line)
	skipCatch := c.emitJump(OP_JUMP, line)

	if err := c.patchJump(tryJump); err != nil {
		return err
	}

	if s.Catch != nil {
		c.beginScope()
		name := ""
		if s.Catch.Name != nil {
			name = s.Catch.Name.Name
		}
		c.addLocal(name)
		for _, inner := range s.Catch.Body.Statements {
			if err := c.compileStatement(inner); err != nil {
				return err
			}
		}
		c.endScope(line)
	} else {
		// No catch clause: the thrown value is still on the stack
		// when control reaches here and must be discarded.
		c.emit(OP_POP, line)
	}

	if err := c.patchJump(skipCatch); err != nil {
		return err
	}

	if s.Finally != nil {
		if err := c.compileStatement(s.Finally); err != nil {
			return err
		}
	}
	return nil
}
