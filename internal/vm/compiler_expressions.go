package vm

import (
	"fmt"

	"github.com/reyna-lang/reyna/internal/ast"
	"github.com/reyna-lang/reyna/internal/token"
)

func (c *Compiler) compileExpression(expr ast.Expression) error {
	line := expr.GetToken().Line
	switch e := expr.(type) {
	case *ast.IntLiteral:
		c.emitConstantOp(IntVal(e.Value), line)
		return nil

	case *ast.FloatLiteral:
		c.emitConstantOp(FloatVal(e.Value), line)
		return nil

	case *ast.StringLiteral:
		c.emitConstantOp(ObjVal(&ObjString{Value: e.Value}), line)
		return nil

	case *ast.BoolLiteral:
		if e.Value {
			c.emit(OP_TRUE, line)
		} else {
			c.emit(OP_FALSE, line)
		}
		return nil

	case *ast.NilLiteral:
		c.emit(OP_NIL, line)
		return nil

	case *ast.Identifier:
		c.loadVariable(e.Name, line)
		return nil

	case *ast.Unary:
		return c.compileUnary(e)

	case *ast.Binary:
		return c.compileBinary(e)

	case *ast.Logical:
		return c.compileLogical(e)

	case *ast.Assign:
		return c.compileAssign(e)

	case *ast.Call:
		return c.compileCall(e)

	case *ast.Get:
		if err := c.compileExpression(e.Object); err != nil {
			return err
		}
		c.emitNameIdx(OP_GET_FIELD, e.Name.Name, line)
		return nil

	case *ast.Set:
		if err := c.compileExpression(e.Object); err != nil {
			return err
		}
		if err := c.compileExpression(e.Value); err != nil {
			return err
		}
		c.emitNameIdx(OP_SET_FIELD, e.Name.Name, line)
		return nil

	case *ast.Index:
		if err := c.compileExpression(e.Object); err != nil {
			return err
		}
		if err := c.compileExpression(e.Index); err != nil {
			return err
		}
		c.emit(OP_GET_INDEX, line)
		return nil

	case *ast.IndexSet:
		if err := c.compileExpression(e.Object); err != nil {
			return err
		}
		if err := c.compileExpression(e.Index); err != nil {
			return err
		}
		if err := c.compileExpression(e.Value); err != nil {
			return err
		}
		c.emit(OP_SET_INDEX, line)
		return nil

	case *ast.ArrayLiteral:
		if len(e.Elements) > 0xff {
			return fmt.Errorf("line %d: too many array elements", line)
		}
		for _, el := range e.Elements {
			if err := c.compileExpression(el); err != nil {
				return err
			}
		}
		c.emit2(OP_BUILD_ARRAY, byte(len(e.Elements)), line)
		return nil

	case *ast.This:
		if c.class == nil {
			return fmt.Errorf("line %d: 'this' used outside a method", line)
		}
		c.loadVariable("this", line)
		return nil

	case *ast.Super:
		return c.compileSuper(e)

	case *ast.FnExpr:
		return c.compileFunction("", e.Params, e.Body, TypeFunction)

	case *ast.MatchExpr:
		return c.compileMatch(e)

	default:
		return fmt.Errorf("compiler: unknown expression type %T", expr)
	}
}

// loadVariable resolves name as local, upvalue, or global, in that order,
// and emits the matching GET opcode.
func (c *Compiler) loadVariable(name string, line int) {
	if idx := c.resolveLocal(name); idx != -1 {
		c.emit2(OP_GET_LOCAL, byte(idx), line)
		return
	}
	if idx := c.resolveUpvalue(name); idx != -1 {
		c.emit2(OP_GET_UPVALUE, byte(idx), line)
		return
	}
	c.emitNameIdx(OP_GET_GLOBAL, name, line)
}

func (c *Compiler) compileUnary(e *ast.Unary) error {
	line := e.Token.Line
	if err := c.compileExpression(e.Right); err != nil {
		return err
	}
	switch e.Operator {
	case token.MINUS:
		c.emit(OP_NEGATE, line)
	case token.BANG:
		c.emit(OP_NOT, line)
	default:
		return fmt.Errorf("line %d: unknown unary operator %s", line, e.Operator)
	}
	return nil
}

func (c *Compiler) compileBinary(e *ast.Binary) error {
	line := e.Token.Line
	if err := c.compileExpression(e.Left); err != nil {
		return err
	}
	if err := c.compileExpression(e.Right); err != nil {
		return err
	}
	switch e.Operator {
	case token.PLUS:
		c.emit(OP_ADD, line)
	case token.MINUS:
		c.emit(OP_SUBTRACT, line)
	case token.STAR:
		c.emit(OP_MULTIPLY, line)
	case token.SLASH:
		c.emit(OP_DIVIDE, line)
	case token.EQUAL_EQUAL:
		c.emit(OP_EQUAL, line)
	case token.BANG_EQUAL:
		c.emit(OP_EQUAL, line)
		c.emit(OP_NOT, line)
	case token.GREATER:
		c.emit(OP_GREATER, line)
	case token.GREATER_EQUAL:
		c.emit(OP_LESS, line)
		c.emit(OP_NOT, line)
	case token.LESS:
		c.emit(OP_LESS, line)
	case token.LESS_EQUAL:
		c.emit(OP_GREATER, line)
		c.emit(OP_NOT, line)
	default:
		return fmt.Errorf("line %d: unknown binary operator %s", line, e.Operator)
	}
	return nil
}

// compileLogical short-circuits `and`/`or`, unlike Binary's eager operands.
func (c *Compiler) compileLogical(e *ast.Logical) error {
	line := e.Token.Line
	if err := c.compileExpression(e.Left); err != nil {
		return err
	}
	if e.Operator == token.AND {
		endJump := c.emitJump(OP_JUMP_IF_FALSE, line)
		c.emit(OP_POP, line)
		if err := c.compileExpression(e.Right); err != nil {
			return err
		}
		return c.patchJump(endJump)
	}
	// `or`: if the left side is true, skip the right operand entirely.
	elseJump := c.emitJump(OP_JUMP_IF_FALSE, line)
	endJump := c.emitJump(OP_JUMP, line)
	if err := c.patchJump(elseJump); err != nil {
		return err
	}
	c.emit(OP_POP, line)
	if err := c.compileExpression(e.Right); err != nil {
		return err
	}
	return c.patchJump(endJump)
}

func (c *Compiler) compileAssign(e *ast.Assign) error {
	line := e.Token.Line
	if err := c.compileExpression(e.Value); err != nil {
		return err
	}
	name := e.Name.Name
	if idx := c.resolveLocal(name); idx != -1 {
		c.emit2(OP_SET_LOCAL, byte(idx), line)
		return nil
	}
	if idx := c.resolveUpvalue(name); idx != -1 {
		c.emit2(OP_SET_UPVALUE, byte(idx), line)
		return nil
	}
	c.emitNameIdx(OP_SET_GLOBAL, name, line)
	return nil
}

func (c *Compiler) compileCall(e *ast.Call) error {
	line := e.Token.Line
	if err := c.compileExpression(e.Callee); err != nil {
		return err
	}
	if len(e.Args) > 0xff {
		return fmt.Errorf("line %d: too many call arguments", line)
	}
	for _, arg := range e.Args {
		if err := c.compileExpression(arg); err != nil {
			return err
		}
	}
	c.emit2(OP_CALL, byte(len(e.Args)), line)
	return nil
}

// compileSuper pushes the receiver, then the superclass, then emits
// OP_GET_SUPER; the VM pops the superclass first and binds the resulting
// bound method to the receiver already underneath it on the stack.
func (c *Compiler) compileSuper(e *ast.Super) error {
	line := e.Token.Line
	if c.class == nil || !c.class.hasSuperclass {
		return fmt.Errorf("line %d: 'super' used outside a subclass method", line)
	}
	c.loadVariable("this", line)
	c.loadVariable("super", line)
	c.emitNameIdx(OP_GET_SUPER, e.Method.Name, line)
	return nil
}

// compileMatch lowers a match expression into a chain of comparisons
// against one evaluation of the subject. OP_DUP keeps a live copy of the
// subject on the stack for each arm's comparison instead of recompiling
// the subject expression per arm, which would re-run any side effects it
// has once per arm. An arm's optional guard is ANDed into the arm's own
// match condition: the guard is only evaluated once the pattern itself has
// matched, and a false guard falls through to the next arm exactly like a
// pattern mismatch would.
func (c *Compiler) compileMatch(e *ast.MatchExpr) error {
	line := e.Token.Line
	if err := c.compileExpression(e.Subject); err != nil {
		return err
	}

	var endJumps []int
	for _, arm := range e.Arms {
		if arm.IsWildcard {
			if arm.Guard == nil {
				c.emit(OP_POP, line) // discard the subject, this arm always matches
				if err := c.compileMatchBody(arm.Body, line); err != nil {
					return err
				}
				// A wildcard arm with no guard is always last in a
				// well-formed match and needs no trailing jump: control
				// falls straight through.
				for _, j := range endJumps {
					if err := c.patchJump(j); err != nil {
						return err
					}
				}
				return nil
			}

			if err := c.compileExpression(arm.Guard); err != nil {
				return err
			}
			nextArm := c.emitJump(OP_JUMP_IF_FALSE, line)
			c.emit(OP_POP, line) // pop the guard's true result
			c.emit(OP_POP, line) // discard the subject, guard matched
			if err := c.compileMatchBody(arm.Body, line); err != nil {
				return err
			}
			endJumps = append(endJumps, c.emitJump(OP_JUMP, line))
			if err := c.patchJump(nextArm); err != nil {
				return err
			}
			c.emit(OP_POP, line) // pop the guard's false result, subject remains
			continue
		}

		if arm.Binding != nil {
			if arm.Guard == nil {
				c.beginScope()
				c.addLocal(arm.Binding.Name) // binds the still-live subject copy
				if err := c.compileMatchBody(arm.Body, line); err != nil {
					return err
				}
				c.endScopeKeepTop(line)
				for _, j := range endJumps {
					if err := c.patchJump(j); err != nil {
						return err
					}
				}
				return nil
			}

			c.beginScope()
			c.addLocal(arm.Binding.Name) // binds the still-live subject copy
			if err := c.compileExpression(arm.Guard); err != nil {
				return err
			}
			nextArm := c.emitJump(OP_JUMP_IF_FALSE, line)
			c.emit(OP_POP, line) // pop the guard's true result
			if err := c.compileMatchBody(arm.Body, line); err != nil {
				return err
			}
			c.endScopeKeepTop(line)
			endJumps = append(endJumps, c.emitJump(OP_JUMP, line))
			if err := c.patchJump(nextArm); err != nil {
				return err
			}
			c.emit(OP_POP, line) // pop the guard's false result, subject remains
			// The binding never matched: endScopeKeepTop above already dropped
			// its local bookkeeping, and no code is emitted here, since the
			// subject it points at must stay on the stack for the next arm.
			continue
		}

		c.emit(OP_DUP, line)
		if err := c.compileExpression(arm.Literal); err != nil {
			return err
		}
		c.emit(OP_EQUAL, line)

		if arm.Guard != nil {
			guardSkip := c.emitJump(OP_JUMP_IF_FALSE, line)
			c.emit(OP_POP, line) // pop the pattern-match true result
			if err := c.compileExpression(arm.Guard); err != nil {
				return err
			}
			if err := c.patchJump(guardSkip); err != nil {
				return err
			}
		}

		nextArm := c.emitJump(OP_JUMP_IF_FALSE, line)
		c.emit(OP_POP, line) // pop the match result
		c.emit(OP_POP, line) // pop the duplicated subject
		if err := c.compileMatchBody(arm.Body, line); err != nil {
			return err
		}
		endJumps = append(endJumps, c.emitJump(OP_JUMP, line))
		if err := c.patchJump(nextArm); err != nil {
			return err
		}
		c.emit(OP_POP, line) // pop the match-false result, subject copy remains
	}

	// No arm matched and there was no wildcard: the match evaluates to nil.
	c.emit(OP_POP, line) // discard the subject
	c.emit(OP_NIL, line)
	for _, j := range endJumps {
		if err := c.patchJump(j); err != nil {
			return err
		}
	}
	return nil
}

// compileMatchBody compiles an arm body that must leave exactly one value
// on the stack. A bare expression does so directly; a block's trailing
// expression statement supplies the value, with any locals it declared
// dropped from underneath that value by OP_CLOSE_SCOPE rather than the
// ordinary OP_POP endScope emits for a statement block.
func (c *Compiler) compileMatchBody(body ast.Node, line int) error {
	switch b := body.(type) {
	case *ast.Block:
		c.beginScope()
		leavesValue := false
		for i, stmt := range b.Statements {
			if i == len(b.Statements)-1 {
				if exprStmt, ok := stmt.(*ast.ExprStmt); ok {
					if err := c.compileExpression(exprStmt.Expr); err != nil {
						return err
					}
					leavesValue = true
					continue
				}
			}
			if err := c.compileStatement(stmt); err != nil {
				return err
			}
		}
		if !leavesValue {
			c.emit(OP_NIL, line)
		}
		c.endScopeKeepTop(line)
		return nil
	case ast.Expression:
		return c.compileExpression(b)
	default:
		return fmt.Errorf("line %d: match arm body has unsupported shape %T", line, body)
	}
}
