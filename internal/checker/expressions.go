package checker

import (
	"github.com/reyna-lang/reyna/internal/ast"
	"github.com/reyna-lang/reyna/internal/token"
)

// checkExpr visits an expression node and returns its inferred type.
func (c *Checker) checkExpr(e ast.Expression) string {
	e.Accept(c)
	return c.resultType
}

func (c *Checker) VisitIdentifier(e *ast.Identifier) {
	if t, ok := c.resolve(e.Name); ok {
		c.resultType = t
		return
	}
	if _, ok := c.functions[e.Name]; ok {
		c.resultType = TypeFn
		return
	}
	if _, ok := c.structs[e.Name]; ok {
		c.resultType = e.Name
		return
	}
	if _, ok := c.classes[e.Name]; ok {
		c.resultType = e.Name
		return
	}
	if isStdlibName(e.Name) {
		c.resultType = TypeAny
		return
	}
	c.fail("undefined variable '%s'", e.Name)
}

func isStdlibName(name string) bool {
	switch name {
	case "clock", "input", "read_file", "write_file", "python", "str", "int", "float",
		"uuid", "to_yaml", "from_yaml", "sql_open", "sql_exec", "sql_query", "sql_close", "len":
		return true
	}
	return false
}

func (c *Checker) VisitIntLiteral(e *ast.IntLiteral)     { c.resultType = TypeInt64 }
func (c *Checker) VisitFloatLiteral(e *ast.FloatLiteral) { c.resultType = TypeFloat64 }
func (c *Checker) VisitStringLiteral(e *ast.StringLiteral) { c.resultType = TypeString }
func (c *Checker) VisitBoolLiteral(e *ast.BoolLiteral)   { c.resultType = TypeBool }
func (c *Checker) VisitNilLiteral(e *ast.NilLiteral)     { c.resultType = "nil" }

func (c *Checker) VisitUnary(e *ast.Unary) {
	rightType := c.checkExpr(e.Right)
	switch e.Operator {
	case token.BANG:
		if rightType != TypeBool && rightType != TypeAny {
			c.fail("'!' expects bool, got %s", rightType)
		}
		c.resultType = TypeBool
	case token.MINUS:
		if !isNumeric(rightType) && rightType != TypeAny {
			c.fail("unary '-' expects a number, got %s", rightType)
		}
		c.resultType = rightType
	default:
		c.resultType = rightType
	}
}

func (c *Checker) VisitBinary(e *ast.Binary) {
	leftType := c.checkExpr(e.Left)
	rightType := c.checkExpr(e.Right)
	op := e.Operator

	if leftType == TypeAny || rightType == TypeAny {
		switch op {
		case token.GREATER, token.LESS, token.LESS_EQUAL, token.GREATER_EQUAL, token.EQUAL_EQUAL, token.BANG_EQUAL:
			c.resultType = TypeBool
		default:
			c.resultType = TypeAny
		}
		return
	}

	if isNumeric(leftType) && isNumeric(rightType) {
		switch op {
		case token.PLUS, token.MINUS, token.STAR, token.SLASH:
			if leftType == TypeFloat64 || rightType == TypeFloat64 {
				c.resultType = TypeFloat64
			} else {
				c.resultType = TypeInt64
			}
			return
		case token.GREATER, token.LESS, token.LESS_EQUAL, token.GREATER_EQUAL, token.EQUAL_EQUAL, token.BANG_EQUAL:
			c.resultType = TypeBool
			return
		}
	}

	if (leftType == TypeString || rightType == TypeString) && op == token.PLUS {
		c.resultType = TypeString
		return
	}

	if op == token.EQUAL_EQUAL || op == token.BANG_EQUAL {
		c.resultType = TypeBool
		return
	}

	c.fail("binary operator '%s' not supported for %s and %s", op, leftType, rightType)
}

func (c *Checker) VisitLogical(e *ast.Logical) {
	l := c.checkExpr(e.Left)
	r := c.checkExpr(e.Right)
	if (l != TypeBool && l != TypeAny) || (r != TypeBool && r != TypeAny) {
		c.fail("logical operators expect bool operands")
	}
	c.resultType = TypeBool
}

func (c *Checker) VisitAssign(e *ast.Assign) {
	varType, known := c.resolve(e.Name.Name)
	valType := c.checkExpr(e.Value)
	if known && varType != TypeAny && valType != TypeAny && !widens(valType, varType) {
		c.fail("cannot assign %s to variable of type %s", valType, varType)
	}
	c.resultType = valType
}

func (c *Checker) VisitCall(e *ast.Call) {
	if ident, ok := e.Callee.(*ast.Identifier); ok {
		name := ident.Name

		if sig, ok := c.functions[name]; ok {
			if len(e.Args) != len(sig.params) {
				c.fail("function '%s' expects %d args, got %d", name, len(sig.params), len(e.Args))
			}
			for i, arg := range e.Args {
				argType := c.checkExpr(arg)
				if !widens(argType, sig.params[i]) && sig.params[i] != TypeAny {
					c.fail("argument %d to '%s' expected %s, got %s", i, name, sig.params[i], argType)
				}
			}
			c.resultType = sig.ret
			return
		}

		if _, ok := c.structs[name]; ok {
			if len(e.Args) > 0 {
				c.fail("constructor '%s' takes no arguments", name)
			}
			c.resultType = name
			return
		}

		if _, ok := c.classes[name]; ok {
			for _, arg := range e.Args {
				c.checkExpr(arg)
			}
			c.resultType = name
			return
		}

		if isStdlibName(name) {
			for _, arg := range e.Args {
				c.checkExpr(arg)
			}
			c.resultType = stdlibReturnType(name)
			return
		}
	}

	// A called expression that isn't a bare identifier (a field access
	// yielding a bound method, a variable holding a closure, etc.) still
	// has its arguments checked, but the call's own type is unconstrained.
	c.checkExpr(e.Callee)
	for _, arg := range e.Args {
		c.checkExpr(arg)
	}
	c.resultType = TypeAny
}

func stdlibReturnType(name string) string {
	switch name {
	case "str", "input", "read_file", "to_yaml", "uuid":
		return TypeString
	case "int", "len":
		return TypeInt64
	case "float", "clock":
		return TypeFloat64
	default:
		return TypeAny
	}
}

func (c *Checker) VisitGet(e *ast.Get) {
	objType := c.checkExpr(e.Object)

	if _, ok := c.classes[objType]; ok {
		c.resultType = TypeAny
		return
	}
	if objType == TypeAny {
		c.resultType = TypeAny
		return
	}

	fields, ok := c.structs[objType]
	if !ok {
		c.fail("only structs and classes have properties, got %s", objType)
	}
	fieldType, ok := fields[e.Name.Name]
	if !ok {
		c.fail("struct '%s' has no field '%s'", objType, e.Name.Name)
	}
	c.resultType = fieldType
}

func (c *Checker) VisitSet(e *ast.Set) {
	objType := c.checkExpr(e.Object)
	valType := c.checkExpr(e.Value)

	if _, ok := c.classes[objType]; ok {
		c.resultType = valType
		return
	}
	if objType == TypeAny {
		c.resultType = valType
		return
	}

	fields, ok := c.structs[objType]
	if !ok {
		c.fail("only structs and classes have properties, got %s", objType)
	}
	expected, ok := fields[e.Name.Name]
	if !ok {
		c.fail("struct '%s' has no field '%s'", objType, e.Name.Name)
	}
	if !widens(valType, expected) {
		c.fail("field '%s' expects %s, got %s", e.Name.Name, expected, valType)
	}
	c.resultType = valType
}

func (c *Checker) VisitIndex(e *ast.Index) {
	c.checkExpr(e.Object)
	c.checkExpr(e.Index)
	c.resultType = TypeAny
}

func (c *Checker) VisitIndexSet(e *ast.IndexSet) {
	c.checkExpr(e.Object)
	c.checkExpr(e.Index)
	c.resultType = c.checkExpr(e.Value)
}

func (c *Checker) VisitArrayLiteral(e *ast.ArrayLiteral) {
	for _, el := range e.Elements {
		c.checkExpr(el)
	}
	c.resultType = TypeArray
}

func (c *Checker) VisitThis(e *ast.This) {
	if c.currentClass == "" {
		c.fail("'this' used outside of a class")
	}
	c.resultType = c.currentClass
}

func (c *Checker) VisitSuper(e *ast.Super) {
	if c.currentClass == "" {
		c.fail("'super' used outside of a class")
	}
	c.resultType = TypeAny
}

func (c *Checker) VisitFnExpr(e *ast.FnExpr) {
	c.beginScope()
	prevReturn := c.currentReturnType
	retType := TypeVoid
	if e.ReturnType != nil {
		retType = typeAnnotationName(e.ReturnType)
	}
	c.currentReturnType = retType
	for _, p := range e.Params {
		c.declare(p.Name.Name, typeAnnotationName(p.Type))
	}
	for _, stmt := range e.Body.Statements {
		c.visitStmt(stmt)
	}
	c.currentReturnType = prevReturn
	c.endScope()
	c.resultType = TypeFn
}

func (c *Checker) VisitMatchExpr(e *ast.MatchExpr) {
	c.checkExpr(e.Subject)
	for _, arm := range e.Arms {
		if arm.Literal != nil {
			c.checkExpr(arm.Literal)
		}
		c.beginScope()
		if arm.Binding != nil {
			c.declare(arm.Binding.Name, TypeAny)
		}
		if arm.Guard != nil {
			c.checkExpr(arm.Guard)
		}
		switch body := arm.Body.(type) {
		case ast.Expression:
			c.checkExpr(body)
		case *ast.Block:
			for _, stmt := range body.Statements {
				c.visitStmt(stmt)
			}
		}
		c.endScope()
	}
	c.resultType = TypeAny
}
