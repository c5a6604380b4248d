package checker

import "github.com/reyna-lang/reyna/internal/ast"

func (c *Checker) visitStmt(stmt ast.Statement) {
	stmt.Accept(c)
}

func (c *Checker) VisitProgram(p *ast.Program) {
	for _, s := range p.Statements {
		c.visitStmt(s)
	}
}

func (c *Checker) VisitExprStmt(s *ast.ExprStmt) {
	c.checkExpr(s.Expr)
}

func (c *Checker) VisitPrintStmt(s *ast.PrintStmt) {
	c.checkExpr(s.Expr)
}

func (c *Checker) VisitLetStmt(s *ast.LetStmt) {
	declaredType := ""
	if s.Type != nil {
		declaredType = typeAnnotationName(s.Type)
	}

	if s.Value != nil {
		initType := c.checkExpr(s.Value)
		if declaredType != "" {
			if !widens(initType, declaredType) {
				c.fail("variable '%s' expects %s, got %s", s.Name.Name, declaredType, initType)
			}
		} else {
			declaredType = initType
		}
	}
	c.declare(s.Name.Name, declaredType)
}

func (c *Checker) VisitBlock(s *ast.Block) {
	c.beginScope()
	for _, stmt := range s.Statements {
		c.visitStmt(stmt)
	}
	c.endScope()
}

func (c *Checker) VisitIfStmt(s *ast.IfStmt) {
	condType := c.checkExpr(s.Condition)
	if condType != TypeBool && condType != TypeAny {
		c.fail("if condition must be bool, got %s", condType)
	}
	c.visitStmt(s.Then)
	if s.Else != nil {
		c.visitStmt(s.Else)
	}
}

func (c *Checker) VisitWhileStmt(s *ast.WhileStmt) {
	condType := c.checkExpr(s.Condition)
	if condType != TypeBool && condType != TypeAny {
		c.fail("while condition must be bool, got %s", condType)
	}
	c.visitStmt(s.Body)
}

func (c *Checker) VisitReturnStmt(s *ast.ReturnStmt) {
	valType := TypeVoid
	if s.Value != nil {
		valType = c.checkExpr(s.Value)
	}
	if c.currentReturnType != "" && c.currentReturnType != TypeAny &&
		valType != TypeAny && !widens(valType, c.currentReturnType) {
		c.fail("return expects %s, got %s", c.currentReturnType, valType)
	}
}

func (c *Checker) VisitFnDecl(s *ast.FnDecl) {
	sig := &funcSig{}
	for _, p := range s.Params {
		sig.params = append(sig.params, typeAnnotationName(p.Type))
	}
	sig.ret = TypeVoid
	if s.ReturnType != nil {
		sig.ret = typeAnnotationName(s.ReturnType)
	}
	c.functions[s.Name.Name] = sig

	c.beginScope()
	prevReturn := c.currentReturnType
	c.currentReturnType = sig.ret
	for _, p := range s.Params {
		c.declare(p.Name.Name, typeAnnotationName(p.Type))
	}
	for _, stmt := range s.Body.Statements {
		c.visitStmt(stmt)
	}
	c.currentReturnType = prevReturn
	c.endScope()
}

func (c *Checker) VisitStructDecl(s *ast.StructDecl) {
	fields := map[string]string{}
	for _, f := range s.Fields {
		fields[f.Name.Name] = typeAnnotationName(f.Type)
	}
	c.structs[s.Name.Name] = fields
}

func (c *Checker) VisitClassDecl(s *ast.ClassDecl) {
	info := &classInfo{methods: map[string]*funcSig{}}
	if s.Superclass != nil {
		info.superclass = s.Superclass.Name
		if super, ok := c.classes[info.superclass]; ok {
			for name, sig := range super.methods {
				info.methods[name] = sig
			}
		}
	}
	c.classes[s.Name.Name] = info

	prevClass := c.currentClass
	c.currentClass = s.Name.Name
	for _, method := range s.Methods {
		sig := &funcSig{ret: TypeVoid}
		for _, p := range method.Params {
			sig.params = append(sig.params, typeAnnotationName(p.Type))
		}
		if method.ReturnType != nil {
			sig.ret = typeAnnotationName(method.ReturnType)
		}
		info.methods[method.Name.Name] = sig

		c.beginScope()
		c.declare("this", s.Name.Name)
		prevReturn := c.currentReturnType
		c.currentReturnType = sig.ret
		for _, p := range method.Params {
			c.declare(p.Name.Name, typeAnnotationName(p.Type))
		}
		for _, stmt := range method.Body.Statements {
			c.visitStmt(stmt)
		}
		c.currentReturnType = prevReturn
		c.endScope()
	}
	c.currentClass = prevClass
}

// VisitImportStmt resolves and checks an imported module the same way the
// compiler's compileImportStmt inlines it: load the file, then walk its
// top-level statements in place so the names it declares enter scope right
// where the import appears. The loader's visited set means a diamond or
// circular import is only checked once, matching compileImportStmt.
func (c *Checker) VisitImportStmt(s *ast.ImportStmt) {
	prog, ok, err := c.loader.Load(s.Path)
	if err != nil {
		c.fail("import %q: %s", s.Path, err)
	}
	if !ok {
		return
	}
	for _, inner := range prog.Statements {
		c.visitStmt(inner)
	}
}

func (c *Checker) VisitTryStmt(s *ast.TryStmt) {
	c.visitStmt(s.Body)
	if s.Catch != nil {
		c.beginScope()
		if s.Catch.Name != nil {
			c.declare(s.Catch.Name.Name, TypeAny)
		}
		c.visitStmt(s.Catch.Body)
		c.endScope()
	}
	if s.Finally != nil {
		c.visitStmt(s.Finally)
	}
}

func (c *Checker) VisitThrowStmt(s *ast.ThrowStmt) {
	c.checkExpr(s.Value)
}

func typeAnnotationName(t *ast.TypeAnnotation) string {
	if t == nil {
		return TypeAny
	}
	if t.IsArray {
		return TypeArray
	}
	return t.Name
}
