package ast

// Visitor is implemented by each tree-walking pass (the type checker, and
// any future tooling); the compiler itself dispatches
// on concrete type rather than through Visitor, matching how the teacher
// compiler stages are written.
type Visitor interface {
	VisitProgram(p *Program)

	VisitExprStmt(s *ExprStmt)
	VisitPrintStmt(s *PrintStmt)
	VisitLetStmt(s *LetStmt)
	VisitBlock(s *Block)
	VisitIfStmt(s *IfStmt)
	VisitWhileStmt(s *WhileStmt)
	VisitReturnStmt(s *ReturnStmt)
	VisitFnDecl(s *FnDecl)
	VisitStructDecl(s *StructDecl)
	VisitClassDecl(s *ClassDecl)
	VisitImportStmt(s *ImportStmt)
	VisitTryStmt(s *TryStmt)
	VisitThrowStmt(s *ThrowStmt)

	VisitIdentifier(e *Identifier)
	VisitIntLiteral(e *IntLiteral)
	VisitFloatLiteral(e *FloatLiteral)
	VisitStringLiteral(e *StringLiteral)
	VisitBoolLiteral(e *BoolLiteral)
	VisitNilLiteral(e *NilLiteral)
	VisitUnary(e *Unary)
	VisitBinary(e *Binary)
	VisitLogical(e *Logical)
	VisitAssign(e *Assign)
	VisitCall(e *Call)
	VisitGet(e *Get)
	VisitSet(e *Set)
	VisitIndex(e *Index)
	VisitIndexSet(e *IndexSet)
	VisitArrayLiteral(e *ArrayLiteral)
	VisitThis(e *This)
	VisitSuper(e *Super)
	VisitFnExpr(e *FnExpr)
	VisitMatchExpr(e *MatchExpr)
}
