package ast

import "github.com/reyna-lang/reyna/internal/token"

// ExprStmt wraps an expression evaluated for its side effect.
type ExprStmt struct {
	Token token.Token
	Expr  Expression
}

func (s *ExprStmt) Accept(v Visitor)       { v.VisitExprStmt(s) }
func (s *ExprStmt) statementNode()         {}
func (s *ExprStmt) TokenLiteral() string   { return s.Token.Lexeme }
func (s *ExprStmt) GetToken() token.Token  { return s.Token }

// PrintStmt evaluates an expression and writes its value followed by a
// newline.
type PrintStmt struct {
	Token token.Token
	Expr  Expression
}

func (s *PrintStmt) Accept(v Visitor)      { v.VisitPrintStmt(s) }
func (s *PrintStmt) statementNode()        {}
func (s *PrintStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *PrintStmt) GetToken() token.Token { return s.Token }

// LetStmt binds a new local or global name to the value of an initializer.
type LetStmt struct {
	Token token.Token
	Name  *Identifier
	Type  *TypeAnnotation // optional
	Value Expression
}

func (s *LetStmt) Accept(v Visitor)      { v.VisitLetStmt(s) }
func (s *LetStmt) statementNode()        {}
func (s *LetStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *LetStmt) GetToken() token.Token { return s.Token }

// Block is a brace-delimited sequence of statements introducing a new scope.
type Block struct {
	Token      token.Token
	Statements []Statement
}

func (s *Block) Accept(v Visitor)      { v.VisitBlock(s) }
func (s *Block) statementNode()        {}
func (s *Block) TokenLiteral() string  { return s.Token.Lexeme }
func (s *Block) GetToken() token.Token { return s.Token }

// IfStmt is a conditional with an optional else branch. Else-if chains are
// represented by nesting another IfStmt as the Else branch.
type IfStmt struct {
	Token     token.Token
	Condition Expression
	Then      *Block
	Else      Statement // *Block or *IfStmt, nil if absent
}

func (s *IfStmt) Accept(v Visitor)      { v.VisitIfStmt(s) }
func (s *IfStmt) statementNode()        {}
func (s *IfStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *IfStmt) GetToken() token.Token { return s.Token }

// WhileStmt loops over Body while Condition holds.
type WhileStmt struct {
	Token     token.Token
	Condition Expression
	Body      *Block
}

func (s *WhileStmt) Accept(v Visitor)      { v.VisitWhileStmt(s) }
func (s *WhileStmt) statementNode()        {}
func (s *WhileStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *WhileStmt) GetToken() token.Token { return s.Token }

// ReturnStmt returns from the enclosing function, optionally with a value.
type ReturnStmt struct {
	Token token.Token
	Value Expression // nil for a bare return
}

func (s *ReturnStmt) Accept(v Visitor)      { v.VisitReturnStmt(s) }
func (s *ReturnStmt) statementNode()        {}
func (s *ReturnStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ReturnStmt) GetToken() token.Token { return s.Token }

// FnDecl declares a named function in the enclosing scope.
type FnDecl struct {
	Token      token.Token
	Name       *Identifier
	Params     []*Param
	ReturnType *TypeAnnotation // nil if unannotated
	Body       *Block
}

func (s *FnDecl) Accept(v Visitor)      { v.VisitFnDecl(s) }
func (s *FnDecl) statementNode()        {}
func (s *FnDecl) TokenLiteral() string  { return s.Token.Lexeme }
func (s *FnDecl) GetToken() token.Token { return s.Token }

// StructField is one field of a struct declaration.
type StructField struct {
	Name *Identifier
	Type *TypeAnnotation
}

// StructDecl declares a value-semantics struct type with a fixed,
// strictly-typed field set.
type StructDecl struct {
	Token  token.Token
	Name   *Identifier
	Fields []*StructField
}

func (s *StructDecl) Accept(v Visitor)      { v.VisitStructDecl(s) }
func (s *StructDecl) statementNode()        {}
func (s *StructDecl) TokenLiteral() string  { return s.Token.Lexeme }
func (s *StructDecl) GetToken() token.Token { return s.Token }

// ClassDecl declares a class, optionally inheriting from Superclass, with a
// set of method declarations (including an optional "init" constructor).
type ClassDecl struct {
	Token      token.Token
	Name       *Identifier
	Superclass *Identifier // nil if none
	Methods    []*FnDecl
}

func (s *ClassDecl) Accept(v Visitor)      { v.VisitClassDecl(s) }
func (s *ClassDecl) statementNode()        {}
func (s *ClassDecl) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ClassDecl) GetToken() token.Token { return s.Token }

// ImportStmt loads another source file and inlines its declarations.
// Symbols is non-nil for the named form (import { a, b } from "path";) and
// nil for the bare form (import "path";). In both forms every top-level
// declaration becomes visible; neither the checker nor the compiler
// filters by Symbols.
type ImportStmt struct {
	Token   token.Token
	Path    string
	Symbols []*Identifier // nil for a bare import
}

func (s *ImportStmt) Accept(v Visitor)      { v.VisitImportStmt(s) }
func (s *ImportStmt) statementNode()        {}
func (s *ImportStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ImportStmt) GetToken() token.Token { return s.Token }

// CatchClause binds a thrown value to Name for the duration of Body.
type CatchClause struct {
	Name *Identifier // nil if the thrown value is discarded
	Body *Block
}

// TryStmt runs Body, dispatching any thrown value to Catch if present, and
// running Finally once Body or Catch completes normally. Finally is not run
// when Catch itself throws.
type TryStmt struct {
	Token   token.Token
	Body    *Block
	Catch   *CatchClause // nil if absent
	Finally *Block       // nil if absent
}

func (s *TryStmt) Accept(v Visitor)      { v.VisitTryStmt(s) }
func (s *TryStmt) statementNode()        {}
func (s *TryStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *TryStmt) GetToken() token.Token { return s.Token }

// ThrowStmt raises Value as an exception, unwinding to the nearest handler.
type ThrowStmt struct {
	Token token.Token
	Value Expression
}

func (s *ThrowStmt) Accept(v Visitor)      { v.VisitThrowStmt(s) }
func (s *ThrowStmt) statementNode()        {}
func (s *ThrowStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ThrowStmt) GetToken() token.Token { return s.Token }
