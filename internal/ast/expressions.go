package ast

import "github.com/reyna-lang/reyna/internal/token"

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Name  string
}

func (e *Identifier) Accept(v Visitor)      { v.VisitIdentifier(e) }
func (e *Identifier) expressionNode()       {}
func (e *Identifier) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Identifier) GetToken() token.Token { return e.Token }

// IntLiteral is an int64 literal.
type IntLiteral struct {
	Token token.Token
	Value int64
}

func (e *IntLiteral) Accept(v Visitor)      { v.VisitIntLiteral(e) }
func (e *IntLiteral) expressionNode()       {}
func (e *IntLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *IntLiteral) GetToken() token.Token { return e.Token }

// FloatLiteral is a float64 literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (e *FloatLiteral) Accept(v Visitor)      { v.VisitFloatLiteral(e) }
func (e *FloatLiteral) expressionNode()       {}
func (e *FloatLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *FloatLiteral) GetToken() token.Token { return e.Token }

// StringLiteral is a string literal with its quotes already stripped.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(e) }
func (e *StringLiteral) expressionNode()       {}
func (e *StringLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *StringLiteral) GetToken() token.Token { return e.Token }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (e *BoolLiteral) Accept(v Visitor)      { v.VisitBoolLiteral(e) }
func (e *BoolLiteral) expressionNode()       {}
func (e *BoolLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *BoolLiteral) GetToken() token.Token { return e.Token }

// NilLiteral is the `nil` literal.
type NilLiteral struct {
	Token token.Token
}

func (e *NilLiteral) Accept(v Visitor)      { v.VisitNilLiteral(e) }
func (e *NilLiteral) expressionNode()       {}
func (e *NilLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *NilLiteral) GetToken() token.Token { return e.Token }

// Unary is a prefix `-` or `!` expression.
type Unary struct {
	Token    token.Token
	Operator token.Type
	Right    Expression
}

func (e *Unary) Accept(v Visitor)      { v.VisitUnary(e) }
func (e *Unary) expressionNode()       {}
func (e *Unary) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Unary) GetToken() token.Token { return e.Token }

// Binary is an infix arithmetic, comparison, or equality expression.
type Binary struct {
	Token    token.Token
	Left     Expression
	Operator token.Type
	Right    Expression
}

func (e *Binary) Accept(v Visitor)      { v.VisitBinary(e) }
func (e *Binary) expressionNode()       {}
func (e *Binary) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Binary) GetToken() token.Token { return e.Token }

// Logical is `and`/`or`, which short-circuit and so are compiled separately
// from Binary's eager operators.
type Logical struct {
	Token    token.Token
	Left     Expression
	Operator token.Type
	Right    Expression
}

func (e *Logical) Accept(v Visitor)      { v.VisitLogical(e) }
func (e *Logical) expressionNode()       {}
func (e *Logical) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Logical) GetToken() token.Token { return e.Token }

// Assign stores Value into the variable named Name.
type Assign struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (e *Assign) Accept(v Visitor)      { v.VisitAssign(e) }
func (e *Assign) expressionNode()       {}
func (e *Assign) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Assign) GetToken() token.Token { return e.Token }

// Call invokes Callee with Args.
type Call struct {
	Token  token.Token // the '(' token
	Callee Expression
	Args   []Expression
}

func (e *Call) Accept(v Visitor)      { v.VisitCall(e) }
func (e *Call) expressionNode()       {}
func (e *Call) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Call) GetToken() token.Token { return e.Token }

// Get reads a field or bound method off Object, e.g. `obj.field`.
type Get struct {
	Token  token.Token // the '.' token
	Object Expression
	Name   *Identifier
}

func (e *Get) Accept(v Visitor)      { v.VisitGet(e) }
func (e *Get) expressionNode()       {}
func (e *Get) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Get) GetToken() token.Token { return e.Token }

// Set assigns Value into a field on Object, e.g. `obj.field = value`.
type Set struct {
	Token  token.Token
	Object Expression
	Name   *Identifier
	Value  Expression
}

func (e *Set) Accept(v Visitor)      { v.VisitSet(e) }
func (e *Set) expressionNode()       {}
func (e *Set) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Set) GetToken() token.Token { return e.Token }

// Index reads an element off Object at Index, e.g. `arr[i]`.
type Index struct {
	Token  token.Token // the '[' token
	Object Expression
	Index  Expression
}

func (e *Index) Accept(v Visitor)      { v.VisitIndex(e) }
func (e *Index) expressionNode()       {}
func (e *Index) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Index) GetToken() token.Token { return e.Token }

// IndexSet assigns Value into Object at Index, e.g. `arr[i] = value`.
type IndexSet struct {
	Token  token.Token
	Object Expression
	Index  Expression
	Value  Expression
}

func (e *IndexSet) Accept(v Visitor)      { v.VisitIndexSet(e) }
func (e *IndexSet) expressionNode()       {}
func (e *IndexSet) TokenLiteral() string  { return e.Token.Lexeme }
func (e *IndexSet) GetToken() token.Token { return e.Token }

// ArrayLiteral builds a new array from Elements.
type ArrayLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (e *ArrayLiteral) Accept(v Visitor)      { v.VisitArrayLiteral(e) }
func (e *ArrayLiteral) expressionNode()       {}
func (e *ArrayLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ArrayLiteral) GetToken() token.Token { return e.Token }

// This refers to the receiver inside a method body.
type This struct {
	Token token.Token
}

func (e *This) Accept(v Visitor)      { v.VisitThis(e) }
func (e *This) expressionNode()       {}
func (e *This) TokenLiteral() string  { return e.Token.Lexeme }
func (e *This) GetToken() token.Token { return e.Token }

// Super resolves Method on the enclosing class's superclass.
type Super struct {
	Token  token.Token
	Method *Identifier
}

func (e *Super) Accept(v Visitor)      { v.VisitSuper(e) }
func (e *Super) expressionNode()       {}
func (e *Super) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Super) GetToken() token.Token { return e.Token }

// FnExpr is an anonymous function literal; it compiles the same way as
// FnDecl's body but produces a value instead of binding a name.
type FnExpr struct {
	Token      token.Token
	Params     []*Param
	ReturnType *TypeAnnotation
	Body       *Block
}

func (e *FnExpr) Accept(v Visitor)      { v.VisitFnExpr(e) }
func (e *FnExpr) expressionNode()       {}
func (e *FnExpr) TokenLiteral() string  { return e.Token.Lexeme }
func (e *FnExpr) GetToken() token.Token { return e.Token }

// MatchArm is one `pattern [if guard] => body` arm of a match expression.
// Literal is non-nil for a literal-value arm; Binding is non-nil for a
// catch-all `name => body` arm; both nil with IsWildcard set represents
// `_ => body`. Guard, when non-nil, must also evaluate truthy for the arm
// to be taken; a pattern match that fails its guard falls through to the
// next arm rather than taking the arm's body.
type MatchArm struct {
	Literal    Expression
	Binding    *Identifier
	IsWildcard bool
	Guard      Expression
	Body       Node // an Expression, or a *Block whose last ExprStmt supplies the value
}

// MatchExpr evaluates Subject once and dispatches to the first arm whose
// pattern matches.
type MatchExpr struct {
	Token   token.Token
	Subject Expression
	Arms    []*MatchArm
}

func (e *MatchExpr) Accept(v Visitor)      { v.VisitMatchExpr(e) }
func (e *MatchExpr) expressionNode()       {}
func (e *MatchExpr) TokenLiteral() string  { return e.Token.Lexeme }
func (e *MatchExpr) GetToken() token.Token { return e.Token }
