// Package ast defines the syntax tree produced by the parser and consumed by
// the type checker and compiler.
package ast

import "github.com/reyna-lang/reyna/internal/token"

// Node is the base interface implemented by every syntax tree node.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	GetToken() token.Token
}

// Statement is a Node that appears in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of every tree the parser produces.
type Program struct {
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// Param is a function parameter: name with its type annotation, which the
// parser requires.
type Param struct {
	Name *Identifier
	Type *TypeAnnotation
}

// TypeAnnotation names a declared type: a scalar name, a class/struct name,
// or an array-of type.
type TypeAnnotation struct {
	Token   token.Token
	Name    string // "int64", "float64", "bool", "string", or a class/struct name
	IsArray bool
	Elem    *TypeAnnotation // set when IsArray
}
