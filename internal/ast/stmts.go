package ast

import "github.com/kievzenit/ranni/internal/lexer"

// LetQualifier is carried through unchanged; its meaning belongs to later
// passes.
type LetQualifier int

const (
	Case LetQualifier = iota
	Method
)

func (q LetQualifier) String() string {
	switch q {
	case Case:
		return "case"
	case Method:
		return "method"
	}
	return "qualifier"
}

// Assign is a single binding target. It is shared by let bindings, pragmas
// and the named part of records.
type Assign struct {
	Name  Ident
	Hint  *Hint
	Value Expr
}

// LetExpr binds Assign for the remainder of the enclosing sequence, which is
// Rest. A nil Rest ends the sequence.
type LetExpr struct {
	StartToken *lexer.Token

	Qualifier *LetQualifier
	Assign    Assign
	Rest      Expr
}

type PragmaExpr struct {
	StartToken *lexer.Token

	Assign Assign
	Rest   Expr
}

func (*Assign) AstNode()     {}
func (*LetExpr) AstNode()    {}
func (*PragmaExpr) AstNode() {}

func (*LetExpr) ExprNode()    {}
func (*PragmaExpr) ExprNode() {}

func (a *Assign) FirstToken() *lexer.Token     { return a.Name.StartToken }
func (e *LetExpr) FirstToken() *lexer.Token    { return e.StartToken }
func (e *PragmaExpr) FirstToken() *lexer.Token { return e.StartToken }

func (a *Assign) String() string {
	parts := []string{a.Name.String()}
	if a.Hint != nil {
		parts = append(parts, a.Hint.String())
	}
	if a.Value != nil {
		parts = append(parts, a.Value.String())
	}
	return list("assign", parts...)
}

func (e *LetExpr) String() string {
	parts := make([]string, 0, 3)
	if e.Qualifier != nil {
		parts = append(parts, e.Qualifier.String())
	}
	parts = append(parts, e.Assign.String(), optional(e.Rest))
	return list("let", parts...)
}

func (e *PragmaExpr) String() string {
	return list("pragma", e.Assign.String(), optional(e.Rest))
}
