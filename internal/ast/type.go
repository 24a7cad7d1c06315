package ast

import "github.com/kievzenit/ranni/internal/lexer"

// Hint is the annotation written after ':' in a binding. Types are ordinary
// expressions, so a hint wraps any Expr.
type Hint struct {
	StartToken *lexer.Token

	Value Expr
}

func (*Hint) AstNode() {}

func (h *Hint) FirstToken() *lexer.Token {
	return h.StartToken
}

func (h *Hint) String() string {
	return list("hint", h.Value.String())
}
