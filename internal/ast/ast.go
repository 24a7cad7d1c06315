package ast

import (
	"fmt"
	"strings"

	"github.com/kievzenit/ranni/internal/lexer"
)

type AstNode interface {
	fmt.Stringer
	AstNode()
	FirstToken() *lexer.Token
}

type Expr interface {
	AstNode
	ExprNode()
}

type Ident struct {
	StartToken *lexer.Token

	Name string
}

func (*Ident) AstNode() {}
func (i *Ident) FirstToken() *lexer.Token {
	return i.StartToken
}

func (i *Ident) String() string {
	return i.Name
}

// absent is printed in place of an optional child that is not there.
const absent = "()"

func list(head string, parts ...string) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(head)
	for _, part := range parts {
		sb.WriteString(" ")
		sb.WriteString(part)
	}
	sb.WriteString(")")
	return sb.String()
}

func optional(node AstNode) string {
	if node == nil {
		return absent
	}
	return node.String()
}

func exprStrings(exprs []Expr) []string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = expr.String()
	}
	return parts
}
