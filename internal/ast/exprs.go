package ast

import (
	"strconv"
	"strings"

	"github.com/kievzenit/ranni/internal/lexer"
)

type Literal interface {
	Expr
	LiteralNode()
}

type IntLiteral struct {
	StartToken *lexer.Token

	Value uint64
}

type FloatLiteral struct {
	StartToken *lexer.Token

	Value float64
}

type LookupExpr struct {
	Name Ident
}

type FunCallExpr struct {
	Name Ident
	Args *Record
}

// Record is the shared syntax of argument lists, tuples and struct-like
// values. Pos always holds at least one expression.
type Record struct {
	StartToken *lexer.Token

	Pos   []Expr
	Named []Assign
}

type Block interface {
	Expr
	BlockNode()
}

type ArrowBlock struct {
	StartToken *lexer.Token

	Value Expr
}

type BodyBlock struct {
	StartToken *lexer.Token

	Exprs []Expr
}

type FuncExpr struct {
	StartToken *lexer.Token

	Args *Record
	Ret  Expr
	Body Block
}

type StructExpr struct {
	StartToken *lexer.Token

	Body Block
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Exp
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Mod:
		return "mod"
	case Exp:
		return "exp"
	}
	return "binop(" + strconv.Itoa(int(op)) + ")"
}

type BinaryExpr struct {
	StartToken *lexer.Token

	Op      BinaryOp
	OpToken *lexer.Token
	Left    Expr
	Right   Expr
}

func (*IntLiteral) AstNode()   {}
func (*FloatLiteral) AstNode() {}
func (*LookupExpr) AstNode()   {}
func (*FunCallExpr) AstNode()  {}
func (*Record) AstNode()       {}
func (*ArrowBlock) AstNode()   {}
func (*BodyBlock) AstNode()    {}
func (*FuncExpr) AstNode()     {}
func (*StructExpr) AstNode()   {}
func (*BinaryExpr) AstNode()   {}

func (*IntLiteral) ExprNode()   {}
func (*FloatLiteral) ExprNode() {}
func (*LookupExpr) ExprNode()   {}
func (*FunCallExpr) ExprNode()  {}
func (*Record) ExprNode()       {}
func (*ArrowBlock) ExprNode()   {}
func (*BodyBlock) ExprNode()    {}
func (*FuncExpr) ExprNode()     {}
func (*StructExpr) ExprNode()   {}
func (*BinaryExpr) ExprNode()   {}

func (*IntLiteral) LiteralNode()   {}
func (*FloatLiteral) LiteralNode() {}

func (*ArrowBlock) BlockNode() {}
func (*BodyBlock) BlockNode()  {}

func (l *IntLiteral) FirstToken() *lexer.Token   { return l.StartToken }
func (l *FloatLiteral) FirstToken() *lexer.Token { return l.StartToken }
func (e *LookupExpr) FirstToken() *lexer.Token   { return e.Name.StartToken }
func (e *FunCallExpr) FirstToken() *lexer.Token  { return e.Name.StartToken }
func (r *Record) FirstToken() *lexer.Token       { return r.StartToken }
func (b *ArrowBlock) FirstToken() *lexer.Token   { return b.StartToken }
func (b *BodyBlock) FirstToken() *lexer.Token    { return b.StartToken }
func (e *FuncExpr) FirstToken() *lexer.Token     { return e.StartToken }
func (e *StructExpr) FirstToken() *lexer.Token   { return e.StartToken }
func (e *BinaryExpr) FirstToken() *lexer.Token   { return e.StartToken }

func (l *IntLiteral) String() string {
	return strconv.FormatUint(l.Value, 10)
}

// String keeps a float recognisable as one even when it has no fraction.
func (l *FloatLiteral) String() string {
	s := strconv.FormatFloat(l.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

func (e *LookupExpr) String() string {
	return e.Name.String()
}

func (e *FunCallExpr) String() string {
	return list("call", e.Name.String(), e.Args.String())
}

func (r *Record) String() string {
	parts := exprStrings(r.Pos)
	for _, assign := range r.Named {
		parts = append(parts, assign.String())
	}
	return list("record", parts...)
}

func (b *ArrowBlock) String() string {
	return list("arrow", b.Value.String())
}

func (b *BodyBlock) String() string {
	return list("body", exprStrings(b.Exprs)...)
}

func (e *FuncExpr) String() string {
	args := absent
	if e.Args != nil {
		args = e.Args.String()
	}
	return list("fn", args, optional(e.Ret), e.Body.String())
}

func (e *StructExpr) String() string {
	return list("struct", e.Body.String())
}

func (e *BinaryExpr) String() string {
	return list(e.Op.String(), e.Left.String(), e.Right.String())
}
