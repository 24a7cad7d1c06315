package ast

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kievzenit/ranni/internal/lexer"
)

func ident(name string) Ident {
	return Ident{
		StartToken: &lexer.Token{Kind: lexer.IDENT, Value: name},
		Name:       name,
	}
}

func lookup(name string) *LookupExpr {
	return &LookupExpr{Name: ident(name)}
}

func TestString(t *testing.T) {
	caseQualifier := Case

	tests := []struct {
		name     string
		node     AstNode
		expected string
	}{
		{
			name:     "int",
			node:     &IntLiteral{Value: 7},
			expected: "7",
		},
		{
			name:     "float keeps fraction",
			node:     &FloatLiteral{Value: 3},
			expected: "3.0",
		},
		{
			name:     "float",
			node:     &FloatLiteral{Value: 0.25},
			expected: "0.25",
		},
		{
			name: "binary",
			node: &BinaryExpr{
				Op:    Mod,
				Left:  lookup("a"),
				Right: &IntLiteral{Value: 2},
			},
			expected: "(mod a 2)",
		},
		{
			name: "call",
			node: &FunCallExpr{
				Name: ident("f"),
				Args: &Record{
					Pos:   []Expr{lookup("x")},
					Named: []Assign{{Name: ident("n"), Value: &IntLiteral{Value: 1}}},
				},
			},
			expected: "(call f (record x (assign n 1)))",
		},
		{
			name: "let with qualifier",
			node: &LetExpr{
				Qualifier: &caseQualifier,
				Assign: Assign{
					Name: ident("x"),
					Hint: &Hint{Value: lookup("T")},
				},
				Rest: lookup("x"),
			},
			expected: "(let case (assign x (hint T)) x)",
		},
		{
			name: "pragma without rest",
			node: &PragmaExpr{
				Assign: Assign{Name: ident("inline")},
			},
			expected: "(pragma (assign inline) ())",
		},
		{
			name: "function with everything absent",
			node: &FuncExpr{
				Body: &BodyBlock{},
			},
			expected: "(fn () () (body))",
		},
		{
			name: "struct",
			node: &StructExpr{
				Body: &ArrowBlock{Value: lookup("s")},
			},
			expected: "(struct (arrow s))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.expected {
				t.Errorf("String() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestBinaryOpString(t *testing.T) {
	ops := map[BinaryOp]string{
		Add: "add",
		Sub: "sub",
		Mul: "mul",
		Div: "div",
		Mod: "mod",
		Exp: "exp",
	}

	for op, expected := range ops {
		if op.String() != expected {
			t.Errorf("%d.String() = %s, expected %s", int(op), op.String(), expected)
		}
	}
}

func TestDump(t *testing.T) {
	node := &LetExpr{
		StartToken: &lexer.Token{Kind: lexer.LET, Value: "let"},
		Assign: Assign{
			Name:  ident("x"),
			Value: &IntLiteral{Value: 5},
		},
		Rest: lookup("x"),
	}

	dump := Dump(node)

	for _, want := range []string{"LetExpr", "Assign", "IntLiteral", "LookupExpr"} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump is missing %q:\n%s", want, dump)
		}
	}
	if strings.Contains(dump, "StartToken") {
		t.Errorf("dump contains token bookkeeping:\n%s", dump)
	}
}

func TestNodesUsePointerReceivers(t *testing.T) {
	nodes := []any{
		Ident{},
		Hint{},
		Assign{},
		LetExpr{},
		PragmaExpr{},
		IntLiteral{},
		FloatLiteral{},
		LookupExpr{},
		FunCallExpr{},
		Record{},
		ArrowBlock{},
		BodyBlock{},
		FuncExpr{},
		StructExpr{},
		BinaryExpr{},
	}

	astNode := reflect.TypeOf((*AstNode)(nil)).Elem()
	for _, node := range nodes {
		typ := reflect.TypeOf(node)
		if typ.NumMethod() != 0 {
			t.Errorf("%s has %d value receiver methods, expected none", typ.Name(), typ.NumMethod())
		}
		if !reflect.PointerTo(typ).Implements(astNode) {
			t.Errorf("*%s does not implement AstNode", typ.Name())
		}
	}
}
