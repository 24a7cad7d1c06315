package lexer

import (
	"fmt"
)

type TokenKind int

const (
	EOF TokenKind = iota

	INT
	FLOAT

	IDENT

	PLUS     // +
	ASTERISK // *
	SLASH    // /
	PERCENT  // %
	CARET    // ^

	ASSIGN // =
	ARROW  // =>
	COLON  // :

	LPAREN // (
	LBRACE // {

	RPAREN // )
	RBRACE // }

	FN
	LET
	PRAGMA
	STRUCT
	CASE
	METHOD
)

func (tk TokenKind) String() string {
	switch tk {
	case EOF:
		return "EOF"
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case IDENT:
		return "IDENT"
	case PLUS:
		return "PLUS"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case PERCENT:
		return "PERCENT"
	case CARET:
		return "CARET"
	case ASSIGN:
		return "ASSIGN"
	case ARROW:
		return "ARROW"
	case COLON:
		return "COLON"
	case LPAREN:
		return "LPAREN"
	case LBRACE:
		return "LBRACE"
	case RPAREN:
		return "RPAREN"
	case RBRACE:
		return "RBRACE"
	case FN:
		return "FN"
	case LET:
		return "LET"
	case PRAGMA:
		return "PRAGMA"
	case STRUCT:
		return "STRUCT"
	case CASE:
		return "CASE"
	case METHOD:
		return "METHOD"
	default:
		panic(fmt.Sprintf("TokenKind.String(): received illegal token kind: %d", tk))
	}
}

type TokenMetadata struct {
	FileName string

	Offset int
	Line   int
	Column int
	Length int
}

type Token struct {
	Kind  TokenKind
	Value string

	Metadata TokenMetadata
}

func (t *Token) hasActualValue() bool {
	switch t.Kind {
	case INT, FLOAT, IDENT:
		return true
	}

	return false
}

func (t *Token) String() string {
	if !t.hasActualValue() {
		return fmt.Sprintf("%s()", t.Kind)
	}

	return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
}
