package parser

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kievzenit/ranni/internal/ast"
	"github.com/kievzenit/ranni/internal/compiler_errors"
	"github.com/kievzenit/ranni/internal/lexer"
)

type UnexpectedExpectedError struct {
	compiler_errors.Span

	Unexpected lexer.TokenKind
	Expected   lexer.TokenKind
}

func (e *UnexpectedExpectedError) GetMessage() string {
	return fmt.Sprintf("unexpected token: '%s', expected: '%s'", e.Unexpected.String(), e.Expected.String())
}

type UnexpectedExpectedManyError struct {
	compiler_errors.Span

	Unexpected lexer.TokenKind
	Expected   []lexer.TokenKind
}

func (e *UnexpectedExpectedManyError) GetMessage() string {
	expectedKinds := make([]string, len(e.Expected))
	for i, kind := range e.Expected {
		expectedKinds[i] = "'" + kind.String() + "'"
	}
	return fmt.Sprintf("unexpected token: '%s', expected one of: %s", e.Unexpected.String(), strings.Join(expectedKinds, ", "))
}

type ExpectedExprError struct {
	compiler_errors.Span

	Unexpected lexer.TokenKind
}

func (e *ExpectedExprError) GetMessage() string {
	return fmt.Sprintf("expected expression, found '%s'", e.Unexpected.String())
}

type EmptyRecordError struct {
	compiler_errors.Span
}

func (e *EmptyRecordError) GetMessage() string {
	return "record requires at least one positional value"
}

type TrailingInputError struct {
	compiler_errors.Span

	Unexpected lexer.TokenKind
}

func (e *TrailingInputError) GetMessage() string {
	return fmt.Sprintf("unexpected trailing input starting with '%s'", e.Unexpected.String())
}

func (e *UnexpectedExpectedError) GetKind() compiler_errors.ErrorKind {
	return compiler_errors.SyntaxError
}
func (e *UnexpectedExpectedManyError) GetKind() compiler_errors.ErrorKind {
	return compiler_errors.SyntaxError
}
func (e *ExpectedExprError) GetKind() compiler_errors.ErrorKind {
	return compiler_errors.SyntaxError
}
func (e *EmptyRecordError) GetKind() compiler_errors.ErrorKind {
	return compiler_errors.SyntaxError
}
func (e *TrailingInputError) GetKind() compiler_errors.ErrorKind {
	return compiler_errors.ExhaustionError
}

func (e *UnexpectedExpectedError) Error() string     { return compiler_errors.Format(e) }
func (e *UnexpectedExpectedManyError) Error() string { return compiler_errors.Format(e) }
func (e *ExpectedExprError) Error() string           { return compiler_errors.Format(e) }
func (e *EmptyRecordError) Error() string            { return compiler_errors.Format(e) }
func (e *TrailingInputError) Error() string          { return compiler_errors.Format(e) }

type Parser struct {
	fileName string

	scanner lexer.TokenScanner
	eh      compiler_errors.ErrorHandler

	curr *lexer.Token
}

type binaryOperator struct {
	kind       lexer.TokenKind
	op         ast.BinaryOp
	precedence int
}

// binaryOperators is searched front to back. Subtraction is written with '+'
// just like addition, so the Add row always wins and Sub is never produced.
var binaryOperators = []binaryOperator{
	{kind: lexer.PLUS, op: ast.Add, precedence: 1},
	{kind: lexer.PLUS, op: ast.Sub, precedence: 1},
	{kind: lexer.ASTERISK, op: ast.Mul, precedence: 2},
	{kind: lexer.SLASH, op: ast.Div, precedence: 2},
	{kind: lexer.PERCENT, op: ast.Mod, precedence: 2},
	{kind: lexer.CARET, op: ast.Exp, precedence: 3},
}

const lowestPrecedence = 1

var exprStartKinds = []lexer.TokenKind{
	lexer.INT,
	lexer.FLOAT,
	lexer.IDENT,
	lexer.FN,
	lexer.LET,
	lexer.PRAGMA,
	lexer.STRUCT,
	lexer.LPAREN,
	lexer.LBRACE,
	lexer.ARROW,
}

// Parse parses src as one ranni program. Exactly one of the results is
// non-empty: the root expression, or every error met on the way.
func Parse(fileName string, src string) (ast.Expr, []compiler_errors.CompilerError) {
	eh := compiler_errors.NewErrorHandler()
	scanner := lexer.NewTokenScanner(lexer.NewLexer(fileName, src, eh))

	expr := NewParser(fileName, scanner, eh).Parse()
	if eh.HasErrors() {
		return nil, eh.Errors()
	}

	return expr, nil
}

func NewParser(fileName string, scanner lexer.TokenScanner, eh compiler_errors.ErrorHandler) *Parser {
	return &Parser{
		fileName: fileName,
		scanner:  scanner,
		eh:       eh,
		curr:     scanner.Read(),
	}
}

// Parse returns nil when the program could not be parsed; the reasons are in
// the error handler.
func (p *Parser) Parse() (expr ast.Expr) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(compiler_errors.Bailout); !ok {
				panic(r)
			}
			expr = nil
		}
	}()

	expr = p.parseExpr()

	if p.scanner.HasTokens() {
		p.eh.AddError(&TrailingInputError{
			Span:       p.curr.Span(),
			Unexpected: p.curr.Kind,
		})
		p.eh.FailNow()
	}

	return expr
}

func (p *Parser) parseExpr() ast.Expr {
	left := p.parsePrimaryExpr()
	return p.parseBinaryExpr(left, lowestPrecedence)
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.curr.Kind {
	case lexer.INT:
		return p.parseIntLiteral()
	case lexer.FLOAT:
		return p.parseFloatLiteral()
	case lexer.LET:
		return p.parseLetExpr()
	case lexer.PRAGMA:
		return p.parsePragmaExpr()
	case lexer.FN:
		return p.parseFuncExpr()
	case lexer.STRUCT:
		return p.parseStructExpr()
	case lexer.LPAREN:
		return p.parseRecord()
	case lexer.LBRACE, lexer.ARROW:
		return p.parseBlock()
	case lexer.IDENT:
		p.read()
		if p.curr.Kind == lexer.LPAREN {
			p.unread()
			return p.parseFunCallExpr()
		}

		p.unread()
		return p.parseLookupExpr()
	}

	p.eh.AddError(&ExpectedExprError{
		Span:       p.curr.Span(),
		Unexpected: p.curr.Kind,
	})
	p.eh.FailNow()
	panic("unreachable")
}

// parseBinaryExpr extends left with every operator binding at least as
// tightly as minPrecedence. The right operand only absorbs operators of a
// strictly higher level, which keeps equal levels left-associative.
func (p *Parser) parseBinaryExpr(left ast.Expr, minPrecedence int) ast.Expr {
	for {
		operator, ok := lookupBinaryOperator(p.curr.Kind)
		if !ok || operator.precedence < minPrecedence {
			return left
		}
		opToken := p.curr
		p.read()

		right := p.parsePrimaryExpr()

		for {
			next, ok := lookupBinaryOperator(p.curr.Kind)
			if !ok || next.precedence <= operator.precedence {
				break
			}
			right = p.parseBinaryExpr(right, operator.precedence+1)
		}

		left = &ast.BinaryExpr{
			StartToken: left.FirstToken(),

			Op:      operator.op,
			OpToken: opToken,
			Left:    left,
			Right:   right,
		}
	}
}

func lookupBinaryOperator(kind lexer.TokenKind) (binaryOperator, bool) {
	for _, operator := range binaryOperators {
		if operator.kind == kind {
			return operator, true
		}
	}
	return binaryOperator{}, false
}

func (p *Parser) parseLetExpr() *ast.LetExpr {
	p.expect(lexer.LET)
	startToken := p.curr
	p.read()

	var qualifier *ast.LetQualifier
	switch p.curr.Kind {
	case lexer.CASE:
		q := ast.Case
		qualifier = &q
		p.read()
	case lexer.METHOD:
		q := ast.Method
		qualifier = &q
		p.read()
	}

	assign := p.parseAssign()

	var rest ast.Expr
	if p.isCurrAny(exprStartKinds...) {
		rest = p.parseExpr()
	}

	return &ast.LetExpr{
		StartToken: startToken,

		Qualifier: qualifier,
		Assign:    assign,
		Rest:      rest,
	}
}

func (p *Parser) parsePragmaExpr() *ast.PragmaExpr {
	p.expect(lexer.PRAGMA)
	startToken := p.curr
	p.read()

	assign := p.parseAssign()

	var rest ast.Expr
	if p.isCurrAny(exprStartKinds...) {
		rest = p.parseExpr()
	}

	return &ast.PragmaExpr{
		StartToken: startToken,

		Assign: assign,
		Rest:   rest,
	}
}

func (p *Parser) parseAssign() ast.Assign {
	name := p.parseIdent()

	var hint *ast.Hint
	if p.curr.Kind == lexer.COLON {
		hintToken := p.curr
		p.read()

		hint = &ast.Hint{
			StartToken: hintToken,

			Value: p.parseExpr(),
		}
	}

	var value ast.Expr
	if p.curr.Kind == lexer.ASSIGN {
		p.read()
		value = p.parseExpr()
	}

	return ast.Assign{
		Name:  name,
		Hint:  hint,
		Value: value,
	}
}

// parseFuncExpr accepts fn [args] [ret] body. When no block follows the
// expression after the arguments, that expression is the body in arrow form.
func (p *Parser) parseFuncExpr() *ast.FuncExpr {
	p.expect(lexer.FN)
	startToken := p.curr
	p.read()

	var args *ast.Record
	if p.curr.Kind == lexer.LPAREN {
		args = p.parseRecord()
	}

	if p.isCurrAny(lexer.ARROW, lexer.LBRACE) {
		return &ast.FuncExpr{
			StartToken: startToken,

			Args: args,
			Body: p.parseBlock(),
		}
	}

	expr := p.parseExpr()

	if p.isCurrAny(lexer.ARROW, lexer.LBRACE) {
		return &ast.FuncExpr{
			StartToken: startToken,

			Args: args,
			Ret:  expr,
			Body: p.parseBlock(),
		}
	}

	return &ast.FuncExpr{
		StartToken: startToken,

		Args: args,
		Body: &ast.ArrowBlock{
			StartToken: expr.FirstToken(),

			Value: expr,
		},
	}
}

func (p *Parser) parseStructExpr() *ast.StructExpr {
	p.expect(lexer.STRUCT)
	startToken := p.curr
	p.read()

	return &ast.StructExpr{
		StartToken: startToken,

		Body: p.parseBlock(),
	}
}

func (p *Parser) parseBlock() ast.Block {
	p.expectAny(lexer.ARROW, lexer.LBRACE)
	startToken := p.curr

	if p.curr.Kind == lexer.ARROW {
		p.read()

		return &ast.ArrowBlock{
			StartToken: startToken,

			Value: p.parseExpr(),
		}
	}

	p.read()

	exprs := make([]ast.Expr, 0)
	for p.scanner.HasTokens() && p.curr.Kind != lexer.RBRACE {
		exprs = append(exprs, p.parseExpr())
	}

	p.expect(lexer.RBRACE)
	p.read()

	return &ast.BodyBlock{
		StartToken: startToken,

		Exprs: exprs,
	}
}

// parseRecord reads positional values first. An identifier directly followed
// by ':' or '=' opens the named part, after which only assignments may appear.
func (p *Parser) parseRecord() *ast.Record {
	p.expect(lexer.LPAREN)
	startToken := p.curr
	p.read()

	pos := make([]ast.Expr, 0)
	named := make([]ast.Assign, 0)
	for p.scanner.HasTokens() && p.curr.Kind != lexer.RPAREN {
		if len(named) > 0 || p.startsNamedAssign() {
			named = append(named, p.parseAssign())
			continue
		}

		pos = append(pos, p.parseExpr())
	}

	p.expect(lexer.RPAREN)

	if len(pos) == 0 {
		p.eh.AddError(&EmptyRecordError{
			Span: startToken.Span(),
		})
		p.eh.FailNow()
	}

	p.read()

	return &ast.Record{
		StartToken: startToken,

		Pos:   pos,
		Named: named,
	}
}

func (p *Parser) startsNamedAssign() bool {
	if p.curr.Kind != lexer.IDENT {
		return false
	}

	p.read()
	isNamed := p.isCurrAny(lexer.COLON, lexer.ASSIGN)
	p.unread()

	return isNamed
}

func (p *Parser) parseFunCallExpr() *ast.FunCallExpr {
	name := p.parseIdent()

	return &ast.FunCallExpr{
		Name: name,
		Args: p.parseRecord(),
	}
}

func (p *Parser) parseLookupExpr() *ast.LookupExpr {
	return &ast.LookupExpr{
		Name: p.parseIdent(),
	}
}

func (p *Parser) parseIdent() ast.Ident {
	p.expect(lexer.IDENT)

	ident := ast.Ident{
		StartToken: p.curr,

		Name: p.curr.Value,
	}
	p.read()

	return ident
}

func (p *Parser) parseIntLiteral() *ast.IntLiteral {
	p.expect(lexer.INT)
	startToken := p.curr

	value, err := strconv.ParseUint(stripDigitSeparators(p.curr.Value), 10, 64)
	if err != nil {
		p.eh.AddError(lexer.NewInvalidLiteralError(p.curr, numberErrorReason(p.curr.Value, err)))
	}
	p.read()

	return &ast.IntLiteral{
		StartToken: startToken,

		Value: value,
	}
}

func (p *Parser) parseFloatLiteral() *ast.FloatLiteral {
	p.expect(lexer.FLOAT)
	startToken := p.curr

	value, err := strconv.ParseFloat(stripDigitSeparators(p.curr.Value), 64)
	if err != nil {
		p.eh.AddError(lexer.NewInvalidLiteralError(p.curr, numberErrorReason(p.curr.Value, err)))
	}
	p.read()

	return &ast.FloatLiteral{
		StartToken: startToken,

		Value: value,
	}
}

func stripDigitSeparators(number string) string {
	return strings.ReplaceAll(number, "_", "")
}

func numberErrorReason(number string, err error) string {
	if errors.Is(err, strconv.ErrRange) {
		return "value out of range"
	}
	if strings.HasPrefix(number, "-") {
		return "integer literals are unsigned"
	}
	return err.Error()
}

func (p *Parser) read() *lexer.Token {
	p.curr = p.scanner.Read()
	return p.curr
}

func (p *Parser) unread() *lexer.Token {
	p.curr = p.scanner.Unread()
	return p.curr
}

func (p *Parser) expect(kind lexer.TokenKind) {
	if p.curr.Kind != kind {
		p.eh.AddError(&UnexpectedExpectedError{
			Span:       p.curr.Span(),
			Unexpected: p.curr.Kind,
			Expected:   kind,
		})
		p.eh.FailNow()
	}
}

func (p *Parser) expectAny(kinds ...lexer.TokenKind) {
	found := p.isCurrAny(kinds...)
	if found {
		return
	}

	p.eh.AddError(&UnexpectedExpectedManyError{
		Span:       p.curr.Span(),
		Unexpected: p.curr.Kind,
		Expected:   kinds,
	})
	p.eh.FailNow()
}

func (p *Parser) isCurrAny(kinds ...lexer.TokenKind) bool {
	return slices.Contains(kinds, p.curr.Kind)
}
