package lexer

import (
	"fmt"

	plexer "github.com/alecthomas/participle/v2/lexer"
	"github.com/kievzenit/ranni/internal/compiler_errors"
)

// Rules are tried in order and the first match wins, so Float must precede
// Int and "=>" must precede "=". Whitespace covers the full Unicode White_Space
// set, not only the ASCII characters of \s.
var definition = plexer.MustSimple([]plexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s\v\x{85}\p{Z},]+`},
	{Name: "Float", Pattern: `-?\d[_\d]*\.\d[_\d]*(e\d+)?`},
	{Name: "Int", Pattern: `-?\d[_\d]*`},
	{Name: "Ident", Pattern: `[_a-zA-Z][_a-zA-Z0-9]*`},
	{Name: "Punct", Pattern: `=>|[=:(){}+*/%^]`},
	{Name: "Invalid", Pattern: `.`},
})

var (
	whitespaceType = definition.Symbols()["Whitespace"]
	floatType      = definition.Symbols()["Float"]
	intType        = definition.Symbols()["Int"]
	identType      = definition.Symbols()["Ident"]
	punctType      = definition.Symbols()["Punct"]
	invalidType    = definition.Symbols()["Invalid"]
)

type LexerError struct {
	compiler_errors.Span

	Message string
}

func newUnexpectedError(unexpected string, span compiler_errors.Span) *LexerError {
	return &LexerError{
		Span:    span,
		Message: fmt.Sprintf("unexpected character: %q", unexpected),
	}
}

// NewInvalidLiteralError reports a numeric literal whose text cannot be
// represented by its literal type.
func NewInvalidLiteralError(token *Token, reason string) *LexerError {
	return &LexerError{
		Span:    token.Span(),
		Message: fmt.Sprintf("invalid %s literal %q: %s", token.Kind, token.Value, reason),
	}
}

func (e *LexerError) GetKind() compiler_errors.ErrorKind {
	return compiler_errors.LexicalError
}

func (e *LexerError) GetMessage() string {
	return e.Message
}

func (e *LexerError) Error() string {
	return compiler_errors.Format(e)
}

func (t *Token) Span() compiler_errors.Span {
	return compiler_errors.Span{
		FileName: t.Metadata.FileName,
		Offset:   t.Metadata.Offset,
		Line:     t.Metadata.Line,
		Column:   t.Metadata.Column,
		Length:   t.Metadata.Length,
		AtEOF:    t.Kind == EOF,
	}
}

type Lexer struct {
	fileName string
	lex      plexer.Lexer
	done     bool
	last     plexer.Position

	eh compiler_errors.ErrorHandler
}

func NewLexer(fileName string, src string, eh compiler_errors.ErrorHandler) *Lexer {
	l := &Lexer{
		fileName: fileName,
		last:     plexer.Position{Filename: fileName, Line: 1, Column: 1},

		eh: eh,
	}

	lex, err := definition.LexString(fileName, src)
	if err != nil {
		eh.AddError(&LexerError{
			Span:    compiler_errors.Span{FileName: fileName, Line: 1, Column: 1},
			Message: err.Error(),
		})
		l.done = true
		return l
	}
	l.lex = lex

	return l
}

// Next returns the next significant token. Separators are dropped and
// characters that start no token are reported to the error handler and
// skipped. Once the input is exhausted every call returns EOF.
func (l *Lexer) Next() Token {
	for !l.done {
		tok, err := l.lex.Next()
		if err != nil {
			l.eh.AddError(&LexerError{
				Span:    l.spanAt(l.last, 0),
				Message: err.Error(),
			})
			l.done = true
			break
		}
		l.last = tok.Pos

		switch tok.Type {
		case plexer.EOF:
			l.done = true
		case whitespaceType:
			continue
		case invalidType:
			l.eh.AddError(newUnexpectedError(tok.Value, l.spanAt(tok.Pos, len(tok.Value))))
			continue
		default:
			return l.newToken(tok)
		}
	}

	return Token{
		Kind:  EOF,
		Value: EOF.String(),
		Metadata: TokenMetadata{
			FileName: l.fileName,
			Offset:   l.last.Offset,
			Line:     l.last.Line,
			Column:   l.last.Column,
		},
	}
}

// Tokenize drains the lexer. The returned slice always ends with EOF.
func (l *Lexer) Tokenize() []Token {
	tokens := make([]Token, 0)

	for {
		token := l.Next()
		tokens = append(tokens, token)
		if token.Kind == EOF {
			return tokens
		}
	}
}

func (l *Lexer) newToken(tok plexer.Token) Token {
	token := Token{
		Value: tok.Value,
		Metadata: TokenMetadata{
			FileName: l.fileName,
			Offset:   tok.Pos.Offset,
			Line:     tok.Pos.Line,
			Column:   tok.Pos.Column,
			Length:   len(tok.Value),
		},
	}

	switch tok.Type {
	case floatType:
		token.Kind = FLOAT
	case intType:
		token.Kind = INT
	case identType:
		token.Kind = identifierKind(tok.Value)
	case punctType:
		token.Kind = punctuationKind(tok.Value)
	default:
		panic(fmt.Sprintf("lexer: unhandled token type %d (%q)", tok.Type, tok.Value))
	}

	return token
}

func (l *Lexer) spanAt(pos plexer.Position, length int) compiler_errors.Span {
	return compiler_errors.Span{
		FileName: l.fileName,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
		Length:   length,
	}
}

func identifierKind(identifier string) TokenKind {
	switch identifier {
	case "fn":
		return FN
	case "let":
		return LET
	case "pragma":
		return PRAGMA
	case "struct":
		return STRUCT
	case "case":
		return CASE
	case "method":
		return METHOD
	}

	return IDENT
}

func punctuationKind(punct string) TokenKind {
	switch punct {
	case "+":
		return PLUS
	case "*":
		return ASTERISK
	case "/":
		return SLASH
	case "%":
		return PERCENT
	case "^":
		return CARET
	case "=":
		return ASSIGN
	case "=>":
		return ARROW
	case ":":
		return COLON
	case "(":
		return LPAREN
	case ")":
		return RPAREN
	case "{":
		return LBRACE
	case "}":
		return RBRACE
	}

	panic("unreachable")
}
