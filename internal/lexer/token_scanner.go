package lexer

import "fmt"

type TokenScanner interface {
	Read() *Token
	Unread() *Token
	HasTokens() bool
}

// LazyTokenScanner pulls tokens from the lexer only when the parser asks for
// them. Tokens already read are kept so that Unread can step back.
type LazyTokenScanner struct {
	lexer  *Lexer
	tokens []*Token

	pos int
}

func NewTokenScanner(lexer *Lexer) TokenScanner {
	return &LazyTokenScanner{
		lexer:  lexer,
		tokens: make([]*Token, 0),
	}
}

// Read returns the next token and makes it current. Reading past the end
// keeps returning the EOF token.
func (s *LazyTokenScanner) Read() *Token {
	if s.pos == len(s.tokens) {
		if s.pos > 0 && s.tokens[s.pos-1].Kind == EOF {
			return s.tokens[s.pos-1]
		}

		token := s.lexer.Next()
		s.tokens = append(s.tokens, &token)
	}

	token := s.tokens[s.pos]
	s.pos++

	return token
}

// Unread steps back one token and returns the token that is current again.
// It panics when fewer than two tokens have been read.
func (s *LazyTokenScanner) Unread() *Token {
	if s.pos <= 1 {
		panic(fmt.Sprintf("TokenScanner.Unread(): cannot step back from position %d", s.pos))
	}
	s.pos--

	return s.tokens[s.pos-1]
}

func (s *LazyTokenScanner) HasTokens() bool {
	return s.pos == 0 || s.tokens[s.pos-1].Kind != EOF
}
