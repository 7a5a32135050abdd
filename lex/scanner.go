package lex

import (
	"fmt"
	"io"

	"github.com/npillmayer/gofront"
	"github.com/npillmayer/gofront/lr/scanner"
)

// Scanner delivers the tokens of a lexer run to a parser. Error tokens are
// passed on to the parser, and are reported to the error handler as well.
type Scanner struct {
	lexer  *Lexer
	tokens *scanner.SliceTokenizer
	Error  func(error)
}

var _ scanner.Tokenizer = (*Scanner)(nil)

// Scanner tokenizes input and returns a tokenizer for parsers.
func (lx *Lexer) Scanner(input io.Reader) (*Scanner, error) {
	tokens, err := lx.TokenizeReader(input)
	if err != nil {
		return nil, err
	}
	s := &Scanner{lexer: lx, tokens: scanner.FromSlice(tokens)}
	s.SetErrorHandler(nil)
	return s, nil
}

// NextToken is part of the Tokenizer interface.
func (s *Scanner) NextToken() gofront.Token {
	tok := s.tokens.NextToken()
	if s.lexer.IsError(tok) {
		s.Error(fmt.Errorf("line %d: unrecognized character %q at %d", tok.Line, tok.Lexeme, tok.Span.From()))
	}
	return tok
}

// SetErrorHandler sets an error handler for the scanner.
func (s *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = func(err error) {
			tracer().Errorf("scanner error: %v", err)
		}
	}
	s.Error = h
}
