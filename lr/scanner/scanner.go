/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Parsers classify tokens by their type, i.e. the first component of a token.
Scanners producing tokens <lexeme, rule> may be adapted with Map and ByTag.

Three simple scanner implementations are provided: (1) a tokenizer over a
slice of tokens, (2) a splitter separating input at whitespace and at
boundaries between words and punctuation, and (3) a thin wrapper over the
Go std lib 'text/scanner'. An adapter for lexmachine lives in sub-package
`lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/npillmayer/gofront"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gofront.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gofront.scanner")
}

// Tokenizer is a scanner interface. After the input is exhausted, NextToken
// returns gofront.EOF() tokens.
type Tokenizer interface {
	NextToken() gofront.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Slices of tokens ------------------------------------------------------

// SliceTokenizer delivers tokens from a slice.
type SliceTokenizer struct {
	tokens []gofront.Token
	pos    int
	Error  func(error)
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// FromSlice creates a tokenizer for a slice of tokens. The slice should not
// contain an EOF token; it is appended implicitly.
func FromSlice(tokens []gofront.Token) *SliceTokenizer {
	return &SliceTokenizer{tokens: tokens, Error: logError}
}

// NextToken is part of the Tokenizer interface.
func (st *SliceTokenizer) NextToken() gofront.Token {
	if st.pos >= len(st.tokens) {
		return gofront.EOF()
	}
	st.pos++
	return st.tokens[st.pos-1]
}

// SetErrorHandler sets an error handler for the scanner.
func (st *SliceTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		st.Error = logError
		return
	}
	st.Error = h
}

// --- Mapping tokens --------------------------------------------------------

type mapper struct {
	Tokenizer
	f func(gofront.Token) gofront.Token
}

// Map returns a tokenizer applying f to every token of t, except EOF.
func Map(t Tokenizer, f func(gofront.Token) gofront.Token) Tokenizer {
	return mapper{Tokenizer: t, f: f}
}

func (m mapper) NextToken() gofront.Token {
	tok := m.Tokenizer.NextToken()
	if tok.IsEOF() {
		return tok
	}
	return m.f(tok)
}

// ByTag swaps lexeme and tag of a token, making the name of the lexer rule
// which matched the token's type.
func ByTag(tok gofront.Token) gofront.Token {
	tok.Lexeme, tok.Tag = tok.Tag, tok.Lexeme
	return tok
}

// --- Go tokens -------------------------------------------------------------

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer. Tokens carry their text as type, and the
// category as determined by text/scanner as tag. Identifiers, numbers and
// strings are most often better typed by category; use ByTag for that.
type DefaultTokenizer struct {
	scanner.Scanner
	Error func(error) // error handler
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Init(input)
	t.Filename = sourceID
	t.SetErrorHandler(nil)
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	t.Error = h
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(&ScanError{Pos: s.Position.String(), Msg: msg})
	}
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() gofront.Token {
	r := t.Scan()
	if r == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		return gofront.EOF()
	}
	return gofront.Token{
		Lexeme: t.TokenText(),
		Tag:    scanner.TokenString(r),
		Span:   gofront.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
		Line:   t.Position.Line,
	}
}

// ScanError is reported to error handlers.
type ScanError struct {
	Pos string
	Msg string
}

func (e *ScanError) Error() string {
	return e.Pos + ": " + e.Msg
}
