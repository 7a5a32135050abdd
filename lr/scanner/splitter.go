package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/gofront"
)

// --- Category codes --------------------------------------------------------

// CatCode is a rune category. Runs of runes with equal category codes form
// a token.
type CatCode int16

// Categories used by the default categorizer.
const (
	IllegalCatCode CatCode = iota
	SpaceCat
	WordCat
	PunctCat
	BracketCat
)

// RuneCategorizer assigns a category to runes. Loners are runes which may
// not form sequences, i.e. are tokens by themselves.
type RuneCategorizer interface {
	Cat(r rune) (cat CatCode, isLoner bool)
}

// CatSeq is a run of runes of the same category.
type CatSeq struct {
	Cat    CatCode // catcode of all runes in this sequence
	Length int     // length of sequence in terms of runes
}

// defaultCategorizer separates words (letters, digits, underscore) from
// operator characters. Brackets, commas and semicolons are loners.
type defaultCategorizer struct{}

func (defaultCategorizer) Cat(r rune) (CatCode, bool) {
	switch {
	case unicode.IsSpace(r):
		return SpaceCat, false
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return WordCat, false
	case strings.ContainsRune("()[]{},;", r):
		return BracketCat, true
	}
	return PunctCat, false
}

// --- Category sequence reader ----------------------------------------------

// CatSeqReader reads runs of runes of equal category.
type CatSeqReader struct {
	isEOF      bool
	next       rune
	start, end uint64 // as bytes index
	reader     io.RuneReader
	writer     bytes.Buffer
}

// NewCatSeqReader creates a reader for rune categories.
func NewCatSeqReader(r io.RuneReader) *CatSeqReader {
	return &CatSeqReader{reader: r}
}

// Next reads the next run of runes. The runes are collected and may be
// retrieved with OutputString.
func (rs *CatSeqReader) Next(rc RuneCategorizer) (csq CatSeq, err error) {
	var r rune
	r, err = rs.lookahead()
	if err != nil && err != io.EOF {
		return csq, fmt.Errorf("scanner cannot read sequence (%w)", err)
	} else if err == io.EOF {
		return csq, io.EOF
	}
	var isLoner bool
	csq.Cat, isLoner = rc.Cat(r)
	if isLoner { // rune category is not allowed to form sequences
		rs.match(r)
		csq.Length = 1
		return csq, nil
	}
	for cc := csq.Cat; cc == csq.Cat; cc, isLoner = rc.Cat(r) {
		if isLoner && csq.Length > 0 {
			break
		}
		rs.match(r)
		csq.Length++
		if r, err = rs.lookahead(); err != nil {
			if err == io.EOF {
				err = nil
			}
			break
		}
	}
	return csq, err
}

// OutputString returns the runes matched since the last ResetOutput.
func (rs *CatSeqReader) OutputString() string {
	return rs.writer.String()
}

// ResetOutput clears the output and starts a new span.
func (rs *CatSeqReader) ResetOutput() {
	rs.writer.Reset()
	rs.start = rs.end
}

// Span returns the byte positions of the current output.
func (rs *CatSeqReader) Span() gofront.Span {
	return gofront.Span{rs.start, rs.end}
}

func (rs *CatSeqReader) lookahead() (r rune, err error) {
	if rs.isEOF {
		return utf8.RuneError, io.EOF
	}
	if rs.next != 0 {
		return rs.next, nil
	}
	r, _, err = rs.reader.ReadRune()
	if err == io.EOF {
		rs.isEOF = true
		return utf8.RuneError, io.EOF
	} else if err != nil {
		return 0, err
	}
	rs.next = r
	return r, nil
}

func (rs *CatSeqReader) match(r rune) {
	rs.writer.WriteRune(r)
	rs.end += uint64(utf8.RuneLen(r))
	rs.next = 0
}

// --- Splitter --------------------------------------------------------------

// Splitter is a tokenizer splitting input into words and operators. Every
// token has its text as lexeme and tag, making the text the token's type.
type Splitter struct {
	csr   *CatSeqReader
	cats  RuneCategorizer
	Error func(error)
}

var _ Tokenizer = (*Splitter)(nil)

// SplitOption configures a splitter.
type SplitOption func(*Splitter)

// WhitespaceOnly makes a splitter separate tokens at whitespace only.
func WhitespaceOnly() SplitOption {
	return func(s *Splitter) {
		s.cats = spaceCategorizer{}
	}
}

// WithCategorizer sets a custom rune categorizer. Runes of category
// SpaceCat are dropped.
func WithCategorizer(rc RuneCategorizer) SplitOption {
	return func(s *Splitter) {
		s.cats = rc
	}
}

type spaceCategorizer struct{}

func (spaceCategorizer) Cat(r rune) (CatCode, bool) {
	if unicode.IsSpace(r) {
		return SpaceCat, false
	}
	return WordCat, false
}

// Split creates a splitter for input.
func Split(input io.Reader, opts ...SplitOption) *Splitter {
	s := &Splitter{
		csr:   NewCatSeqReader(bufio.NewReader(input)),
		cats:  defaultCategorizer{},
		Error: logError,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextToken is part of the Tokenizer interface.
func (s *Splitter) NextToken() gofront.Token {
	for {
		s.csr.ResetOutput()
		csq, err := s.csr.Next(s.cats)
		if err == io.EOF {
			return gofront.EOF()
		} else if err != nil {
			s.Error(err)
			return gofront.EOF()
		}
		if csq.Cat == SpaceCat {
			continue
		}
		text := s.csr.OutputString()
		tracer().Debugf("split token %q", text)
		return gofront.Token{Lexeme: text, Tag: text, Span: s.csr.Span()}
	}
}

// SetErrorHandler sets an error handler for the scanner.
func (s *Splitter) SetErrorHandler(h func(error)) {
	if h == nil {
		s.Error = logError
		return
	}
	s.Error = h
}

// Words splits a string at whitespace.
func Words(input string) []gofront.Token {
	var tokens []gofront.Token
	for _, w := range strings.Fields(input) {
		tokens = append(tokens, gofront.MakeToken(w, w))
	}
	return tokens
}
