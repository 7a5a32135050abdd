package gofront

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// --- Tokens ----------------------------------------------------------------

// EOFType is the token type of the synthetic end-of-input token.
const EOFType = "$"

// Token represents an input token. Tokens are produced by a lexer, or by a
// symbol table, and reflect terminals in a language.
//
// For tokens produced by a lexer, Lexeme holds the matched text and Tag holds
// the name of the rule which matched:
//
//    <3.1416, NUM>
//
// Tokens fed to a parser carry the terminal's type in Lexeme and an attribute
// in Tag. For example, a symbol table will map an identifier to
//
//    <id, 10>     // type "id", attribute is the stable identifier ID
//
type Token struct {
	Lexeme string // lexeme or token type
	Tag    string // tag or attribute
	Span   Span   // positions within the input line
	Line   int    // input line, starting at 1; 0 if unknown
	eof    bool
}

// MakeToken creates a token without position information.
func MakeToken(lexeme, tag string) Token {
	return Token{Lexeme: lexeme, Tag: tag}
}

// EOF returns the synthetic end-of-input token.
func EOF() Token {
	return Token{Lexeme: EOFType, Tag: "EOF", eof: true}
}

// Type returns the token type used by a parser to classify this token as a
// terminal, which is the first component of the token.
func (t Token) Type() string {
	return t.Lexeme
}

// IsEOF is true for the end-of-input token created by EOF. Tokens which
// merely have a lexeme of "$" are ordinary tokens.
func (t Token) IsEOF() bool {
	return t.eof
}

// String renders a token in the interchange format <lexeme, tag>.
func (t Token) String() string {
	return fmt.Sprintf("<%s, %s>", t.Lexeme, t.Tag)
}

// ErrTokenFormat is returned for text which is not of the form <lexeme, tag>.
var ErrTokenFormat = errors.New("malformed token")

// ParseToken parses the textual representation of a token, as produced by
// Token.String. Lexeme and tag are split at the first comma which is not
// escaped by a backslash. A lexeme consisting of a single comma is written
// as "<,, tag>".
func ParseToken(s string) (Token, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 || s[0] != '<' || s[len(s)-1] != '>' {
		return Token{}, fmt.Errorf("%w: %q", ErrTokenFormat, s)
	}
	inner := s[1 : len(s)-1]
	if strings.HasPrefix(inner, ",,") {
		return MakeToken(",", strings.TrimSpace(inner[2:])), nil
	}
	cut := firstUnescapedComma(inner)
	if cut <= 0 {
		return Token{}, fmt.Errorf("%w: %q", ErrTokenFormat, s)
	}
	lexeme := strings.ReplaceAll(inner[:cut], `\,`, ",")
	return MakeToken(lexeme, strings.TrimSpace(inner[cut+1:])), nil
}

func firstUnescapedComma(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case ',':
			return i
		}
	}
	return -1
}

// ReadTokens reads tokens in interchange format from r. A line may hold
// more than one token, separated by whitespace; blank lines are skipped.
func ReadTokens(r io.Reader) ([]Token, error) {
	var tokens []Token
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		for line != "" {
			end := closingBracket(line)
			if end < 0 {
				return tokens, fmt.Errorf("line %d: %w: %q", lineno, ErrTokenFormat, line)
			}
			tok, err := ParseToken(line[:end+1])
			if err != nil {
				return tokens, fmt.Errorf("line %d: %w", lineno, err)
			}
			tok.Line = lineno
			tokens = append(tokens, tok)
			line = strings.TrimSpace(line[end+1:])
		}
	}
	return tokens, sc.Err()
}

// closingBracket finds the '>' closing a token starting at s[0]. A '>' which
// is part of the lexeme (as in "<>=, op>") is skipped by looking for the
// tag separator first.
func closingBracket(s string) int {
	if s == "" || s[0] != '<' {
		return -1
	}
	start := 1
	if strings.HasPrefix(s, "<,,") {
		start = 3
	} else if c := firstUnescapedComma(s[1:]); c >= 0 {
		start = c + 2
	}
	if i := strings.IndexByte(s[start:], '>'); i >= 0 {
		return start + i
	}
	return -1
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input run. For every
// token and every reduced non-terminal, we track which input positions
// it covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
