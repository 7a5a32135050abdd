package lexmach

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/gofront"
	"github.com/npillmayer/gofront/lex"
	"github.com/npillmayer/gofront/lex/regex"
	"github.com/npillmayer/gofront/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'gofront.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gofront.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	rules []lex.Rule
	ws    string
}

// NewLMAdapter creates a new lexmachine adapter from a list of token rules.
// Matches of the rule named wsTag are skipped, as are newlines.
//
// NewLMAdapter will return an error if a pattern is malformed or if
// compiling the DFA failed.
func NewLMAdapter(rules []lex.Rule, wsTag string) (*LMAdapter, error) {
	adapter := &LMAdapter{ws: wsTag}
	adapter.rules = append([]lex.Rule(nil), rules...)
	adapter.Lexer = lexmachine.NewLexer()
	for id, rule := range adapter.rules {
		pattern, err := Translate(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		tracer().Debugf("rule %s: %s", rule.Name, pattern)
		if rule.Name == wsTag {
			adapter.Lexer.Add([]byte(pattern), Skip)
		} else {
			adapter.Lexer.Add([]byte(pattern), MakeToken(rule.Name, id))
		}
	}
	adapter.Lexer.Add([]byte(`\n|\r`), Skip)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Translate converts a token pattern, including character classes, into
// lexmachine's syntax. Literal punctuation is escaped.
func Translate(pattern string) (string, error) {
	expanded, err := regex.ExpandClasses(pattern)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	rs := []rune(expanded)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch {
		case c == '\\':
			i++
			if i >= len(rs) {
				return "", fmt.Errorf("%w: escape at end of pattern %q", regex.ErrMalformedPattern, pattern)
			}
			writeLiteral(&b, rs[i])
		case strings.ContainsRune("|*+?()", c):
			b.WriteRune(c)
		default:
			writeLiteral(&b, c)
		}
	}
	return b.String(), nil
}

func writeLiteral(b *strings.Builder, c rune) {
	if unicode.IsPunct(c) || unicode.IsSymbol(c) {
		b.WriteRune('\\')
	}
	b.WriteRune(c)
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, rules: lm.rules, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	rules   []lex.Rule
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
//
// Unconsumed input is reported to the error handler. The scanner then
// produces an error token for the first character and continues behind it.
// Unmatched whitespace is skipped silently.
func (lms *LMScanner) NextToken() gofront.Token {
	for {
		tok, err, eof := lms.scanner.Next()
		if eof {
			return gofront.EOF()
		}
		if err != nil {
			ui, is := err.(*machines.UnconsumedInput)
			if !is {
				lms.Error(err)
				return gofront.EOF()
			}
			r, size := utf8.DecodeRune(ui.Text[ui.StartTC:])
			lms.scanner.TC = ui.StartTC + size
			if unicode.IsSpace(r) {
				continue
			}
			lms.Error(err)
			return gofront.Token{
				Lexeme: string(r),
				Tag:    lex.DefaultErrorTag,
				Span:   gofront.Span{uint64(ui.StartColumn - 1), uint64(ui.StartColumn - 1 + size)},
				Line:   ui.StartLine,
			}
		}
		token := tok.(*lexmachine.Token)
		tracer().Debugf("token %d | %q", token.Type, token.Lexeme)
		return gofront.Token{
			Lexeme: string(token.Lexeme),
			Tag:    lms.rules[token.Type].Name,
			Span:   gofront.Span{uint64(token.StartColumn - 1), uint64(token.EndColumn)},
			Line:   token.StartLine,
		}
	}
}

// Tokens reads all tokens up to the end of input.
func (lms *LMScanner) Tokens() []gofront.Token {
	var tokens []gofront.Token
	for token := lms.NextToken(); !token.IsEOF(); token = lms.NextToken() {
		tokens = append(tokens, token)
	}
	return tokens
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
