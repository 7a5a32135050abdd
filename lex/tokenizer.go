package lex

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/gofront"
	"github.com/npillmayer/gofront/lex/automata"
)

// TokenizeLine scans a single line of input. Starting at each position, the
// DFA consumes as many characters as it can, remembering the last position
// where it was in a final state. The longest match becomes a token, tagged
// with the final state's token name. If no match is found at all, a
// single-character error token is produced, except for whitespace, which is
// dropped. Tokens of the whitespace rule are dropped as well.
//
// lineno is recorded in the tokens; token spans are byte offsets into line.
func (lx *Lexer) TokenizeLine(line string, lineno int) []gofront.Token {
	var tokens []gofront.Token
	for p := 0; p < len(line); {
		state := automata.Start
		lastFinalPos, lastFinalState := -1, -1
		for q := p; q < len(line); {
			r, size := utf8.DecodeRuneInString(line[q:])
			next, ok := lx.dfa.Step(state, string(r))
			if !ok {
				break
			}
			state, q = next, q+size
			if lx.dfa.IsFinal(state) {
				lastFinalPos, lastFinalState = q, state
			}
		}
		if lastFinalPos < 0 {
			r, size := utf8.DecodeRuneInString(line[p:])
			if !unicode.IsSpace(r) {
				tracer().Debugf("no token at %d:%d, character %q", lineno, p, r)
				tokens = append(tokens, lx.token(line, p, p+size, lx.errTag, lineno))
			}
			p += size
			continue
		}
		tag, _ := lx.dfa.Tag(lastFinalState)
		if tag != lx.ws {
			tokens = append(tokens, lx.token(line, p, lastFinalPos, tag, lineno))
		}
		p = lastFinalPos
	}
	return tokens
}

func (lx *Lexer) token(line string, from, to int, tag string, lineno int) gofront.Token {
	return gofront.Token{
		Lexeme: line[from:to],
		Tag:    tag,
		Span:   gofront.Span{uint64(from), uint64(to)},
		Line:   lineno,
	}
}

// Tokenize scans lines of input. Blank lines are skipped. Line numbers start at 1.
func (lx *Lexer) Tokenize(lines []string) []gofront.Token {
	var tokens []gofront.Token
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens = append(tokens, lx.TokenizeLine(line, i+1)...)
	}
	tracer().Infof("tokenized %d lines into %d tokens", len(lines), len(tokens))
	return tokens
}

// TokenizeReader reads all lines from r and scans them.
func (lx *Lexer) TokenizeReader(r io.Reader) ([]gofront.Token, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lx.Tokenize(lines), nil
}

// IsError is true for tokens produced for unrecognized characters.
func (lx *Lexer) IsError(tok gofront.Token) bool {
	return tok.Tag == lx.errTag
}
