package lr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrMalformedGrammar is reported for grammar lines which cannot be parsed,
// and returned for grammar sources without any production.
var ErrMalformedGrammar = errors.New("malformed grammar")

// EpsilonMarker denotes an empty body in grammar sources.
const EpsilonMarker = "&"

// Grammar sources have one production per line:
//
//     <Expr> ::= <Expr> + <Term>
//     <Term> ::= "id"
//     <Opt>  ::= &
//
// Non-terminals are enclosed in angle brackets. Every other character
// outside of quotes is a single-character terminal, quoted strings are
// multi-character terminals.
var grammarLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "NonTerminal", Pattern: `<[^<>\s]+>`},
	{Name: "Define", Pattern: `::=`},
	{Name: "Quoted", Pattern: `"(\\.|[^"])*"|'(\\.|[^'])*'`},
	{Name: "Char", Pattern: `\S`},
})

type productionLine struct {
	Head string        `parser:"@NonTerminal Define"`
	Body []*bodySymbol `parser:"@@*"`
}

type bodySymbol struct {
	NonTerminal string  `parser:"  @NonTerminal"`
	Quoted      *string `parser:"| @Quoted"`
	Char        string  `parser:"| @Char"`
}

var lineParser = participle.MustBuild[productionLine](
	participle.Lexer(grammarLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("Quoted"),
)

// ReadGrammar reads a grammar from r, one production per line. Blank lines
// are ignored. Lines which cannot be parsed are skipped; if diag is
// non-nil, it is called with the line number and an error wrapping
// ErrMalformedGrammar. The grammar returned is not yet augmented.
func ReadGrammar(name string, r io.Reader, diag func(lineno int, err error)) (*Grammar, error) {
	g := NewGrammar(name)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := addLine(g, line); err != nil {
			tracer().Errorf("grammar %s, line %d skipped: %v", name, lineno, err)
			if diag != nil {
				diag(lineno, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if g.Size() == 0 {
		return nil, fmt.Errorf("%w: %s has no productions", ErrMalformedGrammar, name)
	}
	tracer().Infof("read grammar %s with %d rules", name, g.Size())
	return g, nil
}

func addLine(g *Grammar, line string) error {
	prod, err := lineParser.ParseString("", line)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedGrammar, err)
	}
	head := g.NonTerminal(unbracket(prod.Head))
	body := make([]*Symbol, 0, len(prod.Body))
	for _, sym := range prod.Body {
		switch {
		case sym.NonTerminal != "":
			body = append(body, g.NonTerminal(unbracket(sym.NonTerminal)))
		case sym.Quoted != nil:
			if *sym.Quoted == "" {
				return fmt.Errorf("%w: empty terminal", ErrMalformedGrammar)
			}
			body = append(body, g.Terminal(*sym.Quoted))
		case sym.Char == EpsilonMarker:
			body = append(body, Epsilon)
		default:
			body = append(body, g.Terminal(sym.Char))
		}
	}
	g.AddProduction(head, body...)
	return nil
}

func unbracket(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")
}
