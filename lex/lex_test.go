package lex

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/gofront"
	"github.com/npillmayer/gofront/lex/regex"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func compile(t *testing.T, ruleText string, opts ...Option) *Lexer {
	rules, err := ReadRules(strings.NewReader(ruleText))
	if err != nil {
		t.Fatal(err)
	}
	lx, err := Compile(rules, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return lx
}

func render(tokens []gofront.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.String())
	}
	return b.String()
}

func TestReadRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	rules, err := ReadRules(strings.NewReader("kw: if|else\n\n  id:   [a-z]+\ncolon: :\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, have %d", len(rules))
	}
	if rules[1].Name != "id" || rules[1].Pattern != "[a-z]+" || rules[1].Priority != 1 {
		t.Errorf("unexpected rule %v", rules[1])
	}
	if rules[2].Pattern != ":" {
		t.Errorf("expected colon pattern, is %q", rules[2].Pattern)
	}
	_, err = ReadRules(strings.NewReader("ok: a\nbroken\n"))
	if !errors.Is(err, ErrMalformedRule) || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected malformed rule in line 2, got %v", err)
	}
}

func TestMaximalMunch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	lx := compile(t, "AB: ab\nA: a\n")
	if got := render(lx.TokenizeLine("ab", 1)); got != "<ab, AB>" {
		t.Errorf("expected <ab, AB>, got %s", got)
	}
	if got := render(lx.TokenizeLine("aab", 1)); got != "<a, A><ab, AB>" {
		t.Errorf("expected <a, A><ab, AB>, got %s", got)
	}
	if got := render(lx.TokenizeLine("abb", 1)); got != "<ab, AB><b, ERROR>" {
		t.Errorf("expected error token for trailing b, got %s", got)
	}
}

func TestLongestMatchBacksUp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	// "abc" is a token, "ab" is not; scanning "abd" must back up to "a"
	lx := compile(t, "ABC: abc\nA: a\nB: b\nD: d\n")
	if got := render(lx.TokenizeLine("abd", 1)); got != "<a, A><b, B><d, D>" {
		t.Errorf("unexpected tokens %s", got)
	}
}

func TestPriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	lx := compile(t, "kw: if\nid: [a-z]+\nws: ( )+\n")
	if got := render(lx.TokenizeLine("if", 1)); got != "<if, kw>" {
		t.Errorf("expected <if, kw>, got %s", got)
	}
	if got := render(lx.TokenizeLine("if iffy x", 1)); got != "<if, kw><iffy, id><x, id>" {
		t.Errorf("unexpected tokens %s", got)
	}
	reversed := []Rule{{Name: "kw", Pattern: "if", Priority: 1}, {Name: "id", Pattern: "[a-z]+", Priority: 0}}
	lx, err := Compile(reversed)
	if err != nil {
		t.Fatal(err)
	}
	if got := render(lx.TokenizeLine("if", 1)); got != "<if, id>" {
		t.Errorf("expected identifier to win with higher priority, got %s", got)
	}
}

const pascalRules = `kw: program|var|begin|end|if|then|while|do
id: [a-zA-Z]([a-zA-Z]|[0-9])*
num: [0-9]+
assign: :=
op: [+*<>=\-]|<>|<=|>=
punct: [;:,.()]
ws: ( )+
`

var pascalLines = []string{
	"program p;",
	"",
	"  x := x1 + 42;",
	"while x <> 0 do x := x - 1 end.",
	"  ?",
}

func TestTokenizeProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	for _, parallel := range []bool{false, true} {
		lx := compile(t, pascalRules, Parallel(parallel))
		tokens := lx.Tokenize(pascalLines)
		for _, tok := range tokens {
			t.Logf("%3d %v", tok.Line, tok)
		}
		if len(tokens) != 22 {
			t.Errorf("expected 22 tokens, have %d", len(tokens))
		}
		if tok := tokens[3]; tok.Lexeme != "x" || tok.Line != 3 || tok.Span.From() != 2 {
			t.Errorf("unexpected token %v at line %d, %v", tok, tok.Line, tok.Span)
		}
		if got := render(tokens[4:8]); got != "<:=, assign><x1, id><+, op><42, num>" {
			t.Errorf("unexpected tokens %s", got)
		}
		if got := render(tokens[10:12]); got != "<x, id><<>, op>" {
			t.Errorf("unexpected tokens %s", got)
		}
		if last := tokens[len(tokens)-1]; !lx.IsError(last) || last.Lexeme != "?" {
			t.Errorf("expected trailing error token, got %v", last)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	rules := []Rule{{Name: "ok", Pattern: "a"}, {Name: "bad", Pattern: "(a", Priority: 1}, {Name: "worse", Pattern: "[z-a]", Priority: 2}}
	for _, parallel := range []bool{false, true} {
		_, err := Compile(rules, Parallel(parallel))
		if !errors.Is(err, regex.ErrMalformedPattern) || !strings.Contains(err.Error(), "bad") {
			t.Errorf("expected malformed pattern for rule 'bad', got %v", err)
		}
	}
	if _, err := Compile(nil); !errors.Is(err, ErrNoRules) {
		t.Errorf("expected ErrNoRules, got %v", err)
	}
}

func TestOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	lx := compile(t, "sp: ( )+\nx: x\n", WhitespaceTag("sp"), ErrorTag("BAD"), Name("tiny"))
	if got := render(lx.TokenizeLine("x  xy", 1)); got != "<x, x><x, x><y, BAD>" {
		t.Errorf("unexpected tokens %s", got)
	}
	if lx.DFA().Name != "tiny" || len(lx.Rules()) != 2 {
		t.Errorf("options not applied")
	}
}

func TestScanner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	lx := compile(t, "a: a\nb: b\n")
	sc, err := lx.Scanner(strings.NewReader("ab\n\nb?a"))
	if err != nil {
		t.Fatal(err)
	}
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	var lexemes []string
	for tok := sc.NextToken(); !tok.IsEOF(); tok = sc.NextToken() {
		lexemes = append(lexemes, tok.Lexeme)
	}
	if fmt.Sprint(lexemes) != "[a b b ? a]" || len(errs) != 1 {
		t.Errorf("unexpected scan %v, errors %v", lexemes, errs)
	}
}
