package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/gofront/lr/slr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const testRules = `kw: program|var|begin|end|integer
id: [a-zA-Z]([a-zA-Z]|[0-9])*
num: [0-9]+
assign: :=
punct: [;:,.+]
ws: ( )+
`

const testGrammar = `<P> ::= "program" "id" ; <D> "begin" <L> "end" .
<D> ::= "var" <V> : "integer" ;
<D> ::= &
<V> ::= "id"
<V> ::= <V> , "id"
<L> ::= <S>
<L> ::= <L> ; <S>
<S> ::= "id" ":=" <E>
<E> ::= <E> + "id"
<E> ::= "id"
`

const testReserved = "program\nvar\nbegin\nend\ninteger\n"

const testSource = `program p;
var a, b: integer;

begin
  a := 1;
  b := a + 2
end.
`

func writeTestFiles(t *testing.T, source string) (dir string) {
	dir = t.TempDir()
	for name, content := range map[string]string{
		"rules.txt":    testRules,
		"grammar.txt":  testGrammar,
		"reserved.txt": testReserved,
		"source.pas":   source,
		"tokens.txt":   "<id, 10> <:=, PR>\n<id, 11>\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.cli")
	defer teardown()
	//
	dir := writeTestFiles(t, testSource)
	in := func(name string) string { return filepath.Join(dir, name) }
	opts := options{ws: "ws", dot: in("cfsm.dot"), html: in("table.html")}
	err := runCompile(opts, in("rules.txt"), in("grammar.txt"), in("reserved.txt"), in("source.pas"))
	if err != nil {
		t.Fatalf("expected source to be accepted, error = %v", err)
	}
	for _, out := range []string{"cfsm.dot", "table.html"} {
		if _, err := os.Stat(in(out)); err != nil {
			t.Errorf("expected %s to be written", out)
		}
	}
}

func TestCompileRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.cli")
	defer teardown()
	//
	dir := writeTestFiles(t, "program p;\nbegin\n  a := 1\n")
	in := func(name string) string { return filepath.Join(dir, name) }
	err := runCompile(options{ws: "ws"}, in("rules.txt"), in("grammar.txt"), in("reserved.txt"), in("source.pas"))
	var synerr *slr.SyntaxError
	if !errors.As(err, &synerr) {
		t.Errorf("expected syntax error for missing end, got %v", err)
	}
	err = runCompile(options{ws: "ws", split: true}, "", in("grammar.txt"), in("reserved.txt"), in("source.pas"))
	if err == nil {
		t.Errorf("expected split source to be rejected")
	}
}

func TestLexAndParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.cli")
	defer teardown()
	//
	dir := writeTestFiles(t, testSource)
	in := func(name string) string { return filepath.Join(dir, name) }
	for _, lm := range []bool{false, true} {
		if err := runLex(options{ws: "ws", lexmach: lm}, in("rules.txt"), in("source.pas")); err != nil {
			t.Errorf("expected source to be tokenized, error = %v", err)
		}
	}
	// tokens are a statement, not a program
	if err := runParse(options{}, in("grammar.txt"), in("tokens.txt")); err == nil {
		t.Errorf("expected token file to be rejected by program grammar")
	}
}

const parensRules = `lp: \(
rp: \)
ws: ( )+
`

const parensGrammar = `<S> ::= ( <S> ) <S>
<S> ::= &
`

func TestLexOutputFeedsParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.cli")
	defer teardown()
	//
	dir := t.TempDir()
	in := func(name string) string { return filepath.Join(dir, name) }
	for name, content := range map[string]string{
		"rules.txt":   parensRules,
		"grammar.txt": parensGrammar,
		"ok.txt":      "(())\n() ()\n",
		"bad.txt":     "(()\n",
	} {
		if err := os.WriteFile(in(name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	for _, lm := range []bool{false, true} {
		opts := options{ws: "ws", lexmach: lm, output: in("ok.tokens")}
		if err := runLex(opts, in("rules.txt"), in("ok.txt")); err != nil {
			t.Fatalf("expected source to be tokenized, error = %v", err)
		}
		content, err := os.ReadFile(in("ok.tokens"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(content), "<(, lp>\n<(, lp>\n<), rp>\n") {
			t.Errorf("unexpected token file:\n%s", content)
		}
		if err := runParse(options{}, in("grammar.txt"), in("ok.tokens")); err != nil {
			t.Errorf("expected tokens written by lex to be accepted, error = %v", err)
		}
	}
	if err := runLex(options{ws: "ws", output: in("bad.tokens")}, in("rules.txt"), in("bad.txt")); err != nil {
		t.Fatal(err)
	}
	var synerr *slr.SyntaxError
	if err := runParse(options{}, in("grammar.txt"), in("bad.tokens")); !errors.As(err, &synerr) {
		t.Errorf("expected syntax error for unbalanced parens, got %v", err)
	}
}

func TestEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.cli")
	defer teardown()
	//
	intp := &Intp{opts: options{ws: "ws"}}
	if _, err := intp.Eval(":ast (a|b)*abb"); err != nil {
		t.Error(err)
	}
	if _, err := intp.Eval(":dfa (a|b)*abb"); err != nil {
		t.Error(err)
	}
	if _, err := intp.Eval(":table"); err == nil {
		t.Errorf("expected :table to fail without grammar")
	}
	if quit, _ := intp.Eval(":quit"); !quit {
		t.Errorf("expected :quit to quit")
	}
}
