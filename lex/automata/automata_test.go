package automata

import (
	"strings"
	"testing"

	"github.com/npillmayer/gofront/lex/regex"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func dfaFor(t *testing.T, name, pattern string) *DFA {
	tree, err := regex.Compile(name, pattern)
	if err != nil {
		t.Fatal(err)
	}
	return FromTree(tree)
}

// words enumerates all strings over alphabet up to length n.
func words(alphabet []string, n int) []string {
	all := []string{""}
	level := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range level {
			for _, a := range alphabet {
				next = append(next, w+a)
			}
		}
		all = append(all, next...)
		level = next
	}
	return all
}

func assertDeterministic(t *testing.T, d *DFA) {
	for _, s := range d.States() {
		for sym, target := range d.Transitions[s] {
			if _, ok := d.Transitions[target]; !ok {
				t.Errorf("%s: target %d of (%d,%s) is not a state", d.Name, target, s, sym)
			}
		}
	}
	if _, ok := d.Transitions[Start]; !ok {
		t.Errorf("%s: start state missing", d.Name)
	}
}

var languages = []struct {
	pattern string
	accept  []string
	reject  []string
}{
	{"ab", []string{"ab"}, []string{"", "a", "b", "abb", "ba"}},
	{"a*", []string{"", "a", "aaaa"}, []string{"b", "ab"}},
	{"(a|b)*abb", []string{"abb", "aabb", "babb", "abababb"}, []string{"ab", "abba", ""}},
	{"a+b?", []string{"a", "aab", "aaa"}, []string{"", "b", "abb"}},
	{"a(b|())c", []string{"abc", "ac"}, []string{"abbc", "a", "c"}},
}

func TestDirectDFA(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	for _, lang := range languages {
		d := dfaFor(t, "L", lang.pattern)
		d.Dump()
		assertDeterministic(t, d)
		for _, w := range lang.accept {
			if !d.Accepts(w) {
				t.Errorf("expected %q to accept %q", lang.pattern, w)
			}
		}
		for _, w := range lang.reject {
			if d.Accepts(w) {
				t.Errorf("expected %q to reject %q", lang.pattern, w)
			}
		}
	}
}

func TestTextbookDFA(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	d := dfaFor(t, "T", "(a|b)*abb")
	if d.Size() != 4 {
		t.Errorf("expected DFA for (a|b)*abb to have 4 states, has %d", d.Size())
	}
	if finals := d.Finals(); len(finals) != 1 {
		t.Errorf("expected 1 final state, have %v", finals)
	}
	if tag, ok := d.Tag(d.Finals()[0]); !ok || tag != "T" {
		t.Errorf("expected final state to be tagged with rule name, is %q", tag)
	}
}

func TestMinimizeEquivalence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	patterns := []string{"(a|b)*abb", "a*|a*a", "(ab|a)(b|())", "(a|b)(a|b)*", "a?a?a?", "(aa|a)*b"}
	for _, pattern := range patterns {
		d := dfaFor(t, "M", pattern)
		m := Minimize(d)
		assertDeterministic(t, m)
		if m.Size() > d.Size() {
			t.Errorf("%q: minimized DFA has more states (%d) than original (%d)", pattern, m.Size(), d.Size())
		}
		for _, w := range words([]string{"a", "b"}, 6) {
			if d.Accepts(w) != m.Accepts(w) {
				t.Errorf("%q: minimized DFA disagrees on %q", pattern, w)
			}
		}
		mm := Minimize(m)
		if mm.Size() != m.Size() {
			t.Errorf("%q: minimization not idempotent, %d vs %d states", pattern, m.Size(), mm.Size())
		}
	}
}

func TestMinimizeStates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	// a*|a*a collapses to a*
	m := Minimize(dfaFor(t, "M", "a*|a*a"))
	if m.Size() != 1 || !m.IsFinal(Start) {
		m.Dump()
		t.Errorf("expected a single accepting state, have %d states", m.Size())
	}
}

func TestMinimizeSwapsStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	// hand-made DFA whose start state is final and lands behind the non-final block
	d := NewDFA("S")
	d.AddTransition(0, "a", 1)
	d.AddTransition(1, "a", 0)
	d.SetFinal(0, "S")
	m := Minimize(d)
	if !m.IsFinal(Start) || m.IsFinal(1) {
		t.Errorf("expected start state 0 to be final after minimization")
	}
	for _, w := range words([]string{"a"}, 5) {
		if d.Accepts(w) != m.Accepts(w) {
			t.Errorf("minimized DFA disagrees on %q", w)
		}
	}
}

func TestMinimizeKeepsTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	d := NewDFA("X")
	d.AddTransition(0, "a", 1)
	d.AddTransition(0, "b", 2)
	d.SetFinal(1, "A")
	d.SetFinal(2, "B")
	m := Minimize(d)
	if m.Size() != 3 {
		t.Fatalf("expected differently tagged states to stay apart, have %d states", m.Size())
	}
	s, _ := m.Step(Start, "b")
	if tag, _ := m.Tag(s); tag != "B" {
		t.Errorf("expected tag B after 'b', is %q", tag)
	}
}

func TestUnionOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	d1 := dfaFor(t, "AB", "ab") // states 0,1,2
	d2 := dfaFor(t, "A", "a")   // states 0,1
	n := Union([]*DFA{d1, d2})
	if !n.Epsilon[Start].Has(1) || !n.Epsilon[Start].Has(4) {
		t.Errorf("expected epsilon edges to 1 and 4, have %s", n.Epsilon[Start])
	}
	if n.FinalTokens[3] != "AB" || n.FinalTokens[5] != "A" {
		t.Errorf("unexpected final tokens %v", n.FinalTokens)
	}
	if n.Size() != 6 {
		t.Errorf("expected 6 NFA states, have %d", n.Size())
	}
}

func TestDeterminizePriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	kw := Minimize(dfaFor(t, "kw", "if"))
	id := Minimize(dfaFor(t, "id", "(i|f|x)+"))
	n := Union([]*DFA{kw, id})
	d := Minimize(Determinize(n, []string{"kw", "id"}, ""))
	assertDeterministic(t, d)
	if d.Name != DefaultName {
		t.Errorf("expected default name, is %q", d.Name)
	}
	for input, expected := range map[string]string{"if": "kw", "i": "id", "iff": "id", "x": "id"} {
		s := Start
		for _, r := range input {
			s, _ = d.Step(s, string(r))
		}
		if tag, _ := d.Tag(s); tag != expected {
			t.Errorf("expected %q to be recognized as %s, is %q", input, expected, tag)
		}
	}
	// reversed priority: identifiers shadow the keyword
	d = Determinize(n, []string{"id", "kw"}, "rev")
	s, _ := d.Step(Start, "i")
	s, _ = d.Step(s, "f")
	if tag, _ := d.Tag(s); tag != "id" {
		t.Errorf("expected 'if' to be an identifier with reversed priority, is %q", tag)
	}
}

func TestDeterminizeIgnoresUnknownTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	n := Union([]*DFA{dfaFor(t, "A", "a")})
	d := Determinize(n, []string{"B"}, "")
	if len(d.Finals()) != 0 {
		t.Errorf("expected no final states, have %v", d.Finals())
	}
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	var b strings.Builder
	if err := dfaFor(t, "Q", `a"`).ToGraphViz(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `label="\""`) || !strings.Contains(b.String(), "doublecircle") {
		t.Errorf("unexpected dot output:\n%s", b.String())
	}
}
