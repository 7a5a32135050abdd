package lr

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// S ➞ a S b | ε
func makeBalancedGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Balanced")
	b.LHS("S").T("a").N("S").T("b").End()
	b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// The classic expression grammar of the Dragon Book.
//
//     E ➞ E + T | T
//     T ➞ T * F | F
//     F ➞ ( E ) | id
//
func makeExprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expressions")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lr")
	defer teardown()
	//
	g := makeBalancedGrammar(t)
	g.Dump()
	if g.Size() != 3 {
		t.Fatalf("expected 3 rules including start rule, have %d", g.Size())
	}
	if g.Rule(0).LHS != g.AugmentedRoot() || g.Rule(0).RHS()[0] != g.Root() {
		t.Errorf("expected rule 0 to be the start rule, is %v", g.Rule(0))
	}
	if g.AugmentedRoot().Name != "S'" {
		t.Errorf("expected augmented root S', have %v", g.AugmentedRoot())
	}
	eps := g.Rule(2)
	if !eps.IsEpsilon() || eps.Len() != 0 {
		t.Errorf("expected rule 2 to be an epsilon rule of length 0, is %v", eps)
	}
	if a, ok := g.LookupTerminal("a"); !ok || !a.IsTerminal() {
		t.Errorf("expected terminal a to be present")
	}
	if _, ok := g.LookupNonTerminal("a"); ok {
		t.Errorf("did not expect a non-terminal a")
	}
	if len(g.RulesFor(g.Root())) != 2 {
		t.Errorf("expected 2 rules for S")
	}
}

func TestAugmentIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lr")
	defer teardown()
	//
	g := makeBalancedGrammar(t)
	n, root := g.Size(), g.AugmentedRoot()
	if err := g.Augment(); err != nil {
		t.Fatal(err)
	}
	if g.Size() != n || g.AugmentedRoot() != root {
		t.Errorf("expected second augmentation to change nothing")
	}
	if err := NewGrammar("empty").Augment(); !errors.Is(err, ErrEmptyGrammar) {
		t.Errorf("expected empty grammar to fail augmentation, got %v", err)
	}
}

func TestDuplicateProductions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lr")
	defer teardown()
	//
	g := NewGrammar("G")
	S, a := g.NonTerminal("S"), g.Terminal("a")
	r1 := g.AddProduction(S, a)
	r2 := g.AddProduction(S, a)
	g.AddProduction(S)
	g.AddProduction(S, Epsilon)
	if r1 != r2 || g.Size() != 2 {
		t.Errorf("expected duplicate productions to be ignored, have %d rules", g.Size())
	}
}

func TestFirstFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lr")
	defer teardown()
	//
	g := makeBalancedGrammar(t)
	ga := Analysis(g)
	ga.Dump()
	S := g.Root()
	if first := ga.Names(ga.First(S)); !reflect.DeepEqual(first, []string{"ε", "a"}) {
		t.Errorf("FIRST(S) = %v, expected {ε, a}", first)
	}
	if follow := ga.Names(ga.Follow(S)); !reflect.DeepEqual(follow, []string{"$", "b"}) {
		t.Errorf("FOLLOW(S) = %v, expected {$, b}", follow)
	}
	if !ga.Nullable(S) {
		t.Errorf("expected S to be nullable")
	}
	if Analysis(g) != ga {
		t.Errorf("expected analysis to be cached with the grammar")
	}
}

func TestAnalysisFollowsMutation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Mutable")
	b.LHS("S").T("a").N("A").End()
	b.LHS("A").T("b").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	S, _ := g.LookupNonTerminal("S")
	A, _ := g.LookupNonTerminal("A")
	if first := ga.Names(ga.First(S)); !reflect.DeepEqual(first, []string{"a"}) {
		t.Fatalf("FIRST(S) = %v, expected {a}", first)
	}
	if follow := ga.Names(ga.Follow(A)); !reflect.DeepEqual(follow, []string{"$"}) {
		t.Fatalf("FOLLOW(A) = %v, expected {$}", follow)
	}
	g.AddProduction(S, g.Terminal("c"))
	g.AddProduction(S, A, g.Terminal("d"))
	if first := ga.Names(ga.First(S)); !reflect.DeepEqual(first, []string{"a", "b", "c"}) {
		t.Errorf("after adding rules, FIRST(S) = %v, expected {a, b, c}", first)
	}
	if follow := ga.Names(ga.Follow(A)); !reflect.DeepEqual(follow, []string{"$", "d"}) {
		t.Errorf("after adding rules, FOLLOW(A) = %v, expected {$, d}", follow)
	}
	if first := ga.Names(ga.FirstOf([]*Symbol{A, S})); !reflect.DeepEqual(first, []string{"b"}) {
		t.Errorf("FIRST(A S) = %v, expected {b}", first)
	}
}

func TestFirstFollowExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	ga := Analysis(g)
	for _, name := range []string{"E", "T", "F"} {
		N, _ := g.LookupNonTerminal(name)
		if first := ga.Names(ga.First(N)); !reflect.DeepEqual(first, []string{"(", "id"}) {
			t.Errorf("FIRST(%s) = %v, expected {(, id}", name, first)
		}
	}
	E, _ := g.LookupNonTerminal("E")
	F, _ := g.LookupNonTerminal("F")
	if follow := ga.Names(ga.Follow(E)); !reflect.DeepEqual(follow, []string{"$", "+", ")"}) {
		t.Errorf("FOLLOW(E) = %v", follow)
	}
	if follow := ga.Names(ga.Follow(F)); !reflect.DeepEqual(follow, []string{"$", "+", "*", ")"}) {
		t.Errorf("FOLLOW(F) = %v", follow)
	}
}

func TestReadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lr")
	defer teardown()
	//
	src := `<E> ::= <E> + <T>
<E> ::= <T>

<T> ::= "id"
this is not a production
<T> ::= ( <E> )
<E> ::= <T>
<O> ::= &
`
	var skipped []int
	g, err := ReadGrammar("Expr", strings.NewReader(src), func(lineno int, err error) {
		if !errors.Is(err, ErrMalformedGrammar) {
			t.Errorf("expected diagnostic to wrap ErrMalformedGrammar, is %v", err)
		}
		skipped = append(skipped, lineno)
	})
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if !reflect.DeepEqual(skipped, []int{5}) {
		t.Errorf("expected line 5 to be skipped, skipped %v", skipped)
	}
	if g.Size() != 5 {
		t.Errorf("expected 5 rules, have %d", g.Size())
	}
	if g.Root().Name != "E" {
		t.Errorf("expected root E, have %v", g.Root())
	}
	if _, ok := g.LookupTerminal("id"); !ok {
		t.Errorf("expected quoted terminal id")
	}
	if r := g.Rule(4); !r.IsEpsilon() {
		t.Errorf("expected <O> ::= & to be an epsilon rule, is %v", r)
	}
	if _, err = ReadGrammar("none", strings.NewReader("\n\n"), nil); !errors.Is(err, ErrMalformedGrammar) {
		t.Errorf("expected empty grammar source to fail")
	}
}
