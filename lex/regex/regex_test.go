package regex

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var expansions = []struct {
	extended string
	pure     string
}{
	{"[a-c]", "(a|b|c)"},
	{"[ab]x", "(a|b)x"},
	{"x[0-2_]*", "x(0|1|2|_)*"},
	{`[\]\-]`, `(\]|-)`},
	{`\[a`, `\[a`},
	{"[(+]", `(\(|\+)`},
	{"[a-]", "(a|-)"},
}

func TestExpandClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	for i, x := range expansions {
		pure, err := ExpandClasses(x.extended)
		if err != nil {
			t.Fatalf("#%d: %v", i, err)
		}
		if pure != x.pure {
			t.Errorf("#%d: expected %q to expand to %q, is %q", i, x.extended, x.pure, pure)
		}
	}
}

func TestExpandMalformedClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	for _, ext := range []string{"[z-a]", "[a-c-e]", "[abc", "[]"} {
		_, err := ExpandClasses(ext)
		if !errors.Is(err, ErrMalformedClass) {
			t.Errorf("expected %q to fail with malformed class, got %v", ext, err)
		}
	}
}

var trees = []struct {
	pattern string
	tree    string
}{
	{"ab", "(ab)"},
	{"a|bc", "(a|(bc))"},
	{"ab*", "(ab*)"},
	{"(a|b)+c?", "((a|b)+c?)"},
	{`\*\\`, `(*\)`},
	{"a()", "(aε)"},
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	for i, x := range trees {
		n, err := Parse(x.pattern)
		if err != nil {
			t.Fatalf("#%d: %v", i, err)
		}
		if n.String() != x.tree {
			t.Errorf("#%d: expected %q to parse as %s, is %s", i, x.pattern, x.tree, n)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	for _, pattern := range []string{"(ab", `ab\`, "*a", "a|", "|a", "a)", "(|a)", ""} {
		_, err := Parse(pattern)
		if !errors.Is(err, ErrMalformedPattern) {
			t.Errorf("expected %q to be malformed, got %v", pattern, err)
			continue
		}
		var perr *PatternError
		if !errors.As(err, &perr) {
			t.Errorf("expected a PatternError for %q", pattern)
		}
		t.Logf("%v", err)
	}
}

func TestFollowposStar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	tree, err := Compile("A", "a*")
	if err != nil {
		t.Fatal(err)
	}
	tree.Dump()
	star := tree.Pattern().(*Unary)
	if !star.Firstpos().Equals(star.Lastpos()) || star.Firstpos().Len() != 1 || !star.Firstpos().Has(1) {
		t.Errorf("expected firstpos(a*) = lastpos(a*) = {1}, are %s and %s", star.Firstpos(), star.Lastpos())
	}
	if !tree.Followpos(1).Has(1) {
		t.Errorf("expected position of 'a' to follow itself, followpos = %s", tree.Followpos(1))
	}
	if tree.EndPosition() != 2 || !tree.Followpos(1).Has(2) {
		t.Errorf("expected end marker at 2 following 'a'")
	}
	if fp := tree.Firstpos(); !fp.Has(1) || !fp.Has(2) {
		t.Errorf("expected firstpos(root) = {1,2}, is %s", fp)
	}
}

func TestFollowposTextbook(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	// (a|b)*abb from the dragon book, end marker is position 6
	tree, err := Compile("T", "(a|b)*abb")
	if err != nil {
		t.Fatal(err)
	}
	expected := map[int][]int{
		1: {1, 2, 3}, 2: {1, 2, 3}, 3: {4}, 4: {5}, 5: {6}, 6: {},
	}
	for p, fp := range expected {
		got := tree.Followpos(p).AppendTo(nil)
		if len(got) != len(fp) {
			t.Errorf("followpos(%d): expected %v, is %v", p, fp, got)
			continue
		}
		for i := range fp {
			if got[i] != fp[i] {
				t.Errorf("followpos(%d): expected %v, is %v", p, fp, got)
			}
		}
	}
	if sym, _ := tree.SymbolAt(4); sym != "b" {
		t.Errorf("expected symbol at 4 to be 'b', is %q", sym)
	}
	if alpha := tree.Alphabet(); len(alpha) != 2 || alpha[0] != "a" {
		t.Errorf("unexpected alphabet %v", alpha)
	}
}

func TestNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gofront.lex")
	defer teardown()
	//
	for pattern, nullable := range map[string]bool{
		"a*": true, "a+": false, "a?": true, "a|()": true, "ab?": false, "a?b*": true, "(a*)+": true,
	} {
		tree, err := Compile("N", pattern)
		if err != nil {
			t.Fatal(err)
		}
		if NodeInfo(tree.Pattern()) == "" {
			t.Errorf("position functions missing for %q", pattern)
		}
		if got := tree.Pattern().attrs().Nullable(); got != nullable {
			t.Errorf("nullable(%q): expected %v", pattern, nullable)
		}
	}
}
