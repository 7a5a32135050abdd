package automata

import (
	"github.com/npillmayer/gofront/lex/regex"
	"golang.org/x/tools/container/intsets"
)

// FromTree constructs a DFA for a regex tree, using followpos directly.
// Each DFA state is a set of tree positions; the start state is firstpos of
// the tree's root. States containing the end marker position are final.
func FromTree(tree *regex.Tree) *DFA {
	d := NewDFA(tree.Name)
	alphabet := tree.Alphabet()
	ids := make(map[string]int) // position set -> state
	var sets []*intsets.Sparse  // state -> position set
	lookup := func(T *intsets.Sparse) (int, bool) {
		key := T.String()
		if id, ok := ids[key]; ok {
			return id, false
		}
		id := len(sets)
		ids[key] = id
		sets = append(sets, T)
		return id, true
	}
	lookup(tree.Firstpos())
	for s := 0; s < len(sets); s++ { // sets grows while we iterate: worklist
		T := sets[s]
		if T.Has(tree.EndPosition()) {
			d.SetFinal(s, tree.Name)
		}
		for _, a := range alphabet {
			U := &intsets.Sparse{}
			for _, p := range T.AppendTo(nil) {
				if sym, ok := tree.SymbolAt(p); ok && sym == a {
					U.UnionWith(tree.Followpos(p))
				}
			}
			if U.IsEmpty() {
				continue
			}
			u, isnew := lookup(U)
			if isnew {
				tracer().Debugf("new state %d = %s", u, U)
			}
			d.AddTransition(s, a, u)
		}
	}
	tracer().Debugf("direct DFA for %s has %d states", tree.Name, d.Size())
	return d
}
