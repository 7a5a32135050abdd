package automata

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"golang.org/x/tools/container/intsets"
)

// DefaultName is the name of a DFA created by Determinize, if none is given.
const DefaultName = "LEXICAL_ANALYZER"

// Determinize converts an NFA to a DFA by subset construction. If a DFA state
// contains final NFA states for more than one token, the token appearing
// first in priority wins. Tokens not contained in priority are ignored,
// and a DFA state is final only if some token wins.
func Determinize(n *NFA, priority []string, name string) *DFA {
	if name == "" {
		name = DefaultName
	}
	rank := make(map[string]int, len(priority))
	for i, tok := range priority {
		if _, ok := rank[tok]; !ok {
			rank[tok] = i
		}
	}
	d := NewDFA(name)
	alphabet := n.Alphabet()
	ids := make(map[string]int)
	var sets []*intsets.Sparse
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
	start := &intsets.Sparse{}
	start.Insert(Start)
	lookup(n.closure(start))
	for s := 0; s < len(sets); s++ {
		T := sets[s]
		if tok, ok := n.resolve(T, rank); ok {
			d.SetFinal(s, tok)
		}
		for _, a := range alphabet {
			U := n.closure(n.move(T, a))
			if U.IsEmpty() {
				continue
			}
			u, isnew := lookup(U)
			if isnew {
				tracer().Debugf("new DFA state %d = %s", u, U)
			}
			d.AddTransition(s, a, u)
		}
	}
	tracer().Infof("determinized NFA of %d states to DFA of %d states", n.Size(), d.Size())
	return d
}

// closure returns the epsilon closure of a set of NFA states.
func (n *NFA) closure(T *intsets.Sparse) *intsets.Sparse {
	C := &intsets.Sparse{}
	C.Copy(T)
	stack := arraystack.New()
	for _, s := range T.AppendTo(nil) {
		stack.Push(s)
	}
	for !stack.Empty() {
		x, _ := stack.Pop()
		eps, ok := n.Epsilon[x.(int)]
		if !ok {
			continue
		}
		for _, t := range eps.AppendTo(nil) {
			if C.Insert(t) {
				stack.Push(t)
			}
		}
	}
	return C
}

// move returns all states reachable from T by a transition with symbol a.
func (n *NFA) move(T *intsets.Sparse, a string) *intsets.Sparse {
	U := &intsets.Sparse{}
	for _, s := range T.AppendTo(nil) {
		if targets, ok := n.Transitions[s][a]; ok {
			U.UnionWith(targets)
		}
	}
	return U
}

// resolve finds the highest-priority token among the final states in T.
func (n *NFA) resolve(T *intsets.Sparse, rank map[string]int) (string, bool) {
	winner, best := "", -1
	for _, s := range T.AppendTo(nil) {
		tok, ok := n.FinalTokens[s]
		if !ok {
			continue
		}
		r, ok := rank[tok]
		if !ok {
			continue
		}
		if best < 0 || r < best {
			winner, best = tok, r
		}
	}
	if best >= 0 && winner != "" {
		tracer().Debugf("state set %s resolves to token %s", T, winner)
	}
	return winner, best >= 0
}
