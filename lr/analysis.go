package lr

import (
	"golang.org/x/tools/container/intsets"
)

// LRAnalysis is an object for grammar analysis (compute FIRST and FOLLOW sets).
// Sets hold the serial values of terminals; FIRST sets contain
// Epsilon.Value for nullable symbols.
type LRAnalysis struct {
	g          *Grammar
	first      map[*Symbol]*intsets.Sparse
	follow     map[*Symbol]*intsets.Sparse
	followDone bool
	generation uint // grammar generation the sets have been computed for
}

// Analysis creates an analyser for a grammar, augmenting it first. The
// analysis is cached with the grammar. FIRST and FOLLOW are computed lazily
// and re-computed whenever the grammar has been modified in between.
func Analysis(g *Grammar) *LRAnalysis {
	if err := g.Augment(); err != nil {
		tracer().Errorf("cannot analyse grammar %s: %v", g.Name, err)
	}
	if g.analysis == nil {
		g.analysis = &LRAnalysis{g: g}
	}
	return g.analysis
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// invalidate drops FIRST and FOLLOW if the grammar changed since they
// have been computed.
func (ga *LRAnalysis) invalidate() {
	if ga.generation == ga.g.generation {
		return
	}
	tracer().Debugf("grammar %s modified, dropping FIRST and FOLLOW", ga.g.Name)
	ga.first, ga.follow = nil, nil
	ga.followDone = false
	ga.generation = ga.g.generation
}

// First returns FIRST(A). Clients must not modify the set.
func (ga *LRAnalysis) First(A *Symbol) *intsets.Sparse {
	ga.invalidate()
	if ga.first == nil {
		ga.computeFirst()
	}
	if A.IsTerminal() {
		s := &intsets.Sparse{}
		s.Insert(A.Value)
		return s
	}
	if f, ok := ga.first[A]; ok {
		return f
	}
	return &intsets.Sparse{}
}

// Follow returns FOLLOW(A). Clients must not modify the set.
func (ga *LRAnalysis) Follow(A *Symbol) *intsets.Sparse {
	ga.invalidate()
	if !ga.followDone {
		ga.computeFollow()
	}
	if f, ok := ga.follow[A]; ok {
		return f
	}
	return &intsets.Sparse{}
}

// Nullable is true if A derives the empty word.
func (ga *LRAnalysis) Nullable(A *Symbol) bool {
	return ga.First(A).Has(Epsilon.Value)
}

// FirstOf returns FIRST of a sequence of symbols. It contains Epsilon.Value
// if the sequence is empty or all of its symbols are nullable.
func (ga *LRAnalysis) FirstOf(seq []*Symbol) *intsets.Sparse {
	ga.invalidate()
	if ga.first == nil {
		ga.computeFirst()
	}
	result := &intsets.Sparse{}
	for _, A := range seq {
		var fA *intsets.Sparse
		if A.IsTerminal() {
			fA = &intsets.Sparse{}
			fA.Insert(A.Value)
		} else {
			fA = ga.first[A]
		}
		nullable := fA.Has(Epsilon.Value)
		for _, t := range fA.AppendTo(nil) {
			if t != Epsilon.Value {
				result.Insert(t)
			}
		}
		if !nullable {
			return result
		}
	}
	result.Insert(Epsilon.Value)
	return result
}

// computeFirst iterates until no FIRST set grows any more.
func (ga *LRAnalysis) computeFirst() {
	ga.first = make(map[*Symbol]*intsets.Sparse)
	for _, N := range ga.g.nonterminals {
		ga.first[N] = &intsets.Sparse{}
	}
	changed, rounds := true, 0
	for changed {
		changed = false
		rounds++
		for _, r := range ga.g.rules {
			fr := ga.FirstOf(r.rhs)
			if ga.first[r.LHS].UnionWith(fr) {
				changed = true
			}
		}
	}
	tracer().Debugf("FIRST sets computed in %d rounds", rounds)
}

// computeFollow iterates until no FOLLOW set grows any more. FOLLOW of the
// root and of the augmented root is seeded with EOF.
func (ga *LRAnalysis) computeFollow() {
	if ga.first == nil {
		ga.computeFirst()
	}
	ga.follow = make(map[*Symbol]*intsets.Sparse)
	for _, N := range ga.g.nonterminals {
		ga.follow[N] = &intsets.Sparse{}
	}
	for _, S := range []*Symbol{ga.g.root, ga.g.augmented} {
		if S != nil {
			ga.follow[S].Insert(EOF.Value)
		}
	}
	changed, rounds := true, 0
	for changed {
		changed = false
		rounds++
		for _, r := range ga.g.rules {
			for i, B := range r.rhs {
				if B.IsTerminal() {
					continue
				}
				beta := ga.FirstOf(r.rhs[i+1:])
				for _, t := range beta.AppendTo(nil) {
					if t != Epsilon.Value && ga.follow[B].Insert(t) {
						changed = true
					}
				}
				if beta.Has(Epsilon.Value) && ga.follow[B].UnionWith(ga.follow[r.LHS]) {
					changed = true
				}
			}
		}
	}
	ga.followDone = true
	tracer().Debugf("FOLLOW sets computed in %d rounds", rounds)
}

// Names translates a set of terminal values to terminal names, in
// ascending order of values.
func (ga *LRAnalysis) Names(set *intsets.Sparse) []string {
	var names []string
	for _, v := range set.AppendTo(nil) {
		if A := ga.g.Symbol(v); A != nil {
			names = append(names, A.Name)
		}
	}
	return names
}

// Dump traces FIRST and FOLLOW of all non-terminals.
func (ga *LRAnalysis) Dump() {
	for _, N := range ga.g.nonterminals {
		tracer().Debugf("FIRST(%v) = %v, FOLLOW(%v) = %v", N, ga.Names(ga.First(N)), N, ga.Names(ga.Follow(N)))
	}
}
