package automata

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/container/intsets"
)

// NFA is a nondeterministic automaton with epsilon edges. Final states carry
// the name of the token they recognize.
type NFA struct {
	Transitions map[int]map[string]*intsets.Sparse // state -> symbol -> states
	Epsilon     map[int]*intsets.Sparse            // state -> states
	FinalTokens map[int]string                     // final state -> token name
	alphabet    map[string]struct{}
}

// NewNFA creates an NFA containing the start state only.
func NewNFA() *NFA {
	n := &NFA{
		Transitions: make(map[int]map[string]*intsets.Sparse),
		Epsilon:     make(map[int]*intsets.Sparse),
		FinalTokens: make(map[int]string),
		alphabet:    make(map[string]struct{}),
	}
	n.addState(Start)
	return n
}

func (n *NFA) addState(s int) {
	if _, ok := n.Transitions[s]; !ok {
		n.Transitions[s] = make(map[string]*intsets.Sparse)
	}
}

// AddTransition adds an edge from --sym--> to.
func (n *NFA) AddTransition(from int, sym string, to int) {
	n.addState(from)
	n.addState(to)
	targets, ok := n.Transitions[from][sym]
	if !ok {
		targets = &intsets.Sparse{}
		n.Transitions[from][sym] = targets
	}
	targets.Insert(to)
	n.alphabet[sym] = struct{}{}
}

// AddEpsilon adds an epsilon edge from --ε--> to.
func (n *NFA) AddEpsilon(from, to int) {
	n.addState(from)
	n.addState(to)
	targets, ok := n.Epsilon[from]
	if !ok {
		targets = &intsets.Sparse{}
		n.Epsilon[from] = targets
	}
	targets.Insert(to)
}

// AddFinal marks s as final for token. The first token set for a state is kept.
func (n *NFA) AddFinal(s int, token string) {
	n.addState(s)
	if _, ok := n.FinalTokens[s]; !ok {
		n.FinalTokens[s] = token
	}
}

// Alphabet returns the symbols of all non-epsilon transitions, sorted.
func (n *NFA) Alphabet() []string {
	alpha := maps.Keys(n.alphabet)
	slices.Sort(alpha)
	return alpha
}

// Size returns the number of states.
func (n *NFA) Size() int {
	return len(n.Transitions)
}

// Union merges DFAs into one NFA. A fresh start state 0 has epsilon edges to
// the (offset) start states of all DFAs. The states of every DFA are shifted
// by an offset, beginning at 1 and growing by the DFA's largest state ID plus
// one, so that no two DFAs share a state. Final states are tagged with the
// token names of their DFA.
func Union(dfas []*DFA) *NFA {
	n := NewNFA()
	offset := 1
	for _, d := range dfas {
		n.AddEpsilon(Start, offset+Start)
		maxID := 0
		for _, s := range d.States() {
			if s > maxID {
				maxID = s
			}
			n.addState(s + offset)
			for sym, t := range d.Transitions[s] {
				n.AddTransition(s+offset, sym, t+offset)
			}
		}
		for _, s := range d.Finals() {
			tag, _ := d.Tag(s)
			n.AddFinal(s+offset, tag)
		}
		tracer().Debugf("DFA %s placed at offset %d", d.Name, offset)
		offset += maxID + 1
	}
	return n
}
