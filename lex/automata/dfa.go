/*
Package automata constructs the finite automata for a lexical analyzer.

Per-rule DFAs are built directly from position-annotated regex syntax trees
(FromTree), without an intermediate NFA. They may be minimized by partition
refinement (Minimize). For a complete lexer, the per-rule DFAs are merged
into a single NFA (Union), which is then determinized with rule priorities
deciding between competing token names (Determinize).

All automata have a fixed start state 0. Automata are build-once artifacts:
after construction, they are read-only and may be shared between goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package automata

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/container/intsets"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gofront.lex'.
func tracer() tracing.Trace {
	return tracing.Select("gofront.lex")
}

// Start is the start state of every automaton.
const Start = 0

// DFA is a deterministic finite automaton over string symbols.
// Every state referenced as a transition target is a key of Transitions.
type DFA struct {
	Name        string                 // default token name for final states
	Transitions map[int]map[string]int // state -> symbol -> state
	Tags        map[int]string         // final state -> token name, if different from Name
	finals      intsets.Sparse
}

// NewDFA creates an empty automaton containing the start state only.
func NewDFA(name string) *DFA {
	d := &DFA{
		Name:        name,
		Transitions: make(map[int]map[string]int),
		Tags:        make(map[int]string),
	}
	d.addState(Start)
	return d
}

func (d *DFA) addState(s int) {
	if _, ok := d.Transitions[s]; !ok {
		d.Transitions[s] = make(map[string]int)
	}
}

// AddTransition adds an edge from --sym--> to. An existing edge for (from, sym)
// is replaced, keeping the automaton deterministic.
func (d *DFA) AddTransition(from int, sym string, to int) {
	d.addState(from)
	d.addState(to)
	d.Transitions[from][sym] = to
}

// SetFinal marks s as a final state. A non-empty tag different from the
// automaton's name is recorded as the token name of s.
func (d *DFA) SetFinal(s int, tag string) {
	d.addState(s)
	d.finals.Insert(s)
	if tag != "" && tag != d.Name {
		d.Tags[s] = tag
	}
}

// IsFinal is true if s is a final state.
func (d *DFA) IsFinal(s int) bool {
	return d.finals.Has(s)
}

// Finals returns the final states in ascending order.
func (d *DFA) Finals() []int {
	return d.finals.AppendTo(nil)
}

// Tag returns the token name of state s. It is false if s is not final.
func (d *DFA) Tag(s int) (string, bool) {
	if !d.IsFinal(s) {
		return "", false
	}
	if t, ok := d.Tags[s]; ok {
		return t, true
	}
	return d.Name, true
}

// Step returns the target of the transition from s with sym.
func (d *DFA) Step(s int, sym string) (int, bool) {
	t, ok := d.Transitions[s][sym]
	return t, ok
}

// Accepts runs the automaton over input, one rune per symbol.
func (d *DFA) Accepts(input string) bool {
	s := Start
	for _, r := range input {
		var ok bool
		if s, ok = d.Step(s, string(r)); !ok {
			return false
		}
	}
	return d.IsFinal(s)
}

// States returns all states in ascending order.
func (d *DFA) States() []int {
	states := maps.Keys(d.Transitions)
	slices.Sort(states)
	return states
}

// Size returns the number of states.
func (d *DFA) Size() int {
	return len(d.Transitions)
}

// Alphabet returns all symbols used on transitions, sorted.
func (d *DFA) Alphabet() []string {
	set := make(map[string]struct{})
	for _, row := range d.Transitions {
		for sym := range row {
			set[sym] = struct{}{}
		}
	}
	alpha := maps.Keys(set)
	slices.Sort(alpha)
	return alpha
}

// Dump is a debugging helper.
func (d *DFA) Dump() {
	tracer().Debugf("--- DFA %s: %d states, finals %s", d.Name, d.Size(), d.finals.String())
	for _, s := range d.States() {
		row := d.Transitions[s]
		syms := maps.Keys(row)
		slices.Sort(syms)
		for _, sym := range syms {
			tracer().Debugf("    %3d --%s--> %d", s, sym, row[sym])
		}
		if tag, ok := d.Tag(s); ok {
			tracer().Debugf("    %3d is final: %s", s, tag)
		}
	}
}
