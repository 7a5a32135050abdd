package automata

import (
	"fmt"

	"github.com/cnf/structhash"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// signature describes where a state's transitions lead to, in terms of the
// blocks of the current partition. Absent transitions lead to block -1.
type signature struct {
	Targets map[string]int
}

func (sig signature) hash() string {
	h, err := structhash.Hash(sig, 1)
	if err != nil { // cannot happen for maps of strings to ints
		panic(fmt.Sprintf("cannot hash state signature: %v", err))
	}
	return h
}

// Minimize returns a minimal DFA accepting the same language as d, with
// final states distinguished by their token names. The start state of the
// result is state 0. d is left unchanged.
func Minimize(d *DFA) *DFA {
	alphabet := d.Alphabet()
	blocks := initialPartition(d)
	for {
		index := blockIndex(blocks)
		refined := make([][]int, 0, len(blocks))
		for _, block := range blocks {
			if len(block) == 1 {
				refined = append(refined, block)
				continue
			}
			var order []string
			groups := make(map[string][]int)
			for _, s := range block {
				sig := signature{Targets: make(map[string]int, len(alphabet))}
				for _, a := range alphabet {
					sig.Targets[a] = -1
					if t, ok := d.Step(s, a); ok {
						sig.Targets[a] = index[t]
					}
				}
				h := sig.hash()
				if _, ok := groups[h]; !ok {
					order = append(order, h)
				}
				groups[h] = append(groups[h], s)
			}
			for _, h := range order {
				refined = append(refined, groups[h])
			}
		}
		tracer().Debugf("partition refined from %d to %d blocks", len(blocks), len(refined))
		if len(refined) == len(blocks) {
			break
		}
		blocks = refined
	}
	return fromPartition(d, blocks)
}

// initialPartition separates non-final states from final ones, and final
// states by token name. Blocks and their members are in ascending order.
func initialPartition(d *DFA) [][]int {
	var nonfinal []int
	byTag := make(map[string][]int)
	for _, s := range d.States() {
		if tag, ok := d.Tag(s); ok {
			byTag[tag] = append(byTag[tag], s)
		} else {
			nonfinal = append(nonfinal, s)
		}
	}
	var blocks [][]int
	if len(nonfinal) > 0 {
		blocks = append(blocks, nonfinal)
	}
	tags := maps.Keys(byTag)
	slices.Sort(tags)
	for _, tag := range tags {
		blocks = append(blocks, byTag[tag])
	}
	return blocks
}

func blockIndex(blocks [][]int) map[int]int {
	index := make(map[int]int)
	for i, block := range blocks {
		for _, s := range block {
			index[s] = i
		}
	}
	return index
}

// fromPartition builds an automaton with one state per block, taking
// transitions from the first member of each block. If the start state did
// not end up in block 0, the two block IDs are swapped.
func fromPartition(d *DFA, blocks [][]int) *DFA {
	index := blockIndex(blocks)
	start := index[Start]
	renumber := func(b int) int {
		switch b {
		case start:
			return Start
		case Start:
			return start
		}
		return b
	}
	m := NewDFA(d.Name)
	for b, block := range blocks {
		rep := block[0]
		id := renumber(b)
		m.addState(id)
		for sym, t := range d.Transitions[rep] {
			m.AddTransition(id, sym, renumber(index[t]))
		}
		if tag, ok := d.Tag(rep); ok {
			m.SetFinal(id, tag)
		}
	}
	tracer().Debugf("minimized DFA %s from %d to %d states", d.Name, d.Size(), m.Size())
	return m
}
