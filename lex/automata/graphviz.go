package automata

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ToGraphViz exports a DFA to the Graphviz Dot format.
func (d *DFA) ToGraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [rankdir=LR, splines=true, fontname=Helvetica, fontsize=10];
node [shape=circle, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range d.States() {
		if tag, ok := d.Tag(s); ok {
			fmt.Fprintf(&b, "s%03d [shape=doublecircle fillcolor=lightgray label=\"%d\\n%s\"]\n",
				s, s, dotEscape(tag))
		} else {
			fmt.Fprintf(&b, "s%03d [fillcolor=white label=\"%d\"]\n", s, s)
		}
	}
	for _, s := range d.States() {
		row := d.Transitions[s]
		syms := maps.Keys(row)
		slices.Sort(syms)
		for _, sym := range syms {
			fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", s, row[sym], dotEscape(sym))
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
