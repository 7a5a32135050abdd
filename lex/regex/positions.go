package regex

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/container/intsets"
)

// Tree is the syntax tree for a rule's pattern, augmented by an end marker and
// annotated with position functions. Trees are immutable once created.
type Tree struct {
	Name      string                  // rule name
	Root      Node                    // concatenation of the pattern and the end marker
	followpos map[int]*intsets.Sparse // position -> set of positions
	symbols   map[int]string          // position -> input symbol, without end marker
	end       int                     // position of the end marker
}

// NewTree wraps a pattern's syntax tree sub as (sub #), numbers its leaves and
// computes the position functions. The nodes of sub become owned by the tree.
func NewTree(name string, sub Node) *Tree {
	t := &Tree{
		Name:      name,
		followpos: make(map[int]*intsets.Sparse),
		symbols:   make(map[int]string),
	}
	t.Root = &Binary{Op: Concat, Left: sub, Right: &Leaf{Kind: EndLeaf}}
	pb := positionBuilder{tree: t}
	pb.number(t.Root)
	pb.compute(t.Root)
	tracer().Debugf("tree %s: %s, %d positions", name, t.Root, pb.count)
	return t
}

// positionBuilder owns the leaf counter for one tree construction.
type positionBuilder struct {
	tree  *Tree
	count int
}

// number assigns positions to leaves, left to right.
func (pb *positionBuilder) number(n Node) {
	switch n := n.(type) {
	case *Leaf:
		if n.Kind == EpsilonLeaf {
			return
		}
		pb.count++
		n.Pos = pb.count
		pb.tree.followpos[n.Pos] = &intsets.Sparse{}
		if n.Kind == EndLeaf {
			pb.tree.end = n.Pos
		} else {
			pb.tree.symbols[n.Pos] = n.Symbol
		}
	case *Binary:
		pb.number(n.Left)
		pb.number(n.Right)
	case *Unary:
		pb.number(n.Child)
	}
}

// compute calculates nullable, firstpos and lastpos bottom-up and accumulates
// followpos on the way.
func (pb *positionBuilder) compute(n Node) {
	a := n.attrs()
	a.firstpos, a.lastpos = &intsets.Sparse{}, &intsets.Sparse{}
	switch n := n.(type) {
	case *Leaf:
		if n.Kind != EpsilonLeaf {
			a.firstpos.Insert(n.Pos)
			a.lastpos.Insert(n.Pos)
		}
		a.nullable = n.Kind == EpsilonLeaf
	case *Binary:
		pb.compute(n.Left)
		pb.compute(n.Right)
		l, r := n.Left.attrs(), n.Right.attrs()
		if n.Op == Alt {
			a.nullable = l.nullable || r.nullable
			a.firstpos.Union(l.firstpos, r.firstpos)
			a.lastpos.Union(l.lastpos, r.lastpos)
			return
		}
		a.nullable = l.nullable && r.nullable
		a.firstpos.Copy(l.firstpos)
		if l.nullable {
			a.firstpos.UnionWith(r.firstpos)
		}
		a.lastpos.Copy(r.lastpos)
		if r.nullable {
			a.lastpos.UnionWith(l.lastpos)
		}
		pb.follow(l.lastpos, r.firstpos)
	case *Unary:
		pb.compute(n.Child)
		c := n.Child.attrs()
		a.firstpos.Copy(c.firstpos)
		a.lastpos.Copy(c.lastpos)
		a.nullable = n.Op != Plus || c.nullable
		if n.Op != Opt {
			pb.follow(c.lastpos, c.firstpos)
		}
	}
}

// follow adds every position in to to followpos(p) for each p in from.
func (pb *positionBuilder) follow(from, to *intsets.Sparse) {
	for _, p := range from.AppendTo(nil) {
		pb.tree.followpos[p].UnionWith(to)
	}
}

// Followpos returns the followpos set of position p. Clients must not modify it.
func (t *Tree) Followpos(p int) *intsets.Sparse {
	if fp, ok := t.followpos[p]; ok {
		return fp
	}
	return &intsets.Sparse{}
}

// SymbolAt returns the input symbol at position p. The end marker position has no symbol.
func (t *Tree) SymbolAt(p int) (string, bool) {
	s, ok := t.symbols[p]
	return s, ok
}

// EndPosition returns the position of the end marker.
func (t *Tree) EndPosition() int {
	return t.end
}

// Positions returns the number of numbered leaves, including the end marker.
func (t *Tree) Positions() int {
	return len(t.followpos)
}

// Firstpos returns firstpos of the tree's root.
func (t *Tree) Firstpos() *intsets.Sparse {
	return t.Root.attrs().firstpos
}

// Lastpos returns lastpos of the tree's root.
func (t *Tree) Lastpos() *intsets.Sparse {
	return t.Root.attrs().lastpos
}

// Pattern returns the user part of the tree, i.e. the tree without the end marker.
func (t *Tree) Pattern() Node {
	return t.Root.(*Binary).Left
}

// Alphabet returns the input symbols of the tree, sorted.
func (t *Tree) Alphabet() []string {
	set := make(map[string]struct{}, len(t.symbols))
	for _, s := range t.symbols {
		set[s] = struct{}{}
	}
	alpha := maps.Keys(set)
	slices.Sort(alpha)
	return alpha
}

// Dump is a debugging helper, tracing the followpos table.
func (t *Tree) Dump() {
	tracer().Debugf("--- tree %s ---------------", t.Name)
	for p := 1; p <= t.Positions(); p++ {
		sym, ok := t.SymbolAt(p)
		if !ok {
			sym = EndMarker
		}
		tracer().Debugf("%3d %-3s followpos = %s", p, sym, t.Followpos(p))
	}
	tracer().Debugf("---------------------------")
}

// NodeInfo describes position functions of a node, for display purposes.
func NodeInfo(n Node) string {
	a := n.attrs()
	if a.firstpos == nil {
		return ""
	}
	return fmt.Sprintf("nullable=%v firstpos=%s lastpos=%s", a.nullable, a.firstpos, a.lastpos)
}
