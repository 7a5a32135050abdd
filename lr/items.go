package lr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gofront/lr/iteratable"
)

// Item is an LR(0) item, i.e. a rule with a dot marking the parse progress.
// Items are values and compare structurally. Since grammars do not contain
// duplicate rules, equal rules are identical rule pointers.
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the item for rule r with the dot at the leftmost position.
func StartItem(r *Rule) Item {
	return Item{rule: r}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or nil if the dot is at the
// end of the rule. Epsilon rules have no symbol after the dot.
func (i Item) PeekSymbol() *Symbol {
	if i.rule.IsEpsilon() || i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// IsComplete is true if the dot is behind the rule's right hand side.
// Epsilon items are always complete.
func (i Item) IsComplete() bool {
	return i.PeekSymbol() == nil
}

// Advance returns the item with the dot moved one symbol to the right.
// It panics for complete items, except for epsilon items.
func (i Item) Advance() Item {
	if i.IsComplete() && !i.rule.IsEpsilon() {
		panic(fmt.Sprintf("cannot advance complete item %v", i))
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the symbols in front of the dot.
func (i Item) Prefix() []*Symbol {
	if i.rule.IsEpsilon() {
		return nil
	}
	return i.rule.rhs[:i.dot]
}

func (i Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%v ➞", i.rule.LHS)
	for k, A := range i.rule.rhs {
		if k == i.dot && !i.rule.IsEpsilon() {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.String())
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	b.WriteString("]")
	return b.String()
}

// ItemSet is the type of LR(0) item sets.
type ItemSet = iteratable.Set[Item]

func newItemSet() *ItemSet {
	return iteratable.NewSet[Item](8)
}

// Dump is a debugging helper, tracing the items of a set.
func Dump(iset *ItemSet) {
	for _, i := range iset.Values() {
		tracer().Debugf("    %v", i)
	}
}
