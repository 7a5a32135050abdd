package lr

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/gofront/lr/sparse"
)

// https://www.cs.bgu.ac.il/~comp151/wiki.files/ps6.html#sec-2-7-3

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Compute the closure of an item.
func (ga *LRAnalysis) closure(i Item) *ItemSet {
	S := newItemSet()
	S.Add(i)
	return ga.closureSet(S)
}

// Compute the closure of an item set: for every item A ➞ α•Bβ, add all
// items B ➞ •γ, until no more items are added.
func (ga *LRAnalysis) closureSet(S *ItemSet) *ItemSet {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := C.Item()
		B := item.PeekSymbol() // get symbol B after dot
		if B != nil && !B.IsTerminal() {
			for _, r := range ga.g.RulesFor(B) {
				C.Add(StartItem(r))
			}
		}
	}
	return C
}

func (ga *LRAnalysis) gotoSet(closure *ItemSet, A *Symbol) *ItemSet {
	// for every item in closure C
	// if item in C:  N -> ... *A ...
	//     advance N -> ... A * ...
	gotoset := newItemSet()
	for _, i := range closure.Values() {
		if i.PeekSymbol() == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset
}

func (ga *LRAnalysis) gotoSetClosure(i *ItemSet, A *Symbol) *ItemSet {
	gotoset := ga.gotoSet(i, A)
	gclosure := ga.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", i, A, gclosure)
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     uint     // serial ID of this state
	items  *ItemSet // configuration items within this state
	Accept bool     // is this an accepting state?
}

// CFSM edge between 2 states, directed and with a terminal or non-terminal
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Items returns the items of a state.
func (s *CFSMState) Items() []Item {
	return s.items.Values()
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.items.Values() {
		if i.rule.Serial == 0 && i.PeekSymbol() == nil {
			return true
		}
	}
	return false
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(int(c1.ID), int(c2.ID))
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram, or canonical collection of item sets. Will be
// constructed by a TableGenerator. A state's ID is its index in the
// collection. Clients normally do not use it directly. Nevertheless, there
// are some methods defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
type CFSM struct {
	g       *Grammar                        // this CFSM is for Grammar g
	states  *treeset.Set                    // all the states
	edges   *arraylist.List                 // all the edges between states
	succ    map[uint]map[*Symbol]*CFSMState // edges by source state and label
	S0      *CFSMState                      // start state
	cfsmIds uint                            // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	c.succ = make(map[uint]map[*Symbol]*CFSMState)
	return c
}

// Add a state to the CFSM. Checks first if state is present.
// Returns the state and a flag indicating a new state.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	if s := c.findStateByItems(iset); s != nil {
		return s, false
	}
	s := &CFSMState{ID: c.cfsmIds, items: iset}
	c.cfsmIds++
	s.Accept = s.containsCompletedStartRule()
	c.states.Add(s)
	return s, true
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *ItemSet) *CFSMState {
	it := c.states.Iterator()
	for it.Next() {
		s := it.Value().(*CFSMState)
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) {
	c.edges.Add(&cfsmEdge{from: s0, to: s1, label: sym})
	if c.succ[s0.ID] == nil {
		c.succ[s0.ID] = make(map[*Symbol]*CFSMState)
	}
	c.succ[s0.ID][sym] = s1
}

// Goto returns the state reached from s with symbol A, or nil.
func (c *CFSM) Goto(s *CFSMState, A *Symbol) *CFSMState {
	return c.succ[s.ID][A]
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id uint) *CFSMState {
	x := c.states.Values()
	if int(id) >= len(x) {
		return nil
	}
	return x[id].(*CFSMState)
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	vals := c.states.Values()
	states := make([]*CFSMState, len(vals))
	for i, x := range vals {
		states[i] = x.(*CFSMState)
	}
	return states
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// Construct the characteristic finite state machine CFSM for a grammar.
// States are processed in order of their IDs. For every state, goto-sets are
// computed for the symbols after the dots of the state's items, in item order.
func buildCFSM(ga *LRAnalysis) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := ga.g
	cfsm := emptyCFSM(G)
	if G.AugmentedRoot() == nil {
		tracer().Errorf("grammar %s is not augmented, CFSM is empty", G.Name)
		return cfsm
	}
	closure0 := ga.closure(StartItem(G.rules[0]))
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		var after []*Symbol
		seen := make(map[*Symbol]bool)
		for _, i := range s.items.Values() {
			if A := i.PeekSymbol(); A != nil && !seen[A] {
				seen[A] = true
				after = append(after, A)
			}
		}
		for _, A := range after {
			tracer().Debugf("checking goto-set for symbol = %v", A)
			gotoset := ga.gotoSetClosure(s.items, A)
			if gotoset.Empty() {
				continue
			}
			snew, isnew := cfsm.addState(gotoset)
			if isnew {
				S.Add(snew)
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
		}
		tracer().Debugf("-----------------------------------------------------------------")
	}
	tracer().Infof("CFSM for grammar %s has %d states", G.Name, cfsm.Size())
	return cfsm
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items)))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID,
			graphvizEscape(edge.label.String())))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(iset *ItemSet) string {
	var lines []string
	for _, i := range iset.Values() {
		lines = append(lines, graphvizEscape(i.String()))
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var graphvizReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "<", `\<`, ">", `\>`,
	"{", `\{`, "}", `\}`, "|", `\|`)

func graphvizEscape(s string) string {
	return graphvizReplacer.Replace(s)
}

// === Parser Tables =========================================================

// ActionKind is the kind of a parser table entry.
type ActionKind int8

// Kinds of table entries
const (
	ErrorAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

func (k ActionKind) String() string {
	switch k {
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	}
	return "error"
}

// Entry is an entry of the SLR(1) parser table. For terminals, a ShiftAction
// names the target state to shift to; for non-terminals it is the GOTO
// target after a reduce.
type Entry struct {
	Kind   ActionKind
	Target uint  // target state for shifts
	Rule   *Rule // rule to reduce with
}

func (e Entry) String() string {
	switch e.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", e.Target)
	case ReduceAction:
		return fmt.Sprintf("r%d", e.Rule.Serial)
	case AcceptAction:
		return "acc"
	}
	return "err"
}

// Table is an SLR(1) parser table. Rows are CFSM states, columns are grammar
// symbols. Shift and goto targets are stored as non-negative ints, reduce
// actions as -(rule+3), accept as -2.
type Table struct {
	g      *Grammar
	matrix *sparse.IntMatrix
}

const acceptCode = -2

func newTable(g *Grammar, states int) *Table {
	return &Table{
		g:      g,
		matrix: sparse.NewIntMatrix(states, g.SymbolCount(), sparse.DefaultNullValue),
	}
}

func (t *Table) encode(e Entry) int32 {
	switch e.Kind {
	case ShiftAction:
		return int32(e.Target)
	case ReduceAction:
		return -int32(e.Rule.Serial + 3)
	case AcceptAction:
		return acceptCode
	}
	return t.matrix.NullValue()
}

func (t *Table) decode(v int32) Entry {
	switch {
	case v == t.matrix.NullValue():
		return Entry{}
	case v >= 0:
		return Entry{Kind: ShiftAction, Target: uint(v)}
	case v == acceptCode:
		return Entry{Kind: AcceptAction}
	}
	return Entry{Kind: ReduceAction, Rule: t.g.Rule(int(-v) - 3)}
}

// Entry returns the table entry for a state and a symbol. Missing entries
// are of kind ErrorAction.
func (t *Table) Entry(state uint, A *Symbol) Entry {
	if A == nil {
		return Entry{}
	}
	return t.decode(t.matrix.Value(int(state), A.Value))
}

func (t *Table) set(state uint, A *Symbol, e Entry) {
	t.matrix.Set(int(state), A.Value, t.encode(e))
}

// HasRow is true if there is at least one non-error entry for a state.
func (t *Table) HasRow(state uint) bool {
	return t.matrix.RowHasValues(int(state))
}

// StateCount returns the number of rows of the table.
func (t *Table) StateCount() int {
	return t.matrix.M()
}

// Expected returns the terminals (including EOF) which have a non-error
// entry for a state.
func (t *Table) Expected(state uint) []*Symbol {
	var exp []*Symbol
	t.g.EachSymbol(func(A *Symbol) {
		if A.IsTerminal() && t.Entry(state, A).Kind != ErrorAction {
			exp = append(exp, A)
		}
	})
	return exp
}

// Conflict records a table conflict and how it has been resolved.
type Conflict struct {
	State      uint
	Symbol     *Symbol
	Existing   Entry // entry present in the table
	Incoming   Entry // entry which collided with it
	Resolution Entry // entry kept in the table
}

func (c Conflict) String() string {
	return fmt.Sprintf("state %d, %v: %v/%v conflict, keeping %v", c.State, c.Symbol,
		c.Existing, c.Incoming, c.Resolution)
}

// TableGenerator is a generator object to construct an SLR(1) parser table.
// Clients usually create a Grammar G, then an LRAnalysis-object for G,
// and then a table generator.
//
//     lrgen := NewTableGenerator(ga)
//     lrgen.CreateTables()
//     table := lrgen.Table()
//
// Conflicts are resolved by a fixed policy: shift wins over reduce, the rule
// with the lower serial number wins among reduces, and accept is never
// replaced. Clients may inspect the conflicts with Conflicts().
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	table        *Table
	conflicts    []Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.ga = ga
	lrgen.g = ga.Grammar()
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = buildCFSM(lrgen.ga)
	}
	return lrgen.dfa
}

// Table returns the SLR(1) parser table, or nil if CreateTables has not
// been called.
func (lrgen *TableGenerator) Table() *Table {
	if lrgen.table == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.table
}

// Conflicts returns all conflicts detected during table construction, in
// order of detection.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables creates the necessary data structures for an SLR parser.
// It fails with ErrEmptyGrammar for a grammar without productions.
func (lrgen *TableGenerator) CreateTables() (*Table, error) {
	if err := lrgen.g.Augment(); err != nil {
		tracer().Errorf("cannot create tables for grammar %s: %v", lrgen.g.Name, err)
		return nil, err
	}
	lrgen.CFSM()
	lrgen.table = lrgen.buildSLR1Table()
	return lrgen.table, nil
}

// AcceptingStates returns all states of the CFSM which represent an accept action.
func (lrgen *TableGenerator) AcceptingStates() []uint {
	var acc []uint
	for _, s := range lrgen.CFSM().States() {
		if s.Accept {
			acc = append(acc, s.ID)
		}
	}
	return acc
}

func (lrgen *TableGenerator) buildSLR1Table() *Table {
	dfa := lrgen.dfa
	tracer().Infof("SLR(1) table of size %d x %d", dfa.Size(), lrgen.g.SymbolCount())
	table := newTable(lrgen.g, dfa.Size())
	lrgen.conflicts = nil
	lrgen.HasConflicts = false
	for _, state := range dfa.States() {
		for _, item := range state.Items() {
			A := item.PeekSymbol()
			if A != nil && A.IsTerminal() {
				if to := dfa.Goto(state, A); to != nil {
					lrgen.insert(table, state.ID, A, Entry{Kind: ShiftAction, Target: to.ID})
				}
				continue
			}
			if A != nil {
				continue // goto entries are set below
			}
			r := item.Rule()
			if r.LHS == lrgen.g.AugmentedRoot() {
				lrgen.insert(table, state.ID, EOF, Entry{Kind: AcceptAction})
				continue
			}
			for _, t := range lrgen.ga.Follow(r.LHS).AppendTo(nil) {
				la := lrgen.g.Symbol(t)
				lrgen.insert(table, state.ID, la, Entry{Kind: ReduceAction, Rule: r})
			}
		}
	}
	it := dfa.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if !e.label.IsTerminal() {
			table.set(e.from.ID, e.label, Entry{Kind: ShiftAction, Target: e.to.ID})
		}
	}
	if lrgen.HasConflicts {
		tracer().Infof("SLR(1) table has %d conflicts", len(lrgen.conflicts))
	}
	return table
}

// insert puts an action into the table, resolving conflicts with an
// existing entry.
func (lrgen *TableGenerator) insert(table *Table, state uint, A *Symbol, e Entry) {
	existing := table.Entry(state, A)
	if existing.Kind == ErrorAction {
		table.set(state, A, e)
		return
	}
	if existing == e {
		tracer().Debugf("state %d, %v: duplicate entry %v", state, A, e)
		return
	}
	kept := existing
	switch {
	case existing.Kind == AcceptAction:
	case e.Kind == AcceptAction:
		kept = e
	case existing.Kind == ShiftAction:
	case e.Kind == ShiftAction:
		kept = e
	case existing.Kind == ReduceAction && e.Kind == ReduceAction:
		if e.Rule.Serial < existing.Rule.Serial {
			kept = e
		}
	}
	c := Conflict{State: state, Symbol: A, Existing: existing, Incoming: e, Resolution: kept}
	tracer().Errorf("conflict: %v", c)
	lrgen.conflicts = append(lrgen.conflicts, c)
	lrgen.HasConflicts = true
	if kept != existing {
		table.set(state, A, kept)
	}
}

// TableAsHTML exports the SLR(1) parser table in HTML-format.
func (lrgen *TableGenerator) TableAsHTML(w io.Writer) error {
	if lrgen.table == nil {
		return fmt.Errorf("parser table for %s not yet created", lrgen.g.Name)
	}
	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("SLR(1) table of size = %d<p>", lrgen.table.matrix.ValueCount()))
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	var symvec []*Symbol
	lrgen.g.EachSymbol(func(A *Symbol) {
		b.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(A.String())))
		symvec = append(symvec, A)
	})
	b.WriteString("</tr>\n")
	for _, state := range lrgen.dfa.States() {
		b.WriteString(fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range symvec {
			td := "&nbsp;"
			if e := lrgen.table.Entry(state.ID, A); e.Kind != ErrorAction {
				td = e.String()
			}
			b.WriteString("<td>" + td + "</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
