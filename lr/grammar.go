package lr

import (
	"errors"
	"fmt"
	"strings"
)

// --- Symbols ---------------------------------------------------------------

// SymbolKind discriminates terminals from non-terminals.
type SymbolKind int8

// Kinds of grammar symbols.
const (
	TerminalKind SymbolKind = iota
	NonTerminalKind
)

// Symbol is a grammar symbol. Symbols are interned per grammar: two symbols
// of a grammar are equal if and only if they are the same pointer, which is
// the case if they have the same kind and name.
type Symbol struct {
	Name  string
	Value int // serial number, unique within a grammar
	kind  SymbolKind
}

// Sentinel terminals, shared by all grammars.
var (
	Epsilon = &Symbol{Name: "ε", Value: 0, kind: TerminalKind}
	EOF     = &Symbol{Name: "$", Value: 1, kind: TerminalKind}
)

// IsTerminal is true for terminals, including Epsilon and EOF.
func (A *Symbol) IsTerminal() bool {
	return A.kind == TerminalKind
}

// IsEpsilon is true for the Epsilon sentinel.
func (A *Symbol) IsEpsilon() bool {
	return A == Epsilon
}

// String renders non-terminals as <Name>.
func (A *Symbol) String() string {
	if A.IsTerminal() {
		return A.Name
	}
	return "<" + A.Name + ">"
}

// --- Rules -----------------------------------------------------------------

// Rule is a grammar production. The right hand side of an epsilon rule is
// the single symbol Epsilon.
type Rule struct {
	Serial int     // order number of this rule within a grammar
	LHS    *Symbol // symbols of left hand side
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// IsEpsilon is true for rules deriving the empty word only.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 1 && r.rhs[0] == Epsilon
}

// Len returns the number of symbols a reduction of r pops, i.e. 0 for
// epsilon rules.
func (r *Rule) Len() int {
	if r.IsEpsilon() {
		return 0
	}
	return len(r.rhs)
}

func (r *Rule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ➞", r.LHS)
	for _, A := range r.rhs {
		b.WriteString(" ")
		b.WriteString(A.String())
	}
	return b.String()
}

func (r *Rule) sameAs(lhs *Symbol, rhs []*Symbol) bool {
	if r.LHS != lhs || len(r.rhs) != len(rhs) {
		return false
	}
	for i, A := range rhs {
		if r.rhs[i] != A {
			return false
		}
	}
	return true
}

// --- Grammars --------------------------------------------------------------

// Grammar is a context-free grammar. The head of the first production added
// is the grammar's root. Grammars are mutable until they are analysed; any
// mutation invalidates previous analysis results.
type Grammar struct {
	Name         string
	rules        []*Rule
	symbols      []*Symbol // by serial value
	terminals    []*Symbol // insertion order, without ε and $
	nonterminals []*Symbol // insertion order
	byName       map[SymbolKind]map[string]*Symbol
	root         *Symbol
	augmented    *Symbol
	analysis     *LRAnalysis // cached analysis
	generation   uint        // incremented on every mutation
}

// NewGrammar creates an empty grammar.
func NewGrammar(name string) *Grammar {
	g := &Grammar{
		Name:    name,
		symbols: []*Symbol{Epsilon, EOF},
		byName: map[SymbolKind]map[string]*Symbol{
			TerminalKind:    {Epsilon.Name: Epsilon, EOF.Name: EOF},
			NonTerminalKind: {},
		},
	}
	return g
}

func (g *Grammar) intern(name string, kind SymbolKind) *Symbol {
	if A, ok := g.byName[kind][name]; ok {
		return A
	}
	A := &Symbol{Name: name, Value: len(g.symbols), kind: kind}
	g.symbols = append(g.symbols, A)
	g.byName[kind][name] = A
	if kind == TerminalKind {
		g.terminals = append(g.terminals, A)
	} else {
		g.nonterminals = append(g.nonterminals, A)
	}
	g.generation++
	return A
}

// Terminal returns the terminal called name, creating it if necessary.
// Names "ε" and "$" denote the sentinels Epsilon and EOF.
func (g *Grammar) Terminal(name string) *Symbol {
	return g.intern(name, TerminalKind)
}

// NonTerminal returns the non-terminal called name, creating it if necessary.
func (g *Grammar) NonTerminal(name string) *Symbol {
	return g.intern(name, NonTerminalKind)
}

// LookupTerminal finds a terminal by name, without creating it.
func (g *Grammar) LookupTerminal(name string) (*Symbol, bool) {
	A, ok := g.byName[TerminalKind][name]
	return A, ok
}

// LookupNonTerminal finds a non-terminal by name, without creating it.
func (g *Grammar) LookupNonTerminal(name string) (*Symbol, bool) {
	A, ok := g.byName[NonTerminalKind][name]
	return A, ok
}

// AddProduction appends a rule head ➞ body. An empty body, or a body of
// epsilons only, makes an epsilon rule; epsilons within longer bodies are
// dropped. Adding a production already present returns the existing rule.
func (g *Grammar) AddProduction(head *Symbol, body ...*Symbol) *Rule {
	if head.IsTerminal() {
		panic(fmt.Sprintf("terminal %v cannot be head of a production", head))
	}
	rhs := make([]*Symbol, 0, len(body))
	for _, A := range body {
		if A != Epsilon {
			rhs = append(rhs, A)
		}
	}
	if len(rhs) == 0 {
		rhs = append(rhs, Epsilon)
	}
	for _, r := range g.rules {
		if r.sameAs(head, rhs) {
			tracer().Debugf("ignoring duplicate production %v", r)
			return r
		}
	}
	if g.root == nil {
		g.root = head
	}
	r := &Rule{Serial: len(g.rules), LHS: head, rhs: rhs}
	g.rules = append(g.rules, r)
	g.generation++
	return r
}

// ErrEmptyGrammar is returned when augmenting a grammar without productions.
var ErrEmptyGrammar = errors.New("grammar has no productions")

// Augment adds a new root production S' ➞ S, where S is the grammar's root,
// as rule 0. All other rules are re-numbered. Augment is idempotent.
func (g *Grammar) Augment() error {
	if g.augmented != nil {
		return nil
	}
	if g.root == nil {
		return ErrEmptyGrammar
	}
	name := g.root.Name + "'"
	for {
		if _, exists := g.LookupNonTerminal(name); !exists {
			break
		}
		name += "'"
	}
	g.augmented = g.NonTerminal(name)
	start := &Rule{LHS: g.augmented, rhs: []*Symbol{g.root}}
	g.rules = append([]*Rule{start}, g.rules...)
	for i, r := range g.rules {
		r.Serial = i
	}
	g.generation++
	tracer().Debugf("grammar %s augmented with %v", g.Name, start)
	return nil
}

// Root returns the head of the first production.
func (g *Grammar) Root() *Symbol {
	return g.root
}

// AugmentedRoot returns the root of the augmented grammar, or nil if the
// grammar has not been augmented.
func (g *Grammar) AugmentedRoot() *Symbol {
	return g.augmented
}

// Rule returns the grammar rule with a given serial number.
func (g *Grammar) Rule(serial int) *Rule {
	if serial < 0 || serial >= len(g.rules) {
		return nil
	}
	return g.rules[serial]
}

// Rules returns all rules in serial order.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// RulesFor returns the rules for non-terminal N, in serial order.
func (g *Grammar) RulesFor(N *Symbol) []*Rule {
	var R []*Rule
	for _, r := range g.rules {
		if r.LHS == N {
			R = append(R, r)
		}
	}
	return R
}

// Symbol returns the symbol with a given serial value.
func (g *Grammar) Symbol(value int) *Symbol {
	if value < 0 || value >= len(g.symbols) {
		return nil
	}
	return g.symbols[value]
}

// SymbolCount returns the number of symbol values in use, including the sentinels.
func (g *Grammar) SymbolCount() int {
	return len(g.symbols)
}

// Terminals returns the terminals in order of their first occurrence,
// excluding Epsilon and EOF.
func (g *Grammar) Terminals() []*Symbol {
	return append([]*Symbol(nil), g.terminals...)
}

// NonTerminals returns the non-terminals in order of their first occurrence.
func (g *Grammar) NonTerminals() []*Symbol {
	return append([]*Symbol(nil), g.nonterminals...)
}

// EachSymbol iterates over terminals, EOF and non-terminals, in this order.
func (g *Grammar) EachSymbol(f func(A *Symbol)) {
	for _, A := range g.terminals {
		f(A)
	}
	f(EOF)
	for _, A := range g.nonterminals {
		f(A)
	}
}

// Dump is a debugging helper, tracing all rules.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ----------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %v", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------")
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Use it as
//
//     b := lr.NewGrammarBuilder("G")
//     b.LHS("S").T("a").N("S").T("b").End()   // S ➞ a S b
//     b.LHS("S").Epsilon()                    // S ➞ ε
//     g, err := b.Grammar()
//
type GrammarBuilder struct {
	g   *Grammar
	lhs *Symbol
	rhs []*Symbol
}

// NewGrammarBuilder creates a builder for a grammar.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{g: NewGrammar(name)}
}

// LHS starts a new rule with non-terminal s as its left hand side.
func (b *GrammarBuilder) LHS(s string) *GrammarBuilder {
	b.lhs = b.g.NonTerminal(s)
	b.rhs = nil
	return b
}

// N appends a non-terminal to the current rule.
func (b *GrammarBuilder) N(s string) *GrammarBuilder {
	b.rhs = append(b.rhs, b.g.NonTerminal(s))
	return b
}

// T appends a terminal to the current rule.
func (b *GrammarBuilder) T(s string) *GrammarBuilder {
	b.rhs = append(b.rhs, b.g.Terminal(s))
	return b
}

// End completes the current rule.
func (b *GrammarBuilder) End() *Rule {
	if b.lhs == nil {
		panic("grammar builder: rule without LHS")
	}
	r := b.g.AddProduction(b.lhs, b.rhs...)
	b.lhs, b.rhs = nil, nil
	return r
}

// Epsilon completes the current rule as an epsilon rule.
func (b *GrammarBuilder) Epsilon() *Rule {
	b.rhs = nil
	return b.End()
}

// Grammar returns the grammar, augmented.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if err := b.g.Augment(); err != nil {
		return nil, err
	}
	return b.g, nil
}
