package lex

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/gofront/lex/automata"
	"github.com/npillmayer/gofront/lex/regex"
	"github.com/npillmayer/schuko/gconf"
)

// Default tags for special tokens.
const (
	DefaultWhitespaceTag = "ws"
	DefaultErrorTag      = "ERROR"
)

// Lexer is a compiled lexical analyzer. It is immutable and may be used by
// more than one goroutine at a time.
type Lexer struct {
	dfa      *automata.DFA
	rules    []Rule
	name     string
	ws       string
	errTag   string
	parallel bool
}

// Option configures a lexer at compile time.
type Option func(*Lexer)

// Parallel sets or clears parallel compilation of rules. The default is
// taken from configuration key "lexer-parallel".
func Parallel(b bool) Option {
	return func(lx *Lexer) {
		lx.parallel = b
	}
}

// WhitespaceTag sets the name of the rule whose tokens are dropped.
func WhitespaceTag(tag string) Option {
	return func(lx *Lexer) {
		lx.ws = tag
	}
}

// ErrorTag sets the tag of tokens for unrecognized characters.
func ErrorTag(tag string) Option {
	return func(lx *Lexer) {
		lx.errTag = tag
	}
}

// Name sets the name of the lexer's DFA.
func Name(name string) Option {
	return func(lx *Lexer) {
		lx.name = name
	}
}

// ErrNoRules is returned when compiling an empty set of rules.
var ErrNoRules = errors.New("no token rules")

// Compile compiles token rules into a lexer. Rules are ranked by their
// priority, then by their position in rules. A malformed pattern aborts
// compilation; the error of the first failing rule is returned.
func Compile(rules []Rule, opts ...Option) (*Lexer, error) {
	lx := &Lexer{
		name:     automata.DefaultName,
		ws:       DefaultWhitespaceTag,
		errTag:   DefaultErrorTag,
		parallel: gconf.GetBool("lexer-parallel"),
	}
	for _, opt := range opts {
		opt(lx)
	}
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	lx.rules = append([]Rule(nil), rules...)
	sort.SliceStable(lx.rules, func(i, j int) bool {
		return lx.rules[i].Priority < lx.rules[j].Priority
	})
	dfas, err := lx.compileRules()
	if err != nil {
		return nil, err
	}
	priority := make([]string, len(lx.rules))
	for i, r := range lx.rules {
		priority[i] = r.Name
	}
	nfa := automata.Union(dfas)
	lx.dfa = automata.Minimize(automata.Determinize(nfa, priority, lx.name))
	tracer().Infof("lexer %s compiled from %d rules, DFA has %d states", lx.name, len(lx.rules), lx.dfa.Size())
	return lx, nil
}

// compileRules runs the per-rule pipeline pattern ⇒ tree ⇒ DFA ⇒ minimal DFA
// for every rule, either sequentially or with one goroutine per rule.
func (lx *Lexer) compileRules() ([]*automata.DFA, error) {
	dfas := make([]*automata.DFA, len(lx.rules))
	errs := make([]error, len(lx.rules))
	if lx.parallel {
		var wg sync.WaitGroup
		for i := range lx.rules {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				dfas[i], errs[i] = compileRule(lx.rules[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i := range lx.rules {
			if dfas[i], errs[i] = compileRule(lx.rules[i]); errs[i] != nil {
				break
			}
		}
	}
	for i, err := range errs {
		if err != nil {
			tracer().Errorf("rule %s: %v", lx.rules[i].Name, err)
			return nil, fmt.Errorf("rule %s: %w", lx.rules[i].Name, err)
		}
	}
	return dfas, nil
}

func compileRule(rule Rule) (*automata.DFA, error) {
	tree, err := regex.Compile(rule.Name, rule.Pattern)
	if err != nil {
		return nil, err
	}
	return automata.Minimize(automata.FromTree(tree)), nil
}

// DFA returns the lexer's automaton.
func (lx *Lexer) DFA() *automata.DFA {
	return lx.dfa
}

// Rules returns the lexer's rules in priority order.
func (lx *Lexer) Rules() []Rule {
	return append([]Rule(nil), lx.rules...)
}
