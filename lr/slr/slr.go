/*
Package slr provides an SLR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse table. The SLR parser
utilizes this table to create a right derivation for a given input,
provided through a scanner interface.

This parser is intended for small to moderate grammars, e.g. for configuration
input or small domain-specific languages. It is *not* intended for full-fledged
programming languages.

Clients are able to construct the parse table from a grammar and use the
parser directly, without a code-generation or compile step. If you want, you
can create a grammar from user input and use a parser for it in a couple of
lines of code.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()  // Var  ➞ Sign a
	b.LHS("Sign").T("+").End()           // Sign ➞ +
	b.LHS("Sign").T("-").End()           // Sign ➞ -
	b.LHS("Sign").Epsilon()              // Sign ➞ ε
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	table, err := lrgen.CreateTables()
	if lrgen.HasConflicts { ... }  // conflicts have been resolved, check if acceptable

Finally parse some input:

	p := slr.NewParser(g, table)
	accepted, err := p.ParseTokens([]gofront.Token{
		gofront.MakeToken("+", ""),
		gofront.MakeToken("a", ""),
	})

Tokens are classified as terminals by their type, i.e. the first component
of a token. Syntax errors halt the parser, there is no error recovery.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/gofront"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/gofront/lr"
	"github.com/npillmayer/gofront/lr/scanner"
)

// tracer traces with key 'gofront.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gofront.lr")
}

// Parser is an SLR(1)-parser type. Create and initialize one with slr.NewParser(...).
// The table of a parser may be shared between parsers, but a single parser
// must not be used by concurrent goroutines.
type Parser struct {
	G          *lr.Grammar
	table      ActionTable
	derive     bool
	onReduce   ReduceListener
	derivation []*lr.Rule
}

// ActionTable is the table driving a parser. It is implemented by *lr.Table.
type ActionTable interface {
	Entry(state uint, A *lr.Symbol) lr.Entry
	Expected(state uint) []*lr.Symbol
}

var _ ActionTable = (*lr.Table)(nil)

// We store triplets of state-IDs, symbols and spans on the parse stack.
type stackitem struct {
	stateID uint         // ID of a CFSM state
	sym     *lr.Symbol   // grammar symbol (terminal or non-terminal)
	span    gofront.Span // input span over which this symbol reaches
}

// ReduceListener is called for every reduce action, with the rule reduced
// and the span of the handle.
type ReduceListener func(rule *lr.Rule, span gofront.Span)

// Option configures a parser.
type Option func(*Parser)

// RecordDerivation tells the parser to record the rules reduced. After a
// parse, the derivation is available with Derivation.
func RecordDerivation(b bool) Option {
	return func(p *Parser) {
		p.derive = b
	}
}

// OnReduce sets a listener for reduce actions.
func OnReduce(listener ReduceListener) Option {
	return func(p *Parser) {
		p.onReduce = listener
	}
}

// NewParser creates an SLR(1) parser.
func NewParser(g *lr.Grammar, table ActionTable, opts ...Option) *Parser {
	if t, ok := table.(*lr.Table); ok && t == nil {
		table = nil
	}
	parser := &Parser{
		G:     g,
		table: table,
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// SyntaxError is returned for an unexpected token.
type SyntaxError struct {
	State    uint          // state of the parser
	Token    gofront.Token // unexpected token
	Expected []*lr.Symbol  // terminals with a table entry for State
}

func (e *SyntaxError) Error() string {
	var exp []string
	for _, A := range e.Expected {
		exp = append(exp, A.Name)
	}
	pos := ""
	if e.Token.Line > 0 {
		pos = fmt.Sprintf(" at line %d%v", e.Token.Line, e.Token.Span)
	}
	return fmt.Sprintf("syntax error: unexpected token %v%s in state %d, expected one of [%s]",
		e.Token, pos, e.State, strings.Join(exp, " "))
}

// ErrInternal is returned if the parse table is inconsistent, i.e. if there
// is no goto entry after a reduce. If configuration flag
// 'panic-on-internal-error' is set, the parser panics instead.
var ErrInternal = errors.New("SLR(1) table inconsistency")

// ErrNotInitialized is returned by parsers without grammar or table.
var ErrNotInitialized = errors.New("SLR(1)-parser not initialized")

// ParseTokens parses a slice of tokens. An end-of-input token is appended
// implicitly.
func (p *Parser) ParseTokens(tokens []gofront.Token) (bool, error) {
	return p.Parse(scanner.FromSlice(tokens))
}

// Parse starts a new parse, given a scanner tokenizing the input.
// The parser must have been initialized.
//
// The parser returns true if the input string has been accepted.
func (p *Parser) Parse(scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.table == nil {
		tracer().Errorf("SLR(1)-parser not initialized")
		return false, ErrNotInitialized
	}
	p.derivation = nil
	stack := arraystack.New()
	stack.Push(stackitem{stateID: 0}) // start state
	// http://www.cse.unt.edu/~sweany/CSCE3650/HANDOUTS/LRParseAlg.pdf
	token := scan.NextToken()
	for {
		tos := top(stack)
		A := p.terminal(token)
		action := p.table.Entry(tos.stateID, A)
		tracer().Debugf("action(%d, %v) = %v", tos.stateID, token, action)
		switch action.Kind {
		case lr.AcceptAction:
			tracer().Infof("accept")
			return true, nil
		case lr.ShiftAction:
			tracer().Debugf("shifting, next state = %d", action.Target)
			stack.Push(stackitem{action.Target, A, token.Span}) // push a terminal state
			token = scan.NextToken()
		case lr.ReduceAction:
			if err := p.reduce(stack, action.Rule, token); err != nil {
				return false, err
			}
		default: // no action found
			err := &SyntaxError{State: tos.stateID, Token: token, Expected: p.table.Expected(tos.stateID)}
			tracer().Errorf(err.Error())
			return false, err
		}
	}
}

// terminal classifies a token by its type. The end-of-input token and
// tokens of type "$" map to EOF. Tokens of unknown type map to nil, which
// never has a table entry.
func (p *Parser) terminal(token gofront.Token) *lr.Symbol {
	if token.IsEOF() || token.Type() == gofront.EOFType {
		return lr.EOF
	}
	A, ok := p.G.LookupTerminal(token.Type())
	if !ok {
		tracer().Debugf("token type %q is not a terminal of %s", token.Type(), p.G.Name)
		return nil
	}
	return A
}

// reduce performs a reduce action for a rule
//
//    LHS ➞ X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
// Epsilon rules pop nothing.
func (p *Parser) reduce(stack *arraystack.Stack, rule *lr.Rule, lookahead gofront.Token) error {
	tracer().Infof("reduce %v", rule)
	var handlespan gofront.Span
	for _, sym := range reverse(rule.RHS()[:rule.Len()]) {
		v, _ := stack.Pop()
		item := v.(stackitem)
		if item.sym != sym {
			tracer().Errorf("expected %v on top of stack, got %v", sym, item.sym)
		}
		handlespan = handlespan.Extend(item.span)
	}
	if handlespan.IsNull() { // resulted from an epsilon production
		pos := lookahead.Span.From()
		handlespan = gofront.Span{pos, pos} // epsilon was just before lookahead
	}
	if p.derive {
		p.derivation = append(p.derivation, rule)
	}
	if p.onReduce != nil {
		p.onReduce(rule, handlespan)
	}
	state := top(stack)
	next := p.table.Entry(state.stateID, rule.LHS)
	if next.Kind != lr.ShiftAction {
		return internalError(fmt.Errorf("%w: no goto for %v in state %d", ErrInternal, rule.LHS, state.stateID))
	}
	tracer().Debugf("reduced to next state = %d", next.Target)
	stack.Push(stackitem{next.Target, rule.LHS, handlespan}) // push a non-terminal state
	return nil
}

// Derivation returns the rules reduced during the last parse, if the parser
// has been created with option RecordDerivation. Read in reverse order, this
// is a rightmost derivation of the input.
func (p *Parser) Derivation() []*lr.Rule {
	return p.derivation
}

func internalError(err error) error {
	tracer().Errorf(err.Error())
	if gconf.GetBool("panic-on-internal-error") {
		panic(`SLR(1)-parser table is inconsistent.

Configuration flag panic-on-internal-error is set to true. It is aimed at helping
to debug the table construction. If you did not expect this to panic, please unset
panic-on-internal-error to its default (false).

` + err.Error())
	}
	return err
}

// --- Helpers ----------------------------------------------------------

func top(stack *arraystack.Stack) stackitem {
	v, _ := stack.Peek()
	return v.(stackitem)
}

// reverse the symbols of a RHS of a rule (i.e., a handle)
func reverse(syms []*lr.Symbol) []*lr.Symbol {
	r := append([]*lr.Symbol(nil), syms...) // make copy first
	for i := len(syms)/2 - 1; i >= 0; i-- {
		opp := len(syms) - 1 - i
		r[i], r[opp] = r[opp], r[i]
	}
	return r
}
