package regex

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/tools/container/intsets"
)

// Op is the operator of an inner tree node.
type Op rune

// Operators of binary and unary nodes.
const (
	Alt    Op = '|'
	Concat Op = '.'
	Star   Op = '*'
	Plus   Op = '+'
	Opt    Op = '?'
)

// LeafKind discriminates the three kinds of leaves.
type LeafKind int8

// Leaves are either input symbols, the empty word or the end marker of a tree.
const (
	SymbolLeaf LeafKind = iota
	EpsilonLeaf
	EndLeaf
)

// EndMarker is the display symbol of the end marker leaf.
const EndMarker = "#"

// Node is a node of a regex syntax tree. It is one of *Leaf, *Binary or *Unary.
type Node interface {
	attrs() *attributes
	String() string
}

// attributes are computed once, by NewTree.
type attributes struct {
	nullable bool
	firstpos *intsets.Sparse
	lastpos  *intsets.Sparse
}

func (a *attributes) attrs() *attributes {
	return a
}

// Nullable is true if the subtree accepts the empty word.
func (a *attributes) Nullable() bool {
	return a.nullable
}

// Firstpos returns the positions which can match the first symbol of the subtree.
func (a *attributes) Firstpos() *intsets.Sparse {
	return a.firstpos
}

// Lastpos returns the positions which can match the last symbol of the subtree.
func (a *attributes) Lastpos() *intsets.Sparse {
	return a.lastpos
}

// Leaf is a tree leaf.
type Leaf struct {
	attributes
	Kind   LeafKind
	Symbol string // input symbol for SymbolLeaf
	Pos    int    // 1-based position, 0 for epsilon leaves
}

// Binary is an alternation or a concatenation node.
type Binary struct {
	attributes
	Op          Op
	Left, Right Node
}

// Unary is a repetition node.
type Unary struct {
	attributes
	Op    Op
	Child Node
}

func (l *Leaf) String() string {
	switch l.Kind {
	case EpsilonLeaf:
		return "ε"
	case EndLeaf:
		return EndMarker
	}
	return l.Symbol
}

func (b *Binary) String() string {
	if b.Op == Concat {
		return fmt.Sprintf("(%s%s)", b.Left, b.Right)
	}
	return fmt.Sprintf("(%s|%s)", b.Left, b.Right)
}

func (u *Unary) String() string {
	return fmt.Sprintf("%s%c", u.Child, u.Op)
}

// --- Parser ----------------------------------------------------------------

// ErrMalformedPattern is the error class of all pattern syntax errors.
var ErrMalformedPattern = errors.New("malformed pattern")

// PatternError describes a syntax error in a pattern.
type PatternError struct {
	Pattern string
	Pos     int // rune offset within the pattern
	Msg     string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s %q at %d: %s", ErrMalformedPattern, e.Pattern, e.Pos, e.Msg)
}

func (e *PatternError) Unwrap() error {
	return ErrMalformedPattern
}

// Parse parses a pure regex (character classes already expanded) into a
// syntax tree. Operator precedence, lowest to highest, is
// alternation, concatenation, repetition.
func Parse(pattern string) (Node, error) {
	p := &parser{input: []rune(pattern), pattern: pattern}
	if len(p.input) == 0 {
		return nil, p.fail("empty pattern")
	}
	node, err := p.union()
	if err != nil {
		return nil, err
	}
	if p.more() {
		return nil, p.fail(fmt.Sprintf("unexpected %q", p.peek()))
	}
	return node, nil
}

type parser struct {
	pattern string
	input   []rune
	pos     int
}

func (p *parser) more() bool {
	return p.pos < len(p.input)
}

func (p *parser) peek() rune {
	if !p.more() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) fail(msg string) error {
	return &PatternError{Pattern: p.pattern, Pos: p.pos, Msg: msg}
}

// union := concat ( '|' concat )*
func (p *parser) union() (Node, error) {
	left, err := p.concat()
	if err != nil {
		return nil, err
	}
	for p.more() && p.peek() == '|' {
		p.pos++
		right, err := p.concat()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: Alt, Left: left, Right: right}
	}
	return left, nil
}

// concat := repeat+
func (p *parser) concat() (Node, error) {
	left, err := p.repeat()
	if err != nil {
		return nil, err
	}
	for p.more() && p.peek() != ')' && p.peek() != '|' {
		right, err := p.repeat()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: Concat, Left: left, Right: right}
	}
	return left, nil
}

// repeat := base ( '*' | '+' | '?' )*
func (p *parser) repeat() (Node, error) {
	node, err := p.base()
	if err != nil {
		return nil, err
	}
	for p.more() && strings.ContainsRune("*+?", p.peek()) {
		node = &Unary{Op: Op(p.peek()), Child: node}
		p.pos++
	}
	return node, nil
}

// base := '(' union ')' | '(' ')' | '\' any | any
func (p *parser) base() (Node, error) {
	if !p.more() {
		return nil, p.fail("missing operand")
	}
	c := p.peek()
	switch c {
	case '\\':
		p.pos++
		if !p.more() {
			return nil, p.fail("escape at end of pattern")
		}
		c = p.peek()
		p.pos++
		return &Leaf{Kind: SymbolLeaf, Symbol: string(c)}, nil
	case '(':
		p.pos++
		if p.peek() == ')' && p.more() {
			p.pos++
			return &Leaf{Kind: EpsilonLeaf}, nil
		}
		inner, err := p.union()
		if err != nil {
			return nil, err
		}
		if !p.more() || p.peek() != ')' {
			return nil, p.fail("missing ')'")
		}
		p.pos++
		return inner, nil
	case '*', '+', '?', '|', ')':
		return nil, p.fail(fmt.Sprintf("operator %q without operand", c))
	}
	p.pos++
	return &Leaf{Kind: SymbolLeaf, Symbol: string(c)}, nil
}
