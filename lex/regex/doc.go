/*
Package regex parses token patterns into syntax trees and computes the
position functions needed for direct DFA construction.

Patterns use a small, pure regular-expression syntax:

    a b c      literal characters, concatenated
    x|y        alternation
    x* x+ x?   repetition
    ( … )      grouping; "()" denotes the empty word
    \x         the literal character x

An extended syntax adds character classes like "[a-zA-Z_]", which are
expanded to alternations by ExpandClasses before parsing.

Position functions follow Aho, Sethi and Ullman: every tree gets a unique
end marker appended, leaves are numbered left to right, and nullable,
firstpos, lastpos and followpos are computed once, when a Tree is created.

    tree, err := regex.Compile("id", "[a-z]([a-z]|[0-9])*")
    fp := tree.Followpos(1)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package regex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gofront.lex'.
func tracer() tracing.Trace {
	return tracing.Select("gofront.lex")
}

// Compile expands character classes in pattern, parses it and returns a
// position-annotated syntax tree for a rule called name.
func Compile(name, pattern string) (*Tree, error) {
	pure, err := ExpandClasses(pattern)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("pattern %q expands to %q", pattern, pure)
	sub, err := Parse(pure)
	if err != nil {
		return nil, err
	}
	return NewTree(name, sub), nil
}
