/*
Package lr implements prerequisites for LR parsing: context-free grammars,
grammar analysis, the characteristic finite state machine and SLR(1)
parser tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals are
identified by name, which has to match the type of the tokens delivered
by a scanner. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()  // S  ➞  A a
    b.LHS("A").N("B").N("D").End()  // A  ➞  B D
    b.LHS("B").T("b").End()         // B  ➞  b
    b.LHS("B").Epsilon()            // B  ➞  ε
    b.LHS("D").T("d").End()         // D  ➞  d
    b.LHS("D").Epsilon()            // D  ➞  ε
    g, err := b.Grammar()

This results in the following trivial grammar, augmented with a new
start rule:

    0: <S'> ➞ <S>
    1: <S> ➞ <A> a
    2: <A> ➞ <B> <D>
    3: <B> ➞ b
    4: <B> ➞ ε
    5: <D> ➞ d
    6: <D> ➞ ε

Alternatively, grammars may be read from a text source with ReadGrammar,
one production per line:

    <S> ::= <A> a
    <B> ::= &

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar. Sets contain the values of terminal symbols.

    ga := lr.Analysis(g)
    for _, N := range g.NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", N, ga.Names(ga.First(N)))
    }

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into an SLR(1) table, holding
both the ACTION and the GOTO part. The CFSM will not be thrown away,
but is made available to the client. This is intended
for debugging purposes, but may be useful for error recovery, too.
It can be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(ga)  // ga is an LRAnalysis, see above
    table, err := lrgen.CreateTables() // construct the SLR(1) table
    if lrgen.HasConflicts {
        for _, c := range lrgen.Conflicts() { ... }
    }

Table conflicts are not fatal. Shift actions win over reduce actions, and
the rule declared first wins over later ones for reduce/reduce conflicts.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gofront.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gofront.lr")
}
