/*
Package lex generates lexical analyzers from token rules.

Rules are given one per line, as

    name: pattern

with patterns in the syntax of package regex, including character classes.
Rules declared first take priority: with rules

    kw: if|else
    id: [a-z]+

input "if" is recognized as a keyword, while "iffy" is an identifier, since
the tokenizer always prefers the longest match.

Compiling a set of rules builds one DFA per rule directly from the rule's
syntax tree and minimizes it. The per-rule DFAs are merged into an NFA, which
is determinized, resolving conflicting token names by rule priority, and
minimized again. Per-rule pipelines are independent and may run in parallel.

    lexer, err := lex.Compile(rules, lex.Parallel(true))
    tokens := lexer.Tokenize(lines)

Tokens matched by the whitespace rule (named "ws" by default) are dropped.
Input characters which do not start any token result in single-character
error tokens.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gofront.lex'.
func tracer() tracing.Trace {
	return tracing.Select("gofront.lex")
}
