/*
Package gofront is a small compiler front-end toolbox.

GoFront generates two classical front-end engines from declarative input:
a DFA-based lexical analyzer from a list of regular-expression rules, and
an SLR(1) table-driven parser from a context-free grammar. Both are built
once and then replayed over input as often as clients like. Package
structure is as follows:

■ lex: Package lex compiles token rules into a single minimized DFA and
scans input with a maximal-munch tokenizer. Sub-packages regex and automata
hold the regex syntax trees and the automata construction machinery.

■ lr: Package lr implements grammars, FIRST/FOLLOW analysis and SLR(1)
table construction. Sub-package slr holds the table-driven parser.

■ symtab: Package symtab provides a symbol table for keywords and identifiers,
bridging the lexer's output to the parser's terminals.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gofront
