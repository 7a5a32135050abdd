/*
Command gofront generates lexers and SLR(1) parsers from textual
specifications and runs them on input files.

Usage:

    gofront [flags] [-o <tokens>] lex <rules> <source>
    gofront [flags] parse <grammar> <tokens>
    gofront [flags] compile <rules> <grammar> <reserved> <source>
    gofront [flags] repl <rules> [<grammar>]

Rules are given one per line as "name: pattern". Grammars are given one
production per line as "<Head> ::= body". Token files hold tokens in the
format "<lexeme, tag>", one or more per line. Reserved words are listed one
per line. With flag -o, subcommand 'lex' writes the tokens it produces to a
token file, which may in turn be fed to subcommand 'parse'.

Subcommand 'compile' runs the complete pipeline: the source is tokenized by
a lexer generated from the rules, lexemes are mapped to tokens by a symbol
table pre-loaded with the reserved words, and the tokens are parsed with an
SLR(1) parser generated from the grammar.

gofront exits with status 0 if all input has been accepted, and with
status 1 on any failure.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gofront.cli'
func tracer() tracing.Trace {
	return tracing.Select("gofront.cli")
}
