/*
Package symtab implements a symbol table for the input of a parser.

Lexemes found in the input are mapped to tokens a parser understands.
Reserved words and operator symbols are pre-registered as keywords and
map to themselves: the token for keyword 'begin' has type 'begin'.
All other lexemes are identifiers. Every identifier gets a stable ID on its
first occurrence, and maps to a token of type 'id' with the ID as attribute:

    st := symtab.New([]string{"program", "var", "begin", "end"})
    st.LookupOrInsert("begin")   // => <begin, PR>
    st.LookupOrInsert("x")       // => <id, 10>
    st.LookupOrInsert("y")       // => <id, 11>
    st.LookupOrInsert("x")       // => <id, 10>

Every lookup counts as an occurrence of a lexeme. A cross reference of
all lexemes, their categories and occurrence counts may be printed.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package symtab

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gofront.symtab'.
func tracer() tracing.Trace {
	return tracing.Select("gofront.symtab")
}
