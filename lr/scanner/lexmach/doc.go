/*
Package lexmach provides an adapter to use the lexmachine scanner generator
with the parsers of package lr.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine is initialized from the same rules which package lex uses to
generate a lexer. Patterns are translated to lexmachine's syntax and added
in order of priority; lexmachine prefers the longest match and, between
matches of equal length, the pattern added first. Thus both scanners
produce the same tokens, which makes lexmach a reference implementation for
lexers generated by package lex.

	rules, err := lex.ReadRules(rulesFile)
	LM, err := lexmach.NewLMAdapter(rules, lex.DefaultWhitespaceTag)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}

Tokens carry the matched text as lexeme and the rule name as tag. Input
which no rule matches results in single-character error tokens, tagged
lex.DefaultErrorTag.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
