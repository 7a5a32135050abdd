package symtab

import (
	"unicode"
	"unicode/utf8"
)

// VarBlocks declares variables while lexemes are being looked up. A
// declaration block starts with an opening keyword and extends up to one of
// the closing keywords. Identifiers within a block, except type names, are
// declared as variables.
//
//    var x, y: integer;      // declares x and y
//    begin ... end
//
type VarBlocks struct {
	Open      string
	Close     []string
	TypeNames []string
	Type      string // type recorded for declared variables
	inBlock   bool
}

// PascalVarBlocks returns declaration blocks for Pascal-like languages.
func PascalVarBlocks() *VarBlocks {
	return &VarBlocks{
		Open:      "var",
		Close:     []string{"begin", "const", "procedure", "function"},
		TypeNames: []string{"integer", "real", "boolean", "char", "array", "of"},
		Type:      "var",
	}
}

// Observe tracks a lexeme, declaring it in t if it occurs within a
// declaration block. It returns true if the lexeme has been declared.
func (vb *VarBlocks) Observe(t *SymbolTable, lexeme string) bool {
	switch {
	case lexeme == vb.Open:
		vb.inBlock = true
		return false
	case contains(vb.Close, lexeme):
		vb.inBlock = false
		return false
	case !vb.inBlock || t.IsKeyword(lexeme) || contains(vb.TypeNames, lexeme):
		return false
	}
	if r, _ := utf8.DecodeRuneInString(lexeme); !unicode.IsLetter(r) {
		return false
	}
	tracer().Debugf("declaring variable %q", lexeme)
	return t.DeclareVariable(lexeme, vb.Type)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
