package symtab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/gofront"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// --- Tags -------------------------------------------------------

// Category classifies the lexemes in a symbol table.
type Category int8

// Categories of tags.
const (
	Undefined Category = iota
	Variable
	Keyword
)

func (c Category) String() string {
	switch c {
	case Variable:
		return "VARIABLE"
	case Keyword:
		return "KEYWORD"
	}
	return "UNDEFINED"
}

// Token attributes and types used by symbol tables.
const (
	KeywordAttr    = "PR" // attribute of keyword tokens
	IdentifierType = "id" // type of identifier tokens
	FirstID        = 10   // ID of the first identifier
)

// StaticSymbols are operators and punctuation, registered as keywords
// in every symbol table.
var StaticSymbols = []string{
	".", "=", ";", ":", "(", ")", ",", "..", "[", "]",
	":=", "<", ">", ">=", "<=", "<>", "+", "-", "*", "/",
}

// Tag is the entry type of symbol tables. It may be a little surprising
// this type is not called 'Symbol', but 'Tag' is less confusing when
// dealing with parser generators and grammars: Grammars consist of symbols
// (within rules), too.
type Tag struct {
	name        string
	Category    Category
	Type        string // declared type of variables, "-" otherwise
	token       gofront.Token
	occurrences int
}

func newTag(lexeme string, cat Category, token gofront.Token) *Tag {
	return &Tag{name: lexeme, Category: cat, Type: "-", token: token}
}

// Name gets the tag's lexeme.
func (s *Tag) Name() string {
	return s.name
}

// Token returns the token for the tag's lexeme.
func (s *Tag) Token() gofront.Token {
	return s.token
}

// Occurrences returns how often the lexeme has been looked up.
func (s *Tag) Occurrences() int {
	return s.occurrences
}

// String is a debug Stringer for tags.
func (s *Tag) String() string {
	if s.Category == Keyword {
		return fmt.Sprintf("[%s] -> %d refs", s.Category, s.occurrences)
	}
	return fmt.Sprintf("[%s] %s -> %d refs", s.Category, s.Type, s.occurrences)
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	Table  map[string]*Tag
	nextID int
}

// New creates a symbol table with reserved words and the static symbols
// registered as keywords.
func New(reserved []string) *SymbolTable {
	symtab := &SymbolTable{
		Table:  make(map[string]*Tag),
		nextID: FirstID,
	}
	for _, rw := range reserved {
		symtab.addKeyword(rw)
	}
	for _, sym := range StaticSymbols {
		symtab.addKeyword(sym)
	}
	return symtab
}

func (t *SymbolTable) addKeyword(lexeme string) {
	if _, exists := t.Table[lexeme]; exists || lexeme == "" {
		return
	}
	t.Table[lexeme] = newTag(lexeme, Keyword, gofront.MakeToken(lexeme, KeywordAttr))
}

// ReadReserved reads a list of reserved words, one per line. Blank lines
// are skipped.
func ReadReserved(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if w := strings.TrimSpace(scanner.Text()); w != "" {
			words = append(words, w)
		}
	}
	return words, scanner.Err()
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (t *SymbolTable) ResolveTag(lexeme string) *Tag {
	return t.Table[lexeme]
}

// IsKeyword is true for reserved words and static symbols.
func (t *SymbolTable) IsKeyword(lexeme string) bool {
	tag := t.ResolveTag(lexeme)
	return tag != nil && tag.Category == Keyword
}

// LookupOrInsert finds a lexeme in the table, inserting it as a new
// identifier if not found. It returns the token for the lexeme and counts
// the lookup as an occurrence.
func (t *SymbolTable) LookupOrInsert(lexeme string) gofront.Token {
	tag := t.ResolveTag(lexeme)
	if tag == nil { // if not already there, insert it
		token := gofront.MakeToken(IdentifierType, strconv.Itoa(t.nextID))
		t.nextID++
		tag = newTag(lexeme, Undefined, token)
		t.Table[lexeme] = tag
		tracer().Debugf("new identifier %q = %v", lexeme, token)
	}
	tag.occurrences++
	return tag.token
}

// Translate maps lexer tokens to parser tokens by looking up their lexemes.
// Spans and line numbers are kept.
func (t *SymbolTable) Translate(tokens []gofront.Token) []gofront.Token {
	out := make([]gofront.Token, len(tokens))
	for i, tok := range tokens {
		out[i] = t.LookupOrInsert(tok.Lexeme)
		out[i].Span, out[i].Line = tok.Span, tok.Line
	}
	return out
}

// DeclareVariable marks an identifier as a variable of a given type.
// Returns false if lexeme is unknown or a keyword.
func (t *SymbolTable) DeclareVariable(lexeme, typ string) bool {
	tag := t.ResolveTag(lexeme)
	if tag == nil || tag.Category == Keyword {
		return false
	}
	tag.Category, tag.Type = Variable, typ
	return true
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each iterates over each tag in the table, in lexical order of lexemes,
// executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	keys := maps.Keys(t.Table)
	slices.Sort(keys)
	for _, k := range keys {
		mapper(k, t.Table[k])
	}
}

// CrossReference writes a listing of all lexemes, their tokens and tags.
func (t *SymbolTable) CrossReference(w io.Writer) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-15s | %-10s | %s\n", "LEXEME", "TOKEN", "TAG"))
	b.WriteString("----------------+------------+-----------------------------\n")
	t.Each(func(lexeme string, tag *Tag) {
		b.WriteString(fmt.Sprintf("%-15s | %-10s | %s\n", lexeme, tag.token, tag))
	})
	_, err := io.WriteString(w, b.String())
	return err
}
