package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/npillmayer/gofront"
	"github.com/npillmayer/gofront/lex/regex"
	"github.com/npillmayer/gofront/lr"
	"github.com/npillmayer/gofront/symtab"
)

func printTokens(tokens []gofront.Token) {
	data := pterm.TableData{{"line", "span", "lexeme", "tag"}}
	for _, tok := range tokens {
		data = append(data, []string{strconv.Itoa(tok.Line), tok.Span.String(), tok.Lexeme, tok.Tag})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printSymbols(st *symtab.SymbolTable) {
	data := pterm.TableData{{"lexeme", "token", "category", "type", "refs"}}
	st.Each(func(lexeme string, tag *symtab.Tag) {
		if tag.Category == symtab.Keyword && tag.Occurrences() == 0 {
			return
		}
		data = append(data, []string{lexeme, tag.Token().String(), tag.Category.String(),
			tag.Type, strconv.Itoa(tag.Occurrences())})
	})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printTable shows the SLR(1) table, one row per CFSM state.
func printTable(g *lr.Grammar, lrgen *lr.TableGenerator) {
	header := []string{"state"}
	var symbols []*lr.Symbol
	g.EachSymbol(func(A *lr.Symbol) {
		header = append(header, A.String())
		symbols = append(symbols, A)
	})
	data := pterm.TableData{header}
	table := lrgen.Table()
	for _, state := range lrgen.CFSM().States() {
		row := []string{strconv.Itoa(int(state.ID))}
		for _, A := range symbols {
			cell := ""
			if e := table.Entry(state.ID, A); e.Kind != lr.ErrorAction {
				cell = e.String()
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printFirstFollow(ga *lr.LRAnalysis) {
	data := pterm.TableData{{"non-terminal", "FIRST", "FOLLOW"}}
	for _, N := range ga.Grammar().NonTerminals() {
		data = append(data, []string{N.String(),
			fmt.Sprint(ga.Names(ga.First(N))), fmt.Sprint(ga.Names(ga.Follow(N)))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// --- Regex trees -----------------------------------------------------------

func printRegexTree(tree *regex.Tree) {
	ll := leveledNode(tree, tree.Root, pterm.LeveledList{}, 0)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledNode(tree *regex.Tree, node regex.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	text := fmt.Sprintf("%s   %s", nodeLabel(node), regex.NodeInfo(node))
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	switch n := node.(type) {
	case *regex.Binary:
		ll = leveledNode(tree, n.Left, ll, level+1)
		ll = leveledNode(tree, n.Right, ll, level+1)
	case *regex.Unary:
		ll = leveledNode(tree, n.Child, ll, level+1)
	}
	return ll
}

func nodeLabel(node regex.Node) string {
	switch n := node.(type) {
	case *regex.Binary:
		if n.Op == regex.Concat {
			return "concat"
		}
		return "alt"
	case *regex.Unary:
		return string(rune(n.Op))
	case *regex.Leaf:
		if n.Kind == regex.SymbolLeaf {
			return fmt.Sprintf("%q @%d", n.Symbol, n.Pos)
		}
		if n.Kind == regex.EndLeaf {
			return fmt.Sprintf("%s @%d", regex.EndMarker, n.Pos)
		}
	}
	return node.String()
}
