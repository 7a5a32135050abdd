package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/gofront"
	"github.com/npillmayer/gofront/lex"
	"github.com/npillmayer/gofront/lex/automata"
	"github.com/npillmayer/gofront/lex/regex"
	"github.com/npillmayer/gofront/lr"
	"github.com/npillmayer/gofront/symtab"
)

// Intp is our interpreter object
type Intp struct {
	opts   options
	rules  []lex.Rule
	lexer  *lex.Lexer
	G      *lr.Grammar
	lrgen  *lr.TableGenerator
	symtab *symtab.SymbolTable
	repl   *readline.Instance
	lineno int
}

func runREPL(opts options, params []string) error {
	rules, err := readRules(params[0])
	if err != nil {
		return err
	}
	intp := &Intp{opts: opts, rules: rules, symtab: symtab.New(nil)}
	if intp.lexer, err = compileLexer(opts, rules); err != nil {
		return err
	}
	if len(params) > 1 {
		if intp.G, intp.lrgen, err = generateParser(opts, params[1]); err != nil {
			return err
		}
	}
	if intp.repl, err = readline.New("gofront> "); err != nil {
		return err
	}
	defer intp.repl.Close()
	pterm.Info.Println("Welcome to gofront") // colored welcome message
	tracer().Infof("Quit with <ctrl>D")      // inform user how to stop the CLI
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval evaluates a command or a line of input. Input lines are tokenized
// and, if a grammar has been loaded, parsed. Commands start with a colon:
//
//    :ast <pattern>     show the syntax tree of a pattern
//    :dfa <pattern>     show the minimal DFA of a pattern
//    :first             show FIRST and FOLLOW sets
//    :table             show the SLR(1) table
//    :symbols           show the symbol table
//    :quit
//
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.input(line)
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":ast":
		tree, err := regex.Compile("repl", arg)
		if err != nil {
			return false, err
		}
		printRegexTree(tree)
	case ":dfa":
		tree, err := regex.Compile("repl", arg)
		if err != nil {
			return false, err
		}
		printDFA(automata.Minimize(automata.FromTree(tree)))
	case ":first", ":table":
		if intp.G == nil {
			return false, fmt.Errorf("no grammar loaded")
		}
		if cmd == ":first" {
			printFirstFollow(lr.Analysis(intp.G))
		} else {
			printTable(intp.G, intp.lrgen)
		}
	case ":symbols":
		printSymbols(intp.symtab)
	default:
		return false, fmt.Errorf("unknown command %s", cmd)
	}
	return false, nil
}

func (intp *Intp) input(line string) error {
	intp.lineno++
	var tokens []gofront.Token
	if intp.opts.lexmach {
		var err error
		if tokens, err = lexmachTokens(intp.opts, intp.rules, line); err != nil {
			return err
		}
	} else {
		tokens = intp.lexer.TokenizeLine(line, intp.lineno)
	}
	printTokens(tokens)
	if intp.G == nil {
		return nil
	}
	return parse(intp.G, intp.lrgen, intp.symtab.Translate(tokens))
}

func printDFA(dfa *automata.DFA) {
	data := pterm.TableData{{"state", "final", "transitions"}}
	for _, s := range dfa.States() {
		var trans []string
		for _, a := range dfa.Alphabet() {
			if to, ok := dfa.Step(s, a); ok {
				trans = append(trans, fmt.Sprintf("%s→%d", a, to))
			}
		}
		final := ""
		if dfa.IsFinal(s) {
			final = "*"
		}
		data = append(data, []string{fmt.Sprint(s), final, strings.Join(trans, " ")})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
