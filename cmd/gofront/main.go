package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/gofront"
	"github.com/npillmayer/gofront/lex"
	"github.com/npillmayer/gofront/lr"
	"github.com/npillmayer/gofront/lr/scanner"
	"github.com/npillmayer/gofront/lr/scanner/lexmach"
	"github.com/npillmayer/gofront/lr/slr"
	"github.com/npillmayer/gofront/symtab"
)

var traceKeys = []string{
	"gofront.cli", "gofront.lex", "gofront.lr", "gofront.scanner", "gofront.symtab",
}

// Options from the command line.
type options struct {
	parallel bool
	ws       string
	dot      string
	html     string
	lexmach  bool
	split    bool
	output   string
}

var errRejected = errors.New("input rejected")

func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	opts := options{}
	flag.BoolVar(&opts.parallel, "parallel", false, "Build per-rule automata concurrently")
	flag.StringVar(&opts.ws, "ws", lex.DefaultWhitespaceTag, "Name of the whitespace rule")
	flag.StringVar(&opts.dot, "dot", "", "Write automaton (lexer DFA or CFSM) to Graphviz file")
	flag.StringVar(&opts.html, "html", "", "Write SLR(1) table to HTML file")
	flag.BoolVar(&opts.lexmach, "lexmach", false, "Use lexmachine as the scanner (lex and repl)")
	flag.BoolVar(&opts.split, "split", false, "Split source at whitespace instead of using rules (compile)")
	flag.StringVar(&opts.output, "o", "", "Write tokens to file, one <lexeme, tag> per line (lex)")
	flag.Usage = usage
	flag.Parse()
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	}
	tracer().Infof("Trace level is %s", *tlevel)
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	var err error
	switch cmd, params := args[0], args[1:]; {
	case cmd == "lex" && len(params) == 2:
		err = runLex(opts, params[0], params[1])
	case cmd == "parse" && len(params) == 2:
		err = runParse(opts, params[0], params[1])
	case cmd == "compile" && len(params) == 4:
		err = runCompile(opts, params[0], params[1], params[2], params[3])
	case cmd == "compile" && len(params) == 3 && opts.split:
		err = runCompile(opts, "", params[0], params[1], params[2])
	case cmd == "repl" && (len(params) == 1 || len(params) == 2):
		err = runREPL(opts, params)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage:
  gofront [flags] [-o <tokens>] lex <rules> <source>
  gofront [flags] parse <grammar> <tokens>
  gofront [flags] compile <rules> <grammar> <reserved> <source>
  gofront [flags] -split compile <grammar> <reserved> <source>
  gofront [flags] repl <rules> [<grammar>]

Flags:
`)
	flag.PrintDefaults()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// --- Subcommands -----------------------------------------------------------

func runLex(opts options, rulesFile, sourceFile string) error {
	rules, err := readRules(rulesFile)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(sourceFile)
	if err != nil {
		return err
	}
	var tokens []gofront.Token
	if opts.lexmach {
		if tokens, err = lexmachTokens(opts, rules, string(src)); err != nil {
			return err
		}
	} else {
		lx, err := compileLexer(opts, rules)
		if err != nil {
			return err
		}
		tokens = lx.Tokenize(strings.Split(string(src), "\n"))
	}
	printTokens(tokens)
	if opts.output != "" {
		if err = writeFile(opts.output, tokenWriter(tokens)); err != nil {
			return err
		}
	}
	for _, tok := range tokens {
		if tok.Tag == lex.DefaultErrorTag {
			return fmt.Errorf("%w: unexpected character %q at line %d", errRejected, tok.Lexeme, tok.Line)
		}
	}
	return nil
}

func runParse(opts options, grammarFile, tokensFile string) error {
	g, lrgen, err := generateParser(opts, grammarFile)
	if err != nil {
		return err
	}
	f, err := os.Open(tokensFile)
	if err != nil {
		return err
	}
	defer f.Close()
	tokens, err := gofront.ReadTokens(f)
	if err != nil {
		return err
	}
	return parse(g, lrgen, tokens)
}

func runCompile(opts options, rulesFile, grammarFile, reservedFile, sourceFile string) error {
	f, err := os.Open(reservedFile)
	if err != nil {
		return err
	}
	reserved, err := symtab.ReadReserved(f)
	f.Close()
	if err != nil {
		return err
	}
	g, lrgen, err := generateParser(opts, grammarFile)
	if err != nil {
		return err
	}
	src, err := os.Open(sourceFile)
	if err != nil {
		return err
	}
	defer src.Close()
	var lexemes []gofront.Token
	if opts.split {
		lexemes = collect(scanner.Split(src, scanner.WhitespaceOnly()))
	} else {
		rules, err := readRules(rulesFile)
		if err != nil {
			return err
		}
		lx, err := compileLexer(opts, rules)
		if err != nil {
			return err
		}
		if lexemes, err = lx.TokenizeReader(src); err != nil {
			return err
		}
		for _, tok := range lexemes {
			if lx.IsError(tok) {
				return fmt.Errorf("%w: unexpected character %q at line %d", errRejected, tok.Lexeme, tok.Line)
			}
		}
	}
	st := symtab.New(reserved)
	vb := symtab.PascalVarBlocks()
	tokens := st.Translate(lexemes)
	for _, tok := range lexemes {
		vb.Observe(st, tok.Lexeme)
	}
	pterm.Info.Printf("%d tokens\n", len(tokens))
	tracer().Debugf("tokens: %v", tokens)
	err = parse(g, lrgen, tokens)
	printSymbols(st)
	return err
}

// --- Pipeline stages -------------------------------------------------------

func readRules(filename string) ([]lex.Rule, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return lex.ReadRules(f)
}

func compileLexer(opts options, rules []lex.Rule) (*lex.Lexer, error) {
	lx, err := lex.Compile(rules, lex.Parallel(opts.parallel), lex.WhitespaceTag(opts.ws))
	if err != nil {
		return nil, err
	}
	pterm.Info.Printf("lexer DFA has %d states\n", lx.DFA().Size())
	if opts.dot != "" {
		err = writeFile(opts.dot, lx.DFA().ToGraphViz)
	}
	return lx, err
}

func lexmachTokens(opts options, rules []lex.Rule, input string) ([]gofront.Token, error) {
	lm, err := lexmach.NewLMAdapter(rules, opts.ws)
	if err != nil {
		return nil, err
	}
	sc, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	return sc.Tokens(), nil
}

func generateParser(opts options, grammarFile string) (*lr.Grammar, *lr.TableGenerator, error) {
	f, err := os.Open(grammarFile)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	g, err := lr.ReadGrammar(grammarFile, f, func(lineno int, err error) {
		pterm.Warning.Printf("%s:%d: %v\n", grammarFile, lineno, err)
	})
	if err != nil {
		return nil, nil, err
	}
	ga := lr.Analysis(g)
	g.Dump()
	ga.Dump()
	lrgen := lr.NewTableGenerator(ga)
	if _, err = lrgen.CreateTables(); err != nil {
		return nil, nil, err
	}
	for _, c := range lrgen.Conflicts() {
		pterm.Warning.Println(c.String())
	}
	pterm.Info.Printf("CFSM has %d states\n", lrgen.CFSM().Size())
	if opts.dot != "" {
		if err = writeFile(opts.dot, lrgen.CFSM().CFSM2GraphViz); err != nil {
			return nil, nil, err
		}
	}
	if opts.html != "" {
		if err = writeFile(opts.html, lrgen.TableAsHTML); err != nil {
			return nil, nil, err
		}
	}
	return g, lrgen, nil
}

func parse(g *lr.Grammar, lrgen *lr.TableGenerator, tokens []gofront.Token) error {
	p := slr.NewParser(g, lrgen.Table())
	accept, err := p.ParseTokens(tokens)
	if err != nil {
		return err
	}
	if !accept {
		return errRejected
	}
	pterm.Success.Println("input accepted")
	return nil
}

// --- Helpers ---------------------------------------------------------------

func collect(tok scanner.Tokenizer) []gofront.Token {
	var tokens []gofront.Token
	for t := tok.NextToken(); !t.IsEOF(); t = tok.NextToken() {
		tokens = append(tokens, t)
	}
	return tokens
}

// tokenWriter writes tokens in the format read by gofront.ReadTokens.
func tokenWriter(tokens []gofront.Token) func(io.Writer) error {
	return func(w io.Writer) error {
		for _, tok := range tokens {
			if _, err := fmt.Fprintln(w, tok.String()); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeFile(filename string, write func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	tracer().Infof("wrote %s", filename)
	return f.Close()
}
