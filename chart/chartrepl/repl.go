package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/chart"
	"github.com/npillmayer/cadenza/lexicon"
	"github.com/npillmayer/cadenza/rules"
	"github.com/npillmayer/cadenza/tagger"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
)

// main() starts an interactive CLI, where users may enter chord sequences.
// Every sequence is parsed with the default grammar and the lexicon, and
// the complete parses are printed. The chart of the latest parse remains
// available for inspection.
func main() {
	initDisplay()
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	lexf := flag.String("lexicon", "", "Lexicon file (YAML)")
	variant := flag.String("variant", "", "Lexicon variant")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to the cadenza chart REPL")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	g := rules.Default()
	lex, err := loadLexicon(*lexf, g)
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(2)
	}
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	repl, err := readline.New("chart> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp := &Intp{
		grammar: g,
		lexicon: lex,
		scope:   lex.Globals(),
		repl:    repl,
	}
	if *variant != "" {
		if err := intp.useVariant(*variant); err != nil {
			tracer().Errorf("%v", err)
			os.Exit(2)
		}
	}
	if input := strings.TrimSpace(strings.Join(flag.Args(), " ")); input != "" {
		intp.Eval(input)
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.loadInitFile(*initf)
	intp.REPL()
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

func loadLexicon(filename string, g *rules.Grammar) (*lexicon.Lexicon, error) {
	if filename == "" {
		return lexicon.Default(), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return lexicon.Load(f, g)
}

// Intp is our interpreter object.
type Intp struct {
	grammar *rules.Grammar
	lexicon *lexicon.Lexicon
	scope   *lexicon.Scope
	repl    *readline.Instance
	chart   *chart.Chart
	parses  []*category.Sign
}

func (intp *Intp) useVariant(name string) error {
	if name == "" || name == "global" {
		intp.scope = intp.lexicon.Globals()
		return nil
	}
	sc := intp.lexicon.Variant(name)
	if sc == nil {
		return fmt.Errorf("no lexicon variant %q", name)
	}
	intp.scope = sc
	return nil
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			lineno++
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
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
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or parses a chord sequence, given on a line by
// itself.
func (intp *Intp) Eval(line string) (bool, error) {
	args := strings.Fields(line)
	if !strings.HasPrefix(args[0], ":") {
		args = append([]string{"parse"}, args...)
	} else {
		args[0] = strings.TrimPrefix(args[0], ":")
	}
	quit := false
	cmd := intp.commands(&quit)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		return false, err
	}
	return quit, nil
}

func (intp *Intp) parse(ctx context.Context, chords []string, opts ...chart.Option) error {
	tg, err := tagger.NewLexical(intp.scope, chords...)
	if err != nil {
		return err
	}
	p := chart.NewParser(intp.grammar, tg, opts...)
	parses, err := p.Parse(ctx)
	if err != nil {
		return err
	}
	intp.chart, intp.parses = p.Chart(), parses
	if p.TimedOut() {
		pterm.Warning.Println("parse timed out")
	}
	if len(parses) == 0 {
		pterm.Info.Println("no parses")
		return nil
	}
	for i, s := range parses {
		pterm.Info.Println(fmt.Sprintf("%d: %v", i, s))
		tracer().Debugf("   %v", s.Trace)
	}
	return nil
}

func (intp *Intp) needChart() error {
	if intp.chart == nil {
		return fmt.Errorf("no chart yet; enter a chord sequence first")
	}
	return nil
}
