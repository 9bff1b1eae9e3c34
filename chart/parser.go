package chart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/rules"
	"github.com/npillmayer/cadenza/semantics"
	"github.com/npillmayer/cadenza/tagger"
	"github.com/npillmayer/schuko/gconf"
)

// Backoff produces fallback results if parsing finds no complete
// derivation, e.g. because it timed out.
type Backoff interface {
	Results(input []string) ([]*semantics.Semantics, error)
}

// Listener is notified whenever the parser has completed a cell during a
// sweep. A cell may be completed more than once, in different sweeps.
type Listener interface {
	CellCompleted(start, end int, cell *Cell)
}

// Parser is a CYK parser. It asks its tagger for batches of lexical signs
// and sweeps the chart after every batch.
//
// Create with
//
//     p := chart.NewParser(rules.Default(), tg, chart.Timeout(2*time.Second))
//     parses, err := p.Parse(ctx)
//
type Parser struct {
	grammar        *rules.Grammar
	tagger         tagger.Tagger
	chart          *Chart
	maxIterations  int // 0: unlimited
	minIterations  int // -1: until tagger exhausted
	requiredParses int
	timeout        time.Duration
	derivations    bool
	allowComplex   bool
	dumpTo         string
	backoff        Backoff
	listener       Listener
	timedOut       bool
	iterations     int
}

// Option configures a parser.
type Option func(p *Parser)

// NewParser creates a parser. Defaults for the number of required parses,
// the timeout (in seconds) and recording of derivations are read from the
// global configuration keys 'cadenza-required-parses',
// 'cadenza-parse-timeout' and 'cadenza-derivations'.
func NewParser(g *rules.Grammar, t tagger.Tagger, opts ...Option) *Parser {
	p := &Parser{
		grammar:        g,
		tagger:         t,
		minIterations:  1,
		requiredParses: configInt("cadenza-required-parses", 1),
		timeout:        time.Duration(configInt("cadenza-parse-timeout", 0)) * time.Second,
		derivations:    configBool("cadenza-derivations", true),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxIterations limits the number of tagger batches. 0 means no limit.
func MaxIterations(n int) Option {
	return func(p *Parser) {
		p.maxIterations = n
	}
}

// MinIterations sets the number of tagger batches to process before the
// parser may stop because it found enough parses. -1 processes batches
// until the tagger is exhausted.
func MinIterations(n int) Option {
	return func(p *Parser) {
		p.minIterations = n
	}
}

// RequiredParses sets the number of complete parses after which the parser
// stops asking the tagger for more signs.
func RequiredParses(n int) Option {
	return func(p *Parser) {
		p.requiredParses = n
	}
}

// Timeout sets a time budget for a parse. 0 means no limit.
func Timeout(d time.Duration) Option {
	return func(p *Parser) {
		p.timeout = d
	}
}

// Derivations switches recording of derivation traces on or off.
func Derivations(b bool) Option {
	return func(p *Parser) {
		p.derivations = b
	}
}

// AllowComplex lets signs with complex categories count as parses.
func AllowComplex(b bool) Option {
	return func(p *Parser) {
		p.allowComplex = b
	}
}

// DumpTo makes the parser rewrite a chart dump to a file after every
// completed node of a sweep.
func DumpTo(path string) Option {
	return func(p *Parser) {
		p.dumpTo = path
	}
}

// WithBackoff sets a fallback for parses without result.
func WithBackoff(b Backoff) Option {
	return func(p *Parser) {
		p.backoff = b
	}
}

// WithListener sets a listener for completed cells.
func WithListener(l Listener) Option {
	return func(p *Parser) {
		p.listener = l
	}
}

// Chart returns the chart of the latest parse.
func (p *Parser) Chart() *Chart {
	return p.chart
}

// TimedOut is true if the latest parse ran out of time.
func (p *Parser) TimedOut() bool {
	return p.timedOut
}

// Iterations is the number of tagger batches the latest parse processed.
func (p *Parser) Iterations() int {
	return p.iterations
}

// Parse runs the parser on its tagger's input and returns the complete
// parses. Running out of time is not an error: the parses found so far, or
// the backoff results, are returned and TimedOut reports true. Errors are
// returned for failing rules and for cancellation of ctx.
func (p *Parser) Parse(ctx context.Context) ([]*category.Sign, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	p.chart = New(p.tagger.Input(), p.grammar)
	p.chart.derivations = p.derivations
	p.chart.allowComplex = p.allowComplex
	p.timedOut, p.iterations = false, 0
	tracer().Infof("parsing %v", p.chart.Input())
	for offset := 0; p.maxIterations <= 0 || offset < p.maxIterations; offset++ {
		batch := p.tagger.Signs(offset)
		if len(batch) == 0 {
			tracer().Debugf("tagger exhausted after %d batches", offset)
			break
		}
		p.iterations++
		for _, t := range batch {
			if _, err := p.chart.AddLexical(t); err != nil {
				return nil, err
			}
		}
		if err := p.sweep(ctx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				tracer().Infof("parse timed out in iteration %d", p.iterations)
				p.timedOut = true
				break
			}
			return nil, err
		}
		if p.minIterations >= 0 && p.iterations >= p.minIterations &&
			len(p.chart.Parses()) >= p.requiredParses {
			break
		}
	}
	parses := p.chart.Parses()
	tracer().Infof("found %d parses in %d iterations", len(parses), p.iterations)
	if len(parses) == 0 && p.backoff != nil {
		return p.backoffParses()
	}
	return parses, nil
}

func (p *Parser) sweep(ctx context.Context) error {
	n := p.chart.Size()
	for end := 1; end <= n; end++ {
		if _, err := p.chart.ApplyUnaryRules(end-1, end); err != nil {
			return err
		}
		p.completed(end-1, end)
		for start := end - 2; start >= 0; start-- {
			for middle := start + 1; middle < end; middle++ {
				if _, err := p.chart.ApplyBinaryRules(ctx, start, middle, end); err != nil {
					return err
				}
			}
			if _, err := p.chart.ApplyUnaryRules(start, end); err != nil {
				return err
			}
			p.completed(start, end)
		}
		if err := p.dump(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) completed(start, end int) {
	if p.listener != nil {
		p.listener.CellCompleted(start, end, p.chart.cell(start, end))
	}
}

func (p *Parser) dump() error {
	if p.dumpTo == "" {
		return nil
	}
	f, err := os.Create(p.dumpTo)
	if err != nil {
		return fmt.Errorf("dumping chart: %w", err)
	}
	defer f.Close()
	return p.chart.Dump(f)
}

func (p *Parser) backoffParses() ([]*category.Sign, error) {
	sems, err := p.backoff.Results(p.chart.Input())
	if err != nil {
		return nil, fmt.Errorf("backoff: %w", err)
	}
	parses := make([]*category.Sign, len(sems))
	for i, sem := range sems {
		parses[i] = category.NewSign(category.Dummy(), sem)
		parses[i].Tag = "backoff"
	}
	tracer().Infof("backoff produced %d results", len(parses))
	return parses, nil
}

// --- Configuration ---------------------------------------------------------

// configInt and configBool read the global configuration, falling back to
// a default if a key is not set or no configuration is initialized.
func configInt(key string, dflt int) (n int) {
	defer func() {
		if r := recover(); r != nil {
			n = dflt
		}
	}()
	if !gconf.IsSet(key) {
		return dflt
	}
	return gconf.GetInt(key)
}

func configBool(key string, dflt bool) (b bool) {
	defer func() {
		if r := recover(); r != nil {
			b = dflt
		}
	}()
	if !gconf.IsSet(key) {
		return dflt
	}
	return gconf.GetBool(key)
}
