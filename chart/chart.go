package chart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/rules"
	"github.com/npillmayer/cadenza/tagger"
)

// ErrNoSuchCell is returned for spans outside of a chart.
var ErrNoSuchCell = errors.New("no such cell")

// Chart is the triangular table of cells for an input sequence.
type Chart struct {
	input        []string
	cells        [][]*Cell // cells[start][end-start-1]
	grammar      *rules.Grammar
	derivations  bool // record derivation traces
	allowComplex bool // complex categories count as parses
}

// New creates an empty chart for an input sequence. g may be nil for charts
// which are only inspected.
func New(input []string, g *rules.Grammar) *Chart {
	n := len(input)
	ch := &Chart{input: input, grammar: g, cells: make([][]*Cell, n), derivations: true}
	for start := 0; start < n; start++ {
		ch.cells[start] = make([]*Cell, n-start)
		for i := range ch.cells[start] {
			ch.cells[start][i] = NewCell()
		}
	}
	return ch
}

// Size is the length of the input.
func (ch *Chart) Size() int {
	return len(ch.input)
}

// Input returns the input sequence.
func (ch *Chart) Input() []string {
	return ch.input
}

// Grammar returns the rules the chart works with.
func (ch *Chart) Grammar() *rules.Grammar {
	return ch.grammar
}

// Cell returns the cell for span (start, end).
func (ch *Chart) Cell(start, end int) (*Cell, error) {
	if start < 0 || end > len(ch.input) || start >= end {
		return nil, fmt.Errorf("%w: (%d,%d) in chart of size %d", ErrNoSuchCell, start, end, len(ch.input))
	}
	return ch.cells[start][end-start-1], nil
}

func (ch *Chart) cell(start, end int) *Cell {
	return ch.cells[start][end-start-1]
}

// AddSign inserts a sign into a cell. It returns false if the sign has been
// merged into an equal sign.
func (ch *Chart) AddSign(start, end int, s *category.Sign) (bool, error) {
	c, err := ch.Cell(start, end)
	if err != nil {
		return false, err
	}
	if !ch.derivations {
		s.Trace = nil
	}
	return c.Add(s), nil
}

// AddLexical inserts a sign handed out by a tagger.
func (ch *Chart) AddLexical(t tagger.Tagged) (bool, error) {
	return ch.AddSign(t.Start, t.End, t.Sign)
}

// ApplyUnaryRules applies every unary rule of the grammar to the signs of a
// cell. It returns the number of signs added.
func (ch *Chart) ApplyUnaryRules(start, end int) (int, error) {
	if ch.grammar == nil {
		return 0, nil
	}
	added := 0
	for _, r := range ch.grammar.Unary {
		n, err := ch.ApplyUnaryRule(r, start, end)
		added += n
		if err != nil {
			return added, err
		}
	}
	return added, nil
}

// ApplyUnaryRule applies a unary rule to the signs of a cell, once per sign.
func (ch *Chart) ApplyUnaryRule(r rules.Rule, start, end int) (int, error) {
	c, err := ch.Cell(start, end)
	if err != nil {
		return 0, err
	}
	if r.Arity() != 1 {
		return 0, fmt.Errorf("rule %s is not unary", r.Name())
	}
	added := 0
	for _, s := range c.Signs() {
		if s.CheckRuleApplied(r.Name(), nil) {
			continue
		}
		s.NoteRuleApplied(r.Name(), nil)
		results, err := r.Apply(s)
		if err != nil {
			return added, fmt.Errorf("rule %s on %v: %w", r.Name(), s, err)
		}
		for _, res := range results {
			res.Probability = s.Probability
			if c.Add(res) {
				added++
			}
		}
	}
	return added, nil
}

// ApplyBinaryRules applies every binary rule of the grammar to pairs of
// signs from (start, middle) and (middle, end), adding the results to
// (start, end). It returns the number of signs added. Cancelling ctx stops
// the combination early with ctx's error.
func (ch *Chart) ApplyBinaryRules(ctx context.Context, start, middle, end int) (int, error) {
	if ch.grammar == nil {
		return 0, nil
	}
	return ch.combine(ctx, ch.grammar.Binary, start, middle, end)
}

// ApplyBinaryRule applies a single binary rule, as ApplyBinaryRules does.
func (ch *Chart) ApplyBinaryRule(ctx context.Context, r rules.Rule, start, middle, end int) (int, error) {
	if r.Arity() != 2 {
		return 0, fmt.Errorf("rule %s is not binary", r.Name())
	}
	return ch.combine(ctx, []rules.Rule{r}, start, middle, end)
}

func (ch *Chart) combine(ctx context.Context, rs []rules.Rule, start, middle, end int) (int, error) {
	if start >= middle || middle >= end {
		return 0, fmt.Errorf("%w: cannot split (%d,%d) at %d", ErrNoSuchCell, start, end, middle)
	}
	target, err := ch.Cell(start, end)
	if err != nil {
		return 0, err
	}
	left, right := ch.cell(start, middle), ch.cell(middle, end)
	if left.Len() == 0 || right.Len() == 0 {
		return 0, nil
	}
	lgroups, rgroups := left.Groups(), right.Groups()
	added := 0
	for _, r := range rs {
		if r.Arity() != 2 {
			continue
		}
		for _, lg := range lgroups {
			for _, rg := range rgroups {
				cat := r.ApplySyntax(lg.Category, rg.Category)
				if cat == nil {
					continue
				}
				for _, a := range lg.Signs {
					for _, b := range rg.Signs {
						if err := ctx.Err(); err != nil {
							return added, err
						}
						if a.CheckRuleApplied(r.Name(), b) {
							continue
						}
						a.NoteRuleApplied(r.Name(), b)
						sems, err := r.ApplySemantics(a, b)
						if err != nil {
							return added, fmt.Errorf("rule %s on %v and %v: %w", r.Name(), a, b, err)
						}
						for _, res := range rules.Results(r, cat, []*category.Sign{a, b}, sems) {
							res.Probability = a.Probability * b.Probability
							if target.Add(res) {
								added++
							}
						}
					}
				}
			}
		}
	}
	if added > 0 {
		tracer().P("span", fmt.Sprintf("%d…%d", start, end)).Debugf("%d signs from split at %d", added, middle)
	}
	return added, nil
}

// Parses returns the signs spanning the whole input. Unless the chart
// allows complex categories, only signs with atomic categories count.
func (ch *Chart) Parses() []*category.Sign {
	if len(ch.input) == 0 {
		return nil
	}
	var parses []*category.Sign
	for _, s := range ch.cell(0, len(ch.input)).Signs() {
		if ch.allowComplex || s.Category.IsAtomic() {
			parses = append(parses, s)
		}
	}
	return parses
}

// Summary counts the signs of every cell.
func (ch *Chart) Summary() *Summary {
	sum := NewSummary(len(ch.input))
	for start := range ch.cells {
		for i, c := range ch.cells[start] {
			sum.Set(start, start+i+1, c.Len())
		}
	}
	return sum
}

func (ch *Chart) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "chart for %q\n", strings.Join(ch.input, " "))
	for start := range ch.cells {
		for i, c := range ch.cells[start] {
			if c.Len() == 0 {
				continue
			}
			fmt.Fprintf(&b, "(%d,%d):\n", start, start+i+1)
			for _, s := range c.Signs() {
				fmt.Fprintf(&b, "    %v\n", s)
			}
		}
	}
	return b.String()
}
