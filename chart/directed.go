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

// ErrDerivationMismatch is wrapped by every DirectedParseError.
var ErrDerivationMismatch = errors.New("derivation does not match input")

// DerivationTree is the skeleton of a derivation, given in advance. Leaves
// stand for input words, inner nodes name the rule combining their
// children.
type DerivationTree struct {
	Word     string
	Rule     string
	Children []*DerivationTree
}

// Leaf creates a leaf for a word.
func Leaf(word string) *DerivationTree {
	return &DerivationTree{Word: word}
}

// Node creates an inner node.
func Node(rule string, children ...*DerivationTree) *DerivationTree {
	return &DerivationTree{Rule: rule, Children: children}
}

// IsLeaf is true for leaves.
func (t *DerivationTree) IsLeaf() bool {
	return t.Rule == "" && len(t.Children) == 0
}

// Width counts the leaves of the tree.
func (t *DerivationTree) Width() int {
	if t.IsLeaf() {
		return 1
	}
	n := 0
	for _, c := range t.Children {
		n += c.Width()
	}
	return n
}

func (t *DerivationTree) String() string {
	if t.IsLeaf() {
		return t.Word
	}
	parts := make([]string, 0, len(t.Children)+1)
	parts = append(parts, t.Rule)
	for _, c := range t.Children {
		parts = append(parts, c.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// DirectedParseError reports a node of a derivation tree which could not be
// applied to the signs of the chart. Candidates are the signs the node's
// rule has been tried on, one slice per child.
type DirectedParseError struct {
	Node       *DerivationTree
	Start, End int
	Candidates [][]*category.Sign
	Msg        string
}

func (e *DirectedParseError) Error() string {
	return fmt.Sprintf("%v at %v (%d…%d): %s", ErrDerivationMismatch, e.Node, e.Start, e.End, e.Msg)
}

// Unwrap returns ErrDerivationMismatch.
func (e *DirectedParseError) Unwrap() error {
	return ErrDerivationMismatch
}

// DirectedParser fills a chart following a derivation tree. It applies
// exactly the rules the tree prescribes, and fails as soon as one of them
// does not apply.
type DirectedParser struct {
	grammar     *rules.Grammar
	tagger      tagger.Tagger
	chart       *Chart
	derivations bool
}

// NewDirectedParser creates a directed parser. All batches of the tagger
// are used as lexical signs.
func NewDirectedParser(g *rules.Grammar, t tagger.Tagger) *DirectedParser {
	return &DirectedParser{grammar: g, tagger: t, derivations: true}
}

// Chart returns the chart of the latest parse.
func (p *DirectedParser) Chart() *Chart {
	return p.chart
}

// Parse applies the derivation tree to the input and returns the signs
// spanning the whole input.
func (p *DirectedParser) Parse(ctx context.Context, tree *DerivationTree) ([]*category.Sign, error) {
	p.chart = New(p.tagger.Input(), p.grammar)
	p.chart.derivations = p.derivations
	n := p.chart.Size()
	if w := tree.Width(); w != n {
		return nil, &DirectedParseError{Node: tree, Start: 0, End: n,
			Msg: fmt.Sprintf("tree has %d leaves for %d words", w, n)}
	}
	for offset := 0; ; offset++ {
		batch := p.tagger.Signs(offset)
		if len(batch) == 0 {
			break
		}
		for _, t := range batch {
			if _, err := p.chart.AddLexical(t); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.apply(ctx, tree, 0); err != nil {
		return nil, err
	}
	return p.chart.cell(0, n).Signs(), nil
}

// apply fills the cells of a subtree starting at input position start and
// returns the end position of the subtree.
func (p *DirectedParser) apply(ctx context.Context, node *DerivationTree, start int) (int, error) {
	if node.IsLeaf() {
		end := start + 1
		if p.chart.cell(start, end).Len() == 0 {
			return end, &DirectedParseError{Node: node, Start: start, End: end, Msg: "no signs for word"}
		}
		return end, nil
	}
	mismatch := func(end int, msg string, cells ...*Cell) error {
		err := &DirectedParseError{Node: node, Start: start, End: end, Msg: msg}
		for _, c := range cells {
			err.Candidates = append(err.Candidates, c.Signs())
		}
		tracer().Errorf("directed parse: %v", err)
		return err
	}
	if len(node.Children) == 0 || len(node.Children) > 2 {
		return start, mismatch(start, fmt.Sprintf("rule node with %d children", len(node.Children)))
	}
	r, err := p.grammar.Rule(node.Rule)
	if err != nil {
		return start, mismatch(start, err.Error())
	}
	if r.Arity() != len(node.Children) {
		return start, mismatch(start, fmt.Sprintf("rule %s takes %d arguments, has %d",
			r.Name(), r.Arity(), len(node.Children)))
	}
	middle, err := p.apply(ctx, node.Children[0], start)
	if err != nil {
		return middle, err
	}
	if len(node.Children) == 1 {
		c := p.chart.cell(start, middle)
		before := c.Len()
		if _, err := p.chart.ApplyUnaryRule(r, start, middle); err != nil {
			return middle, err
		}
		if c.Len() == before {
			return middle, mismatch(middle, "rule does not apply", c)
		}
		return middle, nil
	}
	end, err := p.apply(ctx, node.Children[1], middle)
	if err != nil {
		return end, err
	}
	added, err := p.chart.ApplyBinaryRule(ctx, r, start, middle, end)
	if err != nil {
		return end, err
	}
	if added == 0 && p.chart.cell(start, end).Len() == 0 {
		return end, mismatch(end, "rule does not apply",
			p.chart.cell(start, middle), p.chart.cell(middle, end))
	}
	return end, nil
}
