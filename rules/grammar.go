package rules

import (
	"errors"
	"fmt"

	"github.com/npillmayer/cadenza/category"
)

// ErrUnknownRule is returned for rule names a grammar does not know.
var ErrUnknownRule = errors.New("unknown rule")

// Grammar is the set of rules a chart works with. Binary and Unary rules
// are applied during parsing, Expansion rules once when the lexicon is built.
type Grammar struct {
	Binary    []Rule
	Unary     []Rule
	Expansion []Rule
	byName    map[string]Rule
}

// NewGrammar creates a grammar. Rules are found by name or by internal name.
func NewGrammar(binary, unary, expansion []Rule) *Grammar {
	g := &Grammar{Binary: binary, Unary: unary, Expansion: expansion, byName: map[string]Rule{}}
	for _, rules := range [][]Rule{binary, unary, expansion} {
		for _, r := range rules {
			g.byName[r.Name()] = r
			g.byName[r.InternalName()] = r
		}
	}
	return g
}

// Default returns the standard grammar: application, composition,
// development and coordination during parsing, and both repetition rules
// for lexicon expansion. There are no unary parsing rules.
func Default() *Grammar {
	binary := []Rule{
		NewApplication(true),
		NewApplication(false),
		NewComposition(true, true),
		NewComposition(false, true),
		NewComposition(true, false),
		NewComposition(false, false),
		NewDevelopment(),
		NewCoordination(),
	}
	expansion := []Rule{
		NewTonicRepetition(),
		NewCadenceRepetition(),
	}
	return NewGrammar(binary, nil, expansion)
}

// Rule finds a rule by name (">B") or internal name ("compf").
func (g *Grammar) Rule(name string) (Rule, error) {
	if r, ok := g.byName[name]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}

// Restrict returns a grammar with only the named binary and unary rules.
// Expansion rules are kept.
func (g *Grammar) Restrict(names ...string) (*Grammar, error) {
	keep := map[Rule]bool{}
	for _, n := range names {
		r, err := g.Rule(n)
		if err != nil {
			return nil, err
		}
		keep[r] = true
	}
	var binary, unary []Rule
	for _, r := range g.Binary {
		if keep[r] {
			binary = append(binary, r)
		}
	}
	for _, r := range g.Unary {
		if keep[r] {
			unary = append(unary, r)
		}
	}
	return NewGrammar(binary, unary, g.Expansion), nil
}

// Expand applies every expansion rule once to every sign and returns the
// signs together with the expansions. Structurally equal results are
// added only once.
func (g *Grammar) Expand(signs []*category.Sign) ([]*category.Sign, error) {
	seen := make(map[string]bool, len(signs))
	out := make([]*category.Sign, 0, len(signs))
	add := func(s *category.Sign) {
		if k := s.Key(); !seen[k] {
			seen[k] = true
			out = append(out, s)
		}
	}
	for _, s := range signs {
		add(s)
	}
	for _, s := range signs {
		for _, r := range g.Expansion {
			results, err := r.Apply(s)
			if err != nil {
				return nil, err
			}
			for _, res := range results {
				res.Tag = s.Tag
				res.Probability = s.Probability
				tracer().Debugf("expanded %v by %s to %v", s, r.Name(), res)
				add(res)
			}
		}
	}
	return out, nil
}
