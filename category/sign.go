package category

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/cadenza/semantics"
)

// Sign pairs a category with a logical form. Category and semantics are
// never changed once the sign is built; the chart does its book-keeping
// in the remaining fields.
type Sign struct {
	Category    Category
	Semantics   *semantics.Semantics
	Trace       *Trace  // derivation provenance, may be nil
	Tag         string  // tag of the lexical entry, if any
	Probability float64 // as given by the tagger
	tried       ruleset
}

// NewSign creates a sign without derivation trace.
func NewSign(cat Category, sem *semantics.Semantics) *Sign {
	return &Sign{Category: cat, Semantics: sem}
}

// Key is a content hash of the sign's category and semantics. Two signs
// with equal keys are structurally equal.
func (s *Sign) Key() string {
	h, err := structhash.Hash(struct {
		Category  string
		Semantics string
	}{s.Category.Key(), s.Semantics.Key()}, 1)
	if err != nil {
		tracer().Errorf("cannot hash sign %v: %v", s, err)
		return s.String()
	}
	return h
}

// Copy returns a deep copy of category and semantics. The derivation trace is
// shared, the tried-rule memo is not.
func (s *Sign) Copy() *Sign {
	return &Sign{
		Category:    s.Category.Copy(),
		Semantics:   s.Semantics.Copy(),
		Trace:       s.Trace,
		Tag:         s.Tag,
		Probability: s.Probability,
	}
}

// Equal is true if both category and semantics are structurally equal.
func (s *Sign) Equal(other *Sign) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Category.Equal(other.Category) && semantics.Equal(s.Semantics, other.Semantics)
}

// NoteRuleApplied memoizes that a rule has been tried on this sign. partner
// is the second input of a binary rule, nil for unary rules.
func (s *Sign) NoteRuleApplied(rule string, partner *Sign) {
	s.tried = s.tried.add(tried{rule, partner})
}

// CheckRuleApplied is true if NoteRuleApplied has been called for the same
// rule and partner.
func (s *Sign) CheckRuleApplied(rule string, partner *Sign) bool {
	return s.tried.contains(tried{rule, partner})
}

func (s *Sign) String() string {
	if s == nil {
		return "<nil sign>"
	}
	return fmt.Sprintf("%v : %v", s.Category, s.Semantics)
}

// --- Tried rules -----------------------------------------------------------

type tried struct {
	rule    string
	partner *Sign
}

type ruleset map[tried]struct{}

func (set ruleset) add(t tried) ruleset {
	if set == nil {
		set = ruleset{}
	}
	set[t] = struct{}{}
	return set
}

func (set ruleset) contains(t tried) bool {
	if set == nil {
		return false
	}
	_, ok := set[t]
	return ok
}
