package category

import (
	"strings"
)

// Trace records how a sign came into existence. Lexical signs have a Word
// and no derivations. Derived signs have one Derivation for every way the
// chart has found to build them; traces of the inputs are shared, so a
// trace is a packed forest rather than a tree.
type Trace struct {
	Word        string
	Derivations []Derivation
}

// Derivation is one way to derive a sign: a rule and the traces of its
// inputs.
type Derivation struct {
	Rule   string
	Inputs []*Trace
}

// Lexical creates the trace of a sign taken from the lexicon.
func Lexical(word string) *Trace {
	return &Trace{Word: word}
}

// Derived creates the trace of a sign built by a rule.
func Derived(rule string, inputs ...*Trace) *Trace {
	return &Trace{Derivations: []Derivation{{Rule: rule, Inputs: inputs}}}
}

// IsLexical is true for traces of lexical signs.
func (t *Trace) IsLexical() bool {
	return t != nil && len(t.Derivations) == 0
}

// Merge adds the derivations of other which t does not yet know about.
func (t *Trace) Merge(other *Trace) {
	if t == nil || other == nil || t == other {
		return
	}
	if t.Word == "" {
		t.Word = other.Word
	}
	for _, d := range other.Derivations {
		if !t.has(d) {
			t.Derivations = append(t.Derivations, d)
		}
	}
}

func (t *Trace) has(d Derivation) bool {
	for _, e := range t.Derivations {
		if e.equal(d) {
			return true
		}
	}
	return false
}

func (d Derivation) equal(other Derivation) bool {
	if d.Rule != other.Rule || len(d.Inputs) != len(other.Inputs) {
		return false
	}
	for i := range d.Inputs {
		if d.Inputs[i] != other.Inputs[i] {
			return false
		}
	}
	return true
}

// Count returns the number of distinct derivation trees packed into t.
func (t *Trace) Count() int {
	return t.count(map[*Trace]int{})
}

func (t *Trace) count(memo map[*Trace]int) int {
	if t == nil {
		return 0
	}
	if n, ok := memo[t]; ok {
		return n
	}
	memo[t] = 0 // cycles contribute nothing
	n := 0
	if len(t.Derivations) == 0 {
		n = 1
	}
	for _, d := range t.Derivations {
		p := 1
		for _, in := range d.Inputs {
			p *= in.count(memo)
		}
		n += p
	}
	memo[t] = n
	return n
}

// String prints the first derivation in bracketed form, e.g.
// "(> G7 C)". Further derivations are indicated by "|…".
func (t *Trace) String() string {
	var b strings.Builder
	t.write(&b, 0)
	return b.String()
}

func (t *Trace) write(b *strings.Builder, depth int) {
	if t == nil {
		b.WriteString("?")
		return
	}
	if len(t.Derivations) == 0 {
		b.WriteString(t.Word)
		return
	}
	if depth > 32 {
		b.WriteString("…")
		return
	}
	d := t.Derivations[0]
	b.WriteString("(" + d.Rule)
	for _, in := range d.Inputs {
		b.WriteString(" ")
		in.write(b, depth+1)
	}
	b.WriteString(")")
	if len(t.Derivations) > 1 {
		b.WriteString("|…")
	}
}
