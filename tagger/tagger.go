/*
Package tagger assigns candidate signs to the words of an input sequence.

A tagger is asked for signs in batches with increasing offsets. Batch 0
holds the most likely candidates; the parser asks for further batches if it
fails to find a complete derivation. Batches never repeat signs for a span.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tagger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/lexicon"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cadenza.tagger'.
func tracer() tracing.Trace {
	return tracing.Select("cadenza.tagger")
}

// ErrUnknownChord is returned for chord symbols the lexicon cannot handle.
var ErrUnknownChord = errors.New("unknown chord")

// Tagged is a candidate sign for the input span [Start, End).
type Tagged struct {
	Start, End  int
	Sign        *category.Sign
	Tag         string
	Probability float64
}

// Tagger is the interface the chart uses to get lexical signs. Signs
// returns batch number offset, an empty batch if the tagger is exhausted.
// Signs may be called repeatedly and must return fresh signs each time.
type Tagger interface {
	Input() []string
	Signs(offset int) []Tagged
}

// --- Pre-tagged input ------------------------------------------------------

// Pretagged is a tagger for input which has been tagged in advance.
type Pretagged struct {
	words   []string
	batches [][]Tagged
}

var _ Tagger = (*Pretagged)(nil)

// NewPretagged creates a tagger for a sequence of words without any signs.
func NewPretagged(words ...string) *Pretagged {
	return &Pretagged{words: words}
}

// Add adds a sign for the span [start, end) to a batch. It returns the
// tagger for chaining.
func (p *Pretagged) Add(batch, start, end int, sign *category.Sign, tag string, prob float64) *Pretagged {
	if start < 0 || end > len(p.words) || start >= end {
		panic(fmt.Sprintf("illegal span (%d…%d) for input of length %d", start, end, len(p.words)))
	}
	for len(p.batches) <= batch {
		p.batches = append(p.batches, nil)
	}
	p.batches[batch] = append(p.batches[batch], Tagged{Start: start, End: end, Sign: sign, Tag: tag, Probability: prob})
	return p
}

// Input returns the words.
func (p *Pretagged) Input() []string {
	return p.words
}

// Signs returns copies of the signs of a batch, with lexical derivation
// traces.
func (p *Pretagged) Signs(offset int) []Tagged {
	if offset < 0 || offset >= len(p.batches) {
		return nil
	}
	batch := make([]Tagged, len(p.batches[offset]))
	for i, t := range p.batches[offset] {
		batch[i] = t
		batch[i].Sign = lexicalSign(t.Sign, p.words[t.Start:t.End], t.Tag, t.Probability)
	}
	return batch
}

func lexicalSign(s *category.Sign, words []string, tag string, prob float64) *category.Sign {
	c := s.Copy()
	c.Trace = category.Lexical(strings.Join(words, " "))
	c.Tag = tag
	c.Probability = prob
	return c
}

// --- Chord symbols ---------------------------------------------------------

// Lexical is a tagger for chord symbols. Every chord is tagged with all the
// signs of the families responsible for its chord type, transposed to the
// chord's root, in one batch.
type Lexical struct {
	chords []string
	roots  []int
	scope  *lexicon.Scope
}

var _ Tagger = (*Lexical)(nil)

// NewLexical creates a tagger for a sequence of chord symbols, using the
// families visible from a lexicon scope.
func NewLexical(sc *lexicon.Scope, chords ...string) (*Lexical, error) {
	t := &Lexical{chords: chords, roots: make([]int, len(chords)), scope: sc}
	for i, ch := range chords {
		root, typ, err := ParseChord(ch)
		if err != nil {
			return nil, err
		}
		if len(sc.ResolveChord(typ)) == 0 {
			return nil, fmt.Errorf("%w: no family for chord type %q of %s", ErrUnknownChord, typ, ch)
		}
		t.roots[i] = root
	}
	return t, nil
}

// Input returns the chord symbols.
func (t *Lexical) Input() []string {
	return t.chords
}

// Signs returns all candidate signs for offset 0, and nothing afterwards.
func (t *Lexical) Signs(offset int) []Tagged {
	if offset != 0 {
		return nil
	}
	var batch []Tagged
	for i, ch := range t.chords {
		_, typ, _ := ParseChord(ch)
		var signs []*category.Sign
		for _, e := range t.scope.ResolveChord(typ) {
			signs = append(signs, e.Signs...)
		}
		for _, s := range signs {
			c := lexicalSign(s, t.chords[i:i+1], s.Tag, 1/float64(len(signs)))
			c.Category = category.Absolute(c.Category, t.roots[i])
			c.Semantics.Transpose(t.roots[i])
			batch = append(batch, Tagged{Start: i, End: i + 1, Sign: c, Tag: c.Tag, Probability: c.Probability})
		}
		tracer().Debugf("chord %s tagged with %d signs", ch, len(signs))
	}
	return batch
}

var pitches = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParseChord splits a chord symbol like "Bbm7" into its root pitch class
// (10) and its chord type ("m7").
func ParseChord(symbol string) (int, string, error) {
	if symbol == "" {
		return 0, "", fmt.Errorf("%w: empty chord symbol", ErrUnknownChord)
	}
	root, ok := pitches[symbol[0]]
	if !ok {
		return 0, "", fmt.Errorf("%w: illegal root in %q", ErrUnknownChord, symbol)
	}
	i := 1
	for ; i < len(symbol) && (symbol[i] == 'b' || symbol[i] == '#'); i++ {
		if symbol[i] == 'b' {
			root--
		} else {
			root++
		}
	}
	return ((root % 12) + 12) % 12, symbol[i:], nil
}
