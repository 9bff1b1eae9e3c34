package chart

import (
	"fmt"
	"io"

	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/notation"
	"github.com/npillmayer/cadenza/rules"
	"gopkg.in/yaml.v3"
)

// A chart dump lists the non-empty cells with their signs in notation.
// Signs are numbered through the whole chart; derivations refer to their
// inputs by number.
//
//     input: [G7, C]
//     cells:
//       - start: 0
//         end: 2
//         signs:
//           - id: 1
//             sign: 'V^D-I^T : [leftonto(<0,0>)]'
//             trace:
//               derivations:
//                 - rule: '>'
//                   inputs: [0, 2]
//
type chartDoc struct {
	Input []string  `yaml:"input"`
	Cells []cellDoc `yaml:"cells"`
}

type cellDoc struct {
	Start int       `yaml:"start"`
	End   int       `yaml:"end"`
	Signs []signDoc `yaml:"signs"`
}

type signDoc struct {
	ID          int       `yaml:"id"`
	Sign        string    `yaml:"sign"`
	Tag         string    `yaml:"tag,omitempty"`
	Probability float64   `yaml:"probability,omitempty"`
	Trace       *traceDoc `yaml:"trace,omitempty"`
}

type traceDoc struct {
	Word        string          `yaml:"word,omitempty"`
	Derivations []derivationDoc `yaml:"derivations,omitempty"`
}

type derivationDoc struct {
	Rule   string `yaml:"rule"`
	Inputs []int  `yaml:"inputs,flow"`
}

// Dump writes the chart in YAML format.
func (ch *Chart) Dump(w io.Writer) error {
	ids := map[*category.Trace]int{}
	doc := chartDoc{Input: ch.input}
	id := 0
	for start := range ch.cells {
		for i, c := range ch.cells[start] {
			if c.Len() == 0 {
				continue
			}
			cd := cellDoc{Start: start, End: start + i + 1}
			for _, s := range c.Signs() {
				cd.Signs = append(cd.Signs, signDoc{ID: id, Sign: s.String(), Tag: s.Tag, Probability: s.Probability})
				if s.Trace != nil {
					ids[s.Trace] = id
				}
				id++
			}
			doc.Cells = append(doc.Cells, cd)
		}
	}
	// second pass, when every input has its number
	for i := range doc.Cells {
		c := ch.cell(doc.Cells[i].Start, doc.Cells[i].End)
		for j, s := range c.Signs() {
			if s.Trace == nil {
				continue
			}
			td := &traceDoc{Word: s.Trace.Word}
			for _, d := range s.Trace.Derivations {
				dd := derivationDoc{Rule: d.Rule}
				for _, in := range d.Inputs {
					n, ok := ids[in]
					if !ok {
						n = -1
					}
					dd.Inputs = append(dd.Inputs, n)
				}
				td.Derivations = append(td.Derivations, dd)
			}
			doc.Cells[i].Signs[j].Trace = td
		}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("dumping chart: %w", err)
	}
	tracer().Debugf("dumped chart with %d signs", id)
	return nil
}

// Load reads a chart dumped by Dump. Signs are re-read from their notation.
// g is the grammar for further parsing and may be nil.
func Load(r io.Reader, g *rules.Grammar) (*Chart, error) {
	var doc chartDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("reading chart: %w", err)
	}
	ch := New(doc.Input, g)
	traces := map[int]*category.Trace{}
	type pending struct {
		trace *category.Trace
		doc   *traceDoc
	}
	var derived []pending
	for _, cd := range doc.Cells {
		c, err := ch.Cell(cd.Start, cd.End)
		if err != nil {
			return nil, fmt.Errorf("reading chart: %w", err)
		}
		for _, sd := range cd.Signs {
			s, err := notation.ParseSign(sd.Sign)
			if err != nil {
				return nil, fmt.Errorf("reading chart, sign %d: %w", sd.ID, err)
			}
			s.Tag, s.Probability = sd.Tag, sd.Probability
			if sd.Trace != nil {
				s.Trace = &category.Trace{Word: sd.Trace.Word}
				traces[sd.ID] = s.Trace
				derived = append(derived, pending{s.Trace, sd.Trace})
			}
			if !c.Add(s) {
				return nil, fmt.Errorf("reading chart: duplicate sign %d in (%d,%d)", sd.ID, cd.Start, cd.End)
			}
		}
	}
	for _, p := range derived {
		for _, dd := range p.doc.Derivations {
			d := category.Derivation{Rule: dd.Rule}
			for _, n := range dd.Inputs {
				d.Inputs = append(d.Inputs, traces[n]) // nil for unknown inputs
			}
			p.trace.Derivations = append(p.trace.Derivations, d)
		}
	}
	return ch, nil
}
