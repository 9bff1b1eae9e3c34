package lexicon

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/notation"
	"github.com/npillmayer/cadenza/rules"
	"gopkg.in/yaml.v3"
)

type familyDoc struct {
	Name   string   `yaml:"name"`
	Chords []string `yaml:"chords"`
	Signs  []string `yaml:"signs"`
}

type variantDoc struct {
	Name     string      `yaml:"name"`
	Families []familyDoc `yaml:"families"`
}

type lexiconDoc struct {
	Families []familyDoc  `yaml:"families"`
	Variants []variantDoc `yaml:"variants"`
}

// Load reads a lexicon in YAML format. Malformed signs are reported with
// the family they occur in. If g is not nil, the lexicon is built with g's
// expansion rules.
func Load(r io.Reader, g *rules.Grammar) (*Lexicon, error) {
	var doc lexiconDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	l := New()
	if err := defineFamilies(l.Current(), doc.Families); err != nil {
		return nil, err
	}
	for _, v := range doc.Variants {
		if v.Name == "" {
			return nil, fmt.Errorf("lexicon variant without name")
		}
		sc := l.PushScope(v.Name)
		err := defineFamilies(sc, v.Families)
		l.PopScope()
		if err != nil {
			return nil, err
		}
	}
	if err := l.Build(g); err != nil {
		return nil, err
	}
	tracer().Infof("loaded lexicon with %d families and %d variants",
		l.Globals().Size(), len(doc.Variants))
	return l, nil
}

func defineFamilies(sc *Scope, families []familyDoc) error {
	for _, f := range families {
		if f.Name == "" {
			return fmt.Errorf("family without name in scope %s", sc.Name)
		}
		signs := make([]*category.Sign, 0, len(f.Signs))
		for _, s := range f.Signs {
			sign, err := notation.ParseSign(s)
			if err != nil {
				return fmt.Errorf("family %s: %w", f.Name, err)
			}
			signs = append(signs, sign)
		}
		sc.Define(NewEntry(f.Name, f.Chords, signs...))
	}
	return nil
}

// Dump writes the families of a scope, without its ancestors, in YAML
// format.
func Dump(w io.Writer, sc *Scope) error {
	var doc lexiconDoc
	sc.Each(func(e *Entry) {
		if _, in := sc.Resolve(e.Name); in != sc {
			return
		}
		f := familyDoc{Name: e.Name, Chords: e.Chords}
		for _, s := range e.Signs {
			f.Signs = append(f.Signs, s.String())
		}
		doc.Families = append(doc.Families, f)
	})
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}

// Default returns the built-in jazz lexicon, built with the default grammar.
func Default() *Lexicon {
	l, err := Load(strings.NewReader(DefaultYAML), rules.Default())
	if err != nil {
		panic(err) // the built-in lexicon is well-formed
	}
	return l
}

// DefaultYAML is the built-in lexicon. Dominants resolve a fifth down
// (leftonto), subdominants a fifth up (rightonto); tritone substitutes
// resolve a semitone down.
const DefaultYAML = `
families:
  - name: Tonic
    chords: ["", "M7", "6", "m", "m7", "mM7"]
    signs:
      - "I^T : [<0,0>]"
  - name: Dom
    chords: ["7", "9", "13", "7b9", "7#9"]
    signs:
      - "I^D/{c}IV^T|D : \\$x0.leftonto($x0)"
  - name: DomTritone
    chords: ["7", "9"]
    signs:
      - "I^D/{c}VII^T|D : \\$x0.leftonto($x0)"
  - name: Subdom
    chords: ["", "M7", "6"]
    signs:
      - "I^S/{c}V^T|S : \\$x0.rightonto($x0)"
  - name: IIm
    chords: ["m7"]
    signs:
      - "I^D/{c}IV^D : \\$x0.leftonto($x0)"
variants:
  - name: plain
    families:
      - name: DomTritone
        chords: []
        signs: []
`
