package lexicon

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/rules"
)

// Entry is a family of lexical signs. Entries are stored in scopes.
type Entry struct {
	Name   string
	Chords []string // chord types, e.g. "7" or "m7"; "" is a major triad
	Signs  []*category.Sign
}

// NewEntry creates a family. Every sign gets the family name as its tag.
func NewEntry(name string, chords []string, signs ...*category.Sign) *Entry {
	for _, s := range signs {
		s.Tag = name
	}
	return &Entry{Name: name, Chords: chords, Signs: signs}
}

func (e *Entry) String() string {
	return fmt.Sprintf("<family %s: %d signs>", e.Name, len(e.Signs))
}

// === Scopes ================================================================

// Scope is a named scope of family definitions. Scopes link back to a parent
// scope, forming a tree.
type Scope struct {
	Name    string
	Parent  *Scope
	entries map[string]*Entry
	chords  map[string][]string // chord type → family names
}

// NewScope creates a new scope.
func NewScope(name string, parent *Scope) *Scope {
	return &Scope{
		Name:    name,
		Parent:  parent,
		entries: make(map[string]*Entry),
		chords:  make(map[string][]string),
	}
}

func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Define stores a family in the scope. It returns the family previously
// stored under this name in the scope, if any.
func (s *Scope) Define(e *Entry) *Entry {
	old := s.entries[e.Name]
	if old != nil {
		for _, c := range old.Chords {
			s.chords[c] = remove(s.chords[c], old.Name)
		}
	}
	s.entries[e.Name] = e
	for _, c := range e.Chords {
		s.chords[c] = append(s.chords[c], e.Name)
	}
	tracer().P("scope", s.Name).Debugf("defined %v", e)
	return old
}

// Resolve finds a family. It returns the family (or nil) and the scope, on
// the path to the root of the scope tree, it was found in.
func (s *Scope) Resolve(name string) (*Entry, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if e := sc.entries[name]; e != nil {
			return e, sc
		}
	}
	return nil, nil
}

// ResolveChord finds the families responsible for a chord type. The
// innermost scope knowing about the chord type wins; families overridden
// in inner scopes are resolved there.
func (s *Scope) ResolveChord(chordType string) []*Entry {
	for sc := s; sc != nil; sc = sc.Parent {
		names, ok := sc.chords[chordType]
		if !ok || len(names) == 0 {
			continue
		}
		entries := make([]*Entry, 0, len(names))
		for _, n := range sortedNames(names) {
			if e, _ := s.Resolve(n); e != nil {
				entries = append(entries, e)
			}
		}
		return entries
	}
	return nil
}

// Size counts the families defined in this scope.
func (s *Scope) Size() int {
	return len(s.entries)
}

// Each calls f for every family visible from this scope, in order of
// family names.
func (s *Scope) Each(f func(*Entry)) {
	names := treeset.NewWith(utils.StringComparator)
	for sc := s; sc != nil; sc = sc.Parent {
		for n := range sc.entries {
			names.Add(n)
		}
	}
	names.Each(func(_ int, n interface{}) {
		e, _ := s.Resolve(n.(string))
		f(e)
	})
}

func sortedNames(names []string) []string {
	set := treeset.NewWith(utils.StringComparator)
	for _, n := range names {
		set.Add(n)
	}
	sorted := make([]string, 0, set.Size())
	for _, n := range set.Values() {
		sorted = append(sorted, n.(string))
	}
	return sorted
}

func remove(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// === Lexicon ===============================================================

// Lexicon is a tree of scopes, which can be treated as a stack while it is
// being built.
type Lexicon struct {
	base     *Scope
	tos      *Scope
	variants map[string]*Scope
	built    bool
}

// New creates a lexicon with an empty global scope.
func New() *Lexicon {
	l := &Lexicon{variants: make(map[string]*Scope)}
	l.PushScope("global")
	return l
}

// Globals gets the outermost scope.
func (l *Lexicon) Globals() *Scope {
	return l.base
}

// Current gets the innermost scope.
func (l *Lexicon) Current() *Scope {
	return l.tos
}

// Variant returns a named variant scope, or nil.
func (l *Lexicon) Variant(name string) *Scope {
	return l.variants[name]
}

// PushScope pushes a new scope onto the stack of scopes. Scopes other than
// the global one are registered as variants.
func (l *Lexicon) PushScope(name string) *Scope {
	sc := NewScope(name, l.tos)
	if l.tos == nil {
		l.base = sc
	} else {
		l.variants[name] = sc
	}
	l.tos = sc
	tracer().P("scope", name).Debugf("pushing new scope")
	return sc
}

// PopScope pops the innermost scope. The global scope is never popped.
func (l *Lexicon) PopScope() *Scope {
	sc := l.tos
	if sc.Parent == nil {
		panic("attempt to pop global scope of lexicon")
	}
	tracer().Debugf("popping scope [%s]", sc.Name)
	l.tos = sc.Parent
	return sc
}

// Build applies the expansion rules of a grammar to every family, once.
// Calling Build a second time is a no-op.
func (l *Lexicon) Build(g *rules.Grammar) error {
	if l.built || g == nil {
		return nil
	}
	scopes := []*Scope{l.base}
	for _, v := range l.variants {
		scopes = append(scopes, v)
	}
	for _, sc := range scopes {
		for _, e := range sc.entries {
			signs, err := g.Expand(e.Signs)
			if err != nil {
				return fmt.Errorf("expanding family %s: %w", e.Name, err)
			}
			tracer().Debugf("family %s expanded from %d to %d signs", e.Name, len(e.Signs), len(signs))
			e.Signs = signs
		}
	}
	l.built = true
	return nil
}
