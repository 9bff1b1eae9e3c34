package lexicon

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/cadenza/notation"
	"github.com/npillmayer/cadenza/rules"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestScopeUpsearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.lexicon")
	defer teardown()
	//
	parent := NewScope("parent", nil)
	child := NewScope("child", parent)
	tonic := NewEntry("Tonic", []string{"", "M7"}, notation.MustParseSign("I^T : [<0,0>]"))
	parent.Define(tonic)
	if e, sc := child.Resolve("Tonic"); e != tonic || sc != parent {
		t.Errorf("expected to find Tonic in parent scope, got %v in %v", e, sc)
	}
	if tonic.Signs[0].Tag != "Tonic" {
		t.Errorf("expected sign to be tagged with family name, is %q", tonic.Signs[0].Tag)
	}
	override := NewEntry("Tonic", []string{""})
	child.Define(override)
	if e, sc := child.Resolve("Tonic"); e != override || sc != child {
		t.Errorf("expected override in child scope, got %v in %v", e, sc)
	}
	if entries := child.ResolveChord("M7"); len(entries) != 1 || entries[0] != override {
		t.Errorf("expected overriding family for M7, got %v", entries)
	}
	if entries := parent.ResolveChord("7"); entries != nil {
		t.Errorf("expected no family for 7, got %v", entries)
	}
	if old := parent.Define(NewEntry("Tonic", []string{"6"})); old != tonic {
		t.Errorf("expected redefinition to return old family")
	}
	if entries := parent.ResolveChord("M7"); len(entries) != 0 {
		t.Errorf("redefinition did not remove chord types: %v", entries)
	}
}

func TestScopeStack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.lexicon")
	defer teardown()
	//
	l := New()
	g := l.Globals()
	v := l.PushScope("bebop")
	if l.Current() != v || v.Parent != g || l.Variant("bebop") != v {
		t.Errorf("scope stack is inconsistent")
	}
	if l.PopScope() != v || l.Current() != g {
		t.Errorf("pop did not restore global scope")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected popping the global scope to panic")
		}
	}()
	l.PopScope()
}

func TestDefaultLexicon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.lexicon")
	defer teardown()
	//
	l := Default()
	var names []string
	l.Globals().Each(func(e *Entry) { names = append(names, e.Name) })
	if strings.Join(names, ",") != "Dom,DomTritone,IIm,Subdom,Tonic" {
		t.Errorf("unexpected families %v", names)
	}
	e, _ := l.Globals().Resolve("Tonic")
	if len(e.Signs) != 2 || e.Signs[1].String() != `I^T/I^T : \$x0.$x0` {
		t.Errorf("expected tonic family to be expanded by tonic repetition, got %v", e.Signs)
	}
	if entries := l.Globals().ResolveChord("7"); len(entries) != 2 {
		t.Errorf("expected 2 families for dominant sevenths, got %v", entries)
	}
	plain := l.Variant("plain")
	if plain == nil {
		t.Fatalf("expected variant 'plain'")
	}
	n := 0
	for _, e := range plain.ResolveChord("7") {
		n += len(e.Signs)
	}
	if n != 2 {
		t.Errorf("expected variant to suppress tritone substitution, got %d signs", n)
	}
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.lexicon")
	defer teardown()
	//
	bad := []string{
		"families:\n  - name: X\n    signs: [\"I^Q : a\"]\n",
		"families:\n  - chords: [\"\"]\n",
		"families: [",
	}
	for i, doc := range bad {
		if _, err := Load(strings.NewReader(doc), rules.Default()); err == nil {
			t.Errorf("%d: expected lexicon to be rejected", i)
		} else {
			t.Logf("%d: %v", i, err)
		}
	}
}

func TestDumpAndReload(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.lexicon")
	defer teardown()
	//
	l := Default()
	var buf bytes.Buffer
	if err := Dump(&buf, l.Globals()); err != nil {
		t.Fatal(err)
	}
	r, err := Load(&buf, nil)
	if err != nil {
		t.Fatalf("cannot reload dumped lexicon: %v", err)
	}
	l.Globals().Each(func(e *Entry) {
		o, _ := r.Globals().Resolve(e.Name)
		if o == nil || len(o.Signs) != len(e.Signs) {
			t.Errorf("family %s differs after reload", e.Name)
			return
		}
		for i := range e.Signs {
			if !e.Signs[i].Equal(o.Signs[i]) {
				t.Errorf("family %s: %s reloads as %s", e.Name, e.Signs[i], o.Signs[i])
			}
		}
	})
}
