package chart

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/cadenza/rules"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDirectedParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.chart")
	defer teardown()
	//
	tg := functorAndArgument("V^D/I^T : f", "I^T : a")
	p := NewDirectedParser(rules.Default(), tg)
	tree := Node(">", Leaf("X"), Leaf("Y"))
	if tree.String() != "(> X Y)" || tree.Width() != 2 {
		t.Errorf("unexpected tree %v of width %d", tree, tree.Width())
	}
	signs, err := p.Parse(context.Background(), tree)
	if err != nil {
		t.Fatal(err)
	}
	if len(signs) != 1 || signs[0].Category.String() != "V^D-I^T" {
		t.Errorf("expected V^D-I^T, got %v", signs)
	}
}

func TestDirectedParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.chart")
	defer teardown()
	//
	tg := functorAndArgument("V^D/I^T : f", "I^T : a")
	trees := []*DerivationTree{
		Node("<", Leaf("X"), Leaf("Y")),         // does not apply
		Node("nosuchrule", Leaf("X"), Leaf("Y")), // unknown
		Node("<rep>", Leaf("X"), Leaf("Y")),      // unary rule with 2 children
		Node(">", Leaf("X")),                     // too few leaves
		Node(">", Leaf("X"), Leaf("Y"), Leaf("Z")),
	}
	for i, tree := range trees {
		_, err := NewDirectedParser(rules.Default(), tg).Parse(context.Background(), tree)
		if !errors.Is(err, ErrDerivationMismatch) {
			t.Errorf("%d: expected derivation mismatch for %v, got %v", i, tree, err)
			continue
		}
		t.Logf("%d: %v", i, err)
	}
	_, err := NewDirectedParser(rules.Default(), tg).Parse(context.Background(), trees[0])
	var perr *DirectedParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a DirectedParseError, got %v", err)
	}
	if perr.Node != trees[0] || len(perr.Candidates) != 2 || len(perr.Candidates[0]) != 1 {
		t.Errorf("expected error to report node and candidates, got %+v", perr)
	}
}

func TestDumpAndLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.chart")
	defer teardown()
	//
	dumpfile := filepath.Join(t.TempDir(), "chart.yaml")
	p := NewParser(rules.Default(), functorAndArgument("V^D/I^T : f", "I^T : a"), DumpTo(dumpfile))
	if _, err := p.Parse(context.Background()); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := p.Chart().Dump(&buf); err != nil {
		t.Fatal(err)
	}
	t.Logf("dump:\n%s", buf.String())
	loaded, err := Load(&buf, rules.Default())
	if err != nil {
		t.Fatal(err)
	}
	assertSameChart(t, p.Chart(), loaded)
	f, err := os.Open(dumpfile)
	if err != nil {
		t.Fatalf("expected parser to dump chart: %v", err)
	}
	defer f.Close()
	fromFile, err := Load(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertSameChart(t, p.Chart(), fromFile)
}

func assertSameChart(t *testing.T, ch, other *Chart) {
	t.Helper()
	if ch.Size() != other.Size() {
		t.Fatalf("charts differ in size")
	}
	for start := 0; start < ch.Size(); start++ {
		for end := start + 1; end <= ch.Size(); end++ {
			a, _ := ch.Cell(start, end)
			b, _ := other.Cell(start, end)
			if a.Len() != b.Len() {
				t.Errorf("cell (%d,%d) differs: %d vs %d signs", start, end, a.Len(), b.Len())
				continue
			}
			for _, s := range a.Signs() {
				if !b.Contains(s) {
					t.Errorf("cell (%d,%d): sign %v lost", start, end, s)
				}
			}
		}
	}
	parses := other.Parses()
	if len(parses) != 1 || parses[0].Trace.String() != "(> X Y)" || parses[0].Probability != 0.25 {
		t.Errorf("expected derivation (> X Y) to survive, got %v", parses)
	}
}
