package rules

import (
	"errors"
	"testing"

	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/semantics"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var (
	tonic = category.Half(0, category.Tonic)
	dom   = category.Half(7, category.Dominant)
	subd  = category.Half(5, category.Subdominant)
	fwd   = category.Slash{Forward: true}
	bwd   = category.Slash{}
	cad   = category.Slash{Forward: true, Modality: category.CadenceModality}
	xvar  = semantics.Var{Name: "x"}
)

func sign(c category.Category, e semantics.Expr) *category.Sign {
	return category.NewSign(c, semantics.New(e))
}

func lit(name string) semantics.Expr {
	return semantics.Literal(name)
}

func TestForwardApplication(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	functor := sign(category.Complex(dom, fwd, tonic), lit("f"))
	argument := sign(category.Simple(tonic), lit("a"))
	results, err := NewApplication(true).Apply(functor, argument)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
	if results[0].Category.String() != "V^D-I^T" {
		t.Errorf("expected V^D-I^T, got %s", results[0].Category)
	}
	want := semantics.New(semantics.Apply(lit("f"), lit("a")))
	if !semantics.AlphaEquivalent(results[0].Semantics, want) {
		t.Errorf("expected %s, got %s", want, results[0].Semantics)
	}
	if functor.Semantics.String() != "f" || argument.Semantics.String() != "a" {
		t.Errorf("inputs have been changed")
	}
}

func TestApplicationReducesSemantics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	functor := sign(category.Complex(dom, cad, tonic),
		semantics.Lambda(xvar, semantics.Apply(semantics.Leftonto(), semantics.Variable(xvar))))
	argument := sign(category.Simple(category.Half(0, category.Tonic|category.Dominant)),
		semantics.List(semantics.Point(semantics.Coordinate{})))
	results, err := NewApplication(true).Apply(functor, argument)
	if err != nil || len(results) != 1 {
		t.Fatalf("expected 1 result, got %v (%v)", results, err)
	}
	if results[0].Semantics.String() != "[leftonto(<0,0>)]" {
		t.Errorf("expected [leftonto(<0,0>)], got %s", results[0].Semantics)
	}
}

func TestBackwardApplication(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	argument := sign(category.Atomic(subd, tonic), lit("a"))
	functor := sign(category.Complex(dom, bwd, tonic), lit("f"))
	results, err := NewApplication(false).Apply(argument, functor)
	if err != nil || len(results) != 1 {
		t.Fatalf("expected 1 result, got %v (%v)", results, err)
	}
	if results[0].Category.String() != "IV^S-V^D" {
		t.Errorf("expected IV^S-V^D, got %s", results[0].Category)
	}
	// wrong direction
	if results, _ = NewApplication(true).Apply(argument, functor); len(results) != 0 {
		t.Errorf("forward application must not apply to a backward functor")
	}
}

func TestApplicationDoesNotMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	functor := sign(category.Complex(dom, fwd, tonic), lit("f"))
	tests := []*category.Sign{
		sign(category.Simple(category.Half(2, category.Tonic)), lit("a")), // root differs
		sign(category.Simple(category.Half(0, category.Dominant)), lit("a")),
		sign(category.Complex(tonic, fwd, tonic), lit("a")),
		sign(category.Dummy(), lit("a")),
	}
	for i, argument := range tests {
		results, err := NewApplication(true).Apply(functor, argument)
		if err != nil || results != nil {
			t.Errorf("%d: expected application not to apply to %s, got %v (%v)", i, argument, results, err)
		}
	}
}

func TestHarmonicComposition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	x, y, z := category.Half(0, category.Tonic), category.Half(7, category.Dominant), category.Half(2, category.Dominant)
	f := sign(category.Complex(x, fwd, y), lit("f"))
	g := sign(category.Complex(y, fwd, z), lit("g"))
	results, err := NewComposition(true, true).Apply(f, g)
	if err != nil || len(results) != 1 {
		t.Fatalf("expected 1 result, got %v (%v)", results, err)
	}
	if results[0].Category.String() != "I^T/II^D" {
		t.Errorf("expected I^T/II^D, got %s", results[0].Category)
	}
	w := semantics.Var{Name: "w"}
	want := semantics.New(semantics.Lambda(w, semantics.Apply(lit("f"), semantics.Apply(lit("g"), semantics.Variable(w)))))
	if !semantics.AlphaEquivalent(results[0].Semantics, want) {
		t.Errorf("expected %s, got %s", want, results[0].Semantics)
	}
	// backward: Y\Z X\Y => X\Z
	g = sign(category.Complex(y, bwd, z), lit("g"))
	f = sign(category.Complex(x, bwd, y), lit("f"))
	results, err = NewComposition(false, true).Apply(g, f)
	if err != nil || len(results) != 1 {
		t.Fatalf("expected 1 result, got %v (%v)", results, err)
	}
	if results[0].Category.String() != `I^T\II^D` {
		t.Errorf(`expected I^T\II^D, got %s`, results[0].Category)
	}
	if !semantics.AlphaEquivalent(results[0].Semantics, want) {
		t.Errorf("expected %s, got %s", want, results[0].Semantics)
	}
}

func TestCrossingComposition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	x, y, z := tonic, dom, subd
	// X/Y Y\Z => X\Z
	results, _ := NewComposition(true, false).Apply(
		sign(category.Complex(x, fwd, y), lit("f")), sign(category.Complex(y, bwd, z), lit("g")))
	if len(results) != 1 || results[0].Category.String() != `I^T\IV^S` {
		t.Errorf(`expected I^T\IV^S, got %v`, results)
	}
	// Y/Z X\Y => X/Z
	results, _ = NewComposition(false, false).Apply(
		sign(category.Complex(y, fwd, z), lit("g")), sign(category.Complex(x, bwd, y), lit("f")))
	if len(results) != 1 || results[0].Category.String() != "I^T/IV^S" {
		t.Errorf("expected I^T/IV^S, got %v", results)
	}
	// harmonic slashes do not cross
	results, _ = NewComposition(true, false).Apply(
		sign(category.Complex(x, fwd, y), lit("f")), sign(category.Complex(y, fwd, z), lit("g")))
	if results != nil {
		t.Errorf("expected crossing composition not to apply, got %v", results)
	}
}

func TestCompositionModality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	f := sign(category.Complex(tonic, fwd, dom), lit("f"))
	g := sign(category.Complex(dom, cad, subd), lit("g"))
	results, _ := NewComposition(true, true).Apply(f, g)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %v", results)
	}
	if c := results[0].Category.(*category.ComplexCategory); c.Slash.Modality != category.CadenceModality {
		t.Errorf("expected cadential result, got %s", c)
	}
}

func TestDevelopment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	a := sign(category.Simple(tonic), semantics.List(semantics.Point(semantics.Coordinate{})))
	b := sign(category.Atomic(dom, tonic), semantics.List(semantics.Point(semantics.NewCoordinate(1, 0, 0, 0))))
	results, err := NewDevelopment().Apply(a, b)
	if err != nil || len(results) != 1 {
		t.Fatalf("expected 1 result, got %v (%v)", results, err)
	}
	if results[0].String() != "I^T : [<0,0>, <1,0>]" {
		t.Errorf("expected 'I^T : [<0,0>, <1,0>]', got %s", results[0])
	}
	if results, _ = NewDevelopment().Apply(a, sign(category.Complex(dom, fwd, tonic), lit("f"))); results != nil {
		t.Errorf("development must not apply to complex categories")
	}
}

func TestCoordination(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	arg1 := category.Half(0, category.Tonic|category.Dominant)
	arg2 := category.Half(0, category.Tonic|category.Subdominant)
	a := sign(category.Complex(dom, cad, arg1), lit("a"))
	b := sign(category.Complex(category.Half(2, category.Dominant), cad, arg2), lit("b"))
	results, err := NewCoordination().Apply(a, b)
	if err != nil || len(results) != 1 {
		t.Fatalf("expected 1 result, got %v (%v)", results, err)
	}
	if results[0].String() != "V^D/{c}I^T : a&b" {
		t.Errorf("expected 'V^D/{c}I^T : a&b', got %s", results[0])
	}
	// no cadence
	c := sign(category.Complex(dom, fwd, arg2), lit("c"))
	if results, _ = NewCoordination().Apply(a, c); results != nil {
		t.Errorf("coordination needs cadential slashes")
	}
	// different result functions
	d := sign(category.Complex(subd, cad, arg2), lit("d"))
	if results, _ = NewCoordination().Apply(a, d); results != nil {
		t.Errorf("coordination needs equal result functions")
	}
}

func TestRepetitionRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	results, _ := NewTonicRepetition().Apply(sign(category.Simple(tonic), lit("t")))
	if len(results) != 1 || results[0].String() != `I^T/I^T : \$x0.$x0` {
		t.Errorf(`expected 'I^T/I^T : \$x0.$x0', got %v`, results)
	}
	if results, _ = NewTonicRepetition().Apply(sign(category.Atomic(tonic, dom), lit("t"))); results != nil {
		t.Errorf("tonic repetition needs equal edges")
	}
	results, _ = NewCadenceRepetition().Apply(sign(category.Complex(dom, cad, tonic), lit("c")))
	if len(results) != 1 || results[0].Category.String() != "V^D/V^D" {
		t.Errorf("expected V^D/V^D, got %v", results)
	}
	if results, _ = NewCadenceRepetition().Apply(sign(category.Complex(dom, fwd, tonic), lit("c"))); results != nil {
		t.Errorf("cadence repetition needs a cadence")
	}
}

func TestTracesAreRecorded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	functor := sign(category.Complex(dom, fwd, tonic), lit("f"))
	functor.Trace = category.Lexical("G7")
	argument := sign(category.Simple(tonic), lit("a"))
	argument.Trace = category.Lexical("C")
	results, _ := NewApplication(true).Apply(functor, argument)
	if len(results) != 1 || results[0].Trace.String() != "(> G7 C)" {
		t.Errorf("expected trace (> G7 C), got %v", results)
	}
}

func TestGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.rules")
	defer teardown()
	//
	g := Default()
	for _, name := range []string{">", "appb", ">Bx", "compb", "<dev>", "coord", "rep", "<crep>"} {
		if _, err := g.Rule(name); err != nil {
			t.Errorf("expected rule %s to exist: %v", name, err)
		}
	}
	if _, err := g.Rule("nope"); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("expected ErrUnknownRule, got %v", err)
	}
	r, err := g.Restrict(">", "<")
	if err != nil || len(r.Binary) != 2 || len(r.Expansion) != 2 {
		t.Errorf("restricted grammar is wrong: %v", err)
	}
	signs := []*category.Sign{
		sign(category.Simple(tonic), lit("t")),
		sign(category.Complex(dom, cad, tonic), lit("c")),
		sign(category.Simple(category.Half(9, category.Tonic)), lit("t")),
	}
	expanded, err := g.Expand(signs)
	if err != nil {
		t.Fatal(err)
	}
	if len(expanded) != 6 {
		t.Errorf("expected 3 signs and 3 expansions, got %d: %v", len(expanded), expanded)
	}
	// identical expansions are kept once
	expanded, _ = g.Expand([]*category.Sign{signs[0], sign(category.Simple(tonic), lit("u"))})
	if len(expanded) != 3 {
		t.Errorf("expected 2 signs and 1 expansion, got %d: %v", len(expanded), expanded)
	}
}
