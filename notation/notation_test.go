package notation

import (
	"errors"
	"testing"

	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/semantics"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestScanner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.notation")
	defer teardown()
	//
	lx, err := theLexer()
	if err != nil {
		t.Fatal(err)
	}
	toks, err := lx.tokenize(`#IV^T|D \$x12.<(3,0)/(-1,0)>@4`)
	if err != nil {
		t.Fatal(err)
	}
	kinds := []int{int(ID), '^', int(ID), '|', int(ID), '\\', int(VAR), '.', '<', '(', int(NUM),
		',', int(NUM), ')', '/', '(', int(NUM), ',', int(NUM), ')', '>', '@', int(NUM), int(EOF)}
	if len(toks) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d: %v", len(kinds), len(toks), toks)
	}
	for i, tok := range toks {
		if int(tok.TokType()) != kinds[i] {
			t.Errorf("token %d: expected type %d, got %d (%q)", i, kinds[i], tok.TokType(), tok.Lexeme())
		}
	}
	if toks[0].Lexeme() != "#IV" || toks[0].Span().From() != 0 || toks[0].Span().To() != 3 {
		t.Errorf("unexpected first token %q at %v", toks[0].Lexeme(), toks[0].Span())
	}
	if toks[16].Lexeme() != "-1" {
		t.Errorf("expected negative number -1, got %q", toks[16].Lexeme())
	}
}

func TestParseCategory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.notation")
	defer teardown()
	//
	tests := []struct {
		input string
		want  category.Category
	}{
		{"I^T", category.Simple(category.Half(0, category.Tonic))},
		{"I^T-V^D|S", category.Atomic(category.Half(0, category.Tonic),
			category.Half(7, category.Dominant|category.Subdominant))},
		{"V^D/{c}I^T", category.Complex(category.Half(7, category.Dominant),
			category.Slash{Forward: true, Modality: "c"}, category.Half(0, category.Tonic))},
		{`bVII^S\ #IV^T`, category.Complex(category.Half(10, category.Subdominant),
			category.Slash{}, category.Half(6, category.Tonic))},
		{"*", category.Dummy()},
	}
	for _, test := range tests {
		c, err := ParseCategory(test.input)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		if !c.Equal(test.want) {
			t.Errorf("%s: expected %s, got %s", test.input, test.want, c)
		}
	}
}

func TestParseSemantics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.notation")
	defer teardown()
	//
	x, y := semantics.Var{Name: "x"}, semantics.Var{Name: "y", Index: 2}
	tests := []struct {
		input string
		want  semantics.Expr
	}{
		{`$x`, semantics.Variable(x)},
		{`\$x0,$y2.($x0 $y2)`, semantics.Lambda(x, semantics.Lambda(y,
			semantics.Apply(semantics.Variable(x), semantics.Variable(y))))},
		{`(f a b)`, semantics.MultiApply(semantics.Literal("f"), semantics.Literal("a"), semantics.Literal("b"))},
		{`now@3(<1,2>)`, semantics.Apply(semantics.Now(3), semantics.Point(semantics.NewCoordinate(1, 2, 0, 0)))},
		{`(leftonto <0,0>)`, semantics.Apply(semantics.Leftonto(), semantics.Point(semantics.Coordinate{}))},
		{`[<0,0>, <(3,0)/(-1,0)>@4]`, semantics.List(semantics.Point(semantics.Coordinate{}),
			semantics.TimedPoint(semantics.NewCoordinate(3, 0, -1, 0), 4))},
		{`[]`, semantics.List()},
		{`(a+b)&c`, semantics.Coordination(semantics.ListCat(semantics.Literal("a"), semantics.Literal("b")),
			semantics.Literal("c"))},
		{`[a]+(\$x0.$x0)`, semantics.ListCat(semantics.List(semantics.Literal("a")),
			semantics.Lambda(x, semantics.Variable(x)))},
	}
	for _, test := range tests {
		s, err := ParseSemantics(test.input)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		if want := semantics.New(test.want); !semantics.Equal(s, want) {
			t.Errorf("%s: expected %s, got %s", test.input, want, s)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.notation")
	defer teardown()
	//
	x, y := semantics.Var{Name: "x"}, semantics.Var{Name: "y"}
	forms := []semantics.Expr{
		semantics.Lambda(x, semantics.Apply(semantics.Lambda(y, semantics.Variable(y)), semantics.Variable(x))),
		semantics.Apply(semantics.Apply(semantics.Literal("f"), semantics.Literal("a")), semantics.Literal("b")),
		semantics.List(semantics.Apply(semantics.Coordination(semantics.Literal("a"), semantics.Literal("b")),
			semantics.Point(semantics.Coordinate{}))),
		semantics.Apply(semantics.Now(2), semantics.Apply(semantics.Rightonto(), semantics.Variable(x))),
		semantics.Coordination(semantics.Coordination(semantics.Literal("a"), semantics.Literal("b")),
			semantics.Lambda(x, semantics.ListCat(semantics.Variable(x), semantics.Literal("c")))),
		semantics.List(semantics.Lambda(x, semantics.Variable(x)), semantics.Literal("b")),
	}
	for i, e := range forms {
		s := semantics.New(e)
		r, err := ParseSemantics(s.String())
		if err != nil {
			t.Errorf("%d: cannot read %s: %v", i, s, err)
			continue
		}
		if !semantics.Equal(s, r) {
			t.Errorf("%d: %s reads back as %s", i, s, r)
		}
	}
	for _, input := range []string{
		`V^D/{c}I^T : \$x0.leftonto($x0)`,
		`I^T-V^D|S : [<0,0>, <1,0>]`,
		`* : [<2,1>@0]`,
	} {
		sign, err := ParseSign(input)
		if err != nil {
			t.Errorf("%s: %v", input, err)
			continue
		}
		if sign.String() != input {
			t.Errorf("expected %s, got %s", input, sign)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.notation")
	defer teardown()
	//
	for _, input := range []string{
		"I^X", "VIII^T", "I^T/", "I^T I^T", "", "I^T ; a",
	} {
		if _, err := ParseCategory(input); !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: expected syntax error, got %v", input, err)
		}
	}
	for _, input := range []string{
		`\x.x`, `(a b`, `[a, b`, `<1>`, `a +`, `now@-1`, `a ? b`,
	} {
		_, err := ParseSemantics(input)
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("%q: expected syntax error, got %v", input, err)
			continue
		}
		t.Logf("%v", err)
	}
	if _, err := ParseSign("I^T a"); err == nil {
		t.Errorf("expected error for missing ':'")
	}
}
