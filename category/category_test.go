package category

import (
	"testing"

	"github.com/npillmayer/cadenza/semantics"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFunctionSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.category")
	defer teardown()
	//
	fs, err := ParseFunctions("T|D")
	if err != nil {
		t.Fatal(err)
	}
	if fs != Tonic|Dominant || fs.String() != "T|D" {
		t.Errorf("expected T|D, got %v", fs)
	}
	if fs.Single() || !Tonic.Single() {
		t.Errorf("single function test failed")
	}
	if _, err = ParseFunctions("X"); err == nil {
		t.Errorf("expected error for unknown function X")
	}
}

func TestRomanNumerals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.category")
	defer teardown()
	//
	for root := 0; root < 12; root++ {
		r, err := ParseRoman(RomanNumeral(root))
		if err != nil || r != root {
			t.Errorf("%d: roman numeral %s does not survive a round trip (%d, %v)",
				root, RomanNumeral(root), r, err)
		}
	}
	if r, _ := ParseRoman("bbVII"); r != 9 {
		t.Errorf("expected bbVII to be 9, got %d", r)
	}
	if RomanNumeral(-1) != "VII" {
		t.Errorf("expected -1 to be VII, got %s", RomanNumeral(-1))
	}
}

func TestHalfCategoryMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.category")
	defer teardown()
	//
	tests := []struct {
		a, b HalfCategory
		want bool
	}{
		{Half(0, Tonic), Half(0, Tonic), true},
		{Half(0, Tonic), Half(0, Tonic|Dominant), true},
		{Half(0, Tonic|Dominant), Half(0, Tonic), true},
		{Half(0, Tonic), Half(7, Tonic), false},
		{Half(0, Tonic), Half(0, Dominant|Subdominant), false},
		{Half(0, Tonic|Dominant), Half(0, Tonic|Dominant), false},
	}
	for i, test := range tests {
		if got := test.a.Matches(test.b); got != test.want {
			t.Errorf("%d: %v matches %v = %v, expected %v", i, test.a, test.b, got, test.want)
		}
	}
}

func TestCategories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.category")
	defer teardown()
	//
	i, v := Half(0, Tonic), Half(7, Dominant)
	tests := []struct {
		c    Category
		want string
	}{
		{Simple(i), "I^T"},
		{Atomic(i, v), "I^T-V^D"},
		{Complex(v, Slash{Forward: true}, i), "V^D/I^T"},
		{Complex(v, Slash{Forward: true, Modality: CadenceModality}, i), "V^D/{c}I^T"},
		{Complex(Half(1, Dominant), Slash{}, Half(5, Subdominant)), `bII^D\IV^S`},
		{Dummy(), "*"},
	}
	for k, test := range tests {
		if test.c.String() != test.want {
			t.Errorf("%d: expected %s, got %s", k, test.want, test.c)
		}
		c := test.c.Copy()
		if !c.Equal(test.c) || c.Key() != test.c.Key() {
			t.Errorf("%d: copy of %s differs", k, test.c)
		}
		for j := range tests {
			if j != k && test.c.Key() == tests[j].c.Key() {
				t.Errorf("%s and %s share a key", test.c, tests[j].c)
			}
		}
	}
	a := Complex(v, Slash{Forward: true}, i).Absolute(2)
	if a.String() != "VI^D/II^T" {
		t.Errorf("expected VI^D/II^T, got %s", a)
	}
}

func TestSignKeyAndMemo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.category")
	defer teardown()
	//
	s1 := NewSign(Simple(Half(0, Tonic)), semantics.New(semantics.Literal("a")))
	s2 := NewSign(Simple(Half(0, Tonic)), semantics.New(semantics.Literal("a")))
	s3 := NewSign(Simple(Half(0, Tonic)), semantics.New(semantics.Literal("b")))
	if s1.Key() != s2.Key() || !s1.Equal(s2) {
		t.Errorf("expected equal signs to share a key")
	}
	if s1.Key() == s3.Key() || s1.Equal(s3) {
		t.Errorf("expected %s and %s to differ", s1, s3)
	}
	if s1.String() != "I^T : a" {
		t.Errorf("expected 'I^T : a', got %q", s1)
	}
	if s1.CheckRuleApplied(">", s3) {
		t.Errorf("no rule has been applied yet")
	}
	s1.NoteRuleApplied(">", s3)
	if !s1.CheckRuleApplied(">", s3) || s1.CheckRuleApplied(">", s2) || s1.CheckRuleApplied("<", s3) {
		t.Errorf("tried-rule memo is inaccurate")
	}
	if c := s1.Copy(); c.CheckRuleApplied(">", s3) {
		t.Errorf("copy must not inherit the tried-rule memo")
	}
}

func TestTraceMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.category")
	defer teardown()
	//
	g, c, f := Lexical("G7"), Lexical("C"), Lexical("F")
	t1 := Derived(">", g, c)
	t2 := Derived("<", g, f)
	t1.Merge(t2)
	t1.Merge(Derived(">", g, c))
	if len(t1.Derivations) != 2 {
		t.Errorf("expected 2 derivations, got %d", len(t1.Derivations))
	}
	top := Derived("<dev>", t1, Derived(">B", t1, c))
	if n := top.Count(); n != 4 {
		t.Errorf("expected 4 derivation trees, got %d", n)
	}
	if t1.String() != "(> G7 C)|…" {
		t.Errorf("unexpected trace rendering %s", t1)
	}
	if !c.IsLexical() || t1.IsLexical() {
		t.Errorf("lexical trace test failed")
	}
}
