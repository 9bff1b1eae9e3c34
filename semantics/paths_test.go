package semantics

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func reduced(t *testing.T, e Expr) *Semantics {
	s := New(e)
	if err := s.BetaReduce(); err != nil {
		t.Fatal(err)
	}
	if err := s.CheckLinks(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPredicateOnPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.semantics")
	defer teardown()
	//
	s := reduced(t, Apply(Leftonto(), List(Point(Coordinate{}), Point(NewCoordinate(1, 0, 0, 0)))))
	if s.String() != "[leftonto(<0,0>), <1,0>]" {
		t.Errorf("expected predicate to move into the path, got %s", s)
	}
}

func TestListCatCollapses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.semantics")
	defer teardown()
	//
	s := reduced(t, ListCat(List(lit("a")), List(lit("b"), lit("c"))))
	if s.String() != "[a, b, c]" {
		t.Errorf("expected [a, b, c], got %s", s)
	}
	// pending: one part is not a path yet
	s = reduced(t, ListCat(List(lit("a")), Variable(x)))
	if s.Kind(s.Root()) != ListCatKind {
		t.Errorf("expected concatenation to stay pending, got %s", s)
	}
}

func TestCoordinationFlattens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.semantics")
	defer teardown()
	//
	s := reduced(t, Coordination(Coordination(lit("a"), lit("b")), lit("c")))
	if s.String() != "a&b&c" {
		t.Errorf("expected a&b&c, got %s", s)
	}
	if n := len(s.Children(s.Root())); n != 3 {
		t.Errorf("expected 3 cadences, got %d", n)
	}
	s = reduced(t, Apply(Coordination(lit("a"), lit("b")), List(Point(Coordinate{}))))
	if s.String() != "[(a&b <0,0>)]" {
		t.Errorf("expected coordination to move into the path, got %s", s)
	}
}

func TestNowSetsTime(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.semantics")
	defer teardown()
	//
	s := reduced(t, Apply(Now(3), Point(NewCoordinate(2, 1, 0, 0))))
	if s.String() != "<2,1>@3" {
		t.Errorf("expected <2,1>@3, got %s", s)
	}
	if s.StartTime() != 3 {
		t.Errorf("expected start time 3, got %v", s.StartTime())
	}
	s = reduced(t, Apply(Now(5), TimedPoint(Coordinate{}, 2)))
	if s.StartTime() != 2 {
		t.Errorf("expected earlier time 2 to survive, got %v", s.StartTime())
	}
	s = reduced(t, Apply(Now(1), Apply(Leftonto(), Point(Coordinate{}))))
	if s.String() != "leftonto@1(<0,0>)" {
		t.Errorf("expected time to move onto the predicate, got %s", s)
	}
	s = reduced(t, Apply(Now(4), Coordination(Predicate(LeftontoName, NoTime), lit("b"))))
	if s.String() != "leftonto@4&b" {
		t.Errorf("expected first cadence to be timed, got %s", s)
	}
}

func TestTemporalHelpers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.semantics")
	defer teardown()
	//
	if e := EarliestTime(NoTime, 4, 2, NoTime); e != 2 {
		t.Errorf("expected earliest time 2, got %v", e)
	}
	if e := EarliestTime(NoTime); e.IsSet() {
		t.Errorf("expected no time, got %v", e)
	}
	if !Simultaneous(3, 3) {
		t.Errorf("expected equal times to be simultaneous")
	}
	if Simultaneous(3, 4) || Simultaneous(NoTime, NoTime) {
		t.Errorf("expected different or missing times not to be simultaneous")
	}
}

func TestCoordinateArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.semantics")
	defer teardown()
	//
	c := NewCoordinate(0, 1, 0, 0).Add(-1, 0)
	if c != (Coordinate{X: 3, Y: 0, BlockX: -1, BlockY: 0}) {
		t.Errorf("expected <(3,0)/(-1,0)>, got %s", c)
	}
	c = NewCoordinate(1, 0, 0, 0).Add(-1, 0)
	if c != (Coordinate{}) {
		t.Errorf("expected <0,0>, got %s", c)
	}
	for _, p := range [][2]int{{0, 0}, {5, -2}, {-7, 4}, {3, 3}} {
		hx, hy := FromHarmonicCoord(p[0], p[1]).HarmonicCoord()
		if hx != p[0] || hy != p[1] {
			t.Errorf("harmonic coordinate (%d,%d) does not survive a round trip: (%d,%d)",
				p[0], p[1], hx, hy)
		}
	}
	dx, dy := FromHarmonicCoord(4, 1).Sub(FromHarmonicCoord(1, -1))
	if dx != 3 || dy != 2 {
		t.Errorf("expected vector (3,2), got (%d,%d)", dx, dy)
	}
}

func TestCombinatorsDoNotAlias(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.semantics")
	defer teardown()
	//
	a := New(List(Point(Coordinate{})))
	b := New(List(Point(NewCoordinate(1, 0, 0, 0))))
	c, err := Concatenate(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != "[<0,0>, <1,0>]" {
		t.Errorf("expected concatenated path, got %s", c)
	}
	c.SetTime(7)
	if a.StartTime().IsSet() || a.String() != "[<0,0>]" {
		t.Errorf("input changed by combination: %s", a)
	}
	k, err := CoordinateCadences(New(lit("a")), New(lit("b")))
	if err != nil || k.String() != "a&b" {
		t.Errorf("expected a&b, got %s (%v)", k, err)
	}
	r, err := ApplySemantics(Identity(), a)
	if err != nil || !Equal(r, a) {
		t.Errorf("expected identity to return its argument, got %s (%v)", r, err)
	}
}

func TestTranspose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cadenza.semantics")
	defer teardown()
	//
	if c := RootCoordinate(1); c != NewCoordinate(3, 1, 0, 0) {
		t.Errorf("expected root 1 at <3,1>, got %s", c)
	}
	s := New(List(Point(Coordinate{}), Point(NewCoordinate(1, 0, 0, 0))))
	s.Transpose(7) // G
	if s.String() != "[<1,0>, <2,0>]" {
		t.Errorf("expected [<1,0>, <2,0>], got %s", s)
	}
}
