package semantics

import "strconv"

// Time is the position of an event in the input, usually the index of a chord.
// Predicates and coordinates may carry a time.
type Time int

// NoTime marks an untimed node.
const NoTime Time = -1

// IsSet is false for NoTime.
func (t Time) IsSet() bool {
	return t >= 0
}

func (t Time) String() string {
	if !t.IsSet() {
		return "-"
	}
	return strconv.Itoa(int(t))
}

// EarliestTime returns the minimum of the times which are set, or NoTime.
func EarliestTime(times ...Time) Time {
	earliest := NoTime
	for _, t := range times {
		if t.IsSet() && (!earliest.IsSet() || t < earliest) {
			earliest = t
		}
	}
	return earliest
}

// Simultaneous is true if both times are set and equal.
func Simultaneous(a, b Time) bool {
	return a.IsSet() && b.IsSet() && a == b
}

// StartTime returns the time at which the logical form begins, if known.
func (s *Semantics) StartTime() Time {
	if s.root == NoNode {
		return NoTime
	}
	return s.startTime(s.root)
}

func (s *Semantics) startTime(id NodeID) Time {
	n := s.nodes[id]
	switch n.kind {
	case PredicateKind, CoordinateKind:
		return n.time
	case LambdaKind:
		return s.startTime(n.kids[1])
	case ApplicationKind:
		return s.startTime(n.kids[0])
	case ListKind, ListCatKind:
		if len(n.kids) > 0 {
			return s.startTime(n.kids[0])
		}
	case CoordinationKind:
		times := make([]Time, len(n.kids))
		for i, kid := range n.kids {
			times[i] = s.startTime(kid)
		}
		return EarliestTime(times...)
	}
	return NoTime
}

// SetTime moves the start of the logical form to t, unless it starts earlier already.
func (s *Semantics) SetTime(t Time) {
	if s.root != NoNode {
		s.setTime(s.root, t)
	}
}

func (s *Semantics) setTime(id NodeID, t Time) {
	n := s.nodes[id]
	switch n.kind {
	case PredicateKind, CoordinateKind:
		s.nodes[id].time = EarliestTime(t, n.time)
	case LambdaKind:
		s.setTime(n.kids[1], t)
	case ApplicationKind:
		s.setTime(n.kids[0], t)
	case ListKind, ListCatKind, CoordinationKind:
		if len(n.kids) > 0 {
			s.setTime(n.kids[0], t)
		}
	}
}
