package cadenza

import "fmt"

// --- Tokens of the sign notation -------------------------------------------

// TokType is a category type for a Token. Constants are defined by the
// scanner producing the tokens.
type TokType int

// Token represents an input token of the sign notation, e.g., a roman
// numeral, a variable or a punctuation character:
//
//    TokType = ID          // identifier for this kind of tokens
//    Lexeme  = "bVII"      // lexeme how it appeared in the input string
//    Value   = "bVII"      // token value, may be nil
//    Span    = 3…7         // occured from position 3 in the input string
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of chart nodes or input positions.
// A span denotes a start position and the position just behind the end. Chart
// edges are always spans with From() < To().
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

// Adjoins is true if other starts exactly where s ends. Binary rules combine
// signs of adjoining spans only.
func (s Span) Adjoins(other Span) bool {
	return s[1] == other[0]
}

// Split splits s at position middle, which has to lie strictly inside s.
func (s Span) Split(middle uint64) (Span, Span, bool) {
	if middle <= s[0] || middle >= s[1] {
		return s, Span{}, false
	}
	return Span{s[0], middle}, Span{middle, s[1]}, true
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
