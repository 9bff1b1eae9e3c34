package category

import (
	"fmt"
	"strings"
)

// FunctionSet is a set of tonal functions.
type FunctionSet uint8

// Tonal functions.
const (
	Tonic FunctionSet = 1 << iota
	Dominant
	Subdominant
)

var functionLetters = []struct {
	f FunctionSet
	l byte
}{{Tonic, 'T'}, {Dominant, 'D'}, {Subdominant, 'S'}}

// ParseFunctions reads a set of functions like "T", "TD" or "T|D".
func ParseFunctions(s string) (FunctionSet, error) {
	var fs FunctionSet
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'T':
			fs |= Tonic
		case 'D':
			fs |= Dominant
		case 'S':
			fs |= Subdominant
		case '|':
		default:
			return 0, fmt.Errorf("unknown tonal function %q in %q", s[i], s)
		}
	}
	if fs == 0 {
		return 0, fmt.Errorf("empty set of tonal functions")
	}
	return fs, nil
}

// Contains is true if every function of other is in fs.
func (fs FunctionSet) Contains(other FunctionSet) bool {
	return other != 0 && fs&other == other
}

// Single is true for sets of exactly one function.
func (fs FunctionSet) Single() bool {
	return fs != 0 && fs&(fs-1) == 0
}

// Intersect returns the functions in both sets.
func (fs FunctionSet) Intersect(other FunctionSet) FunctionSet {
	return fs & other
}

// Overlaps is true if the sets share a function.
func (fs FunctionSet) Overlaps(other FunctionSet) bool {
	return fs&other != 0
}

func (fs FunctionSet) String() string {
	var parts []string
	for _, fl := range functionLetters {
		if fs&fl.f != 0 {
			parts = append(parts, string(fl.l))
		}
	}
	return strings.Join(parts, "|")
}

// --- Half categories -------------------------------------------------------

// HalfCategory is one edge of a category: a chord root relative to the key
// (pitch class, 0 = I) and the tonal functions the chord may have.
type HalfCategory struct {
	Root      int
	Functions FunctionSet
}

// Half creates a half-category, wrapping root into 0…11.
func Half(root int, fs FunctionSet) HalfCategory {
	return HalfCategory{Root: pitchClass(root), Functions: fs}
}

// Matches is true if both halves have the same root and one of them
// requires a single function the other one admits.
func (h HalfCategory) Matches(other HalfCategory) bool {
	if h.Root != other.Root {
		return false
	}
	if other.Functions.Single() && h.Functions.Contains(other.Functions) {
		return true
	}
	return h.Functions.Single() && other.Functions.Contains(h.Functions)
}

// Absolute transposes a half-category from relative to absolute pitch.
func (h HalfCategory) Absolute(root int) HalfCategory {
	return Half(h.Root+root, h.Functions)
}

func (h HalfCategory) String() string {
	return RomanNumeral(h.Root) + "^" + h.Functions.String()
}

// --- Roman numerals --------------------------------------------------------

var romans = [12]string{"I", "bII", "II", "bIII", "III", "IV", "#IV", "V", "bVI", "VI", "bVII", "VII"}

var romanDegrees = map[string]int{"I": 0, "II": 2, "III": 4, "IV": 5, "V": 7, "VI": 9, "VII": 11}

// RomanNumeral returns the name of a pitch class relative to the key.
func RomanNumeral(root int) string {
	return romans[pitchClass(root)]
}

// ParseRoman reads a roman numeral with optional accidentals, e.g. "bVII" or
// "#IV", and returns its pitch class.
func ParseRoman(s string) (int, error) {
	shift := 0
	i := 0
	for ; i < len(s) && (s[i] == 'b' || s[i] == '#'); i++ {
		if s[i] == 'b' {
			shift--
		} else {
			shift++
		}
	}
	degree, ok := romanDegrees[s[i:]]
	if !ok {
		return 0, fmt.Errorf("not a roman numeral: %q", s)
	}
	return pitchClass(degree + shift), nil
}

func pitchClass(p int) int {
	p %= 12
	if p < 0 {
		p += 12
	}
	return p
}
