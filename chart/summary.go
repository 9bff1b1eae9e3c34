package chart

import (
	"fmt"
	"strings"
)

// Summary is a sparse matrix of sign counts per span, rows indexed by start
// and columns by end. Empty cells are not stored.
//
// Entries are kept as (start, end, count) triplets, sorted by row and
// column.
type Summary struct {
	entries []spanCount
	size    int
}

type spanCount struct {
	start, end int
	count      int
}

// NewSummary creates an empty summary for a chart with n input tokens.
func NewSummary(n int) *Summary {
	return &Summary{size: n}
}

// Size is the number of input tokens.
func (m *Summary) Size() int {
	return m.size
}

// CellCount is the number of non-empty cells.
func (m *Summary) CellCount() int {
	return len(m.entries)
}

// Count returns the number of signs for span (start, end), 0 for empty cells.
func (m *Summary) Count(start, end int) int {
	for _, e := range m.entries {
		if !e.before(start, end) {
			if e.at(start, end) {
				return e.count
			}
			break
		}
	}
	return 0
}

// Set stores a count for a span. Setting a count of 0 removes the span.
func (m *Summary) Set(start, end, count int) *Summary {
	at := 0
	for k, e := range m.entries {
		if !e.before(start, end) {
			if e.at(start, end) {
				if count == 0 {
					m.entries = append(m.entries[:k], m.entries[k+1:]...)
				} else {
					m.entries[k].count = count
				}
				return m
			}
			break
		}
		at++
	}
	if count == 0 {
		return m
	}
	e := spanCount{start: start, end: end, count: count}
	m.entries = append(m.entries, e)
	copy(m.entries[at+1:], m.entries[at:])
	m.entries[at] = e
	return m
}

// Each calls f for every non-empty cell, ordered by start, then end.
func (m *Summary) Each(f func(start, end, count int)) {
	for _, e := range m.entries {
		f(e.start, e.end, e.count)
	}
}

// Table returns the counts as rows of strings, suitable for printing as a
// table. The first row is a header of end positions; empty cells are
// printed as ".".
func (m *Summary) Table() [][]string {
	rows := make([][]string, 0, m.size+1)
	header := []string{"start\\end"}
	for end := 1; end <= m.size; end++ {
		header = append(header, fmt.Sprintf("%d", end))
	}
	rows = append(rows, header)
	for start := 0; start < m.size; start++ {
		row := []string{fmt.Sprintf("%d", start)}
		for end := 1; end <= m.size; end++ {
			switch n := m.Count(start, end); {
			case end <= start:
				row = append(row, "")
			case n == 0:
				row = append(row, ".")
			default:
				row = append(row, fmt.Sprintf("%d", n))
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (m *Summary) String() string {
	var b strings.Builder
	for _, row := range m.Table() {
		for i, col := range row {
			if i > 0 {
				b.WriteString("\t")
			}
			b.WriteString(col)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (e spanCount) before(start, end int) bool {
	return e.start < start || e.start == start && e.end < end
}

func (e spanCount) at(start, end int) bool {
	return e.start == start && e.end == end
}
