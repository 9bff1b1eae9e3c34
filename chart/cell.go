package chart

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/cadenza/category"
)

// Group is a set of signs in a cell sharing the same category.
type Group struct {
	Category category.Category
	Signs    []*category.Sign
}

// Cell is the set of signs for one span of the chart. Signs are kept in
// insertion order and indexed by their content key and by their category.
type Cell struct {
	signs  map[string]*category.Sign
	order  *arraylist.List // of *category.Sign
	groups map[string]*Group
	gorder []string // category keys in order of first appearance
}

// NewCell creates an empty cell.
func NewCell() *Cell {
	return &Cell{
		signs:  make(map[string]*category.Sign),
		order:  arraylist.New(),
		groups: make(map[string]*Group),
	}
}

// Add inserts a sign. If a structurally equal sign is already present, the
// new sign's derivation trace is merged into it and Add returns false.
func (c *Cell) Add(s *category.Sign) bool {
	key := s.Key()
	if old, ok := c.signs[key]; ok {
		if old.Trace == nil {
			old.Trace = s.Trace
		} else {
			old.Trace.Merge(s.Trace)
		}
		if s.Probability > old.Probability {
			old.Probability = s.Probability
		}
		return false
	}
	c.signs[key] = s
	c.order.Add(s)
	ckey := s.Category.Key()
	g, ok := c.groups[ckey]
	if !ok {
		g = &Group{Category: s.Category}
		c.groups[ckey] = g
		c.gorder = append(c.gorder, ckey)
	}
	g.Signs = append(g.Signs, s)
	return true
}

// Len is the number of signs in the cell.
func (c *Cell) Len() int {
	if c == nil {
		return 0
	}
	return c.order.Size()
}

// Contains is true if a sign structurally equal to s is in the cell.
func (c *Cell) Contains(s *category.Sign) bool {
	_, ok := c.signs[s.Key()]
	return ok
}

// Signs returns the signs of the cell in insertion order.
func (c *Cell) Signs() []*category.Sign {
	signs := make([]*category.Sign, 0, c.order.Size())
	it := c.order.Iterator()
	for it.Next() {
		signs = append(signs, it.Value().(*category.Sign))
	}
	return signs
}

// Groups returns the sign groups of the cell, in order of the first
// appearance of their category. The returned slice is a snapshot; groups
// created by later insertions are not part of it.
func (c *Cell) Groups() []*Group {
	groups := make([]*Group, len(c.gorder))
	for i, k := range c.gorder {
		g := c.groups[k]
		groups[i] = &Group{Category: g.Category, Signs: append([]*category.Sign(nil), g.Signs...)}
	}
	return groups
}

// SignsFor returns the signs with category cat.
func (c *Cell) SignsFor(cat category.Category) []*category.Sign {
	if g, ok := c.groups[cat.Key()]; ok {
		return append([]*category.Sign(nil), g.Signs...)
	}
	return nil
}

func (c *Cell) String() string {
	var b strings.Builder
	for i, s := range c.Signs() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.String())
		if s.Trace != nil {
			fmt.Fprintf(&b, "    %v", s.Trace)
		}
	}
	return b.String()
}
