package category

import (
	"github.com/cnf/structhash"
)

// Slash is the connective of a complex category. Forward slashes look for
// their argument to the right. A non-empty modality restricts the rules
// which may use the category; CadenceModality marks cadences.
type Slash struct {
	Forward  bool
	Modality string
}

// CadenceModality is the slash modality of cadential categories.
const CadenceModality = "c"

func (sl Slash) String() string {
	s := "\\"
	if sl.Forward {
		s = "/"
	}
	if sl.Modality != "" {
		s += "{" + sl.Modality + "}"
	}
	return s
}

// Category is the syntactic type of a sign. The set of categories is closed:
// *AtomicCategory, *ComplexCategory and *DummyCategory.
type Category interface {
	IsAtomic() bool
	Equal(Category) bool
	Copy() Category
	Key() string
	String() string
	isCategory()
}

// AtomicCategory carries the half-categories of both edges of its span.
type AtomicCategory struct {
	From HalfCategory
	To   HalfCategory
}

// Atomic creates an atomic category from its edges.
func Atomic(from, to HalfCategory) *AtomicCategory {
	return &AtomicCategory{From: from, To: to}
}

// Simple creates an atomic category with identical edges.
func Simple(h HalfCategory) *AtomicCategory {
	return &AtomicCategory{From: h, To: h}
}

func (*AtomicCategory) isCategory() {}

// IsAtomic is true.
func (c *AtomicCategory) IsAtomic() bool { return true }

// Equal compares edges.
func (c *AtomicCategory) Equal(other Category) bool {
	o, ok := other.(*AtomicCategory)
	return ok && c.From == o.From && c.To == o.To
}

// Copy returns an independent copy.
func (c *AtomicCategory) Copy() Category {
	cc := *c
	return &cc
}

// Key returns a content hash.
func (c *AtomicCategory) Key() string {
	return hash(*c, c)
}

// Absolute makes a category relative to a chord root absolute.
func (c *AtomicCategory) Absolute(root int) *AtomicCategory {
	return Atomic(c.From.Absolute(root), c.To.Absolute(root))
}

func (c *AtomicCategory) String() string {
	if c.From == c.To {
		return c.From.String()
	}
	return c.From.String() + "-" + c.To.String()
}

// ComplexCategory is a function from an argument half-category to a result
// half-category. Arguments and results are never categories themselves.
type ComplexCategory struct {
	Result   HalfCategory
	Slash    Slash
	Argument HalfCategory
}

// Complex creates a complex category.
func Complex(result HalfCategory, slash Slash, argument HalfCategory) *ComplexCategory {
	return &ComplexCategory{Result: result, Slash: slash, Argument: argument}
}

func (*ComplexCategory) isCategory() {}

// IsAtomic is false.
func (c *ComplexCategory) IsAtomic() bool { return false }

// Equal compares result, slash and argument.
func (c *ComplexCategory) Equal(other Category) bool {
	o, ok := other.(*ComplexCategory)
	return ok && *c == *o
}

// Copy returns an independent copy.
func (c *ComplexCategory) Copy() Category {
	cc := *c
	return &cc
}

// Key returns a content hash.
func (c *ComplexCategory) Key() string {
	return hash(*c, c)
}

// Absolute makes a category relative to a chord root absolute.
func (c *ComplexCategory) Absolute(root int) *ComplexCategory {
	return Complex(c.Result.Absolute(root), c.Slash, c.Argument.Absolute(root))
}

func (c *ComplexCategory) String() string {
	return c.Result.String() + c.Slash.String() + c.Argument.String()
}

// DummyCategory stands in for the syntax of signs which have not been
// derived by the grammar, e.g. results of a backoff model.
type DummyCategory struct{}

// Dummy returns a dummy category.
func Dummy() *DummyCategory {
	return &DummyCategory{}
}

func (*DummyCategory) isCategory() {}

// IsAtomic is true: dummy signs are complete results.
func (*DummyCategory) IsAtomic() bool { return true }

// Equal is true for other dummies.
func (*DummyCategory) Equal(other Category) bool {
	_, ok := other.(*DummyCategory)
	return ok
}

// Copy returns a new dummy.
func (*DummyCategory) Copy() Category { return Dummy() }

// Key returns a content hash.
func (c *DummyCategory) Key() string {
	return hash(struct{ Dummy bool }{true}, c)
}

func (*DummyCategory) String() string { return "*" }

// Absolute transposes c, if it is relative to a chord root. Dummies are
// returned as they are.
func Absolute(c Category, root int) Category {
	switch cat := c.(type) {
	case *AtomicCategory:
		return cat.Absolute(root)
	case *ComplexCategory:
		return cat.Absolute(root)
	}
	return c
}

func hash(v interface{}, c Category) string {
	h, err := structhash.Hash(v, 1)
	if err != nil {
		tracer().Errorf("cannot hash category %v: %v", c, err)
		return c.String()
	}
	return h
}
