package semantics

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// VarSet is a set of variables. A nil VarSet is a valid empty set for reading.
type VarSet map[Var]struct{}

var exists = struct{}{}

// Vars creates a set from a list of variables.
func Vars(vars ...Var) VarSet {
	set := VarSet{}
	for _, v := range vars {
		set[v] = exists
	}
	return set
}

// Add inserts v and returns the set, which is allocated if it has been nil.
func (set VarSet) Add(v Var) VarSet {
	if set == nil {
		set = VarSet{}
	}
	set[v] = exists
	return set
}

// Contains checks if v is a member of the set.
func (set VarSet) Contains(v Var) bool {
	if set == nil {
		return false
	}
	_, ok := set[v]
	return ok
}

// Union returns a new set with members of either set.
func (set VarSet) Union(other VarSet) VarSet {
	u := make(VarSet, len(set)+len(other))
	for v := range set {
		u[v] = exists
	}
	for v := range other {
		u[v] = exists
	}
	return u
}

// Intersect returns a new set with members of both sets.
func (set VarSet) Intersect(other VarSet) VarSet {
	i := VarSet{}
	for v := range set {
		if other.Contains(v) {
			i[v] = exists
		}
	}
	return i
}

// Minus returns a new set with members of set which are not in other.
func (set VarSet) Minus(other VarSet) VarSet {
	d := VarSet{}
	for v := range set {
		if !other.Contains(v) {
			d[v] = exists
		}
	}
	return d
}

func varComparator(a, b interface{}) int {
	v, w := a.(Var), b.(Var)
	if c := utils.StringComparator(v.Name, w.Name); c != 0 {
		return c
	}
	return utils.IntComparator(v.Index, w.Index)
}

// Sorted returns the members ordered by name, then by index. Rewriting
// iterates over sorted variables to keep fresh-variable choices reproducible.
func (set VarSet) Sorted() []Var {
	tree := treeset.NewWith(varComparator)
	for v := range set {
		tree.Add(v)
	}
	vars := make([]Var, 0, tree.Size())
	for _, v := range tree.Values() {
		vars = append(vars, v.(Var))
	}
	return vars
}

func (set VarSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range set.Sorted() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.String())
	}
	b.WriteByte('}')
	return b.String()
}

// --- Fresh variables -------------------------------------------------------

// VarFactory creates a variable, derived from base, which is not a member of avoid.
type VarFactory func(base Var, avoid VarSet) Var

// NextUnusedVariable is the default VarFactory. It keeps the name of base and
// counts up the index, starting at 0, until the variable is not in avoid.
func NextUnusedVariable(base Var, avoid VarSet) Var {
	v := Var{Name: base.Name}
	for avoid.Contains(v) {
		v.Index++
	}
	return v
}

// --- Variable queries ------------------------------------------------------

// Variables returns every variable occuring in the logical form, bound or not.
func (s *Semantics) Variables() VarSet {
	if s.root == NoNode {
		return VarSet{}
	}
	return s.variables(s.root)
}

// BoundVariables returns the variables bound by abstractions within the
// logical form.
func (s *Semantics) BoundVariables() VarSet {
	if s.root == NoNode {
		return VarSet{}
	}
	return s.boundVariables(s.root)
}

// FreeVariables returns the variables with an occurence not bound by an
// enclosing abstraction.
func (s *Semantics) FreeVariables() VarSet {
	free := VarSet{}
	if s.root != NoNode {
		s.freeVariables(s.root, nil, free)
	}
	return free
}

func (s *Semantics) variables(id NodeID) VarSet {
	set := VarSet{}
	s.walk(id, func(n NodeID) {
		if s.nodes[n].kind == VariableKind {
			set[s.nodes[n].v] = exists
		}
	})
	return set
}

func (s *Semantics) boundVariables(id NodeID) VarSet {
	set := VarSet{}
	s.walk(id, func(n NodeID) {
		if s.nodes[n].kind == LambdaKind {
			set[s.nodes[s.nodes[n].kids[0]].v] = exists
		}
	})
	return set
}

func (s *Semantics) freeVariables(id NodeID, bound []Var, free VarSet) {
	n := s.nodes[id]
	switch n.kind {
	case VariableKind:
		for _, b := range bound {
			if b == n.v {
				return
			}
		}
		free[n.v] = exists
	case LambdaKind:
		bound = append(bound, s.nodes[n.kids[0]].v)
		s.freeVariables(n.kids[1], bound, free)
	default:
		for _, kid := range n.kids {
			s.freeVariables(kid, bound, free)
		}
	}
}

// ancestorBound collects the variables bound by abstractions enclosing id.
func (s *Semantics) ancestorBound(id NodeID) VarSet {
	set := VarSet{}
	for p := s.nodes[id].parent; p != NoNode; p = s.nodes[p].parent {
		if s.nodes[p].kind == LambdaKind {
			set[s.nodes[s.nodes[p].kids[0]].v] = exists
		}
	}
	return set
}

// --- Alpha conversion ------------------------------------------------------

// AlphaConvert renames every occurence of src to trg, binders included.
func (s *Semantics) AlphaConvert(src, trg Var) {
	if s.root != NoNode {
		s.alphaConvert(s.root, src, trg)
	}
}

func (s *Semantics) alphaConvert(id NodeID, src, trg Var) {
	s.walk(id, func(n NodeID) {
		if s.nodes[n].kind == VariableKind && s.nodes[n].v == src {
			s.nodes[n].v = trg
		}
	})
}

// renameBinders alpha-converts every abstraction over v below id to use trg.
// Only the scopes of those abstractions are touched.
func (s *Semantics) renameBinders(id NodeID, v, trg Var) {
	n := s.nodes[id]
	if n.kind == LambdaKind && s.nodes[n.kids[0]].v == v {
		s.alphaConvert(id, v, trg)
		return
	}
	for _, kid := range n.kids {
		s.renameBinders(kid, v, trg)
	}
}
