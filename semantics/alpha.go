package semantics

// Substitution maps variables of another logical form to variables of the
// receiver. It is threaded through a check for alpha-equivalence and
// collects the renaming of free variables.
type Substitution map[Var]Var

// binding pairs the variables bound by two corresponding abstractions.
type binding struct {
	ours, theirs Var
}

// AlphaEquivalent checks if s equals a logical form derived from other by a
// consistent renaming of variables, extending subst. Bound variables must be
// bound by corresponding abstractions; free variables must be renamed the
// same way everywhere. subst may be nil.
func (s *Semantics) AlphaEquivalent(other *Semantics, subst Substitution) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.root == NoNode || other.root == NoNode {
		return s.root == other.root
	}
	if subst == nil {
		subst = Substitution{}
	}
	return s.alphaEq(s.root, other, other.root, nil, subst)
}

// AlphaEquivalent checks a and b for equality up to renaming of variables.
func AlphaEquivalent(a, b *Semantics) bool {
	return a.AlphaEquivalent(b, nil)
}

func (s *Semantics) alphaEq(x NodeID, o *Semantics, y NodeID, scope []binding, subst Substitution) bool {
	n, m := s.nodes[x], o.nodes[y]
	if n.kind != m.kind || len(n.kids) != len(m.kids) {
		return false
	}
	switch n.kind {
	case VariableKind:
		return alphaEqVariables(n.v, m.v, scope, subst)
	case LambdaKind:
		b := binding{ours: s.nodes[n.kids[0]].v, theirs: o.nodes[m.kids[0]].v}
		inner := make([]binding, len(scope), len(scope)+1)
		copy(inner, scope)
		inner = append(inner, b)
		return s.alphaEq(n.kids[1], o, m.kids[1], inner, subst)
	case LiteralKind, PredicateKind, CoordinateKind:
		return equalNodes(s, x, o, y)
	}
	for i := range n.kids {
		if !s.alphaEq(n.kids[i], o, m.kids[i], scope, subst) {
			return false
		}
	}
	return true
}

func alphaEqVariables(ours, theirs Var, scope []binding, subst Substitution) bool {
	for i := len(scope) - 1; i >= 0; i-- {
		b := scope[i]
		if b.ours == ours || b.theirs == theirs {
			return b.ours == ours && b.theirs == theirs
		}
	}
	if v, ok := subst[theirs]; ok {
		return v == ours
	}
	for _, v := range subst {
		if v == ours {
			return false
		}
	}
	subst[theirs] = ours
	return true
}
