package semantics

// Semantic combinators used by the combinatory rules. They copy their
// arguments into a new arena and never alias an input.

func (s *Semantics) adopt(parts ...*Semantics) []NodeID {
	ids := make([]NodeID, len(parts))
	for i, p := range parts {
		ids[i] = s.copyFrom(p, p.root)
	}
	return ids
}

func combined(factory VarFactory) *Semantics {
	return &Semantics{root: NoNode, fresh: factory}
}

// ApplySemantics builds the application (fn arg) and reduces it.
func ApplySemantics(fn, arg *Semantics) (*Semantics, error) {
	s := combined(fn.fresh)
	s.root = s.link(ApplicationKind, s.adopt(fn, arg)...)
	err := s.BetaReduce()
	return s, err
}

// Compose builds \$x.(f (g $x)) for a variable x fresh for both f and g and
// reduces it.
func Compose(f, g *Semantics) (*Semantics, error) {
	s := combined(f.fresh)
	x := s.nextVar(Var{Name: "x"}, f.Variables().Union(g.Variables()))
	ids := s.adopt(f, g)
	inner := s.link(ApplicationKind, ids[1], s.newVariable(x))
	outer := s.link(ApplicationKind, ids[0], inner)
	s.root = s.link(LambdaKind, s.newVariable(x), outer)
	err := s.BetaReduce()
	return s, err
}

// Concatenate joins two paths: a+b, reduced.
func Concatenate(a, b *Semantics) (*Semantics, error) {
	s := combined(a.fresh)
	s.root = s.link(ListCatKind, s.adopt(a, b)...)
	err := s.BetaReduce()
	return s, err
}

// CoordinateCadences combines cadences sharing a resolution: a&b, reduced.
func CoordinateCadences(a, b *Semantics) (*Semantics, error) {
	s := combined(a.fresh)
	s.root = s.link(CoordinationKind, s.adopt(a, b)...)
	err := s.BetaReduce()
	return s, err
}

// Identity is \$x0.$x0.
func Identity() *Semantics {
	x := Var{Name: "x"}
	return New(Lambda(x, Variable(x)))
}

func (s *Semantics) newVariable(v Var) NodeID {
	id := s.alloc(node{kind: VariableKind, v: v, time: NoTime})
	return id
}
