package semantics

// Expr is a builder value for logical forms. Exprs are plain trees without
// parent links; New materializes them into an arena. Use as
//
//    x := semantics.Var{Name: "x"}
//    f := semantics.New(semantics.Lambda(x, semantics.Apply(semantics.Leftonto(), semantics.Variable(x))))
//
type Expr struct {
	kind  Kind
	v     Var
	name  string
	time  Time
	coord Coordinate
	items []Expr
}

// Kind returns the kind of node the expression will become.
func (e Expr) Kind() Kind {
	return e.kind
}

// Variable is an expression for a variable occurence.
func Variable(v Var) Expr {
	return Expr{kind: VariableKind, v: v}
}

// Lambda abstracts v over body.
func Lambda(v Var, body Expr) Expr {
	return Expr{kind: LambdaKind, items: []Expr{Variable(v), body}}
}

// Apply is the application of functor to argument.
func Apply(functor, argument Expr) Expr {
	return Expr{kind: ApplicationKind, items: []Expr{functor, argument}}
}

// MultiApply applies functor to each argument in turn: (((f a) b) c).
func MultiApply(functor Expr, arguments ...Expr) Expr {
	for _, arg := range arguments {
		functor = Apply(functor, arg)
	}
	return functor
}

// MultiAbstract abstracts over vars, the first one outermost: \$x,$y.body.
func MultiAbstract(body Expr, vars ...Var) Expr {
	for i := len(vars) - 1; i >= 0; i-- {
		body = Lambda(vars[i], body)
	}
	return body
}

// Literal is a constant without special behaviour.
func Literal(name string) Expr {
	return Expr{kind: LiteralKind, name: name}
}

// Predicate is a predicate literal with an optional time.
func Predicate(name string, t Time) Expr {
	return Expr{kind: PredicateKind, name: name, time: t}
}

// Leftonto is the predicate for a movement to the left in the tonal space.
func Leftonto() Expr {
	return Predicate(LeftontoName, NoTime)
}

// Rightonto is the predicate for a movement to the right in the tonal space.
func Rightonto() Expr {
	return Predicate(RightontoName, NoTime)
}

// Now is the time-setting predicate.
func Now(t Time) Expr {
	return Predicate(NowName, t)
}

// Point is a tonal space coordinate.
func Point(c Coordinate) Expr {
	return Expr{kind: CoordinateKind, coord: c, time: NoTime}
}

// TimedPoint is a tonal space coordinate with a time.
func TimedPoint(c Coordinate, t Time) Expr {
	return Expr{kind: CoordinateKind, coord: c, time: t}
}

// List is a path through the tonal space.
func List(items ...Expr) Expr {
	return Expr{kind: ListKind, items: items}
}

// ListCat is a concatenation of paths, pending reduction of its parts.
func ListCat(lists ...Expr) Expr {
	return Expr{kind: ListCatKind, items: lists}
}

// Coordination is a set of cadences sharing a common resolution.
func Coordination(cadences ...Expr) Expr {
	return Expr{kind: CoordinationKind, items: cadences}
}

func (s *Semantics) build(e Expr) NodeID {
	var kids []NodeID
	if len(e.items) > 0 {
		kids = make([]NodeID, len(e.items))
		for i, item := range e.items {
			kids[i] = s.build(item)
		}
	}
	t := e.time
	if e.kind != PredicateKind && e.kind != CoordinateKind {
		t = NoTime
	}
	id := s.link(e.kind, kids...)
	s.nodes[id].v = e.v
	s.nodes[id].name = e.name
	s.nodes[id].time = t
	s.nodes[id].coord = e.coord
	return id
}

// Expr converts the subtree at id back into a builder expression.
func (s *Semantics) Expr(id NodeID) Expr {
	n := s.nodes[id]
	e := Expr{kind: n.kind, v: n.v, name: n.name, time: n.time, coord: n.coord}
	for _, kid := range n.kids {
		e.items = append(e.items, s.Expr(kid))
	}
	return e
}
