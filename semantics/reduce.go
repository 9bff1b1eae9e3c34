package semantics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gconf"
)

// ErrInvalidSubstitution is the sentinel for attempts to substitute a
// variable within the scope of an abstraction binding it.
var ErrInvalidSubstitution = errors.New("invalid substitution")

// SubstitutionError reports an invalid substitution together with the
// enclosing expressions it occured in, innermost first.
type SubstitutionError struct {
	Var         Var
	Target      string   // the expression to be substituted
	Abstraction string   // the abstraction binding Var
	Within      []string // enclosing applications
}

func (e *SubstitutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "trying to substitute a bound variable: %s for %s in abstraction %s",
		e.Target, e.Var, e.Abstraction)
	for _, w := range e.Within {
		b.WriteString(". Within: ")
		b.WriteString(w)
	}
	return b.String()
}

// Unwrap makes SubstitutionError match ErrInvalidSubstitution.
func (e *SubstitutionError) Unwrap() error {
	return ErrInvalidSubstitution
}

// Substitute replaces every unbound occurence of src by a fresh copy of
// target. It fails with a *SubstitutionError if an abstraction in the
// logical form binds src.
func (s *Semantics) Substitute(src Var, target *Semantics) error {
	if s.root == NoNode || target == nil || target.root == NoNode {
		return nil
	}
	return s.substitute(s.root, src, target, target.root)
}

func (s *Semantics) substitute(id NodeID, src Var, from *Semantics, target NodeID) error {
	switch s.nodes[id].kind {
	case VariableKind:
		if s.nodes[id].v == src {
			s.replace(id, s.copyFrom(from, target))
		}
	case LambdaKind:
		if s.nodes[s.nodes[id].kids[0]].v == src {
			err := &SubstitutionError{
				Var:         src,
				Target:      from.format(target),
				Abstraction: s.format(id),
			}
			tracer().Errorf(err.Error())
			if configFlag("panic-on-invalid-substitution") {
				panic(err)
			}
			return err
		}
		return s.substitute(s.nodes[id].kids[1], src, from, target)
	case ApplicationKind:
		for i := 0; i < 2; i++ {
			if err := s.substitute(s.nodes[id].kids[i], src, from, target); err != nil {
				var serr *SubstitutionError
				if errors.As(err, &serr) {
					serr.Within = append(serr.Within, s.format(id))
				}
				return err
			}
		}
	case ListKind, ListCatKind, CoordinationKind:
		for i := range s.nodes[id].kids {
			if err := s.substitute(s.nodes[id].kids[i], src, from, target); err != nil {
				return err
			}
		}
	}
	return nil
}

// --- Beta reduction --------------------------------------------------------

// BetaReduce rewrites the logical form in place to beta-normal form.
func (s *Semantics) BetaReduce() error {
	if s.root == NoNode {
		return nil
	}
	_, err := s.reduce(s.root)
	return err
}

// reduce reduces the subtree at id and returns the node now occupying its place.
func (s *Semantics) reduce(id NodeID) (NodeID, error) {
	switch s.nodes[id].kind {
	case ApplicationKind:
		return s.reduceApplication(id)
	case LambdaKind:
		_, err := s.reduce(s.nodes[id].kids[1])
		return id, err
	case ListKind:
		return id, s.reduceChildren(id)
	case ListCatKind:
		return s.reduceListCat(id)
	case CoordinationKind:
		return s.reduceCoordination(id)
	}
	return id, nil
}

func (s *Semantics) reduceChildren(id NodeID) error {
	for i := range s.nodes[id].kids {
		if _, err := s.reduce(s.nodes[id].kids[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Semantics) reduceApplication(app NodeID) (NodeID, error) {
	if _, err := s.reduce(s.nodes[app].kids[0]); err != nil {
		return app, err
	}
	fn := s.nodes[app].kids[0]
	if s.nodes[fn].kind == LambdaKind {
		s.avoidCapture(app)
		param := s.nodes[s.nodes[fn].kids[0]].v
		arg := s.nodes[app].kids[1]
		if err := s.substitute(s.nodes[fn].kids[1], param, s, arg); err != nil {
			return app, err
		}
		body := s.nodes[fn].kids[1]
		s.replace(app, body)
		tracer().Debugf("β: %s", s.format(body))
		return s.reduce(body)
	}
	if applier := appliers[s.nodes[fn].kind]; applier != nil {
		if _, err := s.reduce(s.nodes[app].kids[1]); err != nil {
			return app, err
		}
		result, ok := applier.Apply(s, fn, s.nodes[app].kids[1])
		if !ok {
			return app, nil
		}
		s.replace(app, result)
		return s.reduce(result)
	}
	_, err := s.reduce(s.nodes[app].kids[1])
	return app, err
}

// avoidCapture renames variables of an application (λv.body arg) before
// substitution. Variables bound in both the argument and the functor are
// renamed within the argument. Free variables of the argument which are bound
// inside the body get their binders renamed. Fresh variables avoid every
// variable of functor and argument and every variable bound above app.
func (s *Semantics) avoidCapture(app NodeID) {
	fn, arg := s.nodes[app].kids[0], s.nodes[app].kids[1]
	funBound := s.boundVariables(fn)
	used := s.variables(arg).Union(s.variables(fn)).Union(s.ancestorBound(app))
	for _, v := range s.boundVariables(arg).Intersect(funBound).Sorted() {
		nv := s.nextVar(v, used)
		s.alphaConvert(arg, v, nv)
		used.Add(nv)
	}
	body := s.nodes[fn].kids[1]
	free := VarSet{}
	s.freeVariables(arg, nil, free)
	for _, v := range free.Intersect(s.boundVariables(body)).Sorted() {
		nv := s.nextVar(v, used)
		s.renameBinders(body, v, nv)
		used.Add(nv)
	}
}

// reduceListCat collapses into a single path once all parts are paths.
func (s *Semantics) reduceListCat(id NodeID) (NodeID, error) {
	if err := s.reduceChildren(id); err != nil {
		return id, err
	}
	kids := s.nodes[id].kids
	if len(kids) == 0 {
		return id, nil
	}
	for _, kid := range kids {
		if s.nodes[kid].kind != ListKind {
			return id, nil
		}
	}
	path := kids[0]
	for _, l := range kids[1:] {
		for _, item := range s.nodes[l].kids {
			s.nodes[path].kids = append(s.nodes[path].kids, item)
			s.nodes[item].parent = path
		}
		s.nodes[l].kids = nil
	}
	s.replace(id, path)
	return path, nil
}

// reduceCoordination flattens nested coordinations after reducing the cadences.
func (s *Semantics) reduceCoordination(id NodeID) (NodeID, error) {
	if err := s.reduceChildren(id); err != nil {
		return id, err
	}
	var flat []NodeID
	for _, kid := range s.nodes[id].kids {
		if s.nodes[kid].kind != CoordinationKind {
			flat = append(flat, kid)
			continue
		}
		for _, c := range s.nodes[kid].kids {
			flat = append(flat, c)
			s.nodes[c].parent = id
		}
		s.nodes[kid].kids = nil
		s.nodes[kid].parent = NoNode
	}
	s.nodes[id].kids = flat
	return id, nil
}

// --- Custom application ----------------------------------------------------

// Applier is implemented for node kinds with their own behaviour when used
// as a functor. Apply receives an already reduced argument and returns the
// node to take the place of the application. ok is false if the application
// is in normal form already.
type Applier interface {
	Apply(s *Semantics, functor, argument NodeID) (result NodeID, ok bool)
}

var appliers = map[Kind]Applier{
	PredicateKind:    predicateApplier{},
	CoordinationKind: coordinationApplier{},
}

// applyToPathHead moves an application of fn into the first point of a path:
// fn([a, b]) ⇒ [fn(a), b].
func (s *Semantics) applyToPathHead(fn, path NodeID) NodeID {
	if len(s.nodes[path].kids) == 0 {
		return path
	}
	head := s.nodes[path].kids[0]
	s.nodes[fn].parent = NoNode
	s.nodes[head].parent = NoNode
	app := s.link(ApplicationKind, fn, head)
	s.nodes[path].kids[0] = app
	s.nodes[app].parent = path
	return path
}

type predicateApplier struct{}

// Apply of a predicate to a path applies it to the head of the path. now@T
// hands its time on to coordinates, predicates and cadences and vanishes.
func (predicateApplier) Apply(s *Semantics, fn, arg NodeID) (NodeID, bool) {
	if s.nodes[arg].kind == ListKind {
		return s.applyToPathHead(fn, arg), true
	}
	if s.nodes[fn].name != NowName {
		return NoNode, false
	}
	t := s.nodes[fn].time
	switch s.nodes[arg].kind {
	case CoordinateKind:
		s.setTime(arg, t)
		return arg, true
	case ApplicationKind:
		switch f := s.nodes[arg].kids[0]; s.nodes[f].kind {
		case PredicateKind, CoordinationKind:
			s.setTime(f, t)
			return arg, true
		}
	case CoordinationKind:
		s.setTime(arg, t)
		return arg, true
	}
	return NoNode, false
}

type coordinationApplier struct{}

// Apply of a coordination to a path applies it to the head of the path.
func (coordinationApplier) Apply(s *Semantics, fn, arg NodeID) (NodeID, bool) {
	if s.nodes[arg].kind == ListKind {
		return s.applyToPathHead(fn, arg), true
	}
	return NoNode, false
}

// configFlag reads a global configuration flag. An uninitialized
// configuration reads as false.
func configFlag(key string) (on bool) {
	defer func() {
		if r := recover(); r != nil {
			on = false
		}
	}()
	return gconf.GetBool(key)
}
