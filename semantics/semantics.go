package semantics

import (
	"fmt"
)

// NodeID addresses a node within the arena of a Semantics.
type NodeID int32

// NoNode is the parent of a root node, and the ID of nothing at all.
const NoNode NodeID = -1

// Kind is the type of a logical form node.
type Kind int8

// Node kinds. The set is closed: rewriting operations switch over all of them.
const (
	NoKind Kind = iota
	VariableKind
	LambdaKind
	ApplicationKind
	LiteralKind
	PredicateKind
	CoordinateKind
	ListKind
	ListCatKind
	CoordinationKind
)

var kindNames = [...]string{"none", "variable", "lambda", "application", "literal",
	"predicate", "coordinate", "list", "listcat", "coordination"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", k)
	}
	return kindNames[k]
}

// Var is the identity of a variable. Two variables are the same if both name
// and index are equal.
type Var struct {
	Name  string
	Index int
}

func (v Var) String() string {
	return fmt.Sprintf("$%s%d", v.Name, v.Index)
}

// Names of the predicate literals.
const (
	LeftontoName  = "leftonto"
	RightontoName = "rightonto"
	NowName       = "now"
)

// IsPredicateName is true for the names of the predicate literals.
func IsPredicateName(name string) bool {
	return name == LeftontoName || name == RightontoName || name == NowName
}

// node is the arena cell. Children are stored in kids:
//
//    Lambda       [variable, body]
//    Application  [functor, argument]
//    List…        items
//
type node struct {
	kind   Kind
	parent NodeID
	kids   []NodeID
	v      Var        // variables
	name   string     // literals and predicates
	time   Time       // predicates and coordinates
	coord  Coordinate // coordinates
}

// Semantics is the root container owning one logical form.
type Semantics struct {
	nodes []node
	root  NodeID
	fresh VarFactory
}

// New materializes an expression into a new Semantics.
func New(e Expr) *Semantics {
	s := &Semantics{root: NoNode}
	s.root = s.build(e)
	return s
}

// WithVarFactory sets the generator of fresh variables used during
// capture avoidance and composition. A nil factory selects NextUnusedVariable.
func (s *Semantics) WithVarFactory(f VarFactory) *Semantics {
	s.fresh = f
	return s
}

func (s *Semantics) nextVar(base Var, avoid VarSet) Var {
	if s.fresh == nil {
		return NextUnusedVariable(base, avoid)
	}
	return s.fresh(base, avoid)
}

// --- Arena -----------------------------------------------------------------

func (s *Semantics) alloc(n node) NodeID {
	n.parent = NoNode
	s.nodes = append(s.nodes, n)
	return NodeID(len(s.nodes) - 1)
}

// link creates an inner node and adopts its children.
func (s *Semantics) link(k Kind, kids ...NodeID) NodeID {
	id := s.alloc(node{kind: k, kids: kids, time: NoTime})
	for _, kid := range kids {
		s.nodes[kid].parent = id
	}
	return id
}

// replace puts repl into the place of old. The parent's child slot and the
// parent index of repl are updated together; old is orphaned.
func (s *Semantics) replace(old, repl NodeID) {
	if old == repl {
		return
	}
	p := s.nodes[old].parent
	if p == NoNode {
		if s.root != old {
			panic(fmt.Sprintf("semantics: replacing orphan node %d", old))
		}
		s.root = repl
	} else {
		found := false
		for i, kid := range s.nodes[p].kids {
			if kid == old {
				s.nodes[p].kids[i] = repl
				found = true
				break
			}
		}
		if !found {
			panic(fmt.Sprintf("semantics: node %d not a child of its parent %d", old, p))
		}
	}
	s.nodes[repl].parent = p
	s.nodes[old].parent = NoNode
}

// copyFrom deep-copies the subtree at id of src into the arena of s. The copy
// is not attached to a parent. src may be s itself.
func (s *Semantics) copyFrom(src *Semantics, id NodeID) NodeID {
	n := src.nodes[id]
	var kids []NodeID
	if len(n.kids) > 0 {
		kids = make([]NodeID, len(n.kids))
		for i, kid := range n.kids {
			kids[i] = s.copyFrom(src, kid)
		}
	}
	c := s.alloc(node{kind: n.kind, kids: kids, v: n.v, name: n.name,
		time: n.time, coord: n.coord})
	for _, kid := range kids {
		s.nodes[kid].parent = c
	}
	return c
}

// Copy returns a deep clone with a compacted arena.
func (s *Semantics) Copy() *Semantics {
	if s == nil {
		return nil
	}
	c := &Semantics{root: NoNode, fresh: s.fresh}
	if s.root != NoNode {
		c.nodes = make([]node, 0, s.Size())
		c.root = c.copyFrom(s, s.root)
	}
	return c
}

// Size counts the nodes reachable from the root.
func (s *Semantics) Size() int {
	if s == nil || s.root == NoNode {
		return 0
	}
	cnt := 0
	s.walk(s.root, func(NodeID) { cnt++ })
	return cnt
}

func (s *Semantics) walk(id NodeID, f func(NodeID)) {
	f(id)
	for _, kid := range s.nodes[id].kids {
		s.walk(kid, f)
	}
}

// CheckLinks verifies that every reachable node is listed as a child of its
// parent exactly where its parent index points to.
func (s *Semantics) CheckLinks() error {
	if s.root == NoNode {
		return nil
	}
	if p := s.nodes[s.root].parent; p != NoNode {
		return fmt.Errorf("root node %d has parent %d", s.root, p)
	}
	var err error
	s.walk(s.root, func(id NodeID) {
		for _, kid := range s.nodes[id].kids {
			if p := s.nodes[kid].parent; p != id && err == nil {
				err = fmt.Errorf("node %d is a child of %d, but links to parent %d", kid, id, p)
			}
		}
	})
	return err
}

// --- Accessors -------------------------------------------------------------

// Root returns the root node of the logical form.
func (s *Semantics) Root() NodeID {
	return s.root
}

// Kind returns the kind of a node.
func (s *Semantics) Kind(id NodeID) Kind {
	if id == NoNode {
		return NoKind
	}
	return s.nodes[id].kind
}

// Parent returns the parent of a node or NoNode.
func (s *Semantics) Parent(id NodeID) NodeID {
	return s.nodes[id].parent
}

// Children returns the child nodes of a node.
func (s *Semantics) Children(id NodeID) []NodeID {
	kids := make([]NodeID, len(s.nodes[id].kids))
	copy(kids, s.nodes[id].kids)
	return kids
}

// Variable returns the variable of a variable node or the bound variable of
// a lambda node.
func (s *Semantics) Variable(id NodeID) (Var, bool) {
	switch s.nodes[id].kind {
	case VariableKind:
		return s.nodes[id].v, true
	case LambdaKind:
		return s.nodes[s.nodes[id].kids[0]].v, true
	}
	return Var{}, false
}

// Name returns the name of a literal or predicate node.
func (s *Semantics) Name(id NodeID) string {
	return s.nodes[id].name
}

// CoordinateAt returns the tonal space point of a coordinate node.
func (s *Semantics) CoordinateAt(id NodeID) (Coordinate, bool) {
	if s.nodes[id].kind != CoordinateKind {
		return Coordinate{}, false
	}
	return s.nodes[id].coord, true
}

// --- Structural equality ---------------------------------------------------

// Equal is true if a and b are structurally equal, including variable names.
func Equal(a, b *Semantics) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.root == NoNode || b.root == NoNode {
		return a.root == b.root
	}
	return equalNodes(a, a.root, b, b.root)
}

func equalNodes(a *Semantics, x NodeID, b *Semantics, y NodeID) bool {
	n, m := a.nodes[x], b.nodes[y]
	if n.kind != m.kind || len(n.kids) != len(m.kids) {
		return false
	}
	switch n.kind {
	case VariableKind:
		return n.v == m.v
	case LiteralKind:
		return n.name == m.name
	case PredicateKind:
		return n.name == m.name && n.time == m.time
	case CoordinateKind:
		return n.coord == m.coord && n.time == m.time
	}
	for i := range n.kids {
		if !equalNodes(a, n.kids[i], b, m.kids[i]) {
			return false
		}
	}
	return true
}
