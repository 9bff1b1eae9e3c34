package semantics

import (
	"strings"

	"github.com/cnf/structhash"
)

func (s *Semantics) String() string {
	if s == nil || s.root == NoNode {
		return "<nil>"
	}
	return s.format(s.root)
}

// Format renders the subtree at id in the sign notation.
func (s *Semantics) Format(id NodeID) string {
	return s.format(id)
}

func (s *Semantics) format(id NodeID) string {
	var b strings.Builder
	s.write(&b, id, ctxTop)
	return b.String()
}

// Printing contexts. Lambda bodies extend as far to the right as possible, so
// abstractions are parenthesized within infix operations. Nested
// concatenations and coordinations are parenthesized to keep their structure.
type context int

const (
	ctxTop context = iota
	ctxListCat
	ctxCoordination
)

func (s *Semantics) write(b *strings.Builder, id NodeID, ctx context) {
	n := s.nodes[id]
	switch n.kind {
	case VariableKind:
		b.WriteString(n.v.String())
	case LambdaKind:
		if ctx != ctxTop {
			b.WriteByte('(')
			defer b.WriteByte(')')
		}
		b.WriteByte('\\')
		b.WriteString(s.nodes[n.kids[0]].v.String())
		body := n.kids[1]
		for s.nodes[body].kind == LambdaKind {
			b.WriteByte(',')
			b.WriteString(s.nodes[s.nodes[body].kids[0]].v.String())
			body = s.nodes[body].kids[1]
		}
		b.WriteByte('.')
		s.write(b, body, ctxTop)
	case ApplicationKind:
		if fn := s.nodes[n.kids[0]]; fn.kind == PredicateKind {
			s.writePredicate(b, fn)
			b.WriteByte('(')
			s.write(b, n.kids[1], ctxTop)
			b.WriteByte(')')
			return
		}
		b.WriteByte('(')
		s.write(b, n.kids[0], ctxTop)
		b.WriteByte(' ')
		s.write(b, n.kids[1], ctxTop)
		b.WriteByte(')')
	case LiteralKind:
		b.WriteString(n.name)
	case PredicateKind:
		s.writePredicate(b, n)
	case CoordinateKind:
		b.WriteString(n.coord.String())
		if n.time.IsSet() {
			b.WriteByte('@')
			b.WriteString(n.time.String())
		}
	case ListKind:
		b.WriteByte('[')
		for i, kid := range n.kids {
			if i > 0 {
				b.WriteString(", ")
			}
			s.write(b, kid, ctxTop)
		}
		b.WriteByte(']')
	case ListCatKind:
		s.writeInfix(b, n.kids, "+", ctx != ctxTop, ctxListCat)
	case CoordinationKind:
		s.writeInfix(b, n.kids, "&", ctx != ctxTop, ctxCoordination)
	default:
		b.WriteString("<?>")
	}
}

func (s *Semantics) writeInfix(b *strings.Builder, kids []NodeID, op string, paren bool, ctx context) {
	if paren {
		b.WriteByte('(')
	}
	for i, kid := range kids {
		if i > 0 {
			b.WriteString(op)
		}
		s.write(b, kid, ctx)
	}
	if paren {
		b.WriteByte(')')
	}
}

func (s *Semantics) writePredicate(b *strings.Builder, n node) {
	b.WriteString(n.name)
	if n.time.IsSet() {
		b.WriteByte('@')
		b.WriteString(n.time.String())
	}
}

// Key is a content hash of the logical form. Structurally equal logical
// forms have equal keys.
func (s *Semantics) Key() string {
	h, err := structhash.Hash(struct{ LF string }{LF: s.String()}, 1)
	if err != nil {
		tracer().Errorf("cannot hash logical form: %v", err)
		return s.String()
	}
	return h
}
