package notation

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/cadenza"
	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/semantics"
)

// ErrSyntax is the sentinel for malformed notation.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports malformed notation together with the offending span of
// the input.
type SyntaxError struct {
	Input string
	Span  cadenza.Span
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s in %q: %s", e.Span, e.Input, e.Msg)
}

// Unwrap makes SyntaxError match ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// ParseCategory reads a category, e.g. "V^D/{c}I^T".
func ParseCategory(input string) (category.Category, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	c, err := p.category()
	if err != nil {
		return nil, err
	}
	return c, p.end()
}

// ParseSemantics reads a logical form, e.g. `\$x0.leftonto($x0)`.
func ParseSemantics(input string) (*semantics.Semantics, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err = p.end(); err != nil {
		return nil, err
	}
	return semantics.New(e), nil
}

// ParseSign reads a sign, e.g. "V^D/{c}I^T : \$x0.leftonto($x0)".
func ParseSign(input string) (*category.Sign, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	c, err := p.category()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(':'); err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err = p.end(); err != nil {
		return nil, err
	}
	return category.NewSign(c, semantics.New(e)), nil
}

// MustParseSign is like ParseSign, but panics on malformed input. It
// simplifies the set-up of signs in tests and examples.
func MustParseSign(input string) *category.Sign {
	s, err := ParseSign(input)
	if err != nil {
		panic(err)
	}
	return s
}

// --- Parser ----------------------------------------------------------------

type parser struct {
	input string
	toks  []token
	pos   int
}

func newParser(input string) (*parser, error) {
	lx, err := theLexer()
	if err != nil {
		return nil, err
	}
	toks, err := lx.tokenize(input)
	if err != nil {
		return nil, err
	}
	return &parser{input: input, toks: toks}, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != EOF {
		p.pos++
	}
	return t
}

func (p *parser) is(kind cadenza.TokType) bool {
	return p.peek().kind == kind
}

// accept consumes the next token if it is of the given kind.
func (p *parser) accept(kind cadenza.TokType) bool {
	if p.is(kind) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(kind cadenza.TokType) (token, error) {
	if t := p.peek(); t.kind != kind {
		return t, p.errorf(t, "expected %s, found %s", tokenName(kind), describe(t))
	}
	return p.next(), nil
}

func (p *parser) end() error {
	_, err := p.expect(EOF)
	return err
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	err := &SyntaxError{Input: p.input, Span: t.span, Msg: fmt.Sprintf(format, args...)}
	tracer().Debugf("%v", err)
	return err
}

func describe(t token) string {
	if t.kind == EOF {
		return tokenName(EOF)
	}
	return fmt.Sprintf("%q", t.lexeme)
}

// --- Categories ------------------------------------------------------------

// Category  ::=  '*'  |  Half  |  Half '-' Half  |  Half Slash Half
// Slash     ::=  ( '/' | '\' ) [ '{' ID '}' ]
func (p *parser) category() (category.Category, error) {
	if p.accept('*') {
		return category.Dummy(), nil
	}
	first, err := p.half()
	if err != nil {
		return nil, err
	}
	switch {
	case p.accept('-'):
		second, err := p.half()
		if err != nil {
			return nil, err
		}
		return category.Atomic(first, second), nil
	case p.is('/') || p.is('\\'):
		slash := category.Slash{Forward: p.next().kind == '/'}
		if p.accept('{') {
			m, err := p.expect(ID)
			if err != nil {
				return nil, err
			}
			slash.Modality = m.lexeme
			if _, err = p.expect('}'); err != nil {
				return nil, err
			}
		}
		second, err := p.half()
		if err != nil {
			return nil, err
		}
		return category.Complex(first, slash, second), nil
	}
	return category.Simple(first), nil
}

// Half  ::=  ID '^' ID { '|' ID }
func (p *parser) half() (category.HalfCategory, error) {
	t, err := p.expect(ID)
	if err != nil {
		return category.HalfCategory{}, err
	}
	root, err := category.ParseRoman(t.lexeme)
	if err != nil {
		return category.HalfCategory{}, p.errorf(t, "%v", err)
	}
	if _, err = p.expect('^'); err != nil {
		return category.HalfCategory{}, err
	}
	var functions category.FunctionSet
	for {
		f, err := p.expect(ID)
		if err != nil {
			return category.HalfCategory{}, err
		}
		fs, err := category.ParseFunctions(f.lexeme)
		if err != nil {
			return category.HalfCategory{}, p.errorf(f, "%v", err)
		}
		functions |= fs
		if !p.accept('|') {
			break
		}
	}
	return category.Half(root, functions), nil
}

// --- Logical forms ---------------------------------------------------------

// Expr  ::=  Cat { '&' Cat }
func (p *parser) expr() (semantics.Expr, error) {
	return p.infix('&', p.cat, semantics.Coordination)
}

// Cat  ::=  Term { '+' Term }
func (p *parser) cat() (semantics.Expr, error) {
	return p.infix('+', p.term, semantics.ListCat)
}

func (p *parser) infix(op cadenza.TokType, operand func() (semantics.Expr, error),
	join func(...semantics.Expr) semantics.Expr) (semantics.Expr, error) {
	//
	first, err := operand()
	if err != nil {
		return first, err
	}
	items := []semantics.Expr{first}
	for p.accept(op) {
		e, err := operand()
		if err != nil {
			return e, err
		}
		items = append(items, e)
	}
	if len(items) == 1 {
		return first, nil
	}
	return join(items...), nil
}

// Term  ::=  VAR
//         |  '\' VAR { ',' VAR } '.' Expr
//         |  Coordinate [ '@' NUM ]
//         |  '[' [ Expr { ',' Expr } ] ']'
//         |  '(' Expr { Expr } ')'
//         |  ID [ '@' NUM ] [ '(' Expr ')' ]
func (p *parser) term() (semantics.Expr, error) {
	t := p.peek()
	switch t.kind {
	case VAR:
		p.next()
		v, err := p.variable(t)
		return semantics.Variable(v), err
	case '\\':
		return p.abstraction()
	case '<':
		return p.point()
	case '[':
		return p.list()
	case '(':
		return p.application()
	case ID:
		return p.literal()
	}
	return semantics.Expr{}, p.errorf(t, "unexpected %s", describe(t))
}

func (p *parser) variable(t token) (semantics.Var, error) {
	name := t.lexeme[1:]
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	v := semantics.Var{Name: name[:i]}
	if i < len(name) {
		index, err := strconv.Atoi(name[i:])
		if err != nil {
			return v, p.errorf(t, "illegal variable index: %v", err)
		}
		v.Index = index
	}
	return v, nil
}

func (p *parser) abstraction() (semantics.Expr, error) {
	p.next() // '\'
	var vars []semantics.Var
	for {
		t, err := p.expect(VAR)
		if err != nil {
			return semantics.Expr{}, err
		}
		v, err := p.variable(t)
		if err != nil {
			return semantics.Expr{}, err
		}
		vars = append(vars, v)
		if !p.accept(',') {
			break
		}
	}
	if _, err := p.expect('.'); err != nil {
		return semantics.Expr{}, err
	}
	body, err := p.expr()
	if err != nil {
		return body, err
	}
	return semantics.MultiAbstract(body, vars...), nil
}

// Coordinate  ::=  '<' NUM ',' NUM '>'  |  '<' '(' NUM ',' NUM ')' '/' '(' NUM ',' NUM ')' '>'
func (p *parser) point() (semantics.Expr, error) {
	p.next() // '<'
	var c semantics.Coordinate
	if p.accept('(') {
		x, y, err := p.pair()
		if err != nil {
			return semantics.Expr{}, err
		}
		if _, err = p.expect(')'); err != nil {
			return semantics.Expr{}, err
		}
		if _, err = p.expect('/'); err != nil {
			return semantics.Expr{}, err
		}
		if _, err = p.expect('('); err != nil {
			return semantics.Expr{}, err
		}
		bx, by, err := p.pair()
		if err != nil {
			return semantics.Expr{}, err
		}
		if _, err = p.expect(')'); err != nil {
			return semantics.Expr{}, err
		}
		c = semantics.NewCoordinate(x, y, bx, by)
	} else {
		x, y, err := p.pair()
		if err != nil {
			return semantics.Expr{}, err
		}
		c = semantics.NewCoordinate(x, y, 0, 0)
	}
	if _, err := p.expect('>'); err != nil {
		return semantics.Expr{}, err
	}
	t, err := p.time()
	if err != nil {
		return semantics.Expr{}, err
	}
	return semantics.TimedPoint(c, t), nil
}

func (p *parser) pair() (int, int, error) {
	x, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	if _, err = p.expect(','); err != nil {
		return 0, 0, err
	}
	y, err := p.number()
	return x, y, err
}

func (p *parser) number() (int, error) {
	t, err := p.expect(NUM)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(t.lexeme)
	if err != nil {
		return 0, p.errorf(t, "illegal number: %v", err)
	}
	return n, nil
}

// time reads an optional '@' NUM.
func (p *parser) time() (semantics.Time, error) {
	if !p.accept('@') {
		return semantics.NoTime, nil
	}
	t := p.peek()
	n, err := p.number()
	if err != nil {
		return semantics.NoTime, err
	}
	if n < 0 {
		return semantics.NoTime, p.errorf(t, "time must not be negative")
	}
	return semantics.Time(n), nil
}

func (p *parser) list() (semantics.Expr, error) {
	p.next() // '['
	var items []semantics.Expr
	if !p.accept(']') {
		for {
			e, err := p.expr()
			if err != nil {
				return e, err
			}
			items = append(items, e)
			if !p.accept(',') {
				break
			}
		}
		if _, err := p.expect(']'); err != nil {
			return semantics.Expr{}, err
		}
	}
	return semantics.List(items...), nil
}

// application reads a parenthesized expression. A single expression is
// just grouped, more than one are applied left-associatively.
func (p *parser) application() (semantics.Expr, error) {
	p.next() // '('
	functor, err := p.expr()
	if err != nil {
		return functor, err
	}
	var args []semantics.Expr
	for !p.is(')') && !p.is(EOF) {
		arg, err := p.expr()
		if err != nil {
			return arg, err
		}
		args = append(args, arg)
	}
	if _, err = p.expect(')'); err != nil {
		return semantics.Expr{}, err
	}
	return semantics.MultiApply(functor, args...), nil
}

// literal reads a literal or a predicate. Predicates may carry a time and
// may be applied in call notation, with the '(' directly following.
func (p *parser) literal() (semantics.Expr, error) {
	t := p.next()
	if !semantics.IsPredicateName(t.lexeme) {
		return semantics.Literal(t.lexeme), nil
	}
	at, err := p.time()
	if err != nil {
		return semantics.Expr{}, err
	}
	pred := semantics.Predicate(t.lexeme, at)
	last := p.toks[p.pos-1]
	if !p.is('(') || p.peek().span.From() != last.span.To() {
		return pred, nil
	}
	p.next() // '('
	arg, err := p.expr()
	if err != nil {
		return arg, err
	}
	if _, err = p.expect(')'); err != nil {
		return semantics.Expr{}, err
	}
	return semantics.Apply(pred, arg), nil
}
