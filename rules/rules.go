package rules

import (
	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/semantics"
)

// Rule is a combinatory rule. Apply returns no signs if the rule does not
// apply to its inputs, and an error only if semantic rewriting failed.
//
// ApplySyntax checks the syntactic precondition on categories alone and
// returns the resulting category, or nil. ApplySemantics assumes the
// precondition holds for its inputs and combines their logical forms. The
// chart uses both halves separately to share one syntactic test between
// many sign pairs with equal categories.
type Rule interface {
	Name() string         // display name, e.g. ">B"
	InternalName() string // identifier, e.g. "compf"
	Arity() int
	ApplySyntax(cats ...category.Category) category.Category
	ApplySemantics(signs ...*category.Sign) ([]*semantics.Semantics, error)
	Apply(signs ...*category.Sign) ([]*category.Sign, error)
}

type names struct {
	name, internal string
}

func (n names) Name() string         { return n.name }
func (n names) InternalName() string { return n.internal }
func (n names) String() string       { return n.name }

// apply drives a rule through its syntactic and semantic halves.
func apply(r Rule, signs []*category.Sign) ([]*category.Sign, error) {
	if len(signs) != r.Arity() {
		return nil, nil
	}
	cats := make([]category.Category, len(signs))
	for i, s := range signs {
		cats[i] = s.Category
	}
	cat := r.ApplySyntax(cats...)
	if cat == nil {
		return nil, nil
	}
	sems, err := r.ApplySemantics(signs...)
	if err != nil {
		tracer().Errorf("rule %s failed on %v: %v", r.Name(), signs, err)
		return nil, err
	}
	return Results(r, cat, signs, sems), nil
}

// Results packs logical forms produced by r into signs with category cat.
// Derivation traces are recorded if every input carries one.
func Results(r Rule, cat category.Category, inputs []*category.Sign, sems []*semantics.Semantics) []*category.Sign {
	var inTraces []*category.Trace
	for _, in := range inputs {
		if in.Trace == nil {
			inTraces = nil
			break
		}
		inTraces = append(inTraces, in.Trace)
	}
	result := make([]*category.Sign, len(sems))
	for i, sem := range sems {
		result[i] = category.NewSign(cat.Copy(), sem)
		if inTraces != nil {
			result[i].Trace = category.Derived(r.Name(), inTraces...)
		}
	}
	return result
}

func one(sem *semantics.Semantics, err error) ([]*semantics.Semantics, error) {
	if err != nil {
		return nil, err
	}
	return []*semantics.Semantics{sem}, nil
}

func complexPair(cats []category.Category) (*category.ComplexCategory, *category.ComplexCategory, bool) {
	if len(cats) != 2 {
		return nil, nil, false
	}
	a, ok1 := cats[0].(*category.ComplexCategory)
	b, ok2 := cats[1].(*category.ComplexCategory)
	return a, b, ok1 && ok2
}

// --- Application -----------------------------------------------------------

// Application applies a functor to an adjacent atomic argument. The
// functor's argument half must match the near edge of the argument:
//
//     X/Y  Y-Z  =>  X-Z      X-Y  Z\Y  =>  X-Z
//
type Application struct {
	names
	Forward bool
}

// NewApplication creates forward (>) or backward (<) application.
func NewApplication(forward bool) *Application {
	if forward {
		return &Application{names: names{">", "appf"}, Forward: true}
	}
	return &Application{names: names{"<", "appb"}}
}

// Arity is 2.
func (r *Application) Arity() int { return 2 }

// ApplySyntax returns the resulting atomic category or nil.
func (r *Application) ApplySyntax(cats ...category.Category) category.Category {
	if len(cats) != 2 {
		return nil
	}
	f, a := cats[0], cats[1]
	if !r.Forward {
		f, a = a, f
	}
	functor, ok := f.(*category.ComplexCategory)
	if !ok || functor.Slash.Forward != r.Forward {
		return nil
	}
	argument, ok := a.(*category.AtomicCategory)
	if !ok {
		return nil
	}
	if r.Forward {
		if !functor.Argument.Matches(argument.From) {
			return nil
		}
		return category.Atomic(functor.Result, argument.To)
	}
	if !functor.Argument.Matches(argument.To) {
		return nil
	}
	return category.Atomic(argument.From, functor.Result)
}

// ApplySemantics applies the functor's logical form to the argument's.
func (r *Application) ApplySemantics(signs ...*category.Sign) ([]*semantics.Semantics, error) {
	f, a := signs[0], signs[1]
	if !r.Forward {
		f, a = a, f
	}
	return one(semantics.ApplySemantics(f.Semantics, a.Semantics))
}

// Apply applies the rule to two signs.
func (r *Application) Apply(signs ...*category.Sign) ([]*category.Sign, error) {
	return apply(r, signs)
}

// --- Composition -----------------------------------------------------------

// Composition composes two functors. Harmonic composition needs slashes of
// the rule's direction, crossing composition always combines a forward
// functor with a following backward functor:
//
//     >B   X/Y  Y/Z  =>  X/Z      <B   Y\Z  X\Y  =>  X\Z
//     >Bx  X/Y  Y\Z  =>  X\Z      <Bx  Y/Z  X\Y  =>  X/Z
//
type Composition struct {
	names
	Forward  bool
	Harmonic bool
}

// NewComposition creates one of the four composition rules.
func NewComposition(forward, harmonic bool) *Composition {
	r := &Composition{Forward: forward, Harmonic: harmonic}
	switch {
	case forward && harmonic:
		r.names = names{">B", "compf"}
	case forward:
		r.names = names{">Bx", "xcompf"}
	case harmonic:
		r.names = names{"<B", "compb"}
	default:
		r.names = names{"<Bx", "xcompb"}
	}
	return r
}

// Arity is 2.
func (r *Composition) Arity() int { return 2 }

// ApplySyntax returns the resulting complex category or nil.
func (r *Composition) ApplySyntax(cats ...category.Category) category.Category {
	first, second, ok := complexPair(cats)
	if !ok {
		return nil
	}
	if r.Harmonic {
		if first.Slash.Forward != r.Forward || second.Slash.Forward != r.Forward {
			return nil
		}
	} else if !first.Slash.Forward || second.Slash.Forward {
		return nil
	}
	var result, argument category.HalfCategory
	if r.Forward {
		if !first.Argument.Matches(second.Result) {
			return nil
		}
		result, argument = first.Result, second.Argument
	} else {
		if !second.Argument.Matches(first.Result) {
			return nil
		}
		result, argument = second.Result, first.Argument
	}
	slash := category.Slash{Forward: r.Forward == r.Harmonic, Modality: first.Slash.Modality}
	if slash.Modality == "" {
		slash.Modality = second.Slash.Modality
	}
	return category.Complex(result, slash, argument)
}

// ApplySemantics builds \$x.(f (g $x)), where f is the semantics of the
// functor whose result survives.
func (r *Composition) ApplySemantics(signs ...*category.Sign) ([]*semantics.Semantics, error) {
	f, g := signs[0].Semantics, signs[1].Semantics
	if !r.Forward {
		f, g = g, f
	}
	return one(semantics.Compose(f, g))
}

// Apply applies the rule to two signs.
func (r *Composition) Apply(signs ...*category.Sign) ([]*category.Sign, error) {
	return apply(r, signs)
}

// --- Development -----------------------------------------------------------

// Development strings together two adjacent atomic spans: W-X Y-Z => W-Z.
// Their paths are concatenated.
type Development struct {
	names
}

// NewDevelopment creates the development rule <dev>.
func NewDevelopment() *Development {
	return &Development{names: names{"<dev>", "dev"}}
}

// Arity is 2.
func (r *Development) Arity() int { return 2 }

// ApplySyntax returns the spanning atomic category or nil.
func (r *Development) ApplySyntax(cats ...category.Category) category.Category {
	if len(cats) != 2 {
		return nil
	}
	first, ok1 := cats[0].(*category.AtomicCategory)
	second, ok2 := cats[1].(*category.AtomicCategory)
	if !ok1 || !ok2 {
		return nil
	}
	return category.Atomic(first.From, second.To)
}

// ApplySemantics concatenates both paths.
func (r *Development) ApplySemantics(signs ...*category.Sign) ([]*semantics.Semantics, error) {
	return one(semantics.Concatenate(signs[0].Semantics, signs[1].Semantics))
}

// Apply applies the rule to two signs.
func (r *Development) Apply(signs ...*category.Sign) ([]*category.Sign, error) {
	return apply(r, signs)
}

// --- Coordination ----------------------------------------------------------

// Coordination lets two cadences share their resolution:
// X/{c}Y Z/{c}Y => X/{c}Y. The argument functions are narrowed to those
// admitted by both inputs.
type Coordination struct {
	names
}

// NewCoordination creates the coordination rule <&>.
func NewCoordination() *Coordination {
	return &Coordination{names: names{"<&>", "coord"}}
}

// Arity is 2.
func (r *Coordination) Arity() int { return 2 }

// ApplySyntax returns the narrowed cadence category or nil.
func (r *Coordination) ApplySyntax(cats ...category.Category) category.Category {
	first, second, ok := complexPair(cats)
	if !ok {
		return nil
	}
	if first.Slash.Modality != category.CadenceModality || second.Slash.Modality != category.CadenceModality {
		return nil
	}
	if first.Argument.Root != second.Argument.Root {
		return nil
	}
	if !first.Argument.Functions.Overlaps(second.Argument.Functions) {
		return nil
	}
	if first.Result.Functions != second.Result.Functions {
		return nil
	}
	c := first.Copy().(*category.ComplexCategory)
	c.Argument.Functions = first.Argument.Functions.Intersect(second.Argument.Functions)
	return c
}

// ApplySemantics coordinates both cadences.
func (r *Coordination) ApplySemantics(signs ...*category.Sign) ([]*semantics.Semantics, error) {
	return one(semantics.CoordinateCadences(signs[0].Semantics, signs[1].Semantics))
}

// Apply applies the rule to two signs.
func (r *Coordination) Apply(signs ...*category.Sign) ([]*category.Sign, error) {
	return apply(r, signs)
}

// --- Repetition ------------------------------------------------------------

// TonicRepetition expands a lexical tonic category X^T into X^T/X^T, with
// identity semantics. It is used to build the lexicon, not during parsing.
type TonicRepetition struct {
	names
}

// NewTonicRepetition creates the unary rule <rep>.
func NewTonicRepetition() *TonicRepetition {
	return &TonicRepetition{names: names{"<rep>", "rep"}}
}

// Arity is 1.
func (r *TonicRepetition) Arity() int { return 1 }

// ApplySyntax returns the repetition category or nil.
func (r *TonicRepetition) ApplySyntax(cats ...category.Category) category.Category {
	if len(cats) != 1 {
		return nil
	}
	c, ok := cats[0].(*category.AtomicCategory)
	if !ok || c.From != c.To || !c.From.Functions.Contains(category.Tonic) {
		return nil
	}
	return category.Complex(c.From, category.Slash{Forward: true}, c.From)
}

// ApplySemantics returns \$x0.$x0.
func (r *TonicRepetition) ApplySemantics(signs ...*category.Sign) ([]*semantics.Semantics, error) {
	return []*semantics.Semantics{semantics.Identity()}, nil
}

// Apply applies the rule to a sign.
func (r *TonicRepetition) Apply(signs ...*category.Sign) ([]*category.Sign, error) {
	return apply(r, signs)
}

// CadenceRepetition expands a cadence X^f/{c}Y, with f dominant or
// subdominant, into X^f/X^f, with identity semantics. The result is not
// cadential itself. It is used to build the lexicon, not during parsing.
type CadenceRepetition struct {
	names
}

// NewCadenceRepetition creates the unary rule <crep>.
func NewCadenceRepetition() *CadenceRepetition {
	return &CadenceRepetition{names: names{"<crep>", "crep"}}
}

// Arity is 1.
func (r *CadenceRepetition) Arity() int { return 1 }

// ApplySyntax returns the repetition category or nil.
func (r *CadenceRepetition) ApplySyntax(cats ...category.Category) category.Category {
	if len(cats) != 1 {
		return nil
	}
	c, ok := cats[0].(*category.ComplexCategory)
	if !ok || c.Slash.Modality != category.CadenceModality {
		return nil
	}
	if fs := c.Result.Functions; fs != category.Dominant && fs != category.Subdominant {
		return nil
	}
	return category.Complex(c.Result, category.Slash{Forward: true}, c.Result)
}

// ApplySemantics returns \$x0.$x0.
func (r *CadenceRepetition) ApplySemantics(signs ...*category.Sign) ([]*semantics.Semantics, error) {
	return []*semantics.Semantics{semantics.Identity()}, nil
}

// Apply applies the rule to a sign.
func (r *CadenceRepetition) Apply(signs ...*category.Sign) ([]*category.Sign, error) {
	return apply(r, signs)
}
