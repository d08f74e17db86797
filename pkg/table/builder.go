package table

import "github.com/aretw0/turing/pkg/domain"

// Builder manages fluent table construction.
type Builder[Q comparable, S domain.Symbol] struct {
	rules []domain.Rule[Q, S]
}

// NewBuilder creates an empty builder.
func NewBuilder[Q comparable, S domain.Symbol]() *Builder[Q, S] {
	return &Builder[Q, S]{}
}

// On starts a rule for the given state and cell.
// Until Write or Erase is called the rule writes back the cell it read,
// and until a direction is chosen the head stays.
func (b *Builder[Q, S]) On(state Q, read domain.Cell[S]) *RuleBuilder[Q, S] {
	b.rules = append(b.rules, domain.Rule[Q, S]{
		When: domain.Condition[Q, S]{State: state, Read: read},
		Then: domain.Action[Q, S]{Write: read, Move: domain.Stay, Next: state},
	})
	return &RuleBuilder[Q, S]{builder: b, index: len(b.rules) - 1}
}

// OnBlank starts a rule for the given state reading a blank cell.
func (b *Builder[Q, S]) OnBlank(state Q) *RuleBuilder[Q, S] {
	return b.On(state, domain.Blank[S]())
}

// Build compiles the rules into a Table.
func (b *Builder[Q, S]) Build() *Table[Q, S] {
	return New(b.rules...)
}

// RuleBuilder configures the action of a single rule.
type RuleBuilder[Q comparable, S domain.Symbol] struct {
	builder *Builder[Q, S]
	index   int
}

func (r *RuleBuilder[Q, S]) action() *domain.Action[Q, S] {
	return &r.builder.rules[r.index].Then
}

// Write sets the symbol written under the head.
func (r *RuleBuilder[Q, S]) Write(s S) *RuleBuilder[Q, S] {
	r.action().Write = domain.Mark(s)
	return r
}

// Erase makes the rule write a blank.
func (r *RuleBuilder[Q, S]) Erase() *RuleBuilder[Q, S] {
	r.action().Write = domain.Blank[S]()
	return r
}

// Move sets the head movement.
func (r *RuleBuilder[Q, S]) Move(d domain.Direction) *RuleBuilder[Q, S] {
	r.action().Move = d
	return r
}

// Left moves the head left after writing.
func (r *RuleBuilder[Q, S]) Left() *RuleBuilder[Q, S] { return r.Move(domain.Left) }

// Right moves the head right after writing.
func (r *RuleBuilder[Q, S]) Right() *RuleBuilder[Q, S] { return r.Move(domain.Right) }

// Stay keeps the head in place after writing.
func (r *RuleBuilder[Q, S]) Stay() *RuleBuilder[Q, S] { return r.Move(domain.Stay) }

// Goto finishes the rule with a non-accepting transition to next.
func (r *RuleBuilder[Q, S]) Goto(next Q) *Builder[Q, S] {
	a := r.action()
	a.Next = next
	a.Accept = false
	return r.builder
}

// Accept finishes the rule with an accepting action.
// next is recorded on the action but never installed by the engine.
func (r *RuleBuilder[Q, S]) Accept(next Q) *Builder[Q, S] {
	a := r.action()
	a.Next = next
	a.Accept = true
	return r.builder
}
