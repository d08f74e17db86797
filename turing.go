package turing

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/table"
)

// Machine is a deterministic single-tape Turing machine.
type Machine[Q comparable, S domain.Symbol] = machine.Machine[Q, S]

// Table is an ordered, immutable transition table.
type Table[Q comparable, S domain.Symbol] = table.Table[Q, S]

// Option configures a Machine.
type Option = machine.Option

// Head movements.
const (
	Left  = domain.Left
	Right = domain.Right
	Stay  = domain.Stay
)

var (
	// ErrUndefinedTransition is matched by errors from steps that find no rule.
	ErrUndefinedTransition = domain.ErrUndefinedTransition
	// ErrHeadOutOfBounds is returned for an initial head outside the tape.
	ErrHeadOutOfBounds = domain.ErrHeadOutOfBounds
	// ErrStepBudgetExhausted is returned by Run when maxSteps is reached.
	ErrStepBudgetExhausted = runner.ErrStepBudgetExhausted
)

// Machine options.
var (
	WithName           = machine.WithName
	WithBlankGlyph     = machine.WithBlankGlyph
	WithLogger         = machine.WithLogger
	WithLifecycleHooks = machine.WithLifecycleHooks
)

// New creates a machine in state start over tape with the head at index head.
func New[Q comparable, S domain.Symbol](tbl machine.Transitions[Q, S], start Q, tape []domain.Cell[S], head int, opts ...Option) (*Machine[Q, S], error) {
	return machine.New(tbl, start, tape, head, opts...)
}

// NewTable creates a table from rules in lookup order.
func NewTable[Q comparable, S domain.Symbol](rules ...domain.Rule[Q, S]) *Table[Q, S] {
	return table.New(rules...)
}

// NewBuilder starts a fluent table definition.
func NewBuilder[Q comparable, S domain.Symbol]() *table.Builder[Q, S] {
	return table.NewBuilder[Q, S]()
}

// Run steps m until it halts, fails, ctx is done or maxSteps transitions
// have been applied. maxSteps <= 0 means no budget.
func Run(ctx context.Context, m runner.Stepper, maxSteps int) (runner.Result, error) {
	return runner.Run(ctx, m, runner.WithMaxSteps(maxSteps))
}
