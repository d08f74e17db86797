package runner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mark struct{}

func (mark) String() string { return "1" }

// forever walks right over blanks and never accepts.
func forever(t *testing.T) *machine.Machine[string, mark] {
	t.Helper()
	tbl := table.NewBuilder[string, mark]().
		OnBlank("walk").Right().Goto("walk").
		Build()
	m, err := machine.New(tbl, "walk", []domain.Cell[mark]{domain.Blank[mark]()}, 0)
	require.NoError(t, err)
	return m
}

// countdown halts after left steps.
type countdown struct {
	left   int
	halted bool
	err    error
}

func (c *countdown) Step() (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	c.left--
	if c.left <= 0 {
		c.halted = true
	}
	return c.halted, nil
}

func (c *countdown) Halted() bool { return c.halted }

func TestRun_Halts(t *testing.T) {
	res, err := runner.Run(context.Background(), &countdown{left: 5})
	require.NoError(t, err)
	assert.Equal(t, runner.Result{Steps: 5, Halted: true}, res)
}

func TestRun_HaltOnLastBudgetedStep(t *testing.T) {
	res, err := runner.Run(context.Background(), &countdown{left: 3}, runner.WithMaxSteps(3))
	require.NoError(t, err)
	assert.True(t, res.Halted)
	assert.Equal(t, 3, res.Steps)
}

func TestRun_BudgetExhausted(t *testing.T) {
	m := forever(t)

	res, err := runner.Run(context.Background(), m, runner.WithMaxSteps(50))

	require.ErrorIs(t, err, runner.ErrStepBudgetExhausted)
	assert.False(t, res.Halted)
	assert.Equal(t, 50, res.Steps)
	assert.Equal(t, 50, m.Steps())
	cfg := m.Observe()
	assert.Equal(t, 50, cfg.Head)
	assert.Len(t, cfg.Tape, 51, "one blank appended per step")
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := runner.Run(ctx, forever(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Steps)
}

func TestRun_PropagatesStepError(t *testing.T) {
	boom := errors.New("boom")
	_, err := runner.Run(context.Background(), &countdown{left: 1, err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestRun_UndefinedTransition(t *testing.T) {
	tbl := table.NewBuilder[string, mark]().Build()
	m, err := machine.New(tbl, "q0", []domain.Cell[mark]{domain.Mark(mark{})}, 0)
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), m, runner.WithMaxSteps(10))
	assert.ErrorIs(t, err, domain.ErrUndefinedTransition)
}

func TestRun_AlreadyHalted(t *testing.T) {
	c := &countdown{halted: true}
	res, err := runner.Run(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, runner.Result{Halted: true}, res)
}
