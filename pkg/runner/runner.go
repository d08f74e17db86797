package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/internal/logging"
)

// ErrStepBudgetExhausted is returned when a run reaches its step budget without halting.
var ErrStepBudgetExhausted = errors.New("step budget exhausted")

// Stepper is the single-step primitive of a machine. *machine.Machine implements it.
type Stepper interface {
	// Step applies one transition and reports whether the machine halted.
	Step() (bool, error)
	// Halted reports whether the machine has already halted.
	Halted() bool
}

// Result summarizes a run.
type Result struct {
	// Steps is the number of transitions applied by this run.
	Steps int
	// Halted is true when the run ended on an accepting action.
	Halted bool
}

// Runner executes a Stepper until it halts or a bound is hit.
type Runner struct {
	MaxSteps int
	Logger   *slog.Logger
}

// New creates a Runner. Without options it runs unbounded until halt,
// error or context cancellation.
func New(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Run steps s until it halts. It returns the step error unchanged (for
// example a *domain.UndefinedTransitionError), ctx.Err() on cancellation or
// ErrStepBudgetExhausted. The Result is valid in every case.
func (r *Runner) Run(ctx context.Context, s Stepper) (Result, error) {
	var res Result
	if s.Halted() {
		res.Halted = true
		return res, nil
	}

	for {
		if r.MaxSteps > 0 && res.Steps >= r.MaxSteps {
			r.Logger.Warn("step budget exhausted", "steps", res.Steps, "max_steps", r.MaxSteps)
			return res, fmt.Errorf("%w after %d steps", ErrStepBudgetExhausted, res.Steps)
		}
		if err := ctx.Err(); err != nil {
			r.Logger.Info("run canceled", "steps", res.Steps)
			return res, err
		}

		halted, err := s.Step()
		if err != nil {
			r.Logger.Warn("run failed", "steps", res.Steps, "error", err)
			return res, err
		}
		res.Steps++

		if halted {
			res.Halted = true
			r.Logger.Debug("run halted", "steps", res.Steps)
			return res, nil
		}
	}
}

// Run is a shortcut for New(opts...).Run(ctx, s).
func Run(ctx context.Context, s Stepper, opts ...Option) (Result, error) {
	return New(opts...).Run(ctx, s)
}
