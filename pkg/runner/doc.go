/*
Package runner drives a machine step by step under caller-controlled bounds.

The engine's Run blocks until the machine halts and may never return. The
runner is the external collaborator that makes execution bounded and
cancellable without touching the engine: it calls Step in a loop and stops on
halt, on error, when the context is done, or when an optional step budget is
spent.

# Usage

	r := runner.New(runner.WithMaxSteps(10_000), runner.WithLogger(logger))

	res, err := r.Run(ctx, m)
	switch {
	case errors.Is(err, runner.ErrStepBudgetExhausted):
		// still running after 10k steps
	case err != nil:
		// undefined transition or context cancellation
	}
*/
package runner
