package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/catalog"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/session"
)

// RunOptions configures a single `turing run` invocation.
type RunOptions struct {
	Machine string
	// Tape defaults to the program's example tape.
	Tape string
	// Head is the initial head index; negative selects the program default.
	Head int
	// MaxSteps overrides run.max_steps when positive.
	MaxSteps int
	// Trace prints every configuration.
	Trace bool
	// Interactive waits for Enter before each step; implies Trace.
	Interactive bool
	// Save stores the final configuration as a run record.
	Save bool
}

// Execute runs a catalog machine and prints its final configuration to out.
// Interrupts from ctx or in end the run quietly.
func Execute(ctx context.Context, app *App, opts RunOptions, in io.Reader, out io.Writer) (*domain.RunRecord, error) {
	rec, err := execute(ctx, app, opts, in, out)
	if isInterrupted(err) {
		fmt.Fprintln(out, ">>> Interrupted.")
		return rec, nil
	}
	return rec, err
}

func execute(ctx context.Context, app *App, opts RunOptions, in io.Reader, out io.Writer) (*domain.RunRecord, error) {
	p, err := app.Programs.Get(opts.Machine)
	if err != nil {
		return nil, err
	}
	tape := opts.Tape
	if tape == "" {
		tape = p.Example
	}
	maxSteps := app.Config.Run.MaxSteps
	if opts.MaxSteps > 0 {
		maxSteps = opts.MaxSteps
	}
	view := tui.NewTapeView(out)

	// Untraced saved runs go through the run manager, like the servers.
	if opts.Save && !opts.Trace && !opts.Interactive {
		var head *int
		if opts.Head >= 0 {
			head = &opts.Head
		}
		rec, err := app.Runs.Start(ctx, session.StartRequest{
			Machine:  p.Name,
			Tape:     tape,
			Head:     head,
			MaxSteps: maxSteps,
		})
		if rec != nil {
			printRecord(out, view, rec, app.Config.Run.Blank)
		}
		return rec, err
	}

	m, err := p.NewMachine(tape, opts.Head,
		machine.WithBlankGlyph(catalog.BlankGlyph),
		machine.WithLogger(app.Logger),
		machine.WithLifecycleHooks(app.Metrics.Hooks(p.Name).Merge(createDebugHooks(app.Logger))),
	)
	if err != nil {
		return nil, err
	}

	if opts.Trace || opts.Interactive {
		if in == nil {
			in = os.Stdin
		}
		r := &turing.Runner{
			Input:    NewInterruptibleReader(in, ctx.Done()),
			Output:   out,
			Headless: !opts.Interactive,
			MaxSteps: maxSteps,
			Blank:    app.Config.Run.Blank,
			Printer: func(_ io.Writer, step int, state string, cells []string, head int) {
				view.Line(step, state, cells, head)
			},
		}
		err = turing.Trace(ctx, r, m)
		app.Metrics.ObserveRun(p.Name, runner.Result{Steps: m.Steps(), Halted: m.Halted()})
	} else {
		var res runner.Result
		res, err = runner.Run(ctx, m, runner.WithMaxSteps(maxSteps), runner.WithLogger(app.Logger))
		app.Metrics.ObserveRun(p.Name, res)
	}

	rec := m.Record(uuid.NewString())
	if errors.Is(err, domain.ErrUndefinedTransition) {
		rec.Error = err.Error()
	}
	if !opts.Trace && !opts.Interactive {
		printRecord(out, view, rec, app.Config.Run.Blank)
	}

	if opts.Save {
		if saveErr := app.Store.Save(context.WithoutCancel(ctx), rec.ID, rec); saveErr != nil {
			return rec, fmt.Errorf("failed to save run: %w", saveErr)
		}
		fmt.Fprintf(out, ">>> Saved run %s\n", rec.ID)
	}
	return rec, err
}

// printRecord writes the outcome of a run and its tape, showing blanks as blank.
func printRecord(out io.Writer, view *tui.TapeView, rec *domain.RunRecord, blank string) {
	cells := make([]string, 0, len(rec.Tape))
	for _, r := range rec.Tape {
		if string(r) == catalog.BlankGlyph {
			cells = append(cells, blank)
			continue
		}
		cells = append(cells, string(r))
	}

	status := "halted"
	switch {
	case rec.Error != "":
		status = "stuck"
	case !rec.Halted:
		status = "running"
	}
	fmt.Fprintf(out, "%s after %d steps in state %s\n", status, rec.Steps, rec.State)
	fmt.Fprintln(out, view.Render(cells, rec.Head))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnHalt: func(e *domain.HaltEvent) {
			logger.Debug("Halted", "machine", e.Machine, "steps", e.Steps, "state", e.State)
		},
		OnUndefined: func(e *domain.UndefinedEvent) {
			logger.Debug("Stuck", "machine", e.Machine, "state", e.State, "read", e.Read)
		},
	}
}
