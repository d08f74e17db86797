package turing

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

// Printer writes one configuration. Step is the number of transitions applied so far.
type Printer func(w io.Writer, step int, state string, cells []string, head int)

// Runner drives a machine one step at a time and prints every configuration.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	// Input is read in interactive mode: one line per step, "q" stops.
	Input io.Reader
	// Output receives the trace. Defaults to os.Stdout.
	Output io.Writer
	// Headless runs without waiting for Input.
	Headless bool
	// MaxSteps bounds the run; zero means no budget.
	MaxSteps int
	// Blank renders blank cells. Defaults to "_".
	Blank string
	// Printer formats configurations. Defaults to PlainPrinter.
	Printer Printer
}

// NewRunner creates a headless Runner writing to os.Stdout.
func NewRunner() *Runner {
	return &Runner{Headless: true}
}

// PlainPrinter writes "step  state  tape" with the head cell in brackets.
func PlainPrinter(w io.Writer, step int, state string, cells []string, head int) {
	tui.NewPlainTapeView(w).Line(step, state, cells, head)
}

// Trace runs m with r, printing the initial configuration and one line per step.
// It returns nil when the machine halts or the user quits, and the runner
// errors otherwise (undefined transition, budget, cancellation).
func Trace[Q comparable, S domain.Symbol](ctx context.Context, r *Runner, m *Machine[Q, S]) error {
	out := r.Output
	if out == nil {
		out = os.Stdout
	}
	blank := r.Blank
	if blank == "" {
		blank = "_"
	}
	printFn := r.Printer
	if printFn == nil {
		printFn = PlainPrinter
	}

	show := func() {
		cfg := m.Observe()
		printFn(out, cfg.Steps, fmt.Sprint(cfg.State), tui.Cells(cfg.Tape, blank), cfg.Head)
	}

	var lines *bufio.Scanner
	if !r.Headless {
		in := r.Input
		if in == nil {
			in = os.Stdin
		}
		lines = bufio.NewScanner(in)
	}

	show()
	applied := 0
	for !m.Halted() {
		if r.MaxSteps > 0 && applied >= r.MaxSteps {
			return fmt.Errorf("%w after %d steps", runner.ErrStepBudgetExhausted, applied)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if lines != nil {
			fmt.Fprint(out, "> ")
			if !lines.Scan() {
				// EOF
				return lines.Err()
			}
			if cmd := strings.TrimSpace(lines.Text()); cmd == "q" || cmd == "quit" {
				return nil
			}
		}

		if _, err := m.Step(); err != nil {
			return err
		}
		applied++
		show()
	}
	return nil
}
