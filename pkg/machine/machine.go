package machine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
)

// Transitions resolves (state, cell) to an action. *table.Table implements it.
type Transitions[Q comparable, S domain.Symbol] interface {
	Lookup(state Q, read domain.Cell[S]) (domain.Action[Q, S], error)
}

// Machine is a Turing machine configuration bound to a transition table.
// A Machine is owned by one goroutine; it is not safe for concurrent use.
type Machine[Q comparable, S domain.Symbol] struct {
	table  Transitions[Q, S]
	state  Q
	tape   *tape.Tape[S]
	halted bool
	steps  int

	name   string
	blank  string
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// New creates a machine in the given initial configuration. It does not run
// anything. It fails with domain.ErrHeadOutOfBounds if head does not address a
// cell of the initial tape.
func New[Q comparable, S domain.Symbol](tbl Transitions[Q, S], state Q, cells []domain.Cell[S], head int, opts ...Option) (*Machine[Q, S], error) {
	if tbl == nil {
		return nil, errors.New("transition table is required")
	}

	cfg := settings{blank: domain.DefaultBlankGlyph}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}
	if cfg.name != "" {
		cfg.logger = cfg.logger.With("machine", cfg.name)
	}

	tp, err := tape.New(cells, head)
	if err != nil {
		return nil, fmt.Errorf("invalid initial configuration: %w", err)
	}

	return &Machine[Q, S]{
		table:  tbl,
		state:  state,
		tape:   tp,
		name:   cfg.name,
		blank:  cfg.blank,
		logger: cfg.logger,
		hooks:  cfg.hooks,
	}, nil
}

// Reset replaces the whole configuration, keeping the table and options.
// On error the current configuration is left untouched.
func (m *Machine[Q, S]) Reset(state Q, cells []domain.Cell[S], head int) error {
	tp, err := tape.New(cells, head)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	m.state = state
	m.tape = tp
	m.halted = false
	m.steps = 0
	return nil
}

// Step applies one transition and reports whether the machine has halted.
//
// The cell under the head is looked up together with the current state, the
// action's cell is written and the head moved. An accepting action halts the
// machine without installing its next state. Stepping a halted machine is a
// no-op. An undefined transition leaves the configuration unchanged and is
// returned as *domain.UndefinedTransitionError.
func (m *Machine[Q, S]) Step() (halted bool, err error) {
	if m.halted {
		return true, nil
	}

	read := m.tape.Read()
	act, err := m.table.Lookup(m.state, read)
	if err != nil {
		m.logger.Warn("undefined transition", "state", m.state, "read", read.Render(m.blank), "steps", m.steps)
		if m.hooks.OnUndefined != nil {
			m.hooks.OnUndefined(&domain.UndefinedEvent{
				Machine: m.name,
				Steps:   m.steps,
				State:   fmt.Sprint(m.state),
				Read:    read.Render(m.blank),
			})
		}
		return false, err
	}

	m.tape.Write(act.Write)
	grew := m.tape.Move(act.Move)
	m.steps++

	if m.logger.Enabled(context.Background(), slog.LevelDebug) {
		m.logger.Debug("step",
			"step", m.steps,
			"state", m.state,
			"read", read.Render(m.blank),
			"write", act.Write.Render(m.blank),
			"move", act.Move,
			"head", m.tape.Head(),
			"grew", grew,
		)
	}
	if m.hooks.OnStep != nil {
		m.hooks.OnStep(&domain.StepEvent{
			Machine: m.name,
			Step:    m.steps,
			State:   fmt.Sprint(m.state),
			Read:    read.Render(m.blank),
			Write:   act.Write.Render(m.blank),
			Move:    act.Move,
			Next:    fmt.Sprint(act.Next),
			Head:    m.tape.Head(),
			Grew:    grew,
			Accept:  act.Accept,
		})
	}

	if act.Accept {
		m.halted = true
		m.logger.Info("halted", "state", m.state, "steps", m.steps, "head", m.tape.Head())
		if m.hooks.OnHalt != nil {
			m.hooks.OnHalt(&domain.HaltEvent{
				Machine: m.name,
				Steps:   m.steps,
				State:   fmt.Sprint(m.state),
				Head:    m.tape.Head(),
			})
		}
		return true, nil
	}

	m.state = act.Next
	return false, nil
}

// Run steps the machine until it halts or hits an undefined transition.
// Run does not return if the table never produces an accepting action.
func (m *Machine[Q, S]) Run() error {
	for {
		halted, err := m.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// State returns the current control state.
func (m *Machine[Q, S]) State() Q {
	return m.state
}

// Head returns the head index.
func (m *Machine[Q, S]) Head() int {
	return m.tape.Head()
}

// Halted reports whether an accepting action has been applied since the last reset.
func (m *Machine[Q, S]) Halted() bool {
	return m.halted
}

// Steps returns the number of transitions applied since the last reset.
func (m *Machine[Q, S]) Steps() int {
	return m.steps
}

// Name returns the label set with WithName.
func (m *Machine[Q, S]) Name() string {
	return m.name
}

// Table returns the transition table the machine reads.
func (m *Machine[Q, S]) Table() Transitions[Q, S] {
	return m.table
}

// Render returns the tape, one character per cell.
func (m *Machine[Q, S]) Render() string {
	return m.tape.RenderWith(m.blank)
}

// Observe returns a copy of the current configuration.
func (m *Machine[Q, S]) Observe() domain.Configuration[Q, S] {
	return domain.Configuration[Q, S]{
		State:  m.state,
		Tape:   m.tape.Cells(),
		Head:   m.tape.Head(),
		Halted: m.halted,
		Steps:  m.steps,
	}
}

// Record renders the current configuration as a run record.
func (m *Machine[Q, S]) Record(id string) *domain.RunRecord {
	return domain.NewRunRecord(id, m.name, m.Observe(), m.blank)
}
