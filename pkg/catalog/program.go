package catalog

import (
	"fmt"
	"slices"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/table"
)

// Machine is the concrete machine type served by the catalog.
type Machine = machine.Machine[string, Bit]

// Program is a named transition table with its start state.
type Program struct {
	Name        string
	Description string
	Start       string
	Table       *table.Table[string, Bit]

	// HeadAtEnd places the default head on the last cell instead of the first.
	HeadAtEnd bool

	// Example is a sample input tape shown by the CLI and APIs.
	Example string
}

// DefaultHead returns the head index used when the caller gives none.
func (p *Program) DefaultHead(tapeLen int) int {
	if p.HeadAtEnd && tapeLen > 0 {
		return tapeLen - 1
	}
	return 0
}

// NewMachine builds a machine in the start state on the given tape text.
// A negative head selects DefaultHead.
func (p *Program) NewMachine(tape string, head int, opts ...machine.Option) (*Machine, error) {
	return p.newMachine(p.Start, tape, head, opts...)
}

// Restore rebuilds a machine from a run record produced by this program.
// The step counter of the returned machine starts at zero.
func (p *Program) Restore(rec *domain.RunRecord, opts ...machine.Option) (*Machine, error) {
	if rec.Machine != p.Name {
		return nil, fmt.Errorf("record %s belongs to machine %q, not %q", rec.ID, rec.Machine, p.Name)
	}
	if rec.Halted {
		return nil, fmt.Errorf("record %s has already halted", rec.ID)
	}
	if !slices.Contains(p.Table.States(), rec.State) {
		return nil, fmt.Errorf("record %s: unknown state %q", rec.ID, rec.State)
	}
	return p.newMachine(rec.State, rec.Tape, rec.Head, opts...)
}

func (p *Program) newMachine(state, tape string, head int, opts ...machine.Option) (*Machine, error) {
	cells, err := ParseTape(tape)
	if err != nil {
		return nil, err
	}
	if head < 0 {
		head = p.DefaultHead(len(cells))
	}
	opts = append([]machine.Option{machine.WithName(p.Name)}, opts...)
	return machine.New(p.Table, state, cells, head, opts...)
}
