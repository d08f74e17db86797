package domain

import (
	"fmt"
	"strings"
	"time"
)

// Configuration is an immutable snapshot of a machine.
type Configuration[Q comparable, S Symbol] struct {
	State  Q
	Tape   []Cell[S]
	Head   int
	Halted bool
	Steps  int
}

// Render returns the tape contents, one character per cell.
func (c Configuration[Q, S]) Render(blank string) string {
	var sb strings.Builder
	for _, cell := range c.Tape {
		sb.WriteString(cell.Render(blank))
	}
	return sb.String()
}

// RunRecord is the rendered, serialisable view of a machine configuration.
// Adapters persist and transport records; catalogs can rebuild a machine from one.
type RunRecord struct {
	ID        string    `json:"id"`
	Machine   string    `json:"machine"`
	State     string    `json:"state"`
	Tape      string    `json:"tape"`
	Head      int       `json:"head"`
	Steps     int       `json:"steps"`
	Halted    bool      `json:"halted"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`

	// Sealed holds the encrypted record when a store encrypts at rest.
	// State, tape, head and error are then empty in the stored envelope.
	Sealed string `json:"sealed,omitempty"`
}

// NewRunRecord renders a configuration into a record.
// Blank cells are rendered with the given glyph.
func NewRunRecord[Q comparable, S Symbol](id, machine string, cfg Configuration[Q, S], blank string) *RunRecord {
	return &RunRecord{
		ID:        id,
		Machine:   machine,
		State:     fmt.Sprint(cfg.State),
		Tape:      cfg.Render(blank),
		Head:      cfg.Head,
		Steps:     cfg.Steps,
		Halted:    cfg.Halted,
		UpdatedAt: time.Now().UTC(),
	}
}

// Clone returns a copy of the record.
func (r *RunRecord) Clone() *RunRecord {
	cp := *r
	return &cp
}
