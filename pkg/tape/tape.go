// Package tape implements the machine's working memory: a strip of cells that
// is conceptually unbounded in both directions and materialised lazily.
//
// The strip is a doubly linked list with a cursor on the head cell, so moving
// the head and extending either end are O(1). Exactly one blank cell is added
// each time the head crosses a boundary and never otherwise.
package tape

import (
	"fmt"
	"strings"

	list "github.com/bahlo/generic-list-go"

	"github.com/aretw0/turing/pkg/domain"
)

// Tape is a growable sequence of cells addressed by a head index.
// It maintains 0 <= Head() < Len() at all times. Not safe for concurrent use.
type Tape[S domain.Symbol] struct {
	cells *list.List[domain.Cell[S]]
	head  *list.Element[domain.Cell[S]]
	index int
}

// New builds a tape from cells with the head at index head.
// It returns domain.ErrHeadOutOfBounds if head does not address a cell;
// an empty slice therefore never yields a tape.
func New[S domain.Symbol](cells []domain.Cell[S], head int) (*Tape[S], error) {
	if head < 0 || head >= len(cells) {
		return nil, fmt.Errorf("%w: head %d, tape length %d", domain.ErrHeadOutOfBounds, head, len(cells))
	}

	t := &Tape[S]{cells: list.New[domain.Cell[S]](), index: head}
	for i, c := range cells {
		e := t.cells.PushBack(c)
		if i == head {
			t.head = e
		}
	}
	return t, nil
}

// Read returns the cell under the head.
func (t *Tape[S]) Read() domain.Cell[S] {
	return t.head.Value
}

// Write replaces the cell under the head.
func (t *Tape[S]) Write(c domain.Cell[S]) {
	t.head.Value = c
}

// Move shifts the head one cell and reports whether the tape grew.
//
// Moving left from index 0 prepends a blank and leaves the head index at 0,
// now on the new cell. Moving right from the last index appends a blank and
// advances the head onto it.
func (t *Tape[S]) Move(d domain.Direction) (grew bool) {
	switch d {
	case domain.Left:
		if prev := t.head.Prev(); prev != nil {
			t.head = prev
			t.index--
			return false
		}
		t.head = t.cells.PushFront(domain.Blank[S]())
		return true
	case domain.Right:
		if t.head.Next() == nil {
			t.cells.PushBack(domain.Blank[S]())
			grew = true
		}
		t.head = t.head.Next()
		t.index++
		return grew
	default:
		return false
	}
}

// Head returns the head index.
func (t *Tape[S]) Head() int {
	return t.index
}

// Len returns the number of materialised cells.
func (t *Tape[S]) Len() int {
	return t.cells.Len()
}

// Cells returns a copy of the tape contents.
func (t *Tape[S]) Cells() []domain.Cell[S] {
	out := make([]domain.Cell[S], 0, t.cells.Len())
	for e := t.cells.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value)
	}
	return out
}

// Render returns one character per cell, blanks as a space.
func (t *Tape[S]) Render() string {
	return t.RenderWith(domain.DefaultBlankGlyph)
}

// RenderWith renders the tape using blank for empty cells.
func (t *Tape[S]) RenderWith(blank string) string {
	var sb strings.Builder
	for e := t.cells.Front(); e != nil; e = e.Next() {
		sb.WriteString(e.Value.Render(blank))
	}
	return sb.String()
}

// Clone returns an independent copy of the tape.
func (t *Tape[S]) Clone() *Tape[S] {
	// Cells and index are valid by construction.
	c, _ := New(t.Cells(), t.index)
	return c
}
