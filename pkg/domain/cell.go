package domain

import "fmt"

// Symbol is the constraint for tape alphabets.
// Symbols are compared with == and rendered with String.
type Symbol interface {
	comparable
	fmt.Stringer
}

// DefaultBlankGlyph is how a blank cell is rendered unless configured otherwise.
const DefaultBlankGlyph = " "

// Cell is a single tape cell. The zero value is blank.
// Cells are comparable: every blank cell equals every other blank cell.
type Cell[S Symbol] struct {
	symbol S
	marked bool
}

// Blank returns an empty cell.
func Blank[S Symbol]() Cell[S] {
	return Cell[S]{}
}

// Mark returns a cell holding s.
func Mark[S Symbol](s S) Cell[S] {
	return Cell[S]{symbol: s, marked: true}
}

// Marks converts a list of symbols into non-blank cells.
func Marks[S Symbol](symbols ...S) []Cell[S] {
	cells := make([]Cell[S], len(symbols))
	for i, s := range symbols {
		cells[i] = Mark(s)
	}
	return cells
}

// Symbol returns the stored symbol and whether the cell is non-blank.
func (c Cell[S]) Symbol() (S, bool) {
	return c.symbol, c.marked
}

// IsBlank reports whether the cell holds no symbol.
func (c Cell[S]) IsBlank() bool {
	return !c.marked
}

// Render returns the symbol's text, or blank for an empty cell.
func (c Cell[S]) Render(blank string) string {
	if !c.marked {
		return blank
	}
	return c.symbol.String()
}

// String renders the cell using DefaultBlankGlyph.
func (c Cell[S]) String() string {
	return c.Render(DefaultBlankGlyph)
}
