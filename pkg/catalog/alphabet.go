package catalog

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// BlankGlyph renders blank cells in run records so that ParseTape can read them back.
const BlankGlyph = "_"

// Bit is the binary tape alphabet.
type Bit uint8

const (
	Zero Bit = iota
	One
)

func (b Bit) String() string {
	if b == One {
		return "1"
	}
	return "0"
}

// ParseTape converts tape text into cells.
func ParseTape(text string) ([]domain.Cell[Bit], error) {
	cells := make([]domain.Cell[Bit], 0, len(text))
	for i, r := range text {
		switch r {
		case '0':
			cells = append(cells, domain.Mark(Zero))
		case '1':
			cells = append(cells, domain.Mark(One))
		case '_', ' ':
			cells = append(cells, domain.Blank[Bit]())
		default:
			return nil, fmt.Errorf("invalid tape symbol %q at position %d", r, i)
		}
	}
	return cells, nil
}
