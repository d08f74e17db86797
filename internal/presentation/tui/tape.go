package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/turing/pkg/domain"
)

// TapeView renders tapes with the head cell highlighted.
// On a terminal the head cell is shown in reverse video; otherwise it is
// wrapped in brackets so the output stays readable in files and pipes.
type TapeView struct {
	w     io.Writer
	out   *termenv.Output
	plain bool
}

// NewTapeView creates a view for w. Color is used only when w is a terminal.
func NewTapeView(w io.Writer) *TapeView {
	plain := true
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		plain = false
	}
	return &TapeView{w: w, out: termenv.NewOutput(w), plain: plain}
}

// NewPlainTapeView creates a view that never emits escape sequences.
func NewPlainTapeView(w io.Writer) *TapeView {
	return &TapeView{w: w, out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii)), plain: true}
}

// Render returns the cells joined together with the cell at head highlighted.
// A head outside the cells renders no highlight.
func (v *TapeView) Render(cells []string, head int) string {
	var sb strings.Builder
	for i, c := range cells {
		if i != head {
			sb.WriteString(c)
			continue
		}
		if v.plain {
			sb.WriteString("[" + c + "]")
			continue
		}
		sb.WriteString(v.out.String(c).Reverse().Bold().String())
	}
	return sb.String()
}

// Line writes one trace line: step number, state and tape.
func (v *TapeView) Line(step int, state string, cells []string, head int) {
	stateText := fmt.Sprintf("%-8s", state)
	if !v.plain {
		stateText = v.out.String(stateText).Foreground(v.out.Color("#14b8a6")).String()
	}
	fmt.Fprintf(v.w, "%5d  %s %s\n", step, stateText, v.Render(cells, head))
}

// Cells renders each cell of a tape with blank standing for empty cells.
func Cells[S domain.Symbol](tape []domain.Cell[S], blank string) []string {
	out := make([]string, len(tape))
	for i, c := range tape {
		out[i] = c.Render(blank)
	}
	return out
}
