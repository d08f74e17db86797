package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Amber to teal, one color per line.
	lines := []struct{ text, color string }{
		{"  _              _             ", "#f59e0b"},
		{" | |_ _   _ _ __(_)_ __   __ _ ", "#eab308"},
		{" | __| | | | '__| | '_ \\ / _` |", "#84cc16"},
		{" | |_| |_| | |  | | | | | (_| |", "#22c55e"},
		{"  \\__|\\__,_|_|  |_|_| |_|\\__, |", "#14b8a6"},
		{"                         |___/ ", "#06b6d4"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
