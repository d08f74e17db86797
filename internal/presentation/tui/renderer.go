package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/turing/pkg/domain"
)

// BlankGlyph stands for blank cells in rule sheets.
const BlankGlyph = "_"

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", err
		}
		return r.Render(markdown)
	}
}

// RuleSheet builds a markdown document describing a transition table, one
// table row per rule in lookup order.
func RuleSheet[Q comparable, S domain.Symbol](title, description string, rules []domain.Rule[Q, S]) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if description != "" {
		fmt.Fprintf(&sb, "%s\n\n", description)
	}

	sb.WriteString("| # | State | Read | Write | Move | Next | Halts |\n")
	sb.WriteString("|---|-------|------|-------|------|------|-------|\n")
	for i, r := range rules {
		halts := ""
		if r.Then.Accept {
			halts = "yes"
		}
		fmt.Fprintf(&sb, "| %d | %s | `%s` | `%s` | %s | %s | %s |\n",
			i+1,
			escapeCell(fmt.Sprint(r.When.State)),
			r.When.Read.Render(BlankGlyph),
			r.Then.Write.Render(BlankGlyph),
			r.Then.Move,
			escapeCell(fmt.Sprint(r.Then.Next)),
			halts,
		)
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
