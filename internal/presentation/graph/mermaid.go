package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// BlankGlyph labels blank cells on edges.
const BlankGlyph = "_"

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart from the rules of a transition table.
// It applies semantic styling:
// - Start state: ((Circle))
// - Halting state (reached only by accepting rules): (((Double circle)))
// - Default: [Rectangle]
// Each rule becomes one edge labelled "read/write,move"; accepting rules use a thick arrow.
// Overlay styles (Visited/Current) are applied if provided.
func GenerateMermaid[Q comparable, S domain.Symbol](rules []domain.Rule[Q, S], start Q, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	// Nodes in first-appearance order.
	seen := make(map[string]bool)
	working := make(map[string]bool)
	var order []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	add(fmt.Sprint(start))
	for _, r := range rules {
		from := fmt.Sprint(r.When.State)
		working[from] = true
		add(from)
		add(fmt.Sprint(r.Then.Next))
	}

	startID := fmt.Sprint(start)
	for _, id := range order {
		opener, closer := "[", "]"
		switch {
		case id == startID:
			opener, closer = "((", "))"
		case !working[id]:
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(id), opener, escapeLabel(id), closer)
	}

	for _, r := range rules {
		label := fmt.Sprintf("%s/%s,%s",
			r.When.Read.Render(BlankGlyph),
			r.Then.Write.Render(BlankGlyph),
			r.Then.Move,
		)
		arrow := fmt.Sprintf("-- \"%s\" -->", escapeLabel(label))
		if r.Then.Accept {
			arrow = fmt.Sprintf("== \"%s\" ==>", escapeLabel(label))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n",
			sanitizeMermaidID(fmt.Sprint(r.When.State)), arrow, sanitizeMermaidID(fmt.Sprint(r.Then.Next)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentState))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
