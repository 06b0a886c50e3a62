package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/planit/internal/orchestrator"
)

// GenerateMermaid produces a Mermaid graph LR diagram of a plan. Each
// candidate is an edge from source to destination labelled with its score;
// the selected route is drawn bold and infeasible routes dotted.
func GenerateMermaid(plan *orchestrator.Plan) string {
	scores := make(map[string]float64, len(plan.Selection.Ranking))
	for _, s := range plan.Selection.Ranking {
		scores[s.ID] = s.Score
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")
	fmt.Fprintf(&sb, "  SRC[%q]\n", plan.Request.Source)
	fmt.Fprintf(&sb, "  DST[%q]\n", plan.Request.Destination)

	for i, c := range plan.Candidates {
		label := fmt.Sprintf("%s cost=%g time=%g", c.ID, c.Cost, c.Time)
		if s, ok := scores[c.ID]; ok {
			label += fmt.Sprintf(" score=%.4f", s)
		}
		arrow := "-->"
		switch {
		case c.ID == plan.Selection.ID:
			arrow = "==>"
		case !c.Feasible:
			arrow = "-.->"
		}
		fmt.Fprintf(&sb, "  SRC %s|%s| R%d\n", arrow, label, i)
		fmt.Fprintf(&sb, "  R%d((%s)) --> DST\n", i, mermaidID(c.ID))
	}
	return sb.String()
}

// mermaidID keeps letters, digits and underscores.
func mermaidID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('_')
		}
	}
	return b.String()
}
