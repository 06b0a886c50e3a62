package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/planit/internal/orchestrator"
)

// FormatText renders plan as a human-readable report.
func FormatText(plan *orchestrator.Plan) string {
	var sb strings.Builder
	sel := plan.Selection

	sb.WriteString(orchestrator.FormatRunHeader(plan))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Weights: time=%.2f cost=%.2f (policy: %s)\n\n", plan.Weights.Time, plan.Weights.Cost, plan.Policy)

	sb.WriteString("OPTIMAL PLAN GENERATED:\n")
	fmt.Fprintf(&sb, "  route:      %s\n", sel.ID)
	fmt.Fprintf(&sb, "  distance:   %g\n", sel.Distance)
	fmt.Fprintf(&sb, "  time:       %g\n", sel.Time)
	fmt.Fprintf(&sb, "  cost:       %g\n", sel.Cost)
	fmt.Fprintf(&sb, "  time score: %.4f\n", sel.TimeScore)
	fmt.Fprintf(&sb, "  feasible:   %t\n", sel.Feasible)
	fmt.Fprintf(&sb, "  score:      %.4f\n", sel.Score)

	sb.WriteString("\nRanking:\n")
	for i, s := range sel.Ranking {
		fmt.Fprintf(&sb, "  %d. %-10s %.4f\n", i+1, s.ID, s.Score)
	}
	return sb.String()
}
