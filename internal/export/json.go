package export

import (
	"encoding/json"
	"time"

	"github.com/dusk-indust/planit/internal/orchestrator"
	"github.com/dusk-indust/planit/internal/route"
)

// PlanExport is the top-level JSON export structure.
type PlanExport struct {
	RunID      string          `json:"runId"`
	ExportedAt string          `json:"exportedAt"`
	Request    route.Request   `json:"request"`
	Weights    route.WeightSet `json:"weights"`
	Policy     string          `json:"policy"`
	Selected   RouteExport     `json:"selected"`
	Ranking    []RouteExport   `json:"ranking"`
	Candidates []RouteExport   `json:"candidates"`
}

// RouteExport describes one candidate route. Score is omitted for
// candidates that were not ranked.
type RouteExport struct {
	Route     string   `json:"route"`
	Distance  float64  `json:"distance"`
	Time      float64  `json:"time"`
	Cost      float64  `json:"cost"`
	TimeScore float64  `json:"timeScore"`
	Feasible  bool     `json:"feasible"`
	Score     *float64 `json:"score,omitempty"`
}

// ExportPlan builds a PlanExport from a finished plan.
func ExportPlan(plan *orchestrator.Plan, now time.Time) *PlanExport {
	out := &PlanExport{
		RunID:      plan.RunID,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Request:    plan.Request,
		Weights:    plan.Weights,
		Policy:     plan.Policy,
		Selected:   scoredExport(plan.Selection.Scored),
	}

	for _, s := range plan.Selection.Ranking {
		out.Ranking = append(out.Ranking, scoredExport(s))
	}
	for _, c := range plan.Candidates {
		out.Candidates = append(out.Candidates, routeExport(c))
	}
	return out
}

// MarshalPlan renders plan as indented JSON.
func MarshalPlan(plan *orchestrator.Plan, now time.Time) ([]byte, error) {
	return json.MarshalIndent(ExportPlan(plan, now), "", "  ")
}

func routeExport(c route.Candidate) RouteExport {
	return RouteExport{
		Route:     c.ID,
		Distance:  c.Distance,
		Time:      c.Time,
		Cost:      c.Cost,
		TimeScore: c.TimeScore,
		Feasible:  c.Feasible,
	}
}

func scoredExport(s route.Scored) RouteExport {
	r := routeExport(s.Candidate)
	score := s.Score
	r.Score = &score
	return r
}
