package agent

import (
	"context"

	"github.com/dusk-indust/planit/internal/route"
)

var _ Annotator = (*TimeAgent)(nil)

// TimeAgent scores each candidate's time efficiency as 1/time.
type TimeAgent struct {
	*BaseAgent[[]route.Candidate, []route.Candidate]
	parallel bool
}

// NewTimeAgent creates a TimeAgent.
func NewTimeAgent(parallel bool) *TimeAgent {
	a := &TimeAgent{parallel: parallel}
	a.BaseAgent = NewBaseAgent[[]route.Candidate, []route.Candidate](Card{
		Name:        "time-agent",
		Role:        RoleTime,
		Description: "Evaluates time efficiency of routes",
	}, a.evaluate)
	return a
}

func (a *TimeAgent) evaluate(ctx context.Context, cands []route.Candidate) ([]route.Candidate, error) {
	return annotateEach(ctx, cands, a.parallel, func(_ context.Context, c route.Candidate) (route.Candidate, error) {
		if !(c.Time > 0) {
			return route.Candidate{}, &route.InvalidCandidateError{
				ID: c.ID, Field: "time", Value: c.Time, Reason: "must be positive",
			}
		}
		return c.WithTimeScore(1 / c.Time), nil
	})
}
