package agent

import (
	"context"
	"fmt"

	"github.com/dusk-indust/planit/internal/route"
)

var _ Annotator = (*CostAgent)(nil)

// DefaultCostPerUnit is the flat cost charged per unit of distance.
const DefaultCostPerUnit = 5.0

// CostAgent estimates travel cost from distance.
type CostAgent struct {
	*BaseAgent[[]route.Candidate, []route.Candidate]
	perUnit  float64
	parallel bool
}

// NewCostAgent creates a CostAgent charging perUnit per unit of distance.
func NewCostAgent(perUnit float64, parallel bool) *CostAgent {
	a := &CostAgent{perUnit: perUnit, parallel: parallel}
	a.BaseAgent = NewBaseAgent[[]route.Candidate, []route.Candidate](Card{
		Name:        "cost-agent",
		Role:        RoleCost,
		Description: "Estimates travel cost based on distance",
	}, a.estimate)
	return a
}

func (a *CostAgent) estimate(ctx context.Context, cands []route.Candidate) ([]route.Candidate, error) {
	if !(a.perUnit > 0) {
		return nil, fmt.Errorf("%w: cost per unit must be positive, got %g", route.ErrValidation, a.perUnit)
	}
	return annotateEach(ctx, cands, a.parallel, func(_ context.Context, c route.Candidate) (route.Candidate, error) {
		if !(c.Distance > 0) {
			return route.Candidate{}, &route.InvalidCandidateError{
				ID: c.ID, Field: "distance", Value: c.Distance, Reason: "must be positive",
			}
		}
		return c.WithCost(c.Distance * a.perUnit), nil
	})
}
