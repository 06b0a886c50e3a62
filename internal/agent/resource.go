package agent

import (
	"context"
	"fmt"

	"github.com/dusk-indust/planit/internal/route"
)

var _ Annotator = (*ResourceAgent)(nil)

// FeasibilityPredicate decides whether a candidate can be executed.
type FeasibilityPredicate interface {
	Feasible(ctx context.Context, c route.Candidate) (bool, error)
}

// FeasibilityFunc adapts a function to FeasibilityPredicate.
type FeasibilityFunc func(ctx context.Context, c route.Candidate) (bool, error)

// Feasible calls f.
func (f FeasibilityFunc) Feasible(ctx context.Context, c route.Candidate) (bool, error) {
	return f(ctx, c)
}

// AlwaysFeasible accepts every candidate.
var AlwaysFeasible FeasibilityPredicate = FeasibilityFunc(func(context.Context, route.Candidate) (bool, error) {
	return true, nil
})

// BudgetLimit rejects candidates whose cost or travel time exceeds a bound.
// A zero bound is unlimited.
type BudgetLimit struct {
	MaxCost float64
	MaxTime float64
}

// Feasible implements FeasibilityPredicate. The cost bound needs the cost
// annotation to be present.
func (b BudgetLimit) Feasible(_ context.Context, c route.Candidate) (bool, error) {
	if b.MaxCost > 0 {
		if !c.Annotations.Has(route.AnnotatedCost) {
			return false, fmt.Errorf("%w: candidate %q has no cost for budget check", route.ErrValidation, c.ID)
		}
		if c.Cost > b.MaxCost {
			return false, nil
		}
	}
	if b.MaxTime > 0 && c.Time > b.MaxTime {
		return false, nil
	}
	return true, nil
}

// ResourceAgent flags each candidate as feasible or not.
type ResourceAgent struct {
	*BaseAgent[[]route.Candidate, []route.Candidate]
	predicate FeasibilityPredicate
	parallel  bool
}

// NewResourceAgent creates a ResourceAgent. A nil predicate accepts every
// candidate.
func NewResourceAgent(predicate FeasibilityPredicate, parallel bool) *ResourceAgent {
	if predicate == nil {
		predicate = AlwaysFeasible
	}
	a := &ResourceAgent{predicate: predicate, parallel: parallel}
	a.BaseAgent = NewBaseAgent[[]route.Candidate, []route.Candidate](Card{
		Name:        "resource-agent",
		Role:        RoleResource,
		Description: "Validates feasibility of routes",
	}, a.check)
	return a
}

func (a *ResourceAgent) check(ctx context.Context, cands []route.Candidate) ([]route.Candidate, error) {
	return annotateEach(ctx, cands, a.parallel, func(ctx context.Context, c route.Candidate) (route.Candidate, error) {
		ok, err := a.predicate.Feasible(ctx, c)
		if err != nil {
			return route.Candidate{}, fmt.Errorf("feasibility of %q: %w", c.ID, err)
		}
		return c.WithFeasible(ok), nil
	})
}
