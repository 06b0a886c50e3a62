// Package fusion combines the annotations produced by the planning agents
// into a single ranked route selection.
package fusion

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/dusk-indust/planit/internal/route"
)

// Policy controls how feasibility flags are treated during fusion.
type Policy int

const (
	// FilterInfeasible drops candidates flagged infeasible before scoring.
	FilterInfeasible Policy = iota

	// ScoreAll scores every candidate and ignores the feasibility flag.
	ScoreAll
)

func (p Policy) String() string {
	switch p {
	case FilterInfeasible:
		return "filter-infeasible"
	case ScoreAll:
		return "score-all"
	default:
		return "unknown"
	}
}

// Score computes timeWeight/time + costWeight/cost for c. It fails with
// route.ErrComputation when a denominator is not positive or the result is
// not finite.
func Score(c route.Candidate, w route.WeightSet) (float64, error) {
	if !(c.Time > 0) {
		return 0, fmt.Errorf("%w: candidate %q has time %g", route.ErrComputation, c.ID, c.Time)
	}
	if !(c.Cost > 0) {
		return 0, fmt.Errorf("%w: candidate %q has cost %g", route.ErrComputation, c.ID, c.Cost)
	}
	s := w.Time*(1/c.Time) + w.Cost*(1/c.Cost)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, fmt.Errorf("%w: candidate %q scored %g", route.ErrComputation, c.ID, s)
	}
	return s, nil
}

// Fuser ranks annotated candidates under a feasibility policy.
type Fuser struct {
	policy Policy
}

// New creates a Fuser with the given policy.
func New(policy Policy) *Fuser {
	return &Fuser{policy: policy}
}

// Policy returns the fuser's feasibility policy.
func (f *Fuser) Policy() Policy {
	return f.policy
}

// Rank scores the eligible candidates and orders them best first. Equal
// scores keep their input order, so the first-seen candidate wins a tie.
func (f *Fuser) Rank(cands []route.Candidate, w route.WeightSet) ([]route.Scored, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("%w: no candidates available", route.ErrValidation)
	}

	required := route.AnnotatedCost | route.AnnotatedTime
	if f.policy == FilterInfeasible {
		required |= route.AnnotatedFeasibility
	}

	scored := make([]route.Scored, 0, len(cands))
	for _, c := range cands {
		if !c.Annotations.Has(required) {
			return nil, fmt.Errorf("%w: candidate %q is annotated with %s, fusion needs %s",
				route.ErrValidation, c.ID, c.Annotations, required)
		}
		if f.policy == FilterInfeasible && !c.Feasible {
			continue
		}
		s, err := Score(c, w)
		if err != nil {
			return nil, err
		}
		scored = append(scored, route.Scored{Candidate: c, Score: s})
	}
	if len(scored) == 0 {
		return nil, fmt.Errorf("%w: no feasible candidates among %d", route.ErrValidation, len(cands))
	}

	slices.SortStableFunc(scored, func(a, b route.Scored) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return scored, nil
}

// Select returns the best candidate together with the full ranking.
func (f *Fuser) Select(cands []route.Candidate, w route.WeightSet) (*route.Selection, error) {
	ranked, err := f.Rank(cands, w)
	if err != nil {
		return nil, err
	}
	return &route.Selection{Scored: ranked[0], Ranking: ranked}, nil
}
