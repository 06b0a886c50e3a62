package orchestrator

import (
	"github.com/dusk-indust/planit/internal/agent"
	"github.com/dusk-indust/planit/internal/fusion"
)

// Config holds the tunables of a pipeline.
type Config struct {
	// Preference maps priorities to weights.
	Preference agent.PreferenceConfig

	// CostPerUnit is the cost charged per unit of distance.
	CostPerUnit float64

	// Policy decides whether fusion drops infeasible candidates.
	Policy fusion.Policy

	// Feasibility is the predicate used by the resource agent. Nil accepts
	// every candidate.
	Feasibility agent.FeasibilityPredicate

	// Parallel annotates candidates concurrently within a stage.
	Parallel bool
}

// DefaultConfig returns the stock weights, a cost of 5 per unit distance,
// infeasible filtering and sequential annotation.
func DefaultConfig() Config {
	return Config{
		Preference:  agent.DefaultPreferenceConfig(),
		CostPerUnit: agent.DefaultCostPerUnit,
		Policy:      fusion.FilterInfeasible,
		Feasibility: agent.AlwaysFeasible,
	}
}
