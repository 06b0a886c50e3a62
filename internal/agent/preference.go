package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dusk-indust/planit/internal/route"
)

var _ Agent[route.Request, route.WeightSet] = (*PreferenceAgent)(nil)

// PreferenceConfig maps priorities to weight sets.
type PreferenceConfig struct {
	// Fast is used for route.PriorityFast.
	Fast route.WeightSet

	// Cheap is used for route.PriorityCheap and, unless Strict is set, for
	// any unrecognised priority.
	Cheap route.WeightSet

	// Strict rejects unrecognised priorities instead of falling back to
	// Cheap.
	Strict bool
}

// DefaultPreferenceConfig returns 0.6/0.4 for fast and 0.4/0.6 for cheap.
func DefaultPreferenceConfig() PreferenceConfig {
	return PreferenceConfig{
		Fast:  route.WeightSet{Time: 0.6, Cost: 0.4},
		Cheap: route.WeightSet{Time: 0.4, Cost: 0.6},
	}
}

// PreferenceAgent interprets the user's priority as a weight set.
type PreferenceAgent struct {
	*BaseAgent[route.Request, route.WeightSet]
	cfg    PreferenceConfig
	logger *slog.Logger
}

// NewPreferenceAgent creates a PreferenceAgent. A nil logger discards output.
func NewPreferenceAgent(cfg PreferenceConfig, logger *slog.Logger) *PreferenceAgent {
	a := &PreferenceAgent{cfg: cfg, logger: orDiscard(logger)}
	a.BaseAgent = NewBaseAgent[route.Request, route.WeightSet](Card{
		Name:        "preference-agent",
		Role:        RolePreference,
		Description: "Interprets user priority and assigns optimisation weights",
	}, a.interpret)
	return a
}

func (a *PreferenceAgent) interpret(_ context.Context, req route.Request) (route.WeightSet, error) {
	var w route.WeightSet
	switch req.Priority {
	case route.PriorityFast:
		w = a.cfg.Fast
	case route.PriorityCheap:
		w = a.cfg.Cheap
	default:
		if a.cfg.Strict {
			return route.WeightSet{}, fmt.Errorf("%w: unknown priority %q (want %q or %q)",
				route.ErrValidation, req.Priority, route.PriorityFast, route.PriorityCheap)
		}
		a.logger.Warn("unknown priority, using cheap weighting", "priority", string(req.Priority))
		w = a.cfg.Cheap
	}

	if err := w.Validate(); err != nil {
		return route.WeightSet{}, fmt.Errorf("weights for priority %q: %w", req.Priority, err)
	}
	return w, nil
}
