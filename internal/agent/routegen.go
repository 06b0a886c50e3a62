package agent

import (
	"context"
	"fmt"

	"github.com/dusk-indust/planit/internal/route"
)

var _ Agent[route.Request, []route.Candidate] = (*RouteAgent)(nil)

// RouteSource produces the initial candidate set for a request. It may be
// backed by a fixture or an external routing service.
type RouteSource interface {
	Generate(ctx context.Context, req route.Request) ([]route.Candidate, error)
}

// RouteAgent generates candidate routes from a RouteSource.
type RouteAgent struct {
	*BaseAgent[route.Request, []route.Candidate]
	source RouteSource
}

// NewRouteAgent creates a RouteAgent backed by source.
func NewRouteAgent(source RouteSource) *RouteAgent {
	a := &RouteAgent{source: source}
	a.BaseAgent = NewBaseAgent[route.Request, []route.Candidate](Card{
		Name:        "route-agent",
		Role:        RoleRoute,
		Description: "Finds candidate routes between source and destination",
	}, a.generate)
	return a
}

func (a *RouteAgent) generate(ctx context.Context, req route.Request) ([]route.Candidate, error) {
	if a.source == nil {
		return nil, fmt.Errorf("route agent: no route source: %w", route.ErrNotImplemented)
	}

	cands, err := a.source.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("route source: %w", err)
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("%s to %s: %w", req.Source, req.Destination, route.ErrNoRoutes)
	}
	if err := route.ValidateSet(cands); err != nil {
		return nil, err
	}

	// Strip any annotations a source may have set; downstream stages own them.
	out := make([]route.Candidate, len(cands))
	for i, c := range cands {
		out[i] = route.Candidate{ID: c.ID, Distance: c.Distance, Time: c.Time}
	}
	return out, nil
}
