//go:build e2e

package e2e

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dusk-indust/planit/internal/config"
	"github.com/dusk-indust/planit/internal/orchestrator"
	"github.com/dusk-indust/planit/internal/route"
	"github.com/dusk-indust/planit/internal/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPipeline_E2E_RoutesFile drives the pipeline from the checked-in
// routes fixture with a budget limit that rules out the fastest route.
func TestPipeline_E2E_RoutesFile(t *testing.T) {
	proj := config.Default()
	proj.MaxCost = 100

	src := routes.NewFile(filepath.Join("..", "..", "testdata", "routes", "city.yml"))
	p := orchestrator.NewPipeline(proj.Pipeline(), src)
	defer p.Close()

	req := route.Request{Source: "Depot", Destination: "Harbour", Priority: route.PriorityFast}

	plan, err := p.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Ring Road", plan.Selection.ID)
	for _, c := range plan.Candidates {
		if c.ID == "Motorway" {
			assert.False(t, c.Feasible)
		}
	}

	proj.IncludeInfeasible = true
	all := orchestrator.NewPipeline(proj.Pipeline(), src)
	defer all.Close()

	plan, err = all.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Motorway", plan.Selection.ID)
}

// TestPipeline_E2E_AbortsOnStageFailure checks that a failing stage stops
// the run with a stage-qualified error.
func TestPipeline_E2E_AbortsOnStageFailure(t *testing.T) {
	src := routes.NewStatic(
		route.Candidate{ID: "Ferry", Distance: 12, Time: 40},
		route.Candidate{ID: "Ferry", Distance: 9, Time: 30},
	)
	p := orchestrator.NewPipeline(orchestrator.DefaultConfig(), src)
	defer p.Close()

	plan, err := p.Run(context.Background(), route.Request{
		Source: "Depot", Destination: "Island", Priority: route.PriorityCheap,
	})
	require.Error(t, err)
	assert.Nil(t, plan)

	var se *orchestrator.StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, orchestrator.StageRoutes, se.Stage)
	assert.ErrorIs(t, err, route.ErrValidation)
}
