package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/dusk-indust/planit/internal/agent"
	"github.com/dusk-indust/planit/internal/fusion"
	"github.com/dusk-indust/planit/internal/metrics"
	"github.com/dusk-indust/planit/internal/route"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource is a test double for agent.RouteSource.
type fixedSource struct {
	cands []route.Candidate
	err   error
}

func (f *fixedSource) Generate(_ context.Context, _ route.Request) ([]route.Candidate, error) {
	return route.Clone(f.cands), f.err
}

func defaultRoutes() []route.Candidate {
	return []route.Candidate{
		{ID: "Route A", Distance: 10, Time: 20},
		{ID: "Route B", Distance: 14, Time: 15},
		{ID: "Route C", Distance: 8, Time: 25},
	}
}

// recordingSink captures the plans it receives.
type recordingSink struct {
	plans []*Plan
	err   error
}

func (r *recordingSink) Report(_ context.Context, plan *Plan) error {
	r.plans = append(r.plans, plan)
	return r.err
}

func request(priority route.Priority) route.Request {
	return route.Request{Source: "Location A", Destination: "Location B", Priority: priority}
}

func newTestPipeline(t *testing.T, cfg Config, src agent.RouteSource, opts ...Option) *Pipeline {
	t.Helper()
	p := NewPipeline(cfg, src, append([]Option{WithRunIDs(func() string { return "run-test" })}, opts...)...)
	t.Cleanup(p.Close)
	return p
}

func TestRun_ScenarioA_Fast(t *testing.T) {
	p := newTestPipeline(t, DefaultConfig(), &fixedSource{cands: defaultRoutes()})

	plan, err := p.Run(context.Background(), request(route.PriorityFast))
	require.NoError(t, err)

	assert.Equal(t, "run-test", plan.RunID)
	assert.Equal(t, route.WeightSet{Time: 0.6, Cost: 0.4}, plan.Weights)
	require.Len(t, plan.Candidates, 3)
	assert.Equal(t, []float64{50, 70, 40},
		[]float64{plan.Candidates[0].Cost, plan.Candidates[1].Cost, plan.Candidates[2].Cost})
	assert.InDelta(t, 0.05, plan.Candidates[0].TimeScore, 1e-12)
	assert.InDelta(t, 0.0667, plan.Candidates[1].TimeScore, 1e-4)
	assert.InDelta(t, 0.04, plan.Candidates[2].TimeScore, 1e-12)

	assert.Equal(t, "Route B", plan.Selection.ID)
	assert.InDelta(t, 0.0457, plan.Selection.Score, 1e-4)
	assert.Equal(t, fusion.FilterInfeasible.String(), plan.Policy)
}

func TestRun_ScenarioB_Cheap(t *testing.T) {
	p := newTestPipeline(t, DefaultConfig(), &fixedSource{cands: defaultRoutes()})

	plan, err := p.Run(context.Background(), request(route.PriorityCheap))
	require.NoError(t, err)

	assert.Equal(t, route.WeightSet{Time: 0.4, Cost: 0.6}, plan.Weights)
	assert.Equal(t, "Route B", plan.Selection.ID)
	assert.InDelta(t, 0.0353, plan.Selection.Score, 1e-4)
}

func TestRun_Deterministic(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		cfg := DefaultConfig()
		cfg.Parallel = parallel
		p := newTestPipeline(t, cfg, &fixedSource{cands: defaultRoutes()})

		first, err := p.Run(context.Background(), request(route.PriorityFast))
		require.NoError(t, err)
		second, err := p.Run(context.Background(), request(route.PriorityFast))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestRun_ReportsToSink(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(t, DefaultConfig(), &fixedSource{cands: defaultRoutes()}, WithSink(sink))

	plan, err := p.Run(context.Background(), request(route.PriorityFast))
	require.NoError(t, err)
	require.Len(t, sink.plans, 1)
	assert.Same(t, plan, sink.plans[0])
}

func TestRun_StageErrors(t *testing.T) {
	strict := DefaultConfig()
	strict.Preference.Strict = true

	zeroTime := defaultRoutes()
	zeroTime[0].Time = 0

	rejectAll := DefaultConfig()
	rejectAll.Feasibility = agent.FeasibilityFunc(func(context.Context, route.Candidate) (bool, error) {
		return false, nil
	})

	tests := []struct {
		name      string
		cfg       Config
		src       *fixedSource
		req       route.Request
		wantStage Stage
		wantErr   error
	}{
		{"missing source", DefaultConfig(), &fixedSource{cands: defaultRoutes()},
			route.Request{Destination: "B", Priority: route.PriorityFast}, StagePreference, route.ErrValidation},
		{"strict priority", strict, &fixedSource{cands: defaultRoutes()},
			request("scenic"), StagePreference, route.ErrValidation},
		{"no routes", DefaultConfig(), &fixedSource{},
			request(route.PriorityFast), StageRoutes, route.ErrNoRoutes},
		{"zero time", DefaultConfig(), &fixedSource{cands: zeroTime},
			request(route.PriorityFast), StageRoutes, route.ErrValidation},
		{"all infeasible", rejectAll, &fixedSource{cands: defaultRoutes()},
			request(route.PriorityFast), StageFusion, route.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			p := newTestPipeline(t, tt.cfg, tt.src, WithSink(sink))

			plan, err := p.Run(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, plan, "no partial plan on failure")
			assert.ErrorIs(t, err, tt.wantErr)

			var se *StageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.wantStage, se.Stage)
			assert.Contains(t, err.Error(), tt.wantStage.String())
			assert.Empty(t, sink.plans)
		})
	}
}

func TestRun_CostStageRejectsBadRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CostPerUnit = 0
	p := newTestPipeline(t, cfg, &fixedSource{cands: defaultRoutes()})

	_, err := p.Run(context.Background(), request(route.PriorityFast))
	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageCost, se.Stage)
}

func TestRun_SourceUnavailable(t *testing.T) {
	unavailable := errors.New("routing service unavailable")
	p := newTestPipeline(t, DefaultConfig(), &fixedSource{err: unavailable})

	_, err := p.Run(context.Background(), request(route.PriorityFast))
	assert.ErrorIs(t, err, unavailable)
	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageRoutes, se.Stage)
}

func TestRun_SinkFailure(t *testing.T) {
	sinkErr := errors.New("disk full")
	p := newTestPipeline(t, DefaultConfig(), &fixedSource{cands: defaultRoutes()},
		WithSink(&recordingSink{err: sinkErr}))

	plan, err := p.Run(context.Background(), request(route.PriorityFast))
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, sinkErr)
	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageReport, se.Stage)
}

func TestRun_FeasibilityPolicy(t *testing.T) {
	rejectB := agent.FeasibilityFunc(func(_ context.Context, c route.Candidate) (bool, error) {
		return c.ID != "Route B", nil
	})

	filtered := DefaultConfig()
	filtered.Feasibility = rejectB
	plan, err := newTestPipeline(t, filtered, &fixedSource{cands: defaultRoutes()}).
		Run(context.Background(), request(route.PriorityFast))
	require.NoError(t, err)
	assert.Equal(t, "Route A", plan.Selection.ID)
	assert.False(t, plan.Candidates[1].Feasible)

	scoreAll := filtered
	scoreAll.Policy = fusion.ScoreAll
	plan, err = newTestPipeline(t, scoreAll, &fixedSource{cands: defaultRoutes()}).
		Run(context.Background(), request(route.PriorityFast))
	require.NoError(t, err)
	assert.Equal(t, "Route B", plan.Selection.ID)
}

func TestRun_CanceledContext(t *testing.T) {
	p := newTestPipeline(t, DefaultConfig(), &fixedSource{cands: defaultRoutes()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, request(route.PriorityFast))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ProgressEvents(t *testing.T) {
	p := newTestPipeline(t, DefaultConfig(), &fixedSource{cands: defaultRoutes()}, WithSink(&recordingSink{}))

	_, err := p.Run(context.Background(), request(route.PriorityFast))
	require.NoError(t, err)

	ch := p.Progress()
	completed := map[Stage]bool{}
	for len(ch) > 0 {
		ev := <-ch
		assert.Equal(t, "run-test", ev.RunID)
		if ev.Status == ProgressComplete {
			completed[ev.Stage] = true
		}
	}
	for s := StagePreference; s <= StageReport; s++ {
		assert.True(t, completed[s], "stage %s should complete", s)
	}
}

func TestRun_Metrics(t *testing.T) {
	rec := metrics.NewRecorder()
	p := newTestPipeline(t, DefaultConfig(), &fixedSource{cands: defaultRoutes()}, WithMetrics(rec))

	_, err := p.Run(context.Background(), request(route.PriorityFast))
	require.NoError(t, err)
	_, err = p.Run(context.Background(), route.Request{})
	require.Error(t, err)

	// runs (2 outcomes) + stage durations (6 stages, no sink) + 1 failure
	// + 1 selection + candidates histogram.
	n, err := testutil.GatherAndCount(rec.Registry())
	require.NoError(t, err)
	assert.Equal(t, 11, n)
}

func TestPipeline_Agents(t *testing.T) {
	p := newTestPipeline(t, DefaultConfig(), &fixedSource{})
	cards := p.Agents()
	require.Len(t, cards, 5)
	roles := make([]agent.Role, len(cards))
	for i, c := range cards {
		roles[i] = c.Role
	}
	assert.Equal(t, []agent.Role{
		agent.RolePreference, agent.RoleRoute, agent.RoleCost, agent.RoleTime, agent.RoleResource,
	}, roles)
}

func TestStageError_Unwrap(t *testing.T) {
	err := &StageError{Stage: StageTime, Err: route.ErrValidation}
	assert.ErrorIs(t, err, route.ErrValidation)
	assert.Equal(t, "stage 3 (time) failed: validation failed", err.Error())
}
