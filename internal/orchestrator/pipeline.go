package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/dusk-indust/planit/internal/agent"
	"github.com/dusk-indust/planit/internal/fusion"
	"github.com/dusk-indust/planit/internal/metrics"
	"github.com/dusk-indust/planit/internal/route"
	"github.com/google/uuid"
)

// Compile-time interface check.
var _ Orchestrator = (*Pipeline)(nil)

// annotationStage binds a candidate annotator to the stage it runs in.
type annotationStage struct {
	stage Stage
	agent agent.Annotator
}

// Pipeline runs the planning agents in a fixed order and fuses their
// output into a single selection. A Pipeline keeps no state between runs
// apart from its progress channel and metrics.
type Pipeline struct {
	cfg        Config
	preference agent.Agent[route.Request, route.WeightSet]
	routes     agent.Agent[route.Request, []route.Candidate]
	annotators []annotationStage
	fuser      *fusion.Fuser
	sink       Sink
	progress   *ProgressReporter
	metrics    *metrics.Recorder
	logger     *slog.Logger
	newRunID   func() string
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithSink reports every successful plan to s.
func WithSink(s Sink) Option {
	return func(p *Pipeline) { p.sink = s }
}

// WithMetrics records stage and run metrics in r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(p *Pipeline) { p.metrics = r }
}

// WithLogger sets the logger used by the pipeline and its agents.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithRunIDs overrides run ID generation.
func WithRunIDs(gen func() string) Option {
	return func(p *Pipeline) { p.newRunID = gen }
}

// NewPipeline creates a Pipeline wired with the five planning agents and a
// fuser built from cfg. Candidates come from source.
func NewPipeline(cfg Config, source agent.RouteSource, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		progress: NewProgressReporter(),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}

	p.preference = agent.NewPreferenceAgent(cfg.Preference, p.logger)
	p.routes = agent.NewRouteAgent(source)
	p.annotators = []annotationStage{
		{StageCost, agent.NewCostAgent(cfg.CostPerUnit, cfg.Parallel)},
		{StageTime, agent.NewTimeAgent(cfg.Parallel)},
		{StageFeasibility, agent.NewResourceAgent(cfg.Feasibility, cfg.Parallel)},
	}
	p.fuser = fusion.New(cfg.Policy)
	return p
}

// Agents returns the cards of the pipeline's agents in execution order.
func (p *Pipeline) Agents() []agent.Card {
	cards := []agent.Card{p.preference.Card(), p.routes.Card()}
	for _, a := range p.annotators {
		cards = append(cards, a.agent.Card())
	}
	return cards
}

// Run executes preference, routes, cost, time, feasibility, fusion and
// report in that order. The first failing stage aborts the run and is
// returned as a *StageError; no partial plan is returned.
func (p *Pipeline) Run(ctx context.Context, req route.Request) (plan *Plan, err error) {
	plan = &Plan{
		RunID:   p.newRunID(),
		Request: req,
		Policy:  p.fuser.Policy().String(),
	}
	log := p.logger.With("run", plan.RunID)

	defer func() {
		routeID := ""
		if err == nil {
			routeID = plan.Selection.ID
		}
		p.metrics.ObserveRun(routeID, err)
	}()

	for s := StagePreference; s <= StageReport; s++ {
		p.progress.Emit(ProgressEvent{RunID: plan.RunID, Stage: s, Status: ProgressPending})
	}

	log.Info("planning started", "source", req.Source, "destination", req.Destination, "priority", string(req.Priority))

	if err := p.runStage(ctx, log, plan.RunID, StagePreference, func(ctx context.Context) error {
		if err := req.Validate(); err != nil {
			return err
		}
		w, err := p.preference.Process(ctx, req)
		plan.Weights = w
		return err
	}); err != nil {
		return nil, err
	}

	var cands []route.Candidate
	if err := p.runStage(ctx, log, plan.RunID, StageRoutes, func(ctx context.Context) error {
		var err error
		cands, err = p.routes.Process(ctx, req)
		p.metrics.ObserveCandidates(len(cands))
		return err
	}); err != nil {
		return nil, err
	}

	for _, a := range p.annotators {
		if err := p.runStage(ctx, log, plan.RunID, a.stage, func(ctx context.Context) error {
			next, err := a.agent.Process(ctx, cands)
			if err != nil {
				return err
			}
			cands = next
			return nil
		}); err != nil {
			return nil, err
		}
	}
	plan.Candidates = cands

	if err := p.runStage(ctx, log, plan.RunID, StageFusion, func(context.Context) error {
		sel, err := p.fuser.Select(cands, plan.Weights)
		if err != nil {
			return err
		}
		plan.Selection = *sel
		return nil
	}); err != nil {
		return nil, err
	}

	if p.sink != nil {
		if err := p.runStage(ctx, log, plan.RunID, StageReport, func(ctx context.Context) error {
			return p.sink.Report(ctx, plan)
		}); err != nil {
			return nil, err
		}
	}

	log.Info("planning complete", "route", plan.Selection.ID, "score", plan.Selection.Score)
	return plan, nil
}

// runStage wraps a stage with progress events, logging, metrics and error
// qualification.
func (p *Pipeline) runStage(ctx context.Context, log *slog.Logger, runID string, stage Stage, fn func(context.Context) error) error {
	p.progress.Emit(ProgressEvent{RunID: runID, Stage: stage, Status: ProgressWorking})
	log.Debug("stage started", "stage", stage.String())

	start := time.Now()
	err := ctx.Err()
	if err == nil {
		err = fn(ctx)
	}
	elapsed := time.Since(start)
	p.metrics.ObserveStage(stage.String(), elapsed, err)

	if err != nil {
		p.progress.Emit(ProgressEvent{RunID: runID, Stage: stage, Status: ProgressFailed, Message: err.Error()})
		log.Error("stage failed", "stage", stage.String(), "error", err)
		return &StageError{Stage: stage, Err: err}
	}

	p.progress.Emit(ProgressEvent{RunID: runID, Stage: stage, Status: ProgressComplete})
	log.Debug("stage complete", "stage", stage.String(), "elapsed", elapsed)
	return nil
}

// Progress returns a channel that emits progress events.
func (p *Pipeline) Progress() <-chan ProgressEvent {
	return p.progress.Subscribe()
}

// Close shuts down the progress reporter. Callers should invoke this when the
// pipeline is no longer needed.
func (p *Pipeline) Close() {
	p.progress.Close()
}
