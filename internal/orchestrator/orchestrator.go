package orchestrator

import (
	"context"
	"fmt"

	"github.com/dusk-indust/planit/internal/route"
)

// Stage identifies a pipeline stage.
type Stage int

const (
	StagePreference Stage = iota
	StageRoutes
	StageCost
	StageTime
	StageFeasibility
	StageFusion
	StageReport
)

func (s Stage) String() string {
	names := [...]string{
		"preference",
		"routes",
		"cost",
		"time",
		"feasibility",
		"fusion",
		"report",
	}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// StageError reports which stage aborted a run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s) failed: %v", int(e.Stage), e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Plan is the outcome of a successful run.
type Plan struct {
	RunID      string            `json:"runId"`
	Request    route.Request     `json:"request"`
	Weights    route.WeightSet   `json:"weights"`
	Policy     string            `json:"policy"`
	Candidates []route.Candidate `json:"candidates"`
	Selection  route.Selection   `json:"selection"`
}

// ProgressEvent is emitted as the pipeline moves through its stages.
type ProgressEvent struct {
	RunID   string
	Stage   Stage
	Status  ProgressStatus
	Message string
}

// ProgressStatus is the state of a stage within a run.
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)

// Sink receives the plan of every successful run.
type Sink interface {
	Report(ctx context.Context, plan *Plan) error
}

// Orchestrator coordinates the planning agents.
type Orchestrator interface {
	// Run executes every stage for req and returns the resulting plan.
	Run(ctx context.Context, req route.Request) (*Plan, error)

	// Progress returns a channel that emits progress events.
	Progress() <-chan ProgressEvent
}
