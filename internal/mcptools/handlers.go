package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dusk-indust/planit/internal/agent"
	"github.com/dusk-indust/planit/internal/orchestrator"
	"github.com/dusk-indust/planit/internal/route"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Planner runs the planning pipeline and describes its agents.
type Planner interface {
	Run(ctx context.Context, req route.Request) (*orchestrator.Plan, error)
	Agents() []agent.Card
}

// PlanService handles MCP tool calls for the planner server mode.
type PlanService struct {
	planner Planner
}

// NewPlanService creates a PlanService backed by planner.
func NewPlanService(planner Planner) *PlanService {
	return &PlanService{planner: planner}
}

// PlanRoute runs the pipeline for one request. Pipeline failures are
// reported in the output with status "failed"; malformed input is a tool
// error.
func (s *PlanService) PlanRoute(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanRouteInput,
) (*mcp.CallToolResult, PlanRouteOutput, error) {
	if strings.TrimSpace(input.Source) == "" || strings.TrimSpace(input.Destination) == "" {
		return nil, PlanRouteOutput{Status: "failed"}, fmt.Errorf("source and destination are required")
	}
	priority := route.PriorityFast
	if input.Priority != "" {
		priority = route.ParsePriority(input.Priority)
	}

	plan, err := s.planner.Run(ctx, route.Request{
		Source:      input.Source,
		Destination: input.Destination,
		Priority:    priority,
	})
	if err != nil {
		out := PlanRouteOutput{Status: "failed", Message: err.Error()}
		var se *orchestrator.StageError
		if errors.As(err, &se) {
			out.Stage = se.Stage.String()
		}
		return nil, out, nil
	}

	out := PlanRouteOutput{
		RunID:      plan.RunID,
		Status:     "completed",
		Route:      plan.Selection.ID,
		Score:      plan.Selection.Score,
		TimeWeight: plan.Weights.Time,
		CostWeight: plan.Weights.Cost,
	}
	for _, r := range plan.Selection.Ranking {
		out.Ranking = append(out.Ranking, RankedRoute{
			Route:    r.ID,
			Score:    r.Score,
			Cost:     r.Cost,
			Time:     r.Time,
			Feasible: r.Feasible,
		})
	}
	return nil, out, nil
}

// ListAgents reports the planner's agents in execution order.
func (s *PlanService) ListAgents(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListAgentsInput,
) (*mcp.CallToolResult, ListAgentsOutput, error) {
	cards := s.planner.Agents()
	out := ListAgentsOutput{Agents: make([]AgentSummary, 0, len(cards))}
	for _, c := range cards {
		out.Agents = append(out.Agents, AgentSummary{
			Name:        c.Name,
			Role:        string(c.Role),
			Description: c.Description,
		})
	}
	return nil, out, nil
}
