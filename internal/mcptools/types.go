package mcptools

// --- MCP tool types for the planner server mode (-serve-mcp) ---

// PlanRouteInput is the input for the plan_route MCP tool.
type PlanRouteInput struct {
	Source      string `json:"source" jsonschema:"starting location"`
	Destination string `json:"destination" jsonschema:"target location"`
	Priority    string `json:"priority,omitempty" jsonschema:"fast or cheap (default: fast)"`
}

// PlanRouteOutput is the result of the plan_route MCP tool.
type PlanRouteOutput struct {
	RunID      string        `json:"runId,omitempty"`
	Status     string        `json:"status"` // "completed" or "failed"
	Stage      string        `json:"stage,omitempty"`
	Message    string        `json:"message,omitempty"`
	Route      string        `json:"route,omitempty"`
	Score      float64       `json:"score,omitempty"`
	TimeWeight float64       `json:"timeWeight,omitempty"`
	CostWeight float64       `json:"costWeight,omitempty"`
	Ranking    []RankedRoute `json:"ranking,omitempty"`
}

// RankedRoute is one entry of the fusion ranking.
type RankedRoute struct {
	Route    string  `json:"route"`
	Score    float64 `json:"score"`
	Cost     float64 `json:"cost"`
	Time     float64 `json:"time"`
	Feasible bool    `json:"feasible"`
}

// ListAgentsInput is the input for the list_agents MCP tool.
type ListAgentsInput struct{}

// ListAgentsOutput is the result of the list_agents MCP tool.
type ListAgentsOutput struct {
	Agents []AgentSummary `json:"agents"`
}

// AgentSummary describes one planning agent.
type AgentSummary struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
}
