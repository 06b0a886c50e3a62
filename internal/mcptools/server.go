package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewPlanMCPServer creates an MCP server with the planning tools registered:
// plan_route and list_agents.
func NewPlanMCPServer(planner Planner) *mcp.Server {
	svc := NewPlanService(planner)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "planit",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "plan_route",
		Description: "Run the multi-agent route planner for a source, destination and priority (fast or cheap). Returns the selected route, its fusion score and the full ranking.",
	}, svc.PlanRoute)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_agents",
		Description: "List the planning agents in execution order with their roles.",
	}, svc.ListAgents)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
