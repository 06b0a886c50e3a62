package agent

import (
	"context"

	"github.com/dusk-indust/planit/internal/route"
)

// Agent is the contract every planning agent satisfies: it transforms one
// piece of domain data into another.
type Agent[In, Out any] interface {
	// Card describes the agent.
	Card() Card

	// Process runs the agent's transformation.
	Process(ctx context.Context, in In) (Out, error)
}

// Annotator is an agent that enriches a candidate set.
type Annotator = Agent[[]route.Candidate, []route.Candidate]

// Role identifies a specialist agent type.
type Role string

const (
	RolePreference Role = "preference"
	RoleRoute      Role = "route"
	RoleCost       Role = "cost"
	RoleTime       Role = "time"
	RoleResource   Role = "resource"
)

// Card is the self-description an agent reports.
type Card struct {
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	Description string `json:"description"`
}
