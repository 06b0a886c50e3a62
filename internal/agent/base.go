package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dusk-indust/planit/internal/route"
)

// ProcessFunc is the transformation a specialist agent binds to its
// BaseAgent.
type ProcessFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// BaseAgent provides shared boilerplate for specialist agents. Specialist
// agents embed it and supply a ProcessFunc. A BaseAgent with no ProcessFunc
// fails every call with route.ErrNotImplemented.
type BaseAgent[In, Out any] struct {
	card    Card
	process ProcessFunc[In, Out]
}

// NewBaseAgent creates a BaseAgent with the given card and process function.
func NewBaseAgent[In, Out any](card Card, process ProcessFunc[In, Out]) *BaseAgent[In, Out] {
	return &BaseAgent[In, Out]{card: card, process: process}
}

// Card returns the agent's card.
func (b *BaseAgent[In, Out]) Card() Card {
	if b == nil {
		return Card{}
	}
	return b.card
}

// Process runs the bound process function.
func (b *BaseAgent[In, Out]) Process(ctx context.Context, in In) (Out, error) {
	var zero Out
	if b == nil || b.process == nil {
		name := "<unnamed>"
		if b != nil && b.card.Name != "" {
			name = b.card.Name
		}
		return zero, fmt.Errorf("agent %s: process: %w", name, route.ErrNotImplemented)
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return b.process(ctx, in)
}

// orDiscard returns l, or a logger that drops everything when l is nil.
func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
