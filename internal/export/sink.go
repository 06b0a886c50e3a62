package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dusk-indust/planit/internal/orchestrator"
)

// Format selects how a Writer renders plans.
type Format string

const (
	FormatTextual Format = "text"
	FormatJSON    Format = "json"
	FormatMermaid Format = "mermaid"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTextual, FormatJSON, FormatMermaid:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or mermaid)", s)
	}
}

var _ orchestrator.Sink = (*Writer)(nil)

// Writer is an orchestrator.Sink that renders each plan to w.
type Writer struct {
	w      io.Writer
	format Format
	now    func() time.Time
}

// NewWriter creates a Writer rendering plans in format.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format, now: time.Now}
}

// Report implements orchestrator.Sink.
func (s *Writer) Report(_ context.Context, plan *orchestrator.Plan) error {
	var out string
	switch s.format {
	case FormatJSON:
		data, err := MarshalPlan(plan, s.now())
		if err != nil {
			return fmt.Errorf("marshal plan: %w", err)
		}
		out = string(data) + "\n"
	case FormatMermaid:
		out = GenerateMermaid(plan)
	default:
		out = FormatText(plan)
	}
	if _, err := io.WriteString(s.w, out); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}
