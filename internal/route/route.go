// Package route holds the data model shared by the planning agents: the
// user request, the weight set derived from it, and the candidate routes
// annotated stage by stage.
package route

import (
	"fmt"
	"math"
	"strings"
)

// Priority is the user's optimisation preference.
type Priority string

const (
	PriorityFast  Priority = "fast"
	PriorityCheap Priority = "cheap"
)

// ParsePriority normalises s. Values other than fast and cheap are returned
// verbatim so the preference stage can decide how to treat them.
func ParsePriority(s string) Priority {
	return Priority(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether p is one of the defined priorities.
func (p Priority) Known() bool {
	return p == PriorityFast || p == PriorityCheap
}

// Request is a single planning request. It is never modified after
// construction.
type Request struct {
	Source      string   `json:"source" yaml:"source"`
	Destination string   `json:"destination" yaml:"destination"`
	Priority    Priority `json:"priority" yaml:"priority"`
}

// Validate checks that both endpoints are set.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return fmt.Errorf("%w: request source is empty", ErrValidation)
	}
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: request destination is empty", ErrValidation)
	}
	return nil
}

// weightTolerance bounds floating point drift when checking that weights
// sum to one.
const weightTolerance = 1e-9

// WeightSet holds the normalised importance of time versus cost.
type WeightSet struct {
	Time float64 `json:"timeWeight" yaml:"time"`
	Cost float64 `json:"costWeight" yaml:"cost"`
}

// Validate checks that both weights lie in [0,1] and sum to 1.
func (w WeightSet) Validate() error {
	if w.Time < 0 || w.Time > 1 || math.IsNaN(w.Time) {
		return fmt.Errorf("%w: time weight %g outside [0,1]", ErrValidation, w.Time)
	}
	if w.Cost < 0 || w.Cost > 1 || math.IsNaN(w.Cost) {
		return fmt.Errorf("%w: cost weight %g outside [0,1]", ErrValidation, w.Cost)
	}
	if math.Abs(w.Time+w.Cost-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, must sum to 1.0", ErrValidation, w.Time+w.Cost)
	}
	return nil
}

// Annotation is a bit set recording which stages have annotated a
// candidate.
type Annotation uint8

const (
	AnnotatedCost Annotation = 1 << iota
	AnnotatedTime
	AnnotatedFeasibility
)

// Has reports whether all bits in a are set.
func (a Annotation) Has(bits Annotation) bool {
	return a&bits == bits
}

func (a Annotation) String() string {
	var parts []string
	if a.Has(AnnotatedCost) {
		parts = append(parts, "cost")
	}
	if a.Has(AnnotatedTime) {
		parts = append(parts, "time")
	}
	if a.Has(AnnotatedFeasibility) {
		parts = append(parts, "feasibility")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Candidate is a route option. Route generation fills ID, Distance and
// Time; every later stage returns a copy with its own field and annotation
// bit set and leaves the rest untouched.
type Candidate struct {
	ID          string     `json:"route" yaml:"route"`
	Distance    float64    `json:"distance" yaml:"distance"`
	Time        float64    `json:"time" yaml:"time"`
	Cost        float64    `json:"cost" yaml:"-"`
	TimeScore   float64    `json:"timeScore" yaml:"-"`
	Feasible    bool       `json:"feasible" yaml:"-"`
	Annotations Annotation `json:"-" yaml:"-"`
}

// WithCost returns a copy of c carrying cost.
func (c Candidate) WithCost(cost float64) Candidate {
	c.Cost = cost
	c.Annotations |= AnnotatedCost
	return c
}

// WithTimeScore returns a copy of c carrying the time efficiency score.
func (c Candidate) WithTimeScore(score float64) Candidate {
	c.TimeScore = score
	c.Annotations |= AnnotatedTime
	return c
}

// WithFeasible returns a copy of c carrying the feasibility verdict.
func (c Candidate) WithFeasible(ok bool) Candidate {
	c.Feasible = ok
	c.Annotations |= AnnotatedFeasibility
	return c
}

// ValidateGenerated checks the fields route generation is responsible for.
func (c Candidate) ValidateGenerated() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: candidate has empty identifier", ErrValidation)
	}
	if !(c.Distance > 0) {
		return &InvalidCandidateError{ID: c.ID, Field: "distance", Value: c.Distance, Reason: "must be positive"}
	}
	if !(c.Time > 0) {
		return &InvalidCandidateError{ID: c.ID, Field: "time", Value: c.Time, Reason: "must be positive"}
	}
	return nil
}

// ValidateSet validates every candidate and rejects duplicate identifiers.
func ValidateSet(cands []Candidate) error {
	seen := make(map[string]bool, len(cands))
	for _, c := range cands {
		if err := c.ValidateGenerated(); err != nil {
			return err
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate candidate %q", ErrValidation, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// Clone returns a copy of cands that shares no backing array with it.
func Clone(cands []Candidate) []Candidate {
	if cands == nil {
		return nil
	}
	out := make([]Candidate, len(cands))
	copy(out, cands)
	return out
}

// Scored pairs a candidate with its fusion score.
type Scored struct {
	Candidate
	Score float64 `json:"score"`
}

// Selection is the outcome of fusion: the winning candidate, its score and
// the full ranking it was chosen from, best first.
type Selection struct {
	Scored
	Ranking []Scored `json:"ranking"`
}
