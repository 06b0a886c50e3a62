package route

import (
	"errors"
	"fmt"
)

// Error kinds shared by every pipeline stage. Callers test for them with
// errors.Is.
var (
	// ErrNotImplemented is returned when an agent has no process function
	// bound. It indicates a programming defect, not bad input.
	ErrNotImplemented = errors.New("not implemented")

	// ErrValidation marks malformed input data.
	ErrValidation = errors.New("validation failed")

	// ErrComputation marks a numeric fault during scoring.
	ErrComputation = errors.New("computation failed")

	// ErrNoRoutes is returned when a route source yields no candidates.
	ErrNoRoutes = fmt.Errorf("%w: no routes found", ErrValidation)
)

// InvalidCandidateError reports a candidate whose field value cannot be
// used by a stage. It unwraps to ErrValidation.
type InvalidCandidateError struct {
	ID     string
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidCandidateError) Error() string {
	return fmt.Sprintf("invalid candidate %q: %s=%g: %s", e.ID, e.Field, e.Value, e.Reason)
}

func (e *InvalidCandidateError) Unwrap() error {
	return ErrValidation
}
