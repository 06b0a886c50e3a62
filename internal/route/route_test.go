package route

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	assert.Equal(t, PriorityFast, ParsePriority(" FAST "))
	assert.Equal(t, PriorityCheap, ParsePriority("cheap"))
	assert.Equal(t, Priority("scenic"), ParsePriority("Scenic"))
	assert.True(t, PriorityFast.Known())
	assert.False(t, Priority("scenic").Known())
}

func TestRequest_Validate(t *testing.T) {
	require.NoError(t, Request{Source: "A", Destination: "B", Priority: PriorityFast}.Validate())

	err := Request{Destination: "B"}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "source")

	err = Request{Source: "A", Destination: "  "}.Validate()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestWeightSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		w       WeightSet
		wantErr bool
	}{
		{"fast", WeightSet{Time: 0.6, Cost: 0.4}, false},
		{"cheap", WeightSet{Time: 0.4, Cost: 0.6}, false},
		{"all time", WeightSet{Time: 1, Cost: 0}, false},
		{"negative", WeightSet{Time: -0.1, Cost: 1.1}, true},
		{"over one", WeightSet{Time: 0.7, Cost: 0.7}, true},
		{"under one", WeightSet{Time: 0.2, Cost: 0.2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCandidate_WithersPreserveEarlierFields(t *testing.T) {
	c := Candidate{ID: "Route A", Distance: 10, Time: 20}

	withCost := c.WithCost(50)
	withTime := withCost.WithTimeScore(0.05)
	final := withTime.WithFeasible(true)

	// The original snapshot is untouched.
	assert.Zero(t, c.Cost)
	assert.Equal(t, Annotation(0), c.Annotations)

	assert.Equal(t, "Route A", final.ID)
	assert.Equal(t, 10.0, final.Distance)
	assert.Equal(t, 20.0, final.Time)
	assert.Equal(t, 50.0, final.Cost)
	assert.Equal(t, 0.05, final.TimeScore)
	assert.True(t, final.Feasible)
	assert.True(t, final.Annotations.Has(AnnotatedCost|AnnotatedTime|AnnotatedFeasibility))
	assert.Equal(t, "cost+time+feasibility", final.Annotations.String())
}

func TestValidateSet(t *testing.T) {
	good := []Candidate{{ID: "A", Distance: 1, Time: 1}, {ID: "B", Distance: 2, Time: 2}}
	require.NoError(t, ValidateSet(good))

	err := ValidateSet([]Candidate{{ID: "A", Distance: 0, Time: 1}})
	var ice *InvalidCandidateError
	require.True(t, errors.As(err, &ice))
	assert.Equal(t, "distance", ice.Field)
	assert.ErrorIs(t, err, ErrValidation)

	err = ValidateSet([]Candidate{{ID: "A", Distance: 1, Time: 1}, {ID: "A", Distance: 1, Time: 1}})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "duplicate")

	err = ValidateSet([]Candidate{{Distance: 1, Time: 1}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClone(t *testing.T) {
	orig := []Candidate{{ID: "A", Distance: 1, Time: 1}}
	cp := Clone(orig)
	cp[0].ID = "changed"
	assert.Equal(t, "A", orig[0].ID)
	assert.Nil(t, Clone(nil))
}
