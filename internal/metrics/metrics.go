// Package metrics records pipeline activity in a Prometheus registry owned
// by a single pipeline.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Recorder holds the pipeline collectors and the registry they live in.
type Recorder struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
	selections    *prometheus.CounterVec
	candidates    prometheus.Histogram
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "planit_runs_total", Help: "Pipeline runs by outcome."},
			[]string{"outcome"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planit_stage_duration_seconds",
				Help:    "Stage execution time in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"stage"},
		),
		stageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "planit_stage_failures_total", Help: "Stage failures by stage."},
			[]string{"stage"},
		),
		selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "planit_selections_total", Help: "Selected routes by identifier."},
			[]string{"route"},
		),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planit_candidates",
			Help:    "Number of candidates generated per run.",
			Buckets: []float64{1, 2, 3, 5, 10, 25, 50},
		}),
	}
	r.registry.MustRegister(r.runs, r.stageDuration, r.stageFailures, r.selections, r.candidates)
	return r
}

// Registry returns the registry backing r.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveStage records a stage's duration and, when err is non-nil, a
// failure.
func (r *Recorder) ObserveStage(stage string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		r.stageFailures.WithLabelValues(stage).Inc()
	}
}

// ObserveCandidates records the size of a generated candidate set.
func (r *Recorder) ObserveCandidates(n int) {
	if r == nil {
		return
	}
	r.candidates.Observe(float64(n))
}

// ObserveRun records a finished run. routeID is ignored for failed runs.
func (r *Recorder) ObserveRun(routeID string, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.runs.WithLabelValues("failure").Inc()
		return
	}
	r.runs.WithLabelValues("success").Inc()
	r.selections.WithLabelValues(routeID).Inc()
}

// WriteText writes every gathered metric family in the Prometheus text
// format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
