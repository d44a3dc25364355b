// Package middleware provides cross-cutting concerns for the
// evaluation engine.
package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus, exposing evaluation throughput, per-state predicate
// counts, and group outcomes.
type PrometheusMetrics struct {
	evaluationLatency *prometheus.HistogramVec
	predicateCounter  *prometheus.CounterVec
	groupCounter      *prometheus.CounterVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and
// registers all metrics in the global Prometheus registry. Create at
// most one per process.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		evaluationLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "specification_evaluation_duration_seconds",
				Help:    "Wall-clock duration of complete specification evaluation runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"specification_id"},
		),
		predicateCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predicate_results_total",
				Help: "Predicate results by tri-state outcome.",
			},
			[]string{"specification_id", "state"},
		),
		groupCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "group_results_total",
				Help: "Predicate group results by junction and match outcome.",
			},
			[]string{"specification_id", "junction", "matched"},
		),
	}
}

// RecordEvaluation records the completion of one specification run.
func (pm *PrometheusMetrics) RecordEvaluation(specID string, duration time.Duration) {
	pm.evaluationLatency.WithLabelValues(specID).Observe(duration.Seconds())
}

// RecordPredicate increments the per-state predicate counter.
func (pm *PrometheusMetrics) RecordPredicate(specID string, state domain.EvaluationState) {
	pm.predicateCounter.WithLabelValues(specID, strings.ToLower(string(state))).Inc()
}

// RecordGroup increments the group outcome counter.
func (pm *PrometheusMetrics) RecordGroup(specID string, junction domain.Junction, matched bool) {
	pm.groupCounter.WithLabelValues(specID, string(junction), strconv.FormatBool(matched)).Inc()
}
