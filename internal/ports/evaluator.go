package ports

import (
	"context"
	"time"

	"github.com/thekitchencoder/json-rules/internal/domain"
)

// PredicateEvaluator evaluates one predicate against one document,
// producing a tri-state result. Implementations never return an error
// and never panic past this boundary: any failure is converted into an
// UNDETERMINED result with diagnostic detail.
type PredicateEvaluator interface {
	// EvaluatePredicate evaluates the predicate's query against the
	// document value tree. The context carries tracing metadata only;
	// cooperative cancellation mid-predicate is not supported.
	EvaluatePredicate(ctx context.Context, document any, predicate domain.Predicate) domain.PredicateResult
}

// SpecificationEvaluator evaluates an entire specification against one
// document: concurrent predicate fan-out, result caching by predicate
// id, group junction evaluation, and summary statistics.
type SpecificationEvaluator interface {
	// Evaluate always returns a complete outcome covering every
	// declared predicate and group, regardless of individual failures.
	Evaluate(ctx context.Context, document any, spec domain.Specification) domain.EvaluationOutcome
}

// MetricsCollector defines the interface for collecting operational
// metrics. Implementations should integrate with observability
// platforms like Prometheus or custom monitoring solutions. A nil-safe
// no-op implementation is used when metrics are not configured.
type MetricsCollector interface {
	// RecordEvaluation records the completion of one specification run
	// with its total latency.
	RecordEvaluation(specID string, duration time.Duration)

	// RecordPredicate increments the per-state predicate counter.
	RecordPredicate(specID string, state domain.EvaluationState)

	// RecordGroup increments the group outcome counter.
	RecordGroup(specID string, junction domain.Junction, matched bool)
}
