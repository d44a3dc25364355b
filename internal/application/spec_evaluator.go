package application

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.SpecificationEvaluator = (*SpecEvaluator)(nil)

// SpecEvaluator orchestrates complete specification runs: concurrent
// predicate fan-out, result caching by predicate id, group junction
// evaluation, and summary statistics.
//
// The evaluator is immutable after construction and safe for concurrent
// use; every run builds its state from scratch and shares nothing with
// sibling runs except the read-only operator table and its caches.
type SpecEvaluator struct {
	// evaluator runs individual predicates.
	evaluator ports.PredicateEvaluator
	// metrics records run outcomes; defaults to a no-op collector.
	metrics ports.MetricsCollector
	// logger receives run-level diagnostics.
	logger *zap.Logger
	// tracer emits evaluation spans.
	tracer trace.Tracer
	// concurrency bounds parallel predicate and group evaluation.
	concurrency int
}

// SpecEvaluatorOption configures a SpecEvaluator.
type SpecEvaluatorOption func(*SpecEvaluator)

// WithMetrics installs a metrics collector for run observability.
func WithMetrics(collector ports.MetricsCollector) SpecEvaluatorOption {
	return func(e *SpecEvaluator) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

// WithLogger installs a structured logger for run diagnostics.
func WithLogger(logger *zap.Logger) SpecEvaluatorOption {
	return func(e *SpecEvaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithConcurrency bounds the number of predicates evaluated in
// parallel. Values below one restore the default of twice the CPU
// count.
func WithConcurrency(limit int) SpecEvaluatorOption {
	return func(e *SpecEvaluator) {
		if limit > 0 {
			e.concurrency = limit
		}
	}
}

// NewSpecEvaluator creates an orchestrator around a predicate
// evaluator.
func NewSpecEvaluator(evaluator ports.PredicateEvaluator, opts ...SpecEvaluatorOption) (*SpecEvaluator, error) {
	if evaluator == nil {
		return nil, errNilEvaluator
	}
	e := &SpecEvaluator{
		evaluator:   evaluator,
		metrics:     noopMetrics{},
		logger:      zap.NewNop(),
		tracer:      otel.Tracer("spec-evaluator"),
		concurrency: runtime.NumCPU() * 2,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate runs the full specification against one document and always
// returns a complete outcome: one result per declared predicate, one
// result per group, and a summary over the predicate results only.
//
// Phase 1 evaluates every top-level predicate concurrently and collects
// results into an id-keyed map; the errgroup Wait is the barrier that
// makes the map the read-only source of truth for phase 2. Phase 2
// evaluates groups concurrently against that map, falling back to
// on-demand evaluation for members absent from it. Predicate
// evaluations are pure functions of (document, predicate) and never
// observe each other's state.
func (e *SpecEvaluator) Evaluate(ctx context.Context, document any, spec domain.Specification) domain.EvaluationOutcome {
	evaluationID := uuid.NewString()
	ctx, span := e.tracer.Start(ctx, "SpecEvaluator.Evaluate",
		trace.WithAttributes(
			attribute.String("specification.id", spec.ID),
			attribute.String("evaluation.id", evaluationID),
			attribute.Int("specification.predicates", len(spec.Predicates)),
			attribute.Int("specification.groups", len(spec.Groups)),
		),
	)
	defer span.End()

	start := time.Now()
	e.logger.Info("starting specification evaluation",
		zap.String("specification_id", spec.ID),
		zap.String("evaluation_id", evaluationID))

	// Phase 1: concurrent, independent predicate evaluation. Each
	// goroutine writes only its own slice slot, so no locking is
	// needed; results are folded into the map after the barrier.
	phase1 := make([]domain.PredicateResult, len(spec.Predicates))
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, predicate := range spec.Predicates {
		g.Go(func() error {
			phase1[i] = e.evaluator.EvaluatePredicate(ctx, document, predicate)
			return nil
		})
	}
	// EvaluatePredicate never errors; Wait is purely the phase barrier.
	_ = g.Wait()

	// Duplicate predicate ids are undefined behavior; the map keeps the
	// last write so results and summary stay mutually consistent.
	resultsByID := make(map[string]domain.PredicateResult, len(phase1))
	for _, result := range phase1 {
		resultsByID[result.PredicateID] = result
	}

	// Phase 2: group evaluation reads the phase-1 map only; it is never
	// mutated concurrently with these reads.
	groupResults := make([]domain.GroupResult, len(spec.Groups))
	var groups errgroup.Group
	groups.SetLimit(e.concurrency)
	for i, group := range spec.Groups {
		groups.Go(func() error {
			groupResults[i] = e.evaluateGroup(ctx, document, group, resultsByID)
			return nil
		})
	}
	_ = groups.Wait()

	predicateResults := make([]domain.PredicateResult, 0, len(resultsByID))
	for _, result := range resultsByID {
		predicateResults = append(predicateResults, result)
		e.metrics.RecordPredicate(spec.ID, result.State)
	}
	for _, gr := range groupResults {
		e.metrics.RecordGroup(spec.ID, gr.Junction, gr.Matched)
	}

	summary := domain.SummarizeResults(predicateResults)
	elapsed := time.Since(start)
	e.metrics.RecordEvaluation(spec.ID, elapsed)
	span.SetAttributes(
		attribute.Int("summary.matched", summary.Matched),
		attribute.Int("summary.not_matched", summary.NotMatched),
		attribute.Int("summary.undetermined", summary.Undetermined),
		attribute.Bool("summary.fully_determined", summary.FullyDetermined),
	)
	e.logger.Info("completed specification evaluation",
		zap.String("specification_id", spec.ID),
		zap.String("evaluation_id", evaluationID),
		zap.Duration("elapsed", elapsed),
		zap.Int("total", summary.Total),
		zap.Int("matched", summary.Matched),
		zap.Int("not_matched", summary.NotMatched),
		zap.Int("undetermined", summary.Undetermined),
		zap.Bool("fully_determined", summary.FullyDetermined))

	return domain.EvaluationOutcome{
		SpecificationID:  spec.ID,
		EvaluationID:     evaluationID,
		PredicateResults: predicateResults,
		GroupResults:     groupResults,
		Summary:          summary,
		Timestamp:        time.Now().UTC(),
	}
}

// evaluateGroup resolves each member against the phase-1 results,
// evaluating on demand when the member is absent from the map. A
// query-less reference to an undeclared predicate deterministically
// yields the "predicate definition not found" UNDETERMINED result;
// members are never silently skipped.
//
// Junction logic counts only MATCHED members as true: NOT_MATCHED and
// UNDETERMINED both fail an AND and contribute nothing to an OR.
func (e *SpecEvaluator) evaluateGroup(
	ctx context.Context,
	document any,
	group domain.PredicateGroup,
	resultsByID map[string]domain.PredicateResult,
) domain.GroupResult {
	members := make([]domain.PredicateResult, len(group.Members))
	for i, member := range group.Members {
		if cached, ok := resultsByID[member.ID]; ok {
			members[i] = cached
			continue
		}
		members[i] = e.evaluator.EvaluatePredicate(ctx, document, member)
	}

	matched := group.Junction == domain.JunctionAnd
	for _, member := range members {
		if group.Junction == domain.JunctionAnd {
			matched = matched && member.Matched()
		} else {
			matched = matched || member.Matched()
		}
	}

	return domain.GroupResult{
		GroupID:       group.ID,
		Junction:      group.Junction,
		MemberResults: members,
		Matched:       matched,
	}
}

// noopMetrics discards all measurements; used when no collector is
// configured.
type noopMetrics struct{}

func (noopMetrics) RecordEvaluation(string, time.Duration)         {}
func (noopMetrics) RecordPredicate(string, domain.EvaluationState) {}
func (noopMetrics) RecordGroup(string, domain.Junction, bool)      {}
