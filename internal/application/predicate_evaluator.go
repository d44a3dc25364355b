// Package application orchestrates predicate and specification
// evaluation, connecting the domain model to the operator
// infrastructure.
package application

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// Verify interface compliance at compile time.
var (
	_ ports.PredicateEvaluator = (*PredicateEvaluator)(nil)
	_ ports.ValueMatcher       = (*PredicateEvaluator)(nil)
)

// PredicateEvaluator evaluates single predicates against documents,
// producing tri-state results. It is stateless apart from read-only
// access to the operator registry, so one instance serves any number of
// concurrent evaluations.
//
// No error and no panic ever escapes EvaluatePredicate: anything
// unexpected during handler execution is contained at the predicate
// boundary and converted to an UNDETERMINED result. This per-predicate
// isolation is the resilience property the engine exists to provide.
type PredicateEvaluator struct {
	// registry dispatches operator names to handlers.
	registry ports.OperatorRegistry
	// logger receives diagnostics for unknown operators and contained
	// panics. Defaults to a no-op logger.
	logger *zap.Logger
}

// NewPredicateEvaluator creates an evaluator backed by the given
// operator registry. A nil logger is replaced with zap.NewNop().
func NewPredicateEvaluator(registry ports.OperatorRegistry, logger *zap.Logger) (*PredicateEvaluator, error) {
	if registry == nil {
		return nil, fmt.Errorf("operator registry cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredicateEvaluator{registry: registry, logger: logger}, nil
}

// EvaluatePredicate evaluates one predicate's query against one
// document.
//
// Every field path is resolved first; a path that does not resolve is
// recorded and makes the final state UNDETERMINED with MissingPaths
// populated. Operator clauses across all fields combine with implicit
// AND. A clause that cannot be decided (unknown operator, invalid
// operand, internal failure) short-circuits the remaining clauses and
// makes the predicate UNDETERMINED with a failure reason; one bad
// clause is never silently dropped.
//
// A predicate with an empty query cannot be decided and deterministically
// yields UNDETERMINED with reason "predicate definition not found".
func (e *PredicateEvaluator) EvaluatePredicate(
	_ context.Context,
	document any,
	predicate domain.Predicate,
) (result domain.PredicateResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("contained panic during predicate evaluation",
				zap.String("predicate_id", predicate.ID),
				zap.Any("panic", r))
			result = domain.UndeterminedResult(predicate.ID, nil,
				fmt.Sprintf("%v: %v", domain.ErrInternal, r))
		}
	}()

	if len(predicate.Query) == 0 {
		return domain.MissingPredicateResult(predicate.ID)
	}

	var missing []string
	allMatched := true
	var clauseErr error

fields:
	for path, rawOps := range predicate.Query {
		value, found := domain.Resolve(document, path)
		if !found {
			missing = append(missing, path)
			allMatched = false
			continue
		}

		matched, err := e.MatchValue(value, rawOps)
		if err != nil {
			clauseErr = fmt.Errorf("field %s: %w", path, err)
			break fields
		}
		if !matched {
			allMatched = false
		}
	}

	switch {
	case len(missing) > 0:
		sort.Strings(missing)
		return domain.PredicateResult{
			PredicateID:  predicate.ID,
			State:        domain.StateUndetermined,
			MissingPaths: missing,
			Query:        predicate.Query,
		}
	case clauseErr != nil:
		e.logger.Warn("predicate undetermined",
			zap.String("predicate_id", predicate.ID),
			zap.Error(clauseErr))
		return domain.UndeterminedResult(predicate.ID, nil, clauseErr.Error())
	case allMatched:
		return domain.PredicateResult{
			PredicateID: predicate.ID,
			State:       domain.StateMatched,
		}
	default:
		return domain.PredicateResult{
			PredicateID: predicate.ID,
			State:       domain.StateNotMatched,
			Query:       predicate.Query,
		}
	}
}

// MatchValue evaluates an operator map against a single resolved value,
// combining clauses with implicit AND. It is the recursive entry point
// used both for top-level field clauses and, through composite
// operators such as $elemMatch and $not, for nested values.
//
// An operator name absent from the registry returns an error wrapping
// domain.ErrUnknownOperator; the caller decides how that surfaces (at
// the predicate boundary it becomes UNDETERMINED). A false clause never
// ends the scan early: every clause is still dispatched, so an unknown
// operator or invalid operand sharing the map with a non-matching
// clause surfaces regardless of map iteration order.
func (e *PredicateEvaluator) MatchValue(value any, operators map[string]any) (bool, error) {
	allMatched := true
	for name, operand := range operators {
		handler, ok := e.registry.Lookup(name)
		if !ok {
			e.logger.Warn("unknown operator", zap.String("operator", name))
			return false, domain.NewOperatorError(name, "", domain.ErrUnknownOperator)
		}
		matched, err := handler(e, value, operand)
		if err != nil {
			return false, err
		}
		if !matched {
			allMatched = false
		}
	}
	return allMatched, nil
}
