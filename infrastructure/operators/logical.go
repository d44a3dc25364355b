package operators

import (
	"fmt"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// Logical-composition operators. All three operate on the same resolved
// field value, recursing through the ValueMatcher so nested operator
// maps are evaluated by the same code path as top-level clauses.
// Undetermined signals from inner clauses propagate outward unchanged,
// including through $not: "could not be decided" is not invertible.

// matchAnd implements $and over a list of operator maps: every map must
// match the value. An empty list is vacuously satisfied. A non-list
// operand is a non-match. A false clause does not end the scan: every
// clause is still evaluated so that a later undecidable one surfaces
// instead of being dropped.
func matchAnd(m ports.ValueMatcher, value, operand any) (bool, error) {
	clauses, ok := asList(operand)
	if !ok {
		return false, nil
	}
	allMatched := true
	for _, clause := range clauses {
		ops, ok := asOperatorMap(clause)
		if !ok {
			return false, domain.NewOperatorError("$and", "",
				fmt.Errorf("%w: list elements must be operator maps, got %T", domain.ErrInvalidOperand, clause))
		}
		matched, err := m.MatchValue(value, ops)
		if err != nil {
			return false, err
		}
		if !matched {
			allMatched = false
		}
	}
	return allMatched, nil
}

// matchOr implements $or over a list of operator maps: at least one map
// must match the value. An empty list is unsatisfied; the asymmetry
// with $and follows the usual vacuous-truth conventions. A matching
// clause does not end the scan: a later undecidable clause still
// surfaces instead of being masked by the early match.
func matchOr(m ports.ValueMatcher, value, operand any) (bool, error) {
	clauses, ok := asList(operand)
	if !ok {
		return false, nil
	}
	anyMatched := false
	for _, clause := range clauses {
		ops, ok := asOperatorMap(clause)
		if !ok {
			return false, domain.NewOperatorError("$or", "",
				fmt.Errorf("%w: list elements must be operator maps, got %T", domain.ErrInvalidOperand, clause))
		}
		matched, err := m.MatchValue(value, ops)
		if err != nil {
			return false, err
		}
		if matched {
			anyMatched = true
		}
	}
	return anyMatched, nil
}

// matchNot implements $not over a single operator map, inverting its
// determined result. A nil or non-map operand is a non-match. An inner
// undetermined signal propagates instead of being inverted.
func matchNot(m ports.ValueMatcher, value, operand any) (bool, error) {
	ops, ok := asOperatorMap(operand)
	if !ok {
		return false, nil
	}
	matched, err := m.MatchValue(value, ops)
	if err != nil {
		return false, err
	}
	return !matched, nil
}

// matchElemMatch implements $elemMatch: the document value must be a
// collection with at least one element satisfying the nested query.
// The operand is either an operator map applied to each element
// directly, or a sub-document query whose field paths resolve within
// each element.
func matchElemMatch(m ports.ValueMatcher, value, operand any) (bool, error) {
	query, ok := asOperatorMap(operand)
	if !ok || len(query) == 0 {
		return false, domain.NewOperatorError("$elemMatch", "",
			fmt.Errorf("%w: operand must be a non-empty query object, got %T", domain.ErrInvalidOperand, operand))
	}
	elements, ok := asList(value)
	if !ok {
		return false, nil
	}

	for _, element := range elements {
		matched, err := elementMatches(m, element, query)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// elementMatches evaluates one collection element against the nested
// query: operator maps apply to the element itself, field queries
// resolve their paths inside the element. An element where a path does
// not resolve simply does not match; missing data inside $elemMatch is
// not undetermined, some other element may still satisfy the query.
func elementMatches(m ports.ValueMatcher, element any, query map[string]any) (bool, error) {
	if isOperatorMap(query) {
		return m.MatchValue(element, query)
	}
	allMatched := true
	for path, raw := range query {
		ops, ok := asOperatorMap(raw)
		if !ok {
			return false, domain.NewOperatorError("$elemMatch", path,
				fmt.Errorf("%w: field condition must be an operator map, got %T", domain.ErrInvalidOperand, raw))
		}
		resolved, found := domain.Resolve(element, path)
		if !found {
			allMatched = false
			continue
		}
		matched, err := m.MatchValue(resolved, ops)
		if err != nil {
			return false, err
		}
		if !matched {
			allMatched = false
		}
	}
	return allMatched, nil
}
