package operators

import (
	"fmt"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// Comparison operators. Equality works across every runtime type via
// semantic equality, so $eq and $ne never signal an error. The ordering
// operators require comparable types; an incomparable pair is
// undecidable rather than false, so they surface ErrTypeMismatch and
// the predicate becomes UNDETERMINED.

func matchEq(_ ports.ValueMatcher, value, operand any) (bool, error) {
	return equalValues(value, operand), nil
}

func matchNe(_ ports.ValueMatcher, value, operand any) (bool, error) {
	return !equalValues(value, operand), nil
}

func matchGt(_ ports.ValueMatcher, value, operand any) (bool, error) {
	return matchOrdering("$gt", value, operand, func(c int) bool { return c > 0 })
}

func matchGte(_ ports.ValueMatcher, value, operand any) (bool, error) {
	return matchOrdering("$gte", value, operand, func(c int) bool { return c >= 0 })
}

func matchLt(_ ports.ValueMatcher, value, operand any) (bool, error) {
	return matchOrdering("$lt", value, operand, func(c int) bool { return c < 0 })
}

func matchLte(_ ports.ValueMatcher, value, operand any) (bool, error) {
	return matchOrdering("$lte", value, operand, func(c int) bool { return c <= 0 })
}

func matchOrdering(name string, value, operand any, accept func(int) bool) (bool, error) {
	c, err := compareValues(value, operand)
	if err != nil {
		return false, domain.NewOperatorError(name, "",
			fmt.Errorf("%w: cannot order %T against %T", domain.ErrTypeMismatch, value, operand))
	}
	return accept(c), nil
}

// matchBetween implements $between: the operand must be exactly a
// two-element [low, high] list and the value must order within the
// inclusive range. Any malformed operand or incomparable value is a
// non-match rather than an error.
func matchBetween(_ ports.ValueMatcher, value, operand any) (bool, error) {
	bounds, ok := asList(operand)
	if !ok || len(bounds) != 2 {
		return false, nil
	}
	low, err := compareValues(value, bounds[0])
	if err != nil {
		return false, nil
	}
	high, err := compareValues(value, bounds[1])
	if err != nil {
		return false, nil
	}
	return low >= 0 && high <= 0, nil
}
