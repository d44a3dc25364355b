package operators

import (
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// Collection operators. Type mismatches (non-collection values where a
// collection is required, non-list operands) are treated as non-matches
// rather than errors, matching the graceful-degradation policy of this
// family.

// matchIn implements $in: the document value is equality-tested for
// membership in the operand list.
func matchIn(_ ports.ValueMatcher, value, operand any) (bool, error) {
	candidates, ok := asList(operand)
	if !ok {
		return false, nil
	}
	return containsValue(candidates, value), nil
}

// matchNin implements $nin: membership negated. A non-list operand is a
// non-match, not an implicit "absent from nothing".
func matchNin(_ ports.ValueMatcher, value, operand any) (bool, error) {
	candidates, ok := asList(operand)
	if !ok {
		return false, nil
	}
	return !containsValue(candidates, value), nil
}

// matchAll implements $all: the document value must be a collection
// containing every element of the operand list. Containment is
// set-based, so duplicate operand elements do not require duplicates in
// the value.
func matchAll(_ ports.ValueMatcher, value, operand any) (bool, error) {
	elements, ok := asList(value)
	if !ok {
		return false, nil
	}
	required, ok := asList(operand)
	if !ok {
		return false, nil
	}
	for _, want := range required {
		if !containsValue(elements, want) {
			return false, nil
		}
	}
	return true, nil
}

// matchSize implements $size: the document value must be a collection
// whose length equals the integral operand.
func matchSize(_ ports.ValueMatcher, value, operand any) (bool, error) {
	elements, ok := asList(value)
	if !ok {
		return false, nil
	}
	n, ok := asInt(operand)
	if !ok {
		return false, nil
	}
	return len(elements) == n, nil
}

// containsValue reports whether the list holds an element semantically
// equal to want.
func containsValue(list []any, want any) bool {
	for _, element := range list {
		if equalValues(element, want) {
			return true
		}
	}
	return false
}
