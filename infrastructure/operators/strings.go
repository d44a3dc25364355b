package operators

import (
	"strings"

	"github.com/thekitchencoder/json-rules/internal/ports"
)

// String operators. All tests are case-sensitive. A non-string document
// value (or non-string operand) is a non-match; $contains additionally
// accepts a collection value and falls back to element-equality
// membership.

// matchContains implements $contains: substring test for string values,
// membership test for collection values.
func matchContains(_ ports.ValueMatcher, value, operand any) (bool, error) {
	if elements, ok := asList(value); ok {
		return containsValue(elements, operand), nil
	}
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	sub, ok := operand.(string)
	if !ok {
		return false, nil
	}
	return strings.Contains(s, sub), nil
}

// matchStartsWith implements $startsWith: case-sensitive prefix test.
func matchStartsWith(_ ports.ValueMatcher, value, operand any) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	prefix, ok := operand.(string)
	if !ok {
		return false, nil
	}
	return strings.HasPrefix(s, prefix), nil
}

// matchEndsWith implements $endsWith: case-sensitive suffix test.
func matchEndsWith(_ ports.ValueMatcher, value, operand any) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	suffix, ok := operand.(string)
	if !ok {
		return false, nil
	}
	return strings.HasSuffix(s, suffix), nil
}
