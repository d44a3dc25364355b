package operators

import (
	"fmt"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// Type names accepted by $type. The vocabulary is fixed; anything else
// is an invalid operand.
const (
	typeString  = "string"
	typeNumber  = "number"
	typeBoolean = "boolean"
	typeArray   = "array"
	typeObject  = "object"
	typeNull    = "null"
)

// matchExists implements $exists. By the time a handler runs the field
// has resolved, so the only question is which presence the operand
// requested: true matches any resolved value (explicit null included),
// false cannot match a resolved field. An absent field never reaches
// this handler; the predicate evaluator records it as a missing path
// and the predicate becomes UNDETERMINED.
func matchExists(_ ports.ValueMatcher, _ any, operand any) (bool, error) {
	want, ok := operand.(bool)
	if !ok {
		return false, domain.NewOperatorError("$exists", "",
			fmt.Errorf("%w: operand must be a boolean, got %T", domain.ErrInvalidOperand, operand))
	}
	return want, nil
}

// matchType implements $type: the resolved value's runtime type must
// map to the requested type name.
func matchType(_ ports.ValueMatcher, value, operand any) (bool, error) {
	want, ok := operand.(string)
	if !ok {
		return false, domain.NewOperatorError("$type", "",
			fmt.Errorf("%w: operand must be a type name string, got %T", domain.ErrInvalidOperand, operand))
	}
	switch want {
	case typeString, typeNumber, typeBoolean, typeArray, typeObject, typeNull:
	default:
		return false, domain.NewOperatorError("$type", "",
			fmt.Errorf("%w: unknown type name %q", domain.ErrInvalidOperand, want))
	}
	return runtimeTypeName(value) == want, nil
}

// runtimeTypeName maps a document value to its $type vocabulary name.
func runtimeTypeName(value any) string {
	if value == nil {
		return typeNull
	}
	if _, ok := value.(bool); ok {
		return typeBoolean
	}
	if _, ok := value.(string); ok {
		return typeString
	}
	if _, ok := asNumber(value); ok {
		return typeNumber
	}
	if _, ok := asList(value); ok {
		return typeArray
	}
	if _, ok := asOperatorMap(value); ok {
		return typeObject
	}
	return ""
}
