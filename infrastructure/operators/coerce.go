package operators

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/thekitchencoder/json-rules/internal/domain"
)

// asNumber coerces any numeric runtime representation to float64 so
// that operands compare by numeric value regardless of how the
// deserializer chose to represent them (int from YAML, float64 from
// JSON, json.Number from streaming decoders).
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// asInt coerces a value to an int, accepting only integral numbers.
func asInt(v any) (int, bool) {
	f, ok := asNumber(v)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// asList normalizes any slice or array value to []any. Strings are not
// treated as collections.
func asList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if list, ok := v.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asOperatorMap normalizes a nested operator-map operand, accepting
// both map[string]any (JSON) and map[any]any (legacy YAML decoders).
func asOperatorMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// isOperatorMap reports whether every key of the map carries the $
// operator prefix, distinguishing nested operator maps from
// sub-document field queries (both appear as $elemMatch operands).
func isOperatorMap(m map[string]any) bool {
	for key := range m {
		if !strings.HasPrefix(key, domain.OperatorPrefix) {
			return false
		}
	}
	return len(m) > 0
}

// equalValues tests semantic equality with numeric coercion: numbers
// compare by value across representations (25 == 25.0), strings and
// booleans by identity, everything else by deep equality.
func equalValues(a, b any) bool {
	if af, aok := asNumber(a); aok {
		bf, bok := asNumber(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders two values: -1, 0, or +1 when both are numeric
// or both are strings. Cross-family comparison (number vs string) and
// unorderable types return ErrTypeMismatch; whether that surfaces as
// UNDETERMINED or NOT_MATCHED is the calling operator's policy.
func compareValues(value, operand any) (int, error) {
	if vf, ok := asNumber(value); ok {
		of, ook := asNumber(operand)
		if !ook {
			return 0, domain.ErrTypeMismatch
		}
		switch {
		case vf < of:
			return -1, nil
		case vf > of:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if vs, ok := value.(string); ok {
		os, ook := operand.(string)
		if !ook {
			return 0, domain.ErrTypeMismatch
		}
		return strings.Compare(vs, os), nil
	}
	return 0, domain.ErrTypeMismatch
}
