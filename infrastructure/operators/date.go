package operators

import (
	"time"

	"github.com/thekitchencoder/json-rules/internal/ports"
)

// nowToken resolves to wall-clock time at evaluation, letting
// specifications express "before now" without baking in a timestamp.
const nowToken = "now"

// dateLayouts are tried in order when parsing string instants.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// matchDateBefore implements $dateBefore: strict ordering, equal
// instants do not match. Values and operands are accepted as ISO
// dates, ISO date-times, epoch-millisecond integers, time.Time, or the
// literal "now". Anything unparseable is a non-match.
func matchDateBefore(_ ports.ValueMatcher, value, operand any) (bool, error) {
	v, ok := asInstant(value)
	if !ok {
		return false, nil
	}
	o, ok := asInstant(operand)
	if !ok {
		return false, nil
	}
	return v.Before(o), nil
}

// matchDateAfter implements $dateAfter: strict ordering, symmetric with
// $dateBefore.
func matchDateAfter(_ ports.ValueMatcher, value, operand any) (bool, error) {
	v, ok := asInstant(value)
	if !ok {
		return false, nil
	}
	o, ok := asInstant(operand)
	if !ok {
		return false, nil
	}
	return v.After(o), nil
}

// asInstant coerces the accepted date representations to a time.Time.
func asInstant(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if t == nowToken {
			return time.Now(), true
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		millis, ok := asNumber(v)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(millis)).UTC(), true
	}
}
