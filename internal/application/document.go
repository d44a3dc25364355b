package application

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseDocument converts JSON text into the in-memory document value
// tree the engine evaluates: nested map[string]any and []any over
// strings, float64 numbers, booleans, and nil. The top level must be a
// JSON object; the engine resolves field paths against keyed mappings
// only.
func ParseDocument(data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrInvalidDocument)
	}
	document, ok := parsed.Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrInvalidDocument)
	}
	return document, nil
}
