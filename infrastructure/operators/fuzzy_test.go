package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekitchencoder/json-rules/internal/domain"
)

func TestFuzzy(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand any
		want    bool
	}{
		{
			name:    "exact match",
			value:   "color",
			operand: "color",
			want:    true,
		},
		{
			name:    "one edit within default threshold",
			value:   "colour",
			operand: "color",
			want:    true, // similarity 5/6 ~ 0.83
		},
		{
			name:    "too many edits",
			value:   "colour",
			operand: "flavour",
			want:    false,
		},
		{
			name:    "case insensitive by default",
			value:   "COLOR",
			operand: "color",
			want:    true,
		},
		{
			name:    "case sensitive opt-in",
			value:   "COLOR",
			operand: map[string]any{"pattern": "color", "case_sensitive": true},
			want:    false,
		},
		{
			name:    "relaxed threshold",
			value:   "colour",
			operand: map[string]any{"pattern": "flavour", "threshold": 0.4},
			want:    true, // similarity 3/7 ~ 0.43
		},
		{
			name:    "strict threshold",
			value:   "colour",
			operand: map[string]any{"pattern": "color", "threshold": 0.9},
			want:    false,
		},
		{
			name:    "both empty strings",
			value:   "",
			operand: "",
			want:    true,
		},
		{
			name:    "non-string value",
			value:   42,
			operand: "42",
			want:    false,
		},
	}

	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$fuzzy")
	require.True(t, ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := handler(m, tt.value, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestFuzzy_InvalidOperand(t *testing.T) {
	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$fuzzy")
	require.True(t, ok)

	tests := []struct {
		name    string
		operand any
	}{
		{"non-string non-map operand", 42},
		{"options map without pattern", map[string]any{"threshold": 0.5}},
		{"threshold out of range", map[string]any{"pattern": "x", "threshold": 1.5}},
		{"threshold not a number", map[string]any{"pattern": "x", "threshold": "high"}},
		{"case_sensitive not a bool", map[string]any{"pattern": "x", "case_sensitive": "yes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler(m, "value", tt.operand)
			assert.ErrorIs(t, err, domain.ErrInvalidOperand)
		})
	}
}

func TestFuzzySimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, fuzzySimilarity("same", "same"), 1e-9)
	assert.InDelta(t, 1.0, fuzzySimilarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, fuzzySimilarity("abc", ""), 1e-9)
	assert.InDelta(t, 5.0/6.0, fuzzySimilarity("colour", "color"), 1e-9)
}
