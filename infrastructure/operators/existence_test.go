package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekitchencoder/json-rules/internal/domain"
)

func TestExists(t *testing.T) {
	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$exists")
	require.True(t, ok)

	// A handler only ever sees resolved fields: true matches any
	// resolved value including explicit null, false cannot.
	matched, err := handler(m, "value", true)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = handler(m, nil, true)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = handler(m, "value", false)
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = handler(m, nil, false)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestExists_InvalidOperand(t *testing.T) {
	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$exists")
	require.True(t, ok)

	matched, err := handler(m, "value", "true")
	assert.False(t, matched)
	assert.ErrorIs(t, err, domain.ErrInvalidOperand)
}

func TestType(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand string
		want    bool
	}{
		{"string matches", "hello", "string", true},
		{"string mismatch", "hello", "number", false},
		{"int is number", 42, "number", true},
		{"float is number", 2.5, "number", true},
		{"bool", true, "boolean", true},
		{"array", []any{1}, "array", true},
		{"object", map[string]any{"k": "v"}, "object", true},
		{"null", nil, "null", true},
		{"null not string", nil, "string", false},
	}

	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$type")
	require.True(t, ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := handler(m, tt.value, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestType_InvalidOperand(t *testing.T) {
	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$type")
	require.True(t, ok)

	_, err := handler(m, "x", "integer")
	assert.ErrorIs(t, err, domain.ErrInvalidOperand)

	_, err = handler(m, "x", 42)
	assert.ErrorIs(t, err, domain.ErrInvalidOperand)
}
