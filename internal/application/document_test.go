package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekitchencoder/json-rules/internal/domain"
)

func TestParseDocument(t *testing.T) {
	document, err := ParseDocument([]byte(`{
		"name": "alice",
		"age": 25,
		"active": true,
		"middleName": null,
		"address": {"city": "Berlin"},
		"tags": ["a", "b"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "alice", document["name"])
	assert.Equal(t, float64(25), document["age"])
	assert.Equal(t, true, document["active"])

	// Present-but-null keys survive parsing.
	middle, present := document["middleName"]
	assert.True(t, present)
	assert.Nil(t, middle)

	address, ok := document["address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Berlin", address["city"])

	tags, ok := document["tags"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, tags)
}

func TestParseDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"name": `},
		{"top-level array", `[1, 2, 3]`},
		{"top-level scalar", `42`},
		{"empty input", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestParseDocument_EvaluatesEndToEnd(t *testing.T) {
	document, err := ParseDocument([]byte(`{"customer": {"age": 42, "tier": "gold"}}`))
	require.NoError(t, err)

	evaluator := newTestEvaluator(t)
	result := evaluator.EvaluatePredicate(context.Background(), document,
		domain.NewPredicate("gold-adult", domain.Query{
			"customer.age":  {"$gte": 18},
			"customer.tier": {"$eq": "gold"},
		}))

	assert.Equal(t, domain.StateMatched, result.State)
}
