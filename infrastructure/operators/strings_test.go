package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand any
		want    bool
	}{
		{
			name:    "substring present",
			value:   "gold customer",
			operand: "gold",
			want:    true,
		},
		{
			name:    "substring absent",
			value:   "silver customer",
			operand: "gold",
			want:    false,
		},
		{
			name:    "case sensitive",
			value:   "Gold customer",
			operand: "gold",
			want:    false,
		},
		{
			name:    "collection membership",
			value:   []any{"alpha", "beta"},
			operand: "beta",
			want:    true,
		},
		{
			name:    "collection without member",
			value:   []any{"alpha", "beta"},
			operand: "gamma",
			want:    false,
		},
		{
			name:    "numeric membership across representations",
			value:   []any{1, 2, 3},
			operand: 2.0,
			want:    true,
		},
		{
			name:    "non-string scalar value",
			value:   42,
			operand: "4",
			want:    false,
		},
		{
			name:    "non-string operand against string value",
			value:   "42",
			operand: 4,
			want:    false,
		},
	}

	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$contains")
	require.True(t, ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := handler(m, tt.value, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestStartsWithEndsWith(t *testing.T) {
	tests := []struct {
		name     string
		operator string
		value    any
		operand  any
		want     bool
	}{
		{"prefix matches", "$startsWith", "order-12345", "order-", true},
		{"prefix absent", "$startsWith", "invoice-12345", "order-", false},
		{"prefix case sensitive", "$startsWith", "Order-12345", "order-", false},
		{"empty prefix", "$startsWith", "anything", "", true},
		{"non-string value", "$startsWith", 12345, "123", false},
		{"non-string operand", "$startsWith", "12345", 123, false},

		{"suffix matches", "$endsWith", "report.pdf", ".pdf", true},
		{"suffix absent", "$endsWith", "report.docx", ".pdf", false},
		{"suffix case sensitive", "$endsWith", "report.PDF", ".pdf", false},
		{"empty suffix", "$endsWith", "anything", "", true},
		{"non-string value", "$endsWith", 12345, "345", false},
	}

	m := newTestMatcher()
	for _, tt := range tests {
		t.Run(tt.operator+" "+tt.name, func(t *testing.T) {
			handler, ok := m.reg.Lookup(tt.operator)
			require.True(t, ok)

			matched, err := handler(m, tt.value, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}
