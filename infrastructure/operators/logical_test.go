package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekitchencoder/json-rules/internal/domain"
)

func TestAnd(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand any
		want    bool
	}{
		{
			name:    "all clauses match",
			value:   25,
			operand: []any{map[string]any{"$gte": 18}, map[string]any{"$lt": 65}},
			want:    true,
		},
		{
			name:    "one clause fails",
			value:   70,
			operand: []any{map[string]any{"$gte": 18}, map[string]any{"$lt": 65}},
			want:    false,
		},
		{
			name:    "empty list is vacuously satisfied",
			value:   "anything",
			operand: []any{},
			want:    true,
		},
		{
			name:    "non-list operand",
			value:   25,
			operand: "not a list",
			want:    false,
		},
	}

	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$and")
	require.True(t, ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := handler(m, tt.value, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestOr(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand any
		want    bool
	}{
		{
			name:    "first clause matches",
			value:   10,
			operand: []any{map[string]any{"$lt": 18}, map[string]any{"$gt": 65}},
			want:    true,
		},
		{
			name:    "second clause matches",
			value:   70,
			operand: []any{map[string]any{"$lt": 18}, map[string]any{"$gt": 65}},
			want:    true,
		},
		{
			name:    "no clause matches",
			value:   30,
			operand: []any{map[string]any{"$lt": 18}, map[string]any{"$gt": 65}},
			want:    false,
		},
		{
			name:    "empty list is unsatisfied",
			value:   "anything",
			operand: []any{},
			want:    false,
		},
		{
			name:    "non-list operand",
			value:   30,
			operand: "not a list",
			want:    false,
		},
	}

	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$or")
	require.True(t, ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := handler(m, tt.value, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestAndOr_UndecidableClauseNotMasked(t *testing.T) {
	m := newTestMatcher()

	// $and: the first clause already fails, yet the unknown operator in
	// the second clause must still surface.
	handler, ok := m.reg.Lookup("$and")
	require.True(t, ok)
	_, err := handler(m, 10, []any{
		map[string]any{"$gte": 18},
		map[string]any{"$bogus": 1},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownOperator)

	// $or: the first clause already matches, yet the unknown operator in
	// the second clause must still surface.
	handler, ok = m.reg.Lookup("$or")
	require.True(t, ok)
	_, err = handler(m, 25, []any{
		map[string]any{"$gte": 18},
		map[string]any{"$bogus": 1},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownOperator)
}

func TestAndOr_InvalidClause(t *testing.T) {
	m := newTestMatcher()

	for _, operator := range []string{"$and", "$or"} {
		handler, ok := m.reg.Lookup(operator)
		require.True(t, ok)

		_, err := handler(m, 25, []any{"not a map"})
		assert.ErrorIs(t, err, domain.ErrInvalidOperand, operator)
	}
}

func TestNot(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand any
		want    bool
	}{
		{
			name:    "inverts match",
			value:   "BANNED",
			operand: map[string]any{"$eq": "BANNED"},
			want:    false,
		},
		{
			name:    "inverts non-match",
			value:   "ACTIVE",
			operand: map[string]any{"$eq": "BANNED"},
			want:    true,
		},
		{
			name:    "inverts membership",
			value:   "ACTIVE",
			operand: map[string]any{"$in": []any{"BANNED", "SUSPENDED"}},
			want:    true,
		},
		{
			name:    "nil operand",
			value:   "ACTIVE",
			operand: nil,
			want:    false,
		},
		{
			name:    "non-map operand",
			value:   "ACTIVE",
			operand: "BANNED",
			want:    false,
		},
	}

	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$not")
	require.True(t, ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := handler(m, tt.value, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestNot_PropagatesUndetermined(t *testing.T) {
	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$not")
	require.True(t, ok)

	// "cannot be decided" is not invertible: the inner unknown-operator
	// signal flows through $not unchanged.
	matched, err := handler(m, 42, map[string]any{"$unknownOp": "test"})
	assert.False(t, matched)
	assert.ErrorIs(t, err, domain.ErrUnknownOperator)
}

func TestElemMatch(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand any
		want    bool
	}{
		{
			name:    "operator map matches an element",
			value:   []any{5, 15, 25},
			operand: map[string]any{"$gte": 20},
			want:    true,
		},
		{
			name:    "operator map matches no element",
			value:   []any{5, 15},
			operand: map[string]any{"$gte": 20},
			want:    false,
		},
		{
			name: "sub-document query",
			value: []any{
				map[string]any{"product": "apple", "qty": 2},
				map[string]any{"product": "pear", "qty": 10},
			},
			operand: map[string]any{"qty": map[string]any{"$gte": 5}},
			want:    true,
		},
		{
			name: "sub-document query over multiple fields",
			value: []any{
				map[string]any{"product": "apple", "qty": 10},
				map[string]any{"product": "pear", "qty": 2},
			},
			operand: map[string]any{
				"product": map[string]any{"$eq": "apple"},
				"qty":     map[string]any{"$gte": 5},
			},
			want: true,
		},
		{
			name: "sub-document conditions must hold on one element",
			value: []any{
				map[string]any{"product": "apple", "qty": 2},
				map[string]any{"product": "pear", "qty": 10},
			},
			operand: map[string]any{
				"product": map[string]any{"$eq": "apple"},
				"qty":     map[string]any{"$gte": 5},
			},
			want: false,
		},
		{
			name:    "element missing queried path does not match",
			value:   []any{map[string]any{"other": 1}},
			operand: map[string]any{"qty": map[string]any{"$gte": 5}},
			want:    false,
		},
		{
			name:    "empty collection",
			value:   []any{},
			operand: map[string]any{"$gte": 20},
			want:    false,
		},
		{
			name:    "non-collection value",
			value:   "scalar",
			operand: map[string]any{"$eq": "scalar"},
			want:    false,
		},
	}

	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$elemMatch")
	require.True(t, ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := handler(m, tt.value, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestElemMatch_InvalidOperand(t *testing.T) {
	m := newTestMatcher()
	handler, ok := m.reg.Lookup("$elemMatch")
	require.True(t, ok)

	_, err := handler(m, []any{1}, "not a map")
	assert.ErrorIs(t, err, domain.ErrInvalidOperand)

	_, err = handler(m, []any{1}, map[string]any{})
	assert.ErrorIs(t, err, domain.ErrInvalidOperand)
}
