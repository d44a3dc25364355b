package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// testPrometheusMetrics is a single shared instance; creating one per
// test would panic on duplicate registration in the global registry.
var testPrometheusMetrics *PrometheusMetrics

func init() {
	testPrometheusMetrics = NewPrometheusMetrics()
}

func TestNewPrometheusMetrics(t *testing.T) {
	pm := testPrometheusMetrics
	require.NotNil(t, pm)

	assert.NotNil(t, pm.evaluationLatency)
	assert.NotNil(t, pm.predicateCounter)
	assert.NotNil(t, pm.groupCounter)

	var _ ports.MetricsCollector = pm
}

func TestPrometheusMetrics_RecordEvaluation(t *testing.T) {
	pm := testPrometheusMetrics

	assert.NotPanics(t, func() {
		pm.RecordEvaluation("spec-latency", 150*time.Millisecond)
		pm.RecordEvaluation("spec-latency", 0)
	})
}

func TestPrometheusMetrics_RecordPredicate(t *testing.T) {
	pm := testPrometheusMetrics

	pm.RecordPredicate("spec-pred", domain.StateMatched)
	pm.RecordPredicate("spec-pred", domain.StateMatched)
	pm.RecordPredicate("spec-pred", domain.StateNotMatched)
	pm.RecordPredicate("spec-pred", domain.StateUndetermined)

	matched := pm.predicateCounter.WithLabelValues("spec-pred", "matched")
	assert.Equal(t, 2.0, testutil.ToFloat64(matched))

	notMatched := pm.predicateCounter.WithLabelValues("spec-pred", "not_matched")
	assert.Equal(t, 1.0, testutil.ToFloat64(notMatched))

	undetermined := pm.predicateCounter.WithLabelValues("spec-pred", "undetermined")
	assert.Equal(t, 1.0, testutil.ToFloat64(undetermined))
}

func TestPrometheusMetrics_RecordGroup(t *testing.T) {
	pm := testPrometheusMetrics

	pm.RecordGroup("spec-group", domain.JunctionAnd, true)
	pm.RecordGroup("spec-group", domain.JunctionAnd, false)
	pm.RecordGroup("spec-group", domain.JunctionOr, true)

	andMatched := pm.groupCounter.WithLabelValues("spec-group", "AND", "true")
	assert.Equal(t, 1.0, testutil.ToFloat64(andMatched))

	andFailed := pm.groupCounter.WithLabelValues("spec-group", "AND", "false")
	assert.Equal(t, 1.0, testutil.ToFloat64(andFailed))

	orMatched := pm.groupCounter.WithLabelValues("spec-group", "OR", "true")
	assert.Equal(t, 1.0, testutil.ToFloat64(orMatched))
}
