package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_IncrementCounter(t *testing.T) {
	m := NewPrometheusMetrics("test-service")

	m.IncrementCounter("delivery.success", nil)
	m.IncrementCounter("delivery.success", nil)

	vec := m.shared.counters["test_service_delivery_success"]
	require.NotNil(t, vec)
	assert.Equal(t, 2.0, testutil.ToFloat64(vec))
}

func TestPrometheusMetrics_CounterWithTags(t *testing.T) {
	m := NewPrometheusMetrics("test")

	m.IncrementCounter("webhook.notify.errors", map[string]string{"error_type": "ack"})
	m.IncrementCounter("webhook.notify.errors", map[string]string{"error_type": "ack"})
	m.IncrementCounter("webhook.notify.errors", map[string]string{"error_type": "status"})

	vec := m.shared.counters["test_webhook_notify_errors"]
	require.NotNil(t, vec)
	assert.Equal(t, 2.0, testutil.ToFloat64(vec.WithLabelValues("ack")))
	assert.Equal(t, 1.0, testutil.ToFloat64(vec.WithLabelValues("status")))
}

func TestPrometheusMetrics_WithTags(t *testing.T) {
	m := NewPrometheusMetrics("test")
	scoped := m.WithTags(map[string]string{"component": "assets.publisher"})

	scoped.IncrementCounter("uploads", nil)

	// The copy shares the parent's registry and vectors.
	vec := m.shared.counters["test_uploads"]
	require.NotNil(t, vec)
	assert.Equal(t, 1.0, testutil.ToFloat64(vec.WithLabelValues("assets.publisher")))
}

func TestPrometheusMetrics_RecordGauge(t *testing.T) {
	m := NewPrometheusMetrics("test")

	m.RecordGauge("queue.depth", 4, nil)
	m.RecordGauge("queue.depth", 2, nil)

	vec := m.shared.gauges["test_queue_depth"]
	require.NotNil(t, vec)
	assert.Equal(t, 2.0, testutil.ToFloat64(vec))
}

func TestPrometheusMetrics_RegistryGathers(t *testing.T) {
	m := NewPrometheusMetrics("test")

	m.IncrementCounter("delivery.success", nil)
	m.RecordHistogram("delivery.duration", 0.25, nil)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "test_delivery_success")
	assert.Contains(t, names, "test_delivery_duration")
}

func TestSanitizeMetricName(t *testing.T) {
	assert.Equal(t, "audit_delivery", sanitizeMetricName("audit-delivery"))
	assert.Equal(t, "a_b_c", sanitizeMetricName("a.b c"))
}

func TestScoped(t *testing.T) {
	logger, metrics := Scoped(NewNoopLogger(), NewPrometheusMetrics("test"), "usecase.deliver")

	assert.NotNil(t, logger)

	metrics.IncrementCounter("ticks", nil)
	pm := metrics.(*PrometheusMetrics)
	vec := pm.shared.counters["test_ticks"]
	require.NotNil(t, vec)
	assert.Equal(t, 1.0, testutil.ToFloat64(vec.WithLabelValues("usecase.deliver")))
}
