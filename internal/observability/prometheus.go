// Prometheus-backed implementation of the Metrics port. Metric vectors are
// created lazily per metric name so callers can record without pre-registering.
package observability

import (
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements Metrics using the Prometheus client library.
// Metric names are normalized to Prometheus conventions (dots become
// underscores) and prefixed with the service name.
type PrometheusMetrics struct {
	serviceName string
	registry    *prometheus.Registry
	tags        map[string]string

	// shared across WithTags copies
	shared *promShared
}

type promShared struct {
	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	gauges     map[string]*prometheus.GaugeVec
}

// NewPrometheusMetrics creates a metrics recorder registered against its own
// registry. The registry is exposed for mounting an exporter endpoint.
func NewPrometheusMetrics(serviceName string) *PrometheusMetrics {
	return &PrometheusMetrics{
		serviceName: sanitizeMetricName(serviceName),
		registry:    prometheus.NewRegistry(),
		tags:        make(map[string]string),
		shared: &promShared{
			counters:   make(map[string]*prometheus.CounterVec),
			histograms: make(map[string]*prometheus.HistogramVec),
			gauges:     make(map[string]*prometheus.GaugeVec),
		},
	}
}

// Registry returns the underlying registry for exposing a /metrics handler.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// IncrementCounter increments a counter metric by 1.
func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	labels := m.mergeTags(tags)
	vec := m.counterVec(name, labelKeys(labels))
	vec.With(prometheus.Labels(labels)).Inc()
}

// RecordHistogram records a value in a histogram distribution.
func (m *PrometheusMetrics) RecordHistogram(name string, value float64, tags map[string]string) {
	labels := m.mergeTags(tags)
	vec := m.histogramVec(name, labelKeys(labels))
	vec.With(prometheus.Labels(labels)).Observe(value)
}

// RecordGauge records a point-in-time measurement.
func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	labels := m.mergeTags(tags)
	vec := m.gaugeVec(name, labelKeys(labels))
	vec.With(prometheus.Labels(labels)).Set(value)
}

// WithTags returns a new Metrics instance with additional default tags.
func (m *PrometheusMetrics) WithTags(tags map[string]string) Metrics {
	merged := make(map[string]string, len(m.tags)+len(tags))
	for k, v := range m.tags {
		merged[k] = v
	}
	for k, v := range tags {
		merged[k] = v
	}
	return &PrometheusMetrics{
		serviceName: m.serviceName,
		registry:    m.registry,
		tags:        merged,
		shared:      m.shared,
	}
}

func (m *PrometheusMetrics) mergeTags(tags map[string]string) map[string]string {
	merged := make(map[string]string, len(m.tags)+len(tags))
	for k, v := range m.tags {
		merged[k] = v
	}
	for k, v := range tags {
		merged[k] = v
	}
	return merged
}

func (m *PrometheusMetrics) counterVec(name string, labels []string) *prometheus.CounterVec {
	m.shared.mu.Lock()
	defer m.shared.mu.Unlock()

	fullName := m.fullName(name)
	if vec, ok := m.shared.counters[fullName]; ok {
		return vec
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: fullName,
		Help: "Counter for " + name,
	}, labels)
	m.registry.MustRegister(vec)
	m.shared.counters[fullName] = vec
	return vec
}

func (m *PrometheusMetrics) histogramVec(name string, labels []string) *prometheus.HistogramVec {
	m.shared.mu.Lock()
	defer m.shared.mu.Unlock()

	fullName := m.fullName(name)
	if vec, ok := m.shared.histograms[fullName]; ok {
		return vec
	}

	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    fullName,
		Help:    "Histogram for " + name,
		Buckets: prometheus.DefBuckets,
	}, labels)
	m.registry.MustRegister(vec)
	m.shared.histograms[fullName] = vec
	return vec
}

func (m *PrometheusMetrics) gaugeVec(name string, labels []string) *prometheus.GaugeVec {
	m.shared.mu.Lock()
	defer m.shared.mu.Unlock()

	fullName := m.fullName(name)
	if vec, ok := m.shared.gauges[fullName]; ok {
		return vec
	}

	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: fullName,
		Help: "Gauge for " + name,
	}, labels)
	m.registry.MustRegister(vec)
	m.shared.gauges[fullName] = vec
	return vec
}

func (m *PrometheusMetrics) fullName(name string) string {
	return m.serviceName + "_" + sanitizeMetricName(name)
}

func sanitizeMetricName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name)
}

func labelKeys(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
