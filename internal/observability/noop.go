package observability

// NoopLogger discards all log entries. Intended for tests.
type NoopLogger struct{}

func NewNoopLogger() Logger { return NoopLogger{} }

func (NoopLogger) Info(string, ...interface{})  {}
func (NoopLogger) Warn(string, ...interface{})  {}
func (NoopLogger) Error(string, ...interface{}) {}
func (NoopLogger) Debug(string, ...interface{}) {}

func (n NoopLogger) WithFields(map[string]interface{}) Logger { return n }

// NoopMetrics discards all measurements. Intended for tests.
type NoopMetrics struct{}

func NewNoopMetrics() Metrics { return NoopMetrics{} }

func (NoopMetrics) IncrementCounter(string, map[string]string)         {}
func (NoopMetrics) RecordHistogram(string, float64, map[string]string) {}
func (NoopMetrics) RecordGauge(string, float64, map[string]string)     {}

func (n NoopMetrics) WithTags(map[string]string) Metrics { return n }
