package observability

// Logger defines the interface for structured logging in the application.
// It provides context-aware logging with support for structured fields.
type Logger interface {
	// Info logs informational messages for normal operations.
	// Use for tracking successful operations, state changes, and general flow.
	Info(msg string, fields ...interface{})

	// Warn logs conditions that are unexpected but survivable.
	Warn(msg string, fields ...interface{})

	// Error logs error conditions with the associated error object.
	// Always pass the actual error; the implementation will extract details.
	Error(msg string, fields ...interface{})

	// Debug logs fine-grained diagnostic messages.
	Debug(msg string, fields ...interface{})

	// WithFields returns a new Logger with the given fields added to all subsequent logs.
	// Useful for adding consistent context like request_id or component name.
	WithFields(fields map[string]interface{}) Logger
}

// Metrics defines the interface for recording application metrics.
type Metrics interface {
	// IncrementCounter increments a counter metric by 1.
	// Use for counting discrete events: requests, errors, completions.
	IncrementCounter(name string, tags map[string]string)

	// RecordHistogram records a value in a histogram distribution.
	// Use for latencies, sizes, or any value where distribution matters.
	RecordHistogram(name string, value float64, tags map[string]string)

	// RecordGauge records a point-in-time measurement.
	RecordGauge(name string, value float64, tags map[string]string)

	// WithTags returns a new Metrics instance with additional default tags.
	WithTags(tags map[string]string) Metrics
}

// Scoped returns a logger and metrics pair annotated with the component name.
func Scoped(logger Logger, metrics Metrics, component string) (Logger, Metrics) {
	return logger.WithFields(map[string]interface{}{"component": component}),
		metrics.WithTags(map[string]string{"component": component})
}
