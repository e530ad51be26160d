package duck

import (
	"time"
)

// Logger interface for reducer dispatch logging, registration warnings, and error reporting.
// It is dependency-free so any logging backend (log/slog, OpenTelemetry bridges, ...)
// can be plugged in by implementing these four methods.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting reducer performance and operational metrics.
// It follows the same dependency-free pattern as Logger, allowing integration with any
// metrics backend (OpenTelemetry, Prometheus, ...) by implementing this interface.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}
