package postgresengine

import (
	"time"

	"github.com/reduxkit/ducks-go/snapshotstore"
)

// Logger interface for SQL query logging, operational warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting SnapshotStore performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// Option defines a functional option for configuring SnapshotStore.
type Option func(*SnapshotStore) error

// WithTableName sets the table name for the SnapshotStore.
func WithTableName(tableName string) Option {
	return func(ss *SnapshotStore) error {
		if tableName == "" {
			return snapshotstore.ErrEmptySnapshotTableName
		}

		ss.snapshotTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the SnapshotStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Operation durations and concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(ss *SnapshotStore) error {
		ss.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the SnapshotStore.
// The metrics collector will receive performance and operational metrics including
// save/load/delete durations, concurrency conflicts, and database errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(ss *SnapshotStore) error {
		ss.metricsCollector = collector
		return nil
	}
}
