// Package oteladapters provides OpenTelemetry adapters for the duck observability interfaces.
// These adapters enable seamless integration with OpenTelemetry for users who want
// plug-and-play observability without implementing the interfaces themselves.
package oteladapters

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/reduxkit/ducks-go/duck"
)

// SlogBridgeLogger implements duck.Logger using the OpenTelemetry slog bridge.
// This is the recommended implementation as it emits log records through the
// global OpenTelemetry LoggerProvider and works seamlessly with Go's standard
// log/slog package.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a new logger using the OpenTelemetry slog bridge.
// The logger uses the global OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	logger := otelslog.NewLogger(name)
	return &SlogBridgeLogger{logger: logger}
}

// NewSlogBridgeLoggerWithHandler creates a new logger using the provided slog.Handler.
// Note: This does NOT route records through OpenTelemetry - it uses the handler as-is.
// This function is provided for compatibility when you need a specific slog.Handler,
// for example in tests.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	logger := slog.New(handler)
	return &SlogBridgeLogger{logger: logger}
}

// Debug logs a debug message.
func (l *SlogBridgeLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message.
func (l *SlogBridgeLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *SlogBridgeLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *SlogBridgeLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Ensure SlogBridgeLogger implements duck.Logger.
var _ duck.Logger = (*SlogBridgeLogger)(nil)
