package oteladapters_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reduxkit/ducks-go/duck/oteladapters"
)

func Test_NewSlogBridgeLogger_Construction(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("test-logger")

	assert.NotNil(t, logger, "NewSlogBridgeLogger should return non-nil logger")
}

func Test_SlogBridgeLogger_LogsAtAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)

	// act
	logger.Debug("debug message", "key", "debug-value")
	logger.Info("info message", "key", "info-value")
	logger.Warn("warn message", "key", "warn-value")
	logger.Error("error message", "key", "error-value")

	// assert
	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, "key=info-value")
}

func Test_SlogBridgeLogger_RespectsHandlerLevel(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)

	// act
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	// assert
	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
}
