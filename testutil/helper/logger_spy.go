package helper

import (
	"sync"
)

// SpyLogRecord represents one captured logger call.
type SpyLogRecord struct {
	Level string
	Msg   string
	Args  []any
}

// LoggerSpy is a duck.Logger implementation that captures log calls for
// testing observability instrumentation.
type LoggerSpy struct {
	records []SpyLogRecord
	mu      sync.Mutex
}

// NewLoggerSpy creates a new LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{
		records: make([]SpyLogRecord, 0),
	}
}

// Debug implements the Logger interface.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record("debug", msg, args...)
}

// Info implements the Logger interface.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record("info", msg, args...)
}

// Warn implements the Logger interface.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record("warn", msg, args...)
}

// Error implements the Logger interface.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record("error", msg, args...)
}

func (s *LoggerSpy) record(level string, msg string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{Level: level, Msg: msg, Args: args})
}

// Records returns a copy of all captured log records.
func (s *LoggerSpy) Records() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	recordsCopy := make([]SpyLogRecord, len(s.records))
	copy(recordsCopy, s.records)

	return recordsCopy
}

// RecordsWithMessage returns all captured records with the given message.
func (s *LoggerSpy) RecordsWithMessage(msg string) []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	matching := make([]SpyLogRecord, 0)
	for _, record := range s.records {
		if record.Msg == msg {
			matching = append(matching, record)
		}
	}

	return matching
}

// Reset discards all captured records.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}
