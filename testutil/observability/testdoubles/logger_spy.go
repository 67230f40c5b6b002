package testdoubles

import (
	"github.com/AntonStoeckl/calltracking-double-go/calltracker"
)

// LoggerSpy is a calltracker.Logger that captures every call for testing.
type LoggerSpy struct {
	records logRecords
}

// NewLoggerSpy creates a new LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

// Debug implements calltracker.Logger.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.records.add(nil, LevelDebug, msg, args)
}

// Info implements calltracker.Logger.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.records.add(nil, LevelInfo, msg, args)
}

// Warn implements calltracker.Logger.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.records.add(nil, LevelWarn, msg, args)
}

// Error implements calltracker.Logger.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.records.add(nil, LevelError, msg, args)
}

// Records returns a copy of all records.
func (s *LoggerSpy) Records() []SpyLogRecord {
	return s.records.byLevel("")
}

// RecordsAt returns a copy of the records at level.
func (s *LoggerSpy) RecordsAt(level string) []SpyLogRecord {
	return s.records.byLevel(level)
}

// HasLog checks if a record with the given level and message exists.
func (s *LoggerSpy) HasLog(level, message string) bool {
	return s.records.has(level, message)
}

// Reset clears all records.
func (s *LoggerSpy) Reset() {
	s.records.reset()
}

var _ calltracker.Logger = (*LoggerSpy)(nil)
