package testdoubles

import (
	"context"

	"github.com/AntonStoeckl/calltracking-double-go/calltracker"
)

// ContextualLoggerSpy is a calltracker.ContextualLogger that captures every call with its context.
type ContextualLoggerSpy struct {
	records logRecords
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy.
func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

// DebugContext implements calltracker.ContextualLogger.
func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.records.add(ctx, LevelDebug, msg, args)
}

// InfoContext implements calltracker.ContextualLogger.
func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.records.add(ctx, LevelInfo, msg, args)
}

// WarnContext implements calltracker.ContextualLogger.
func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.records.add(ctx, LevelWarn, msg, args)
}

// ErrorContext implements calltracker.ContextualLogger.
func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.records.add(ctx, LevelError, msg, args)
}

// Records returns a copy of all records.
func (s *ContextualLoggerSpy) Records() []SpyLogRecord {
	return s.records.byLevel("")
}

// RecordsAt returns a copy of the records at level.
func (s *ContextualLoggerSpy) RecordsAt(level string) []SpyLogRecord {
	return s.records.byLevel(level)
}

// HasLog checks if a record with the given level and message exists.
func (s *ContextualLoggerSpy) HasLog(level, message string) bool {
	return s.records.has(level, message)
}

// Reset clears all records.
func (s *ContextualLoggerSpy) Reset() {
	s.records.reset()
}

var _ calltracker.ContextualLogger = (*ContextualLoggerSpy)(nil)
