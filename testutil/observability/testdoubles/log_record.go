package testdoubles

import (
	"context"
	"sync"
)

// Log levels as recorded by the logger spies.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// SpyLogRecord represents one recorded log call.
// Context is nil for records captured by LoggerSpy.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// Attr returns the value logged for key and whether it was present.
func (r SpyLogRecord) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if k, ok := r.Args[i].(string); ok && k == key {
			return r.Args[i+1], true
		}
	}

	return nil, false
}

// logRecords is the storage shared by LoggerSpy and ContextualLoggerSpy.
type logRecords struct {
	mu      sync.Mutex
	records []SpyLogRecord
}

func (l *logRecords) add(ctx context.Context, level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, SpyLogRecord{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Context: ctx,
	})
}

func (l *logRecords) byLevel(level string) []SpyLogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matching []SpyLogRecord
	for _, record := range l.records {
		if level == "" || record.Level == level {
			matching = append(matching, record)
		}
	}

	return matching
}

func (l *logRecords) has(level, message string) bool {
	for _, record := range l.byLevel(level) {
		if record.Message == message {
			return true
		}
	}

	return false
}

func (l *logRecords) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = l.records[:0]
}
