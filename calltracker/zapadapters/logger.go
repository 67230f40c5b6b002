// Package zapadapters implements the calltracker logging interfaces with go.uber.org/zap.
package zapadapters

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/AntonStoeckl/calltracking-double-go/calltracker"
)

const (
	fieldTraceID = "trace_id"
	fieldSpanID  = "span_id"
)

// Logger implements calltracker.Logger and calltracker.ContextualLogger on top of a zap logger.
// The context-aware methods add trace_id and span_id fields when the context carries a valid span.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger wraps logger. A nil logger is replaced by zap.NewNop.
func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Logger{sugar: logger.Sugar()}
}

// Debug implements calltracker.Logger.
func (l *Logger) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

// Info implements calltracker.Logger.
func (l *Logger) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

// Warn implements calltracker.Logger.
func (l *Logger) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

// Error implements calltracker.Logger.
func (l *Logger) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

// DebugContext implements calltracker.ContextualLogger.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Debugw(msg, withTrace(ctx, args)...)
}

// InfoContext implements calltracker.ContextualLogger.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Infow(msg, withTrace(ctx, args)...)
}

// WarnContext implements calltracker.ContextualLogger.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Warnw(msg, withTrace(ctx, args)...)
}

// ErrorContext implements calltracker.ContextualLogger.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Errorw(msg, withTrace(ctx, args)...)
}

func withTrace(ctx context.Context, args []any) []any {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return args
	}

	withIDs := make([]any, 0, len(args)+4)
	withIDs = append(withIDs, args...)

	return append(withIDs,
		fieldTraceID, spanCtx.TraceID().String(),
		fieldSpanID, spanCtx.SpanID().String(),
	)
}

var (
	_ calltracker.Logger           = (*Logger)(nil)
	_ calltracker.ContextualLogger = (*Logger)(nil)
)
