package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/calltracking-double-go/calltracker/oteladapters"
)

type recordingLogger struct {
	embedded.Logger

	mu      sync.Mutex
	records []log.Record
}

func (l *recordingLogger) Emit(_ context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record.Clone())
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func attrsOf(record log.Record) map[string]log.Value {
	attrs := map[string]log.Value{}
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value
		return true
	})

	return attrs
}

func Test_NewSlogBridgeLogger_Construction(t *testing.T) {
	assert.NotNil(t, oteladapters.NewSlogBridgeLogger("calltracker"))
	assert.NotNil(t, oteladapters.NewSlogBridgeLoggerWithProvider("calltracker", noop.NewLoggerProvider()))
}

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	ctx := context.Background()

	logger.DebugContext(ctx, "awaiting invocation", "operation", "load")
	logger.InfoContext(ctx, "invocation recorded", "sequence", uint64(3))
	logger.WarnContext(ctx, "await aborted before the operation was invoked")
	logger.ErrorContext(ctx, "unknown operation", "operation", "sav")

	output := buf.String()

	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"level":"ERROR"`)
	assert.Contains(t, output, `"operation":"load"`)
	assert.Contains(t, output, `"sequence":3`)
	assert.Contains(t, output, `"msg":"unknown operation"`)
}

func Test_OTelLogger_EmitsRecords(t *testing.T) {
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)
	ctx := context.Background()

	logger.InfoContext(ctx, "invocation recorded",
		"operation", "save",
		"sequence", uint64(2),
		"already_resolved", true,
		"duration_ms", 1.5,
		"dangling",
	)
	logger.ErrorContext(ctx, "unknown operation", 42, "ignored")

	require.Len(t, recorder.records, 2)

	info := recorder.records[0]
	assert.Equal(t, log.SeverityInfo, info.Severity())
	assert.Equal(t, "invocation recorded", info.Body().AsString())

	attrs := attrsOf(info)
	assert.Len(t, attrs, 4)
	assert.Equal(t, "save", attrs["operation"].AsString())
	assert.Equal(t, int64(2), attrs["sequence"].AsInt64())
	assert.True(t, attrs["already_resolved"].AsBool())
	assert.InDelta(t, 1.5, attrs["duration_ms"].AsFloat64(), 0.0001)

	errorRecord := recorder.records[1]
	assert.Equal(t, log.SeverityError, errorRecord.Severity())
	assert.Empty(t, attrsOf(errorRecord), "non-string keys are skipped")
}

func Test_OTelLogger_AllSeverities(t *testing.T) {
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)
	ctx := context.Background()

	logger.DebugContext(ctx, "d")
	logger.InfoContext(ctx, "i")
	logger.WarnContext(ctx, "w")
	logger.ErrorContext(ctx, "e")

	require.Len(t, recorder.records, 4)
	assert.Equal(t, log.SeverityDebug, recorder.records[0].Severity())
	assert.Equal(t, log.SeverityInfo, recorder.records[1].Severity())
	assert.Equal(t, log.SeverityWarn, recorder.records[2].Severity())
	assert.Equal(t, log.SeverityError, recorder.records[3].Severity())
}
