package calltracker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/calltracking-double-go/calltracker"
	"github.com/AntonStoeckl/calltracking-double-go/testutil/observability/testdoubles"
)

const doubleName = "settings-proxy"

type observedDouble struct {
	*calltracker.Double
	logger  *testdoubles.LoggerSpy
	metrics *testdoubles.MetricsCollectorSpy
	tracing *testdoubles.TracingCollectorSpy
}

func newObservedDouble(t *testing.T) observedDouble {
	t.Helper()

	o := observedDouble{
		logger:  testdoubles.NewLoggerSpy(),
		metrics: testdoubles.NewMetricsCollectorSpy(),
		tracing: testdoubles.NewTracingCollectorSpy(),
	}

	o.Double = newDouble(t,
		calltracker.WithName(doubleName),
		calltracker.WithLogger(o.logger),
		calltracker.WithMetrics(o.metrics),
		calltracker.WithTracing(o.tracing),
	)

	return o
}

func Test_Observability_RecordInvocation(t *testing.T) {
	o := newObservedDouble(t)

	require.NoError(t, o.RecordInvocation(opSave, 1))
	require.NoError(t, o.RecordInvocation(opSave, 2))

	infos := o.logger.RecordsAt(testdoubles.LevelInfo)
	require.Len(t, infos, 2)
	assert.Equal(t, "invocation recorded", infos[0].Message)

	name, _ := infos[0].Attr("double")
	operation, _ := infos[0].Attr("operation")
	sequence, _ := infos[1].Attr("sequence")
	assert.Equal(t, doubleName, name)
	assert.Equal(t, opSave, operation)
	assert.Equal(t, uint64(2), sequence)

	warns := o.logger.RecordsAt(testdoubles.LevelWarn)
	require.Len(t, warns, 1, "the second invocation without reset should be reported")

	assert.Equal(t, 1, o.metrics.CountFor("calltracker_invocations_total",
		map[string]string{"double": doubleName, "operation": opSave, "repeated": "false"}))
	assert.Equal(t, 1, o.metrics.CountFor("calltracker_invocations_total",
		map[string]string{"double": doubleName, "operation": opSave, "repeated": "true"}))

	for _, record := range o.metrics.Records() {
		assert.True(t, record.Contextual, "context-aware collector methods should be preferred")
	}
}

func Test_Observability_UnknownOperation(t *testing.T) {
	o := newObservedDouble(t)

	assert.Error(t, o.RecordInvocation("sav"))
	assert.Error(t, o.ResetResolver("sav"))

	assert.True(t, o.logger.HasLog(testdoubles.LevelError, "unknown operation"))
	assert.Equal(t, 1, o.metrics.CountFor("calltracker_unknown_operations_total",
		map[string]string{"api": "record_invocation"}))
	assert.Equal(t, 1, o.metrics.CountFor("calltracker_unknown_operations_total",
		map[string]string{"api": "reset_resolver"}))
	assert.Empty(t, o.tracing.Spans(), "rejected calls must not open spans")
}

func Test_Observability_ResolvedAwait(t *testing.T) {
	o := newObservedDouble(t)

	require.NoError(t, o.RecordInvocation(opLoad, "x"))

	_, err := o.AwaitInvocation(timeoutContext(t, time.Second), opLoad)
	require.NoError(t, err)

	spans := o.tracing.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, "calltracker.await", spans[0].Name)
	assert.Equal(t, map[string]string{
		"calltracker.double":           doubleName,
		"calltracker.operation":        opLoad,
		"calltracker.already_resolved": "true",
	}, spans[0].StartAttributes)
	assert.True(t, spans[0].Finished)
	assert.Equal(t, "success", spans[0].Status)
	assert.Contains(t, spans[0].EndAttributes, "calltracker.duration_ms")

	assert.Equal(t, 1, o.metrics.CountFor("calltracker_await_duration_seconds",
		map[string]string{"operation": opLoad, "status": "success"}))

	pending := o.metrics.RecordsFor("calltracker_pending_awaits")
	require.Len(t, pending, 2)
	assert.InDelta(t, 1, pending[0].Value, 0)
	assert.InDelta(t, 0, pending[1].Value, 0)
}

func Test_Observability_AbortedAwait(t *testing.T) {
	tests := []struct {
		name          string
		ctx           func(t *testing.T) context.Context
		status        string
		errorType     string
		expectedCause error
	}{
		{
			name: "deadline",
			ctx: func(t *testing.T) context.Context {
				return timeoutContext(t, 10*time.Millisecond)
			},
			status:        "timeout",
			errorType:     "deadline_exceeded",
			expectedCause: context.DeadlineExceeded,
		},
		{
			name: "canceled",
			ctx: func(t *testing.T) context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				return ctx
			},
			status:        "canceled",
			errorType:     "canceled",
			expectedCause: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newObservedDouble(t)

			_, err := o.AwaitInvocation(tt.ctx(t), opLoad)
			assert.ErrorIs(t, err, calltracker.ErrAwaitAborted)
			assert.ErrorIs(t, err, tt.expectedCause)

			spans := o.tracing.Spans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.status, spans[0].Status)
			assert.Equal(t, tt.status, spans[0].SpanContext.Status())
			assert.Equal(t, tt.errorType, spans[0].EndAttributes["calltracker.error_type"])

			assert.True(t, o.logger.HasLog(testdoubles.LevelWarn, "await aborted before the operation was invoked"))
			assert.Equal(t, 1, o.metrics.CountFor("calltracker_await_duration_seconds",
				map[string]string{"status": tt.status}))
		})
	}
}

func Test_Observability_Resets(t *testing.T) {
	o := newObservedDouble(t)

	require.NoError(t, o.ResetResolver(opSave))
	o.Reset()

	assert.True(t, o.logger.HasLog(testdoubles.LevelDebug, "resolver reset"))
	assert.True(t, o.logger.HasLog(testdoubles.LevelDebug, "all resolvers reset"))
	assert.Equal(t, 1, o.metrics.CountFor("calltracker_resets_total", map[string]string{"api": "reset_resolver"}))
	assert.Equal(t, 1, o.metrics.CountFor("calltracker_resets_total", map[string]string{"api": "reset"}))
}

func Test_Observability_ContextualLoggerReceivesAwaitContext(t *testing.T) {
	type ctxKey struct{}

	logger := testdoubles.NewContextualLoggerSpy()
	d := newDouble(t, calltracker.WithContextualLogger(logger))

	ctx := context.WithValue(timeoutContext(t, time.Second), ctxKey{}, "trace-me")
	require.NoError(t, d.RecordInvocation(opSave))

	_, err := d.AwaitInvocation(ctx, opSave)
	require.NoError(t, err)

	debugs := logger.RecordsAt(testdoubles.LevelDebug)
	require.Len(t, debugs, 1)
	assert.Equal(t, "awaiting invocation", debugs[0].Message)
	assert.Equal(t, "trace-me", debugs[0].Context.Value(ctxKey{}))
}
