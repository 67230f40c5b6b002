package calltracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	operationRecord        = "record_invocation"
	operationAwait         = "await_invocation"
	operationSignal        = "signal"
	operationResetResolver = "reset_resolver"
	operationReset         = "reset"

	metricInvocations       = "calltracker_invocations_total"
	metricUnknownOperations = "calltracker_unknown_operations_total"
	metricResets            = "calltracker_resets_total"
	metricAwaitDuration     = "calltracker_await_duration_seconds"
	metricPendingAwaits     = "calltracker_pending_awaits"

	labelDouble    = "double"
	labelOperation = "operation"
	labelAPI       = "api"
	labelStatus    = "status"
	labelRepeated  = "repeated"

	spanNameAwait            = "calltracker.await"
	spanAttrDouble           = "calltracker.double"
	spanAttrOperation        = "calltracker.operation"
	spanAttrAlreadyResolved  = "calltracker.already_resolved"
	spanAttrDurationMS       = "calltracker.duration_ms"
	spanAttrErrorType        = "calltracker.error_type"
	errorTypeDeadline        = "deadline_exceeded"
	errorTypeCanceled        = "canceled"
	statusSuccess            = "success"
	statusCanceled           = "canceled"
	statusTimeout            = "timeout"
	logMsgInvocationRecorded = "invocation recorded"
	logMsgRepeatedInvocation = "invocation recorded on an already resolved signal, reset the resolver to observe it"
	logMsgUnknownOperation   = "unknown operation"
	logMsgResolverReset      = "resolver reset"
	logMsgAllResolversReset  = "all resolvers reset"
	logMsgAwaitStarted       = "awaiting invocation"
	logMsgAwaitAborted       = "await aborted before the operation was invoked"
	logAttrDouble            = "double"
	logAttrOperation         = "operation"
	logAttrAPI               = "api"
	logAttrSequence          = "sequence"
	logAttrInvocationID      = "invocation_id"
	logAttrAlreadyResolved   = "already_resolved"
	logAttrDurationMS        = "duration_ms"
	logAttrError             = "error"
)

// === Logging ===

func (d *Double) logDebug(ctx context.Context, msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}

	if d.contextualLogger != nil {
		d.contextualLogger.DebugContext(ctx, msg, args...)
	}
}

func (d *Double) logInfo(ctx context.Context, msg string, args ...any) {
	if d.logger != nil {
		d.logger.Info(msg, args...)
	}

	if d.contextualLogger != nil {
		d.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

func (d *Double) logWarn(ctx context.Context, msg string, args ...any) {
	if d.logger != nil {
		d.logger.Warn(msg, args...)
	}

	if d.contextualLogger != nil {
		d.contextualLogger.WarnContext(ctx, msg, args...)
	}
}

func (d *Double) logError(ctx context.Context, msg string, args ...any) {
	if d.logger != nil {
		d.logger.Error(msg, args...)
	}

	if d.contextualLogger != nil {
		d.contextualLogger.ErrorContext(ctx, msg, args...)
	}
}

func (d *Double) logAwaitStarted(ctx context.Context, name string, signal *Signal) {
	d.logDebug(ctx, logMsgAwaitStarted,
		logAttrDouble, d.name,
		logAttrOperation, name,
		logAttrAlreadyResolved, signal.IsResolved(),
	)
}

func (d *Double) logAwaitAborted(ctx context.Context, name string, err error, duration time.Duration) {
	d.logWarn(ctx, logMsgAwaitAborted,
		logAttrDouble, d.name,
		logAttrOperation, name,
		logAttrDurationMS, toMilliseconds(duration),
		logAttrError, err.Error(),
	)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// === Observers for the synchronous API ===

func (d *Double) observeInvocation(invocation Invocation, firstResolution bool) {
	ctx := context.Background()

	d.logInfo(ctx, logMsgInvocationRecorded,
		logAttrDouble, d.name,
		logAttrOperation, invocation.Operation,
		logAttrSequence, invocation.Sequence,
		logAttrInvocationID, invocation.ID.String(),
	)

	if !firstResolution {
		d.logWarn(ctx, logMsgRepeatedInvocation,
			logAttrDouble, d.name,
			logAttrOperation, invocation.Operation,
			logAttrSequence, invocation.Sequence,
		)
	}

	d.incrementCounter(ctx, metricInvocations, map[string]string{
		labelDouble:    d.name,
		labelOperation: invocation.Operation,
		labelRepeated:  strconv.FormatBool(!firstResolution),
	})
}

func (d *Double) observeUnknownOperation(api, name string) {
	ctx := context.Background()

	d.logError(ctx, logMsgUnknownOperation,
		logAttrDouble, d.name,
		logAttrAPI, api,
		logAttrOperation, name,
	)

	d.incrementCounter(ctx, metricUnknownOperations, map[string]string{
		labelDouble: d.name,
		labelAPI:    api,
	})
}

func (d *Double) observeReset(api, name string) {
	ctx := context.Background()

	if name == "" {
		d.logDebug(ctx, logMsgAllResolversReset, logAttrDouble, d.name)
	} else {
		d.logDebug(ctx, logMsgResolverReset, logAttrDouble, d.name, logAttrOperation, name)
	}

	d.incrementCounter(ctx, metricResets, map[string]string{
		labelDouble: d.name,
		labelAPI:    api,
	})
}

// === Metrics ===

// incrementCounter uses the context-aware method of the collector if available.
func (d *Double) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if d.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := d.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	d.metricsCollector.IncrementCounter(metric, labels)
}

func (d *Double) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if d.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := d.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	d.metricsCollector.RecordDuration(metric, duration, labels)
}

func (d *Double) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if d.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := d.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	d.metricsCollector.RecordValue(metric, value, labels)
}

// awaitMetricsObserver encapsulates the metrics collection for one await.
type awaitMetricsObserver struct {
	d         *Double
	ctx       context.Context
	operation string
}

func (d *Double) startAwaitMetrics(ctx context.Context, name string) *awaitMetricsObserver {
	return &awaitMetricsObserver{d: d, ctx: ctx, operation: name}
}

func (amo *awaitMetricsObserver) labels(status string) map[string]string {
	labels := map[string]string{
		labelDouble:    amo.d.name,
		labelOperation: amo.operation,
	}

	if status != "" {
		labels[labelStatus] = status
	}

	return labels
}

func (amo *awaitMetricsObserver) recordPending(pending int64) {
	amo.d.recordValue(amo.ctx, metricPendingAwaits, float64(pending), map[string]string{labelDouble: amo.d.name})
}

func (amo *awaitMetricsObserver) recordResolved(duration time.Duration) {
	amo.d.recordDuration(amo.ctx, metricAwaitDuration, duration, amo.labels(statusSuccess))
}

func (amo *awaitMetricsObserver) recordAborted(duration time.Duration) {
	// amo.ctx is done here, collectors still get it for trace correlation.
	amo.d.recordDuration(amo.ctx, metricAwaitDuration, duration, amo.labels(abortStatus(amo.ctx.Err())))
}

// === Tracing ===

// awaitTracingObserver encapsulates the span lifecycle of one await.
type awaitTracingObserver struct {
	d    *Double
	span SpanContext
}

func (d *Double) startAwaitTracing(
	ctx context.Context,
	name string,
	alreadyResolved bool,
) (*awaitTracingObserver, context.Context) {
	if d.tracingCollector == nil {
		return &awaitTracingObserver{d: d}, ctx
	}

	newCtx, span := d.tracingCollector.StartSpan(ctx, spanNameAwait, map[string]string{
		spanAttrDouble:          d.name,
		spanAttrOperation:       name,
		spanAttrAlreadyResolved: strconv.FormatBool(alreadyResolved),
	})

	return &awaitTracingObserver{d: d, span: span}, newCtx
}

func (ato *awaitTracingObserver) finishResolved(duration time.Duration) {
	if ato.span == nil {
		return
	}

	ato.span.SetStatus(statusSuccess)
	ato.d.tracingCollector.FinishSpan(ato.span, statusSuccess, map[string]string{
		spanAttrDurationMS: formatMilliseconds(duration),
	})
}

func (ato *awaitTracingObserver) finishAborted(cause error, duration time.Duration) {
	if ato.span == nil {
		return
	}

	status := abortStatus(cause)
	errorType := errorTypeCanceled
	if status == statusTimeout {
		errorType = errorTypeDeadline
	}

	ato.span.SetStatus(status)
	ato.d.tracingCollector.FinishSpan(ato.span, status, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: formatMilliseconds(duration),
	})
}

func abortStatus(cause error) string {
	if errors.Is(cause, context.DeadlineExceeded) {
		return statusTimeout
	}

	return statusCanceled
}

func formatMilliseconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", toMilliseconds(d))
}
