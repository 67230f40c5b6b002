package calltracker

import (
	"time"
)

// Option defines a functional option for configuring a Double.
type Option func(*Double) error

// WithName sets the name that labels the Double's log records, metrics, and spans.
// It helps to tell several fakes apart within one test.
func WithName(name string) Option {
	return func(d *Double) error {
		if name == "" {
			return ErrEmptyDoubleName
		}

		d.name = name

		return nil
	}
}

// WithLogger sets the logger for the Double.
// The logger will receive messages at different levels:
//
// Debug level: resolver resets and awaits that start waiting
// Info level: recorded invocations
// Warn level: repeated invocations without a reset, aborted awaits
// Error level: unknown operation names.
func WithLogger(logger Logger) Option {
	return func(d *Double) error {
		d.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Double.
// Awaits log through it with the caller's context, which enables trace correlation.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(d *Double) error {
		d.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Double.
func WithMetrics(collector MetricsCollector) Option {
	return func(d *Double) error {
		d.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Double.
// Every AwaitInvocation call is wrapped in a span.
func WithTracing(collector TracingCollector) Option {
	return func(d *Double) error {
		d.tracingCollector = collector
		return nil
	}
}

// WithClock replaces time.Now as the timestamp source for recorded invocations.
func WithClock(now func() time.Time) Option {
	return func(d *Double) error {
		if now == nil {
			return ErrNilClock
		}

		d.now = now

		return nil
	}
}
