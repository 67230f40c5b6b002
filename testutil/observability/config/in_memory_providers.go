package config

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// InMemoryProviders holds OpenTelemetry providers whose telemetry can be inspected in tests.
type InMemoryProviders struct {
	TracerProvider *sdktrace.TracerProvider
	SpanExporter   *tracetest.InMemoryExporter
	MeterProvider  *sdkmetric.MeterProvider
	MetricReader   *sdkmetric.ManualReader
	Resource       *resource.Resource
}

// NewInMemoryProviders creates tracer and meter providers backed by in-memory exporters.
func NewInMemoryProviders() *InMemoryProviders {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String("calltracker-test"),
		semconv.ServiceVersionKey.String("test"),
	)

	spanExporter := tracetest.NewInMemoryExporter()
	metricReader := sdkmetric.NewManualReader()

	return &InMemoryProviders{
		TracerProvider: sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(spanExporter),
			sdktrace.WithResource(res),
		),
		SpanExporter: spanExporter,
		MeterProvider: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(metricReader),
			sdkmetric.WithResource(res),
		),
		MetricReader: metricReader,
		Resource:     res,
	}
}

// Tracer returns a tracer of the in-memory TracerProvider.
func (p *InMemoryProviders) Tracer(name string) trace.Tracer {
	return p.TracerProvider.Tracer(name)
}

// Meter returns a meter of the in-memory MeterProvider.
func (p *InMemoryProviders) Meter(name string) metric.Meter {
	return p.MeterProvider.Meter(name)
}

// Spans returns the spans that have ended so far.
func (p *InMemoryProviders) Spans() tracetest.SpanStubs {
	return p.SpanExporter.GetSpans()
}

// CollectMetrics pulls the current state of all instruments.
func (p *InMemoryProviders) CollectMetrics(ctx context.Context) (metricdata.ResourceMetrics, error) {
	var rm metricdata.ResourceMetrics
	err := p.MetricReader.Collect(ctx, &rm)

	return rm, err
}

// FindMetric returns the collected metric with the given name.
func FindMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, scopeMetrics := range rm.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}

	return metricdata.Metrics{}, false
}

// Shutdown shuts both providers down.
func (p *InMemoryProviders) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.TracerProvider.Shutdown(ctx),
		p.MeterProvider.Shutdown(ctx),
	)
}
