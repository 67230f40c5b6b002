// Package config provides OpenTelemetry providers for tests that keep all telemetry in memory.
//
// Spans go to a tracetest.InMemoryExporter through a synchronous span processor,
// metrics are pulled on demand through a ManualReader, so tests can assert on them
// right after the instrumented call returned.
package config
