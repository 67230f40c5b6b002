// Package testdoubles provides spies for the calltracker observability interfaces.
//
//   - LoggerSpy: captures calltracker.Logger calls
//   - ContextualLoggerSpy: captures calltracker.ContextualLogger calls together with their context
//   - MetricsCollectorSpy: captures metrics, including the context-aware variants
//   - TracingCollectorSpy: captures spans with their start and finish attributes
//
// All spies are safe for concurrent use and return copies from their getters.
package testdoubles
