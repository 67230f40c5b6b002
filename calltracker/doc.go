// Package calltracker provides a call-tracking test double for asynchronous backends.
//
// A Double wraps a closed set of named operations. A fake backend records every invocation,
// and test code awaits "this operation was invoked, with this payload" without polling.
//
// Each operation owns one single-resolution Signal:
//   - RecordInvocation resolves it with the payload (the first payload wins until a reset)
//   - AwaitInvocation returns that payload to any number of concurrent callers
//   - ResetResolver installs a fresh Signal to observe the next invocation
//   - Reset re-arms every operation and clears the transcript
//
// Names that were not passed to New are rejected with ErrUnknownOperation by every method.
//
// The Double never times out on its own. An await for an operation that is never invoked
// blocks until the caller's context ends, so tests should always bound the context:
//
//	proxy, err := calltracker.New([]string{"save", "load"})
//	if err != nil {
//		// handle error
//	}
//
//	page := NewPage(fakeBackend{proxy}) // the fake calls proxy.MustRecordInvocation("save", req)
//	page.ClickSave()
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//
//	req, err := calltracker.AwaitInvocationAs[SaveRequest](ctx, proxy, "save")
//
// Observability is optional and dependency-free: see Logger, ContextualLogger, MetricsCollector
// and TracingCollector, with ready-made adapters in the oteladapters and zapadapters packages.
package calltracker
