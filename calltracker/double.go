package calltracker

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultDoubleName = "double"
)

type operationState struct {
	signal    *Signal
	args      []any
	result    any
	hasResult bool
}

// Double is a call-tracking test double for a closed set of named operations.
//
// A fake backend calls RecordInvocation every time one of its operations is invoked,
// test code calls AwaitInvocation to wait for that, without polling.
// Each operation owns exactly one live Signal; ResetResolver replaces it with a fresh one
// so that a later invocation of the same operation can be observed independently.
//
// A Double is safe for concurrent use. It never times out on its own:
// an await for an operation that is never invoked blocks until the caller's context ends.
type Double struct {
	mu               sync.Mutex
	operations       map[string]*operationState
	transcript       []Invocation
	sequence         uint64
	pendingAwaits    atomic.Int64
	name             string
	now              func() time.Time
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// New creates a Double that tracks the given operation names.
//
// Duplicate names collapse into one tracked operation. An empty list is legal and yields a
// Double that tracks nothing. An empty name is rejected with ErrEmptyOperationName.
func New(operationNames []string, options ...Option) (*Double, error) {
	d := &Double{
		operations: make(map[string]*operationState, len(operationNames)),
		name:       defaultDoubleName,
		now:        time.Now,
	}

	for _, name := range operationNames {
		if name == "" {
			return nil, ErrEmptyOperationName
		}

		d.operations[name] = &operationState{signal: NewSignal()}
	}

	for _, option := range options {
		if err := option(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// TrackedOperations returns the tracked operation names in sorted order.
func (d *Double) TrackedOperations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := make([]string, 0, len(d.operations))
	for name := range d.operations {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// RecordInvocation records that operation name was invoked and resolves its current Signal.
//
// Without a payload the Signal resolves with nil, a single payload is passed through as is,
// and several payloads are recorded as one []any.
//
// A second invocation before ResetResolver is appended to Args and the transcript,
// but the Signal keeps the first payload.
func (d *Double) RecordInvocation(name string, payload ...any) error {
	value := payloadValue(payload)

	d.mu.Lock()

	op, err := d.lookup(name)
	if err != nil {
		d.mu.Unlock()
		d.observeUnknownOperation(operationRecord, name)

		return err
	}

	op.args = append(op.args, value)
	invocation := d.appendInvocation(name, value)
	firstResolution := op.signal.Resolve(value)

	d.mu.Unlock()

	d.observeInvocation(invocation, firstResolution)

	return nil
}

// MustRecordInvocation is like RecordInvocation but panics for an untracked name.
// It suits fake backends whose method signatures have no place for the error.
func (d *Double) MustRecordInvocation(name string, payload ...any) {
	if err := d.RecordInvocation(name, payload...); err != nil {
		panic(err)
	}
}

// AwaitInvocation waits until operation name is invoked and returns the payload of that invocation.
//
// If the operation was already invoked since its last reset, it returns immediately.
// Any number of concurrent callers receive the same payload.
// There is no built-in timeout: bound ctx, or an operation that is never invoked blocks forever.
// When ctx ends first, the returned error wraps ErrAwaitAborted and ctx.Err().
func (d *Double) AwaitInvocation(ctx context.Context, name string) (any, error) {
	signal, err := d.signalFor(operationAwait, name)
	if err != nil {
		return nil, err
	}

	tracing, ctx := d.startAwaitTracing(ctx, name, signal.IsResolved())
	metrics := d.startAwaitMetrics(ctx, name)
	d.logAwaitStarted(ctx, name, signal)

	pending := d.pendingAwaits.Add(1)
	metrics.recordPending(pending)

	start := time.Now()
	payload, waitErr := signal.Wait(ctx)
	duration := time.Since(start)

	metrics.recordPending(d.pendingAwaits.Add(-1))

	if waitErr != nil {
		d.logAwaitAborted(ctx, name, waitErr, duration)
		metrics.recordAborted(duration)
		tracing.finishAborted(ctx.Err(), duration)

		return nil, waitErr
	}

	metrics.recordResolved(duration)
	tracing.finishResolved(duration)

	return payload, nil
}

// Signal returns the current Signal of operation name.
// The returned instance is not affected by later resets.
func (d *Double) Signal(name string) (*Signal, error) {
	return d.signalFor(operationSignal, name)
}

// ResetResolver replaces the Signal of operation name with a fresh, unresolved one
// and forgets the arguments recorded for it.
// Observers already holding the old Signal keep it.
func (d *Double) ResetResolver(name string) error {
	d.mu.Lock()

	op, err := d.lookup(name)
	if err != nil {
		d.mu.Unlock()
		d.observeUnknownOperation(operationResetResolver, name)

		return err
	}

	resetOperation(op)

	d.mu.Unlock()

	d.observeReset(operationResetResolver, name)

	return nil
}

// Reset applies ResetResolver to every tracked operation and clears the transcript.
// Canned results set with SetResultFor are kept.
func (d *Double) Reset() {
	d.mu.Lock()

	for _, op := range d.operations {
		resetOperation(op)
	}

	d.transcript = nil
	d.sequence = 0

	d.mu.Unlock()

	d.observeReset(operationReset, "")
}

// CallCount returns how often operation name was invoked since its last reset.
func (d *Double) CallCount(name string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	op, err := d.lookup(name)
	if err != nil {
		return 0, err
	}

	return len(op.args), nil
}

// Args returns the payloads recorded for operation name since its last reset, in invocation order.
func (d *Double) Args(name string) ([]any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	op, err := d.lookup(name)
	if err != nil {
		return nil, err
	}

	return append([]any(nil), op.args...), nil
}

// SetResultFor stores a canned result that a fake backend returns for operation name.
func (d *Double) SetResultFor(name string, result any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	op, err := d.lookup(name)
	if err != nil {
		return err
	}

	op.result = result
	op.hasResult = true

	return nil
}

// ResultFor returns the canned result for operation name, or nil if none was set.
func (d *Double) ResultFor(name string) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	op, err := d.lookup(name)
	if err != nil {
		return nil, err
	}

	if !op.hasResult {
		return nil, nil
	}

	return op.result, nil
}

// AwaitInvocationAs is AwaitInvocation with the payload asserted to type T.
// A nil payload, as recorded without arguments, yields the zero value of T.
func AwaitInvocationAs[T any](ctx context.Context, d *Double, name string) (T, error) {
	var zero T

	payload, err := d.AwaitInvocation(ctx, name)
	if err != nil {
		return zero, err
	}

	if payload == nil {
		return zero, nil
	}

	typed, ok := payload.(T)
	if !ok {
		return zero, ErrPayloadTypeMismatch
	}

	return typed, nil
}

func (d *Double) signalFor(operation, name string) (*Signal, error) {
	d.mu.Lock()

	op, err := d.lookup(name)
	if err != nil {
		d.mu.Unlock()
		d.observeUnknownOperation(operation, name)

		return nil, err
	}

	signal := op.signal

	d.mu.Unlock()

	return signal, nil
}

// lookup must be called with d.mu held.
func (d *Double) lookup(name string) (*operationState, error) {
	op, ok := d.operations[name]
	if !ok {
		return nil, &UnknownOperationError{Operation: name}
	}

	return op, nil
}

func resetOperation(op *operationState) {
	op.signal = NewSignal()
	op.args = nil
}

func payloadValue(payload []any) any {
	switch len(payload) {
	case 0:
		return nil
	case 1:
		return payload[0]
	default:
		return append([]any(nil), payload...)
	}
}
