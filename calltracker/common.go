package calltracker

import (
	"errors"
)

var (
	// ErrUnknownOperation is returned when an operation name was not passed to New.
	// It almost always indicates a typo in a test or a fake backend.
	ErrUnknownOperation = errors.New("operation is not tracked by this double")

	// ErrEmptyOperationName is returned when New is called with an empty operation name.
	ErrEmptyOperationName = errors.New("empty operation name supplied")

	// ErrEmptyDoubleName is returned by WithName for an empty name.
	ErrEmptyDoubleName = errors.New("empty double name supplied")

	// ErrNilClock is returned by WithClock for a nil clock function.
	ErrNilClock = errors.New("nil clock supplied")

	// ErrAwaitAborted is returned when the caller's context ends before the awaited operation was invoked.
	ErrAwaitAborted = errors.New("await aborted before the operation was invoked")

	// ErrPayloadTypeMismatch is returned by AwaitInvocationAs when the recorded payload has another type.
	ErrPayloadTypeMismatch = errors.New("recorded payload has an unexpected type")

	// ErrEncodingTranscriptFailed is returned when the invocation transcript can not be encoded.
	ErrEncodingTranscriptFailed = errors.New("encoding transcript failed")
)

// UnknownOperationError carries the offending operation name and unwraps to ErrUnknownOperation.
type UnknownOperationError struct {
	Operation string
}

func (e *UnknownOperationError) Error() string {
	return ErrUnknownOperation.Error() + ": " + e.Operation
}

func (e *UnknownOperationError) Unwrap() error {
	return ErrUnknownOperation
}
