package calltracker

import (
	"context"
	"errors"
	"sync"
)

// Signal is a single-resolution broadcast primitive.
//
// It starts unresolved, can be resolved exactly once with a payload, and any number of
// observers can wait for that resolution. Observers that start waiting after the resolution
// return immediately with the same payload.
type Signal struct {
	done    chan struct{}
	once    sync.Once
	payload any
}

// NewSignal creates an unresolved Signal.
func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Resolve resolves the Signal with payload.
// It reports whether this call resolved it; later calls are ignored and keep the first payload.
func (s *Signal) Resolve(payload any) bool {
	resolved := false

	s.once.Do(func() {
		s.payload = payload
		close(s.done)
		resolved = true
	})

	return resolved
}

// Done returns a channel that is closed once the Signal is resolved.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// IsResolved reports whether the Signal has been resolved.
func (s *Signal) IsResolved() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Payload returns the payload and true once resolved, otherwise nil and false.
func (s *Signal) Payload() (any, bool) {
	if !s.IsResolved() {
		return nil, false
	}

	return s.payload, true
}

// Wait blocks until the Signal is resolved or ctx is done.
// An already resolved Signal wins over an already ended context.
func (s *Signal) Wait(ctx context.Context) (any, error) {
	select {
	case <-s.done:
		return s.payload, nil
	default:
	}

	select {
	case <-s.done:
		return s.payload, nil
	case <-ctx.Done():
		return nil, errors.Join(ErrAwaitAborted, ctx.Err())
	}
}
