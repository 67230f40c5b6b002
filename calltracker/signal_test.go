package calltracker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/calltracking-double-go/calltracker"
)

func Test_Signal_StartsUnresolved(t *testing.T) {
	signal := calltracker.NewSignal()

	payload, resolved := signal.Payload()

	assert.False(t, signal.IsResolved())
	assert.False(t, resolved)
	assert.Nil(t, payload)

	select {
	case <-signal.Done():
		t.Fatal("done channel of an unresolved signal must not be closed")
	default:
	}
}

func Test_Signal_ResolvesExactlyOnce(t *testing.T) {
	signal := calltracker.NewSignal()

	assert.True(t, signal.Resolve("first"))
	assert.False(t, signal.Resolve("second"))

	payload, resolved := signal.Payload()
	require.True(t, resolved)
	assert.Equal(t, "first", payload)
	assert.True(t, signal.IsResolved())
}

func Test_Signal_Wait_ReturnsPayloadAfterResolution(t *testing.T) {
	signal := calltracker.NewSignal()

	go func() {
		time.Sleep(10 * time.Millisecond)
		signal.Resolve(42)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	payload, err := signal.Wait(ctx)

	require.NoError(t, err)
	assert.Equal(t, 42, payload)
}

func Test_Signal_Wait_ResolvedSignalWinsOverEndedContext(t *testing.T) {
	signal := calltracker.NewSignal()
	signal.Resolve("payload")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for range 100 {
		payload, err := signal.Wait(ctx)

		require.NoError(t, err)
		assert.Equal(t, "payload", payload)
	}
}

func Test_Signal_Wait_AbortsWithContext(t *testing.T) {
	signal := calltracker.NewSignal()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	payload, err := signal.Wait(ctx)

	assert.Nil(t, payload)
	assert.ErrorIs(t, err, calltracker.ErrAwaitAborted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
