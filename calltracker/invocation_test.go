package calltracker_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/calltracking-double-go/calltracker"
)

func fixedClock() func() time.Time {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func Test_Transcript_RecordsInvocationsInOrder(t *testing.T) {
	d := newDouble(t, calltracker.WithClock(fixedClock()))

	require.NoError(t, d.RecordInvocation(opSave, "a"))
	require.NoError(t, d.RecordInvocation(opLoad))
	require.NoError(t, d.ResetResolver(opSave))
	require.NoError(t, d.RecordInvocation(opSave, "b"))

	want := []calltracker.Invocation{
		{Operation: opSave, Payload: "a", RecordedAt: time.Date(2026, 10, 16, 12, 0, 1, 0, time.UTC), Sequence: 1},
		{Operation: opLoad, Payload: nil, RecordedAt: time.Date(2026, 10, 16, 12, 0, 2, 0, time.UTC), Sequence: 2},
		{Operation: opSave, Payload: "b", RecordedAt: time.Date(2026, 10, 16, 12, 0, 3, 0, time.UTC), Sequence: 3},
	}

	got := d.Transcript()
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(calltracker.Invocation{}, "ID")); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}

	ids := map[uuid.UUID]bool{}
	for _, invocation := range got {
		assert.NotEqual(t, uuid.Nil, invocation.ID)
		ids[invocation.ID] = true
	}
	assert.Len(t, ids, len(got), "invocation ids should be unique")
}

func Test_Transcript_ClearedByReset(t *testing.T) {
	d := newDouble(t)

	require.NoError(t, d.RecordInvocation(opSave))
	d.Reset()
	require.NoError(t, d.RecordInvocation(opLoad))

	transcript := d.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, uint64(1), transcript[0].Sequence, "sequence restarts after a reset")
}

func Test_TranscriptJSON(t *testing.T) {
	d := newDouble(t, calltracker.WithClock(fixedClock()))

	data, err := d.TranscriptJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	require.NoError(t, d.RecordInvocation(opSave, map[string]int{"id": 42}))

	data, err = d.TranscriptJSON()
	require.NoError(t, err)

	transcript := d.Transcript()
	require.Len(t, transcript, 1)

	assert.JSONEq(t, `[{
		"id": "`+transcript[0].ID.String()+`",
		"operation": "save",
		"payload": {"id": 42},
		"recorded_at": "2026-10-16T12:00:01Z",
		"sequence": 1
	}]`, string(data))
}

func Test_TranscriptJSON_UnencodablePayload(t *testing.T) {
	d := newDouble(t)

	require.NoError(t, d.RecordInvocation(opSave, make(chan int)))

	_, err := d.TranscriptJSON()
	assert.ErrorIs(t, err, calltracker.ErrEncodingTranscriptFailed)
}
