package calltracker

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// Invocation is one entry of a Double's invocation log.
type Invocation struct {
	ID         uuid.UUID `json:"id"`
	Operation  string    `json:"operation"`
	Payload    any       `json:"payload"`
	RecordedAt time.Time `json:"recorded_at"`
	Sequence   uint64    `json:"sequence"` // 1-based, increases per Double until Reset
}

// Transcript returns a copy of every invocation recorded since construction or the last Reset, in order.
// ResetResolver does not shorten the transcript.
func (d *Double) Transcript() []Invocation {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]Invocation(nil), d.transcript...)
}

// TranscriptJSON encodes the transcript as a JSON array.
// It is meant for failure diagnostics, e.g. to show what was invoked when an await timed out.
func (d *Double) TranscriptJSON() ([]byte, error) {
	transcript := d.Transcript()
	if transcript == nil {
		transcript = []Invocation{}
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(transcript)
	if err != nil {
		return nil, errors.Join(ErrEncodingTranscriptFailed, err)
	}

	return data, nil
}

func (d *Double) appendInvocation(name string, payload any) Invocation {
	d.sequence++

	invocation := Invocation{
		ID:         uuid.New(),
		Operation:  name,
		Payload:    payload,
		RecordedAt: d.now(),
		Sequence:   d.sequence,
	}

	d.transcript = append(d.transcript, invocation)

	return invocation
}
