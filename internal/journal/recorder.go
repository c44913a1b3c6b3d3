package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/skeinworks/skein/internal/session"
)

// Recorder stamps entries with sequence numbers and appends them to one
// session's log. It is the single write path used during play: the game
// loop produces session.Entry values and the recorder makes them durable.
type Recorder struct {
	store  *Store
	clock  *Clock
	number int
}

// NewRecorder ensures the session row exists and returns a recorder whose
// clock resumes after the highest stored sequence number. Entries appended
// by a resumed game therefore sort after everything already on record.
func NewRecorder(ctx context.Context, store *Store, number int, title string, startedAt time.Time) (*Recorder, error) {
	if err := store.EnsureSession(ctx, number, title, startedAt); err != nil {
		return nil, err
	}

	last, err := store.MaxSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("resume recorder: %w", err)
	}

	return &Recorder{
		store:  store,
		clock:  NewClockAt(last),
		number: number,
	}, nil
}

// Session returns the session number this recorder appends to.
func (r *Recorder) Session() int {
	return r.number
}

// Record appends one entry to the recorder's session.
// Duplicate entry ids are silently ignored (idempotent append).
func (r *Recorder) Record(ctx context.Context, e session.Entry) error {
	if _, err := r.store.AppendEntry(ctx, r.number, r.clock.Next(), e); err != nil {
		return fmt.Errorf("record entry: %w", err)
	}
	return nil
}

// RecordAll appends entries in order, stopping at the first failure.
func (r *Recorder) RecordAll(ctx context.Context, entries []session.Entry) error {
	for _, e := range entries {
		if err := r.Record(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
