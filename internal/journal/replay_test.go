package journal

import (
	"context"
	"errors"
	"testing"

	"github.com/skeinworks/skein/internal/session"
)

func TestReplay_SessionNotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Replay(context.Background(), 7)
	if err == nil {
		t.Fatal("expected error for missing session")
	}
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, expected ErrSessionNotFound", err)
	}
}

func TestReplay_RebuildsSession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r, err := NewRecorder(ctx, s, 2, "Return to Port", testStart)
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}
	if err := r.Record(ctx, createTestEntry("r1", session.KindJournal, "We made landfall.")); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := r.Record(ctx, createTestEntry("r2", session.KindMove, "Make Camp: weak hit")); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	got, err := s.Replay(ctx, 2)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	if got.Number != 2 {
		t.Errorf("Number = %d, expected 2", got.Number)
	}
	if got.Title != "Return to Port" {
		t.Errorf("Title = %q, expected %q", got.Title, "Return to Port")
	}
	if !got.StartedAt.Equal(testStart) {
		t.Errorf("StartedAt = %v, expected %v", got.StartedAt, testStart)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got.Entries))
	}
	if got.Entries[0].ID != "r1" || got.Entries[1].ID != "r2" {
		t.Errorf("entry order = [%q, %q], expected [\"r1\", \"r2\"]", got.Entries[0].ID, got.Entries[1].ID)
	}
	if got.Entries[1].Kind != session.KindMove {
		t.Errorf("Entries[1].Kind = %q, expected %q", got.Entries[1].Kind, session.KindMove)
	}
}

func TestReplay_Deterministic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r, err := NewRecorder(ctx, s, 1, "", testStart)
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}
	for _, id := range []string{"d1", "d2", "d3"} {
		if err := r.Record(ctx, createTestEntry(id, session.KindJournal, id)); err != nil {
			t.Fatalf("Record(%s) failed: %v", id, err)
		}
	}

	first, err := s.Replay(ctx, 1)
	if err != nil {
		t.Fatalf("first Replay() failed: %v", err)
	}
	second, err := s.Replay(ctx, 1)
	if err != nil {
		t.Fatalf("second Replay() failed: %v", err)
	}

	if len(first.Entries) != len(second.Entries) {
		t.Fatalf("entry counts differ: %d vs %d", len(first.Entries), len(second.Entries))
	}
	for i := range first.Entries {
		if first.Entries[i].ID != second.Entries[i].ID {
			t.Errorf("entry %d differs between replays: %q vs %q", i, first.Entries[i].ID, second.Entries[i].ID)
		}
	}
}
