package journal

import (
	"context"
	"testing"

	"github.com/skeinworks/skein/internal/session"
)

func TestEnsureSession_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.EnsureSession(ctx, 1, "Into the Reach", testStart); err != nil {
		t.Fatalf("EnsureSession() failed: %v", err)
	}

	var title, startedAt string
	err := s.db.QueryRow(`SELECT title, started_at FROM sessions WHERE number = 1`).Scan(&title, &startedAt)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if title != "Into the Reach" {
		t.Errorf("title = %q, expected %q", title, "Into the Reach")
	}
	if startedAt != "2025-03-14T09:30:00Z" {
		t.Errorf("started_at = %q, expected RFC3339 UTC", startedAt)
	}
}

func TestEnsureSession_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.EnsureSession(ctx, 1, "Original Title", testStart); err != nil {
		t.Fatalf("first EnsureSession() failed: %v", err)
	}

	// Second call with a different title is a no-op
	if err := s.EnsureSession(ctx, 1, "Changed Title", testStart.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("second EnsureSession() failed: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("session count = %d, expected 1", count)
	}

	var title string
	if err := s.db.QueryRow(`SELECT title FROM sessions WHERE number = 1`).Scan(&title); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if title != "Original Title" {
		t.Errorf("title = %q, expected original to be preserved", title)
	}
}

func TestSetSessionTitle(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.EnsureSession(ctx, 1, "", testStart); err != nil {
		t.Fatalf("EnsureSession() failed: %v", err)
	}
	if err := s.SetSessionTitle(ctx, 1, "The Long Dark"); err != nil {
		t.Fatalf("SetSessionTitle() failed: %v", err)
	}

	var title string
	if err := s.db.QueryRow(`SELECT title FROM sessions WHERE number = 1`).Scan(&title); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if title != "The Long Dark" {
		t.Errorf("title = %q, expected %q", title, "The Long Dark")
	}
}

func TestAppendEntry_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.EnsureSession(ctx, 1, "", testStart); err != nil {
		t.Fatalf("EnsureSession() failed: %v", err)
	}

	e := createTestEntry("entry-1", session.KindMove, "Face Danger: strong hit")
	inserted, err := s.AppendEntry(ctx, 1, 1, e)
	if err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}
	if !inserted {
		t.Error("expected inserted = true for new entry")
	}

	var kind, text string
	var seq int64
	err = s.db.QueryRow(`SELECT kind, text, seq FROM entries WHERE id = ?`, e.ID).Scan(&kind, &text, &seq)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if kind != string(session.KindMove) {
		t.Errorf("kind = %q, expected %q", kind, session.KindMove)
	}
	if text != e.Text {
		t.Errorf("text = %q, expected %q", text, e.Text)
	}
	if seq != 1 {
		t.Errorf("seq = %d, expected 1", seq)
	}
}

func TestAppendEntry_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.EnsureSession(ctx, 1, "", testStart); err != nil {
		t.Fatalf("EnsureSession() failed: %v", err)
	}

	e := createTestEntry("entry-dup", session.KindJournal, "first write")
	if _, err := s.AppendEntry(ctx, 1, 1, e); err != nil {
		t.Fatalf("first AppendEntry() failed: %v", err)
	}

	// Same id again: silently ignored, original text survives
	e.Text = "second write"
	inserted, err := s.AppendEntry(ctx, 1, 2, e)
	if err != nil {
		t.Fatalf("duplicate AppendEntry() failed: %v", err)
	}
	if inserted {
		t.Error("expected inserted = false for duplicate id")
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("entry count = %d, expected 1", count)
	}

	var text string
	if err := s.db.QueryRow(`SELECT text FROM entries WHERE id = ?`, e.ID).Scan(&text); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if text != "first write" {
		t.Errorf("text = %q, expected original to be preserved", text)
	}
}

func TestAppendEntry_MissingSession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// No session row: foreign key constraint rejects the entry
	e := createTestEntry("entry-orphan", session.KindNote, "orphaned")
	if _, err := s.AppendEntry(ctx, 99, 1, e); err == nil {
		t.Error("expected foreign key error for missing session")
	}
}
