package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/skeinworks/skein/internal/session"
)

// createTestStore creates a store backed by a temp-dir database.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testStart is a fixed session start time used across journal tests.
var testStart = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// createTestEntry creates an entry with a fixed timestamp.
func createTestEntry(id string, kind session.Kind, text string) session.Entry {
	return session.Entry{
		ID:   id,
		Kind: kind,
		Text: text,
		At:   testStart.Add(time.Minute),
	}
}
