package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/skeinworks/skein/internal/session"
)

// ErrSessionNotFound is returned when a replayed session number has no row.
var ErrSessionNotFound = errors.New("journal: session not found")

// Replay rebuilds an in-memory session from the stored log.
// Entries come back in their deterministic stored order, so replaying the
// same journal always produces the same session.
func (s *Store) Replay(ctx context.Context, number int) (*session.Session, error) {
	var title, startedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT title, started_at FROM sessions WHERE number = ?
	`, number).Scan(&title, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrSessionNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("replay session %d: %w", number, err)
	}

	started, err := parseStoredTime(startedAt)
	if err != nil {
		return nil, fmt.Errorf("replay session %d: %w", number, err)
	}

	entries, err := s.ReadEntries(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("replay session %d: %w", number, err)
	}

	return &session.Session{
		Number:    number,
		Title:     title,
		StartedAt: started,
		Entries:   entries,
	}, nil
}
