package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/skeinworks/skein/internal/session"
)

// EnsureSession inserts a session row if one does not already exist.
// Uses ON CONFLICT DO NOTHING for idempotency - reopening a session that
// is already on record keeps its original title and start time.
func (s *Store) EnsureSession(ctx context.Context, number int, title string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (number, title, started_at)
		VALUES (?, ?, ?)
		ON CONFLICT(number) DO NOTHING
	`,
		number,
		title,
		startedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("ensure session %d: %w", number, err)
	}
	return nil
}

// SetSessionTitle updates a stored session's title. Sessions are opened
// before play begins but usually titled when they end.
func (s *Store) SetSessionTitle(ctx context.Context, number int, title string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET title = ? WHERE number = ?
	`, title, number)
	if err != nil {
		return fmt.Errorf("set session %d title: %w", number, err)
	}
	return nil
}

// AppendEntry inserts one entry under the given session with the given
// sequence number. Uses ON CONFLICT(id) DO NOTHING for idempotency -
// re-appending an entry id that is already stored is silently ignored,
// so retries and replayed recordings never duplicate log lines.
//
// Returns true when a new row was written, false when the id was a
// duplicate.
//
// Note: The session referenced by number must exist (foreign key constraint).
func (s *Store) AppendEntry(ctx context.Context, number int, seq int64, e session.Entry) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, session, seq, kind, text, at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		number,
		seq,
		string(e.Kind),
		e.Text,
		e.At.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("append entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("append entry: %w", err)
	}
	return n > 0, nil
}
