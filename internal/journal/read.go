package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skeinworks/skein/internal/session"
)

// SessionInfo summarizes one stored session.
type SessionInfo struct {
	Number    int
	Title     string
	StartedAt time.Time
	Entries   int
}

// Sessions returns every stored session in number order, with entry counts.
// Returns an empty slice (not nil) when the journal is empty.
func (s *Store) Sessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.number, s.title, s.started_at, COUNT(e.id)
		FROM sessions s
		LEFT JOIN entries e ON e.session = s.number
		GROUP BY s.number
		ORDER BY s.number ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	// Return empty slice instead of nil for consistent behavior
	infos := []SessionInfo{}
	for rows.Next() {
		var info SessionInfo
		var startedAt string
		if err := rows.Scan(&info.Number, &info.Title, &startedAt, &info.Entries); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		info.StartedAt, err = parseStoredTime(startedAt)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", info.Number, err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return infos, nil
}

// ReadEntries returns the entries for one session in deterministic order:
// seq ascending, then id with BINARY collation for identical seqs.
// Returns an empty slice (not nil) when the session has no entries.
func (s *Store) ReadEntries(ctx context.Context, number int) ([]session.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, text, at
		FROM entries
		WHERE session = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, number)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	defer rows.Close()

	// Return empty slice instead of nil for consistent behavior
	entries := []session.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// MaxSeq returns the highest sequence number across all stored entries,
// or 0 when the journal has none. Used to resume the sequence clock.
func (s *Store) MaxSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM entries`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("max seq: %w", err)
	}
	if !seq.Valid {
		return 0, nil
	}
	return seq.Int64, nil
}

// scanEntry converts one result row into a session.Entry.
func scanEntry(rows *sql.Rows) (session.Entry, error) {
	var e session.Entry
	var kind, at string
	if err := rows.Scan(&e.ID, &kind, &e.Text, &at); err != nil {
		return session.Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	e.Kind = session.Kind(kind)

	ts, err := parseStoredTime(at)
	if err != nil {
		return session.Entry{}, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	e.At = ts
	return e, nil
}

// parseStoredTime decodes the RFC 3339 text timestamps the store writes.
func parseStoredTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}
