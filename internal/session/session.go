// Package session models one sitting of play: a numbered session with
// an ordered log of typed entries. Durable storage lives in the journal
// package; this is the in-memory shape handlers append to.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a log entry, driving journal export styling.
type Kind string

const (
	// KindJournal is free narrative prose.
	KindJournal Kind = "journal"
	// KindMove records a resolved move and its outcome.
	KindMove Kind = "move"
	// KindOracle records an oracle consultation.
	KindOracle Kind = "oracle"
	// KindMechanical records a state change (tracks, momentum, vows).
	KindMechanical Kind = "mechanical"
	// KindNote is an out-of-fiction aside.
	KindNote Kind = "note"
)

// Entry is one log line. The ID is assigned at creation and never
// changes, so replaying a recorded session into the journal store is
// idempotent.
type Entry struct {
	ID   string    `json:"id"`
	Kind Kind      `json:"kind"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Session is one sitting of play.
type Session struct {
	Number    int       `json:"number"`
	Title     string    `json:"title,omitempty"`
	StartedAt time.Time `json:"started_at"`
	Entries   []Entry   `json:"entries"`
}

// New starts session number n.
func New(n int) *Session {
	return &Session{Number: n, StartedAt: time.Now().UTC()}
}

// add appends a stamped entry and returns it.
func (s *Session) add(kind Kind, text string) Entry {
	e := Entry{
		ID:   uuid.NewString(),
		Kind: kind,
		Text: text,
		At:   time.Now().UTC(),
	}
	s.Entries = append(s.Entries, e)
	return e
}

// AddJournal appends narrative prose.
func (s *Session) AddJournal(text string) Entry {
	return s.add(KindJournal, text)
}

// AddMove appends a move result line.
func (s *Session) AddMove(text string) Entry {
	return s.add(KindMove, text)
}

// AddOracle appends an oracle consultation line.
func (s *Session) AddOracle(text string) Entry {
	return s.add(KindOracle, text)
}

// AddMechanical appends a state-change line.
func (s *Session) AddMechanical(text string) Entry {
	return s.add(KindMechanical, text)
}

// AddNote appends an out-of-fiction aside.
func (s *Session) AddNote(text string) Entry {
	return s.add(KindNote, text)
}

// UnmarshalJSON tolerates older logs: entries missing an ID get a fresh
// one, entries missing a kind default to journal prose.
func (s *Session) UnmarshalJSON(data []byte) error {
	type wire Session
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	for i := range w.Entries {
		if w.Entries[i].ID == "" {
			w.Entries[i].ID = uuid.NewString()
		}
		if w.Entries[i].Kind == "" {
			w.Entries[i].Kind = KindJournal
		}
	}
	*s = Session(w)
	return nil
}
