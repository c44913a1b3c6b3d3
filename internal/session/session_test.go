package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AddStampsEntries(t *testing.T) {
	s := New(1)

	e := s.AddMove("Face Danger: strong hit")
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, KindMove, e.Kind)
	assert.False(t, e.At.IsZero())

	s.AddNote("remember the derelict")
	require.Len(t, s.Entries, 2)
	assert.Equal(t, KindNote, s.Entries[1].Kind)
}

func TestSession_EntryIDsUnique(t *testing.T) {
	s := New(1)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		e := s.AddJournal("line")
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
	}
}

func TestSession_JSONRoundTrip(t *testing.T) {
	s := New(3)
	s.Title = "Into the Expanse"
	s.AddOracle("Action: Advance")
	s.AddMechanical("health 5 -> 4")

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back Session
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 3, back.Number)
	assert.Equal(t, "Into the Expanse", back.Title)
	require.Len(t, back.Entries, 2)
	assert.Equal(t, s.Entries[0].ID, back.Entries[0].ID)
	assert.Equal(t, KindOracle, back.Entries[0].Kind)
}

func TestSession_UnmarshalOlderLogDefaults(t *testing.T) {
	older := `{
		"number": 1,
		"entries": [
			{"text": "just prose, no id or kind"},
			{"id": "fixed", "kind": "move", "text": "kept"}
		]
	}`

	var s Session
	require.NoError(t, json.Unmarshal([]byte(older), &s))

	require.Len(t, s.Entries, 2)
	assert.NotEmpty(t, s.Entries[0].ID, "missing id is backfilled")
	assert.Equal(t, KindJournal, s.Entries[0].Kind, "missing kind defaults to journal")
	assert.Equal(t, "fixed", s.Entries[1].ID)
	assert.Equal(t, KindMove, s.Entries[1].Kind)
}
