package game

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/command"
	"github.com/skeinworks/skein/internal/content"
	"github.com/skeinworks/skein/internal/dice"
	"github.com/skeinworks/skein/internal/session"
)

// testLibrary builds a small merged-content stand-in covering each
// entity kind the handlers touch.
func testLibrary() *content.Library {
	return &content.Library{
		Oracles: map[string]*content.Oracle{
			"action": {
				Key: "action", Name: "Action", Category: "Core",
				Rows: []content.Row{
					{Floor: 1, Ceiling: 50, Text: "Overwhelm"},
					{Floor: 51, Ceiling: 100, Text: "Persevere"},
				},
			},
			"pay_the_price": {
				Key: "pay_the_price", Name: "Pay the Price", Category: "Core",
				Rows: []content.Row{
					{Floor: 1, Ceiling: 100, Text: "It gets worse."},
				},
			},
		},
		Moves: map[string]*content.Move{
			"strike": {
				Key: "strike", Name: "Strike", Category: "Combat",
				Stats:            []string{"iron", "edge"},
				MomentumOnStrong: 1,
				Outcomes: content.MoveOutcomes{
					StrongHit: "You hit hard.",
					WeakHit:   "You trade blows.",
					Miss:      "You are outmatched.",
				},
			},
			"secure_an_advantage": {
				Key: "secure_an_advantage", Name: "Secure an Advantage", Category: "Adventure",
				Stats:            []string{"wits"},
				MomentumOnStrong: 2,
				MomentumOnWeak:   1,
			},
			"fulfill_your_vow": {
				Key: "fulfill_your_vow", Name: "Fulfill Your Vow", Category: "Quest",
				ProgressMove: true,
			},
		},
		Assets: map[string]*content.Asset{
			"starship": {
				Key: "starship", Name: "Starship", Category: "Command Vehicle",
				Description: "A patched-up interstellar ship.",
				Abilities: []content.Ability{
					{Text: "Your ship gets you there.", Enabled: true},
					{Text: "Shake off pursuit.", Enabled: false},
					{Text: "Ram them.", Enabled: false},
				},
				Tracks: map[string]content.TrackBounds{"integrity": {Min: 0, Max: 5}},
				Inputs: []string{"name"},
			},
			"hound": {
				Key: "hound", Name: "Hound", Category: "Companion",
				Abilities: []content.Ability{{Text: "Your hound tracks scents.", Enabled: true}},
				Tracks:    map[string]content.TrackBounds{"health": {Min: 0, Max: 3}},
			},
		},
	}
}

// newTestState assembles a State with a scripted provider, no durable
// journal and no autosave, capturing output in the returned buffer.
func newTestState(provider dice.Provider, prompter dice.Prompter) (*State, *bytes.Buffer) {
	c := character.New("Vessa")
	c.Stats = character.Stats{Edge: 2, Heart: 1, Iron: 3, Shadow: 1, Wits: 2}

	buf := &bytes.Buffer{}
	return &State{
		Character:    c,
		Session:      session.New(1),
		SessionCount: 1,
		DiceMode:     dice.ModeDigital,
		Dice:         provider,
		Prompter:     prompter,
		Library:      testLibrary(),
		Out:          buf,
		Log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, buf
}

// dispatch parses one line and routes it through a fresh registry.
func dispatch(t *testing.T, s *State, line string) {
	t.Helper()
	reg := NewRegistry()
	s.registry = reg
	cmd := command.Parse(line)
	require.NotNil(t, cmd, "line %q did not parse as a command", line)
	reg.Dispatch(context.Background(), s, cmd)
}

// entryTexts flattens the session log for assertions.
func entryTexts(s *session.Session) []string {
	texts := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		texts[i] = e.Text
	}
	return texts
}
