package scenario

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/content"
	"github.com/skeinworks/skein/internal/dice"
	"github.com/skeinworks/skein/internal/game"
	"github.com/skeinworks/skein/internal/session"
	"github.com/skeinworks/skein/internal/testutil"
)

// Result is one finished scenario run.
type Result struct {
	// Transcript is everything the play loop printed, byte for byte.
	Transcript string

	// Missing lists expected fragments absent from the transcript, in
	// scenario order. Empty means the scenario passed.
	Missing []string

	// DiceLeft and AnswersLeft count scripted values the run never
	// consumed. Leftovers usually mean the script and the input lines
	// drifted apart.
	DiceLeft    int
	AnswersLeft int
}

// Passed reports whether every expected fragment appeared.
func (r *Result) Passed() bool {
	return len(r.Missing) == 0
}

// Run plays a scenario against the library: build the character, wire a
// scripted provider and prompter, feed the input lines through the game
// loop, and check the transcript for the expected fragments.
//
// No saves directory, journal, or export directory is attached, so a
// scenario run never touches disk.
func Run(ctx context.Context, sc *Scenario, lib *content.Library) (*Result, error) {
	c := character.New(sc.Character.Name)
	c.Homeworld = sc.Character.Homeworld
	c.Stats = character.Stats{
		Edge:   sc.Character.Stats.Edge,
		Heart:  sc.Character.Stats.Heart,
		Iron:   sc.Character.Stats.Iron,
		Shadow: sc.Character.Stats.Shadow,
		Wits:   sc.Character.Stats.Wits,
	}
	if m := sc.Character.Momentum; m != nil {
		c.AdjustMomentum(*m - c.Momentum())
	}
	for _, key := range sc.Character.Assets {
		def, ok := lib.Asset(key)
		if !ok {
			return nil, fmt.Errorf("scenario %q: asset %q not in the loaded content", sc.Name, key)
		}
		c.AddAsset(character.NewAssetState(def.Key, def.DefaultUnlocks()))
	}

	provider := testutil.NewScriptedDice(sc.Dice...)
	prompter := testutil.NewScriptedPrompter(sc.Answers...)

	var out bytes.Buffer
	s := &game.State{
		Character:    c,
		Session:      session.New(1),
		SessionCount: 1,
		DiceMode:     dice.ModeDigital,
		Dice:         provider,
		Prompter:     prompter,
		Library:      lib,
		Out:          &out,
		Log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	in := strings.NewReader(strings.Join(sc.Input, "\n") + "\n")
	if err := game.Run(ctx, s, in); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	r := &Result{
		Transcript:  out.String(),
		DiceLeft:    provider.Remaining(),
		AnswersLeft: prompter.Remaining(),
	}
	for _, want := range sc.Expect {
		if !strings.Contains(r.Transcript, want) {
			r.Missing = append(r.Missing, want)
		}
	}
	return r, nil
}
