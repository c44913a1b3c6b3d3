package game

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/content"
	"github.com/skeinworks/skein/internal/dice"
	"github.com/skeinworks/skein/internal/journal"
	"github.com/skeinworks/skein/internal/moves"
	"github.com/skeinworks/skein/internal/savegame"
	"github.com/skeinworks/skein/internal/session"
)

// lastRoll remembers the most recent action roll so /burn can improve it
// after the inline offer was declined.
type lastRoll struct {
	moveName string
	outcome  moves.Outcome
	c1, c2   int
	burned   bool
}

// State is the live campaign for one character. It is owned by a single
// goroutine for the lifetime of a Run call; nothing here locks.
type State struct {
	Character    *character.Character
	Vows         []*character.Vow
	Session      *session.Session
	SessionCount int

	DiceMode dice.Mode
	Dice     dice.Provider
	Prompter dice.Prompter

	Library  *content.Library
	Recorder *journal.Recorder // nil disables durable journaling
	Journal  *journal.Store    // nil disables durable journaling

	SavesDir   string // autosave destination; empty disables autosave
	ExportsDir string // markdown export destination
	Slug       string // save file slug for this character

	Out io.Writer
	Log *slog.Logger

	running  bool
	unsaved  int
	last     *lastRoll
	registry *Registry
}

// Running reports whether the loop should keep reading input.
func (s *State) Running() bool { return s.running }

// Stop ends the loop after the current command completes.
func (s *State) Stop() { s.running = false }

// logger returns the state's logger, defaulting to slog's global one.
func (s *State) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// record mirrors a session entry into the durable journal, if attached.
// Journal failures are reported but never interrupt play.
func (s *State) record(ctx context.Context, e session.Entry) {
	if s.Recorder == nil {
		return
	}
	if err := s.Recorder.Record(ctx, e); err != nil {
		s.logger().Warn("journal write failed", "error", err)
	}
}

// addJournal appends plain prose to the session and the journal.
func (s *State) addJournal(ctx context.Context, text string) {
	s.record(ctx, s.Session.AddJournal(text))
	s.unsaved++
}

// addMove appends a move-result line to the session and the journal.
func (s *State) addMove(ctx context.Context, text string) {
	s.record(ctx, s.Session.AddMove(text))
}

// addOracle appends an oracle-result line to the session and the journal.
func (s *State) addOracle(ctx context.Context, text string) {
	s.record(ctx, s.Session.AddOracle(text))
}

// addMechanical appends a state-change line to the session and the journal.
func (s *State) addMechanical(ctx context.Context, text string) {
	s.record(ctx, s.Session.AddMechanical(text))
}

// addNote appends a scene note to the session and the journal.
func (s *State) addNote(ctx context.Context, text string) {
	s.record(ctx, s.Session.AddNote(text))
}

// document assembles the persistable campaign state.
func (s *State) document() *savegame.Document {
	return &savegame.Document{
		Character:    s.Character,
		Vows:         s.Vows,
		SessionCount: s.SessionCount,
		Settings:     savegame.Settings{DiceMode: string(s.DiceMode)},
	}
}

// autosave persists the campaign after a mutating command. Failures are
// reported but never interrupt play; /end performs the loud save.
func (s *State) autosave() {
	if s.SavesDir == "" || s.Slug == "" {
		return
	}
	if err := savegame.Save(s.SavesDir, s.Slug, s.document()); err != nil {
		s.logger().Warn("autosave failed", "slug", s.Slug, "error", err)
		s.warn("Autosave failed: " + err.Error())
	} else {
		s.unsaved = 0
	}
}

// activeVows returns the character's unfulfilled vows in creation order.
func (s *State) activeVows() []*character.Vow {
	active := []*character.Vow{}
	for _, v := range s.Vows {
		if !v.Fulfilled {
			active = append(active, v)
		}
	}
	return active
}

// prompt asks the player a free-text question. An error means the input
// stream ended; callers treat it as cancellation.
func (s *State) prompt(label string) (string, error) {
	if s.Prompter == nil {
		return "", dice.ErrCancelled
	}
	answer, err := s.Prompter.Prompt(label)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// promptDefault asks with a default used when the player answers blank.
func (s *State) promptDefault(label, def string) (string, error) {
	answer, err := s.prompt(label + " [" + def + "]")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// confirm asks a yes/no question. Blank takes the default; anything
// starting with y (case-insensitive) is yes.
func (s *State) confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	answer, err := s.prompt(label + " [" + hint + "]")
	if err != nil {
		return false, err
	}
	if answer == "" {
		return def, nil
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// promptInt asks for an integer, returning def on blank input and
// ok=false on unparseable input.
func (s *State) promptInt(label string, def int) (n int, ok bool, err error) {
	answer, err := s.prompt(label)
	if err != nil {
		return 0, false, err
	}
	if answer == "" {
		return def, true, nil
	}
	n, perr := strconv.Atoi(answer)
	if perr != nil {
		return 0, false, nil
	}
	return n, true, nil
}
