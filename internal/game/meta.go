package game

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skeinworks/skein/internal/command"
	"github.com/skeinworks/skein/internal/dice"
	"github.com/skeinworks/skein/internal/journal"
	"github.com/skeinworks/skein/internal/savegame"
	"github.com/skeinworks/skein/internal/session"
)

// handleRoll rolls raw dice outside any move: /roll d6, /roll 2d10 d100.
func handleRoll(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	if len(args) == 0 {
		s.problem("Usage: /roll <dice>  (e.g. /roll d6, /roll 2d10 d100)")
		return nil
	}

	var parts []string
	for _, expr := range args {
		count, kind, err := dice.ParseExpr(expr)
		if err != nil {
			s.problem(fmt.Sprintf("Bad dice expression '%s'. Use d6, d10, d100 or 2d10.", expr))
			return nil
		}
		values := make([]string, count)
		for i := 0; i < count; i++ {
			v, err := s.Dice.Roll(kind)
			if err != nil {
				return cancelled(s, "Roll cancelled.", err)
			}
			values[i] = fmt.Sprintf("%d", v)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", kind, strings.Join(values, ", ")))
	}

	line := strings.Join(parts, "  |  ")
	s.info(line)
	s.addMechanical(ctx, "Rolled "+line)
	return nil
}

// handleNote records an out-of-fiction aside.
func handleNote(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	if len(args) == 0 {
		s.problem("Usage: /note <text>")
		return nil
	}
	text := strings.Join(args, " ")
	s.info("~ " + text)
	s.addNote(ctx, text)
	return nil
}

// handleLog prints this session's entries so far, oldest first.
func handleLog(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	s.rule(fmt.Sprintf("Session %d Log", s.Session.Number))
	if len(s.Session.Entries) == 0 {
		s.info("Nothing logged yet.")
		return nil
	}
	for _, e := range s.Session.Entries {
		if e.Kind == session.KindJournal {
			s.info(e.Text)
			continue
		}
		s.info(fmt.Sprintf("[%s] %s", e.Kind, e.Text))
	}
	return nil
}

// handleHelp shows command help, or browses loaded content:
// /help, /help <command>, /help moves, /help oracles, /help assets.
func handleHelp(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	if len(args) == 0 {
		s.rule("Commands")
		for _, name := range s.registry.Names() {
			s.info(fmt.Sprintf("/%-11s %s", name, s.registry.Help(name)))
		}
		s.info("Anything without a leading / is journaled as prose.")
		return nil
	}

	switch topic := strings.ToLower(args[0]); topic {
	case "moves":
		s.listMoves()
	case "oracles":
		s.listOracles()
	case "assets":
		return s.assetFind("")
	default:
		name := topic
		if canonical, ok := command.Aliases()[name]; ok {
			name = canonical
		}
		if match, found := command.FuzzyMatch(name, s.registry.Names()); found {
			name = match
		}
		help := s.registry.Help(name)
		if help == "" {
			s.problem(fmt.Sprintf("No help for '%s'. /help lists commands.", topic))
			return nil
		}
		s.info(fmt.Sprintf("/%s: %s", name, help))
	}
	return nil
}

// listMoves prints every loaded move grouped by category.
func (s *State) listMoves() {
	byCategory := map[string][]string{}
	for _, key := range s.Library.MoveKeys() {
		m, _ := s.Library.Move(key)
		cat := m.Category
		if cat == "" {
			cat = "Other"
		}
		byCategory[cat] = append(byCategory[cat], m.Name)
	}

	cats := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	s.rule("Moves")
	for _, cat := range cats {
		s.info(fmt.Sprintf("%s: %s", cat, strings.Join(byCategory[cat], "  ")))
	}
	s.info("Usage: /move <name>  (fuzzy matched)")
}

// handleSettings shows or changes campaign settings.
//
//	/settings             show current settings
//	/settings dice mixed  switch the dice provider
func handleSettings(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	if len(args) == 0 {
		s.rule("Settings")
		s.info(fmt.Sprintf("Dice: %s", s.DiceMode))
		s.info(fmt.Sprintf("Content: %d oracles, %d moves, %d assets (%d overridden)",
			len(s.Library.Oracles), len(s.Library.Moves), len(s.Library.Assets), s.Library.Counts.Shadowed))
		s.info("Usage: /settings dice <digital|physical|mixed>")
		return nil
	}

	if strings.ToLower(args[0]) != "dice" || len(args) < 2 {
		s.problem("Usage: /settings dice <digital|physical|mixed>")
		return nil
	}

	mode, err := dice.ParseMode(args[1])
	if err != nil {
		s.problem(fmt.Sprintf("Unknown dice mode '%s'. Modes: digital, physical, mixed.", args[1]))
		return nil
	}
	provider, err := dice.NewProvider(mode, s.Prompter)
	if err != nil {
		s.problem(fmt.Sprintf("Cannot switch dice: %v", err))
		return nil
	}

	s.Dice = provider
	s.DiceMode = mode
	s.success(fmt.Sprintf("Dice mode set to %s.", mode))
	return nil
}

// handleNewSession closes the current session and begins the next one.
// The old session's entries are already durable in the journal; the new
// session gets a fresh recorder resuming after the last sequence.
func handleNewSession(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	title := strings.Join(args, " ")

	s.SessionCount++
	s.Session = session.New(s.SessionCount)
	s.Session.Title = title

	if s.Journal != nil {
		rec, err := journal.NewRecorder(ctx, s.Journal, s.SessionCount, title, s.Session.StartedAt)
		if err != nil {
			return fmt.Errorf("start session %d: %w", s.SessionCount, err)
		}
		s.Recorder = rec
	}

	s.blank()
	s.rule(fmt.Sprintf("Session %d", s.SessionCount))
	if title != "" {
		s.info(title)
	}
	return nil
}

// handleEnd ends the sitting: save loudly, export the session log, and
// stop the loop. A failed save keeps the loop alive so nothing typed is
// lost silently.
func handleEnd(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	if s.SavesDir != "" && s.Slug != "" {
		if err := savegame.Save(s.SavesDir, s.Slug, s.document()); err != nil {
			s.problem(fmt.Sprintf("Save failed: %v. Fix it and /end again, or /quit to discard.", err))
			return nil
		}
		s.unsaved = 0
		s.success("Saved " + s.Character.Name + ".")
	}

	s.exportSession()
	s.info("Session ended.")
	s.Stop()
	return nil
}

// exportSession writes the session log as markdown under the exports
// directory. Export failures warn; they never block ending the session.
func (s *State) exportSession() {
	if s.ExportsDir == "" || len(s.Session.Entries) == 0 {
		return
	}
	if err := os.MkdirAll(s.ExportsDir, 0o755); err != nil {
		s.warn(fmt.Sprintf("Export failed: %v", err))
		return
	}

	name := fmt.Sprintf("session_%02d_%s.md", s.Session.Number, s.Slug)
	path := filepath.Join(s.ExportsDir, name)
	f, err := os.Create(path)
	if err != nil {
		s.warn(fmt.Sprintf("Export failed: %v", err))
		return
	}
	defer f.Close()

	if err := journal.ExportMarkdown(f, s.Session, s.Character.Name); err != nil {
		s.warn(fmt.Sprintf("Export failed: %v", err))
		return
	}
	s.success("Exported session log to " + path)
}

// handleQuit stops the loop without saving.
func handleQuit(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	if s.unsaved > 0 {
		s.warn(fmt.Sprintf("Discarding %d unsaved journal entries.", s.unsaved))
	}
	s.info("Until next time.")
	s.Stop()
	return nil
}
