package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/skeinworks/skein/internal/command"
)

// Run drives the play loop: print the session header, then read lines
// until /quit, /end, or end of input. Plain text becomes journal prose;
// slash-commands dispatch through the registry.
func Run(ctx context.Context, s *State, in io.Reader) error {
	if s.Out == nil {
		return fmt.Errorf("game: state has no output writer")
	}
	return RunWith(ctx, s, in, NewRegistry())
}

// RunWith is Run with a caller-supplied registry, used by tests and
// scenarios that install extra commands.
//
// When in is already a *bufio.Reader it is used directly, so a caller
// whose Prompter reads the same underlying stream (the terminal) can
// share one buffer: the loop and the prompts then consume lines in
// strict alternation without stealing each other's input.
func RunWith(ctx context.Context, s *State, in io.Reader, reg *Registry) error {
	s.running = true
	s.registry = reg

	s.rule(fmt.Sprintf("Session %d", s.SessionCount))
	s.info(fmt.Sprintf("Character: %s  |  Dice: %s", s.Character.Name, s.DiceMode))
	s.info("Type to journal. /help for commands.")
	s.blank()

	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}

	for s.running {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("game: read input: %w", err)
		}

		if text := strings.TrimSpace(line); text != "" {
			if cmd := command.Parse(text); cmd != nil {
				reg.Dispatch(ctx, s, cmd)
			} else {
				// Plain prose goes straight to the journal
				s.addJournal(ctx, text)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}

	// Input ended without /end or /quit
	if s.running {
		s.interrupted()
	}
	return nil
}

// interrupted reports an abrupt end of input, nudging toward /end when
// journal prose has not been saved.
func (s *State) interrupted() {
	s.blank()
	if s.unsaved > 0 {
		plural := "ies"
		if s.unsaved == 1 {
			plural = "y"
		}
		s.warn(fmt.Sprintf("Session interrupted with %d unsaved journal entr%s. Use /end to save.", s.unsaved, plural))
		return
	}
	s.info("Session interrupted. Use /end to save.")
}
