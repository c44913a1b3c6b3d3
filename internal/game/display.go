package game

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skeinworks/skein/internal/moves"
)

// Output helpers. Everything the loop prints goes through these so that
// scenario transcripts stay byte-stable and the CLI can redirect Out.

func (s *State) printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format, args...)
}

func (s *State) println(line string) {
	fmt.Fprintln(s.Out, line)
}

// info prints an indented informational line.
func (s *State) info(text string) {
	s.println("  " + text)
}

// success prints a confirmation line.
func (s *State) success(text string) {
	s.println("  ✓ " + text)
}

// warn prints a cautionary line.
func (s *State) warn(text string) {
	s.println("  ! " + text)
}

// problem prints an error line for the player.
func (s *State) problem(text string) {
	s.println("  ✗ " + text)
}

// rule prints a titled horizontal rule.
func (s *State) rule(title string) {
	s.println("── " + title + " " + strings.Repeat("─", max(0, 40-len(title))))
}

// blank prints an empty line.
func (s *State) blank() {
	s.println("")
}

// titleCase renders a lower-cased word for display ("iron" -> "Iron").
func titleCase(word string) string {
	return cases.Title(language.English).String(word)
}

// outcomeLabel is the loud display form of an outcome tier.
func outcomeLabel(o moves.Outcome) string {
	switch o {
	case moves.StrongHit:
		return "STRONG HIT"
	case moves.WeakHit:
		return "WEAK HIT"
	default:
		return "MISS"
	}
}

// moveResult prints the resolution block for an action or progress roll.
func (s *State) moveResult(name string, r moves.Result, outcomeText string) {
	scorePart := fmt.Sprintf("%d+%d+%d = %d", r.ActionDie, r.Stat, r.Adds, r.ActionScore)
	if r.BurnedMomentum {
		scorePart = fmt.Sprintf("momentum(%d)", r.MomentumUsed)
	}
	if r.ActionDie == 0 && r.Adds == 0 && !r.BurnedMomentum {
		// Progress rolls carry the score alone
		scorePart = fmt.Sprintf("progress %d", r.ActionScore)
	}

	line := fmt.Sprintf("%s: %s vs [%d, %d] -> %s", name, scorePart, r.Challenge1, r.Challenge2, outcomeLabel(r.Outcome))
	if r.Match {
		line += " (match)"
	}
	s.info(line)
	if outcomeText != "" {
		s.info(outcomeText)
	}
}

// mechanical prints a state-change line ("Health +1 -> 5/5").
func (s *State) mechanical(text string) {
	s.println("  » " + text)
}
