package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCancelled reports that the player abandoned a manual die prompt
// (EOF or an interrupted reader). Invalid input never produces it; the
// prompt simply repeats.
var ErrCancelled = errors.New("dice: prompt cancelled")

// Prompter supplies values typed in by the player. Prompt blocks until
// a line is available and returns it without the trailing newline. An
// error means the exchange itself failed and the roll cannot complete.
type Prompter interface {
	Prompt(label string) (string, error)
}

// Manual asks the player for each die value, for tables rolling
// physical dice. There is no retry limit; the player controls pacing.
type Manual struct {
	prompter Prompter
}

var _ Provider = (*Manual)(nil)

// NewManual creates a Manual provider reading values through p.
func NewManual(p Prompter) *Manual {
	return &Manual{prompter: p}
}

// Roll prompts until the player supplies an integer in range for the
// kind. Non-numeric and out-of-range input re-prompts without side
// effects. Satisfies errors.Is(err, ErrCancelled) when the prompt
// exchange fails.
func (m *Manual) Roll(kind Kind) (int, error) {
	label := fmt.Sprintf("%s result (1-%d)", kind, kind.Sides())
	for {
		raw, err := m.prompter.Prompt(label)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		if value < 1 || value > kind.Sides() {
			continue
		}
		return value, nil
	}
}
