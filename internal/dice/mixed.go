package dice

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects a Provider strategy by name.
type Mode string

const (
	// ModeDigital rolls everything in software.
	ModeDigital Mode = "digital"
	// ModePhysical prompts the player for every die.
	ModePhysical Mode = "physical"
	// ModeMixed rolls in software until manual entry is toggled on.
	ModeMixed Mode = "mixed"
)

// ErrUnknownMode reports a mode name outside the known set.
var ErrUnknownMode = errors.New("dice: unknown mode")

// ParseMode resolves a mode name case-insensitively, trimming
// surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeDigital, ModePhysical, ModeMixed:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Mixed delegates to Digital until SetManual(true) routes rolls to the
// player. The toggle is session-scoped; it stays in effect until turned
// off, not per roll.
//
// Mixed is owned by a single game session and is not safe for
// concurrent use.
type Mixed struct {
	digital   *Digital
	manual    *Manual
	useManual bool
}

var _ Provider = (*Mixed)(nil)

// NewMixed creates a Mixed provider prompting through p while manual
// entry is on.
func NewMixed(p Prompter) *Mixed {
	return &Mixed{digital: NewDigital(), manual: NewManual(p)}
}

// SetManual routes subsequent rolls to the player while on.
func (x *Mixed) SetManual(on bool) {
	x.useManual = on
}

// ManualMode reports whether rolls currently go to the player.
func (x *Mixed) ManualMode() bool {
	return x.useManual
}

func (x *Mixed) Roll(kind Kind) (int, error) {
	if x.useManual {
		return x.manual.Roll(kind)
	}
	return x.digital.Roll(kind)
}

// NewProvider builds the provider for a mode. Physical and mixed modes
// read through the prompter; passing a nil prompter for those is
// rejected.
func NewProvider(mode Mode, prompter Prompter) (Provider, error) {
	switch mode {
	case ModeDigital:
		return NewDigital(), nil
	case ModePhysical:
		if prompter == nil {
			return nil, fmt.Errorf("dice: %s mode requires a prompter", mode)
		}
		return NewManual(prompter), nil
	case ModeMixed:
		if prompter == nil {
			return nil, fmt.Errorf("dice: %s mode requires a prompter", mode)
		}
		return NewMixed(prompter), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
