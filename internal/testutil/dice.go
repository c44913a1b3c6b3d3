// Package testutil provides deterministic test doubles for play-loop tests.
package testutil

import (
	"fmt"
	"sync"

	"github.com/skeinworks/skein/internal/dice"
)

// ScriptedDice is a dice.Provider that returns a fixed script of values.
//
// Each Roll pops the next value regardless of die kind, so a script is
// written in the exact order the code under test rolls: an action roll
// consumes three values (d6, d10, d10), an oracle roll one.
//
// Unlike dice.Digital, ScriptedDice can be reset for test reuse. The same
// scenario with the same script produces identical results every run.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type ScriptedDice struct {
	mu     sync.Mutex
	script []int
	next   int
}

// NewScriptedDice creates a provider that plays back the given values.
func NewScriptedDice(values ...int) *ScriptedDice {
	return &ScriptedDice{script: values}
}

// Roll returns the next scripted value. Values are not validated against
// the die kind; a script may deliberately hold out-of-range values to
// exercise error paths. Returns an error when the script runs out.
func (d *ScriptedDice) Roll(kind dice.Kind) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.next >= len(d.script) {
		return 0, fmt.Errorf("dice script exhausted after %d rolls (wanted %s)", d.next, kind)
	}
	v := d.script[d.next]
	d.next++
	return v, nil
}

// Remaining returns how many scripted values are left unconsumed.
func (d *ScriptedDice) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.script) - d.next
}

// Reset rewinds the script to the beginning for test reuse.
func (d *ScriptedDice) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next = 0
}

var _ dice.Provider = (*ScriptedDice)(nil)
