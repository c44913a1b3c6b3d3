// Package dice produces die-roll values for the rules engine.
//
// One capability interface (Provider) with three strategies selected at
// construction time:
//   - Digital: software rolls from a seeded pseudo-random source
//   - Manual: the player rolls physical dice and types the results in
//   - Mixed: digital by default, with a session toggle routing to manual
//
// Composite helpers (ActionRoll, ChallengeRoll, OracleRoll) fix the draw
// order so manual providers always prompt the player in the same sequence.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"
)

// Kind identifies one of the three die shapes the rules use.
type Kind int

const (
	// D6 is the action die.
	D6 Kind = iota
	// D10 is a challenge die.
	D10
	// D100 is the oracle die.
	D100
)

// Sides returns the face count for the kind. Rolls are always in
// [1, Sides()]. The kind set is closed; an out-of-range Kind is a
// programming error and panics.
func (k Kind) Sides() int {
	switch k {
	case D6:
		return 6
	case D10:
		return 10
	case D100:
		return 100
	default:
		panic(fmt.Sprintf("dice: unknown kind %d", int(k)))
	}
}

func (k Kind) String() string {
	switch k {
	case D6:
		return "d6"
	case D10:
		return "d10"
	case D100:
		return "d100"
	default:
		return fmt.Sprintf("d?(%d)", int(k))
	}
}

// Provider produces die values.
//
// Digital never returns an error. Manual and Mixed return an error only
// when the prompt exchange itself fails (see ErrCancelled); invalid
// input is re-prompted, never surfaced.
type Provider interface {
	Roll(kind Kind) (int, error)
}

// Source abstracts the generator behind Digital so tests and scripted
// scenarios can control exact values. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Digital rolls uniformly distributed values from a pseudo-random
// source. Every face of every kind is reachable.
type Digital struct {
	rng Source
}

var _ Provider = (*Digital)(nil)

// NewDigital creates a Digital provider seeded with entropy from
// crypto/rand.
func NewDigital() *Digital {
	return &Digital{rng: rand.New(rand.NewSource(newSeed()))}
}

// NewDigitalWithSource creates a Digital provider over a caller-supplied
// source. Used for deterministic tests and scripted playthroughs.
func NewDigitalWithSource(src Source) *Digital {
	return &Digital{rng: src}
}

// Roll returns a uniform value in [1, sides] for the kind.
func (d *Digital) Roll(kind Kind) (int, error) {
	return d.rng.Intn(kind.Sides()) + 1, nil
}

// newSeed draws a 64-bit seed from crypto/rand. Falls back to wall time
// if the entropy source fails so that NewDigital stays infallible.
func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
