// Package character owns mutable character and asset state for one
// playthrough. Every mutation clamps its target to the rule bounds at
// the call site; nothing waits for a serialization boundary to enforce
// an invariant.
//
// A Character is exclusively owned by its game session. There is no
// internal locking; callers running several characters concurrently
// serialize access to each one externally.
package character

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Bounds for the three condition tracks and for momentum.
const (
	TrackMin = 0
	TrackMax = 5

	MomentumMin       = -6
	MomentumMaxBase   = 10
	MomentumResetBase = 2
)

// Track names, the character's fixed three-track vocabulary.
const (
	TrackHealth = "health"
	TrackSpirit = "spirit"
	TrackSupply = "supply"
)

// ErrInvalidTrack reports an adjustment against a name outside the
// fixed track set. A caller error, not player input.
var ErrInvalidTrack = errors.New("invalid track")

// ErrMissingName reports a persisted character document without a
// name. Every other field has a sensible default; the name does not.
var ErrMissingName = errors.New("character name missing")

// debilityNames is the closed debility vocabulary.
var debilityNames = []string{
	"wounded",
	"shaken",
	"unprepared",
	"encumbered",
	"maimed",
	"corrupted",
}

// KnownDebility reports whether name is in the debility vocabulary,
// case-insensitively.
func KnownDebility(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range debilityNames {
		if d == name {
			return true
		}
	}
	return false
}

// DebilityNames lists the debility vocabulary in canonical order.
func DebilityNames() []string {
	return append([]string(nil), debilityNames...)
}

// Character is one playable character: identity, stat block, the three
// clamped tracks, momentum, debilities and equipped asset state.
type Character struct {
	Name      string
	Homeworld string
	Stats     Stats
	Assets    []*AssetState

	health     int
	spirit     int
	supply     int
	momentum   int
	debilities map[string]struct{}
}

// New creates a character with full tracks and baseline momentum.
func New(name string) *Character {
	return &Character{
		Name:       name,
		health:     TrackMax,
		spirit:     TrackMax,
		supply:     TrackMax,
		momentum:   MomentumResetBase,
		debilities: make(map[string]struct{}),
	}
}

// Health returns the current health track value.
func (c *Character) Health() int { return c.health }

// Spirit returns the current spirit track value.
func (c *Character) Spirit() int { return c.spirit }

// Supply returns the current supply track value.
func (c *Character) Supply() int { return c.supply }

// Momentum returns the current momentum value.
func (c *Character) Momentum() int { return c.momentum }

// Track looks a track up by name. Same vocabulary as AdjustTrack.
func (c *Character) Track(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case TrackHealth:
		return c.health, nil
	case TrackSpirit:
		return c.spirit, nil
	case TrackSupply:
		return c.supply, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTrack, name)
	}
}

// AdjustTrack applies delta to the named track, clamped to [0, 5], and
// returns the new value. Unknown names fail with ErrInvalidTrack.
func (c *Character) AdjustTrack(name string, delta int) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case TrackHealth:
		c.health = clamp(c.health+delta, TrackMin, TrackMax)
		return c.health, nil
	case TrackSpirit:
		c.spirit = clamp(c.spirit+delta, TrackMin, TrackMax)
		return c.spirit, nil
	case TrackSupply:
		c.supply = clamp(c.supply+delta, TrackMin, TrackMax)
		return c.supply, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTrack, name)
	}
}

// MomentumMax is the live momentum ceiling: 10 minus one per active
// debility, floor 0. Never cached; always derived from the current
// debility set.
func (c *Character) MomentumMax() int {
	return max(MomentumMaxBase-len(c.debilities), 0)
}

// MomentumReset is the value momentum returns to after a burn: 2, or 0
// once two or more debilities are active.
func (c *Character) MomentumReset() int {
	if len(c.debilities) >= 2 {
		return 0
	}
	return MomentumResetBase
}

// AdjustMomentum applies delta, clamped to [-6, MomentumMax], and
// returns the new value.
func (c *Character) AdjustMomentum(delta int) int {
	c.momentum = clamp(c.momentum+delta, MomentumMin, c.MomentumMax())
	return c.momentum
}

// BurnMomentum resets momentum to MomentumReset and returns the value
// it held before the burn, for narration.
func (c *Character) BurnMomentum() int {
	before := c.momentum
	c.momentum = c.MomentumReset()
	return before
}

// ToggleDebility flips the named debility and re-clamps momentum to the
// new ceiling. Unknown names are a lenient no-op with known=false, since
// debility names arrive from free-text commands. Removing a debility
// raises the ceiling but never lifts current momentum.
func (c *Character) ToggleDebility(name string) (active, known bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !KnownDebility(name) {
		return false, false
	}
	if c.debilities == nil {
		c.debilities = make(map[string]struct{})
	}
	if _, ok := c.debilities[name]; ok {
		delete(c.debilities, name)
		active = false
	} else {
		c.debilities[name] = struct{}{}
		active = true
	}
	c.momentum = clamp(c.momentum, MomentumMin, c.MomentumMax())
	return active, true
}

// HasDebility reports whether the named debility is active.
func (c *Character) HasDebility(name string) bool {
	_, ok := c.debilities[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Debilities returns the active debility names, sorted.
func (c *Character) Debilities() []string {
	out := make([]string, 0, len(c.debilities))
	for d := range c.debilities {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// DebilityCount returns the number of active debilities.
func (c *Character) DebilityCount() int {
	return len(c.debilities)
}

// Asset returns the equipped asset state for key, if present.
func (c *Character) Asset(key string) (*AssetState, bool) {
	for _, a := range c.Assets {
		if a.AssetKey == key {
			return a, true
		}
	}
	return nil, false
}

// AddAsset equips an asset. Duplicate keys are rejected by the caller;
// the character itself keeps insertion order.
func (c *Character) AddAsset(a *AssetState) {
	c.Assets = append(c.Assets, a)
}

// characterWire is the persisted document shape. Optional fields absent
// from older saves default silently; only the name is required.
type characterWire struct {
	Name       string        `json:"name"`
	Homeworld  string        `json:"homeworld,omitempty"`
	Stats      Stats         `json:"stats"`
	Health     *int          `json:"health,omitempty"`
	Spirit     *int          `json:"spirit,omitempty"`
	Supply     *int          `json:"supply,omitempty"`
	Momentum   *int          `json:"momentum,omitempty"`
	Debilities []string      `json:"debilities"`
	Assets     []*AssetState `json:"assets"`
}

// MarshalJSON writes the nested save document. Debilities serialize as
// a sorted list for reproducible diffs.
func (c *Character) MarshalJSON() ([]byte, error) {
	w := characterWire{
		Name:       c.Name,
		Homeworld:  c.Homeworld,
		Stats:      c.Stats,
		Health:     &c.health,
		Spirit:     &c.spirit,
		Supply:     &c.supply,
		Momentum:   &c.momentum,
		Debilities: c.Debilities(),
		Assets:     c.Assets,
	}
	if w.Debilities == nil {
		w.Debilities = []string{}
	}
	if w.Assets == nil {
		w.Assets = []*AssetState{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads both current and older save documents. Absent
// optional fields default (full tracks, baseline momentum, no
// debilities); a missing name fails with ErrMissingName.
func (c *Character) UnmarshalJSON(data []byte) error {
	var w characterWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("character: %w", err)
	}
	if strings.TrimSpace(w.Name) == "" {
		return ErrMissingName
	}

	fresh := Character{
		Name:       w.Name,
		Homeworld:  w.Homeworld,
		Stats:      w.Stats,
		Assets:     w.Assets,
		health:     TrackMax,
		spirit:     TrackMax,
		supply:     TrackMax,
		momentum:   MomentumResetBase,
		debilities: make(map[string]struct{}),
	}
	if w.Health != nil {
		fresh.health = clamp(*w.Health, TrackMin, TrackMax)
	}
	if w.Spirit != nil {
		fresh.spirit = clamp(*w.Spirit, TrackMin, TrackMax)
	}
	if w.Supply != nil {
		fresh.supply = clamp(*w.Supply, TrackMin, TrackMax)
	}
	for _, d := range w.Debilities {
		if KnownDebility(d) {
			fresh.debilities[strings.ToLower(d)] = struct{}{}
		}
	}
	if w.Momentum != nil {
		fresh.momentum = *w.Momentum
	}
	fresh.momentum = clamp(fresh.momentum, MomentumMin, fresh.MomentumMax())

	*c = fresh
	return nil
}

func clamp(v, lo, hi int) int {
	return max(min(v, hi), lo)
}
