package character

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// AssetState tracks one equipped asset's progression for one character:
// which abilities are unlocked, per-asset track values, free-text input
// fields and toggleable conditions. The asset definition itself lives in
// the content tables and is referenced by key, never owned here.
type AssetState struct {
	AssetKey          string
	AbilitiesUnlocked []bool
	TrackValues       map[string]int
	InputValues       map[string]string

	conditions map[string]struct{}
}

// NewAssetState creates asset state for key with the given ability
// unlock pattern (usually the definition's defaults).
func NewAssetState(key string, unlocked []bool) *AssetState {
	return &AssetState{
		AssetKey:          key,
		AbilitiesUnlocked: append([]bool(nil), unlocked...),
		TrackValues:       make(map[string]int),
		InputValues:       make(map[string]string),
		conditions:        make(map[string]struct{}),
	}
}

// SetAbility marks ability i unlocked or locked. The index must be
// within the unlock pattern.
func (a *AssetState) SetAbility(i int, unlocked bool) error {
	if i < 0 || i >= len(a.AbilitiesUnlocked) {
		return fmt.Errorf("asset %s: ability index %d out of range", a.AssetKey, i)
	}
	a.AbilitiesUnlocked[i] = unlocked
	return nil
}

// AdjustTrack applies delta to the named track under caller-supplied
// bounds and returns the new value. A track with no entry yet starts at
// the maximum before the delta applies.
func (a *AssetState) AdjustTrack(name string, delta, lo, hi int) int {
	if a.TrackValues == nil {
		a.TrackValues = make(map[string]int)
	}
	current, ok := a.TrackValues[name]
	if !ok {
		current = hi
	}
	a.TrackValues[name] = clamp(current+delta, lo, hi)
	return a.TrackValues[name]
}

// SetInput records a free-text input field value.
func (a *AssetState) SetInput(name, value string) {
	if a.InputValues == nil {
		a.InputValues = make(map[string]string)
	}
	a.InputValues[name] = value
}

// ToggleCondition lower-cases the name, flips set membership, and
// reports the resulting state (true = now active).
func (a *AssetState) ToggleCondition(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if a.conditions == nil {
		a.conditions = make(map[string]struct{})
	}
	if _, ok := a.conditions[name]; ok {
		delete(a.conditions, name)
		return false
	}
	a.conditions[name] = struct{}{}
	return true
}

// HasCondition reports whether the named condition is active.
func (a *AssetState) HasCondition(name string) bool {
	_, ok := a.conditions[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Conditions returns the active condition names, sorted.
func (a *AssetState) Conditions() []string {
	out := make([]string, 0, len(a.conditions))
	for c := range a.conditions {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// assetWire is the full persisted record shape. Older saves may instead
// hold a bare key string; UnmarshalJSON accepts both.
type assetWire struct {
	AssetKey          string            `json:"asset_key"`
	AbilitiesUnlocked []bool            `json:"abilities_unlocked"`
	TrackValues       map[string]int    `json:"track_values"`
	InputValues       map[string]string `json:"input_values"`
	Conditions        []string          `json:"conditions"`
}

// MarshalJSON writes the full record. Conditions serialize as a sorted
// list, and empty collections as empty, not null.
func (a *AssetState) MarshalJSON() ([]byte, error) {
	w := assetWire{
		AssetKey:          a.AssetKey,
		AbilitiesUnlocked: a.AbilitiesUnlocked,
		TrackValues:       a.TrackValues,
		InputValues:       a.InputValues,
		Conditions:        a.Conditions(),
	}
	if w.AbilitiesUnlocked == nil {
		w.AbilitiesUnlocked = []bool{}
	}
	if w.TrackValues == nil {
		w.TrackValues = map[string]int{}
	}
	if w.InputValues == nil {
		w.InputValues = map[string]string{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads either the legacy bare-string shape (asset key
// only, empty progression) or the full record. Absent fields default to
// empty, never fail.
func (a *AssetState) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err == nil {
		*a = *NewAssetState(key, nil)
		return nil
	}

	var w assetWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("asset state: %w", err)
	}

	fresh := AssetState{
		AssetKey:          w.AssetKey,
		AbilitiesUnlocked: w.AbilitiesUnlocked,
		TrackValues:       w.TrackValues,
		InputValues:       w.InputValues,
		conditions:        make(map[string]struct{}),
	}
	if fresh.AbilitiesUnlocked == nil {
		fresh.AbilitiesUnlocked = []bool{}
	}
	if fresh.TrackValues == nil {
		fresh.TrackValues = make(map[string]int)
	}
	if fresh.InputValues == nil {
		fresh.InputValues = make(map[string]string)
	}
	for _, c := range w.Conditions {
		fresh.conditions[strings.ToLower(c)] = struct{}{}
	}

	*a = fresh
	return nil
}
