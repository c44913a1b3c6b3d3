package game

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/content"
)

// handleAsset browses the asset library and works equipped assets.
//
//	/asset                          list equipped assets
//	/asset find <query>             browse the library
//	/asset add <query>              equip an asset with its defaults
//	/asset <query>                  show one equipped asset
//	/asset <query> ability <n>      toggle ability n (1-based)
//	/asset <query> track <name> <delta>
//	/asset <query> condition <name>
//	/asset <query> input <field> <text...>
func handleAsset(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	if len(args) == 0 {
		if len(s.Character.Assets) == 0 {
			s.info("No assets equipped. /asset find <query> to browse, /asset add <query> to equip.")
			return nil
		}
		s.rule("Assets")
		for _, a := range s.Character.Assets {
			s.info(s.assetLine(a.AssetKey))
		}
		return nil
	}

	switch args[0] {
	case "find", "browse":
		return s.assetFind(strings.Join(args[1:], " "))
	case "add", "equip":
		return s.assetAdd(ctx, strings.Join(args[1:], " "))
	}

	st, def := s.resolveEquipped(args[0])
	if st == nil {
		return nil
	}
	rest := args[1:]

	if len(rest) == 0 {
		s.printAsset(def, st)
		return nil
	}

	switch rest[0] {
	case "ability":
		return s.assetAbility(ctx, st, def, rest[1:])
	case "track":
		return s.assetTrack(ctx, st, def, rest[1:])
	case "condition":
		return s.assetCondition(ctx, st, def, rest[1:])
	case "input":
		return s.assetInput(ctx, st, def, rest[1:])
	default:
		s.problem(fmt.Sprintf("Unknown asset action '%s'. Try ability, track, condition or input.", rest[0]))
		return nil
	}
}

// assetFind lists library assets matching the query, or every asset
// grouped by category when the query is empty.
func (s *State) assetFind(query string) error {
	var matches []*content.Asset
	if query == "" {
		for _, key := range s.Library.AssetKeys() {
			a, _ := s.Library.Asset(key)
			matches = append(matches, a)
		}
	} else {
		matches = s.Library.MatchAssets(query)
	}
	if len(matches) == 0 {
		s.warn(fmt.Sprintf("No assets match '%s'.", query))
		return nil
	}

	s.rule("Asset Library")
	for _, a := range matches {
		line := a.Name
		if a.Category != "" {
			line += " (" + a.Category + ")"
		}
		s.info(line + " - /asset add " + a.Key)
	}
	return nil
}

// assetAdd equips the uniquely matching asset with its default ability
// unlocks and no track spend.
func (s *State) assetAdd(ctx context.Context, query string) error {
	if query == "" {
		s.problem("Usage: /asset add <name>")
		return nil
	}
	matches := s.Library.MatchAssets(query)
	if len(matches) == 0 {
		s.problem(fmt.Sprintf("No assets match '%s'.", query))
		return nil
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, a := range matches {
			names[i] = a.Key
		}
		s.warn(fmt.Sprintf("Multiple matches: %s. Be more specific.", strings.Join(names, ", ")))
		return nil
	}
	def := matches[0]

	if _, equipped := s.Character.Asset(def.Key); equipped {
		s.warn(fmt.Sprintf("%s is already equipped.", def.Name))
		return nil
	}

	s.Character.AddAsset(character.NewAssetState(def.Key, def.DefaultUnlocks()))
	s.success("Equipped " + def.Name)
	s.addMechanical(ctx, "Equipped asset: "+def.Name)
	return nil
}

// resolveEquipped finds one equipped asset by fuzzy query. Reports the
// problem itself and returns nil state when nothing or more than one
// matches.
func (s *State) resolveEquipped(query string) (*character.AssetState, *content.Asset) {
	q := content.Normalize(query)
	var found *character.AssetState
	ambiguous := false
	for _, a := range s.Character.Assets {
		key := content.Normalize(a.AssetKey)
		name := key
		if def, ok := s.Library.Asset(a.AssetKey); ok {
			name = content.Normalize(def.Name)
		}
		if strings.Contains(key, q) || strings.Contains(name, q) {
			if found != nil {
				ambiguous = true
			}
			found = a
		}
	}

	if found == nil {
		s.problem(fmt.Sprintf("No equipped asset matches '%s'. /asset lists what you carry.", query))
		return nil, nil
	}
	if ambiguous {
		s.warn(fmt.Sprintf("More than one equipped asset matches '%s'. Be more specific.", query))
		return nil, nil
	}

	def, ok := s.Library.Asset(found.AssetKey)
	if !ok {
		// Equipped from a content set no longer loaded; operate blind.
		def = &content.Asset{Key: found.AssetKey, Name: found.AssetKey}
	}
	return found, def
}

// printAsset renders one equipped asset in full.
func (s *State) printAsset(def *content.Asset, st *character.AssetState) {
	s.rule(def.Name)
	if def.Description != "" {
		s.info(def.Description)
	}
	for i, ab := range def.Abilities {
		mark := "[ ]"
		if i < len(st.AbilitiesUnlocked) && st.AbilitiesUnlocked[i] {
			mark = "[x]"
		}
		s.info(fmt.Sprintf("%s %d. %s", mark, i+1, ab.Text))
	}
	for _, name := range sortedTrackNames(def) {
		bounds := def.Tracks[name]
		val, ok := st.TrackValues[name]
		if !ok {
			val = bounds.Max
		}
		s.info(fmt.Sprintf("%s: %d/%d", titleCase(name), val, bounds.Max))
	}
	for _, input := range def.Inputs {
		if v := st.InputValues[input]; v != "" {
			s.info(fmt.Sprintf("%s: %s", titleCase(input), v))
		} else {
			s.info(fmt.Sprintf("%s: (unset, /asset %s input %s <text>)", titleCase(input), def.Key, input))
		}
	}
	if conds := st.Conditions(); len(conds) > 0 {
		s.info("Conditions: " + strings.Join(conds, ", "))
	}
}

// assetAbility toggles one numbered ability.
func (s *State) assetAbility(ctx context.Context, st *character.AssetState, def *content.Asset, args []string) error {
	if len(args) == 0 {
		s.problem(fmt.Sprintf("Usage: /asset %s ability <number>", def.Key))
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(st.AbilitiesUnlocked) {
		s.problem(fmt.Sprintf("Ability number must be 1-%d.", len(st.AbilitiesUnlocked)))
		return nil
	}

	unlocked := !st.AbilitiesUnlocked[n-1]
	if err := st.SetAbility(n-1, unlocked); err != nil {
		return err
	}
	verb := "locked"
	if unlocked {
		verb = "unlocked"
	}
	s.mechanical(fmt.Sprintf("%s ability %d %s", def.Name, n, verb))
	s.addMechanical(ctx, fmt.Sprintf("%s: ability %d %s", def.Name, n, verb))
	return nil
}

// assetTrack adjusts one asset track under the definition's bounds. A
// track never touched before starts at the definition maximum.
func (s *State) assetTrack(ctx context.Context, st *character.AssetState, def *content.Asset, args []string) error {
	if len(args) < 2 {
		s.problem(fmt.Sprintf("Usage: /asset %s track <name> <delta>", def.Key))
		return nil
	}
	name := strings.ToLower(args[0])
	bounds, ok := def.Tracks[name]
	if !ok {
		known := sortedTrackNames(def)
		if len(known) == 0 {
			s.problem(fmt.Sprintf("%s has no tracks.", def.Name))
		} else {
			s.problem(fmt.Sprintf("%s has no track '%s'. Tracks: %s", def.Name, name, strings.Join(known, ", ")))
		}
		return nil
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		s.problem(fmt.Sprintf("Usage: /asset %s track %s +1 or -1", def.Key, name))
		return nil
	}

	now := st.AdjustTrack(name, delta, bounds.Min, bounds.Max)
	s.mechanical(fmt.Sprintf("%s %s %+d -> %d/%d", def.Name, name, delta, now, bounds.Max))
	s.addMechanical(ctx, fmt.Sprintf("%s: %s %+d (now %d/%d)", def.Name, name, delta, now, bounds.Max))
	return nil
}

// assetCondition toggles a named condition on the asset.
func (s *State) assetCondition(ctx context.Context, st *character.AssetState, def *content.Asset, args []string) error {
	if len(args) == 0 {
		s.problem(fmt.Sprintf("Usage: /asset %s condition <name>", def.Key))
		return nil
	}
	name := strings.ToLower(args[0])
	active := st.ToggleCondition(name)
	verb := "cleared"
	if active {
		verb = "marked"
	}
	s.mechanical(fmt.Sprintf("%s condition %s %s", def.Name, name, verb))
	s.addMechanical(ctx, fmt.Sprintf("%s: condition %s %s", def.Name, name, verb))
	return nil
}

// assetInput records a free-text input field value.
func (s *State) assetInput(ctx context.Context, st *character.AssetState, def *content.Asset, args []string) error {
	if len(args) < 2 {
		s.problem(fmt.Sprintf("Usage: /asset %s input <field> <text>", def.Key))
		return nil
	}
	field := strings.ToLower(args[0])
	value := strings.Join(args[1:], " ")
	st.SetInput(field, value)
	s.success(fmt.Sprintf("%s %s = %s", def.Name, field, value))
	s.addMechanical(ctx, fmt.Sprintf("%s: %s = %s", def.Name, field, value))
	return nil
}

// sortedTrackNames lists an asset definition's track names in stable
// order for display.
func sortedTrackNames(def *content.Asset) []string {
	names := make([]string, 0, len(def.Tracks))
	for name := range def.Tracks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
