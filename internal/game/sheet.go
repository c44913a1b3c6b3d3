package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/moves"
)

// handleChar prints the character sheet: identity, stats, tracks,
// momentum with its live bounds, debilities, assets and vows.
func handleChar(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	c := s.Character

	s.rule(c.Name)
	if c.Homeworld != "" {
		s.info("Homeworld: " + c.Homeworld)
	}
	s.info(fmt.Sprintf("Edge %d  Heart %d  Iron %d  Shadow %d  Wits %d",
		c.Stats.Edge, c.Stats.Heart, c.Stats.Iron, c.Stats.Shadow, c.Stats.Wits))
	s.info(fmt.Sprintf("Health %d/5  Spirit %d/5  Supply %d/5", c.Health(), c.Spirit(), c.Supply()))
	s.info(fmt.Sprintf("Momentum %+d (max %d, reset %d)", c.Momentum(), c.MomentumMax(), c.MomentumReset()))

	if debs := c.Debilities(); len(debs) > 0 {
		s.info("Debilities: " + strings.Join(debs, ", "))
	}

	for _, a := range c.Assets {
		s.info("Asset: " + s.assetLine(a.AssetKey))
	}

	for _, v := range s.Vows {
		status := fmt.Sprintf("progress %d/10", v.ProgressScore())
		if v.Fulfilled {
			status = "fulfilled"
		}
		s.info(fmt.Sprintf("Vow [%s] %s (%s)", v.Rank, v.Description, status))
	}
	return nil
}

// trackHandler builds the handler for one of the three fixed character
// tracks. With no argument it shows the current value; with a signed
// delta it adjusts, clamped to the track bounds.
func trackHandler(track string) HandlerFunc {
	return func(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
		current, err := s.Character.Track(track)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			s.info(fmt.Sprintf("%s: %d/5", titleCase(track), current))
			return nil
		}

		delta, err := strconv.Atoi(args[0])
		if err != nil {
			s.problem(fmt.Sprintf("Usage: /%s +1 or /%s -2", track, track))
			return nil
		}

		now, err := s.Character.AdjustTrack(track, delta)
		if err != nil {
			return err
		}
		s.mechanical(fmt.Sprintf("%s %+d -> %d/5", titleCase(track), delta, now))
		s.addMechanical(ctx, fmt.Sprintf("%s %+d (now %d/5)", titleCase(track), delta, now))
		return nil
	}
}

// handleMomentum shows or adjusts momentum. The ceiling is recomputed
// from the live debility count on every adjustment.
func handleMomentum(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	c := s.Character
	if len(args) == 0 {
		s.info(fmt.Sprintf("Momentum: %+d (max %d, reset %d)", c.Momentum(), c.MomentumMax(), c.MomentumReset()))
		return nil
	}

	delta, err := strconv.Atoi(args[0])
	if err != nil {
		s.problem("Usage: /momentum +2 or /momentum -1")
		return nil
	}

	now := c.AdjustMomentum(delta)
	s.mechanical(fmt.Sprintf("Momentum %+d -> %+d (max %d)", delta, now, c.MomentumMax()))
	s.addMechanical(ctx, fmt.Sprintf("Momentum %+d (now %+d)", delta, now))
	return nil
}

// handleBurn burns momentum to improve the most recent action roll. The
// burn is rejected when there is no roll to improve, momentum is not
// positive, the roll was already burned, or the burn would not raise
// the tier; momentum is only spent on an actual improvement.
func handleBurn(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	c := s.Character
	if s.last == nil {
		s.problem("No action roll to improve. Resolve a move first.")
		return nil
	}
	if s.last.burned {
		s.problem("Momentum was already burned on that roll.")
		return nil
	}
	if c.Momentum() <= 0 {
		s.problem(fmt.Sprintf("Momentum is %+d; only positive momentum can burn.", c.Momentum()))
		return nil
	}

	if !moves.WouldImprove(s.last.outcome, c.Momentum(), s.last.c1, s.last.c2) {
		s.warn(fmt.Sprintf("Burning momentum (%+d) would not improve the %s. Not burned.",
			c.Momentum(), strings.ToLower(outcomeLabel(s.last.outcome))))
		return nil
	}

	before := c.BurnMomentum()
	improved := moves.BurnOutcome(before, s.last.c1, s.last.c2)
	s.mechanical(fmt.Sprintf("Burned momentum (%d -> %d)", before, c.Momentum()))
	s.success(fmt.Sprintf("%s improves to %s: momentum(%d) vs [%d, %d]",
		s.last.moveName, outcomeLabel(improved), before, s.last.c1, s.last.c2))
	s.addMechanical(ctx, fmt.Sprintf("Burned momentum (%d -> %d): %s improves to %s",
		before, c.Momentum(), s.last.moveName, outcomeLabel(improved)))

	s.last.outcome = improved
	s.last.burned = true
	return nil
}

// handleDebility toggles a persistent debility. Names outside the fixed
// vocabulary are a lenient no-op with a hint, since they arrive from
// free text. With no argument, lists the active set and the vocabulary.
func handleDebility(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	c := s.Character
	if len(args) == 0 {
		active := c.Debilities()
		if len(active) == 0 {
			s.info("No debilities.")
		} else {
			s.info("Debilities: " + strings.Join(active, ", "))
		}
		s.info("Known: " + strings.Join(character.DebilityNames(), ", "))
		return nil
	}

	name := strings.ToLower(args[0])
	active, known := c.ToggleDebility(name)
	if !known {
		s.warn(fmt.Sprintf("Unknown debility '%s'. Known: %s", name, strings.Join(character.DebilityNames(), ", ")))
		return nil
	}

	verb := "cleared"
	if active {
		verb = "marked"
	}
	s.mechanical(fmt.Sprintf("Debility %s %s (momentum max %d, reset %d)",
		name, verb, c.MomentumMax(), c.MomentumReset()))
	s.addMechanical(ctx, fmt.Sprintf("Debility %s %s (momentum now %+d, max %d)",
		name, verb, c.Momentum(), c.MomentumMax()))
	return nil
}

// assetLine summarizes one equipped asset for the sheet.
func (s *State) assetLine(key string) string {
	def, ok := s.Library.Asset(key)
	if !ok {
		return key
	}
	st, _ := s.Character.Asset(key)
	line := def.Name

	if st != nil {
		unlocked := 0
		for _, u := range st.AbilitiesUnlocked {
			if u {
				unlocked++
			}
		}
		if len(st.AbilitiesUnlocked) > 0 {
			line += fmt.Sprintf(" (%d/%d abilities", unlocked, len(st.AbilitiesUnlocked))
			for _, name := range sortedTrackNames(def) {
				bounds := def.Tracks[name]
				val, has := st.TrackValues[name]
				if !has {
					val = bounds.Max
				}
				line += fmt.Sprintf(", %s %d/%d", name, val, bounds.Max)
			}
			line += ")"
		}
		if conds := st.Conditions(); len(conds) > 0 {
			line += " [" + strings.Join(conds, ", ") + "]"
		}
	}
	return line
}
