package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/dice"
	"github.com/skeinworks/skein/internal/moves"
)

// handleVow swears a new vow or, with no arguments, lists current ones.
//
//	/vow dangerous Find the lost beacon
func handleVow(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	if len(args) == 0 {
		if len(s.Vows) == 0 {
			s.info("No vows sworn. /vow <rank> <description> to swear one.")
			s.info("Ranks: " + strings.Join(character.RankNames(), ", "))
			return nil
		}
		s.rule("Vows")
		for _, v := range s.Vows {
			status := fmt.Sprintf("%d ticks, progress %d/10", v.Ticks, v.ProgressScore())
			if v.Fulfilled {
				status = "fulfilled"
			}
			s.info(fmt.Sprintf("[%s] %s (%s)", v.Rank, v.Description, status))
		}
		return nil
	}

	if len(args) < 2 {
		s.problem("Usage: /vow <rank> <description>  (e.g. /vow dangerous Find the beacon)")
		s.info("Ranks: " + strings.Join(character.RankNames(), ", "))
		return nil
	}

	rank, err := character.ParseRank(args[0])
	if err != nil {
		s.problem(fmt.Sprintf("Unknown rank '%s'. Ranks: %s", args[0], strings.Join(character.RankNames(), ", ")))
		return nil
	}

	description := strings.Join(args[1:], " ")
	vow, err := character.NewVow(description, rank)
	if err != nil {
		return err
	}
	s.Vows = append(s.Vows, vow)

	s.success(fmt.Sprintf("Vow sworn [%s]: %s", rank, description))
	s.addMechanical(ctx, fmt.Sprintf("Vow sworn [%s]: %s", rank, description))
	return nil
}

// handleProgress marks progress on an active vow, advancing its track
// by the rank's tick value.
func handleProgress(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	vow, err := s.chooseVow(strings.Join(args, " "))
	if err != nil {
		return cancelled(s, "Progress cancelled.", err)
	}
	if vow == nil {
		return nil
	}

	ticks := vow.MarkProgress()
	s.mechanical(fmt.Sprintf("Progress on '%s': %d/40 ticks (progress %d/10)",
		vow.Description, ticks, vow.ProgressScore()))
	s.addMechanical(ctx, fmt.Sprintf("Marked progress on '%s' (%d/40 ticks, progress %d/10)",
		vow.Description, ticks, vow.ProgressScore()))
	return nil
}

// handleFulfill rolls the challenge dice against a vow's progress
// score. A hit fulfills the vow; a miss leaves it sworn and offers the
// price.
func handleFulfill(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	vow, err := s.chooseVow(strings.Join(args, " "))
	if err != nil {
		return cancelled(s, "Fulfill cancelled.", err)
	}
	if vow == nil {
		return nil
	}

	roll, err := dice.ChallengeRoll(s.Dice)
	if err != nil {
		return cancelled(s, "Fulfill cancelled.", err)
	}

	score := vow.ProgressScore()
	result := moves.ProgressResolve(score, roll.Challenge1, roll.Challenge2)
	s.moveResult("Fulfill Your Vow", result, "")

	switch result.Outcome {
	case moves.StrongHit:
		vow.Fulfilled = true
		s.success("Vow fulfilled: " + vow.Description)
	case moves.WeakHit:
		vow.Fulfilled = true
		s.success("Vow fulfilled: " + vow.Description)
		s.warn("There is more to be done, or the reward is less than hoped.")
	default:
		s.warn("Your vow is undone by a dramatic turn of events.")
		s.offerPayThePrice(ctx)
	}

	logLine := fmt.Sprintf("**Fulfill Your Vow** '%s' | Progress %d vs [%d, %d] -> %s",
		vow.Description, score, result.Challenge1, result.Challenge2, outcomeLabel(result.Outcome))
	if result.Match {
		logLine += " (match)"
	}
	s.addMove(ctx, logLine)
	return nil
}

// handleForsake abandons a vow, paying its rank's spirit cost. The vow
// is struck from the list; only fulfilled vows stay on the record.
func handleForsake(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	vow, err := s.chooseVow(strings.Join(args, " "))
	if err != nil {
		return cancelled(s, "Forsake cancelled.", err)
	}
	if vow == nil {
		return nil
	}

	cost := vow.SpiritCost()
	yes, err := s.confirm(fmt.Sprintf("Forsake '%s' and lose %d spirit?", vow.Description, cost), false)
	if err != nil {
		return cancelled(s, "Forsake cancelled.", err)
	}
	if !yes {
		s.info("The vow stands.")
		return nil
	}

	for i, v := range s.Vows {
		if v == vow {
			s.Vows = append(s.Vows[:i], s.Vows[i+1:]...)
			break
		}
	}
	spirit, err := s.Character.AdjustTrack(character.TrackSpirit, -cost)
	if err != nil {
		return err
	}

	s.mechanical(fmt.Sprintf("Vow forsaken [%s]: %s", vow.Rank, vow.Description))
	s.mechanical(fmt.Sprintf("Spirit -%d -> %d/5", cost, spirit))
	s.addMechanical(ctx, fmt.Sprintf("Forsook vow [%s] '%s' (spirit -%d, now %d/5)",
		vow.Rank, vow.Description, cost, spirit))
	return nil
}

// chooseVow resolves which active vow a command targets: the query when
// given, the only active vow when there is just one, otherwise a
// numbered prompt. A nil vow with nil error means the problem was
// already reported.
func (s *State) chooseVow(query string) (*character.Vow, error) {
	active := s.activeVows()
	if len(active) == 0 {
		s.problem("You have no active vows. /vow <rank> <description> to swear one.")
		return nil, nil
	}

	if query != "" {
		vow := pickVow(query, active)
		if vow == nil {
			s.problem(fmt.Sprintf("No single active vow matches '%s'.", query))
		}
		return vow, nil
	}

	if len(active) == 1 {
		return active[0], nil
	}

	s.info("Which vow?")
	for i, v := range active {
		s.info(fmt.Sprintf("  [%d] [%s] %s (progress %d/10)", i+1, v.Rank, v.Description, v.ProgressScore()))
	}
	answer, err := s.prompt("Vow number or name")
	if err != nil {
		return nil, err
	}
	vow := pickVow(answer, active)
	if vow == nil {
		s.problem("Vow not found.")
	}
	return vow, nil
}
