package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/content"
	"github.com/skeinworks/skein/internal/dice"
	"github.com/skeinworks/skein/internal/moves"
)

// handleMove resolves a move end to end: fuzzy-match the name, pick a
// stat, roll, offer a momentum burn, apply automatic momentum, log.
func handleMove(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	if len(args) == 0 {
		s.problem("Usage: /move [name]  (e.g. /move strike)")
		return nil
	}

	query := strings.Join(args, " ")
	matches := s.Library.MatchMoves(query)
	if len(matches) == 0 {
		s.problem(fmt.Sprintf("Move not found: '%s'", query))
		s.info("Try /help moves to see available moves.")
		return nil
	}
	if len(matches) > 1 {
		keys := make([]string, len(matches))
		for i, m := range matches {
			keys[i] = m.Key
		}
		s.warn(fmt.Sprintf("Multiple matches: %s. Be more specific.", strings.Join(keys, ", ")))
		return nil
	}
	move := matches[0]

	// Per-command dice mode override, honored only on a mixed provider
	if mixed, ok := s.Dice.(*dice.Mixed); ok {
		if _, manual := flags["manual"]; manual {
			mixed.SetManual(true)
		} else if _, auto := flags["auto"]; auto {
			mixed.SetManual(false)
		}
		defer mixed.SetManual(false)
	}

	if move.ProgressMove {
		return s.progressRoll(ctx, move)
	}

	if len(move.Stats) == 0 {
		s.problem(fmt.Sprintf("Move '%s' has no stat options defined.", move.Name))
		return nil
	}

	stat, ok, err := s.chooseStat(move.Stats, flags)
	if err != nil {
		return cancelled(s, "Move cancelled.", err)
	}
	if !ok {
		return nil
	}

	statVal, err := s.Character.Stats.Get(stat)
	if err != nil {
		return err
	}

	adds, ok, err := s.promptInt("Any adds? [0]", 0)
	if err != nil {
		return cancelled(s, "Move cancelled.", err)
	}
	if !ok {
		adds = 0
	}

	roll, err := dice.ActionRoll(s.Dice)
	if err != nil {
		return cancelled(s, "Move cancelled.", err)
	}

	result := moves.Resolve(moves.Input{
		ActionDie:  roll.Action,
		Stat:       statVal,
		Adds:       adds,
		Challenge1: roll.Challenge1,
		Challenge2: roll.Challenge2,
		Momentum:   s.Character.Momentum(),
	})

	// Offer a burn when it would change the tier. The --burn flag takes
	// the offer without a prompt.
	_, burnFlag := flags["burn"]
	if moves.WouldImprove(result.Outcome, s.Character.Momentum(), roll.Challenge1, roll.Challenge2) {
		improved := moves.BurnOutcome(s.Character.Momentum(), roll.Challenge1, roll.Challenge2)
		s.warn(fmt.Sprintf("Burning momentum (%+d) would improve this to a %s.",
			s.Character.Momentum(), strings.ToLower(outcomeLabel(improved))))
		burn := burnFlag
		if !burn {
			burn, err = s.confirm("Burn momentum?", false)
			if err != nil {
				return cancelled(s, "Move cancelled.", err)
			}
		}
		if burn {
			before := s.Character.BurnMomentum()
			result = moves.Resolve(moves.Input{
				ActionDie:  roll.Action,
				Stat:       statVal,
				Adds:       adds,
				Challenge1: roll.Challenge1,
				Challenge2: roll.Challenge2,
				Momentum:   before,
				Burn:       true,
			})
			s.addMechanical(ctx, fmt.Sprintf("Burned momentum (%d -> %d)", before, s.Character.Momentum()))
		}
	}

	outcomeText := outcomeTextFor(result.Outcome, move)
	s.moveResult(move.Name, result, outcomeText)
	s.applyMoveMomentum(ctx, result.Outcome, move)

	if result.Outcome == moves.Miss {
		s.offerPayThePrice(ctx)
	}

	scorePart := fmt.Sprintf("%d+%d+%d", result.ActionDie, result.Stat, result.Adds)
	if result.BurnedMomentum {
		scorePart = fmt.Sprintf("momentum(%d)", result.MomentumUsed)
	}
	logLine := fmt.Sprintf("**%s** | %s %d | %s = %d vs [%d, %d] -> %s",
		move.Name, titleCase(stat), statVal, scorePart, result.ActionScore,
		result.Challenge1, result.Challenge2, outcomeLabel(result.Outcome))
	if result.Match {
		logLine += " (match)"
	}
	s.addMove(ctx, logLine)

	s.last = &lastRoll{
		moveName: move.Name,
		outcome:  result.Outcome,
		c1:       result.Challenge1,
		c2:       result.Challenge2,
		burned:   result.BurnedMomentum,
	}
	return nil
}

// chooseStat resolves which stat the move rolls with. A flag naming one
// of the move's stat options short-circuits the prompt (/move strike
// --iron); otherwise the player picks by number, name, or unique prefix.
func (s *State) chooseStat(options []string, flags map[string]struct{}) (string, bool, error) {
	for _, opt := range options {
		if _, ok := flags[opt]; ok {
			return opt, true, nil
		}
	}

	s.info("Which stat?")
	for i, opt := range options {
		val, err := s.Character.Stats.Get(opt)
		if err != nil {
			return "", false, err
		}
		s.info(fmt.Sprintf("  [%d] %s (%d)", i+1, titleCase(opt), val))
	}

	for {
		raw, err := s.prompt("Stat")
		if err != nil {
			return "", false, err
		}
		raw = strings.ToLower(raw)

		if n, perr := strconv.Atoi(raw); perr == nil {
			if n >= 1 && n <= len(options) {
				return options[n-1], true, nil
			}
		} else {
			var prefixed []string
			for _, opt := range options {
				if opt == raw {
					return opt, true, nil
				}
				if strings.HasPrefix(opt, raw) {
					prefixed = append(prefixed, opt)
				}
			}
			if len(prefixed) == 1 {
				return prefixed[0], true, nil
			}
		}
		s.problem(fmt.Sprintf("Choose 1-%d or type a stat name.", len(options)))
	}
}

// progressRoll resolves a progress move: two challenge dice against an
// established progress score instead of an action roll.
func (s *State) progressRoll(ctx context.Context, move *content.Move) error {
	var (
		vow   *character.Vow
		score int
	)

	switch move.Key {
	case "fulfill_your_vow", "forsake_your_vow":
		active := s.activeVows()
		if len(active) == 0 {
			s.problem("You have no active vows.")
			return nil
		}
		s.info("Which vow?")
		for i, v := range active {
			s.info(fmt.Sprintf("  [%d] [%s] %s (progress: %d/10)", i+1, v.Rank, v.Description, v.ProgressScore()))
		}
		raw, err := s.prompt("Vow number or name")
		if err != nil {
			return cancelled(s, "Move cancelled.", err)
		}
		vow = pickVow(raw, active)
		if vow == nil {
			s.problem("Vow not found.")
			return nil
		}
		score = vow.ProgressScore()

	default:
		n, ok, err := s.promptInt("Progress score (0-10)", -1)
		if err != nil {
			return cancelled(s, "Move cancelled.", err)
		}
		if !ok || n < 0 {
			s.problem("Enter a number 0-10.")
			return nil
		}
		score = min(max(n, 0), 10)
	}

	roll, err := dice.ChallengeRoll(s.Dice)
	if err != nil {
		return cancelled(s, "Move cancelled.", err)
	}

	result := moves.ProgressResolve(score, roll.Challenge1, roll.Challenge2)
	s.moveResult(move.Name, result, outcomeTextFor(result.Outcome, move))

	if vow != nil && result.Outcome != moves.Miss {
		vow.Fulfilled = true
		s.success("Vow fulfilled: " + vow.Description)
	}
	if result.Outcome == moves.Miss {
		s.offerPayThePrice(ctx)
	}

	logLine := fmt.Sprintf("**%s** | Progress %d vs [%d, %d] -> %s",
		move.Name, score, result.Challenge1, result.Challenge2, outcomeLabel(result.Outcome))
	if result.Match {
		logLine += " (match)"
	}
	s.addMove(ctx, logLine)
	return nil
}

// pickVow resolves a player's answer to a numbered vow list: an index,
// or a case-insensitive substring of exactly one description.
func pickVow(raw string, active []*character.Vow) *character.Vow {
	if n, err := strconv.Atoi(raw); err == nil {
		if n >= 1 && n <= len(active) {
			return active[n-1]
		}
		return nil
	}
	q := strings.ToLower(raw)
	var found *character.Vow
	for _, v := range active {
		if strings.Contains(strings.ToLower(v.Description), q) {
			if found != nil {
				return nil // ambiguous
			}
			found = v
		}
	}
	return found
}

// outcomeTextFor returns the move's authored text for a tier, with the
// standard fallbacks when the content omits one.
func outcomeTextFor(o moves.Outcome, move *content.Move) string {
	switch o {
	case moves.StrongHit:
		if move.Outcomes.StrongHit != "" {
			return move.Outcomes.StrongHit
		}
		return "Strong hit."
	case moves.WeakHit:
		if move.Outcomes.WeakHit != "" {
			return move.Outcomes.WeakHit
		}
		return "Weak hit."
	default:
		if move.Outcomes.Miss != "" {
			return move.Outcomes.Miss
		}
		return "Miss. Pay the Price."
	}
}

// applyMoveMomentum grants the move's automatic momentum for the tier.
func (s *State) applyMoveMomentum(ctx context.Context, o moves.Outcome, move *content.Move) {
	delta := 0
	switch o {
	case moves.StrongHit:
		delta = move.MomentumOnStrong
	case moves.WeakHit:
		delta = move.MomentumOnWeak
	}
	if delta == 0 {
		return
	}
	now := s.Character.AdjustMomentum(delta)
	s.mechanical(fmt.Sprintf("Momentum %+d -> %+d", delta, now))
	s.addMechanical(ctx, fmt.Sprintf("Momentum %+d (now %+d)", delta, now))
}

// offerPayThePrice proposes a Pay the Price oracle roll after a miss.
// Declining, lacking the table, or a cancelled roll all end quietly.
func (s *State) offerPayThePrice(ctx context.Context) {
	table, ok := s.Library.Oracle("pay_the_price")
	if !ok {
		return
	}
	yes, err := s.confirm("Roll Pay the Price?", false)
	if err != nil || !yes {
		return
	}
	roll, err := dice.OracleRoll(s.Dice)
	if err != nil {
		s.info("Oracle roll cancelled.")
		return
	}
	text, ok := table.Lookup(roll)
	if !ok {
		s.warn(fmt.Sprintf("No %s result for %d.", table.Name, roll))
		return
	}
	s.info(fmt.Sprintf("%s [%d]: %s", table.Name, roll, text))
	s.addOracle(ctx, fmt.Sprintf("Oracle [%s] roll %d -> %s", table.Name, roll, text))
}

// cancelled reports a prompt or roll abort: dice cancellation prints the
// soft notice and ends the command cleanly, anything else propagates.
func cancelled(s *State, notice string, err error) error {
	if errors.Is(err, dice.ErrCancelled) {
		s.info(notice)
		return nil
	}
	s.info(notice)
	return err
}
