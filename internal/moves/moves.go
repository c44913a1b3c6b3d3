// Package moves resolves move outcomes against challenge dice.
//
// Everything here is a pure function over integers. How the dice were
// obtained is the dice package's concern; what the outcome means for the
// character is the caller's.
package moves

import "fmt"

// Outcome is the tier a resolved move lands on. The ranking is fixed:
// Miss < WeakHit < StrongHit.
type Outcome int

const (
	Miss Outcome = iota
	WeakHit
	StrongHit
)

func (o Outcome) String() string {
	switch o {
	case Miss:
		return "miss"
	case WeakHit:
		return "weak hit"
	case StrongHit:
		return "strong hit"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// actionScoreCap is the ceiling on an action score. No combination of
// die, stat and adds can exceed it.
const actionScoreCap = 10

// ActionScore sums the action die, stat and adds, capped at 10.
func ActionScore(die, stat, adds int) int {
	score := die + stat + adds
	if score > actionScoreCap {
		return actionScoreCap
	}
	return score
}

// ResolveOutcome counts how many challenge dice the score strictly
// exceeds. Ties never beat a die. Two beats is a strong hit, one a weak
// hit, none a miss.
func ResolveOutcome(score, challenge1, challenge2 int) Outcome {
	beats := 0
	if score > challenge1 {
		beats++
	}
	if score > challenge2 {
		beats++
	}
	switch beats {
	case 2:
		return StrongHit
	case 1:
		return WeakHit
	default:
		return Miss
	}
}

// IsMatch reports whether the two challenge dice read the same value.
// A match is independent of the outcome tier; it signals a complication
// or opportunity for the narration layer.
func IsMatch(challenge1, challenge2 int) bool {
	return challenge1 == challenge2
}

// Input carries everything Resolve needs for one move.
//
// Burn asks for the momentum-burn override: the tier is recomputed with
// Momentum in place of the action score. Callers only set Burn when
// momentum is strictly positive; Resolve trusts the flag.
type Input struct {
	ActionDie  int
	Stat       int
	Adds       int
	Challenge1 int
	Challenge2 int
	Momentum   int
	Burn       bool
}

// Result is the immutable record of one resolved move. BeatsChallenge1
// and BeatsChallenge2 reflect the value the tier was judged on, so they
// flip with the tier when momentum was burned. ActionScore always keeps
// the capped die+stat+adds sum, burned or not.
type Result struct {
	ActionDie       int
	Stat            int
	Adds            int
	ActionScore     int
	Challenge1      int
	Challenge2      int
	Outcome         Outcome
	Match           bool
	BeatsChallenge1 bool
	BeatsChallenge2 bool
	BurnedMomentum  bool
	MomentumUsed    int
}

// Resolve computes the outcome of one move.
func Resolve(in Input) Result {
	score := ActionScore(in.ActionDie, in.Stat, in.Adds)
	judged := score
	if in.Burn {
		judged = in.Momentum
	}

	r := Result{
		ActionDie:       in.ActionDie,
		Stat:            in.Stat,
		Adds:            in.Adds,
		ActionScore:     score,
		Challenge1:      in.Challenge1,
		Challenge2:      in.Challenge2,
		Outcome:         ResolveOutcome(judged, in.Challenge1, in.Challenge2),
		Match:           IsMatch(in.Challenge1, in.Challenge2),
		BeatsChallenge1: judged > in.Challenge1,
		BeatsChallenge2: judged > in.Challenge2,
	}
	if in.Burn {
		r.BurnedMomentum = true
		r.MomentumUsed = in.Momentum
	}
	return r
}

// BurnOutcome previews the tier a burn would produce, judging momentum
// against the same challenge dice.
func BurnOutcome(momentum, challenge1, challenge2 int) Outcome {
	return ResolveOutcome(momentum, challenge1, challenge2)
}

// WouldImprove reports whether burning momentum would move the tier
// strictly upward. Always false when momentum is zero or negative.
// Advisory only; nothing is mutated.
func WouldImprove(current Outcome, momentum, challenge1, challenge2 int) bool {
	if momentum <= 0 {
		return false
	}
	return BurnOutcome(momentum, challenge1, challenge2) > current
}

// ProgressResolve judges a progress score (0 to 10, no action die)
// against the challenge dice. Progress rolls cannot burn momentum.
func ProgressResolve(progressScore, challenge1, challenge2 int) Result {
	return Result{
		ActionScore:     progressScore,
		Challenge1:      challenge1,
		Challenge2:      challenge2,
		Outcome:         ResolveOutcome(progressScore, challenge1, challenge2),
		Match:           IsMatch(challenge1, challenge2),
		BeatsChallenge1: progressScore > challenge1,
		BeatsChallenge2: progressScore > challenge2,
	}
}
