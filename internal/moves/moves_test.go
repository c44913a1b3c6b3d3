package moves

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionScore_Cap(t *testing.T) {
	tests := []struct {
		name string
		die  int
		stat int
		adds int
		want int
	}{
		{"plain sum", 3, 2, 1, 6},
		{"exactly ten", 6, 3, 1, 10},
		{"capped", 6, 5, 5, 10},
		{"absurd inputs still capped", 6, 40, 40, 10},
		{"no adds", 5, 2, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActionScore(tt.die, tt.stat, tt.adds))
		})
	}
}

func TestResolveOutcome_Tiers(t *testing.T) {
	tests := []struct {
		name   string
		score  int
		c1, c2 int
		want   Outcome
	}{
		{"beats both", 8, 4, 7, StrongHit},
		{"beats one", 8, 4, 9, WeakHit},
		{"beats none", 3, 4, 9, Miss},
		{"tie does not beat", 5, 5, 3, WeakHit},
		{"double tie is a miss", 5, 5, 5, Miss},
		{"capped score vs double tens", 10, 10, 10, Miss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveOutcome(tt.score, tt.c1, tt.c2))
		})
	}
}

func TestIsMatch(t *testing.T) {
	assert.True(t, IsMatch(7, 7))
	assert.False(t, IsMatch(7, 8))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "miss", Miss.String())
	assert.Equal(t, "weak hit", WeakHit.String())
	assert.Equal(t, "strong hit", StrongHit.String())
}

func TestResolve_PlainRoll(t *testing.T) {
	r := Resolve(Input{ActionDie: 5, Stat: 2, Adds: 1, Challenge1: 4, Challenge2: 7})

	assert.Equal(t, 8, r.ActionScore)
	assert.Equal(t, StrongHit, r.Outcome)
	assert.True(t, r.BeatsChallenge1)
	assert.True(t, r.BeatsChallenge2)
	assert.False(t, r.Match)
	assert.False(t, r.BurnedMomentum)
	assert.Zero(t, r.MomentumUsed)
}

func TestResolve_MatchFlagIndependentOfOutcome(t *testing.T) {
	r := Resolve(Input{ActionDie: 1, Stat: 0, Adds: 0, Challenge1: 9, Challenge2: 9})

	assert.Equal(t, Miss, r.Outcome)
	assert.True(t, r.Match)
}

func TestResolve_BurnReplacesScoreForTierOnly(t *testing.T) {
	// Score 3 misses against 4 and 5; momentum 6 beats both.
	r := Resolve(Input{
		ActionDie: 1, Stat: 1, Adds: 1,
		Challenge1: 4, Challenge2: 5,
		Momentum: 6, Burn: true,
	})

	assert.Equal(t, StrongHit, r.Outcome)
	assert.Equal(t, 3, r.ActionScore, "stored action score must not change on burn")
	assert.True(t, r.BurnedMomentum)
	assert.Equal(t, 6, r.MomentumUsed)
	assert.True(t, r.BeatsChallenge1, "beats flags follow the judged value")
	assert.True(t, r.BeatsChallenge2)
}

func TestResolve_BurnCanStillMiss(t *testing.T) {
	r := Resolve(Input{
		ActionDie: 1, Stat: 0, Adds: 0,
		Challenge1: 9, Challenge2: 10,
		Momentum: 4, Burn: true,
	})

	assert.Equal(t, Miss, r.Outcome)
	assert.True(t, r.BurnedMomentum)
	assert.Equal(t, 4, r.MomentumUsed)
}

func TestBurnOutcome(t *testing.T) {
	assert.Equal(t, StrongHit, BurnOutcome(6, 4, 5))
	assert.Equal(t, WeakHit, BurnOutcome(6, 4, 8))
	assert.Equal(t, Miss, BurnOutcome(2, 4, 8))
}

func TestWouldImprove(t *testing.T) {
	tests := []struct {
		name     string
		current  Outcome
		momentum int
		c1, c2   int
		want     bool
	}{
		{"miss to strong", Miss, 6, 4, 5, true},
		{"miss to weak", Miss, 6, 4, 8, true},
		{"weak to strong", WeakHit, 8, 4, 7, true},
		{"no gain from equal tier", WeakHit, 6, 4, 8, false},
		{"strong cannot improve", StrongHit, 10, 1, 1, false},
		{"zero momentum never improves", Miss, 0, 1, 1, false},
		{"negative momentum never improves", Miss, -3, 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WouldImprove(tt.current, tt.momentum, tt.c1, tt.c2))
		})
	}
}

func TestProgressResolve(t *testing.T) {
	r := ProgressResolve(8, 4, 7)

	assert.Equal(t, StrongHit, r.Outcome)
	assert.Equal(t, 8, r.ActionScore)
	assert.Zero(t, r.ActionDie, "progress rolls have no action die")
	assert.False(t, r.BurnedMomentum)

	r = ProgressResolve(3, 3, 9)
	assert.Equal(t, Miss, r.Outcome, "tie plus higher die is a miss")
}
