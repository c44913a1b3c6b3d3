package character

import (
	"errors"
	"fmt"
	"strings"
)

// Rank grades a vow's difficulty. Harder vows advance fewer ticks per
// milestone and cost more spirit to forsake.
type Rank string

const (
	RankTroublesome Rank = "troublesome"
	RankDangerous   Rank = "dangerous"
	RankFormidable  Rank = "formidable"
	RankExtreme     Rank = "extreme"
	RankEpic        Rank = "epic"
)

// MaxTicks is the full progress track: ten boxes of four ticks.
const MaxTicks = 40

// ErrInvalidRank reports a rank name outside the fixed set.
var ErrInvalidRank = errors.New("invalid rank")

var rankTicks = map[Rank]int{
	RankTroublesome: 12,
	RankDangerous:   8,
	RankFormidable:  4,
	RankExtreme:     2,
	RankEpic:        1,
}

var rankSpiritCost = map[Rank]int{
	RankTroublesome: 1,
	RankDangerous:   2,
	RankFormidable:  3,
	RankExtreme:     4,
	RankEpic:        5,
}

// RankNames lists the ranks from easiest to hardest.
func RankNames() []string {
	return []string{
		string(RankTroublesome),
		string(RankDangerous),
		string(RankFormidable),
		string(RankExtreme),
		string(RankEpic),
	}
}

// ParseRank resolves a rank name case-insensitively.
func ParseRank(s string) (Rank, error) {
	r := Rank(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := rankTicks[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRank, s)
	}
	return r, nil
}

// Vow is one sworn quest with a ranked progress track.
type Vow struct {
	Description string `json:"description"`
	Rank        Rank   `json:"rank"`
	Ticks       int    `json:"ticks"`
	Fulfilled   bool   `json:"fulfilled"`
}

// NewVow swears a vow at the given rank.
func NewVow(description string, rank Rank) (*Vow, error) {
	if _, ok := rankTicks[rank]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRank, rank)
	}
	return &Vow{Description: description, Rank: rank}, nil
}

// MarkProgress advances the track by the rank's tick value, capped at
// MaxTicks, and returns the new tick count.
func (v *Vow) MarkProgress() int {
	v.Ticks = min(v.Ticks+rankTicks[v.Rank], MaxTicks)
	return v.Ticks
}

// ProgressScore converts ticks to filled boxes, capped at ten. This is
// the score a progress roll is judged on.
func (v *Vow) ProgressScore() int {
	return min(v.Ticks/4, 10)
}

// SpiritCost is the spirit lost when this vow is forsaken.
func (v *Vow) SpiritCost() int {
	return rankSpiritCost[v.Rank]
}
