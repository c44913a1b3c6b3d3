package character

import (
	"errors"
	"fmt"
	"strings"
)

// Stat names, the fixed five-stat vocabulary.
const (
	StatEdge   = "edge"
	StatHeart  = "heart"
	StatIron   = "iron"
	StatShadow = "shadow"
	StatWits   = "wits"
)

// ErrInvalidStat reports a lookup with a name outside the fixed stat
// set. Unlike debility names, which arrive from free text, a stat name
// comes from code paths that should already know the vocabulary, so
// this fails loudly.
var ErrInvalidStat = errors.New("invalid stat")

// StatNames lists the five stats in canonical display order.
func StatNames() []string {
	return []string{StatEdge, StatHeart, StatIron, StatShadow, StatWits}
}

// Stats is a character's fixed five-stat block. Values are small
// non-negative integers set at creation and rarely changed after.
type Stats struct {
	Edge   int `json:"edge"`
	Heart  int `json:"heart"`
	Iron   int `json:"iron"`
	Shadow int `json:"shadow"`
	Wits   int `json:"wits"`
}

// Get looks a stat up by name, case-insensitively.
func (s Stats) Get(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StatEdge:
		return s.Edge, nil
	case StatHeart:
		return s.Heart, nil
	case StatIron:
		return s.Iron, nil
	case StatShadow:
		return s.Shadow, nil
	case StatWits:
		return s.Wits, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStat, name)
	}
}
