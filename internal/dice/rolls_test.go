package dice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptProvider replays canned values and records the kinds requested.
type scriptProvider struct {
	values []int
	kinds  []Kind
}

func (p *scriptProvider) Roll(kind Kind) (int, error) {
	p.kinds = append(p.kinds, kind)
	if len(p.values) == 0 {
		return 0, errScriptExhausted
	}
	v := p.values[0]
	p.values = p.values[1:]
	return v, nil
}

var errScriptExhausted = errors.New("script exhausted")

func TestActionRoll_DrawOrder(t *testing.T) {
	p := &scriptProvider{values: []int{3, 7, 7}}

	got, err := ActionRoll(p)
	require.NoError(t, err)
	assert.Equal(t, ActionDice{Action: 3, Challenge1: 7, Challenge2: 7}, got)
	assert.Equal(t, []Kind{D6, D10, D10}, p.kinds, "action die drawn first, then both challenge dice")
}

func TestChallengeRoll_DrawOrder(t *testing.T) {
	p := &scriptProvider{values: []int{4, 9}}

	got, err := ChallengeRoll(p)
	require.NoError(t, err)
	assert.Equal(t, ChallengeDice{Challenge1: 4, Challenge2: 9}, got)
	assert.Equal(t, []Kind{D10, D10}, p.kinds)
}

func TestOracleRoll(t *testing.T) {
	p := &scriptProvider{values: []int{42}}

	got, err := OracleRoll(p)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, []Kind{D100}, p.kinds)
}
