package dice

// ActionDice holds the three dice of an action roll in draw order.
type ActionDice struct {
	Action     int
	Challenge1 int
	Challenge2 int
}

// ActionRoll draws one d6 then two d10. The order is fixed so manual
// providers prompt the player in a stable, reproducible sequence.
func ActionRoll(p Provider) (ActionDice, error) {
	action, err := p.Roll(D6)
	if err != nil {
		return ActionDice{}, err
	}
	c1, err := p.Roll(D10)
	if err != nil {
		return ActionDice{}, err
	}
	c2, err := p.Roll(D10)
	if err != nil {
		return ActionDice{}, err
	}
	return ActionDice{Action: action, Challenge1: c1, Challenge2: c2}, nil
}

// ChallengeDice holds the two dice of a challenge-only roll.
type ChallengeDice struct {
	Challenge1 int
	Challenge2 int
}

// ChallengeRoll draws two d10, used for progress checks where no action
// die applies.
func ChallengeRoll(p Provider) (ChallengeDice, error) {
	c1, err := p.Roll(D10)
	if err != nil {
		return ChallengeDice{}, err
	}
	c2, err := p.Roll(D10)
	if err != nil {
		return ChallengeDice{}, err
	}
	return ChallengeDice{Challenge1: c1, Challenge2: c2}, nil
}

// OracleRoll draws one d100.
func OracleRoll(p Provider) (int, error) {
	return p.Roll(D100)
}
