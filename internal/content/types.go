package content

// Row is one oracle result band: an inclusive d100 range and its text.
type Row struct {
	Floor   int
	Ceiling int
	Text    string
}

// Oracle is a random-lookup table mapping a d100 roll to narrative text
// through non-overlapping ranges.
type Oracle struct {
	Key      string
	Name     string
	Category string
	Rows     []Row
}

// Lookup resolves a roll against the table. Reports false when the roll
// falls into a gap; gaps are an authoring problem vet reports, not a
// load failure.
func (o *Oracle) Lookup(roll int) (string, bool) {
	for _, r := range o.Rows {
		if roll >= r.Floor && roll <= r.Ceiling {
			return r.Text, true
		}
	}
	return "", false
}

// Ability is one asset ability with its default unlock state.
type Ability struct {
	Text    string
	Enabled bool
}

// TrackBounds bound one asset track. Bounds vary per asset definition,
// unlike the character's fixed 0 to 5 tracks.
type TrackBounds struct {
	Min int
	Max int
}

// Asset is a static asset definition: a reusable piece of character
// content with unlockable abilities and optional numeric tracks.
type Asset struct {
	Key         string
	Name        string
	Category    string
	Description string
	Abilities   []Ability
	Tracks      map[string]TrackBounds
	Inputs      []string
	Shared      bool
}

// DefaultUnlocks returns the ability unlock pattern a fresh equip
// starts with.
func (a *Asset) DefaultUnlocks() []bool {
	out := make([]bool, len(a.Abilities))
	for i, ab := range a.Abilities {
		out[i] = ab.Enabled
	}
	return out
}

// MoveOutcomes holds the rules text per outcome tier.
type MoveOutcomes struct {
	StrongHit string
	WeakHit   string
	Miss      string
}

// Move is a static move definition. MomentumOnStrong and MomentumOnWeak
// are automatic momentum awards applied when the move lands at that tier;
// zero means the move grants none.
type Move struct {
	Key              string
	Name             string
	Category         string
	Trigger          string
	Text             string
	Stats            []string
	ProgressMove     bool
	Outcomes         MoveOutcomes
	MomentumOnStrong int
	MomentumOnWeak   int
}
