// Package scenario runs scripted playthroughs that produce the same
// transcript every time.
//
// A scenario file fixes everything the play loop would otherwise draw
// from the outside world: the character, every die value, every prompt
// answer, and the exact input lines. That makes scenarios useful twice
// over: `skein sim` replays one as living documentation, and tests
// compare transcripts against golden files to catch output drift.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Stats is the five-stat block in YAML form.
type Stats struct {
	Edge   int `yaml:"edge"`
	Heart  int `yaml:"heart"`
	Iron   int `yaml:"iron"`
	Shadow int `yaml:"shadow"`
	Wits   int `yaml:"wits"`
}

// CharacterSetup describes the character a scenario starts with.
type CharacterSetup struct {
	Name      string `yaml:"name"`
	Homeworld string `yaml:"homeworld,omitempty"`
	Stats     Stats  `yaml:"stats"`

	// Momentum overrides the starting momentum, clamped to the live
	// bounds. Nil keeps the baseline.
	Momentum *int `yaml:"momentum,omitempty"`

	// Assets are content keys equipped with their default unlocks.
	Assets []string `yaml:"assets,omitempty"`
}

// Scenario is one scripted playthrough.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Character CharacterSetup `yaml:"character"`

	// Dice are consumed in roll order: an action roll takes three
	// (d6, d10, d10), a challenge roll two, an oracle roll one.
	Dice []int `yaml:"dice,omitempty"`

	// Answers feed the prompts (stat choices, adds, confirmations) in
	// the order they are asked.
	Answers []string `yaml:"answers,omitempty"`

	// Input is the play session line by line: prose and slash-commands.
	Input []string `yaml:"input"`

	// Expect lists fragments the transcript must contain. Run checks
	// them; a fragment that never appears fails the scenario.
	Expect []string `yaml:"expect,omitempty"`
}

// Load reads and parses one scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes scenario YAML. Unknown fields are rejected so a typo
// like "expects:" fails loudly instead of silently dropping a list.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("scenario: parse: %w", err)
	}
	if err := validate(&sc); err != nil {
		if sc.Name != "" {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return &sc, nil
}

func validate(sc *Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sc.Character.Name == "" {
		return fmt.Errorf("character.name is required")
	}
	if len(sc.Input) == 0 {
		return fmt.Errorf("input lines are required")
	}

	stats := sc.Character.Stats
	for _, st := range []struct {
		name string
		val  int
	}{
		{"edge", stats.Edge},
		{"heart", stats.Heart},
		{"iron", stats.Iron},
		{"shadow", stats.Shadow},
		{"wits", stats.Wits},
	} {
		if st.val < 0 {
			return fmt.Errorf("character.stats.%s: must not be negative", st.name)
		}
	}

	for i, v := range sc.Dice {
		if v < 1 {
			return fmt.Errorf("dice[%d]: %d is not a die value", i, v)
		}
	}
	return nil
}
