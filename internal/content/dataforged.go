package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Dataforged file names under the content root. Each is optional; a
// content root may carry overrides only.
const (
	dataforgedDir     = "dataforged"
	dataforgedOracles = dataforgedDir + "/oracles.json"
	dataforgedMoves   = dataforgedDir + "/moves.json"
	dataforgedAssets  = dataforgedDir + "/assets.json"
)

// loadDataforged reads the generated content files. The dataforged
// dataset nests categories arbitrarily deep, so extraction walks the
// whole JSON tree and picks out nodes by shape: an oracle node carries
// a Table, an asset node Abilities, a move node a Trigger.
func loadDataforged(fsys fs.FS) (*tables, error) {
	t := newTables()

	if data, err := readOptional(fsys, dataforgedOracles); err != nil {
		return nil, err
	} else if data != nil {
		if err := parseDataforgedOracles(data, t); err != nil {
			return nil, err
		}
	}

	if data, err := readOptional(fsys, dataforgedMoves); err != nil {
		return nil, err
	} else if data != nil {
		if err := parseDataforgedMoves(data, t); err != nil {
			return nil, err
		}
	}

	if data, err := readOptional(fsys, dataforgedAssets); err != nil {
		return nil, err
	} else if data != nil {
		if err := parseDataforgedAssets(data, t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func readOptional(fsys fs.FS, name string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", name, err)
	}
	return data, nil
}

func parseDataforgedOracles(data []byte, t *tables) error {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("content: parse %s: %w", dataforgedOracles, err)
	}

	walkObjects(root, func(node map[string]any) {
		id, ok := stringField(node, "$id")
		if !ok {
			return
		}
		tableRaw, ok := node["Table"].([]any)
		if !ok {
			return
		}

		oracle := &Oracle{
			Key:      keyFromID(id),
			Name:     displayName(node, id),
			Category: categoryFromID(id),
		}
		for _, rowRaw := range tableRaw {
			row, ok := rowRaw.(map[string]any)
			if !ok {
				continue
			}
			floor, okF := intField(row, "Floor")
			ceiling, okC := intField(row, "Ceiling")
			text, okT := stringField(row, "Result")
			// Meta rows (null ranges, empty results) are normal in the
			// generated dataset and dropped without comment.
			if !okF || !okC || !okT || text == "" || floor > ceiling {
				continue
			}
			oracle.Rows = append(oracle.Rows, Row{Floor: floor, Ceiling: ceiling, Text: text})
		}
		if len(oracle.Rows) > 0 {
			t.oracles[oracle.Key] = oracle
		}
	})
	return nil
}

func parseDataforgedMoves(data []byte, t *tables) error {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("content: parse %s: %w", dataforgedMoves, err)
	}

	walkObjects(root, func(node map[string]any) {
		id, ok := stringField(node, "$id")
		if !ok || !strings.Contains(id, "/Moves/") {
			return
		}
		trigger, ok := node["Trigger"].(map[string]any)
		if !ok {
			return
		}

		move := &Move{
			Key:      keyFromID(id),
			Name:     displayName(node, id),
			Category: categoryFromID(id),
		}
		move.Trigger, _ = stringField(trigger, "Text")
		move.Text, _ = stringField(node, "Text")
		if progress, ok := node["Progress Move"].(bool); ok {
			move.ProgressMove = progress
		}
		move.Stats = triggerStats(trigger)

		if outcomes, ok := node["Outcomes"].(map[string]any); ok {
			move.Outcomes = MoveOutcomes{
				StrongHit: outcomeText(outcomes, "Strong Hit"),
				WeakHit:   outcomeText(outcomes, "Weak Hit"),
				Miss:      outcomeText(outcomes, "Miss"),
			}
		}
		t.moves[move.Key] = move
	})
	return nil
}

func parseDataforgedAssets(data []byte, t *tables) error {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("content: parse %s: %w", dataforgedAssets, err)
	}

	walkObjects(root, func(node map[string]any) {
		id, ok := stringField(node, "$id")
		if !ok || !strings.Contains(id, "/Assets/") {
			return
		}
		abilitiesRaw, ok := node["Abilities"].([]any)
		if !ok {
			return
		}

		asset := &Asset{
			Key:      keyFromID(id),
			Name:     displayName(node, id),
			Category: categoryFromID(id),
			Tracks:   make(map[string]TrackBounds),
		}
		asset.Description, _ = stringField(node, "Requirement")

		for _, abilityRaw := range abilitiesRaw {
			ability, ok := abilityRaw.(map[string]any)
			if !ok {
				continue
			}
			text, _ := stringField(ability, "Text")
			enabled, _ := ability["Enabled"].(bool)
			asset.Abilities = append(asset.Abilities, Ability{Text: text, Enabled: enabled})
		}

		if meter, ok := node["Condition Meter"].(map[string]any); ok {
			name, _ := stringField(meter, "Name")
			if name == "" {
				name = "condition"
			}
			lo, okLo := intField(meter, "Min")
			hi, okHi := intField(meter, "Max")
			if okLo && okHi {
				asset.Tracks[Slug(name)] = TrackBounds{Min: lo, Max: hi}
			}
		}

		if inputs, ok := node["Inputs"].([]any); ok {
			for _, inputRaw := range inputs {
				input, ok := inputRaw.(map[string]any)
				if !ok {
					continue
				}
				if name, ok := stringField(input, "Name"); ok {
					asset.Inputs = append(asset.Inputs, name)
				}
			}
		}

		if usage, ok := node["Usage"].(map[string]any); ok {
			if shared, ok := usage["Shared"].(bool); ok {
				asset.Shared = shared
			}
		}

		t.assets[asset.Key] = asset
	})
	return nil
}

// walkObjects visits every JSON object in the tree, depth first, with
// object keys in sorted order. Duplicate content keys within one source
// resolve last-visited wins; the sorted walk keeps that reproducible
// across loads.
func walkObjects(node any, visit func(map[string]any)) {
	switch n := node.(type) {
	case map[string]any:
		visit(n)
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkObjects(n[k], visit)
		}
	case []any:
		for _, child := range n {
			walkObjects(child, visit)
		}
	}
}

func stringField(node map[string]any, key string) (string, bool) {
	s, ok := node[key].(string)
	return s, ok
}

// intField reads a JSON number as an int. Returns false for null,
// absent and non-numeric values.
func intField(node map[string]any, key string) (int, bool) {
	f, ok := node[key].(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func displayName(node map[string]any, id string) string {
	if name, ok := stringField(node, "Name"); ok && name != "" {
		return name
	}
	parts := strings.Split(id, "/")
	return strings.ReplaceAll(parts[len(parts)-1], "_", " ")
}

// outcomeText reads one tier's text from the generated outcome shape,
// {"Strong Hit": {"Text": ...}}.
func outcomeText(outcomes map[string]any, key string) string {
	node, ok := outcomes[key].(map[string]any)
	if !ok {
		return ""
	}
	text, _ := stringField(node, "Text")
	return text
}

// keyFromID slugs the last $id path segment, the stable per-entity name
// in the generated dataset.
func keyFromID(id string) string {
	parts := strings.Split(id, "/")
	return Slug(parts[len(parts)-1])
}

// categoryFromID reads the second-to-last $id segment, the grouping the
// entity sits under.
func categoryFromID(id string) string {
	parts := strings.Split(id, "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.ReplaceAll(parts[len(parts)-2], "_", " ")
}

// triggerStats collects the union of stats named by the trigger's roll
// options, lower-cased, in first-seen order.
func triggerStats(trigger map[string]any) []string {
	options, ok := trigger["Options"].([]any)
	if !ok {
		return nil
	}
	var stats []string
	seen := make(map[string]bool)
	for _, optionRaw := range options {
		option, ok := optionRaw.(map[string]any)
		if !ok {
			continue
		}
		using, ok := option["Using"].([]any)
		if !ok {
			continue
		}
		for _, statRaw := range using {
			stat, ok := statRaw.(string)
			if !ok {
				continue
			}
			stat = strings.ToLower(stat)
			if !seen[stat] {
				seen[stat] = true
				stats = append(stats, stat)
			}
		}
	}
	return stats
}
