package content

import (
	"fmt"
	"io/fs"
	"sort"
)

// tables is the mutable aggregate the loaders fill before the Library
// freezes it.
type tables struct {
	oracles map[string]*Oracle
	moves   map[string]*Move
	assets  map[string]*Asset
}

func newTables() *tables {
	return &tables{
		oracles: make(map[string]*Oracle),
		moves:   make(map[string]*Move),
		assets:  make(map[string]*Asset),
	}
}

// SourceCounts records how many entries each source contributed and how
// many collisions the override source won.
type SourceCounts struct {
	Generated int
	Overrides int
	Shadowed  int
}

// Library is the merged content context: one keyed table per entity
// kind, built once by Load and read-only afterwards. Safe for
// concurrent reads across sessions.
type Library struct {
	Oracles map[string]*Oracle
	Moves   map[string]*Move
	Assets  map[string]*Asset

	Counts   SourceCounts
	Warnings []string
}

// Load builds the Library from a content root. The generated source
// loads first; override entries replace generated entries on key
// collision; entries unique to either source survive.
func Load(fsys fs.FS) (*Library, error) {
	generated, err := loadDataforged(fsys)
	if err != nil {
		return nil, err
	}
	overrides, warnings, err := loadOverrides(fsys)
	if err != nil {
		return nil, err
	}

	lib := &Library{
		Oracles:  generated.oracles,
		Moves:    generated.moves,
		Assets:   generated.assets,
		Warnings: warnings,
	}
	lib.Counts.Generated = len(generated.oracles) + len(generated.moves) + len(generated.assets)
	lib.Counts.Overrides = len(overrides.oracles) + len(overrides.moves) + len(overrides.assets)

	for k, v := range overrides.oracles {
		if _, clash := lib.Oracles[k]; clash {
			lib.Counts.Shadowed++
		}
		lib.Oracles[k] = v
	}
	for k, v := range overrides.moves {
		if _, clash := lib.Moves[k]; clash {
			lib.Counts.Shadowed++
		}
		lib.Moves[k] = v
	}
	for k, v := range overrides.assets {
		if _, clash := lib.Assets[k]; clash {
			lib.Counts.Shadowed++
		}
		lib.Assets[k] = v
	}

	return lib, nil
}

// Oracle looks an oracle up by exact key.
func (l *Library) Oracle(key string) (*Oracle, bool) {
	o, ok := l.Oracles[key]
	return o, ok
}

// Move looks a move up by exact key.
func (l *Library) Move(key string) (*Move, bool) {
	m, ok := l.Moves[key]
	return m, ok
}

// Asset looks an asset up by exact key.
func (l *Library) Asset(key string) (*Asset, bool) {
	a, ok := l.Assets[key]
	return a, ok
}

// OracleKeys returns every oracle key, sorted.
func (l *Library) OracleKeys() []string {
	return sortedKeys(l.Oracles)
}

// MoveKeys returns every move key, sorted.
func (l *Library) MoveKeys() []string {
	return sortedKeys(l.Moves)
}

// AssetKeys returns every asset key, sorted.
func (l *Library) AssetKeys() []string {
	return sortedKeys(l.Assets)
}

func sortedKeys[V any](table map[string]V) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MatchOracles fuzzy-matches the oracle table. See package Normalize
// for the folding rules.
func (l *Library) MatchOracles(query string) []*Oracle {
	return MatchOracles(query, l.Oracles)
}

// MatchMoves fuzzy-matches the move table.
func (l *Library) MatchMoves(query string) []*Move {
	return MatchMoves(query, l.Moves)
}

// MatchAssets fuzzy-matches the asset table.
func (l *Library) MatchAssets(query string) []*Asset {
	return MatchAssets(query, l.Assets)
}

// Vet reports range gaps and overlaps across every oracle table, one
// line per finding, sorted by oracle key. Authoring diagnostics only;
// loading never enforces full coverage.
func (l *Library) Vet() []string {
	keys := make([]string, 0, len(l.Oracles))
	for k := range l.Oracles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var findings []string
	for _, key := range keys {
		findings = append(findings, vetOracle(l.Oracles[key])...)
	}
	return findings
}

// vetOracle checks one table for coverage of the 1 to 100 domain.
func vetOracle(o *Oracle) []string {
	rows := append([]Row(nil), o.Rows...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Floor < rows[j].Floor })

	var findings []string
	next := 1
	for _, r := range rows {
		if r.Floor > next {
			findings = append(findings, fmt.Sprintf("oracle %s: gap %d-%d", o.Key, next, r.Floor-1))
		}
		if r.Floor < next {
			findings = append(findings, fmt.Sprintf("oracle %s: overlap at %d-%d", o.Key, r.Floor, min(r.Ceiling, next-1)))
		}
		if r.Ceiling+1 > next {
			next = r.Ceiling + 1
		}
	}
	if next <= 100 {
		findings = append(findings, fmt.Sprintf("oracle %s: gap %d-100", o.Key, next))
	}
	return findings
}
