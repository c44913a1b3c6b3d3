package content

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mergeFixture holds both sources with one colliding oracle key.
func mergeFixture() fstest.MapFS {
	generated := `{
		"Categories": [{
			"$id": "Starforged/Oracles/Core",
			"Name": "Core",
			"Oracles": [
				{
					"$id": "Starforged/Oracles/Core/Action",
					"Name": "Action",
					"Table": [{"Floor": 1, "Ceiling": 100, "Result": "generated action"}]
				},
				{
					"$id": "Starforged/Oracles/Core/Theme",
					"Name": "Theme",
					"Table": [{"Floor": 1, "Ceiling": 100, "Result": "generated theme"}]
				}
			]
		}]
	}`
	overrides := `
oracle: action: {
	name: "Action"
	table: [{low: 1, high: 100, text: "override action"}]
}
oracle: custom: {
	name: "Custom"
	table: [{low: 1, high: 100, text: "hand authored"}]
}
`
	return fstest.MapFS{
		"dataforged/oracles.json": &fstest.MapFile{Data: []byte(generated)},
		"custom.cue":              &fstest.MapFile{Data: []byte(overrides)},
	}
}

func TestLoad_OverridePrecedence(t *testing.T) {
	lib, err := Load(mergeFixture())
	require.NoError(t, err)

	action, ok := lib.Oracle("action")
	require.True(t, ok)
	text, ok := action.Lookup(50)
	require.True(t, ok)
	assert.Equal(t, "override action", text, "override entry wins the key collision")

	// Entries unique to either source survive.
	_, ok = lib.Oracle("theme")
	assert.True(t, ok, "generated-only entry survives")
	_, ok = lib.Oracle("custom")
	assert.True(t, ok, "override-only entry survives")

	assert.Equal(t, 2, lib.Counts.Generated)
	assert.Equal(t, 2, lib.Counts.Overrides)
	assert.Equal(t, 1, lib.Counts.Shadowed)
}

func TestLoad_EmptyRoot(t *testing.T) {
	lib, err := Load(fstest.MapFS{})
	require.NoError(t, err)
	assert.Empty(t, lib.Oracles)
	assert.Empty(t, lib.Moves)
	assert.Empty(t, lib.Assets)
}

func TestLibrary_MatchDelegates(t *testing.T) {
	lib, err := Load(mergeFixture())
	require.NoError(t, err)

	got := lib.MatchOracles("them")
	require.Len(t, got, 1)
	assert.Equal(t, "theme", got[0].Key)
}

func TestVet_ReportsGapsAndOverlaps(t *testing.T) {
	lib := &Library{Oracles: map[string]*Oracle{
		"gappy": {Key: "gappy", Rows: []Row{
			{Floor: 1, Ceiling: 40, Text: "a"},
			{Floor: 61, Ceiling: 90, Text: "b"},
		}},
		"overlappy": {Key: "overlappy", Rows: []Row{
			{Floor: 1, Ceiling: 50, Text: "a"},
			{Floor: 40, Ceiling: 100, Text: "b"},
		}},
		"clean": {Key: "clean", Rows: []Row{
			{Floor: 1, Ceiling: 100, Text: "a"},
		}},
	}}

	findings := lib.Vet()

	assert.Contains(t, findings, "oracle gappy: gap 41-60")
	assert.Contains(t, findings, "oracle gappy: gap 91-100")
	assert.Contains(t, findings, "oracle overlappy: overlap at 40-50")
	for _, f := range findings {
		assert.NotContains(t, f, "clean")
	}
}

func TestVet_CleanLibraryIsQuiet(t *testing.T) {
	lib := &Library{Oracles: map[string]*Oracle{
		"full": {Key: "full", Rows: []Row{
			{Floor: 1, Ceiling: 25, Text: "a"},
			{Floor: 26, Ceiling: 100, Text: "b"},
		}},
	}}

	assert.Empty(t, lib.Vet())
}
