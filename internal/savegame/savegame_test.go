package savegame

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/dice"
)

func testDocument(t *testing.T, name string) *Document {
	t.Helper()
	c := character.New(name)
	c.Stats = character.Stats{Edge: 2, Heart: 1, Iron: 3, Shadow: 1, Wits: 2}
	vow, err := character.NewVow("Avenge my crew", character.RankFormidable)
	require.NoError(t, err)
	return &Document{
		Character:    c,
		Vows:         []*character.Vow{vow},
		SessionCount: 2,
		Settings:     Settings{DiceMode: string(dice.ModeDigital)},
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	doc := testDocument(t, "Kara Sable")

	require.NoError(t, Save(dir, "kara_sable", doc))
	assert.True(t, Exists(dir, "kara_sable"))

	got, recovered, err := Load(dir, "kara_sable")
	require.NoError(t, err)
	assert.False(t, recovered)
	assert.Equal(t, "Kara Sable", got.Character.Name)
	assert.Equal(t, 2, got.SessionCount)
	require.Len(t, got.Vows, 1)
	assert.Equal(t, "Avenge my crew", got.Vows[0].Description)
	assert.Equal(t, character.RankFormidable, got.Vows[0].Rank)
	assert.Equal(t, string(dice.ModeDigital), got.Settings.DiceMode)
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "saves")

	require.NoError(t, Save(dir, "kara", testDocument(t, "Kara")))
	assert.True(t, Exists(dir, "kara"))
}

func TestSave_RequiresCharacter(t *testing.T) {
	dir := t.TempDir()

	err := Save(dir, "empty", &Document{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCharacter)

	err = Save(dir, "nil", nil)
	assert.ErrorIs(t, err, ErrNoCharacter)
}

func TestSave_BacksUpPreviousFile(t *testing.T) {
	dir := t.TempDir()
	doc := testDocument(t, "Kara")

	require.NoError(t, Save(dir, "kara", doc))

	doc.SessionCount = 3
	require.NoError(t, Save(dir, "kara", doc))

	// Backup holds the first write
	bak, err := os.ReadFile(filepath.Join(dir, "kara.json.bak"))
	require.NoError(t, err)
	assert.Contains(t, string(bak), `"session_count": 2`)

	got, _, err := Load(dir, "kara")
	require.NoError(t, err)
	assert.Equal(t, 3, got.SessionCount)
}

func TestLoad_NotFound(t *testing.T) {
	_, _, err := Load(t.TempDir(), "nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_RecoversFromBackup(t *testing.T) {
	dir := t.TempDir()
	doc := testDocument(t, "Kara")

	require.NoError(t, Save(dir, "kara", doc))
	doc.SessionCount = 3
	require.NoError(t, Save(dir, "kara", doc))

	// Corrupt the main file
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kara.json"), []byte("{truncated"), 0o644))

	got, recovered, err := Load(dir, "kara")
	require.NoError(t, err)
	assert.True(t, recovered)
	assert.Equal(t, 2, got.SessionCount, "backup holds the previous write")
}

func TestLoad_CorruptWithoutBackup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kara.json"), []byte("not json"), 0o644))

	_, _, err := Load(dir, "kara")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestLoad_DefaultsAbsentFields(t *testing.T) {
	dir := t.TempDir()
	raw := `{"character": {"name": "Kara", "stats": {"edge":1,"heart":1,"iron":1,"shadow":1,"wits":1}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kara.json"), []byte(raw), 0o644))

	got, recovered, err := Load(dir, "kara")
	require.NoError(t, err)
	assert.False(t, recovered)
	assert.NotNil(t, got.Vows)
	assert.Empty(t, got.Vows)
	assert.Equal(t, 0, got.SessionCount)
	assert.Equal(t, string(dice.ModeDigital), got.Settings.DiceMode)
}

func TestLoad_DocumentWithoutCharacterIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kara.json"), []byte(`{"vows": []}`), 0o644))

	_, _, err := Load(dir, "kara")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCharacter)
}

func TestList(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Save(dir, "zana", testDocument(t, "Zana")))
	require.NoError(t, Save(dir, "kara_sable", testDocument(t, "Kara Sable")))
	// Overwrite to produce a .bak that must not show up in the list
	require.NoError(t, Save(dir, "kara_sable", testDocument(t, "Kara Sable")))

	infos, err := List(dir)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, Info{Slug: "kara_sable", Name: "Kara Sable"}, infos[0])
	assert.Equal(t, Info{Slug: "zana", Name: "Zana"}, infos[1])
}

func TestList_MissingDirectory(t *testing.T) {
	infos, err := List(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.NotNil(t, infos)
	assert.Empty(t, infos)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Kara Sable", want: "kara_sable"},
		{in: "kara-sable", want: "kara_sable"},
		{in: "  Zana  ", want: "zana"},
		{in: "D'Arcy of the 7th", want: "d_arcy_of_the_7th"},
		{in: "___", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugifyRoundTripsThroughDisplayName(t *testing.T) {
	assert.Equal(t, "Kara Sable", displayName(Slugify("Kara Sable")))
}
