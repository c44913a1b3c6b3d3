package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skeinworks/skein/internal/savegame"
)

func TestNew_CreatesSave(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "new", "Kara", "Sable",
		"--adventures", dir,
		"--edge", "3", "--iron", "2", "--wits", "2",
		"--homeworld", "The Drift")
	require.NoError(t, err)
	assert.Contains(t, out, "Created Kara Sable")
	assert.Contains(t, out, "Edge 3  Heart 1  Iron 2  Shadow 1  Wits 2")
	assert.Contains(t, out, "skein play kara_sable")

	doc, recovered, err := savegame.Load(filepath.Join(dir, "saves"), "kara_sable")
	require.NoError(t, err)
	assert.False(t, recovered)
	assert.Equal(t, "Kara Sable", doc.Character.Name)
	assert.Equal(t, "The Drift", doc.Character.Homeworld)
	assert.Equal(t, 3, doc.Character.Stats.Edge)
	assert.Equal(t, "digital", doc.Settings.DiceMode)
	assert.Zero(t, doc.SessionCount)
	assert.Empty(t, doc.Vows)
}

func TestNew_RejectsDuplicateWithoutForce(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "new", "Vessa", "--adventures", dir)
	require.NoError(t, err)

	_, err = execute(t, "new", "Vessa", "--adventures", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--force")

	_, err = execute(t, "new", "Vessa", "--adventures", dir, "--force", "--iron", "4")
	require.NoError(t, err)

	doc, _, err := savegame.Load(filepath.Join(dir, "saves"), "vessa")
	require.NoError(t, err)
	assert.Equal(t, 4, doc.Character.Stats.Iron)
}

func TestNew_RejectsOutOfRangeStat(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "new", "Vessa", "--adventures", dir, "--edge", "9")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--edge")
}

func TestNew_RejectsUnusableName(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "new", "...", "--adventures", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestNew_EquipsStarterAssets(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "new", "Vessa", "--adventures", dir,
		"--asset", "starship", "--asset", "hound")
	require.NoError(t, err)

	doc, _, err := savegame.Load(filepath.Join(dir, "saves"), "vessa")
	require.NoError(t, err)
	require.Len(t, doc.Character.Assets, 2)

	ship, ok := doc.Character.Asset("starship")
	require.True(t, ok)
	assert.Equal(t, []bool{true, false, false}, ship.AbilitiesUnlocked)

	_, ok = doc.Character.Asset("hound")
	assert.True(t, ok)
}

func TestNew_UnknownAssetFails(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "new", "Vessa", "--adventures", dir, "--asset", "warp drive")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "warp drive")

	// The failed create must not leave a save behind.
	assert.False(t, savegame.Exists(filepath.Join(dir, "saves"), "vessa"))
}
