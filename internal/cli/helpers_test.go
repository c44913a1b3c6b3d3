package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/dice"
	"github.com/skeinworks/skein/internal/savegame"
)

// scrubEnv clears every SKEIN_* variable so tests see only flags and
// defaults, regardless of the developer's shell.
func scrubEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SKEIN_ADVENTURES_DIR", "SKEIN_CONTENT_DIR", "SKEIN_DICE_MODE", "SKEIN_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// execute runs the CLI with args and captured output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

// executeWithInput runs the CLI feeding input as stdin.
func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	scrubEnv(t)

	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	if input != "" {
		cmd.SetIn(bytes.NewBufferString(input))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeSave drops a ready-made campaign save under dir/saves.
func writeSave(t *testing.T, adventuresDir, name string) string {
	t.Helper()
	c := character.New(name)
	c.Stats = character.Stats{Edge: 2, Heart: 1, Iron: 3, Shadow: 1, Wits: 2}
	doc := &savegame.Document{
		Character: c,
		Vows:      []*character.Vow{},
		Settings:  savegame.Settings{DiceMode: string(dice.ModeDigital)},
	}
	slug := savegame.Slugify(name)
	if err := savegame.Save(adventuresDir+"/saves", slug, doc); err != nil {
		t.Fatalf("write save: %v", err)
	}
	return slug
}
