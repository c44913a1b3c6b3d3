package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "skein", cmd.Use)
	assert.Contains(t, cmd.Long, "solo tabletop")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"new", "play", "saves", "roll", "oracle", "vet", "export", "sim"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	for _, name := range []string{"adventures", "content", "dice"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, "flag --%s should exist", name)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestNewCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	newCmd, _, err := cmd.Find([]string{"new"})
	require.NoError(t, err)

	for _, stat := range []string{"edge", "heart", "iron", "shadow", "wits"} {
		flag := newCmd.Flags().Lookup(stat)
		require.NotNil(t, flag, "flag --%s should exist", stat)
		assert.Equal(t, "1", flag.DefValue)
	}

	require.NotNil(t, newCmd.Flags().Lookup("asset"))
	require.NotNil(t, newCmd.Flags().Lookup("force"))
	require.NotNil(t, newCmd.Flags().Lookup("homeworld"))
}

func TestExportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	exportCmd, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)

	require.NotNil(t, exportCmd.Flags().Lookup("session"))
	require.NotNil(t, exportCmd.Flags().Lookup("character"))
	require.NotNil(t, exportCmd.Flags().Lookup("out"))
}

func TestBadDiceFlagRejected(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "new", "Vessa", "--adventures", dir, "--dice", "quantum")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--dice")
}
