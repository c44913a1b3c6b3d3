package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skeinworks/skein/internal/savegame"
)

// NewSavesCommand creates the saves command.
func NewSavesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "List saved characters",
		Long: `List every saved character in the adventures directory.

Example:
  skein saves`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSaves(rootOpts, cmd)
		},
	}

	return cmd
}

func runSaves(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	opts.setupLogging(cfg)

	infos, err := savegame.List(cfg.SavesDir())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list saves", err)
	}

	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No saved characters yet. Start with: skein new <name>")
		return nil
	}
	for _, info := range infos {
		fmt.Fprintf(out, "%s  (%s)\n", info.Name, info.Slug)
	}
	return nil
}
