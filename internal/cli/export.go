package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skeinworks/skein/internal/journal"
	"github.com/skeinworks/skein/internal/savegame"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Session   int
	Character string
	Out       string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a journaled session as markdown",
		Long: `Rebuild a session from the campaign journal and render it as
markdown with a YAML frontmatter header. Writes to stdout unless
--out names a file.

The character name in the header comes from --character, falling back
to the only saved character when there is exactly one.

Examples:
  skein export --session 3
  skein export --session 3 --character "Kara Sable" --out session3.md`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Session, "session", 0, "session number to export (required)")
	cmd.Flags().StringVar(&opts.Character, "character", "", "character name for the header")
	cmd.Flags().StringVar(&opts.Out, "out", "", "write to this file instead of stdout")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	opts.setupLogging(cfg)

	if opts.Session < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--session must be positive, got %d", opts.Session))
	}

	characterName := opts.Character
	if characterName == "" {
		infos, err := savegame.List(cfg.SavesDir())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list saves", err)
		}
		switch len(infos) {
		case 1:
			characterName = infos[0].Name
		case 0:
			return NewExitError(ExitCommandError, "no saved characters; pass --character")
		default:
			return NewExitError(ExitCommandError, "several saved characters; pass --character")
		}
	}

	if _, err := os.Stat(cfg.JournalPath()); err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("no journal at %s", cfg.JournalPath()))
	}
	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("error closing journal", "error", closeErr)
		}
	}()

	sess, err := store.Replay(cmd.Context(), opts.Session)
	if errors.Is(err, journal.ErrSessionNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("session %d is not in the journal", opts.Session))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to replay session", err)
	}

	w := cmd.OutOrStdout()
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		defer f.Close()
		w = f
	}

	if err := journal.ExportMarkdown(w, sess, characterName); err != nil {
		return WrapExitError(ExitFailure, "export failed", err)
	}
	if opts.Out != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported session %d to %s\n", opts.Session, opts.Out)
	}
	return nil
}
