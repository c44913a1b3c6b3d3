package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skeinworks/skein/internal/config"
	"github.com/skeinworks/skein/internal/dice"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose    bool
	Adventures string // override for SKEIN_ADVENTURES_DIR
	Content    string // override for SKEIN_CONTENT_DIR
	Dice       string // override for SKEIN_DICE_MODE
}

// NewRootCommand creates the root command for the skein CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "skein",
		Short: "Skein - solo RPG companion",
		Long: `A table companion for solo tabletop RPG play in the Ironsworn family:
dice, moves, oracles, character tracks, vows, and a campaign journal,
all from one prompt.

Start with:
  skein new "Kara Sable" --edge 3 --iron 2
  skein play`,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Adventures, "adventures", "", "adventures directory (saves, exports, journal)")
	cmd.PersistentFlags().StringVar(&opts.Content, "content", "", "content directory (default: built-in starter set)")
	cmd.PersistentFlags().StringVar(&opts.Dice, "dice", "", "dice mode: digital, physical, or mixed")

	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewSavesCommand(opts))
	cmd.AddCommand(NewRollCommand(opts))
	cmd.AddCommand(NewOracleCommand(opts))
	cmd.AddCommand(NewVetCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewSimCommand(opts))

	return cmd
}

// loadConfig resolves the environment configuration and applies flag
// overrides on top.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "bad configuration", err)
	}
	if o.Adventures != "" {
		cfg.AdventuresDir = o.Adventures
	}
	if o.Content != "" {
		cfg.ContentDir = o.Content
	}
	if o.Dice != "" {
		if _, err := dice.ParseMode(o.Dice); err != nil {
			return nil, WrapExitError(ExitCommandError, "bad --dice flag", err)
		}
		cfg.DiceMode = o.Dice
	}
	return cfg, nil
}

// setupLogging installs the process logger. --verbose forces debug
// regardless of SKEIN_LOG_LEVEL.
func (o *RootOptions) setupLogging(cfg *config.Config) {
	level := cfg.Level()
	if o.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
