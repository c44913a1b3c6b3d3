package cli

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skeinworks/skein/internal/dice"
)

// OracleOptions holds flags for the oracle command.
type OracleOptions struct {
	*RootOptions
	Roll int
	Seed int64
}

// NewOracleCommand creates the oracle command.
func NewOracleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OracleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "oracle <query>",
		Short: "Consult an oracle table",
		Long: `Roll on an oracle table without starting a session. The query is
fuzzy-matched against the loaded tables by key and name.

Examples:
  skein oracle action
  skein oracle "pay the price"
  skein oracle theme --roll 42`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOracle(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Roll, "roll", 0, "use this d100 value instead of rolling")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed the generator for a reproducible roll")

	return cmd
}

func runOracle(opts *OracleOptions, query string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	opts.setupLogging(cfg)

	lib, err := loadLibrary(cfg.ContentDir)
	if err != nil {
		return err
	}

	matches := lib.MatchOracles(query)
	if len(matches) == 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("no oracle matches %q", query))
	}
	if len(matches) > 1 {
		keys := make([]string, len(matches))
		for i, o := range matches {
			keys[i] = o.Key
		}
		return NewExitError(ExitFailure,
			fmt.Sprintf("%q matches several oracles: %s", query, strings.Join(keys, ", ")))
	}
	table := matches[0]

	roll := opts.Roll
	if cmd.Flags().Changed("roll") {
		if roll < 1 || roll > 100 {
			return NewExitError(ExitCommandError, fmt.Sprintf("--roll must be between 1 and 100, got %d", roll))
		}
	} else {
		provider := dice.NewDigital()
		if cmd.Flags().Changed("seed") {
			provider = dice.NewDigitalWithSource(rand.New(rand.NewSource(opts.Seed)))
		}
		roll, err = dice.OracleRoll(provider)
		if err != nil {
			return WrapExitError(ExitFailure, "roll failed", err)
		}
	}

	text, ok := table.Lookup(roll)
	if !ok {
		return NewExitError(ExitFailure,
			fmt.Sprintf("roll %d falls in a gap of %s; run skein vet on the content", roll, table.Name))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [%d]: %s\n", table.Name, roll, text)
	return nil
}
