package cli

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skeinworks/skein/internal/dice"
)

// RollOptions holds flags for the roll command.
type RollOptions struct {
	*RootOptions
	Seed int64
}

// NewRollCommand creates the roll command.
func NewRollCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RollOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "roll <dice-expr> [dice-expr...]",
		Short: "Roll dice outside a session",
		Long: `Roll dice without starting a session. Expressions are NdM with
d6, d10, and d100 faces; a bare dM rolls one die.

Examples:
  skein roll d6
  skein roll 2d10 d100
  skein roll d100 --seed 7`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoll(opts, args, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed the generator for a reproducible roll")

	return cmd
}

func runRoll(opts *RollOptions, exprs []string, cmd *cobra.Command) error {
	provider := dice.NewDigital()
	if cmd.Flags().Changed("seed") {
		provider = dice.NewDigitalWithSource(rand.New(rand.NewSource(opts.Seed)))
	}

	var parts []string
	for _, expr := range exprs {
		count, kind, err := dice.ParseExpr(expr)
		if err != nil {
			return WrapExitError(ExitCommandError,
				fmt.Sprintf("bad dice expression %q (use d6, d10, d100 or 2d10)", expr), err)
		}
		values := make([]string, count)
		for i := 0; i < count; i++ {
			v, err := provider.Roll(kind)
			if err != nil {
				return WrapExitError(ExitFailure, "roll failed", err)
			}
			values[i] = fmt.Sprintf("%d", v)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", kind, strings.Join(values, ", ")))
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, "  |  "))
	return nil
}
