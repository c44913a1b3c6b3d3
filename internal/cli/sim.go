package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skeinworks/skein/internal/scenario"
)

// SimOptions holds flags for the sim command.
type SimOptions struct {
	*RootOptions
	Quiet bool
}

// NewSimCommand creates the sim command.
func NewSimCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sim <scenario.yaml> [more-scenarios...]",
		Short: "Run scripted scenarios",
		Long: `Run scripted scenario files against the loaded content. A scenario
scripts the dice, the prompt answers, and the input lines, then checks
the transcript for expected fragments. Transcripts print unless --quiet
is set.

Exit codes:
  0 - Every scenario passed
  1 - One or more scenarios failed
  2 - Command error (missing files, bad content)

Examples:
  skein sim opening_scene.yaml
  skein sim scenarios/*.yaml --quiet`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "suppress transcripts, print only results")

	return cmd
}

func runSim(opts *SimOptions, paths []string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	opts.setupLogging(cfg)

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return NewExitError(ExitCommandError, fmt.Sprintf("scenario not found: %s", path))
		}
	}

	lib, err := loadLibrary(cfg.ContentDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	passed, failed := 0, 0
	for _, path := range paths {
		sc, err := scenario.Load(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "✗ %s\n", path)
			fmt.Fprintf(out, "  load error: %v\n", err)
			continue
		}

		result, err := scenario.Run(cmd.Context(), sc, lib)
		if err != nil {
			failed++
			fmt.Fprintf(out, "✗ %s\n", sc.Name)
			fmt.Fprintf(out, "  run error: %v\n", err)
			continue
		}

		if !opts.Quiet {
			fmt.Fprint(out, result.Transcript)
		}

		if result.Passed() {
			passed++
			fmt.Fprintf(out, "✓ %s\n", sc.Name)
		} else {
			failed++
			fmt.Fprintf(out, "✗ %s\n", sc.Name)
			for _, frag := range result.Missing {
				fmt.Fprintf(out, "  missing: %q\n", frag)
			}
		}
		if result.DiceLeft > 0 || result.AnswersLeft > 0 {
			fmt.Fprintf(out, "  note: %d scripted dice and %d answers unused\n",
				result.DiceLeft, result.AnswersLeft)
		}
	}

	if len(paths) > 1 {
		fmt.Fprintf(out, "\n%d passed, %d failed\n", passed, failed)
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", failed))
	}
	return nil
}
