package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVetCommand creates the vet command.
func NewVetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet [content-dir]",
		Short: "Check content for authoring problems",
		Long: `Load a content directory and report authoring problems: oracle rows
skipped at load (inverted ranges, empty text) and table coverage gaps
or overlaps over the 1-100 domain. Loading tolerates these; vet is the
loud authoring pass.

With no directory, vets the configured content (or the built-in
starter set).

Exit codes:
  0 - Content vets clean
  1 - Findings reported
  2 - Content failed to load

Examples:
  skein vet
  skein vet ./my-content`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runVet(rootOpts, dir, cmd)
		},
	}

	return cmd
}

func runVet(opts *RootOptions, dir string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	opts.setupLogging(cfg)

	if dir == "" {
		dir = cfg.ContentDir
	}
	lib, err := loadLibrary(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %d oracles, %d moves, %d assets (%d overrides, %d shadowed)\n",
		len(lib.Oracles), len(lib.Moves), len(lib.Assets),
		lib.Counts.Overrides, lib.Counts.Shadowed)

	findings := append([]string{}, lib.Warnings...)
	findings = append(findings, lib.Vet()...)
	if len(findings) == 0 {
		fmt.Fprintln(out, "Content vets clean.")
		return nil
	}

	for _, f := range findings {
		fmt.Fprintf(out, "✗ %s\n", f)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d finding(s)", len(findings)))
}
