package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/savegame"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	Homeworld string
	Edge      int
	Heart     int
	Iron      int
	Shadow    int
	Wits      int
	Assets    []string
	Force     bool
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a character",
		Long: `Create a character and write their first save file.

Stats default to 1 each; the customary spread assigns 3, 2, 2, 1, 1
across edge, heart, iron, shadow, and wits. Assets are matched against
the loaded content by fuzzy name.

Examples:
  skein new "Kara Sable" --edge 3 --iron 2 --wits 2
  skein new Vessa --homeworld "The Drift" --asset starship --asset hound`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Homeworld, "homeworld", "", "where the character is from")
	cmd.Flags().IntVar(&opts.Edge, "edge", 1, "edge stat (speed, agility, precision)")
	cmd.Flags().IntVar(&opts.Heart, "heart", 1, "heart stat (courage, empathy, loyalty)")
	cmd.Flags().IntVar(&opts.Iron, "iron", 1, "iron stat (strength, endurance, aggression)")
	cmd.Flags().IntVar(&opts.Shadow, "shadow", 1, "shadow stat (deception, stealth, trickery)")
	cmd.Flags().IntVar(&opts.Wits, "wits", 1, "wits stat (expertise, knowledge, observation)")
	cmd.Flags().StringArrayVar(&opts.Assets, "asset", nil, "equip an asset by name (repeatable)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing save")

	return cmd
}

func runNew(opts *NewOptions, name string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	opts.setupLogging(cfg)

	slug := savegame.Slugify(name)
	if slug == "" {
		return NewExitError(ExitCommandError, fmt.Sprintf("character name %q needs at least one letter or digit", name))
	}
	if !opts.Force && savegame.Exists(cfg.SavesDir(), slug) {
		return NewExitError(ExitCommandError, fmt.Sprintf("a save already exists for %s (use --force to overwrite)", name))
	}

	for _, stat := range []struct {
		name  string
		value int
	}{
		{"edge", opts.Edge}, {"heart", opts.Heart}, {"iron", opts.Iron},
		{"shadow", opts.Shadow}, {"wits", opts.Wits},
	} {
		if stat.value < 0 || stat.value > 5 {
			return NewExitError(ExitCommandError, fmt.Sprintf("--%s must be between 0 and 5, got %d", stat.name, stat.value))
		}
	}

	c := character.New(name)
	c.Homeworld = opts.Homeworld
	c.Stats = character.Stats{
		Edge:   opts.Edge,
		Heart:  opts.Heart,
		Iron:   opts.Iron,
		Shadow: opts.Shadow,
		Wits:   opts.Wits,
	}

	if len(opts.Assets) > 0 {
		lib, err := loadLibrary(cfg.ContentDir)
		if err != nil {
			return err
		}
		for _, query := range opts.Assets {
			matches := lib.MatchAssets(query)
			if len(matches) == 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("no asset matches %q", query))
			}
			if len(matches) > 1 {
				keys := make([]string, len(matches))
				for i, a := range matches {
					keys[i] = a.Key
				}
				return NewExitError(ExitCommandError,
					fmt.Sprintf("asset %q matches several: %s", query, strings.Join(keys, ", ")))
			}
			def := matches[0]
			if _, equipped := c.Asset(def.Key); equipped {
				continue
			}
			c.AddAsset(character.NewAssetState(def.Key, def.DefaultUnlocks()))
		}
	}

	doc := &savegame.Document{
		Character:    c,
		Vows:         []*character.Vow{},
		SessionCount: 0,
		Settings:     savegame.Settings{DiceMode: cfg.DiceMode},
	}
	if err := savegame.Save(cfg.SavesDir(), slug, doc); err != nil {
		return WrapExitError(ExitCommandError, "failed to write save", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s (%s)\n", name, savegame.Path(cfg.SavesDir(), slug))
	fmt.Fprintf(out, "Edge %d  Heart %d  Iron %d  Shadow %d  Wits %d\n",
		opts.Edge, opts.Heart, opts.Iron, opts.Shadow, opts.Wits)
	fmt.Fprintf(out, "Begin with: skein play %s\n", slug)
	return nil
}
