package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skeinworks/skein/internal/dice"
	"github.com/skeinworks/skein/internal/game"
	"github.com/skeinworks/skein/internal/journal"
	"github.com/skeinworks/skein/internal/savegame"
	"github.com/skeinworks/skein/internal/session"
)

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [name]",
		Short: "Start a play session",
		Long: `Start an interactive play session for a saved character.

With no name, plays the only saved character; with several saves, the
name picks one. Everything typed at the prompt without a leading slash
is journaled as prose; /help lists the commands. /end saves and exits,
/quit exits without saving.

Examples:
  skein play
  skein play "Kara Sable"
  skein play kara_sable --dice physical`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(rootOpts, strings.Join(args, " "), cmd)
		},
	}

	return cmd
}

func runPlay(opts *RootOptions, name string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	opts.setupLogging(cfg)

	slug, err := resolveSlug(cfg.SavesDir(), name)
	if err != nil {
		return err
	}

	doc, recovered, err := savegame.Load(cfg.SavesDir(), slug)
	if errors.Is(err, savegame.ErrNotFound) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("no save for %q; create one with: skein new %q", slug, slug))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load save", err)
	}
	if recovered {
		slog.Warn("main save was corrupt, recovered from backup", "slug", slug)
	}

	lib, err := loadLibrary(cfg.ContentDir)
	if err != nil {
		return err
	}

	// Dice mode: an explicit --dice flag wins, then the save's setting.
	modeName := doc.Settings.DiceMode
	if opts.Dice != "" {
		modeName = opts.Dice
	}
	mode, err := dice.ParseMode(modeName)
	if err != nil {
		return WrapExitError(ExitCommandError, "bad dice mode in save", err)
	}

	// The loop and the prompter share one buffered reader over stdin so
	// prompts consume exactly the lines meant for them.
	in := bufio.NewReader(cmd.InOrStdin())
	prompter := &terminalPrompter{in: in, out: cmd.OutOrStdout()}
	provider, err := dice.NewProvider(mode, prompter)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot build dice provider", err)
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

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, ending session", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	number := doc.SessionCount + 1
	sess := session.New(number)
	recorder, err := journal.NewRecorder(ctx, store, number, "", sess.StartedAt)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start journal session", err)
	}

	state := &game.State{
		Character:    doc.Character,
		Vows:         doc.Vows,
		Session:      sess,
		SessionCount: number,
		DiceMode:     mode,
		Dice:         provider,
		Prompter:     prompter,
		Library:      lib,
		Recorder:     recorder,
		Journal:      store,
		SavesDir:     cfg.SavesDir(),
		ExportsDir:   cfg.ExportsDir(),
		Slug:         slug,
		Out:          cmd.OutOrStdout(),
		Log:          slog.Default(),
	}

	slog.Debug("session starting", "character", doc.Character.Name, "session", number, "dice", mode)
	if err := game.Run(ctx, state, in); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Interrupted.")
			return nil
		}
		return WrapExitError(ExitFailure, "session failed", err)
	}
	return nil
}

// resolveSlug picks which save to play. An explicit name always wins;
// otherwise a lone save is picked automatically and several saves ask
// the player to choose.
func resolveSlug(savesDir, name string) (string, error) {
	if name != "" {
		slug := savegame.Slugify(name)
		if slug == "" {
			return "", NewExitError(ExitCommandError, fmt.Sprintf("bad character name %q", name))
		}
		return slug, nil
	}

	infos, err := savegame.List(savesDir)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to list saves", err)
	}
	switch len(infos) {
	case 0:
		return "", NewExitError(ExitCommandError, "no saved characters; create one with: skein new <name>")
	case 1:
		return infos[0].Slug, nil
	default:
		names := make([]string, len(infos))
		for i, info := range infos {
			names[i] = info.Name
		}
		return "", NewExitError(ExitCommandError,
			fmt.Sprintf("several saved characters (%s); pick one with: skein play <name>", strings.Join(names, ", ")))
	}
}

// terminalPrompter reads prompt answers from the shared buffered stdin
// reader, writing the label to the session output first.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *terminalPrompter) Prompt(label string) (string, error) {
	fmt.Fprintf(p.out, "  %s ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("prompt %q: %w", label, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
