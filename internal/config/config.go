// Package config resolves runtime settings from the environment.
//
// Every knob has a SKEIN_* variable and a sensible default, so the binary
// runs with no setup at all. CLI flags may overwrite fields after Load.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/skeinworks/skein/internal/dice"
)

// Config holds the resolved settings for a skein invocation.
type Config struct {
	// AdventuresDir is the root for saves, exports, and the journal.
	// Defaults to ~/skein-adventures.
	AdventuresDir string `env:"SKEIN_ADVENTURES_DIR"`

	// ContentDir points at a directory of content files (dataforged JSON
	// and CUE overrides). Empty means the embedded starter content.
	ContentDir string `env:"SKEIN_CONTENT_DIR"`

	// DiceMode selects digital, physical, or mixed dice.
	DiceMode string `env:"SKEIN_DICE_MODE" envDefault:"digital"`

	// LogLevel sets the slog level: debug, info, warn, or error.
	LogLevel string `env:"SKEIN_LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment and fills in defaults
// that depend on the running user, like the adventures directory.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.AdventuresDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home dir: %w", err)
		}
		cfg.AdventuresDir = filepath.Join(home, "skein-adventures")
	}
	if _, err := dice.ParseMode(cfg.DiceMode); err != nil {
		return nil, fmt.Errorf("config: SKEIN_DICE_MODE: %w", err)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("config: SKEIN_LOG_LEVEL: %w", err)
	}
	return &cfg, nil
}

// SavesDir is where character save files live.
func (c *Config) SavesDir() string {
	return filepath.Join(c.AdventuresDir, "saves")
}

// ExportsDir is where session markdown exports are written.
func (c *Config) ExportsDir() string {
	return filepath.Join(c.AdventuresDir, "exports")
}

// JournalPath is the sqlite journal database file.
func (c *Config) JournalPath() string {
	return filepath.Join(c.AdventuresDir, "journal.db")
}

// Mode returns the configured dice mode. Call Load first; it validates
// the string, so this cannot fail afterwards.
func (c *Config) Mode() dice.Mode {
	m, _ := dice.ParseMode(c.DiceMode)
	return m
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	l, _ := ParseLogLevel(c.LogLevel)
	return l
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (want debug, info, warn, or error)", s)
	}
}
