// Package savegame persists campaign state as JSON documents on disk.
//
// Each character's campaign lives in one file named after the character's
// slug. Saves keep a one-level .bak history: every overwrite first copies
// the previous file aside, and loads fall back to the backup when the
// main file fails to parse. Writes go through a temp file and rename so a
// crash mid-write never truncates the only good copy.
package savegame

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/skeinworks/skein/internal/character"
	"github.com/skeinworks/skein/internal/dice"
)

var (
	// ErrNotFound is returned when no save exists for a slug.
	ErrNotFound = errors.New("savegame: not found")

	// ErrNoCharacter is returned when a document has no character record.
	ErrNoCharacter = errors.New("savegame: document has no character")
)

// Settings holds per-campaign preferences carried across sessions.
type Settings struct {
	DiceMode string `json:"dice_mode,omitempty"`
}

// Document is the full persisted state of one campaign: the character,
// their vows, how many sessions have been played, and settings.
type Document struct {
	Character    *character.Character `json:"character"`
	Vows         []*character.Vow     `json:"vows"`
	SessionCount int                  `json:"session_count"`
	Settings     Settings             `json:"settings"`
}

// Path returns the save file location for a slug under dir.
func Path(dir, slug string) string {
	return filepath.Join(dir, slug+".json")
}

// backupPath returns the .bak location for a save file.
func backupPath(dir, slug string) string {
	return Path(dir, slug) + ".bak"
}

// Exists reports whether a save file is present for the slug.
func Exists(dir, slug string) bool {
	_, err := os.Stat(Path(dir, slug))
	return err == nil
}

// Save writes the document to dir/slug.json, creating dir if needed.
//
// The previous file, when present, is copied to slug.json.bak first, and
// the new content lands via temp-file-and-rename. A failed save therefore
// leaves either the old file or the old file plus its backup, never a
// half-written document.
func Save(dir, slug string, doc *Document) error {
	if doc == nil || doc.Character == nil {
		return ErrNoCharacter
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save %q: %w", slug, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("save %q: %w", slug, err)
	}
	data = append(data, '\n')

	path := Path(dir, slug)
	if prev, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(backupPath(dir, slug), prev, 0o644); err != nil {
			return fmt.Errorf("save %q: backup: %w", slug, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save %q: %w", slug, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("save %q: %w", slug, err)
	}

	return nil
}

// Load reads the document for a slug. When the main file is corrupt, it
// falls back to the .bak copy; recovered reports whether that fallback
// was used so callers can warn the player.
func Load(dir, slug string) (doc *Document, recovered bool, err error) {
	path := Path(dir, slug)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", slug, err)
	}

	doc, mainErr := decode(data)
	if mainErr == nil {
		return doc, false, nil
	}

	backup, bakErr := os.ReadFile(backupPath(dir, slug))
	if bakErr != nil {
		return nil, false, fmt.Errorf("load %q: %w", slug, mainErr)
	}
	doc, bakErr = decode(backup)
	if bakErr != nil {
		// Report the main file's problem; the backup being bad too is secondary
		return nil, false, fmt.Errorf("load %q: %w", slug, mainErr)
	}

	return doc, true, nil
}

// decode parses and normalizes a save document. Absent collections come
// back empty rather than nil, and an unset dice mode defaults to digital.
func decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Character == nil {
		return nil, ErrNoCharacter
	}
	if doc.Vows == nil {
		doc.Vows = []*character.Vow{}
	}
	if doc.SessionCount < 0 {
		doc.SessionCount = 0
	}
	if doc.Settings.DiceMode == "" {
		doc.Settings.DiceMode = string(dice.ModeDigital)
	}
	return &doc, nil
}
