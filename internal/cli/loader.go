package cli

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/skeinworks/skein/internal/content"
	"github.com/skeinworks/skein/internal/content/starter"
)

// contentFS resolves the content source: an explicit directory when one
// is configured, the embedded starter set otherwise.
func contentFS(contentDir string) (fs.FS, error) {
	if contentDir == "" {
		return starter.FS, nil
	}
	info, err := os.Stat(contentDir)
	if err != nil || !info.IsDir() {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("content directory not found: %s", contentDir))
	}
	return os.DirFS(contentDir), nil
}

// loadLibrary builds the merged content tables every content-touching
// command shares. Load warnings (skipped oracle rows) are logged, not
// fatal; vet reports them loudly.
func loadLibrary(contentDir string) (*content.Library, error) {
	fsys, err := contentFS(contentDir)
	if err != nil {
		return nil, err
	}
	lib, err := content.Load(fsys)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load content", err)
	}
	for _, w := range lib.Warnings {
		slog.Warn("content warning", "warning", w)
	}
	slog.Debug("content loaded",
		"oracles", len(lib.Oracles),
		"moves", len(lib.Moves),
		"assets", len(lib.Assets),
		"overrides", lib.Counts.Overrides,
		"shadowed", lib.Counts.Shadowed)
	return lib, nil
}
