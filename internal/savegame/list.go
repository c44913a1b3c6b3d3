package savegame

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify folds a character name into a file slug: lower-cased, with
// runs of anything that is not a letter or digit collapsed to single
// underscores. "Kara Sable" and "kara-sable" share a slug, and
// displayName rebuilds "Kara Sable" from it.
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "_")
}

// Info identifies one saved campaign: the file slug and a display name
// rebuilt from it ("kara_sable" becomes "Kara Sable").
type Info struct {
	Slug string
	Name string
}

// List returns every save under dir in slug order. A missing directory is
// treated as an empty library, not an error. Backup and temp files are
// skipped.
func List(dir string) ([]Info, error) {
	dirents, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}

	infos := []Info{}
	for _, ent := range dirents {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		slug := strings.TrimSuffix(name, ".json")
		infos = append(infos, Info{Slug: slug, Name: displayName(slug)})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Slug < infos[j].Slug })
	return infos, nil
}

// displayName rebuilds a human-readable name from a file slug.
func displayName(slug string) string {
	spaced := strings.ReplaceAll(slug, "_", " ")
	return cases.Title(language.English).String(spaced)
}
