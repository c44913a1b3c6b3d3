package journal

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skeinworks/skein/internal/session"
)

// frontmatter is the YAML header block at the top of a markdown export.
type frontmatter struct {
	Character string `yaml:"character,omitempty"`
	Session   int    `yaml:"session"`
	Title     string `yaml:"title,omitempty"`
	Started   string `yaml:"started"`
	Entries   int    `yaml:"entries"`
}

// ExportMarkdown renders a session as a markdown document with YAML
// frontmatter. Entries keep their stored order; each entry kind gets its
// own styling so journal prose reads cleanly next to mechanics:
//
//	journal     plain paragraph
//	move        bold "Move:" prefix
//	oracle      bold "Oracle:" prefix
//	mechanical  italics
//	note        blockquote
func ExportMarkdown(w io.Writer, s *session.Session, characterName string) error {
	head, err := yaml.Marshal(frontmatter{
		Character: characterName,
		Session:   s.Number,
		Title:     s.Title,
		Started:   s.StartedAt.UTC().Format(time.RFC3339),
		Entries:   len(s.Entries),
	})
	if err != nil {
		return fmt.Errorf("export session %d: %w", s.Number, err)
	}

	if _, err := fmt.Fprintf(w, "---\n%s---\n\n", head); err != nil {
		return fmt.Errorf("export session %d: %w", s.Number, err)
	}

	heading := fmt.Sprintf("# Session %d\n", s.Number)
	if s.Title != "" {
		heading = fmt.Sprintf("# Session %d: %s\n", s.Number, s.Title)
	}
	if _, err := io.WriteString(w, heading); err != nil {
		return fmt.Errorf("export session %d: %w", s.Number, err)
	}

	for _, e := range s.Entries {
		if _, err := io.WriteString(w, "\n"+renderEntry(e)+"\n"); err != nil {
			return fmt.Errorf("export session %d: %w", s.Number, err)
		}
	}

	return nil
}

// renderEntry styles one entry line according to its kind.
// Unknown kinds fall back to plain text rather than failing the export.
func renderEntry(e session.Entry) string {
	switch e.Kind {
	case session.KindMove:
		return "**Move:** " + e.Text
	case session.KindOracle:
		return "**Oracle:** " + e.Text
	case session.KindMechanical:
		return "*" + e.Text + "*"
	case session.KindNote:
		return "> " + e.Text
	default:
		return e.Text
	}
}
