package journal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"gopkg.in/yaml.v3"

	"github.com/skeinworks/skein/internal/session"
)

func exportTestSession() *session.Session {
	return &session.Session{
		Number:    3,
		Title:     "Into the Expanse",
		StartedAt: testStart,
		Entries: []session.Entry{
			{ID: "e1", Kind: session.KindJournal, Text: "We left the station at dawn.", At: testStart},
			{ID: "e2", Kind: session.KindMove, Text: "Undertake an Expedition: weak hit", At: testStart},
			{ID: "e3", Kind: session.KindOracle, Text: "Theme: Revenge", At: testStart},
			{ID: "e4", Kind: session.KindMechanical, Text: "supply 4 -> 3", At: testStart},
			{ID: "e5", Kind: session.KindNote, Text: "Remember the broken beacon.", At: testStart},
		},
	}
}

func TestExportMarkdown_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	var buf bytes.Buffer
	if err := ExportMarkdown(&buf, exportTestSession(), "Vessa"); err != nil {
		t.Fatalf("ExportMarkdown() failed: %v", err)
	}
	g.Assert(t, "session_export", buf.Bytes())
}

func TestExportMarkdown_Frontmatter(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportMarkdown(&buf, exportTestSession(), "Vessa"); err != nil {
		t.Fatalf("ExportMarkdown() failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "---\n") {
		t.Fatalf("export does not start with frontmatter fence:\n%s", out)
	}

	// Parse the frontmatter back to verify it is valid YAML
	parts := strings.SplitN(out, "---\n", 3)
	if len(parts) != 3 {
		t.Fatalf("expected fenced frontmatter block, got %d parts", len(parts))
	}

	var fm struct {
		Character string `yaml:"character"`
		Session   int    `yaml:"session"`
		Title     string `yaml:"title"`
		Started   string `yaml:"started"`
		Entries   int    `yaml:"entries"`
	}
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		t.Fatalf("frontmatter is not valid YAML: %v", err)
	}

	if fm.Character != "Vessa" {
		t.Errorf("character = %q, expected %q", fm.Character, "Vessa")
	}
	if fm.Session != 3 {
		t.Errorf("session = %d, expected 3", fm.Session)
	}
	if fm.Title != "Into the Expanse" {
		t.Errorf("title = %q, expected %q", fm.Title, "Into the Expanse")
	}
	if fm.Started != "2025-03-14T09:30:00Z" {
		t.Errorf("started = %q, expected RFC3339 UTC", fm.Started)
	}
	if fm.Entries != 5 {
		t.Errorf("entries = %d, expected 5", fm.Entries)
	}
}

func TestExportMarkdown_KindStyling(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportMarkdown(&buf, exportTestSession(), "Vessa"); err != nil {
		t.Fatalf("ExportMarkdown() failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Session 3: Into the Expanse\n",
		"\nWe left the station at dawn.\n",
		"\n**Move:** Undertake an Expedition: weak hit\n",
		"\n**Oracle:** Theme: Revenge\n",
		"\n*supply 4 -> 3*\n",
		"\n> Remember the broken beacon.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}

func TestExportMarkdown_EntriesKeepOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportMarkdown(&buf, exportTestSession(), ""); err != nil {
		t.Fatalf("ExportMarkdown() failed: %v", err)
	}
	out := buf.String()

	prev := -1
	for _, text := range []string{
		"We left the station at dawn.",
		"Undertake an Expedition: weak hit",
		"Theme: Revenge",
		"supply 4 -> 3",
		"Remember the broken beacon.",
	} {
		idx := strings.Index(out, text)
		if idx < 0 {
			t.Fatalf("export missing %q", text)
		}
		if idx < prev {
			t.Errorf("entry %q appears out of order", text)
		}
		prev = idx
	}
}

func TestExportMarkdown_Untitled(t *testing.T) {
	s := &session.Session{Number: 1, StartedAt: testStart}

	var buf bytes.Buffer
	if err := ExportMarkdown(&buf, s, ""); err != nil {
		t.Fatalf("ExportMarkdown() failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "# Session 1\n") {
		t.Errorf("expected bare session heading, got:\n%s", out)
	}
	if strings.Contains(out, "character:") {
		t.Errorf("expected character omitted from frontmatter, got:\n%s", out)
	}
	if strings.Contains(out, "title:") {
		t.Errorf("expected title omitted from frontmatter, got:\n%s", out)
	}
}
