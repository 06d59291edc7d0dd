package bench

import (
	"os"
	"path/filepath"
	"testing"
)

// writeCorpus creates a corpus directory under parent and returns its path.
func writeCorpus(t *testing.T, parent, name, ref, hyp string) string {
	t.Helper()
	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, RefFile), []byte(ref), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, HypFile), []byte(hyp), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadCorpus(t *testing.T) {
	dir := writeCorpus(t, t.TempDir(), "dev1",
		"# duration: 120\nKW1 1 100 140 1\nKW2 2 10 30 1\n",
		"KW1 1 105 140 0.8\n")

	c, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}
	if c.ID != "dev1" {
		t.Errorf("ID = %q, want %q", c.ID, "dev1")
	}
	if c.Duration != 120 {
		t.Errorf("Duration = %v, want 120", c.Duration)
	}
	if len(c.Refs) != 2 || len(c.Hyps) != 1 {
		t.Errorf("got %d refs, %d hyps; want 2, 1", len(c.Refs), len(c.Hyps))
	}
}

func TestLoadCorpus_DurationFromHypotheses(t *testing.T) {
	dir := writeCorpus(t, t.TempDir(), "dev2", "KW1 1 0 10 1\n", "# duration: 60\n")

	c, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}
	if c.Duration != 60 {
		t.Errorf("Duration = %v, want 60", c.Duration)
	}
}

func TestLoadCorpus_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadCorpus(dir); err == nil {
		t.Error("expected error for directory without term lists")
	}
	if _, err := LoadCorpus(filepath.Join(dir, "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoadCorpora(t *testing.T) {
	parent := t.TempDir()
	a := writeCorpus(t, parent, "a", "KW 0 0 10 1\n", "")
	b := writeCorpus(t, parent, "b", "KW 0 0 10 1\n", "")

	corpora, err := LoadCorpora([]string{a, b})
	if err != nil {
		t.Fatalf("LoadCorpora() error = %v", err)
	}
	if len(corpora) != 2 || corpora[0].ID != "a" || corpora[1].ID != "b" {
		t.Errorf("LoadCorpora() order = %v, want [a b]", corpora)
	}

	if _, err := LoadCorpora(nil); err == nil {
		t.Error("expected error for empty corpus list")
	}
}
