package resfiles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNew_TrimsExtension(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/data/REEK.DATA", "/data/REEK"},
		{"/data/REEK.data", "/data/REEK"},
		{"/data/REEK", "/data/REEK"},
	}

	for _, tc := range cases {
		if got := New(tc.in).Base(); got != tc.want {
			t.Errorf("New(%q).Base() = %q, want %q", tc.in, got, tc.want)
		}
	}

	if got := New("/data/REEK").DataPath(); got != "/data/REEK.DATA" {
		t.Errorf("Expected DataPath /data/REEK.DATA, got %s", got)
	}
}

func TestSmspecPath_Missing(t *testing.T) {
	files := New(filepath.Join(t.TempDir(), "NOCASE"))

	if _, err := files.SmspecPath(); !errors.Is(err, ErrMissingFile) {
		t.Errorf("Expected ErrMissingFile, got %v", err)
	}
}

func TestDeck_Cached(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "CASE.DATA")
	if err := os.WriteFile(path, []byte("START\n 1 JAN 2000 /\n"), 0644); err != nil {
		t.Fatal(err)
	}

	files := New(path)

	first, err := files.Deck()
	if err != nil {
		t.Fatalf("Deck failed: %v", err)
	}

	// Removing the file must not break the cached parse.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	second, err := files.Deck()
	if err != nil {
		t.Fatalf("Cached Deck failed: %v", err)
	}

	if first != second {
		t.Error("Expected the same cached deck instance")
	}
}

func TestSibling(t *testing.T) {
	files := New("/data/cases/CHILD.DATA")

	if got := files.Sibling("PARENT").Base(); got != "/data/cases/PARENT" {
		t.Errorf("Expected relative sibling in case directory, got %s", got)
	}

	if got := files.Sibling("/other/PARENT").Base(); got != "/other/PARENT" {
		t.Errorf("Expected absolute sibling kept, got %s", got)
	}
}
