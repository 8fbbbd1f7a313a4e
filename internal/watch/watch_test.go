package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsDocument(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"/corpus/1.html", true},
		{"/corpus/page.html", true},
		{"/corpus/notes.txt", false},
		{"/corpus/.magnetar/history.db", false},
	}
	for _, tt := range tests {
		if got := isDocument(tt.name); got != tt.want {
			t.Errorf("isDocument(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "1.html")
	if err := os.WriteFile(page, []byte(`<a href="2.html">x</a>`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(page, []byte(`<a href="3.html">y</a>`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Changes:
		if change.File != page {
			t.Errorf("change.File = %s, want %s", change.File, page)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported within 2s")
	}
}

func TestWatcher_IgnoresNonDocuments(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Changes:
		t.Errorf("unexpected change for %s", change.File)
	case <-time.After(300 * time.Millisecond):
		// Expected: nothing reported.
	}
}
