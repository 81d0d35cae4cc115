package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// waitFor reads events until want arrives. Repeats of earlier files are
// skipped; anything else fails the test.
func waitFor(t *testing.T, w *Watcher, want string, skip ...string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if name == want {
				return
			}
			if !contains(skip, name) {
				t.Fatalf("unexpected event %q, want %q", name, want)
			}
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestWatcherReportsSpecAndScriptChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(spec, []byte("name: player\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, w, spec)

	script := filepath.Join(dir, "runner.tengo")
	if err := os.WriteFile(script, []byte("update := func(e, s) {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, w, script, spec)
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("Events should be closed")
	}
	if _, ok := <-w.Errors; ok {
		t.Fatalf("Errors should be closed")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestFileFilters(t *testing.T) {
	cases := map[string][2]bool{
		"a.yaml":  {true, false},
		"a.YML":   {true, false},
		"a.tengo": {false, true},
		"a.lua":   {false, false},
		"a.txt":   {false, false},
	}
	for name, want := range cases {
		if isSpecFile(name) != want[0] || isScriptFile(name) != want[1] {
			t.Errorf("%s: spec=%v script=%v", name, isSpecFile(name), isScriptFile(name))
		}
	}
}
