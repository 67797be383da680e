package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRebuildWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	calls := make(chan []string, 4)

	watcher, err := newRebuildWatcher(watchSettings{
		dirs:     []string{dir},
		debounce: 100 * time.Millisecond,
	}, nil, func(ctx context.Context, changed []string) error {
		calls <- changed
		return nil
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	for _, name := range []string{"index.html", "practice.html", "en.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	select {
	case changed := <-calls:
		if len(changed) != 3 {
			t.Fatalf("expected 3 changed paths in one rebuild, got %v", changed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("expected a rebuild after the debounce window")
	}

	select {
	case changed := <-calls:
		t.Fatalf("expected a single rebuild, got a second one for %v", changed)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRebuildWatcherFiltersEvents(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(root, "dist")
	w := &rebuildWatcher{ignore: []string{output}}

	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"template write", fsnotify.Event{Name: filepath.Join(root, "index.html"), Op: fsnotify.Write}, true},
		{"bundle create", fsnotify.Event{Name: filepath.Join(root, "fr.json"), Op: fsnotify.Create}, true},
		{"bundle removed", fsnotify.Event{Name: filepath.Join(root, "fr.json"), Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: filepath.Join(root, "index.html"), Op: fsnotify.Chmod}, false},
		{"unrelated file", fsnotify.Event{Name: filepath.Join(root, "notes.txt"), Op: fsnotify.Write}, false},
		{"generated output", fsnotify.Event{Name: filepath.Join(output, "fr", "index.html"), Op: fsnotify.Write}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.relevant(tc.event); got != tc.want {
				t.Fatalf("relevant(%v) = %v, want %v", tc.event, got, tc.want)
			}
		})
	}
}

func TestNewRebuildWatcherRequiresExistingDirs(t *testing.T) {
	_, err := newRebuildWatcher(watchSettings{
		dirs: []string{filepath.Join(t.TempDir(), "missing")},
	}, nil, func(context.Context, []string) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
