package lexicon

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcher_ReloadOnRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.json")

	if err := Default().Save(path); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var mu sync.Mutex
	var got *Lexicon
	w, err := NewWatcher(path, func(l *Lexicon) {
		mu.Lock()
		got = l
		mu.Unlock()
	}, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	updated := Default()
	updated.Add("Trabant", "trabant")
	if err := updated.Save(path); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		l := got
		mu.Unlock()
		if l != nil {
			if r := l.Resolve("trabant"); r != "Trabant" {
				t.Fatalf("reloaded lexicon Resolve(trabant) = %q, want Trabant", r)
			}
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("watcher did not deliver a reload before the deadline")
}

func TestWatcher_FailedStartReleasesWatcher(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-dir", "lexicon.json")

	w, err := NewWatcher(missing, func(*Lexicon) {}, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected Start to fail for a missing parent directory")
	}

	// The run loop never started, so Start itself must have closed the
	// fsnotify watcher; a closed watcher has a closed events channel.
	select {
	case _, open := <-w.fsw.Events:
		if open {
			t.Fatal("events channel still open after failed Start")
		}
	case <-time.After(time.Second):
		t.Fatal("events channel not closed after failed Start")
	}
}
