package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, func(string) {}); err == nil {
		t.Error("expected error for empty path list")
	}
	if _, err := New([]string{"a.org"}, nil); err == nil {
		t.Error("expected error for nil callback")
	}
}

func TestRun_DispatchesDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "notes.org")
	if err := os.WriteFile(doc, []byte("initial\n"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	changed := make(chan string, 1)
	w, err := New([]string{doc}, func(path string) {
		select {
		case changed <- path:
		default:
		}
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register before touching the file
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(doc, []byte("changed\n"), 0o644); err != nil {
		t.Fatalf("rewrite doc: %v", err)
	}

	select {
	case path := <-changed:
		abs, _ := filepath.Abs(doc)
		if path != abs {
			t.Errorf("callback path = %q, want %q", path, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification within 5s")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v after cancel", err)
	}
}

func TestRun_IgnoresUnwatchedSiblings(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "watched.md")
	other := filepath.Join(dir, "other.md")
	for _, p := range []string{doc, other} {
		if err := os.WriteFile(p, []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	changed := make(chan string, 4)
	w, err := New([]string{doc}, func(path string) { changed <- path })
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(other, []byte("y\n"), 0o644); err != nil {
		t.Fatalf("rewrite sibling: %v", err)
	}

	select {
	case path := <-changed:
		t.Errorf("unexpected notification for %q", path)
	case <-time.After(time.Second):
	}
}
