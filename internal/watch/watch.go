// Package watch re-evaluates documents when they change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDefault is the debounce interval for file events. Editors often
// emit several events per save (write, chmod, rename-replace).
const debounceDefault = 200 * time.Millisecond

// Watcher invokes a callback for each watched document that changed,
// coalescing bursts of events.
type Watcher struct {
	paths    map[string]struct{} // absolute paths of watched documents
	debounce time.Duration
	onChange func(path string)
}

// New creates a watcher over the given document paths. onChange runs on
// the watch goroutine; re-evaluation serializes naturally.
func New(paths []string, onChange func(path string)) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no documents to watch")
	}
	if onChange == nil {
		return nil, fmt.Errorf("change callback is required")
	}

	abs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		abs[a] = struct{}{}
	}

	return &Watcher{paths: abs, debounce: debounceDefault, onChange: onChange}, nil
}

// Run blocks until ctx is cancelled, dispatching debounced change
// notifications. Parent directories are watched rather than the files
// themselves: editors that save via rename-replace would otherwise
// silently detach the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	dirs := make(map[string]struct{})
	for p := range w.paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	slog.Info("watching documents", "count", len(w.paths))

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, watched := w.paths[abs]; !watched {
				continue
			}
			slog.Debug("document changed", "path", abs, "op", ev.Op)
			pending[abs] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)

		case <-timer.C:
			for p := range pending {
				w.onChange(p)
			}
			clear(pending)
		}
	}
}
