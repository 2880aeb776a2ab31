// Package watch triggers full site rebuilds when source directories change.
// It never serves the output; it only re-runs the build pipeline.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher debounces filesystem events over a set of directories and invokes
// a rebuild callback after each quiet period.
type Watcher struct {
	fsw      *fsnotify.Watcher
	rebuild  func()
	debounce time.Duration
}

// New creates a Watcher invoking rebuild after changes settle.
func New(rebuild func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		rebuild:  rebuild,
		debounce: 500 * time.Millisecond,
	}, nil
}

// Add registers directories to watch. Missing directories are skipped with a
// warning so optional static subdirectories don't prevent watching.
func (w *Watcher) Add(dirs ...string) error {
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			slog.Warn("Skipping missing watch directory", "dir", dir)
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch directory %s: %w", dir, err)
		}
		slog.Debug("Watching directory", "dir", dir)
	}
	return nil
}

// Run processes events until ctx is canceled. Rapid event bursts collapse
// into a single rebuild per debounce window.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return w.fsw.Close()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				slog.Debug("Change detected", "path", event.Name, "op", event.Op.String())
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", "error", err)
		case <-timer.C:
			w.rebuild()
		}
	}
}
