package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor or sync tool
// produces when it rewrites a file.
const DefaultDebounce = 250 * time.Millisecond

// Watch reports changes to the file at path on the returned channel. It
// watches the parent directory so that atomic replaces (write to temp, then
// rename) are seen. Signals are coalesced: at most one is pending at a time.
// The channel is closed when ctx is cancelled or the watcher fails.
func Watch(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	changes := make(chan struct{}, 1)
	go watchLoop(ctx, w, filepath.Base(path), debounce, changes, logger)
	return changes, nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, file string, debounce time.Duration, changes chan<- struct{}, logger *slog.Logger) {
	defer close(changes)
	defer w.Close()

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != file || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("feed change detected", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case <-timer.C:
			select {
			case changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("feed watch error", "error", err)
		}
	}
}
