// Package watcher provides file system watching with debouncing for the
// opened file. The editor never reloads the buffer; a change on disk only
// produces a notice.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"ved/internal/log"
)

// Watcher monitors the opened file for external changes and sends
// notifications.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	filePath  string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	FilePath    string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for watching the given file.
func DefaultConfig(filePath string) Config {
	return Config{
		FilePath:    filePath,
		DebounceDur: 100 * time.Millisecond,
	}
}

// New creates a new file watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		filePath:  cfg.FilePath,
		debounce:  cfg.DebounceDur,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the file's directory.
// Returns a channel that receives a signal when the file changes.
// Watching the directory instead of the file itself survives editors that
// save by writing a temp file and renaming it over the original.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.filePath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing. A burst of writes,
// as produced by most save implementations, collapses into one signal.
func (w *Watcher) loop() {
	// A nil timer channel never fires, so the debounce case stays idle
	// until the first relevant event arms it.
	var timer *time.Timer
	timerC := func() <-chan time.Time {
		if timer == nil {
			return nil
		}
		return timer.C
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			timer = w.resetDebounce(timer)

		case <-timerC():
			timer = nil
			w.notify()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal; keep watching
			log.Warn(log.CatWatcher, "watch error", "path", w.filePath, "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// resetDebounce arms the debounce timer, restarting it when it is already
// running.
func (w *Watcher) resetDebounce(timer *time.Timer) *time.Timer {
	if timer == nil {
		return time.NewTimer(w.debounce)
	}
	if !timer.Stop() {
		// Drain the channel if the timer already fired
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(w.debounce)
	return timer
}

// notify signals a change without blocking. If the editor has not picked
// up the previous signal yet the new one is dropped; one pending notice
// is enough.
func (w *Watcher) notify() {
	select {
	case w.onChange <- struct{}{}:
	default:
	}
}

// isRelevantEvent checks if the event should trigger a change signal.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	// Writes and creates both matter: rename-style saves re-create the file
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}

	return filepath.Base(event.Name) == filepath.Base(w.filePath)
}
