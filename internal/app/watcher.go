package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDuration = 100 * time.Millisecond

// Watcher reports changes to a schema and its instance documents. Files are
// watched through their parent directory so that editors which replace files
// on save are still seen. Directories are watched recursively for .json files.
type Watcher struct {
	logger *slog.Logger
	Ready  chan struct{}

	files map[string]bool // cleaned file paths of interest
	dirs  []string        // directories whose .json files are of interest

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher watches the given files and directories.
func NewWatcher(paths []string, logger *slog.Logger) *Watcher {
	w := &Watcher{
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		files:      make(map[string]bool),
		newWatcher: fsnotify.NewWatcher,
	}
	for _, p := range paths {
		clean := filepath.Clean(p)
		if info, err := os.Stat(clean); err == nil && info.IsDir() {
			w.dirs = append(w.dirs, clean)
			continue
		}
		w.files[clean] = true
	}
	return w
}

// Watch calls onChange with the changed path after each burst of changes, and
// blocks until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, onChange func(path string)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for f := range w.files {
		if err := watcher.Add(filepath.Dir(f)); err != nil {
			return err
		}
	}
	for _, d := range w.dirs {
		if err := w.addRecursive(watcher, d); err != nil {
			return err
		}
	}

	w.logger.Info("Watching for changes", "files", len(w.files), "dirs", len(w.dirs))
	if w.Ready != nil {
		close(w.Ready)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	// Held while onChange runs so that a slow run finishes before the next.
	var running sync.Mutex
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(watcher, event) {
				continue
			}
			changed := event.Name
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDuration, func() {
				running.Lock()
				defer running.Unlock()
				if ctx.Err() == nil {
					onChange(changed)
				}
			})
			mu.Unlock()
		}
	}
}

// relevant reports whether the event concerns a watched file. New directories
// beneath a watched directory are added to the watcher.
func (w *Watcher) relevant(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}

	if !w.inWatchedDir(name) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if err := w.addRecursive(watcher, name); err != nil {
				w.logger.Error("Failed to watch new directory", "path", name, "error", err)
			}
			return false
		}
	}

	return strings.EqualFold(filepath.Ext(name), ".json")
}

func (w *Watcher) inWatchedDir(name string) bool {
	for _, d := range w.dirs {
		if rel, err := filepath.Rel(d, name); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

// addRecursive adds root and its subdirectories, skipping hidden ones.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(filepath.Base(path), ".") && path != root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
