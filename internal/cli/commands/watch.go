package commands

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// checkWatcher reports batches of changed query files.
type checkWatcher struct {
	watcher *fsnotify.Watcher
	exts    []string
	files   map[string]bool // explicitly named files
	dirs    map[string]bool // recursively watched roots
	logger  *slog.Logger
}

// newCheckWatcher starts watching paths. Directories are watched
// recursively; for a file its parent directory is watched and events are
// filtered to that file.
func newCheckWatcher(paths, exts []string, logger *slog.Logger) (*checkWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &checkWatcher{
		watcher: watcher,
		exts:    exts,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		logger:  logger,
	}

	for _, p := range paths {
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		if err != nil {
			_ = watcher.Close()
			return nil, err
		}
		if info.IsDir() {
			w.dirs[p] = true
			err = w.watchDirRecursive(p)
		} else {
			w.files[p] = true
			err = watcher.Add(filepath.Dir(p))
		}
		if err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}
	return w, nil
}

// Close stops the watcher.
func (w *checkWatcher) Close() error {
	return w.watcher.Close()
}

func (w *checkWatcher) watchDirRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return w.watcher.Add(path)
		}
		return nil
	})
}

// relevant reports whether a change to path should trigger a re-check.
func (w *checkWatcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if w.files[path] {
		return true
	}
	if !hasExtension(path, w.exts) {
		return false
	}
	for dir := range w.dirs {
		if dir == "." || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run delivers changed files to fn, batched so that fn runs once per quiet
// period of length debounce. It returns when ctx is done or the watcher is
// closed.
func (w *checkWatcher) Run(ctx context.Context, debounce time.Duration, fn func(changed []string)) error {
	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.relevantDir(event.Name) {
					if err := w.watchDirRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			pending[filepath.Clean(event.Name)] = true

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			var changed []string
			for path := range pending {
				// Renamed-away files drop out here.
				if _, err := os.Stat(path); err == nil {
					changed = append(changed, path)
				}
			}
			clear(pending)
			if len(changed) == 0 {
				continue
			}
			slices.Sort(changed)
			fn(changed)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *checkWatcher) relevantDir(path string) bool {
	path = filepath.Clean(path)
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	for dir := range w.dirs {
		if dir == "." || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
