package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a rerun.
const DefaultDebounce = 200 * time.Millisecond

// Watch calls onChange whenever a document Discover would return for opts
// changes. A file root only reacts to changes of that file. Bursts of events are collapsed into one call after
// debounce. Watch blocks until ctx is cancelled.
func (l *Loader) Watch(ctx context.Context, opts DiscoverOptions, debounce time.Duration, onChange func(changed string)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	filter, err := newEventFilter(opts)
	if err != nil {
		return err
	}
	for _, root := range opts.Roots {
		if err := watchTree(watcher, root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						l.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !filter.accepts(event.Name) {
				continue
			}

			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			l.logger.Debug("change detected", "path", pending)
			onChange(pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("watcher error", "error", err)
		}
	}
}

// eventFilter decides which watcher events belong to the watched documents.
type eventFilter struct {
	opts  DiscoverOptions
	files map[string]bool
	dirs  []string
}

func newEventFilter(opts DiscoverOptions) (*eventFilter, error) {
	f := &eventFilter{opts: opts, files: make(map[string]bool)}
	for _, root := range opts.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", root, err)
		}
		if info.IsDir() {
			f.dirs = append(f.dirs, abs)
		} else {
			f.files[abs] = true
		}
	}
	return f, nil
}

func (f *eventFilter) accepts(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if f.files[abs] {
		return true
	}
	for _, dir := range f.dirs {
		rel, err := filepath.Rel(dir, abs)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		if f.opts.walkMatch(abs) {
			return true
		}
	}
	return false
}

// watchTree adds dir and every non-hidden subdirectory to the watcher.
// A file root is watched through its parent directory.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
