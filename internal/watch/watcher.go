package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/idlocator/internal/debug"
	"github.com/standardbeagle/idlocator/internal/store"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher reloads a Dataset when files matching its location change on disk.
// Events are debounced so an editor's write-rename-chmod burst costs one
// reload.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dataset  *Dataset
	debounce time.Duration

	// absolute location; a pattern when isPattern is set
	target    string
	isPattern bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	onReload func(changed bool, err error)
}

// NewWatcher creates a watcher for d. debounceMs <= 0 uses 300ms.
func NewWatcher(d *Dataset, debounceMs int) (*Watcher, error) {
	if d.Location() == "" {
		return nil, errors.New("the built-in sample dataset cannot be watched")
	}

	target, err := filepath.Abs(d.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", d.Location(), err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	debounce := defaultDebounce
	if debounceMs > 0 {
		debounce = time.Duration(debounceMs) * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		watcher:   watcher,
		dataset:   d,
		debounce:  debounce,
		target:    target,
		isPattern: store.IsPattern(d.Location()),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// OnReload registers a callback run after every debounced reload attempt.
// It must be set before Start.
func (w *Watcher) OnReload(fn func(changed bool, err error)) {
	w.onReload = fn
}

// Start adds the watches and begins processing events
func (w *Watcher) Start() error {
	root := w.watchRoot()
	debug.LogWatch("Starting dataset watcher for %s (root %s)\n", w.target, root)

	if err := w.addWatches(root); err != nil {
		return fmt.Errorf("failed to add watches starting from %s: %w", root, err)
	}

	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop stops the watcher. Pending events are dropped.
func (w *Watcher) Stop() error {
	w.cancel()

	if err := w.watcher.Close(); err != nil {
		log.Printf("Error closing fsnotify watcher: %v", err)
	}

	w.wg.Wait()
	debug.LogWatch("Dataset watcher stopped\n")
	return nil
}

// watchRoot is the directory to watch: the file's directory, or the static
// prefix of a pattern
func (w *Watcher) watchRoot() string {
	if !w.isPattern {
		return filepath.Dir(w.target)
	}
	base, _ := doublestar.SplitPattern(filepath.ToSlash(w.target))
	return filepath.FromSlash(base)
}

// addWatches watches root and, for patterns, every directory beneath it.
// Directories are watched rather than files so replace-by-rename is seen.
func (w *Watcher) addWatches(root string) error {
	if !w.isPattern {
		return w.watcher.Add(root)
	}

	visitedDirs := make(map[string]bool)
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !entry.IsDir() {
			return nil
		}

		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if visitedDirs[realPath] {
			return filepath.SkipDir
		}
		visitedDirs[realPath] = true

		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to add watch for %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.handleEvent(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Dataset watcher error: %v", err)

		case <-timer.C:
			w.reload()
		}
	}
}

// handleEvent reports whether the event should trigger a reload
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	path := filepath.Clean(event.Name)
	debug.LogWatch("received event %v for path %s\n", event.Op, path)

	if event.Op&fsnotify.Create != 0 && w.isPattern {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addWatches(path); err != nil {
				log.Printf("Warning: failed to add watch for new directory %s: %v", path, err)
			}
			// files may have landed before the watch existed
			return true
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return w.matches(path)
}

func (w *Watcher) matches(path string) bool {
	if !w.isPattern {
		return path == w.target
	}
	matched, err := doublestar.PathMatch(w.target, path)
	return err == nil && matched
}

func (w *Watcher) reload() {
	changed, err := w.dataset.Reload()
	if err != nil {
		log.Printf("Warning: reload of %s failed, keeping previous snapshot: %v", w.dataset.Location(), err)
	} else if changed {
		log.Printf("Reloaded dataset %s (%d records)", w.dataset.Location(), w.dataset.Snapshot().Len())
	}

	if w.onReload != nil {
		w.onReload(changed, err)
	}
}
