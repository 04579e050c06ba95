package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/tchow/pickview/internal/logging"
)

var watchLog = logging.ForComponent(logging.CompWatch)

// debounceDelay coalesces bursts of events from a single save.
const debounceDelay = 100 * time.Millisecond

// refreshRate caps how often a file that is written continuously (a log,
// a build output) re-runs the preview.
const refreshRate = 2

// Watcher reports changes to the one path the UI currently previews.
// Files are watched through their parent directory so editors that save by
// rename keep being tracked; directories are watched directly.
type Watcher struct {
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	path    string // tracked path, absolute
	watched string // directory registered with fsnotify
	isDir   bool

	ctx     context.Context
	cancel  context.CancelFunc
	limiter *rate.Limiter

	// onChange is called with the tracked path after a debounced change.
	onChange func(path string)
}

// NewWatcher creates a watcher. Call Start in a goroutine to begin watching.
func NewWatcher(onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		watcher:  fw,
		ctx:      ctx,
		cancel:   cancel,
		limiter:  rate.NewLimiter(rate.Limit(refreshRate), 1),
		onChange: onChange,
	}, nil
}

// Track switches the watcher to path. Labels that are not existing paths
// clear the tracked path.
func (w *Watcher) Track(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return w.untrackLocked()
	}
	info, err := os.Stat(abs)
	if err != nil {
		return w.untrackLocked()
	}
	if abs == w.path {
		return nil
	}

	dir := filepath.Dir(abs)
	if info.IsDir() {
		dir = abs
	}
	if dir != w.watched {
		if w.watched != "" {
			_ = w.watcher.Remove(w.watched)
			w.watched = ""
		}
		if err := w.watcher.Add(dir); err != nil {
			w.path = ""
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.watched = dir
	}
	w.path = abs
	w.isDir = info.IsDir()
	watchLog.Debug("watch_tracking", slog.String("path", abs))
	return nil
}

func (w *Watcher) untrackLocked() error {
	if w.watched != "" {
		_ = w.watcher.Remove(w.watched)
	}
	w.path = ""
	w.watched = ""
	w.isDir = false
	return nil
}

// Tracked returns the absolute path being watched, or "".
func (w *Watcher) Tracked() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// relevant reports whether an event touches the tracked path.
func (w *Watcher) relevant(name string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.path == "" {
		return "", false
	}
	if w.isDir {
		return w.path, filepath.Dir(name) == w.path || name == w.path
	}
	return w.path, name == w.path
}

// Start runs the event loop until Stop. Must be called in a goroutine.
func (w *Watcher) Start() {
	var debounceTimer *time.Timer
	var pendingMu sync.Mutex

	for {
		select {
		case <-w.ctx.Done():
			pendingMu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			pendingMu.Unlock()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			path, ok := w.relevant(event.Name)
			if !ok {
				continue
			}

			var fire func()
			fire = func() {
				if w.ctx.Err() != nil || w.Tracked() != path {
					return
				}
				// Over the refresh rate: retry once a token is available.
				r := w.limiter.Reserve()
				if d := r.Delay(); d > 0 {
					r.Cancel()
					pendingMu.Lock()
					debounceTimer = time.AfterFunc(d, fire)
					pendingMu.Unlock()
					return
				}
				watchLog.Debug("watch_changed", slog.String("path", path))
				if w.onChange != nil {
					w.onChange(path)
				}
			}

			pendingMu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, fire)
			pendingMu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			watchLog.Warn("watch_error", slog.String("error", err.Error()))
		}
	}
}

// Stop shuts down the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.cancel()
	_ = w.watcher.Close()
}
