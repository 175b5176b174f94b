package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchFiles publishes on n whenever a file under dir accepted by match is
// written, created, removed or renamed. It picks up changes made by other
// processes sharing the same storage. Bursts are throttled to one publish per
// 100ms. Watching stops when ctx is done.
func WatchFiles(ctx context.Context, dir string, match func(name string) bool, n *Notifier) error {
	if dir == "" {
		return errors.New("store: watch directory unknown")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}

	logger := slog.Default().With("component", "watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("watcher close", "err", err)
			}
		})
	}

	dirs, err := collectDirs(dir)
	if err != nil {
		closeWatcher()
		return fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			closeWatcher()
			return fmt.Errorf("store: watch %s: %w", d, err)
		}
	}

	go func() {
		defer closeWatcher()

		// Track directories we already watch so we can add new ones at runtime
		// without duplicating watches.
		watched := make(map[string]struct{}, len(dirs))
		for _, d := range dirs {
			watched[d] = struct{}{}
		}

		throttle := newEventThrottle(100*time.Millisecond, n.Publish)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Overflows lose events; refresh everyone to resync.
				logger.Warn("watcher error", "err", err)
				throttle.Enqueue()
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								logger.Warn("watch directory", "dir", absDir, "err", err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						continue
					}
				}

				if evt.Op == fsnotify.Chmod {
					continue
				}
				if match != nil && !match(evt.Name) {
					continue
				}
				throttle.Enqueue()
			}
		}
	}()

	return nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			if d.Name() == stagingDir {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// eventThrottle coalesces rapid change notifications so subscribers re-query
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	fire  func()
}

func newEventThrottle(delay time.Duration, fire func()) *eventThrottle {
	return &eventThrottle{
		delay: delay,
		fire:  fire,
	}
}

func (t *eventThrottle) Enqueue() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, t.flush)
	}
}

func (t *eventThrottle) flush() {
	t.mu.Lock()
	t.timer = nil
	t.mu.Unlock()

	t.fire()
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
