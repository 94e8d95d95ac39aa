package germinal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor save produces
const reloadDelay = 100 * time.Millisecond

// Watch follows the user settings file and reloads the store when it
// changes, until ctx is done. schedule runs each reload on the caller's
// event loop; nil runs reloads on the watcher goroutine. The settings
// directory is created if needed so a file written later is seen.
func (s *Store) Watch(ctx context.Context, schedule func(func())) error {
	if schedule == nil {
		schedule = func(fn func()) { fn() }
	}

	dir := filepath.Dir(s.userPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watching settings: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(s.userPath)
	go func() {
		defer w.Close()

		var (
			mu    sync.Mutex
			timer *time.Timer
		)
		trigger := func() {
			mu.Lock()
			defer mu.Unlock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDelay, func() {
				if ctx.Err() == nil {
					schedule(func() { s.Reload() })
				}
			})
		}

		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				mu.Unlock()
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					s.log.Debug("settings file event", "op", ev.Op.String(), "path", ev.Name)
					trigger()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.Warn("settings watcher error", "err", err)
			}
		}
	}()
	return nil
}
