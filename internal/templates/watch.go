package templates

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the write+rename bursts editors produce into one reload.
const reloadDebounce = 100 * time.Millisecond

// Watch reloads both lists whenever either file changes and hands the new Set to apply.
// A reload that fails (for example a list emptied mid-edit) is logged and the previous
// Set stays in effect. Watch blocks until ctx is done.
func Watch(ctx context.Context, rtPath, tagPath string, apply func(Set)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Directories, not files: a rename-over replaces the watched inode.
	names := map[string]bool{}
	for _, p := range []string{rtPath, tagPath} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		names[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	trigger := make(chan struct{}, 1)
	var mu sync.Mutex
	var timer *time.Timer
	debounce := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(reloadDebounce, func() {
			select {
			case trigger <- struct{}{}:
			default:
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
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("template watcher closed")
			}
			if !names[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				debounce()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("template watcher closed")
			}
			slog.Warn("template watcher error", slog.Any("error", err))

		case <-trigger:
			set, err := Load(rtPath, tagPath)
			if err != nil {
				slog.Warn("template reload rejected, keeping previous lists", slog.Any("error", err))
				continue
			}
			slog.Info("templates reloaded", slog.Int("retweet", len(set.Retweet)), slog.Int("tag", len(set.Tag)))
			apply(set)
		}
	}
}
