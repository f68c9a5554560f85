// Package watch re-runs a callback when watched files change.
package watch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yacobolo/fluidtype/internal/log"
)

// DefaultDebounce collapses editor save bursts into one run
const DefaultDebounce = 200 * time.Millisecond

// Config configures a watch loop
type Config struct {
	Paths    []string          // Files or directories to watch (not recursive)
	Debounce time.Duration     // 0 = DefaultDebounce
	Filter   func(string) bool // Optional; events for paths it rejects are ignored
}

// Run watches cfg.Paths and calls onChange with the changed paths once
// events settle. It blocks until ctx is cancelled, then returns nil.
// Callback errors are logged and do not stop the loop.
func Run(ctx context.Context, cfg Config, onChange func(ctx context.Context, changed []string) error) error {
	logger := log.WithComponent("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range cfg.Paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	logger.Info().Strs("paths", cfg.Paths).Msg("watching for changes")

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if cfg.Filter != nil && !cfg.Filter(event.Name) {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("file changed")

			pending[event.Name] = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watcher error")

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			clear(pending)

			if err := onChange(ctx, changed); err != nil {
				logger.Error().Err(err).Strs("files", changed).Msg("rebuild failed")
			}
		}
	}
}
