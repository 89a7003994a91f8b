package site

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/goliatone/go-sitegen/pkg/challenge"
)

// DefaultWatchQuiet is the settle window applied to filesystem event bursts
// before a rebuild runs.
const DefaultWatchQuiet = 250 * time.Millisecond

// Watch rebuilds the site whenever a watched input changes. Event bursts
// (editors often write several times per save) collapse into one rebuild per
// quiet window. Watch blocks until ctx is cancelled.
func (b *Builder) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("site: create watcher: %w", err)
	}
	defer watcher.Close()

	paths := b.watchPaths()
	if len(paths) == 0 {
		return fmt.Errorf("site: nothing to watch")
	}
	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("site: watch %s: %w", path, err)
		}
	}

	rebuilds := make(chan struct{}, 1)
	debouncer := challenge.NewDebouncer(challenge.SystemClock(), DefaultWatchQuiet)
	defer debouncer.Stop()

	if err := b.Build(ctx); err != nil {
		b.logger.Warn("initial build failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			b.logger.Debug("input changed", zap.String("file", event.Name))
			debouncer.Trigger(func() {
				select {
				case rebuilds <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger.Warn("watch error", zap.Error(err))
		case <-rebuilds:
			if err := b.Build(ctx); err != nil {
				b.logger.Warn("rebuild failed", zap.Error(err))
			}
		}
	}
}

// watchPaths lists the parent directories of every configured input file.
// Watching directories instead of files survives editors that replace files
// on save.
func (b *Builder) watchPaths() []string {
	inputs := []string{
		b.config.Content.Articles,
		b.config.Content.Skills,
		b.config.Content.Projects,
		b.config.Contact.OpenAPI,
	}

	seen := make(map[string]struct{}, len(inputs))
	var paths []string
	for _, input := range inputs {
		if input == "" {
			continue
		}
		dir := filepath.Dir(input)
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}
		paths = append(paths, dir)
	}
	return paths
}
