package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it changes on disk and invokes
// onChange with the validated result. It blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself so editors that
// replace the file atomically (rename over) keep triggering events.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	// Editors often emit several events per save; coalesce them.
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			pending = time.After(150 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", "error", err.Error())
		case <-pending:
			pending = nil
			loaded, err := Load(path)
			if err != nil {
				logger.Warn("config reload failed", "path", path, "error", err.Error())
				continue
			}
			for _, w := range loaded.Warnings {
				logger.Warn("config warning", "message", w.Message)
			}
			logger.Info("config reloaded", "path", path)
			onChange(MergeEnv(loaded.Config))
		}
	}
}
