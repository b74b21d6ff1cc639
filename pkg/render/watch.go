package render

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/map-framework/addon-mode-site/pkg/logger"
)

// Resetter drops cached templates.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Watch resets r whenever a file under dir changes. It blocks until ctx is done.
func Watch(ctx context.Context, dir string, r Resetter, log *slog.Logger) error {
	if log == nil {
		log = logger.NewNope()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("render: create watcher: %w", err)
	}
	defer w.Close()

	if err := addRecursive(w, dir); err != nil {
		return fmt.Errorf("render: watch %s: %w", dir, err)
	}
	log.InfoContext(ctx, "watching templates", slog.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if err := addRecursive(w, event.Name); err != nil {
					log.DebugContext(ctx, "skip new path", slog.String("path", event.Name), slog.Any("error", err))
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if err := r.Reset(ctx); err != nil {
				log.WarnContext(ctx, "template cache reset failed", slog.Any("error", err))
				continue
			}
			log.DebugContext(ctx, "templates reloaded", slog.String("path", event.Name), slog.String("op", event.Op.String()))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WarnContext(ctx, "template watcher error", slog.Any("error", err))
		}
	}
}

// addRecursive watches root and every directory below it. Plain files are ignored.
func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
