// Package watch keeps a working tree sanitized continuously by re-running
// the redaction pass on files as they change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"scrub/internal/sanitize"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-sanitizes eligible files on filesystem write events. It never
// stages; staging stays a one-shot run concern.
type Watcher struct {
	sanitizer *sanitize.Sanitizer
	watcher   *fsnotify.Watcher
	root      string
	mu        sync.Mutex
	logger    *zap.Logger
}

func New(root string, s *sanitize.Sanitizer, logger *zap.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		sanitizer: s,
		watcher:   watcher,
		root:      root,
		logger:    logger,
	}

	if err := w.addDirs(); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching directories: %w", err)
	}

	return w, nil
}

// addDirs registers every non-excluded directory under the root.
func (w *Watcher) addDirs() error {
	return filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(w.root, path)
		if err != nil {
			return fmt.Errorf("getting relative path: %w", err)
		}
		if relPath != "." && w.sanitizer.Classifier.IsExcluded(relPath+"/") {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("adding directory to watcher: %w", err)
		}
		return nil
	})
}

// Run processes filesystem events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	relPath, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		w.logger.Error("getting relative path", zap.Error(err))
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.sanitizer.Classifier.IsExcluded(relPath + "/") {
				return
			}
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Error("adding new directory to watcher", zap.Error(err))
			}
			return
		}
		w.sanitizePath(relPath)

	case event.Op&fsnotify.Write == fsnotify.Write:
		w.sanitizePath(relPath)
	}
}

func (w *Watcher) sanitizePath(relPath string) {
	changed, err := w.sanitizer.SanitizeFile(relPath)
	if err != nil {
		w.logger.Error("sanitizing file",
			zap.String("path", relPath),
			zap.Error(err))
		return
	}
	if changed {
		w.logger.Info("rewrote file", zap.String("path", relPath))
	}
}

// Close cleans up resources
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
