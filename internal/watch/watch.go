// Package watch reruns work when TAL sources change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"talfront/internal/logging"
)

// DefaultDebounce is the quiet period before a batch of changes is delivered.
const DefaultDebounce = 150 * time.Millisecond

// Config describes what to watch.
type Config struct {
	// Path is a file or a directory; directories are watched recursively.
	Path string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// Match selects the files that count as changes; nil accepts all.
	Match  func(path string) bool
	Logger *slog.Logger
}

// Run watches cfg.Path until ctx is done and calls onChange with the
// sorted set of paths that changed during each quiet period. onChange runs
// on the watching goroutine; events arriving meanwhile are queued.
func Run(ctx context.Context, cfg Config, onChange func(paths []string)) error {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	logger := logging.OrDiscard(cfg.Logger)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	info, err := os.Stat(cfg.Path)
	if err != nil {
		return err
	}
	single := ""
	if info.IsDir() {
		if err := addTree(w, cfg.Path); err != nil {
			return err
		}
	} else {
		// файл следим через каталог: редакторы заменяют файл переименованием
		single = filepath.Clean(cfg.Path)
		if err := w.Add(filepath.Dir(single)); err != nil {
			return err
		}
	}
	logger.Info("watching", "path", cfg.Path, "debounce_ms", cfg.Debounce.Milliseconds())

	pending := map[string]struct{}{}
	timer := time.NewTimer(cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			name := filepath.Clean(ev.Name)
			if ev.Has(fsnotify.Create) && single == "" {
				if st, err := os.Stat(name); err == nil && st.IsDir() {
					if err := addTree(w, name); err != nil {
						logger.Warn("cannot watch directory", "path", name, "err", err)
					}
					continue
				}
			}
			if single != "" && name != single {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if cfg.Match != nil && !cfg.Match(name) {
				continue
			}
			logger.Debug("change", "path", name, "op", ev.Op.String())
			pending[name] = struct{}{}
			timer.Reset(cfg.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			logger.Error("watcher error", "err", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			onChange(paths)
		}
	}
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
