// Package watch ingests OTDS documents as they are dropped into a directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/solatis/otds/internal/core/config"
	"github.com/solatis/otds/internal/core/ingest"
)

// Ingester reads one document file.
type Ingester interface {
	IngestFile(ctx context.Context, path string) (*ingest.Result, error)
}

// Watcher feeds new and rewritten files in one directory to an Ingester.
// A file is ingested once no event has touched it for the debounce interval.
// Files are ingested one at a time, oldest event first, with ties by name.
type Watcher struct {
	dir    string
	cfg    config.WatchConfig
	ing    Ingester
	logger *slog.Logger

	// OnResult, if set, is called after every ingestion attempt.
	OnResult func(path string, res *ingest.Result, err error)
}

// New returns a watcher for dir.
func New(dir string, cfg config.WatchConfig, ing Ingester, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{dir: dir, cfg: cfg, ing: ing, logger: logger}
}

// Run watches until ctx is cancelled. Ingestion failures are logged and do
// not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.logger.Info("watcher started", "dir", w.dir, "debounce_ms", w.cfg.Debounce.Milliseconds())

	pending := make(map[string]time.Time)
	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped", "pending", len(pending))
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			pending[event.Name] = time.Now()
			timer.Reset(w.cfg.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watcher error", "error", err)

		case <-timer.C:
			next := w.flush(ctx, pending)
			if next > 0 {
				timer.Reset(next)
			}
		}
	}
}

// flush ingests every pending file that has been quiet for the debounce
// interval and returns the wait until the next one is due, or 0.
func (w *Watcher) flush(ctx context.Context, pending map[string]time.Time) time.Duration {
	now := time.Now()
	var due []string
	var next time.Duration
	for path, last := range pending {
		if wait := w.cfg.Debounce - now.Sub(last); wait > 0 {
			if next == 0 || wait < next {
				next = wait
			}
			continue
		}
		due = append(due, path)
	}
	sort.Slice(due, func(i, j int) bool {
		if !pending[due[i]].Equal(pending[due[j]]) {
			return pending[due[i]].Before(pending[due[j]])
		}
		return due[i] < due[j]
	})

	for _, path := range due {
		delete(pending, path)
		if ctx.Err() != nil {
			return 0
		}
		if _, err := os.Stat(path); err != nil {
			w.logger.Debug("skipping vanished file", "path", path)
			continue
		}
		res, err := w.ing.IngestFile(ctx, path)
		if err != nil {
			w.logger.Warn("ingestion failed", "path", path, "error", err)
		}
		if w.OnResult != nil {
			w.OnResult(path, res, err)
		}
	}
	return next
}

// relevant reports whether event names a document worth ingesting.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return w.cfg.HasExtension(event.Name)
}
