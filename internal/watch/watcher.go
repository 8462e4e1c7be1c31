package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"

	"phono/internal/config"
	"phono/internal/logging"
)

// BuildFunc runs one full site rebuild.
type BuildFunc func(ctx context.Context) error

// Watcher rebuilds the site whenever the content, template, or static trees
// change. Change bursts are debounced, and rebuild requests coalesce so at
// most one build runs at a time with at most one more queued behind it.
type Watcher struct {
	cfg      *config.Config
	logger   *slog.Logger
	build    BuildFunc
	debounce time.Duration
}

// New constructs a watcher around the given build function.
func New(cfg *config.Config, logger *slog.Logger, build BuildFunc) *Watcher {
	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "watch"),
		build:    build,
		debounce: debounce,
	}
}

// Run performs an initial build and then blocks, rebuilding on changes until
// the context is cancelled. Only one watcher may run per site at a time; the
// second instance fails fast instead of fighting over the output tree.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.cfg.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("ensure lock directory: %w", err)
	}
	lock := flock.New(filepath.Join(w.cfg.Paths.LogDir, "phono.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire watch lock: %w", err)
	}
	if !locked {
		return errors.New("another watch instance is already running")
	}
	defer lock.Unlock()

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer notifier.Close()

	for _, root := range []string{w.cfg.Paths.ContentDir, w.cfg.Paths.TemplatesDir, w.cfg.Paths.StaticDir} {
		if err := addTree(notifier, root); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	trigger := make(chan struct{}, 1)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		w.runBuilds(ctx, trigger)
	}()

	requestRebuild(trigger)
	w.logger.Info("watching for changes",
		slog.String("content", w.cfg.Paths.ContentDir),
		slog.Duration("debounce", w.debounce))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			<-workerDone
			return ctx.Err()
		case event, ok := <-notifier.Events:
			if !ok {
				cancel()
				<-workerDone
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			// New directories must be registered or edits inside them
			// go unseen.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(notifier, event.Name); err != nil {
						w.logger.Warn("watch new directory", slog.Any("error", err))
					}
				}
			}
			w.logger.Debug("change detected",
				slog.String("path", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-notifier.Errors:
			if !ok {
				cancel()
				<-workerDone
				return nil
			}
			w.logger.Warn("watch error", slog.Any("error", err))
		case <-timer.C:
			requestRebuild(trigger)
		}
	}
}

// runBuilds drains the trigger channel, running one build per request.
func (w *Watcher) runBuilds(ctx context.Context, trigger <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-trigger:
			if err := w.build(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				// The watcher stays up through broken builds so the
				// author can fix the input and save again.
				w.logger.Error("rebuild failed", slog.Any("error", err))
			}
		}
	}
}

// requestRebuild queues a rebuild without blocking. The channel holds at most
// one pending request, so bursts collapse into a single follow-up build.
func requestRebuild(trigger chan<- struct{}) {
	select {
	case trigger <- struct{}{}:
	default:
	}
}

// relevantEvent filters out noise that should not schedule a rebuild:
// permission churn and editor swap files.
func relevantEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if len(base) > 0 && base[len(base)-1] == '~' {
		return false
	}
	switch filepath.Ext(base) {
	case ".swp", ".swx", ".tmp":
		return false
	}
	return true
}

func addTree(notifier *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return nil
			}
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if err := notifier.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
