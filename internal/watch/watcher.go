// Package watch triggers automatic quick-saves while the game runs.
//
// Two trigger sources are supported and may be combined: filesystem events
// on the save directory (debounced, so one in-game save producing a burst of
// writes yields one snapshot) and a cron schedule for periodic captures.
// Both funnel into the lifecycle manager, which serializes them against
// manual triggers; a tick that lands while another operation is in flight is
// simply dropped.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	vsmerrors "github.com/thoreinstein/vsave/internal/errors"
	"github.com/thoreinstein/vsave/internal/lifecycle"
)

// DefaultDebounce is the quiet period after the last filesystem event
// before a snapshot is captured.
const DefaultDebounce = 2 * time.Second

// Watcher drives automatic snapshots of one save directory.
type Watcher struct {
	manager  *lifecycle.Manager
	saveDir  string
	debounce time.Duration
	schedule string
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period for filesystem-triggered captures.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithSchedule adds a cron schedule (standard 5-field spec) for periodic
// captures. Empty means no scheduled captures.
func WithSchedule(spec string) Option {
	return func(w *Watcher) {
		w.schedule = spec
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher that captures snapshots of saveDir via manager.
func New(manager *lifecycle.Manager, saveDir string, opts ...Option) *Watcher {
	w := &Watcher{
		manager:  manager,
		saveDir:  saveDir,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. Individual capture failures are
// logged, not fatal; only setup errors end the run early.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating filesystem watcher")
	}
	defer fw.Close()

	if err := w.addTree(fw, w.saveDir); err != nil {
		return err
	}

	if w.schedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(w.schedule, w.capture); err != nil {
			return errors.Wrapf(err, "parsing schedule %q", w.schedule)
		}
		c.Start()
		defer c.Stop()
		w.logger.Info("scheduled captures enabled", "schedule", w.schedule)
	}

	w.logger.Info("watching save directory", "save_dir", w.saveDir, "debounce", w.debounce)

	// Debounce timer, created stopped
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				// The game may add new subdirectories; watch them too
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := fw.Add(ev.Name); err != nil {
						w.logger.Warn("watching new subdirectory", "path", ev.Name, "error", err)
					}
				}
			}
			if ev.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("filesystem watcher", "error", err)

		case <-timer.C:
			w.capture()
		}
	}
}

// capture performs one quick-save, tolerating busy and transient failures.
func (w *Watcher) capture() {
	_, err := w.manager.QuickSave()
	switch {
	case err == nil:
	case errors.Is(err, vsmerrors.ErrBusy):
		w.logger.Debug("capture skipped, operation in flight")
	default:
		w.logger.Warn("automatic capture failed", "error", err)
	}
}

// addTree registers dir and all its subdirectories with the watcher.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %s", path)
		}
		if !d.IsDir() {
			return nil
		}
		return errors.Wrapf(fw.Add(path), "watching %s", path)
	})
}
