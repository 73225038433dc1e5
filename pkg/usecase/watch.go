package usecase

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/goerr/v2"

	"github.com/ltth-app/siteops/pkg/domain/interfaces"
	"github.com/ltth-app/siteops/pkg/domain/model"
	"github.com/ltth-app/siteops/pkg/domain/types"
	"github.com/ltth-app/siteops/pkg/utils/logging"
	"github.com/ltth-app/siteops/pkg/utils/safe"
)

// DefaultSettle is how long the incoming location must stay quiet before a
// release runs. Uploads arrive as many file events.
const DefaultSettle = 2 * time.Second

// Watcher runs a release whenever the incoming location changes
type Watcher struct {
	release interfaces.ReleaseUseCase
	dir     string
	settle  time.Duration
	onRun   func(*model.ReleaseResult, error)
}

// WatchOption customizes the Watcher
type WatchOption func(*Watcher)

// WithSettle sets the quiet period before a release runs
func WithSettle(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithRunHook registers a callback invoked after every release run
func WithRunHook(fn func(*model.ReleaseResult, error)) WatchOption {
	return func(w *Watcher) {
		w.onRun = fn
	}
}

// NewWatcher creates a Watcher on dir, the incoming location on disk.
func NewWatcher(release interfaces.ReleaseUseCase, dir string, opts ...WatchOption) *Watcher {
	w := &Watcher{
		release: release,
		dir:     dir,
		settle:  DefaultSettle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run releases once, then again after each settled burst of changes, until
// ctx is cancelled. Release failures are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.From(ctx)

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create incoming location", goerr.V("dir", w.dir), goerr.T(types.ErrTagIO))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return goerr.Wrap(err, "failed to create fsnotify watcher", goerr.T(types.ErrTagIO))
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return goerr.Wrap(err, "failed to watch incoming location", goerr.V("dir", w.dir), goerr.T(types.ErrTagIO))
	}
	logger.Info("Watching incoming location", "dir", w.dir, "settle", w.settle.String())

	w.runOnce(ctx)

	// nil until the first event of a burst
	var settled <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Incoming change", "path", event.Name, "op", event.Op.String())

			// Candidate directories are watched too so that files copied
			// into them keep extending the burst.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fsw.Add(event.Name); err != nil {
						logger.Warn("Failed to watch candidate directory", "path", event.Name, "error", err)
					}
				}
			}
			settled = time.After(w.settle)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)

		case <-settled:
			settled = nil
			w.runOnce(ctx)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	_ = safe.Run(ctx, "release", func(ctx context.Context) error {
		result, err := w.release.Run(ctx)
		if w.onRun != nil {
			w.onRun(result, err)
		}
		return err
	})
}
