package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"md5tap/internal/config"
	"md5tap/internal/digest"
	"md5tap/internal/faults"
	"md5tap/internal/logging"
	"md5tap/internal/observer"
	"md5tap/internal/pipeline"
	"md5tap/internal/store"
)

// Watcher observes every new file appearing under a directory.
type Watcher struct {
	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger

	dir      string
	settle   time.Duration
	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// New constructs a Watcher. The store may be nil when history is disabled;
// observations then go to the log only.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, errors.New("watch requires config")
	}
	dir := cfg.Watch.Dir
	if dir == "" {
		return nil, faults.Wrap(faults.ErrConfiguration, "watch", "new", "watch.dir is not set", nil)
	}
	lockPath := cfg.LockPath()
	return &Watcher{
		cfg:      cfg,
		store:    st,
		logger:   logging.NewComponentLogger(logger, "watch"),
		dir:      dir,
		settle:   time.Duration(cfg.Watch.SettleSeconds) * time.Second,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Run watches until the context is canceled. Only one watcher may run per
// data directory; a second instance fails fast on the lock.
func (w *Watcher) Run(ctx context.Context) error {
	if w.running.Load() {
		return errors.New("watcher already running")
	}

	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another md5tap watcher holds %s", w.lockPath)
	}
	defer func() {
		if err := w.lock.Unlock(); err != nil {
			w.logger.Warn("failed to release watch lock", logging.Error(err))
		}
	}()

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer notifier.Close()

	if err := notifier.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.running.Store(true)
	defer w.running.Store(false)
	w.logger.Info("watching directory",
		logging.String("dir", w.dir),
		logging.String("lock", w.lockPath),
		logging.Duration("settle", w.settle),
	)

	// Files are observed once they have been quiet for the settle window,
	// so half-written files are not fingerprinted mid-copy.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, open := <-notifier.Events:
			if !open {
				return nil
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				pending[event.Name] = time.Now()
			}
			if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				delete(pending, event.Name)
			}
		case err, open := <-notifier.Errors:
			if !open {
				return nil
			}
			w.logger.Warn("watch event error", logging.Error(err))
		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.settle {
					continue
				}
				delete(pending, path)
				if err := w.observeFile(ctx, path); err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					w.logger.Error("file observation failed",
						logging.String(logging.FieldSource, path),
						logging.Bool("retryable", faults.Retryable(err)),
						logging.Error(err),
					)
				}
			}
		}
	}
}

func (w *Watcher) observeFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // removed before it settled
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil
	}

	alg, err := digest.ParseAlgorithm(w.cfg.Observer.Algorithm)
	if err != nil {
		return faults.Wrap(faults.ErrConfiguration, "watch", "observe", "bad algorithm", err)
	}

	runID := uuid.NewString()
	source := filepath.Base(path)
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, w.logger)

	sinks := []observer.Sink{observer.NewLogSink(logger)}
	if w.store != nil {
		if err := w.store.StartRun(ctx, runID, source, alg); err != nil {
			return err
		}
		sinks = append(sinks, w.store.NewSink(runID, alg.String(), logger))
	}

	obs, err := observer.New(alg, observer.NewFanoutSink(sinks...),
		observer.WithVerbose(w.cfg.Observer.Verbose))
	if err != nil {
		return err
	}
	tap, err := pipeline.New(obs, pipeline.Options{ChunkSize: w.cfg.Observer.ChunkSize, Logger: logger})
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	summary, err := tap.Run(ctx, source, file, io.Discard)
	if err != nil {
		return err
	}

	if w.store != nil {
		if err := w.store.FinishRun(ctx, runID, summary.Buffers, summary.Bytes, summary.StreamDigest.Hex()); err != nil {
			return err
		}
	}

	logger.Info("file observed",
		logging.String(logging.FieldSource, source),
		logging.Uint64("buffers", summary.Buffers),
		logging.Uint64(logging.FieldBytes, summary.Bytes),
		logging.String(logging.FieldDigest, summary.StreamDigest.Hex()),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return nil
}
