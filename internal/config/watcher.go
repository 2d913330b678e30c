package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	load     func() (*Config, error)
	logger   hclog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLoader replaces the default reload, which reads only the file. Use it
// when flags or env bindings must keep precedence over the file on reload.
func WithLoader(load func() (*Config, error)) WatcherOption {
	return func(w *Watcher) {
		if load != nil {
			w.load = load
		}
	}
}

// NewWatcher watches the directory holding path. The directory is watched
// rather than the file so editors that save via rename are still seen.
func NewWatcher(path string, logger hclog.Logger, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", filepath.Dir(abs), err)
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	w := &Watcher{
		path:     abs,
		watcher:  fsw,
		debounce: 100 * time.Millisecond,
		logger:   logger.Named("config"),
	}
	w.load = func() (*Config, error) { return LoadFile(w.path) }
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch starts watching and returns a channel of reloaded configs. Files
// that fail to parse or validate are logged and skipped. The channel is
// closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) <-chan *Config {
	out := make(chan *Config, 1)

	go func() {
		defer close(out)

		// Debounce timer to coalesce the burst of events an editor save causes.
		debounceTimer := time.NewTimer(0)
		if !debounceTimer.Stop() {
			<-debounceTimer.C
		}
		defer debounceTimer.Stop()
		pending := false

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				pending = true
				debounceTimer.Reset(w.debounce)

			case <-debounceTimer.C:
				if !pending {
					continue
				}
				pending = false

				cfg, err := w.reload()
				if err != nil {
					w.logger.Warn("ignoring config change", "path", w.path, "error", err)
					continue
				}
				w.logger.Debug("config reloaded", "path", w.path)

				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				// Log errors but keep watching
				w.logger.Warn("watch error", "error", err)
			}
		}
	}()

	return out
}

func (w *Watcher) reload() (*Config, error) {
	cfg, err := w.load()
	if err != nil {
		return nil, err
	}
	if errs := Validate(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("%d validation errors, first: %w", len(errs), errs[0])
	}
	return cfg, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching and cleans up resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
