package file

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives the new content of the watched script.
type ReloadFunc func(ctx context.Context, data []byte)

// Watcher reloads one script file whenever its content changes.
// It watches the parent directory so editors that save by rename are seen.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	last     []byte
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Watch loads the script once, then calls fn with every changed version until
// ctx is cancelled. Unchanged saves and unreadable intermediate states are skipped.
func (w *Watcher) Watch(ctx context.Context, fn ReloadFunc) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	w.reload(ctx, fn)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("script changed", "path", w.path, "op", event.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)
		case <-timer.C:
			w.reload(ctx, fn)
		}
	}
}

func (w *Watcher) reload(ctx context.Context, fn ReloadFunc) {
	data, err := Load(w.path)
	if err != nil {
		w.logger.Warn("failed to load script", "path", w.path, "err", err)
		return
	}
	if w.last != nil && bytes.Equal(data, w.last) {
		return
	}
	w.last = data
	fn(ctx, data)
}
