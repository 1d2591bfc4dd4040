package devserver

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

var ErrWatcherClosed = errors.New("devserver: watcher closed")

// Watcher recursively watches a directory tree and emits change batches.
// Rapid event bursts (editor save, bundler output) collapse into a single
// batch after the debounce window passes without new events.
type Watcher struct {
	fw       *fsnotify.Watcher
	log      *slog.Logger
	debounce time.Duration
	ignore   []string
	events   chan []string
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a batch is emitted.
// Default is 100ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithIgnore adds directory names that are not descended into,
// e.g. "node_modules" or ".git".
func WithIgnore(names ...string) WatcherOption {
	return func(w *Watcher) {
		w.ignore = append(w.ignore, names...)
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(log *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// NewWatcher creates a watcher rooted at dir.
func NewWatcher(dir string, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fw:       fw,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		debounce: 100 * time.Millisecond,
		ignore:   []string{".git", "node_modules"},
		events:   make(chan []string, 1),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addRecursive(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Events returns the channel of change batches. Each batch is a deduplicated
// list of changed paths.
func (w *Watcher) Events() <-chan []string {
	return w.events
}

// Run pumps fsnotify events into debounced batches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending = make(map[string]struct{})
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case ev, ok := <-w.fw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if !w.relevant(ev) {
				continue
			}

			// New directories must be added to the watch set.
			if ev.Has(fsnotify.Create) {
				if err := w.addRecursive(ev.Name); err != nil {
					w.log.Debug("failed to watch new path", slog.String("path", ev.Name))
				}
			}

			pending[ev.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerCh:
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			pending = make(map[string]struct{})
			timer = nil
			timerCh = nil

			select {
			case w.events <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.log.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".#") || strings.HasSuffix(base, "~") {
		return false // editor temp files
	}
	for _, ignored := range w.ignore {
		if base == ignored {
			return false
		}
	}
	return true
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // path may be gone already
		}
		if !d.IsDir() {
			return nil
		}
		for _, ignored := range w.ignore {
			if d.Name() == ignored {
				return filepath.SkipDir
			}
		}
		return w.fw.Add(path)
	})
}
