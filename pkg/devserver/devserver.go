package devserver

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Config assembles the dev loop: watch a directory, run the bundler on
// changes, tell connected browsers to reload.
type Config struct {
	WatchDir       string `yaml:"watch_dir"`
	BundlerCommand string `yaml:"bundler"`

	Logger *slog.Logger `yaml:"-"`
}

// Run supervises the watcher, the bundler, and the reload hub until ctx
// is canceled. An initial bundler pass runs before the loop starts so
// assets exist when the first page loads.
func Run(ctx context.Context, cfg Config, hub *ReloadHub) error {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	watcher, err := NewWatcher(cfg.WatchDir, WithWatcherLogger(log))
	if err != nil {
		return err
	}
	defer watcher.Close()

	var bundler *Bundler
	if cfg.BundlerCommand != "" {
		bundler, err = NewBundler(cfg.BundlerCommand, WithBundlerLogger(log))
		if err != nil {
			return err
		}
		if err := bundler.Run(ctx); err != nil {
			log.Warn("initial bundler run failed", slog.String("error", err.Error()))
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watcher.Run(ctx)
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case batch, ok := <-watcher.Events():
				if !ok {
					return nil
				}
				log.Info("files changed", slog.Int("count", len(batch)))

				// A failed rebuild still triggers a reload so the browser
				// shows the bundler's error output state.
				if bundler != nil {
					_ = bundler.Run(ctx)
				}
				hub.Broadcast()
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
