package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/loom/pkg/devserver"
)

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Watch the project, rebuild assets, and push live reloads",
	Long: `dev watches the project directory, reruns the configured bundler
command on changes, and serves a live-reload event stream that pages
subscribe to via devserver.ClientScript.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		hub := devserver.NewReloadHub()

		mux := http.NewServeMux()
		mux.Handle("/__loom/reload", hub)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Dev.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			log.Info("dev server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			return devserver.Run(ctx, devserver.Config{
				WatchDir:       cfg.Dev.WatchDir,
				BundlerCommand: cfg.Dev.Bundler,
				Logger:         log,
			}, hub)
		})

		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
