package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/loom/pkg/config"
	"github.com/dmitrymomot/loom/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "loom - full-stack web framework toolkit",
	Long: `loom glues file-based routing, templ components, Postgres, and an
external bundler into one development workflow.

Commands read project settings from loom.yaml (override with --config).`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "path to the project config file")

	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the project config and builds a logger from its
// log section.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	log := logger.New(
		logger.WithLevel(parseLevel(cfg.Log.Level)),
		logger.WithFormat(cfg.Log.Format),
	)
	return cfg, log, nil
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
