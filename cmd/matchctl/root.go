package main

import (
	"context"
	"fmt"

	"github.com/goodscary/firstrubyfriend/internal/config"
	"github.com/goodscary/firstrubyfriend/internal/infrastructure/container"
	"github.com/goodscary/firstrubyfriend/internal/logger"
	"github.com/spf13/cobra"
)

const app = "matchctl"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "matchctl runs mentor matching jobs against the service database",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
}

// withContainer loads configuration and runs fn against a fully wired
// container, closing it afterwards.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, app *container.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}
	jsonLogs, _ := cmd.Flags().GetBool("json")
	log, err := logger.New(level, jsonLogs || cfg.Logging.JSON)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	app, err := container.NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	return fn(ctx, app)
}
