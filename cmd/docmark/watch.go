package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"docmark/internal/logfields"
	"docmark/internal/watch"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rewrite the page whenever a source file of the package changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := targetPath(args)
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rebuild := func(ctx context.Context) error {
			written, err := generate(ctx, cfg, path, true, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d file(s)\n", len(written))
			return nil
		}

		w, err := watch.New(path, watch.WithLogger(logger))
		if err != nil {
			return err
		}
		if err := rebuild(ctx); err != nil {
			logger.Error("Initial build failed", logfields.Path(path), logfields.Error(err))
		}
		logger.Info("Watching for changes", logfields.Path(path))
		return w.Run(ctx, rebuild)
	},
}
