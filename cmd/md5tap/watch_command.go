package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"md5tap/internal/config"
	"md5tap/internal/preflight"
	"md5tap/internal/store"
	"md5tap/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "watch [DIR]",
		Short: "Observe every new file appearing in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				dirFlag = args[0]
			}
			if dirFlag != "" {
				expanded, err := config.ExpandPath(dirFlag)
				if err != nil {
					return fmt.Errorf("resolve watch directory: %w", err)
				}
				cfg.Watch.Dir = expanded
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			if cfg.Watch.Dir != "" {
				if err := os.MkdirAll(cfg.Watch.Dir, 0o755); err != nil {
					return fmt.Errorf("create watch directory %s: %w", cfg.Watch.Dir, err)
				}
			}

			logger, err := ctx.newLogger("")
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			results := preflight.RunAll(signalCtx, cfg)
			if !preflight.Passed(results) {
				for _, result := range results {
					if !result.Passed {
						fmt.Fprintf(cmd.ErrOrStderr(), "preflight: %s: %s\n", result.Name, result.Detail)
					}
				}
				return fmt.Errorf("preflight checks failed")
			}

			var history *store.Store
			if cfg.History.Enabled {
				history, err = store.Open(cfg)
				if err != nil {
					return err
				}
				defer history.Close()
			}

			watcher, err := watch.New(cfg, history, logger)
			if err != nil {
				return err
			}
			return watcher.Run(signalCtx)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory to watch (overrides config)")
	return cmd
}
