package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/buildstack/kiln/internal/watcher"
	"github.com/buildstack/kiln/pkg/logging"
	"github.com/buildstack/kiln/pkg/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func NewWatchCommand() *cobra.Command {
	var flags struct {
		logFile  string
		logLevel string
	}

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Rebuild whenever the source tree changes",
		Long: `Run the pipeline, then keep watching the source directory and rerun
the pipeline after every change. The build directory is excluded from
watching. Each run is recorded in the history store.`,
		Example: `  # Watch the current project
  kiln watch

  # Watch with debug logging to a file
  kiln watch --log-level debug --log-file /tmp/kiln-watch.log`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := resolveWorkspace(args)
			if err != nil {
				return err
			}

			m, err := Container.ProjectService().LoadManifest(absPath)
			if err != nil {
				return err
			}

			cfg, err := loadGlobalConfig()
			if err != nil {
				return err
			}

			level := logging.ParseLevel(flags.logLevel)
			var logger logging.Logger = logging.NewLeveledLogger(os.Stdout, level)
			if flags.logFile != "" {
				fileLogger, err := logging.NewFileLogger(flags.logFile, level)
				if err != nil {
					return err
				}
				defer fileLogger.Close()
				logger = logging.NewMultiLogger(logger, fileLogger)
			}

			store, closeStore, err := Container.CreateHistoryStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			fmt.Println("Starting watch mode...")
			fmt.Println("Press Ctrl+C to stop")

			params := watcher.Params{
				Config:    cfg,
				Logger:    logger,
				Workspace: pipeline.NewWorkspace(absPath),
				Manifest:  m,
				History:   store,
			}

			app := fx.New(
				fx.Supply(params),
				fx.Provide(watcher.New),
				fx.Invoke(func(lc fx.Lifecycle, w *watcher.Watcher) {
					ctx, cancel := context.WithCancel(context.Background())
					done := make(chan struct{})
					lc.Append(fx.Hook{
						OnStart: func(context.Context) error {
							go func() {
								defer close(done)
								if err := w.Run(ctx); err != nil && ctx.Err() == nil {
									fmt.Fprintf(os.Stderr, "watcher failed: %v\n", err)
								}
							}()
							return nil
						},
						OnStop: func(context.Context) error {
							cancel()
							<-done
							return nil
						},
					})
				}),
				fx.NopLogger,
				fx.StartTimeout(30*time.Second),
				fx.StopTimeout(30*time.Second),
			)

			if err := app.Start(context.Background()); err != nil {
				return fmt.Errorf("failed to start watch mode: %w", err)
			}

			// graceful shutdown on SIGINT/SIGTERM
			<-app.Done()

			if err := app.Stop(context.Background()); err != nil {
				return fmt.Errorf("error during shutdown: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.logFile, "log-file", "l", "", "Log file path (logs to stdout if not specified)")
	cmd.Flags().StringVarP(&flags.logLevel, "log-level", "L", "info", "Log level (error, info, debug)")

	return cmd
}
