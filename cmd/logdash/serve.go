package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"logdash/internal/monitor"
	"logdash/internal/server"
	"logdash/internal/storage"
	"logdash/internal/summary"
)

func newServeCmd(state *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and log API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := state.cfg, state.log
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			svc := summary.NewService(newSource(cfg, log))

			historyPath := filepath.Join(cfg.DataDirectory, "run_history.json")
			history, err := storage.NewHistoryStore(historyPath, storage.DefaultHistoryEntries)
			if err != nil {
				return fmt.Errorf("initialise history: %w", err)
			}

			mon := monitor.New(
				time.Duration(cfg.ScanIntervalSeconds)*time.Second,
				cfg.ScanParallelism,
				svc,
				history,
				log.WithField("component", "monitor"),
			)
			mon.Start()
			defer mon.Stop()

			srv := server.New(server.Options{
				Addr:                 cfg.Addr,
				DashboardPath:        cfg.DashboardPath,
				ScreenshotsDirectory: cfg.ScreenshotsDirectory,
				HistoryLimit:         cfg.HistoryLimit,
				PushInterval:         time.Duration(cfg.PushIntervalSeconds) * time.Second,
				Summaries:            svc,
				History:              history,
				Log:                  log.WithField("component", "server"),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.WithError(err).Warn("server shutdown")
				}
			}()

			log.WithField("addr", cfg.Addr).WithField("log_directory", cfg.LogDirectory).Info("logdash listening")
			if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address for the web server (overrides config)")
	return cmd
}
