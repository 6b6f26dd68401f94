package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kubeplan/kubeplan/internal/config"
	"github.com/kubeplan/kubeplan/internal/observability"
	"github.com/kubeplan/kubeplan/internal/server"
	"github.com/kubeplan/kubeplan/internal/sizing"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planning API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides KUBEPLAN_LISTEN_PORT)")

	return cmd
}

func runServe(port int) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if port == 0 {
		port = cfg.ListenPort
	}

	metrics := observability.NewMetrics()
	sizer := sizing.New(cfg.Policy())

	srv := server.New(port, sizer, metrics, cfg.DebugEndpoints)
	if err := srv.Start(); err != nil {
		return err
	}
	slog.Info("kubeplan serving", "addr", srv.Addr(), "version", version)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigCh
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		return err
	}

	slog.Info("kubeplan stopped")
	return nil
}
