package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/config"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/core"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/logging"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/web"
)

// sweepInterval is how often expired uploads are dropped.
const sweepInterval = time.Minute

type serveOptions struct {
	host string
	port int
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				slog.Error("failed to load configuration", "error", err)
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = opts.host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = opts.port
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "listen host (overrides SERVER_HOST)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "listen port (overrides SERVER_PORT)")
	return cmd
}

// run wires the service and blocks until the server stops.
func run(ctx context.Context, cfg *config.Config) error {
	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"max_file_size", cfg.Upload.MaxFileSize,
		"pipeline_max_concurrent", cfg.Pipeline.MaxConcurrent,
		"session_ttl", cfg.Session.TTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	sessions := core.NewSessionStore(cfg.Session.TTL)
	limiter := core.NewLimiter(cfg.Pipeline.MaxConcurrent, cfg.Pipeline.MaxWait)
	service := core.NewService(sessions, limiter, core.NewMetrics())
	server := web.NewServer(cfg, service)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()

	go sessions.Run(jobCtx, sweepInterval)

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigCtx, stop := signal.NotifyContext(jobCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-sigCtx.Done()

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for in-flight pipeline runs (with timeout)
		if status := limiter.Status(); status.Active > 0 {
			slog.Info("waiting for pipeline runs to complete", "active", status.Active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("pipeline runs did not complete in time", "error", err)
			} else {
				slog.Info("all pipeline runs completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	err := server.Start(cfg.Server.Addr())
	if errors.Is(err, http.ErrServerClosed) {
		<-stopped
		slog.Info("server stopped")
		return nil
	}
	cancelJobs()
	<-stopped
	return fmt.Errorf("server: %w", err)
}
