package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/templui/devcamper/internal/app"
	"github.com/templui/devcamper/internal/config"
	"github.com/templui/devcamper/internal/logger"
	"github.com/templui/devcamper/internal/routes"
	"github.com/templui/devcamper/internal/server"
)

func main() {
	os.Exit(run())
}

// run starts the API server and returns the process exit code.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	flush := logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The database must be reachable before the listener is bound.
	app, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	srv := server.New(routes.SetupRoutes(app, logger.Log), logger.Log)
	srv.Go(app.Limiter.Run)

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		slog.Error("failed to listen", "port", cfg.Port, "error", err)
		return 1
	}
	slog.Info("server running", "env", cfg.Env, "port", cfg.Port)

	err = srv.Serve(ctx, ln)
	if err != nil {
		slog.Error("server stopped", "error", err)
		return 1
	}

	slog.Info("server stopped")
	return 0
}
