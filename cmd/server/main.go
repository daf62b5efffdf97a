package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/portfolio/api"
	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/internal/logger"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

type options struct {
	config.Options
	Addr string `long:"addr" description:"Listen address, overrides PORT and the config file"`
}

func main() {
	var opts options
	ok, err := config.ParseFlags(&opts)
	if err != nil {
		os.Exit(2)
	}
	if !ok {
		return
	}

	cfg, err := opts.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	api.SetLogger(log)
	log.Info("starting portfolio server", slog.String("version", version), slog.String("build_time", buildTime))

	// Connections are opened lazily by the first request, so a missing
	// DB_SERVER is reported per request instead of preventing startup.
	pool := db.NewPool(cfg.Database, log)

	handler := api.SetupRoutes(cfg, version, buildTime, pool)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", slog.Any("err", err))
	}

	if err := pool.Close(); err != nil {
		log.Error("error closing database", slog.Any("err", err))
	}

	log.Info("server exited")
}
