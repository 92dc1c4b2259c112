package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nullcipherr/fuzzdx/internal/anxiety"
	"github.com/nullcipherr/fuzzdx/internal/api"
	"github.com/nullcipherr/fuzzdx/internal/config"
	"github.com/nullcipherr/fuzzdx/internal/diagnose"
	"github.com/nullcipherr/fuzzdx/internal/events"
	"github.com/nullcipherr/fuzzdx/internal/fuzz"
	"github.com/nullcipherr/fuzzdx/internal/store"
)

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if lvl := parseLevel(cfg.Logging.Level); lvl != slog.LevelInfo {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
		slog.SetDefault(logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Inference system
	spec := anxiety.Spec()
	if cfg.Engine.SystemPath != "" {
		spec, err = fuzz.LoadSpec(cfg.Engine.SystemPath)
		if err != nil {
			logger.Error("failed to load system spec", "path", cfg.Engine.SystemPath, "error", err)
			os.Exit(1)
		}
	}
	system, err := fuzz.NewSystem(spec)
	if err != nil {
		logger.Error("invalid system spec", "error", err)
		os.Exit(1)
	}
	logger.Info("system built", "inputs", system.Inputs(), "outputs", system.Outputs(), "rules", system.RuleCount())

	defaultMethod, err := fuzz.ParseMethod(cfg.Engine.DefaultMethod)
	if err != nil {
		logger.Error("invalid default method", "method", cfg.Engine.DefaultMethod, "error", err)
		os.Exit(1)
	}

	// History store
	var st store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		st = pg
		logger.Info("connected to database")
	} else {
		st = store.NewMemoryStore()
		logger.Info("no database configured, keeping history in memory")
	}
	defer st.Close()

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to nats")
		}
	}

	svc, err := diagnose.NewService(system, defaultMethod, st, eventsClient, logger)
	if err != nil {
		logger.Error("failed to build diagnosis service", "error", err)
		os.Exit(1)
	}

	// API server
	router := api.NewRouter(svc, st, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
