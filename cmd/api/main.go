package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/app"
	"github.com/riskibarqy/match-analyzer/internal/config"
	"github.com/riskibarqy/match-analyzer/internal/observability"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(2)
	}

	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Service: cfg.ServiceName,
		Version: cfg.ServiceVersion,
		Env:     cfg.AppEnv,
	})
	logging.SetDefault(logger)

	err = run(cfg, logger)
	if err != nil {
		logger.Error("match analyzer exited", "error", err)
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		return err
	}

	srv, closeApp, err := app.NewHTTPServer(cfg, logger)
	if err != nil {
		return errors.Join(fmt.Errorf("build app: %w", err), telemetry.Shutdown(context.Background()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.AppEnv, "telemetry", telemetry.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var errs []error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			errs = append(errs, fmt.Errorf("serve http: %w", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := closeApp(); err != nil {
		errs = append(errs, fmt.Errorf("close app resources: %w", err))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("stop telemetry: %w", err))
	}

	logger.Info("http server stopped")
	return errors.Join(errs...)
}
