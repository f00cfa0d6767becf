package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodorder/cmd"
	"foodorder/internal/pkg/logging"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to an optional YAML config file")
	flag.Parse()

	config, err := cmd.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := logging.New(config.LogLevel, config.LogFormat)

	if err = run(config, logger); err != nil {
		log.Fatalf("%v", err)
	}
	logger.Info("Server stopped")
}

// run serves the application until SIGINT or SIGTERM and releases
// everything it opened before returning.
func run(config cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, config, logger)
	if err != nil {
		return fmt.Errorf("error building application: %w", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to release resources", "error", closeErr)
		}
	}()

	router, err := app.CreateHTTPRouter(ctx)
	if err != nil {
		return fmt.Errorf("error building HTTP router: %w", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		return fmt.Errorf("error starting jobs: %w", err)
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "port", config.HTTPPort, "storage", config.StorageDriver)
		if startErr := router.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}
