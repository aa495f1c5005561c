package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denisok6893-rgb/property-insights/internal/configs"
	"github.com/denisok6893-rgb/property-insights/internal/costs"
	httpapi "github.com/denisok6893-rgb/property-insights/internal/http"
	"github.com/denisok6893-rgb/property-insights/internal/logger"
	"github.com/denisok6893-rgb/property-insights/internal/matching"
	"github.com/denisok6893-rgb/property-insights/internal/storage"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.Format(cfg.Log.Format),
	})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("api stopped with error", logger.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *configs.AppConfig, log *slog.Logger) error {
	store, err := storage.OpenSQLite(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := seedProperties(ctx, store, cfg.Storage.PropertiesPath, log); err != nil {
		return err
	}

	w, err := matching.LoadWeightsFromFile(cfg.WeightsPath)
	if err != nil {
		log.Warn("using default weights", slog.String("path", cfg.WeightsPath), logger.Err(err))
	}

	var estimator costs.Estimator = costs.Local{}
	if cfg.Costs.ServiceURL != "" {
		estimator = costs.NewClient(cfg.Costs.ServiceURL, cfg.Costs.Timeout)
		log.Info("using remote hidden costs calculator", slog.String("url", cfg.Costs.ServiceURL))
	}

	api := httpapi.NewServer(httpapi.Deps{
		Engine: matching.NewEngine(w),
		Store:  store,
		State:  store.State(),
		Costs:  estimator,
		Logger: log,
	})

	srv := &http.Server{
		Addr:              cfg.Rest.Address,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("API listening", slog.String("addr", cfg.Rest.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("timeout", cfg.Rest.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Rest.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// seedProperties loads the fixture file into an empty catalogue. A missing
// file is not an error; the catalogue then starts empty.
func seedProperties(ctx context.Context, store *storage.SQLiteStore, path string, log *slog.Logger) error {
	n, err := store.CountProperties(ctx)
	if err != nil {
		return fmt.Errorf("count properties: %w", err)
	}
	if n > 0 {
		log.Info("catalogue already seeded", slog.Int("properties", n))
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warn("no fixture file, starting with an empty catalogue", slog.String("path", path))
		return nil
	}
	props, err := storage.LoadPropertiesFromFile(path)
	if err != nil {
		return err
	}
	if err := store.UpsertMany(ctx, props); err != nil {
		return fmt.Errorf("seed properties: %w", err)
	}
	log.Info("seeded catalogue", slog.Int("properties", len(props)), slog.String("path", path))
	return nil
}
