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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/handlers"
	"github.com/mandag122/WeeVora/internal/planner"
)

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.LogFormat != "console" {
		gin.SetMode(gin.ReleaseMode)
	}

	svc, err := newCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}

	store, db, err := newPlannerStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("planner store: %w", err)
	}
	deps := handlers.Deps{
		Catalog:        svc,
		Planner:        planner.New(store, cfg.SeasonYear, logger),
		JWT:            newJWTService(cfg, logger),
		AllowedOrigins: cfg.FeedbackAllowedOrigins,
		Version:        Version,
		RecordStore:    cfg.RecordStore,
		Log:            logger,
		Now:            time.Now,
	}
	if db != nil {
		defer db.Close()
		deps.DB = db
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("version", Version),
			zap.String("record_store", cfg.RecordStore),
			zap.Int("season_year", cfg.SeasonYear),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
