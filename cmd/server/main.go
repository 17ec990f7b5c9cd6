package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/bakeshop-backend/internal/analytics"
	"github.com/andresuchdata/bakeshop-backend/internal/api"
	"github.com/andresuchdata/bakeshop-backend/internal/cache"
	"github.com/andresuchdata/bakeshop-backend/internal/config"
	"github.com/andresuchdata/bakeshop-backend/internal/repository/postgres"
	"github.com/andresuchdata/bakeshop-backend/internal/service"
	"github.com/andresuchdata/bakeshop-backend/internal/storage"
	"github.com/andresuchdata/bakeshop-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Report cache unavailable, continuing without caching")
		reportCache = cache.NewNoopReportCache()
	}

	var archive storage.ObjectStorage
	if cfg.Archive.Enabled {
		archive, err = storage.NewMinioClient(cfg.Archive)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Report archive unavailable, continuing without archiving")
			archive = nil
		}
	}

	repo := postgres.NewIngredientRepository(db)
	engine := analytics.NewEngine(analytics.Config{
		SafetyStockDays:      cfg.Analytics.SafetyStockDays,
		BulkEligibilityValue: cfg.Analytics.BulkEligibilityValue,
		BulkDiscountRate:     cfg.Analytics.BulkDiscountRate,
		WorkerCount:          cfg.Analytics.WorkerCount,
	})

	services := &api.Services{
		AnalyticsService: service.NewAnalyticsService(repo, engine, reportCache, archive, cfg.Analytics.DefaultTimeframeDays),
		InventoryService: service.NewInventoryService(repo),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
