// backend-go/cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/api"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/cache"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/config"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/forecast"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/repository"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/service"
	"github.com/andresuchdata/inventory-predictor/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Configure(cfg.Server.Mode, cfg.App.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Prediction log is optional
	predictionRepo := repository.NewNoopPredictionRepository()
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := postgres.NewDB(ctx, &cfg.Database)
		cancel()
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		predictionRepo = repository.NewPredictionRepository(db)
		logger.Log.Info().Msg("Prediction log enabled")
	}

	predictionCache, err := cache.NewPredictionCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Prediction cache unavailable, continuing without it")
		predictionCache = cache.NewNoopPredictionCache()
	}

	// Initialize services
	forecastService := service.NewForecastService(forecast.New(cfg.Forecast), predictionRepo, predictionCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{ForecastService: forecastService}, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StaticDir:      cfg.App.StaticDir,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
