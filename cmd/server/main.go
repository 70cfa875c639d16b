package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cycle-course-recommender/internal/config"
	"cycle-course-recommender/internal/modules/course"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.EnvFile == "" {
		logger.Info("No .env file found, using environment variables only")
	} else {
		logger.Info("loaded config file", zap.String("path", cfg.EnvFile))
	}

	dir, elev, err := buildProviders(cfg)
	if err != nil {
		logger.Fatal("build providers", zap.Error(err))
	}
	if dir == nil || elev == nil {
		logger.Warn("provider credentials missing, recommendations disabled",
			zap.String("directions_provider", cfg.DirectionsProvider),
			zap.Bool("directions_loaded", dir != nil),
			zap.Bool("elevation_loaded", elev != nil))
	}

	repo := course.NewMemoryRepository(cfg.SelectionCapacity)
	svc := course.NewService(repo, course.Options{
		Directions:     dir,
		Elevation:      elev,
		DirectionsName: cfg.DirectionsProvider,
		Selector: course.SelectorConfig{
			Samples:           cfg.RandomSamples,
			Tolerance:         cfg.Tolerance,
			ElevationPoints:   cfg.ElevationSamplePoints,
			MinPolylinePoints: cfg.MinPolylinePoints,
			Workers:           cfg.Workers,
			ProviderTimeout:   cfg.ProviderTimeout,
		},
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logger.Named("course"),
	})

	e := newRouter(cfg, course.NewHandler(svc, logger.Named("handler")), logger)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}
