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

	"loan-predictor/config"
	httpLayer "loan-predictor/http"
	"loan-predictor/model"
	"loan-predictor/observability"
	"loan-predictor/repository"
	"loan-predictor/service"
)

func main() {
	cfg := config.Load()

	observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	for _, warning := range cfg.Warnings {
		slog.Warn("config value ignored", "detail", warning)
	}

	// Un fallo de carga no detiene el proceso: cada request responde "Model not loaded!"
	var predictor service.Predictor
	artifacts, err := model.LoadArtifacts(cfg.ScalerPath, cfg.ModelPath)
	if err != nil {
		slog.Error("failed to load model artifacts", "error", err)
	} else if adapter, err := service.NewInferenceAdapter(artifacts); err != nil {
		slog.Error("loaded artifacts are unusable", "error", err)
	} else {
		predictor = adapter
		slog.Info("model artifacts loaded", "scaler", cfg.ScalerPath, "model", cfg.ModelPath)
	}

	memoryCache := repository.NewMemoryCache(cfg.RedisCfg.MaxLocalEntries)
	defer memoryCache.Stop()

	var cache repository.CacheRepository = memoryCache
	if cfg.RedisCfg.Addr != "" {
		redisCache, err := repository.NewRedisCache(cfg.RedisCfg.Addr, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
		if err != nil {
			slog.Warn("redis unavailable, falling back to in-memory cache", "error", err)
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}

	predictionRepo := repository.NewPredictionRepositoryMemory(cfg.MaxStoredPredictions)
	predictionService := service.NewPredictionService(predictor, predictionRepo, cache, cfg.RedisCfg.CacheTTL)

	predictionHandler := httpLayer.NewPredictionHandler(predictionService)
	statusHandler := httpLayer.NewStatusHandler(predictionService)

	rateLimiter := httpLayer.NewRateLimiter(
		cfg.RateLimitCfg.Requests,
		cfg.RateLimitCfg.Window,
		cfg.RateLimitCfg.TrustedProxies,
	)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/", predictionHandler.Home)
	mux.Handle(
		"/predict",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(predictionHandler.Predict),
			http.HandlerFunc(predictionHandler.TooManyRequests),
		),
	)
	mux.Handle("/static/", httpLayer.StaticHandler())
	mux.HandleFunc("/health", statusHandler.Health)
	mux.HandleFunc("/predictions/recent", statusHandler.Recent)
	mux.Handle("/metrics", observability.MetricsHandler())

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "model_loaded", predictionService.Ready())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("error starting server", "error", err)
		return
	case <-quit:
		slog.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("error during server shutdown", "error", err)
	}

	slog.Info("server exited")
}
