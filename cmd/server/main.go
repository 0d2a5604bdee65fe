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

	"github.com/rs/zerolog"

	"github.com/mosipdecode/backend/config"
	httpDelivery "github.com/mosipdecode/backend/internal/delivery/http"
	"github.com/mosipdecode/backend/internal/domain"
	"github.com/mosipdecode/backend/internal/infrastructure/cache"
	"github.com/mosipdecode/backend/internal/infrastructure/ocrclient"
	"github.com/mosipdecode/backend/internal/infrastructure/tesseract"
	"github.com/mosipdecode/backend/internal/logger"
	"github.com/mosipdecode/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	log.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Str("ocr_engine", cfg.OCR.Engine).
		Msg("Starting MOSIP decode backend v1.0.0")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	engine, err := newEngine(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize OCR engine")
	}

	cacheRepo, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	defer closeCache()

	// Initialize usecase layer
	registry, err := usecase.NewCatalogRegistry(cfg.Extraction.DefaultLanguage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build label catalogs")
	}

	extraction := usecase.NewExtractionService(registry, usecase.ExtractionConfig{Logger: log})
	verification := usecase.NewVerificationService(usecase.VerificationConfig{
		MatchThreshold:         cfg.Verification.MatchThreshold,
		PartialThreshold:       cfg.Verification.PartialThreshold,
		KeySimilarityThreshold: cfg.Verification.KeySimilarityThreshold,
		QuickVerifyMinRate:     cfg.Verification.QuickVerifyMinRate,
		CriticalSimilarity:     cfg.Verification.CriticalSimilarity,
		Logger:                 log,
	})
	documents := usecase.NewDocumentService(cacheRepo, engine, extraction, verification, usecase.DocumentServiceConfig{
		CacheTTL: cfg.Cache.TTL,
		Logger:   log,
	})

	log.Info().
		Strs("languages", registry.Languages()).
		Str("default_language", registry.DefaultLanguage()).
		Float64("match_threshold", cfg.Verification.MatchThreshold).
		Msg("Extraction configured")

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(documents, httpDelivery.HandlerConfig{
		MaxUploadBytes: cfg.Server.MaxUploadBytes(),
		Logger:         log,
	})

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, *log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// newEngine builds the configured OCR engine
func newEngine(cfg *config.Config, log *zerolog.Logger) (domain.OCREngine, error) {
	switch cfg.OCR.Engine {
	case "tesseract":
		engine, err := tesseract.New(log)
		if err != nil {
			return nil, err
		}
		return engine, nil
	default:
		if cfg.OCR.APIKey == "" {
			log.Warn().Str("base_url", cfg.OCR.BaseURL).Msg("OCR API key not configured")
		}
		return ocrclient.NewClient(ocrclient.Config{
			BaseURL:    cfg.OCR.BaseURL,
			APIKey:     cfg.OCR.APIKey,
			Timeout:    cfg.OCR.Timeout,
			RateLimit:  cfg.OCR.RateLimit,
			Burst:      cfg.OCR.Burst,
			MaxRetries: cfg.OCR.MaxRetries,
			Logger:     log,
		}), nil
	}
}

// newCache builds the configured cache. The returned interface is nil when caching is off.
func newCache(ctx context.Context, cfg *config.Config) (domain.CacheRepository, func(), error) {
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "mosipdecode:")
		if err != nil {
			return nil, nil, err
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	case "none":
		return nil, func() {}, nil
	default:
		memoryCache := cache.NewMemoryCache()
		return memoryCache, func() { _ = memoryCache.Close() }, nil
	}
}
