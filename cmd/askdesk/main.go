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

	"go.uber.org/zap"

	"github.com/askdesk/askdesk/internal/config"
	dbRedis "github.com/askdesk/askdesk/internal/db/redis"
	logpkg "github.com/askdesk/askdesk/internal/logger"
	"github.com/askdesk/askdesk/internal/metrics"
	"github.com/askdesk/askdesk/internal/repository/embcache"
	questionrepo "github.com/askdesk/askdesk/internal/repository/question"
	chiTransport "github.com/askdesk/askdesk/internal/transport/chi"
	openaiProvider "github.com/askdesk/askdesk/internal/transport/openai"
	autotaguc "github.com/askdesk/askdesk/internal/usecase/autotag"
	healthuc "github.com/askdesk/askdesk/internal/usecase/health"
	searchuc "github.com/askdesk/askdesk/internal/usecase/search"
	similaruc "github.com/askdesk/askdesk/internal/usecase/similar"
	suggestuc "github.com/askdesk/askdesk/internal/usecase/suggest"
	"github.com/askdesk/askdesk/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting askdesk search API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register provider metrics explicitly (no init())
	metrics.RegisterProviderMetrics()

	// Build provider chain — composition root
	baseEmbedder := openaiProvider.NewEmbedder(&openaiProvider.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
	})
	embedder := embcache.New(
		baseEmbedder,
		store,
		time.Duration(cfg.Embedding.CacheTTLHours)*time.Hour,
		metrics.EmbeddingCacheTotal,
		logger,
	)

	tagger := openaiProvider.NewTagger(&openaiProvider.TaggerConfig{
		APIKey:  cfg.Tagging.APIKey,
		BaseURL: cfg.Tagging.BaseURL,
		Model:   cfg.Tagging.Model,
		Timeout: time.Duration(cfg.Tagging.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	questions := questionrepo.New(store)

	searchSvc := searchuc.New(questions, cfg.Search.SnippetWindow)
	similarSvc := similaruc.New(
		questions,
		embedder,
		cfg.Search.SimilarityThreshold,
		cfg.Search.EmbeddingConcurrency,
		logger,
	)
	autotagSvc := autotaguc.New(tagger)
	suggestSvc := suggestuc.New(questions)
	healthSvc := healthuc.New(store, baseEmbedder)

	server := chiTransport.NewServer(
		searchSvc, similarSvc, autotagSvc, suggestSvc, healthSvc, questions, logger,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Router(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
