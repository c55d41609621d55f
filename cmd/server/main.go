package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/hr-field-resolver/internal/alias"
	"github.com/yourorg/hr-field-resolver/internal/config"
	"github.com/yourorg/hr-field-resolver/internal/embedding"
	"github.com/yourorg/hr-field-resolver/internal/facade"
	"github.com/yourorg/hr-field-resolver/internal/httpapi"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
	"github.com/yourorg/hr-field-resolver/internal/storage"
)

func main() {
	// Try loading .env from multiple locations:
	// 1. Current directory (when running from the repo root)
	// 2. Parent directory (when .env lives one level up)
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	cfg := config.LoadConfig()
	if err := config.ValidateConfig(cfg); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	slog.Info("starting server", "host", cfg.Host, "port", cfg.Port, "embedding_enabled", cfg.EmbeddingEnabled)

	registry, err := schemaregistry.NewRegistryWithPath(cfg.SchemaDir)
	if err != nil {
		slog.Error("failed to load schema registry", "err", err)
		os.Exit(1)
	}
	aliases, err := alias.NewWithDefaultsAndDir(cfg.AliasDir)
	if err != nil {
		slog.Error("failed to load alias dictionary", "err", err)
		os.Exit(1)
	}

	var encoder embedding.TextEncoder
	if cfg.EmbeddingEnabled {
		encoder, err = embedding.NewOpenAIEncoder(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		if err != nil {
			slog.Error("failed to construct embedding encoder, running in degraded mode", "err", err)
			encoder = nil
		}
	}
	embeddingIndex := embedding.NewIndex(encoder, registry, aliases, cfg.EmbeddingCacheDir)

	store := storage.New(cfg.FileTTL)
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	go store.Run(cleanupCtx, cfg.CleanupInterval)

	f := facade.New(store, registry, aliases, embeddingIndex, cfg.MaxUploadBytes)
	f.UseValueStatistics = cfg.UseValueStatistics
	router := httpapi.NewRouter(cfg, f)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

	server := &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		slog.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down server...")
	cancelCleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "err", err)
		os.Exit(1)
	}

	slog.Info("server shutdown complete")
}
