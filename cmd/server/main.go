package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/resumeforge/internal/api"
	"github.com/dgallion1/resumeforge/internal/bullets"
	"github.com/dgallion1/resumeforge/internal/config"
	"github.com/dgallion1/resumeforge/internal/feedback"
	"github.com/dgallion1/resumeforge/internal/llm"
	"github.com/dgallion1/resumeforge/internal/pipeline"
	"github.com/dgallion1/resumeforge/internal/storage"
	"github.com/dgallion1/resumeforge/internal/telemetry"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	flush, err := telemetry.Init(telemetry.Config{DSN: cfg.SentryDSN, Environment: cfg.Environment}, log)
	if err != nil {
		log.Warn("sentry disabled", "error", err)
	}
	defer flush()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	openai := llm.NewOpenAI(llm.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		Temperature: cfg.OpenAITemperature,
		BaseURL:     cfg.OpenAIBaseURL,
	})
	claude := llm.NewClaude(cfg.AnthropicAPIKey, cfg.AnthropicModel, llm.WithClaudeBaseURL(cfg.AnthropicBaseURL))
	gen := bullets.NewGenerator(openai, cfg.Bullets(), log)
	reviewer := feedback.NewReviewer(claude, feedback.Options{
		Temperature:    cfg.AnthropicTemperature,
		MaxTokens:      cfg.AnthropicMaxTokens,
		MaxInputTokens: cfg.MaxReviewTokens,
	}, log)

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("open result storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, gen, reviewer, store, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(api.Deps{
		Orchestrator: orch,
		Reviewer:     reviewer,
		LLMs: []api.LLM{
			{Provider: "openai", Model: openai.Model(), Stats: openai.Stats},
			{Provider: "anthropic", Model: claude.Model(), Stats: claude.Stats},
		},
	}, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		claude.Close()
		if c, ok := store.(io.Closer); ok {
			c.Close()
		}
	}()

	log.Info("starting resumeforge", "port", cfg.Port, "storage", cfg.StorageBackend)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}

// openStore builds the configured result store.
func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return storage.NewMemoryStore(cfg.JobTTL), nil
	case config.StorageS3:
		return storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
	case config.StorageRedis:
		return storage.NewRedisStore(ctx, cfg.RedisURL, cfg.JobTTL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
