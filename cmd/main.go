package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"instagist/internal/config"
	"instagist/internal/database"
	"instagist/internal/extract"
	"instagist/internal/gist"
	"instagist/internal/ratelimiter"
	"instagist/internal/scheduler"
	"instagist/internal/server"
	"instagist/internal/summarizer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.InfoContext(ctx, "No .env file is loaded",
			"error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	backend := initSummarizer(ctx, cfg, log)

	extractor, err := extract.NewExtractor(cfg.FetchTimeout, 0, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create extractor",
			"error", err)

		return
	}

	service := gist.NewService(backend, log)
	handler := server.NewHandler(extractor, service, db,
		cfg.MaxInputChars, cfg.MaxUploadBytes, log)

	srv, err := server.New(handler, ratelimiter.New(cfg.RateLimitEvery),
		cfg.ListenAddr, cfg.FrontendURL, cfg.MaxUploadBytes, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize server",
			"error", err,
			"listenAddr", cfg.ListenAddr)

		return
	}

	sched := scheduler.New(ctx, db, cfg.RetentionDays, log)
	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", scheduler.HourlyPruneSpec,
			"timezone", time.FixedZone(scheduler.Timezone, scheduler.TimezoneOffsetSeconds).String())

		return
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", scheduler.HourlyPruneSpec,
		"retentionDays", cfg.RetentionDays)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	log.InfoContext(ctx, "Server is started",
		"listenAddr", cfg.ListenAddr,
		"provider", backend.Name())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case err = <-errCh:
		log.ErrorContext(ctx, "Server stopped unexpectedly",
			"error", err,
			"listenAddr", cfg.ListenAddr)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "Failed to shut down server",
			"error", err)
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}

func initSummarizer(ctx context.Context, cfg config.Config, log *slog.Logger) summarizer.Summarizer {
	s, err := newBackend(cfg)
	if err != nil {
		log.WarnContext(ctx, "Failed to create summarizer so fallback will be used",
			"error", err,
			"provider", cfg.Provider)

		return summarizer.NewFallback()
	}

	log.InfoContext(ctx, "Summarizer is initialized",
		"provider", s.Name(),
		"model", s.Model())

	return s
}

func newBackend(cfg config.Config) (summarizer.Summarizer, error) {
	switch cfg.Provider {
	case "ollama":
		return summarizer.NewOllamaSummarizer(cfg.OllamaURL, cfg.OllamaModel, cfg.SummaryTimeout)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is missing")
		}

		return summarizer.NewOpenAISummarizer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case "gemini":
		return summarizer.NewGeminiSummarizer(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.SummaryTimeout)
	case "anthropic":
		return summarizer.NewAnthropicSummarizer(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case "fallback":
		return summarizer.NewFallback(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
}
