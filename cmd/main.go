package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pressdesk/internal/config"
	"pressdesk/internal/extract"
	"pressdesk/internal/news"
	"pressdesk/internal/publish"
	"pressdesk/internal/rewrite"
	"pressdesk/internal/scheduler"
	"pressdesk/internal/server"
	"pressdesk/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load configuration",
			"error", err)

		return
	}

	if err = os.MkdirAll(cfg.UploadDir, 0o750); err != nil {
		log.ErrorContext(ctx, "Failed to create upload directory",
			"error", err,
			"uploadDir", cfg.UploadDir)

		return
	}

	db, err := store.New(ctx, cfg.DBPath, log)
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

	drafts := store.NewDraftStore(cfg.DraftsPath, log)

	monitor := news.NewMonitor(cfg.NewsFeeds, cfg.NewsCachePath, cfg.NewsTTL, log)

	generator := rewrite.NewService(initOpenAIRewriter(ctx, &cfg, log), cfg.MaxContextChars, log)

	publishers := initPublishers(ctx, &cfg, log)

	srv := server.New(&cfg, db, drafts, monitor, extract.New(log), generator, publishers, log)

	sched := scheduler.New(ctx, monitor, log)
	if len(cfg.NewsFeeds) > 0 {
		if err = sched.Start(); err != nil {
			log.ErrorContext(ctx, "Failed to start scheduler",
				"error", err,
				"spec", scheduler.NewsRefreshSpec)

			return
		}
		defer sched.Stop()
		log.InfoContext(ctx, "Scheduler is started",
			"spec", scheduler.NewsRefreshSpec,
			"feedCount", len(cfg.NewsFeeds))
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.InfoContext(ctx, "Server listening",
			"port", cfg.Port,
			"env", cfg.Env)

		if serveErr := httpServer.ListenAndServe(); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			log.ErrorContext(ctx, "HTTP server failed",
				"error", serveErr,
				"port", cfg.Port)
			cancel()
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "Failed to shut down HTTP server",
			"error", err)
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}

func initOpenAIRewriter(ctx context.Context, cfg *config.Config, log *slog.Logger) rewrite.Rewriter {
	apiKey := strings.TrimSpace(cfg.OpenAIAPIKey)
	if apiKey == "" {
		log.WarnContext(ctx, "OPENAI_API_KEY is missing so the local fallback will be used",
			"envVar", "OPENAI_API_KEY")

		return nil
	}

	log.InfoContext(ctx, "OpenAI rewriter is initialized",
		"model", cfg.LLMModel)

	return rewrite.NewOpenAIRewriter(apiKey, cfg.LLMModel)
}

func initPublishers(ctx context.Context, cfg *config.Config, log *slog.Logger) publish.Registry {
	var registry publish.Registry

	if cfg.FBPageID != "" && cfg.FBPageAccessToken != "" {
		registry.Facebook = publish.NewFacebook(cfg.FBPageID, cfg.FBPageAccessToken, log)
	}

	if cfg.IGUserID != "" && cfg.FBPageAccessToken != "" {
		registry.Instagram = publish.NewInstagram(cfg.IGUserID, cfg.FBPageAccessToken, log)
	}

	if cfg.LinkedInToken != "" {
		registry.LinkedIn = publish.NewLinkedIn(cfg.LinkedInToken, cfg.LinkedInOrgID, log)
	}

	if cfg.XBearerToken != "" {
		registry.X = publish.NewX(cfg.XBearerToken, log)
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		telegram, err := publish.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			log.ErrorContext(ctx, "Failed to initialize Telegram publisher",
				"error", err)
		} else {
			registry.Telegram = telegram
		}
	}

	return registry
}
