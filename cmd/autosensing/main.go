package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/mmcdole/gofeed"
	"github.com/robfig/cron/v3"

	"github.com/deacon1876/autosensing/internal/app"
	"github.com/deacon1876/autosensing/internal/config"
	"github.com/deacon1876/autosensing/internal/gemini"
	"github.com/deacon1876/autosensing/internal/logger"
	"github.com/deacon1876/autosensing/internal/mail"
	"github.com/deacon1876/autosensing/internal/metrics"
	"github.com/deacon1876/autosensing/internal/rss"
	"github.com/deacon1876/autosensing/internal/scrape"
	"github.com/deacon1876/autosensing/internal/store"
	"github.com/deacon1876/autosensing/internal/translate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Not fatal: plain environment variables are the normal deployment.
		slog.Debug(".env not loaded", "error", err)
	}
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	sources, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		slog.Error("cannot load sources", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	application, cleanup := buildApp(ctx, cfg, sources)
	defer cleanup()

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	if cfg.Schedule == "" {
		if err := application.Run(ctx); err != nil {
			slog.Error("run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Scheduled mode: run immediately, then on every cron tick. Failed runs
	// are logged and the schedule keeps going; re-invocation is the only
	// retry mechanism.
	if err := application.Run(ctx); err != nil {
		slog.Error("run failed", "error", err)
	}
	c := cron.New()
	if _, err := c.AddFunc(cfg.Schedule, func() {
		if err := application.Run(ctx); err != nil {
			slog.Error("scheduled run failed", "error", err)
		}
	}); err != nil {
		slog.Error("invalid SCHEDULE expression", "schedule", cfg.Schedule, "error", err)
		os.Exit(1)
	}
	slog.Info("scheduler started", "schedule", cfg.Schedule)
	c.Run()
}

// buildApp assembles the run pipeline: translator gateway, one adapter per
// configured feed and page, the identifier store and the SMTP sender.
func buildApp(ctx context.Context, cfg *config.Config, sources *config.Sources) (*app.App, func()) {
	backends := []translate.Backend{translate.NewGoogleBackend()}
	cleanup := func() {}

	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			slog.Warn("gemini backend unavailable", "error", err)
		} else {
			backends = append(backends, client)
			cleanup = client.Close
		}
	}

	gateway := translate.NewGateway(backends...)
	gateway.OnError(metrics.Global.IncrementFailedTranslations)

	parser := gofeed.NewParser()
	adapters := make([]app.Source, 0, len(sources.Feeds)+len(sources.Pages))
	for _, feed := range sources.Feeds {
		adapters = append(adapters, &rss.Adapter{
			Feed:       feed,
			Keywords:   sources.Keywords,
			TargetLang: cfg.TargetLang,
			Parser:     parser,
			Translator: gateway,
		})
	}
	for _, page := range sources.Pages {
		adapters = append(adapters, scrape.NewAdapter(page, sources.Keywords))
	}

	return app.New(store.New(cfg.StorePath), adapters, mail.NewSender(cfg.SMTP)), cleanup
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	slog.Info("starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		slog.Error("monitoring server stopped", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics.Global.GetStats())
}
