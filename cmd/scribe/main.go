package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulseline/scribe/internal/anthropic"
	"github.com/pulseline/scribe/internal/api"
	"github.com/pulseline/scribe/internal/config"
	"github.com/pulseline/scribe/internal/events"
	"github.com/pulseline/scribe/internal/interpreter"
	"github.com/pulseline/scribe/internal/matcher"
	"github.com/pulseline/scribe/internal/prompts"
	"github.com/pulseline/scribe/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("scribe starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database (optional — without it interpretation works, nothing persists)
	var db *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database connected")

		n, err := db.SeedParamTargets(ctx)
		if err != nil {
			slog.Error("failed to seed param targets", "error", err)
			os.Exit(1)
		}
		if n > 0 {
			slog.Info("seeded param targets", "count", n)
		}
	} else {
		slog.Warn("DATABASE_URL not set — running without persistence")
	}

	// Anthropic client (optional — without it every message gets the
	// not-configured reply)
	var llm *anthropic.Client
	if cfg.AnthropicAPIKey != "" {
		llm = anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		slog.Info("anthropic client ready", "model", cfg.AnthropicModel)
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — interpretation disabled")
	}

	// Reference-range matcher, backed by the database when available
	var source matcher.CorpusSource
	if db != nil {
		source = db
	} else {
		source = matcher.StaticSource(store.DefaultParamTargets)
	}
	m := matcher.New(source, slog.Default())

	// Interpretation pipeline
	interp := interpreter.New(llm, prompts.NewStore(), interpreter.Options{
		MaxTokens:  cfg.MaxTokens,
		SecondPass: cfg.SecondPass,
		Debug:      cfg.Debug,
		Codes:      m,
	}, slog.Default())

	// NATS (optional — without it no events are published)
	var eventsClient *events.Client
	if cfg.NatsURL != "" {
		var err error
		eventsClient, err = events.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Warn("failed to connect to NATS — running without events", "error", err)
		} else {
			defer eventsClient.Close()
			slog.Info("NATS connected", "url", cfg.NatsURL)

			// Corpus changes anywhere in the fleet drop the local matcher
			// cache instead of waiting out the TTL.
			err := eventsClient.Subscribe(events.SubjectParamUpdated, func(subject string, data []byte) {
				m.Invalidate()
			})
			if err != nil {
				slog.Warn("failed to subscribe to param updates", "error", err)
			}
		}
	}

	// HTTP API
	var es api.EntryStore
	if db != nil {
		es = db
	}
	var pub api.Publisher
	if eventsClient != nil {
		pub = eventsClient
	}
	srv := api.NewServer(cfg.Port, interp, m, es, pub, cfg.AnthropicModel, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Announce registration
	if eventsClient != nil {
		if err := eventsClient.Publish(events.SubjectScribeRegistered, events.ScribeRegistered{
			Service:   "scribe",
			Model:     cfg.AnthropicModel,
			StartedAt: time.Now().UnixMilli(),
		}); err != nil {
			slog.Warn("failed to publish registration", "error", err)
		}
	}

	slog.Info("scribe ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("scribe stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
