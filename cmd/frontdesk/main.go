package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sanrafael-clinic/frontdesk/internal/api"
	"github.com/sanrafael-clinic/frontdesk/internal/audit"
	"github.com/sanrafael-clinic/frontdesk/internal/catalog"
	"github.com/sanrafael-clinic/frontdesk/internal/config"
	"github.com/sanrafael-clinic/frontdesk/internal/engine"
	"github.com/sanrafael-clinic/frontdesk/internal/events"
	"github.com/sanrafael-clinic/frontdesk/internal/llm"
	"github.com/sanrafael-clinic/frontdesk/internal/session"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("frontdesk starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Language service
	if cfg.OpenAIAPIKey == "" {
		slog.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}
	svc := llm.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	slog.Info("openai client ready", "model", cfg.OpenAIModel)

	// Audit store (optional — sessions still work without persistence)
	var auditor engine.Auditor
	if cfg.DatabaseURL != "" {
		db, err := audit.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			slog.Error("failed to ensure audit schema", "error", err)
			os.Exit(1)
		}
		auditor = db
		slog.Info("audit store connected")
	} else {
		slog.Warn("DATABASE_URL not set — running without session audit")
	}

	// Event bus (optional — lifecycle events are best effort)
	var bus engine.Publisher
	var eventsClient *events.Client
	if cfg.NatsURL != "" {
		ec, err := events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Warn("NATS unavailable — running without session events", "error", err)
		} else {
			defer ec.Close()
			bus = ec
			eventsClient = ec
			slog.Info("NATS connected", "url", cfg.NatsURL)
		}
	}

	sessions := session.NewRegistry(slog.Default())
	eng := engine.New(svc, catalog.Default(), auditor, bus, cfg.TurnTimeout, slog.Default())

	// A gateway-side hangup notification tears the session down even if the
	// HTTP status callback never arrives.
	if eventsClient != nil {
		err := eventsClient.SubscribeCallEnded(func(ev events.CallEnded) {
			if rec := sessions.Dispose(session.ChannelVoice, ev.CallSID); rec != nil {
				eng.Close(ctx, rec)
				slog.Info("call ended via event", "call_sid", ev.CallSID, "call_status", ev.Status)
			}
		})
		if err != nil {
			slog.Error("failed to subscribe to call-ended events", "error", err)
			os.Exit(1)
		}
	}

	srv := api.NewServer(cfg.Port, eng, sessions, cfg.MinConfidence, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("frontdesk ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("frontdesk stopped")
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
