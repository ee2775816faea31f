package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quillworks/mimic/internal/agent"
	"github.com/quillworks/mimic/internal/api"
	"github.com/quillworks/mimic/internal/audit"
	"github.com/quillworks/mimic/internal/bus"
	"github.com/quillworks/mimic/internal/config"
	"github.com/quillworks/mimic/internal/intake"
	"github.com/quillworks/mimic/internal/llm"
	"github.com/quillworks/mimic/internal/store"
	"github.com/quillworks/mimic/internal/styletransfer"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("mimic starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	if err := store.Migrate(ctx, cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database ready")

	// LLM client
	if cfg.LLMAPIKey == "" {
		slog.Error("LLM_API_KEY is required")
		os.Exit(1)
	}
	backend := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	slog.Info("llm client ready", "model", cfg.LLMModel)

	// Agents
	analyzer := agent.NewStyleAnalyzer(backend, slog.Default())
	writer := agent.NewCopywriter(backend, slog.Default())

	// Intake collaborator
	fetcher := intake.NewHTTPFetcher(cfg.IntakeURL, slog.Default())

	// NATS (optional — mimic works without it, just no audit trail)
	var busClient *bus.Client
	if cfg.NatsURL != "" {
		busClient, err = bus.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer busClient.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)

		recorder := audit.NewRecorder(db, slog.Default())
		if err := recorder.Start(busClient); err != nil {
			slog.Error("failed to subscribe audit recorder", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("NATS not configured, running without generation audit trail")
	}

	// Orchestrator
	var pub styletransfer.Publisher
	if busClient != nil {
		pub = busClient
	}
	svc := styletransfer.New(analyzer, writer, db, fetcher, pub, slog.Default())

	// HTTP API
	srv := api.NewServer(cfg.Port, cfg.APIToken, svc, db, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Announce registration
	if busClient != nil {
		if err := busClient.Publish(bus.SubjectAgentReady, map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"port":      cfg.Port,
			"model":     cfg.LLMModel,
		}); err != nil {
			slog.Warn("failed to publish registration", "error", err)
		}
	}

	slog.Info("mimic ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown error", "error", err)
	}
	cancel()
	slog.Info("mimic stopped")
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
