package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crawlsight/crawlsight/app/analysis"
	"github.com/crawlsight/crawlsight/app/api"
	"github.com/crawlsight/crawlsight/app/cfg"
	"github.com/crawlsight/crawlsight/app/crawl"
	"github.com/crawlsight/crawlsight/app/database"
	"github.com/crawlsight/crawlsight/app/llm"
	"github.com/crawlsight/crawlsight/app/rules"
	"github.com/crawlsight/crawlsight/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Crawlsight server", "version", appCfg.Version)

	// Database connection
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	// Repositories
	sessionRepo := database.NewSessionRepository(db)
	pageRepo := database.NewPageRepository(db)
	resultRepo := database.NewResultRepository(db)

	// Insight rules
	insightRules, err := rules.Load(appCfg.RulesFile)
	if err != nil {
		log.Fatalf("Failed to load insight rules: %v", err)
	}

	// LLM provider binding, chosen once at startup
	completionFn, providerName := llm.NewCompletionFunc()
	if providerName != "" {
		slog.Info("LLM provider configured", "provider", providerName)
	} else {
		slog.Info("No LLM provider configured, qualitative analysis disabled")
	}

	// Background persistence
	scheduler := tasks.NewScheduler(sessionRepo, pageRepo, resultRepo, appCfg.StorageChunk, 2)
	scheduler.Start()
	defer scheduler.Stop()

	// Analysis pipeline
	pipeline := analysis.NewPipeline(
		crawl.NewNormalizer(),
		analysis.NewAggregator(),
		analysis.NewSampler(appCfg.SampleSize, appCfg.PromptPages),
		analysis.NewAnalyzer(completionFn),
		analysis.NewEngine(insightRules),
		scheduler,
	)

	// HTTP server
	apiHandler := api.NewHandler(crawl.NewReader(), pipeline, sessionRepo, resultRepo, completionFn, providerName)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Server shutdown complete")
}
