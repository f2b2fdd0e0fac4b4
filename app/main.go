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

	"github.com/lysyi3m/notiongram/app/api"
	"github.com/lysyi3m/notiongram/app/cfg"
	"github.com/lysyi3m/notiongram/app/client"
	"github.com/lysyi3m/notiongram/app/feed"
	"github.com/lysyi3m/notiongram/app/notion"
	"github.com/lysyi3m/notiongram/app/view"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting Notiongram server", "version", appCfg.Version)

	schemas := feed.NewSchemaCache(appCfg.SchemaFile)
	if err := schemas.Run(); err != nil {
		slog.Error("Failed to load schema", "file", appCfg.SchemaFile, "error", err)
		os.Exit(1)
	}

	if appCfg.NotionDatabaseID == "" {
		slog.Warn("NOTION_DATABASE_ID not set, /api/notion will report an error")
	}

	notionClient := notion.NewClient(notion.Options{
		BaseURL:   appCfg.NotionAPIURL,
		Token:     appCfg.NotionToken,
		Version:   appCfg.NotionVersion,
		UserAgent: appCfg.UserAgent,
		Timeout:   appCfg.GetNotionTimeout(),
		RateLimit: appCfg.NotionRateLimit,
	})
	service := feed.NewService(notionClient, schemas, appCfg.NotionDatabaseID)

	var pages view.Fetcher = service
	source := "notion"
	if appCfg.FeedURL != "" {
		pages = client.New(appCfg.FeedURL, appCfg.UserAgent, &http.Client{Timeout: appCfg.GetNotionTimeout()})
		source = appCfg.FeedURL
		slog.Info("Pages render from remote feed", "url", appCfg.FeedURL)
	}

	renderer, err := view.NewRenderer(appCfg.Language)
	if err != nil {
		slog.Error("Failed to initialize renderer", "error", err)
		os.Exit(1)
	}

	apiHandler := api.NewHandler(service, pages, renderer, schemas, source)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	// No WriteTimeout: pages stay open while the feed is fetched
	httpServer := &http.Server{
		Addr:              ":" + appCfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening",
			"port", appCfg.Port,
			"feed", appCfg.GetSelfURL()+"/",
			"gallery", appCfg.GetSelfURL()+"/gallery",
			"api", appCfg.GetSelfURL()+"/api/notion")

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

	slog.Info("Notiongram server shutdown complete")
}
