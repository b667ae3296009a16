package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gitbar/gitbar-web/app/cfg"
	"github.com/gitbar/gitbar-web/app/content"
	"github.com/gitbar/gitbar-web/app/feed"
	"github.com/gitbar/gitbar-web/app/web"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting Gitbar web server", "version", appCfg.Version)

	httpClient := &http.Client{Timeout: appCfg.FetchTimeout}

	fetcher := feed.NewFetcher(httpClient, feed.NewParser(), appCfg.FeedURL, appCfg.UserAgent)
	cache := feed.NewCache(fetcher, appCfg.CacheTTL)
	slog.Info("Feed configured", "url", fetcher.URL(), "cache_ttl", appCfg.CacheTTL, "fetch_timeout", appCfg.FetchTimeout)

	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 30*time.Second)
	if podcast, err := cache.Refresh(warmCtx); err != nil {
		slog.Warn("Initial feed fetch failed, pages will retry on demand", "url", fetcher.URL(), "error", err)
	} else {
		slog.Info("Feed loaded", "title", podcast.Info.Title, "episodes", len(podcast.Episodes))
	}
	cancelWarm()

	loader := content.NewLoader(appCfg.ContentDir)
	slog.Debug("Content directory configured", "dir", loader.Dir())

	handler := web.NewHandler(cache, loader, web.Site{
		Name:      appCfg.SiteName,
		BaseURL:   appCfg.BaseUrl,
		FeedURL:   appCfg.FeedURL,
		DonateURL: appCfg.DonateURL,
		Locale:    appCfg.Locale,
		Version:   appCfg.Version,
	})
	server := web.NewServer(handler, appCfg.CacheTTL)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port, "base_url", appCfg.BaseUrl)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	} else {
		slog.Info("HTTP server stopped")
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
