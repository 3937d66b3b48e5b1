package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contentbrief/api"
	"contentbrief/brief"
	"contentbrief/config"
	"contentbrief/pipeline"
	"contentbrief/pkg/metrics"
	"contentbrief/scraper"
	"contentbrief/search"

	"go.uber.org/zap"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// HTTP
	// =========
	httpClient := NewHttpClient(cfg.HTTPTimeout)

	// =========
	// Metrics
	// =========
	m := metrics.New()

	// =========
	// Search Client
	// =========
	engine := search.NewSerperSearchEngine(httpClient, logger, search.SerperOptions{
		APIURL:  cfg.SerpAPIURL,
		APIKey:  cfg.SerpAPIKey,
		Country: cfg.SerpCountry,
		Page:    cfg.SerpPage,
	})

	// =========
	// Brief Composer
	// =========
	model, err := brief.NewOpenAIModel(brief.OpenAIOptions{
		APIKey:     cfg.OpenAIAPIKey,
		Model:      cfg.OpenAIModel,
		BaseURL:    cfg.OpenAIBaseURL,
		HTTPClient: httpClient,
	})
	if err != nil {
		logger.Warn("language model unavailable, brief requests will fail", zap.Error(err))
		model = brief.UnavailableModel{Err: err}
	}
	composer := brief.NewComposer(model, logger)

	// =========
	// Pipeline
	// =========
	p := pipeline.New(engine, scraper.NewScraper(httpClient, logger), composer, logger, m)

	// =========
	// HTTP server
	// =========
	server := api.NewServer(cfg.Addr(), p, logger, m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	if err := server.Start(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func NewLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}

func NewHttpClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: 120 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
