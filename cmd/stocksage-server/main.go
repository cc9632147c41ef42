package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stocksage/stocksage/internal/clients/gemini"
	"github.com/stocksage/stocksage/internal/clients/googlenews"
	"github.com/stocksage/stocksage/internal/clients/yahoo"
	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/server"
	"github.com/stocksage/stocksage/internal/services/analysis"
	"github.com/stocksage/stocksage/internal/services/market"
	"github.com/stocksage/stocksage/internal/services/news"
	"github.com/stocksage/stocksage/internal/services/report"
	"github.com/stocksage/stocksage/internal/services/ticker"
)

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	config, err := common.LoadConfig("stocksage.toml", os.Getenv("STOCKSAGE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLogger(config.Logging.Level)

	// A missing Gemini credential is a fatal startup condition
	geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("GEMINI_API_KEY is not set")
	}

	ctx := context.Background()

	genaiClient, err := gemini.NewClient(ctx, geminiKey,
		gemini.WithModel(config.Clients.Gemini.Model),
		gemini.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	marketClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	newsClient := googlenews.NewClient(
		googlenews.WithBaseURL(config.Clients.News.BaseURL),
		googlenews.WithTimeout(config.Clients.News.GetTimeout()),
		googlenews.WithLogger(logger),
	)

	tickerSvc := ticker.NewService(marketClient, logger)
	marketSvc := market.NewService(marketClient, logger)
	newsSvc := news.NewService(newsClient, config.Clients.News.MaxHeadlines, logger)
	analysisSvc := analysis.NewService(genaiClient, logger)
	renderer := report.NewPDFRenderer(config.Reports.Path, config.Reports.GetMaxAge(), logger)
	reportSvc := report.NewService(tickerSvc, marketSvc, newsSvc, analysisSvc, renderer, logger)

	srv := server.NewServer(config, reportSvc, logger)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", config.Server.Port)).
		Str("version", common.GetFullVersion()).
		Msg("StockSage ready")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("Server stopped")
}
