// Package interfaces defines service contracts for StockSage
package interfaces

import (
	"context"
	"time"

	"github.com/stocksage/stocksage/internal/models"
)

// MarketDataClient provides access to the market-data provider
type MarketDataClient interface {
	// GetDailyCloses retrieves daily closing prices for the inclusive date
	// range, ascending by date. Days without a close are omitted.
	GetDailyCloses(ctx context.Context, ticker string, from, to time.Time) (models.PriceSeries, error)

	// LookupSymbol confirms a symbol identifies a tradable instrument
	LookupSymbol(ctx context.Context, symbol string) (*models.SymbolInfo, error)
}

// NewsClient provides access to the news syndication feed
type NewsClient interface {
	// SearchHeadlines returns up to limit entry titles in feed order.
	// An empty feed yields an empty slice, not an error.
	SearchHeadlines(ctx context.Context, query string, limit int) ([]string, error)
}

// GenAIClient provides access to the generative text/vision model
type GenAIClient interface {
	// GenerateContent generates text from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// GenerateWithImage generates text from a prompt plus inline image bytes
	GenerateWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}
