package interfaces

import (
	"context"

	"github.com/stocksage/stocksage/internal/models"
)

// TickerService validates free-text input against the symbol lookup
type TickerService interface {
	// Resolve extracts ticker candidates from text and returns the first
	// confirmed symbol. Warnings collect per-candidate lookup failures that
	// did not abort resolution.
	Resolve(ctx context.Context, text string) (ticker string, warnings []string, err error)
}

// MarketService fetches and summarizes recent price history
type MarketService interface {
	// FetchSummary retrieves the trailing 7-day close window and computes
	// the derived price metrics
	FetchSummary(ctx context.Context, ticker string) (*models.PriceSummary, error)
}

// NewsService fetches recent headlines for a ticker
type NewsService interface {
	FetchHeadlines(ctx context.Context, ticker string) ([]string, error)
}

// AnalysisService produces model-generated narratives
type AnalysisService interface {
	// AnalyzeSentiment classifies aggregate headline sentiment on the
	// Bearish..Bullish five-point scale with a short rationale
	AnalyzeSentiment(ctx context.Context, headlines []string) (string, error)

	// AnalyzeTrend produces the structured weekly trend narrative
	AnalyzeTrend(ctx context.Context, ticker, trendListing string, headlines []string) (string, error)

	// AnalyzeChart interprets an uploaded chart image for the ticker
	AnalyzeChart(ctx context.Context, ticker string, image []byte, mimeType string) (string, error)
}

// ReportRenderer renders a composed report into a document artifact
type ReportRenderer interface {
	// Render writes the report to disk and returns the artifact path
	Render(report *models.StockReport) (string, error)
}

// AnalyzeRequest carries one pipeline invocation's inputs
type AnalyzeRequest struct {
	Question  string
	Image     []byte
	ImageMIME string
}

// ReportService orchestrates the analysis pipeline and renders reports
type ReportService interface {
	// Analyze runs the full pipeline and returns the composed report.
	// Any stage failure halts the pipeline; no partial report is produced.
	Analyze(ctx context.Context, req AnalyzeRequest) (*models.StockReport, error)

	// Lookup returns a previously generated report by ID
	Lookup(id string) (*models.StockReport, bool)
}
