// Package report orchestrates the analysis pipeline and renders reports
package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/interfaces"
	"github.com/stocksage/stocksage/internal/models"
)

// Service implements ReportService
type Service struct {
	ticker   interfaces.TickerService
	market   interfaces.MarketService
	news     interfaces.NewsService
	analysis interfaces.AnalysisService
	renderer interfaces.ReportRenderer
	logger   *common.Logger

	mu      sync.Mutex
	reports map[string]*models.StockReport
}

// NewService creates a new report service
func NewService(
	ticker interfaces.TickerService,
	market interfaces.MarketService,
	news interfaces.NewsService,
	analysis interfaces.AnalysisService,
	renderer interfaces.ReportRenderer,
	logger *common.Logger,
) *Service {
	return &Service{
		ticker:   ticker,
		market:   market,
		news:     news,
		analysis: analysis,
		renderer: renderer,
		logger:   logger,
		reports:  make(map[string]*models.StockReport),
	}
}

// Analyze runs the full pipeline: validate, fetch, analyze, render.
// The first stage failure halts the pipeline; no partial report is produced.
// Price history and headlines are independent and fetched concurrently.
func (s *Service) Analyze(ctx context.Context, req interfaces.AnalyzeRequest) (*models.StockReport, error) {
	// Step 1: Resolve ticker
	ticker, warnings, err := s.ticker.Resolve(ctx, req.Question)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("ticker", ticker).Bool("has_image", len(req.Image) > 0).Msg("Analyzing stock")

	// Step 2: Fetch price history and headlines in parallel
	var (
		wg        sync.WaitGroup
		summary   *models.PriceSummary
		headlines []string
		marketErr error
		newsErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		summary, marketErr = s.market.FetchSummary(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		headlines, newsErr = s.news.FetchHeadlines(ctx, ticker)
	}()
	wg.Wait()

	if marketErr != nil {
		return nil, marketErr
	}
	if newsErr != nil {
		return nil, newsErr
	}

	// Step 3: Sentiment analysis
	sentiment, err := s.analysis.AnalyzeSentiment(ctx, headlines)
	if err != nil {
		return nil, err
	}

	// Step 4: Chart image analysis, only when an image was uploaded
	chartAnalysis := ""
	if len(req.Image) > 0 {
		chartAnalysis, err = s.analysis.AnalyzeChart(ctx, ticker, req.Image, req.ImageMIME)
		if err != nil {
			return nil, err
		}
	}

	// Step 5: Trend analysis
	trend, err := s.analysis.AnalyzeTrend(ctx, ticker, summary.TrendListing, headlines)
	if err != nil {
		return nil, err
	}

	// Step 6: Render the report
	report := &models.StockReport{
		ID:                uuid.New().String()[:8],
		Ticker:            ticker,
		GeneratedAt:       time.Now(),
		Summary:           summary,
		Headlines:         headlines,
		TrendAnalysis:     trend,
		SentimentAnalysis: sentiment,
		ChartAnalysis:     chartAnalysis,
		LookupWarnings:    warnings,
	}

	path, err := s.renderer.Render(report)
	if err != nil {
		return nil, err
	}
	report.ReportPath = path

	s.store(report)

	s.logger.Info().
		Str("ticker", ticker).
		Str("report_id", report.ID).
		Str("path", path).
		Msg("Report generated")

	return report, nil
}

// Lookup returns a previously generated report by ID
func (s *Service) Lookup(id string) (*models.StockReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	return r, ok
}

// store indexes a report by ID, pruning entries whose artifact has likely
// been swept already
func (s *Service) store(report *models.StockReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-2 * time.Hour)
	for id, r := range s.reports {
		if r.GeneratedAt.Before(cutoff) {
			delete(s.reports, id)
		}
	}

	s.reports[report.ID] = report
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)
