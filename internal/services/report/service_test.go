package report

import (
	"context"
	"testing"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/interfaces"
	"github.com/stocksage/stocksage/internal/models"
)

// --- Mocks ---

type mockTickerService struct {
	ticker   string
	warnings []string
	err      error
}

func (m *mockTickerService) Resolve(_ context.Context, _ string) (string, []string, error) {
	return m.ticker, m.warnings, m.err
}

type mockMarketService struct {
	summary *models.PriceSummary
	err     error
	calls   int
}

func (m *mockMarketService) FetchSummary(_ context.Context, _ string) (*models.PriceSummary, error) {
	m.calls++
	return m.summary, m.err
}

type mockNewsService struct {
	headlines []string
	err       error
	calls     int
}

func (m *mockNewsService) FetchHeadlines(_ context.Context, _ string) ([]string, error) {
	m.calls++
	return m.headlines, m.err
}

type mockAnalysisService struct {
	sentiment string
	trend     string
	chart     string
	err       error

	sentimentCalls int
	trendCalls     int
	chartCalls     int
	chartImage     []byte
}

func (m *mockAnalysisService) AnalyzeSentiment(_ context.Context, _ []string) (string, error) {
	m.sentimentCalls++
	return m.sentiment, m.err
}

func (m *mockAnalysisService) AnalyzeTrend(_ context.Context, _, _ string, _ []string) (string, error) {
	m.trendCalls++
	return m.trend, m.err
}

func (m *mockAnalysisService) AnalyzeChart(_ context.Context, _ string, image []byte, _ string) (string, error) {
	m.chartCalls++
	m.chartImage = image
	return m.chart, m.err
}

type mockRenderer struct {
	path  string
	err   error
	calls int
	last  *models.StockReport
}

func (m *mockRenderer) Render(report *models.StockReport) (string, error) {
	m.calls++
	m.last = report
	return m.path, m.err
}

func testSummary() *models.PriceSummary {
	return &models.PriceSummary{
		Ticker:       "AAPL",
		Price:        155.10,
		DayChange:    0.71,
		WeekChange:   3.40,
		TrendListing: "2026-08-29: $155.10",
	}
}

type pipelineMocks struct {
	ticker   *mockTickerService
	market   *mockMarketService
	news     *mockNewsService
	analysis *mockAnalysisService
	renderer *mockRenderer
}

func newTestPipeline() (*Service, *pipelineMocks) {
	m := &pipelineMocks{
		ticker:   &mockTickerService{ticker: "AAPL"},
		market:   &mockMarketService{summary: testSummary()},
		news:     &mockNewsService{headlines: []string{"Apple beats earnings"}},
		analysis: &mockAnalysisService{sentiment: "Bullish.", trend: "Rising.", chart: "Bullish crossover."},
		renderer: &mockRenderer{path: "/tmp/AAPL_analysis_report_test.pdf"},
	}
	svc := NewService(m.ticker, m.market, m.news, m.analysis, m.renderer, common.NewSilentLogger())
	return svc, m
}

func TestAnalyze_WithoutImage(t *testing.T) {
	svc, m := newTestPipeline()

	report, err := svc.Analyze(context.Background(), interfaces.AnalyzeRequest{Question: "What about AAPL?"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.Ticker != "AAPL" {
		t.Errorf("unexpected ticker: %s", report.Ticker)
	}
	if report.TrendAnalysis != "Rising." || report.SentimentAnalysis != "Bullish." {
		t.Error("expected narratives carried into the report")
	}
	if m.analysis.chartCalls != 0 {
		t.Error("vision stage must not run without an uploaded image")
	}
	if report.HasChartAnalysis() {
		t.Error("expected no chart analysis without an image")
	}
	if m.renderer.calls != 1 {
		t.Errorf("expected one render, got %d", m.renderer.calls)
	}
	if report.ReportPath != m.renderer.path {
		t.Errorf("unexpected report path: %s", report.ReportPath)
	}
	if report.ID == "" {
		t.Error("expected a report ID")
	}
}

func TestAnalyze_WithImage(t *testing.T) {
	svc, m := newTestPipeline()

	image := []byte{0xff, 0xd8, 0xff}
	report, err := svc.Analyze(context.Background(), interfaces.AnalyzeRequest{
		Question:  "TSLA chart attached",
		Image:     image,
		ImageMIME: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if m.analysis.chartCalls != 1 {
		t.Errorf("expected one vision call, got %d", m.analysis.chartCalls)
	}
	if string(m.analysis.chartImage) != string(image) {
		t.Error("expected exact image bytes forwarded")
	}
	if report.ChartAnalysis != "Bullish crossover." {
		t.Errorf("unexpected chart analysis: %s", report.ChartAnalysis)
	}
}

func TestAnalyze_ValidationFailureHaltsPipeline(t *testing.T) {
	svc, m := newTestPipeline()
	m.ticker.ticker = ""
	m.ticker.err = models.NewPipelineError(models.ErrValidation, "ticker", "no valid ticker")

	_, err := svc.Analyze(context.Background(), interfaces.AnalyzeRequest{Question: "hello"})
	if err == nil {
		t.Fatal("expected error")
	}
	if m.market.calls != 0 || m.news.calls != 0 {
		t.Error("no fetch may run after validation failure")
	}
	if m.renderer.calls != 0 {
		t.Error("no report may be rendered after a failure")
	}
}

func TestAnalyze_MarketFailureHaltsPipeline(t *testing.T) {
	svc, m := newTestPipeline()
	m.market.summary = nil
	m.market.err = models.NewPipelineError(models.ErrDataUnavailable, "market", "not enough data for AAPL")

	_, err := svc.Analyze(context.Background(), interfaces.AnalyzeRequest{Question: "AAPL?"})
	if err == nil {
		t.Fatal("expected error")
	}
	if models.KindOf(err) != models.ErrDataUnavailable {
		t.Errorf("expected data-unavailable kind, got %s", models.KindOf(err))
	}
	if m.analysis.sentimentCalls != 0 || m.analysis.trendCalls != 0 {
		t.Error("analysis stages must not run after a fetch failure")
	}
	if m.renderer.calls != 0 {
		t.Error("no partial report may be produced")
	}
}

func TestAnalyze_SentimentFailureSkipsTrend(t *testing.T) {
	svc, m := newTestPipeline()
	m.analysis.err = models.NewPipelineError(models.ErrExternalService, "sentiment", "model unavailable")

	_, err := svc.Analyze(context.Background(), interfaces.AnalyzeRequest{Question: "AAPL?"})
	if err == nil {
		t.Fatal("expected error")
	}
	if m.analysis.trendCalls != 0 {
		t.Error("trend stage must not run after sentiment failure")
	}
	if m.renderer.calls != 0 {
		t.Error("no report may be rendered after a failure")
	}
}

func TestAnalyze_WarningsCarriedIntoReport(t *testing.T) {
	svc, m := newTestPipeline()
	m.ticker.warnings = []string{"error validating ticker 'WHAT': lookup timeout"}

	report, err := svc.Analyze(context.Background(), interfaces.AnalyzeRequest{Question: "WHAT about AAPL?"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(report.LookupWarnings) != 1 {
		t.Errorf("expected lookup warnings in report, got %v", report.LookupWarnings)
	}
}

func TestLookup(t *testing.T) {
	svc, _ := newTestPipeline()

	report, err := svc.Analyze(context.Background(), interfaces.AnalyzeRequest{Question: "AAPL?"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	got, ok := svc.Lookup(report.ID)
	if !ok {
		t.Fatal("expected report to be retrievable by ID")
	}
	if got.Ticker != "AAPL" {
		t.Errorf("unexpected ticker: %s", got.Ticker)
	}

	if _, ok := svc.Lookup("missing"); ok {
		t.Error("expected miss for unknown ID")
	}
}
