package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/interfaces"
	"github.com/stocksage/stocksage/internal/models"
)

const disclaimer = "This report uses AI-generated responses. They may be inaccurate or incorrect - use with caution."

// PDFRenderer renders stock reports as Letter-size PDF documents
type PDFRenderer struct {
	dir    string
	maxAge time.Duration
	logger *common.Logger
	now    func() time.Time // injectable clock for testing
}

// NewPDFRenderer creates a renderer writing into dir. Artifacts older than
// maxAge are swept before each render to avoid stale-file accumulation.
func NewPDFRenderer(dir string, maxAge time.Duration, logger *common.Logger) *PDFRenderer {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &PDFRenderer{
		dir:    dir,
		maxAge: maxAge,
		logger: logger,
		now:    time.Now,
	}
}

// Render writes the report PDF and returns its path
func (r *PDFRenderer) Render(report *models.StockReport) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", models.WrapPipelineError(models.ErrRendering, "render", err,
			"failed to create reports directory")
	}

	r.sweepStale()

	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Stock Analysis Report: %s", report.Ticker), true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr(disclaimer), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Stock Analysis Report: %s", report.Ticker)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Metadata
	summary := report.Summary
	weekVerb := "lost"
	if summary.WeekChange > 0 {
		weekVerb = "gained"
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generated on: %s", report.GeneratedAt.Format("2006-01-02"))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Current Price: $%.2f (%+.2f%% today)", summary.Price, summary.DayChange)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Weekly Change: %s %.2f%%", weekVerb, abs(summary.WeekChange))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Price chart
	if png, err := renderPriceChart(report.Ticker, summary.Series); err == nil {
		name := "trend-chart-" + report.ID
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.ImageOptions(name, 10, pdf.GetY(), 170, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetY(pdf.GetY() + 78)
	} else {
		r.logger.Warn().Err(err).Str("ticker", report.Ticker).Msg("Price chart rendering skipped")
	}

	writeSection(pdf, tr, "Trend Analysis", report.TrendAnalysis)
	writeSection(pdf, tr, "Sentiment Analysis", report.SentimentAnalysis)
	if report.HasChartAnalysis() {
		writeSection(pdf, tr, "Chart Analysis", report.ChartAnalysis)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("%s_analysis_report_%s.pdf", report.Ticker, report.ID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", models.WrapPipelineError(models.ErrRendering, "render", err,
			"failed to generate report for %s", report.Ticker)
	}

	return path, nil
}

// writeSection writes a subheading followed by the narrative, with line
// breaks rendered as paragraph breaks
func writeSection(pdf *fpdf.Fpdf, tr func(string) string, heading, body string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(heading), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, para := range strings.Split(body, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 5, tr(para), "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(4)
}

// renderPriceChart renders the 7-day closing price series as a PNG line chart
func renderPriceChart(ticker string, series models.PriceSeries) ([]byte, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("not enough points for chart")
	}

	xs := make([]time.Time, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = p.Date
		ys[i] = p.Close
	}

	graph := chart.Chart{
		Width:  680,
		Height: 280,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    ticker,
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sweepStale removes report artifacts older than maxAge
func (r *PDFRenderer) sweepStale() {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return
	}

	cutoff := r.now().Add(-r.maxAge)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(r.dir, entry.Name())
			if err := os.Remove(path); err == nil {
				r.logger.Debug().Str("path", path).Msg("Swept stale report")
			}
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Ensure PDFRenderer implements ReportRenderer
var _ interfaces.ReportRenderer = (*PDFRenderer)(nil)
