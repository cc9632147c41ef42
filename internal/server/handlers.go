package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/interfaces"
	"github.com/stocksage/stocksage/internal/models"
)

// maxUploadBytes limits the multipart request body (chart images).
const maxUploadBytes = 8 << 20 // 8MB

// AnalyzeResponse is the JSON result of a pipeline run.
type AnalyzeResponse struct {
	Ticker            string   `json:"ticker"`
	GeneratedAt       string   `json:"generated_at"`
	Price             float64  `json:"price"`
	DayChange         float64  `json:"day_change_pct"`
	WeekChange        float64  `json:"week_change_pct"`
	SummaryLine       string   `json:"summary_line"`
	TrendAnalysis     string   `json:"trend_analysis"`
	SentimentAnalysis string   `json:"sentiment_analysis"`
	ChartAnalysis     string   `json:"chart_analysis,omitempty"`
	LookupWarnings    []string `json:"lookup_warnings,omitempty"`
	ReportID          string   `json:"report_id"`
	DownloadURL       string   `json:"download_url"`
}

// handleHealth responds to GET/HEAD /api/health with {"status":"ok"}.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET/HEAD /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleAnalyze handles POST /api/analyze: a multipart form with a free-text
// "question" field and an optional "chart" image (PNG/JPEG). It runs the
// full pipeline and returns the composed report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "Please enter a stock question (e.g. \"What's happening with AAPL?\")",
			Code:  string(models.ErrValidation),
		})
		return
	}

	req := interfaces.AnalyzeRequest{Question: question}

	if file, header, err := r.FormFile("chart"); err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Failed to read uploaded chart")
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" || mimeType == "application/octet-stream" {
			mimeType = http.DetectContentType(data)
		}
		if mimeType != "image/png" && mimeType != "image/jpeg" {
			WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "Chart upload must be a PNG or JPEG image",
				Code:  string(models.ErrValidation),
			})
			return
		}

		req.Image = data
		req.ImageMIME = mimeType
	}

	report, err := s.reports.Analyze(r.Context(), req)
	if err != nil {
		s.logger.Error().Err(err).Msg("Analysis pipeline failed")
		WritePipelineError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildAnalyzeResponse(report))
}

// buildAnalyzeResponse maps a report to the response DTO.
func buildAnalyzeResponse(report *models.StockReport) AnalyzeResponse {
	summary := report.Summary
	weekVerb := "lost"
	if summary.WeekChange > 0 {
		weekVerb = "gained"
	}

	return AnalyzeResponse{
		Ticker:            report.Ticker,
		GeneratedAt:       report.GeneratedAt.Format("2006-01-02"),
		Price:             summary.Price,
		DayChange:         summary.DayChange,
		WeekChange:        summary.WeekChange,
		SummaryLine: fmt.Sprintf("%s current price: $%.2f (%+.2f%% today). Over the past week, the stock has %s %.2f%%",
			report.Ticker, summary.Price, summary.DayChange, weekVerb, absFloat(summary.WeekChange)),
		TrendAnalysis:     report.TrendAnalysis,
		SentimentAnalysis: report.SentimentAnalysis,
		ChartAnalysis:     report.ChartAnalysis,
		LookupWarnings:    report.LookupWarnings,
		ReportID:          report.ID,
		DownloadURL:       fmt.Sprintf("/api/reports/%s/download", report.ID),
	}
}

// handleReportDownload handles GET /api/reports/{id}/download, serving the
// rendered PDF as an attachment named {ticker}_analysis_report.pdf.
func (s *Server) handleReportDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	id := PathParam(r.URL.Path, "/api/reports/", "/download")
	if id == "" {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}

	report, ok := s.reports.Lookup(id)
	if !ok {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}

	if _, err := os.Stat(report.ReportPath); err != nil {
		WriteError(w, http.StatusGone, "Report file no longer available")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s_analysis_report.pdf", report.Ticker))
	http.ServeFile(w, r, report.ReportPath)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
