package models

import "time"

// StockReport is the composed result of a full analysis pipeline run
type StockReport struct {
	ID                string        `json:"id"`
	Ticker            string        `json:"ticker"`
	GeneratedAt       time.Time     `json:"generated_at"`
	Summary           *PriceSummary `json:"summary"`
	Headlines         []string      `json:"headlines"`
	TrendAnalysis     string        `json:"trend_analysis"`
	SentimentAnalysis string        `json:"sentiment_analysis"`
	ChartAnalysis     string        `json:"chart_analysis,omitempty"`
	LookupWarnings    []string      `json:"lookup_warnings,omitempty"`
	ReportPath        string        `json:"-"`
}

// HasChartAnalysis reports whether a chart narrative was produced
func (r *StockReport) HasChartAnalysis() bool {
	return r.ChartAnalysis != ""
}
