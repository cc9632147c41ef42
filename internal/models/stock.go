// Package models defines data structures for StockSage
package models

import "time"

// SymbolInfo describes a tradable instrument returned by the symbol lookup
type SymbolInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Exchange string `json:"exchange,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// PricePoint is a single daily close
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered sequence of daily closes, ascending by date
type PriceSeries []PricePoint

// Latest returns the most recent point in the series.
// The series must be non-empty.
func (s PriceSeries) Latest() PricePoint {
	return s[len(s)-1]
}

// PriceSummary holds the derived metrics for a price series
type PriceSummary struct {
	Ticker       string      `json:"ticker"`
	Price        float64     `json:"price"`
	DayChange    float64     `json:"day_change_pct"`
	WeekChange   float64     `json:"week_change_pct"`
	Series       PriceSeries `json:"series"`
	TrendListing string      `json:"trend_listing"`
}

// PctChange computes the percentage change from old to new
func PctChange(old, new float64) float64 {
	return (new - old) / old * 100
}
