// Package market fetches and summarizes recent price history
package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/interfaces"
	"github.com/stocksage/stocksage/internal/models"
)

// windowDays is the trailing calendar window for the price summary:
// 6 days before today through today, inclusive.
const windowDays = 6

// Service implements MarketService
type Service struct {
	client interfaces.MarketDataClient
	logger *common.Logger
	now    func() time.Time // injectable clock for testing
}

// NewService creates a new market data service
func NewService(client interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// FetchSummary retrieves the trailing 7-day daily closes for ticker and
// computes the derived metrics. Fewer than 2 available closes is a
// data-unavailable error naming the ticker; provider failures are wrapped
// as external-service errors. No retries.
func (s *Service) FetchSummary(ctx context.Context, ticker string) (*models.PriceSummary, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -windowDays)

	series, err := s.client.GetDailyCloses(ctx, ticker, from, today)
	if err != nil {
		return nil, models.WrapPipelineError(models.ErrExternalService, "market", err,
			"failed to fetch price data for %s", ticker)
	}

	if len(series) < 2 {
		return nil, models.NewPipelineError(models.ErrDataUnavailable, "market",
			"not enough data for %s", ticker)
	}

	latest := series[len(series)-1]
	previous := series[len(series)-2]
	earliest := series[0]

	summary := &models.PriceSummary{
		Ticker:       ticker,
		Price:        latest.Close,
		DayChange:    models.PctChange(previous.Close, latest.Close),
		WeekChange:   models.PctChange(earliest.Close, latest.Close),
		Series:       series,
		TrendListing: formatTrendListing(series),
	}

	s.logger.Debug().
		Str("ticker", ticker).
		Int("points", len(series)).
		Float64("price", summary.Price).
		Msg("Price summary computed")

	return summary, nil
}

// formatTrendListing builds the one-line-per-date price listing handed to
// the trend analyzer prompt
func formatTrendListing(series models.PriceSeries) string {
	lines := make([]string, 0, len(series))
	for _, p := range series {
		lines = append(lines, fmt.Sprintf("%s: $%.2f", p.Date.Format("2006-01-02"), p.Close))
	}
	return strings.Join(lines, "\n")
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
