// Package ticker validates free-text stock questions against a live symbol lookup
package ticker

import (
	"context"
	"fmt"
	"regexp"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/interfaces"
	"github.com/stocksage/stocksage/internal/models"
)

// candidatePattern matches short uppercase tokens that could be tickers
var candidatePattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

// Service implements TickerService
type Service struct {
	market interfaces.MarketDataClient
	logger *common.Logger
}

// NewService creates a new ticker validation service
func NewService(market interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		market: market,
		logger: logger,
	}
}

// ExtractCandidates returns the ticker-candidate tokens in text, in input order
func ExtractCandidates(text string) []string {
	return candidatePattern.FindAllString(text, -1)
}

// Resolve extracts candidates from text and returns the first one the symbol
// lookup confirms. A lookup failure for one candidate is logged as a warning
// and does not abort evaluation of the remaining candidates. If no candidate
// exists, no lookup is issued at all.
func (s *Service) Resolve(ctx context.Context, text string) (string, []string, error) {
	candidates := ExtractCandidates(text)
	if len(candidates) == 0 {
		return "", nil, models.NewPipelineError(models.ErrValidation, "ticker",
			"no ticker symbol found in input (e.g. AAPL, TSLA, or MSFT)")
	}

	var warnings []string
	for _, candidate := range candidates {
		info, err := s.market.LookupSymbol(ctx, candidate)
		if err != nil {
			s.logger.Warn().Str("candidate", candidate).Err(err).Msg("Ticker lookup failed")
			warnings = append(warnings, fmt.Sprintf("error validating ticker '%s': %v", candidate, err))
			continue
		}
		if info != nil && info.Symbol != "" {
			s.logger.Debug().Str("ticker", candidate).Str("name", info.Name).Msg("Ticker resolved")
			return candidate, warnings, nil
		}
	}

	return "", warnings, models.NewPipelineError(models.ErrValidation, "ticker",
		"no valid ticker symbol in %q", text)
}

// Ensure Service implements TickerService
var _ interfaces.TickerService = (*Service)(nil)
