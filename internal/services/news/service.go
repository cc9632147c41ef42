// Package news fetches recent headlines for a ticker
package news

import (
	"context"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/interfaces"
	"github.com/stocksage/stocksage/internal/models"
)

// DefaultMaxHeadlines caps how many feed entries are kept
const DefaultMaxHeadlines = 20

// Service implements NewsService
type Service struct {
	client       interfaces.NewsClient
	maxHeadlines int
	logger       *common.Logger
}

// NewService creates a new news service. maxHeadlines <= 0 uses the default.
func NewService(client interfaces.NewsClient, maxHeadlines int, logger *common.Logger) *Service {
	if maxHeadlines <= 0 {
		maxHeadlines = DefaultMaxHeadlines
	}
	return &Service{
		client:       client,
		maxHeadlines: maxHeadlines,
		logger:       logger,
	}
}

// FetchHeadlines queries the feed with "{ticker} stock" and returns up to the
// configured number of titles in feed order. An empty feed is not an error.
func (s *Service) FetchHeadlines(ctx context.Context, ticker string) ([]string, error) {
	headlines, err := s.client.SearchHeadlines(ctx, ticker+" stock", s.maxHeadlines)
	if err != nil {
		return nil, models.WrapPipelineError(models.ErrExternalService, "news", err,
			"failed to fetch headlines for %s", ticker)
	}

	s.logger.Debug().Str("ticker", ticker).Int("headlines", len(headlines)).Msg("Headlines fetched")

	return headlines, nil
}

// Ensure Service implements NewsService
var _ interfaces.NewsService = (*Service)(nil)
