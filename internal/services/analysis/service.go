// Package analysis produces model-generated narratives for the report pipeline
package analysis

import (
	"context"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/interfaces"
	"github.com/stocksage/stocksage/internal/models"
)

// Service implements AnalysisService
type Service struct {
	genai  interfaces.GenAIClient
	logger *common.Logger
}

// NewService creates a new analysis service
func NewService(genai interfaces.GenAIClient, logger *common.Logger) *Service {
	return &Service{
		genai:  genai,
		logger: logger,
	}
}

// AnalyzeSentiment classifies aggregate headline sentiment on the five-point
// Bearish..Bullish scale with a 1-2 sentence rationale. An empty headline
// list still issues a prompt; the model's raw text is returned unmodified.
func (s *Service) AnalyzeSentiment(ctx context.Context, headlines []string) (string, error) {
	prompt := buildSentimentPrompt(headlines)

	text, err := s.genai.GenerateContent(ctx, prompt)
	if err != nil {
		return "", models.WrapPipelineError(models.ErrExternalService, "sentiment", err,
			"sentiment analysis failed")
	}

	s.logger.Debug().Int("headlines", len(headlines)).Msg("Sentiment analysis generated")

	return text, nil
}

// AnalyzeTrend produces the structured weekly trend narrative from the price
// listing and headlines
func (s *Service) AnalyzeTrend(ctx context.Context, ticker, trendListing string, headlines []string) (string, error) {
	prompt := buildTrendPrompt(ticker, trendListing, headlines)

	text, err := s.genai.GenerateContent(ctx, prompt)
	if err != nil {
		return "", models.WrapPipelineError(models.ErrExternalService, "trend", err,
			"trend analysis failed for %s", ticker)
	}

	s.logger.Debug().Str("ticker", ticker).Msg("Trend analysis generated")

	return text, nil
}

// AnalyzeChart interprets an uploaded chart image for the ticker using the
// vision-capable model
func (s *Service) AnalyzeChart(ctx context.Context, ticker string, image []byte, mimeType string) (string, error) {
	prompt := buildChartPrompt(ticker)

	text, err := s.genai.GenerateWithImage(ctx, prompt, image, mimeType)
	if err != nil {
		return "", models.WrapPipelineError(models.ErrExternalService, "chart", err,
			"chart analysis failed for %s", ticker)
	}

	s.logger.Debug().Str("ticker", ticker).Int("image_bytes", len(image)).Msg("Chart analysis generated")

	return text, nil
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
