package analysis

import (
	"fmt"
	"strings"
)

// buildSentimentPrompt asks the model to classify aggregate headline
// sentiment on the five-point scale
func buildSentimentPrompt(headlines []string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the sentiment of the following news headlines for a stock:\n")
	sb.WriteString("Headlines:\n")
	for _, h := range headlines {
		sb.WriteString("- ")
		sb.WriteString(h)
		sb.WriteString("\n")
	}
	sb.WriteString("\nProvide a sentiment summary (Bullish, Slightly Bullish, Neutral, Slightly Bearish, Bearish) ")
	sb.WriteString("and a brief explanation (1-2 sentences).")
	return sb.String()
}

// buildTrendPrompt asks the model for the structured weekly trend narrative.
// The model may only use the supplied price listing and headlines.
func buildTrendPrompt(ticker, trendListing string, headlines []string) string {
	var sb strings.Builder
	sb.WriteString("You are a financial analyst AI.\n")
	fmt.Fprintf(&sb, "Analyze the stock performance of %s over the past week based on:\n", ticker)
	sb.WriteString(trendListing)
	sb.WriteString("\nRecent headlines:\n")
	for _, h := range headlines {
		sb.WriteString("- ")
		sb.WriteString(h)
		sb.WriteString("\n")
	}
	sb.WriteString(`Provide in short:
1. Full name of stock and main highlight
2. Overall trend (rising, falling, flat)
3. Connection with relevant news
4. Investor insight (1-2 sentences)

Do NOT make up news or events. Only use what's above. Avoid repetitions and any extra or filler words.`)
	return sb.String()
}

// buildChartPrompt asks the vision model to read technical patterns off an
// uploaded chart image
func buildChartPrompt(ticker string) string {
	return fmt.Sprintf("Analyze this financial chart or screenshot for %s. "+
		"Identify key patterns such as moving averages, trends, or indicators "+
		"(e.g., 50-day vs. 200-day moving average, RSI, MACD). "+
		"Provide a concise insight, such as whether the chart indicates a bullish or bearish trend.", ticker)
}
