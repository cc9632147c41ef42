// Package googlenews provides a client for the Google News RSS search feed
package googlenews

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/interfaces"
)

const (
	DefaultBaseURL = "https://news.google.com/rss/search"
	DefaultTimeout = 30 * time.Second

	// Google News serves a captcha page to unknown user agents
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// rss mirrors the Google News RSS payload
type rss struct {
	XMLName xml.Name `xml:"rss"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title string `xml:"title"`
	Items []item `xml:"item"`
}

type item struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Source  source `xml:"source"`
}

type source struct {
	URL  string `xml:"url,attr"`
	Text string `xml:",chardata"`
}

// Client implements the NewsClient interface
type Client struct {
	baseURL string
	client  *resty.Client
	logger  *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.SetTimeout(timeout)
	}
}

// NewClient creates a new Google News client
func NewClient(opts ...ClientOption) *Client {
	client := resty.New()
	client.SetTimeout(DefaultTimeout)
	client.SetHeader("User-Agent", userAgent)

	c := &Client{
		baseURL: DefaultBaseURL,
		client:  client,
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchHeadlines fetches the feed for query and returns up to limit entry
// titles in feed order. An empty feed yields an empty slice, not an error.
func (c *Client) SearchHeadlines(ctx context.Context, query string, limit int) ([]string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news feed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode())
	}

	var feed rss
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	items := feed.Channel.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	headlines := make([]string, 0, len(items))
	for _, it := range items {
		headlines = append(headlines, it.Title)
	}

	c.logger.Debug().Str("query", query).Int("headlines", len(headlines)).Msg("News feed fetched")

	return headlines, nil
}

// Ensure Client implements NewsClient
var _ interfaces.NewsClient = (*Client)(nil)
