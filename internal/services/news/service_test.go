package news

import (
	"context"
	"errors"
	"testing"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/models"
)

type mockNewsClient struct {
	headlines []string
	err       error
	query     string
	limit     int
}

func (m *mockNewsClient) SearchHeadlines(_ context.Context, query string, limit int) ([]string, error) {
	m.query = query
	m.limit = limit
	return m.headlines, m.err
}

func TestFetchHeadlines(t *testing.T) {
	client := &mockNewsClient{headlines: []string{"one", "two"}}
	svc := NewService(client, 20, common.NewSilentLogger())

	headlines, err := svc.FetchHeadlines(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchHeadlines failed: %v", err)
	}

	if client.query != "AAPL stock" {
		t.Errorf("expected query with fixed stock keyword, got %q", client.query)
	}
	if client.limit != 20 {
		t.Errorf("expected limit 20, got %d", client.limit)
	}
	if len(headlines) != 2 || headlines[0] != "one" || headlines[1] != "two" {
		t.Errorf("expected feed order preserved, got %v", headlines)
	}
}

func TestFetchHeadlines_DefaultLimit(t *testing.T) {
	client := &mockNewsClient{}
	svc := NewService(client, 0, common.NewSilentLogger())

	if _, err := svc.FetchHeadlines(context.Background(), "TSLA"); err != nil {
		t.Fatal(err)
	}
	if client.limit != DefaultMaxHeadlines {
		t.Errorf("expected default limit %d, got %d", DefaultMaxHeadlines, client.limit)
	}
}

func TestFetchHeadlines_EmptyFeedIsNotAnError(t *testing.T) {
	client := &mockNewsClient{headlines: []string{}}
	svc := NewService(client, 20, common.NewSilentLogger())

	headlines, err := svc.FetchHeadlines(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("expected empty feed to succeed, got %v", err)
	}
	if len(headlines) != 0 {
		t.Errorf("expected no headlines, got %v", headlines)
	}
}

func TestFetchHeadlines_ErrorWrapped(t *testing.T) {
	client := &mockNewsClient{err: errors.New("feed down")}
	svc := NewService(client, 20, common.NewSilentLogger())

	_, err := svc.FetchHeadlines(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected error")
	}
	if models.KindOf(err) != models.ErrExternalService {
		t.Errorf("expected external-service kind, got %s", models.KindOf(err))
	}
}
