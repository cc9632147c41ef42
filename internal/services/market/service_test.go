package market

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/models"
)

// --- Mocks ---

type mockMarketClient struct {
	series models.PriceSeries
	err    error
	from   time.Time
	to     time.Time
}

func (m *mockMarketClient) GetDailyCloses(_ context.Context, _ string, from, to time.Time) (models.PriceSeries, error) {
	m.from = from
	m.to = to
	return m.series, m.err
}

func (m *mockMarketClient) LookupSymbol(_ context.Context, _ string) (*models.SymbolInfo, error) {
	return nil, nil
}

func weekSeries(closes ...float64) models.PriceSeries {
	start := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = models.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return series
}

func newTestService(client *mockMarketClient) *Service {
	svc := NewService(client, common.NewSilentLogger())
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC) }
	return svc
}

func TestFetchSummary(t *testing.T) {
	client := &mockMarketClient{series: weekSeries(150.00, 151.00, 149.50, 152.00, 153.25, 154.00, 155.10)}
	svc := newTestService(client)

	summary, err := svc.FetchSummary(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchSummary failed: %v", err)
	}

	if summary.Price != 155.10 {
		t.Errorf("expected latest price 155.10, got %v", summary.Price)
	}
	if math.Abs(summary.DayChange-0.714) > 0.001 {
		t.Errorf("expected day change ~0.714%%, got %v", summary.DayChange)
	}
	if math.Abs(summary.WeekChange-3.40) > 0.001 {
		t.Errorf("expected week change 3.40%%, got %v", summary.WeekChange)
	}
}

func TestFetchSummary_WindowIsSevenCalendarDays(t *testing.T) {
	client := &mockMarketClient{series: weekSeries(100, 101)}
	svc := newTestService(client)

	if _, err := svc.FetchSummary(context.Background(), "AAPL"); err != nil {
		t.Fatalf("FetchSummary failed: %v", err)
	}

	wantFrom := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	if !client.from.Equal(wantFrom) {
		t.Errorf("expected from %s, got %s", wantFrom, client.from)
	}
	if !client.to.Equal(wantTo) {
		t.Errorf("expected to %s, got %s", wantTo, client.to)
	}
}

func TestFetchSummary_InsufficientData(t *testing.T) {
	for _, closes := range [][]float64{{}, {150.00}} {
		client := &mockMarketClient{series: weekSeries(closes...)}
		svc := newTestService(client)

		_, err := svc.FetchSummary(context.Background(), "AAPL")
		if err == nil {
			t.Fatalf("expected insufficient-data error for %d points", len(closes))
		}
		if models.KindOf(err) != models.ErrDataUnavailable {
			t.Errorf("expected data-unavailable kind, got %s", models.KindOf(err))
		}
		if !strings.Contains(err.Error(), "AAPL") {
			t.Errorf("expected error to name the ticker: %v", err)
		}
	}
}

func TestFetchSummary_ProviderError(t *testing.T) {
	client := &mockMarketClient{err: errors.New("connection reset")}
	svc := newTestService(client)

	_, err := svc.FetchSummary(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	if models.KindOf(err) != models.ErrExternalService {
		t.Errorf("expected external-service kind, got %s", models.KindOf(err))
	}
}

// Percent changes must be invariant under scaling all prices by the same
// positive constant.
func TestFetchSummary_ScaleInvariance(t *testing.T) {
	base := []float64{150.00, 151.00, 149.50, 152.00, 153.25, 154.00, 155.10}
	scaled := make([]float64, len(base))
	for i, c := range base {
		scaled[i] = c * 40
	}

	svcA := newTestService(&mockMarketClient{series: weekSeries(base...)})
	svcB := newTestService(&mockMarketClient{series: weekSeries(scaled...)})

	a, err := svcA.FetchSummary(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svcB.FetchSummary(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(a.DayChange-b.DayChange) > 1e-9 {
		t.Errorf("day change not scale invariant: %v vs %v", a.DayChange, b.DayChange)
	}
	if math.Abs(a.WeekChange-b.WeekChange) > 1e-9 {
		t.Errorf("week change not scale invariant: %v vs %v", a.WeekChange, b.WeekChange)
	}
}

func TestFetchSummary_TrendListing(t *testing.T) {
	client := &mockMarketClient{series: weekSeries(150.00, 151.25)}
	svc := newTestService(client)

	summary, err := svc.FetchSummary(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchSummary failed: %v", err)
	}

	lines := strings.Split(summary.TrendListing, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per point, got %d", len(lines))
	}
	if lines[0] != "2026-08-23: $150.00" {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "2026-08-24: $151.25" {
		t.Errorf("unexpected second line: %q", lines[1])
	}
}
