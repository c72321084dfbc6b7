package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ticker-screener/config"
	"ticker-screener/internal/dto"
	"ticker-screener/internal/model"
	"ticker-screener/pkg/logger"
	"ticker-screener/pkg/utils"
)

type fakeMarketData struct {
	bars     map[string]dto.BarSeries
	barsErr  error
	price    *float64
	priceErr error
	earnings *time.Time
	earnErr  error
}

func (f *fakeMarketData) GetBars(_ context.Context, ticker string, granularity dto.Granularity) (dto.BarSeries, error) {
	if f.barsErr != nil {
		return nil, f.barsErr
	}
	return f.bars[string(granularity)], nil
}

func (f *fakeMarketData) GetCurrentPrice(_ context.Context, _ string) (*float64, error) {
	return f.price, f.priceErr
}

func (f *fakeMarketData) GetNextEarningsDate(_ context.Context, _ string) (*time.Time, error) {
	return f.earnings, f.earnErr
}

type fakeWatchlistRepo struct {
	items []model.WatchlistItem
	err   error
}

func (f *fakeWatchlistRepo) List(_ context.Context) ([]model.WatchlistItem, error) {
	return f.items, f.err
}

func (f *fakeWatchlistRepo) GetByTicker(_ context.Context, _ string) (*model.WatchlistItem, error) {
	return nil, nil
}

func (f *fakeWatchlistRepo) Add(_ context.Context, ticker, assetType string) (*model.WatchlistItem, error) {
	return &model.WatchlistItem{Ticker: ticker, AssetType: assetType}, nil
}

func (f *fakeWatchlistRepo) Remove(_ context.Context, _ string) (int64, error) {
	return 1, nil
}

func (f *fakeWatchlistRepo) Clear(_ context.Context) error { return nil }

func (f *fakeWatchlistRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeSnapshotRepo struct {
	created []*model.ScreenSnapshot
}

func (f *fakeSnapshotRepo) Create(_ context.Context, snapshot *model.ScreenSnapshot) error {
	f.created = append(f.created, snapshot)
	return nil
}

func (f *fakeSnapshotRepo) GetLatest(_ context.Context, _ int) ([]model.ScreenSnapshot, error) {
	return nil, nil
}

func risingBars(n int) dto.BarSeries {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make(dto.BarSeries, n)
	for i := range bars {
		c := 100 + 2*float64(i)
		bars[i] = dto.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func testConfig() *config.Config {
	return &config.Config{
		Screener: config.Screener{MaxConcurrency: 2, Timeout: time.Minute},
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	assert.NoError(t, err)
	return log
}

func newTestAnalyzer(t *testing.T, market *fakeMarketData, watchlist *fakeWatchlistRepo, snapshots *fakeSnapshotRepo) AnalyzerService {
	t.Helper()
	return NewAnalyzerService(testConfig(), testLogger(t), market, watchlist, snapshots)
}

func TestAnalyzeTicker_StockRunsAllEnabledCriteria(t *testing.T) {
	market := &fakeMarketData{
		bars: map[string]dto.BarSeries{
			"daily":  risingBars(90),
			"weekly": risingBars(52),
		},
		price:    utils.ToPointer(230.10),
		earnings: utils.ToPointer(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)),
	}

	svc := newTestAnalyzer(t, market, &fakeWatchlistRepo{}, &fakeSnapshotRepo{})
	result := svc.AnalyzeTicker(context.Background(), "aapl", dto.AssetTypeStock, dto.AllCriteria())

	assert.Equal(t, "AAPL", result.Ticker)
	assert.Equal(t, "$230.10", result.FormattedPrice)
	assert.Len(t, result.Verdicts, 7)
	for _, key := range dto.AllCriteria().Enabled() {
		assert.Contains(t, result.Verdicts, key)
	}
	assert.Equal(t, dto.StatusPass, result.Verdicts[dto.CriterionNextEarningDate].Status)
	assert.Equal(t, "2026-09-10", result.Verdicts[dto.CriterionNextEarningDate].Message)
}

func TestAnalyzeTicker_OptionOnlyGetsRSI(t *testing.T) {
	market := &fakeMarketData{
		bars: map[string]dto.BarSeries{"daily": risingBars(90)},
	}

	svc := newTestAnalyzer(t, market, &fakeWatchlistRepo{}, &fakeSnapshotRepo{})
	result := svc.AnalyzeTicker(context.Background(), "SPY", dto.AssetTypeOption, dto.AllCriteria())

	assert.Len(t, result.Verdicts, 1)
	assert.Contains(t, result.Verdicts, dto.CriterionRSIConfirmation)
	assert.Equal(t, "N/A", result.FormattedPrice)
}

func TestAnalyzeTicker_DisabledCriteriaAreOmitted(t *testing.T) {
	market := &fakeMarketData{
		bars: map[string]dto.BarSeries{
			"daily":  risingBars(90),
			"weekly": risingBars(52),
		},
	}

	criteria := dto.CriteriaSet{RSIConfirmation: true, DMIConfirmation: true}
	svc := newTestAnalyzer(t, market, &fakeWatchlistRepo{}, &fakeSnapshotRepo{})
	result := svc.AnalyzeTicker(context.Background(), "MSFT", dto.AssetTypeStock, criteria)

	assert.Len(t, result.Verdicts, 2)
	assert.Contains(t, result.Verdicts, dto.CriterionRSIConfirmation)
	assert.Contains(t, result.Verdicts, dto.CriterionDMIConfirmation)
	assert.NotContains(t, result.Verdicts, dto.CriterionAvoidSqueeze)
}

func TestAnalyzeTicker_UpstreamFailureBecomesFailVerdicts(t *testing.T) {
	market := &fakeMarketData{
		barsErr:  fmt.Errorf("polygon api returned status: 503"),
		priceErr: fmt.Errorf("polygon api returned status: 503"),
		earnErr:  fmt.Errorf("polygon api returned status: 503"),
	}

	svc := newTestAnalyzer(t, market, &fakeWatchlistRepo{}, &fakeSnapshotRepo{})
	result := svc.AnalyzeTicker(context.Background(), "AAPL", dto.AssetTypeStock, dto.AllCriteria())

	assert.Equal(t, "N/A", result.FormattedPrice)
	assert.Len(t, result.Verdicts, 7)
	for key, verdict := range result.Verdicts {
		assert.Equal(t, dto.StatusFail, verdict.Status, "criterion %s", key)
	}
	assert.Contains(t, result.Verdicts[dto.CriterionRSIConfirmation].Message, "Failed to fetch market data")
}

func TestAnalyzeWatchlist_KeepsOrderAndPersistsSnapshot(t *testing.T) {
	market := &fakeMarketData{
		bars: map[string]dto.BarSeries{
			"daily":  risingBars(90),
			"weekly": risingBars(52),
		},
	}
	watchlist := &fakeWatchlistRepo{items: []model.WatchlistItem{
		{Ticker: "AAPL", AssetType: "Stock"},
		{Ticker: "SPY", AssetType: "Option"},
		{Ticker: "MSFT", AssetType: "Stock"},
	}}
	snapshots := &fakeSnapshotRepo{}

	svc := newTestAnalyzer(t, market, watchlist, snapshots)
	results, err := svc.AnalyzeWatchlist(context.Background(), dto.AllCriteria(), false)

	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "AAPL", results[0].Ticker)
	assert.Equal(t, "SPY", results[1].Ticker)
	assert.Equal(t, "MSFT", results[2].Ticker)

	assert.Len(t, snapshots.created, 1)
	snapshot := snapshots.created[0]
	assert.Equal(t, 3, snapshot.TickerCount)

	var criteria dto.CriteriaSet
	assert.NoError(t, json.Unmarshal(snapshot.Criteria, &criteria))
	assert.Equal(t, dto.AllCriteria(), criteria)
}

func TestAnalyzeWatchlist_PassingOnlyFiltersResults(t *testing.T) {
	// Every fetch fails, so every verdict is Fail and nothing passes.
	market := &fakeMarketData{barsErr: fmt.Errorf("unreachable")}
	watchlist := &fakeWatchlistRepo{items: []model.WatchlistItem{
		{Ticker: "AAPL", AssetType: "Stock"},
	}}

	svc := newTestAnalyzer(t, market, watchlist, &fakeSnapshotRepo{})
	results, err := svc.AnalyzeWatchlist(context.Background(), dto.AllCriteria(), true)

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestAnalyzeWatchlist_EmptyWatchlist(t *testing.T) {
	svc := newTestAnalyzer(t, &fakeMarketData{}, &fakeWatchlistRepo{}, &fakeSnapshotRepo{})
	results, err := svc.AnalyzeWatchlist(context.Background(), dto.AllCriteria(), false)

	assert.NoError(t, err)
	assert.Empty(t, results)
}
