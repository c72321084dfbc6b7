package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"ticker-screener/config"
	"ticker-screener/internal/dto"
	"ticker-screener/pkg/cache"
	"ticker-screener/pkg/httpclient"
	"ticker-screener/pkg/logger"
)

// MarketDataRepository serves OHLCV history, latest prices and earnings
// calendar lookups. GetCurrentPrice and GetNextEarningsDate return a nil
// value without an error when the upstream simply has no data.
type MarketDataRepository interface {
	GetBars(ctx context.Context, ticker string, granularity dto.Granularity) (dto.BarSeries, error)
	GetCurrentPrice(ctx context.Context, ticker string) (*float64, error)
	GetNextEarningsDate(ctx context.Context, ticker string) (*time.Time, error)
}

type polygonRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	cache          cache.Cache
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	mu             sync.Mutex
}

func NewPolygonRepository(cfg *config.Config, inmemCache cache.Cache, log *logger.Logger) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Polygon.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &polygonRepository{
		httpClient:     httpclient.New(cfg.Polygon.BaseURL, cfg.Polygon.Timeout),
		cfg:            cfg,
		cache:          inmemCache,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *polygonRepository) GetBars(ctx context.Context, ticker string, granularity dto.Granularity) (dto.BarSeries, error) {
	cacheKey := cache.Key("bars", ticker, string(granularity))
	if bars, found := cache.GetTyped[dto.BarSeries](r.cache, cacheKey); found {
		return bars, nil
	}

	timespan := "day"
	lookbackDays := r.cfg.Polygon.DailyLookbackDays
	if granularity == dto.GranularityWeekly {
		timespan = "week"
		lookbackDays = r.cfg.Polygon.WeeklyLookbackDays
	}

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -lookbackDays)
	endpoint := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/%s/%s/%s",
		ticker, timespan, start.Format("2006-01-02"), now.Format("2006-01-02"))

	var aggsResp dto.PolygonAggsResponse
	if err := r.get(ctx, endpoint, map[string]string{
		"adjusted": "true",
		"sort":     "asc",
		"limit":    "5000",
	}, &aggsResp); err != nil {
		return nil, err
	}

	if aggsResp.Error != "" {
		return nil, fmt.Errorf("polygon api error: %s", aggsResp.Error)
	}
	if len(aggsResp.Results) == 0 {
		return nil, fmt.Errorf("no %s bars returned for ticker: %s", granularity, ticker)
	}

	bars := make(dto.BarSeries, len(aggsResp.Results))
	for i, agg := range aggsResp.Results {
		bars[i] = dto.Bar{
			Date:   time.UnixMilli(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		}
	}

	r.cache.Set(cacheKey, bars, r.cfg.Polygon.BarsCacheTTL)
	return bars, nil
}

func (r *polygonRepository) GetCurrentPrice(ctx context.Context, ticker string) (*float64, error) {
	cacheKey := cache.Key("price", ticker)
	if price, found := cache.GetTyped[float64](r.cache, cacheKey); found {
		return &price, nil
	}

	endpoint := fmt.Sprintf("/v2/aggs/ticker/%s/prev", ticker)

	var aggsResp dto.PolygonAggsResponse
	if err := r.get(ctx, endpoint, map[string]string{"adjusted": "true"}, &aggsResp); err != nil {
		return nil, err
	}

	if aggsResp.Error != "" {
		return nil, fmt.Errorf("polygon api error: %s", aggsResp.Error)
	}
	if len(aggsResp.Results) == 0 {
		return nil, nil
	}

	price := aggsResp.Results[0].Close
	r.cache.Set(cacheKey, price, r.cfg.Polygon.PriceCacheTTL)
	return &price, nil
}

func (r *polygonRepository) GetNextEarningsDate(ctx context.Context, ticker string) (*time.Time, error) {
	cacheKey := cache.Key("earnings", ticker)
	if date, found := cache.GetTyped[time.Time](r.cache, cacheKey); found {
		return &date, nil
	}

	endpoint := fmt.Sprintf("/v3/reference/tickers/%s/events", ticker)

	var eventsResp dto.PolygonEventsResponse
	if err := r.get(ctx, endpoint, nil, &eventsResp); err != nil {
		return nil, err
	}

	var earnings []dto.PolygonEvent
	for _, event := range eventsResp.Results.Events {
		if event.Type == "earnings" {
			earnings = append(earnings, event)
		}
	}
	if len(earnings) == 0 {
		return nil, nil
	}

	sort.Slice(earnings, func(i, j int) bool {
		return earnings[i].Date < earnings[j].Date
	})

	date, err := time.Parse("2006-01-02", earnings[0].Date)
	if err != nil {
		return nil, fmt.Errorf("invalid earnings date %q for ticker %s: %w", earnings[0].Date, ticker, err)
	}

	r.cache.Set(cacheKey, date, r.cfg.Polygon.EarningsCacheTTL)
	return &date, nil
}

// get performs a rate-limited authenticated GET against the Polygon API.
func (r *polygonRepository) get(ctx context.Context, endpoint string, queryParams map[string]string, result interface{}) error {
	r.mu.Lock()
	if !r.requestLimiter.Allow() {
		r.logger.WarnContext(ctx, "Polygon API request limit reached, waiting",
			logger.IntField("max_request_per_minute", r.cfg.Polygon.MaxRequestPerMinute),
		)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	if queryParams == nil {
		queryParams = map[string]string{}
	}
	queryParams["apiKey"] = r.cfg.Polygon.APIKey

	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, result)
	if err != nil {
		return fmt.Errorf("failed to fetch data from polygon: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("polygon api rate limit exceeded")
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Polygon API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("endpoint", endpoint),
			logger.StringField("body", string(resp.Body)))
		return fmt.Errorf("polygon api returned status: %d", resp.StatusCode)
	}
	return nil
}
