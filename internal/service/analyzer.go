package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"ticker-screener/config"
	"ticker-screener/internal/dto"
	"ticker-screener/internal/evaluator"
	"ticker-screener/internal/indicator"
	"ticker-screener/internal/model"
	"ticker-screener/internal/repository"
	"ticker-screener/pkg/logger"
	"ticker-screener/pkg/utils"
)

// AnalyzerService screens tickers against the enabled criteria.
// AnalyzeTicker never returns an error: every failure mode is folded into
// Fail verdicts so one bad ticker cannot sink a whole watchlist scan.
type AnalyzerService interface {
	AnalyzeTicker(ctx context.Context, ticker string, assetType dto.AssetType, criteria dto.CriteriaSet) dto.AnalysisResult
	AnalyzeWatchlist(ctx context.Context, criteria dto.CriteriaSet, passingOnly bool) ([]dto.AnalysisResult, error)
	RecentSnapshots(ctx context.Context, limit int) ([]model.ScreenSnapshot, error)
}

type analyzerService struct {
	cfg           *config.Config
	log           *logger.Logger
	marketData    repository.MarketDataRepository
	watchlistRepo repository.WatchlistRepository
	snapshotRepo  repository.ScreenSnapshotRepository
}

func NewAnalyzerService(
	cfg *config.Config,
	log *logger.Logger,
	marketData repository.MarketDataRepository,
	watchlistRepo repository.WatchlistRepository,
	snapshotRepo repository.ScreenSnapshotRepository,
) AnalyzerService {
	return &analyzerService{
		cfg:           cfg,
		log:           log,
		marketData:    marketData,
		watchlistRepo: watchlistRepo,
		snapshotRepo:  snapshotRepo,
	}
}

func (s *analyzerService) AnalyzeTicker(ctx context.Context, ticker string, assetType dto.AssetType, criteria dto.CriteriaSet) (result dto.AnalysisResult) {
	ticker = strings.ToUpper(ticker)

	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "Ticker analysis panicked",
				logger.StringField("ticker", ticker),
				logger.Field("panic", r),
			)
			result = s.failAll(ticker, assetType, criteria, fmt.Sprintf("analysis failed: %v", r))
		}
	}()

	result = dto.AnalysisResult{
		Ticker:    ticker,
		AssetType: assetType,
		Verdicts:  map[string]dto.Verdict{},
	}

	price, err := s.marketData.GetCurrentPrice(ctx, ticker)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to fetch current price",
			logger.StringField("ticker", ticker),
			logger.ErrorField(err),
		)
	} else {
		result.CurrentPrice = price
	}
	result.FormattedPrice = utils.FormatUSD(result.CurrentPrice)

	isStock := assetType == dto.AssetTypeStock

	// The trend series is weekly for stocks and daily for options; options
	// only get the RSI check, everything else needs stock OHLCV structure.
	longGranularity := dto.GranularityWeekly
	if !isStock {
		longGranularity = dto.GranularityDaily
	}

	needLong := criteria.RSIConfirmation || (isStock && criteria.WeeklyMACD)
	needDaily := isStock && (criteria.DMIConfirmation || criteria.EMACrossover ||
		criteria.MACDCrossover || criteria.AvoidSqueeze)

	var longBars, dailyBars dto.BarSeries
	var longErr, dailyErr error
	if needLong {
		longBars, longErr = s.marketData.GetBars(ctx, ticker, longGranularity)
	}
	if needDaily {
		dailyBars, dailyErr = s.marketData.GetBars(ctx, ticker, dto.GranularityDaily)
	}

	if criteria.RSIConfirmation {
		result.Verdicts[dto.CriterionRSIConfirmation] = barVerdict(longErr, longBars, func(bars dto.BarSeries) dto.Verdict {
			return evaluator.RSIConfirmation(indicator.RSI(bars, indicator.DefaultRSIPeriod))
		})
	}

	if isStock {
		if criteria.DMIConfirmation {
			result.Verdicts[dto.CriterionDMIConfirmation] = barVerdict(dailyErr, dailyBars, evaluator.DMITrend)
		}
		if criteria.EMACrossover {
			result.Verdicts[dto.CriterionEMACrossover] = barVerdict(dailyErr, dailyBars, func(bars dto.BarSeries) dto.Verdict {
				return evaluator.EMACrossover(bars, evaluator.EMAFastSpan, evaluator.EMASlowSpan)
			})
		}
		if criteria.MACDCrossover {
			result.Verdicts[dto.CriterionMACDCrossover] = barVerdict(dailyErr, dailyBars, func(bars dto.BarSeries) dto.Verdict {
				macd, signal := indicator.MACD(bars, evaluator.DailyMACDFast, evaluator.DailyMACDSlow, evaluator.DailyMACDSignal)
				return evaluator.MACDCrossoverOrRising(macd, signal)
			})
		}
		if criteria.WeeklyMACD {
			result.Verdicts[dto.CriterionWeeklyMACD] = barVerdict(longErr, longBars, func(bars dto.BarSeries) dto.Verdict {
				macd, signal := indicator.MACD(bars, indicator.DefaultMACDFast, indicator.DefaultMACDSlow, indicator.DefaultMACDSignal)
				return evaluator.MACDCrossoverOrRising(macd, signal)
			})
		}
		if criteria.AvoidSqueeze {
			result.Verdicts[dto.CriterionAvoidSqueeze] = barVerdict(dailyErr, dailyBars, evaluator.ShortSqueezeRisk)
		}
		if criteria.NextEarningDate {
			date, earningsErr := s.marketData.GetNextEarningsDate(ctx, ticker)
			errMsg := ""
			if earningsErr != nil {
				errMsg = earningsErr.Error()
			}
			result.Verdicts[dto.CriterionNextEarningDate] = evaluator.NextEarningsDate(date, errMsg)
		}
	}

	return result
}

func (s *analyzerService) AnalyzeWatchlist(ctx context.Context, criteria dto.CriteriaSet, passingOnly bool) ([]dto.AnalysisResult, error) {
	items, err := s.watchlistRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}
	if len(items) == 0 {
		return []dto.AnalysisResult{}, nil
	}

	s.log.InfoContext(ctx, "Starting watchlist scan",
		logger.IntField("ticker_count", len(items)),
		logger.IntField("max_concurrency", s.cfg.Screener.MaxConcurrency),
	)

	results := make([]dto.AnalysisResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Screener.MaxConcurrency)
	for i, item := range items {
		g.Go(func() error {
			if !utils.ShouldContinue(gctx, s.log) {
				results[i] = s.failAll(strings.ToUpper(item.Ticker), dto.AssetType(item.AssetType), criteria, "scan cancelled")
				return nil
			}
			results[i] = s.AnalyzeTicker(gctx, item.Ticker, dto.AssetType(item.AssetType), criteria)
			return nil
		})
	}
	// Workers never return errors; failures live inside the verdicts.
	_ = g.Wait()

	s.persistSnapshot(ctx, criteria, results)

	if passingOnly {
		filtered := make([]dto.AnalysisResult, 0, len(results))
		for _, r := range results {
			if r.HasPassing() {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	return results, nil
}

// persistSnapshot records the scan outcome for later review. Failures are
// logged and swallowed; the scan result still goes back to the caller.
func (s *analyzerService) persistSnapshot(ctx context.Context, criteria dto.CriteriaSet, results []dto.AnalysisResult) {
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal scan criteria", logger.ErrorField(err))
		return
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal scan results", logger.ErrorField(err))
		return
	}

	passing := 0
	for _, r := range results {
		if r.HasPassing() {
			passing++
		}
	}

	snapshot := &model.ScreenSnapshot{
		Criteria:     criteriaJSON,
		Results:      resultsJSON,
		TickerCount:  len(results),
		PassingCount: passing,
	}
	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist scan snapshot", logger.ErrorField(err))
	}
}

const defaultSnapshotLimit = 10

func (s *analyzerService) RecentSnapshots(ctx context.Context, limit int) ([]model.ScreenSnapshot, error) {
	if limit <= 0 {
		limit = defaultSnapshotLimit
	}
	return s.snapshotRepo.GetLatest(ctx, limit)
}

func (s *analyzerService) failAll(ticker string, assetType dto.AssetType, criteria dto.CriteriaSet, message string) dto.AnalysisResult {
	result := dto.AnalysisResult{
		Ticker:         ticker,
		AssetType:      assetType,
		FormattedPrice: utils.FormatUSD(nil),
		Verdicts:       map[string]dto.Verdict{},
	}
	for _, key := range criteria.Enabled() {
		if assetType != dto.AssetTypeStock && key != dto.CriterionRSIConfirmation {
			continue
		}
		result.Verdicts[key] = dto.NewFailVerdict(message, nil)
	}
	return result
}

func barVerdict(err error, bars dto.BarSeries, eval func(dto.BarSeries) dto.Verdict) dto.Verdict {
	if err != nil {
		return dto.NewFailVerdict(fmt.Sprintf("Failed to fetch market data: %v", err), nil)
	}
	return eval(bars)
}
