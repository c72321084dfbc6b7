package service

import (
	"context"
	"fmt"
	"strings"

	"ticker-screener/internal/dto"
	"ticker-screener/internal/evaluator"
	"ticker-screener/internal/indicator"
	"ticker-screener/internal/repository"
	"ticker-screener/pkg/logger"
)

const dmiChartTailPoints = 60

// ChartService builds renderer-agnostic chart bundles. A bundle is always
// returned: when the underlying data cannot be fetched it degrades to an
// error bundle instead of an HTTP failure, so the frontend can render the
// message in place of the chart.
type ChartService interface {
	Build(ctx context.Context, ticker string, chartType dto.ChartType) dto.ChartBundle
}

type chartService struct {
	log        *logger.Logger
	marketData repository.MarketDataRepository
}

func NewChartService(log *logger.Logger, marketData repository.MarketDataRepository) ChartService {
	return &chartService{log: log, marketData: marketData}
}

func (s *chartService) Build(ctx context.Context, ticker string, chartType dto.ChartType) dto.ChartBundle {
	ticker = strings.ToUpper(ticker)
	title := chartTitle(ticker, chartType)

	granularity := dto.GranularityDaily
	if chartType == dto.ChartWeeklyMACD {
		granularity = dto.GranularityWeekly
	}

	bars, err := s.marketData.GetBars(ctx, ticker, granularity)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to fetch bars for chart",
			logger.StringField("ticker", ticker),
			logger.StringField("chart_type", string(chartType)),
			logger.ErrorField(err),
		)
		return dto.NewErrorChartBundle(title, fmt.Sprintf("Error generating chart: %v", err))
	}

	switch chartType {
	case dto.ChartRSI:
		return s.buildRSI(title, bars)
	case dto.ChartMACD:
		return s.buildMACD(title, bars, "MACD", "Signal",
			evaluator.DailyMACDFast, evaluator.DailyMACDSlow, evaluator.DailyMACDSignal)
	case dto.ChartWeeklyMACD:
		return s.buildMACD(title, bars, "Weekly MACD", "Weekly Signal",
			indicator.DefaultMACDFast, indicator.DefaultMACDSlow, indicator.DefaultMACDSignal)
	case dto.ChartEMA:
		return s.buildEMA(title, bars)
	case dto.ChartDMI:
		return s.buildDMI(title, bars)
	default:
		return dto.NewErrorChartBundle(title, fmt.Sprintf("Error generating chart: unknown chart type %q", chartType))
	}
}

func (s *chartService) buildRSI(title string, bars dto.BarSeries) dto.ChartBundle {
	rsi := indicator.RSI(bars, indicator.DefaultRSIPeriod)
	return dto.ChartBundle{
		Title: title,
		Traces: []dto.Trace{
			{Name: "RSI", X: rsi.Dates(), Y: rsi.Values(), Style: "purple"},
		},
		RefLines: []dto.RefLine{
			{Y: 70, Style: "red", Dashed: true},
			{Y: 30, Style: "green", Dashed: true},
		},
	}
}

func (s *chartService) buildMACD(title string, bars dto.BarSeries, macdName, signalName string, fast, slow, signalPeriod int) dto.ChartBundle {
	macd, signal := indicator.MACD(bars, fast, slow, signalPeriod)
	return dto.ChartBundle{
		Title: title,
		Traces: []dto.Trace{
			{Name: macdName, X: macd.Dates(), Y: macd.Values(), Style: "blue"},
			{Name: signalName, X: signal.Dates(), Y: signal.Values(), Style: "red"},
		},
		RefLines: []dto.RefLine{
			{Y: 0, Style: "gray", Dashed: true},
		},
	}
}

func (s *chartService) buildEMA(title string, bars dto.BarSeries) dto.ChartBundle {
	emaFast := indicator.EMA(bars, evaluator.EMAFastSpan)
	emaSlow := indicator.EMA(bars, evaluator.EMASlowSpan)
	return dto.ChartBundle{
		Title: title,
		Traces: []dto.Trace{
			{Name: "Close Price", X: bars.Dates(), Y: bars.Closes(), Style: "black"},
			{Name: fmt.Sprintf("EMA %d", evaluator.EMAFastSpan), X: emaFast.Dates(), Y: emaFast.Values(), Style: "blue"},
			{Name: fmt.Sprintf("EMA %d", evaluator.EMASlowSpan), X: emaSlow.Dates(), Y: emaSlow.Values(), Style: "red"},
		},
	}
}

func (s *chartService) buildDMI(title string, bars dto.BarSeries) dto.ChartBundle {
	dmi := indicator.DMI(bars, indicator.DefaultDMIWindow)
	plusDI := dmi.PlusDI.Tail(dmiChartTailPoints)
	minusDI := dmi.MinusDI.Tail(dmiChartTailPoints)
	adx := dmi.ADX.Tail(dmiChartTailPoints)
	return dto.ChartBundle{
		Title: title,
		Traces: []dto.Trace{
			{Name: "+DI", X: plusDI.Dates(), Y: plusDI.Values(), Style: "green"},
			{Name: "-DI", X: minusDI.Dates(), Y: minusDI.Values(), Style: "red"},
			{Name: "ADX", X: adx.Dates(), Y: adx.Values(), Style: "blue"},
		},
		RefLines: []dto.RefLine{
			{Y: 20, Style: "gray", Dashed: true},
		},
	}
}

func chartTitle(ticker string, chartType dto.ChartType) string {
	switch chartType {
	case dto.ChartRSI:
		return fmt.Sprintf("%s RSI", ticker)
	case dto.ChartMACD:
		return fmt.Sprintf("%s Daily MACD", ticker)
	case dto.ChartWeeklyMACD:
		return fmt.Sprintf("%s Weekly MACD", ticker)
	case dto.ChartEMA:
		return fmt.Sprintf("%s EMA Crossover", ticker)
	case dto.ChartDMI:
		return fmt.Sprintf("%s DMI Indicators (Last %d Days)", ticker, dmiChartTailPoints)
	default:
		return ticker
	}
}
