package evaluator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ticker-screener/internal/dto"
	"ticker-screener/internal/indicator"
)

func seriesOf(values ...float64) indicator.Series {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	out := make(indicator.Series, len(values))
	for i, v := range values {
		out[i] = indicator.Point{Date: start.AddDate(0, 0, i), Value: v}
	}
	return out
}

func barsOf(closes []float64, volumes []float64) dto.BarSeries {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	bars := make(dto.BarSeries, len(closes))
	for i, c := range closes {
		vol := 1000.0
		if volumes != nil {
			vol = volumes[i]
		}
		bars[i] = dto.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: vol,
		}
	}
	return bars
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestRSIConfirmation(t *testing.T) {
	tests := []struct {
		name       string
		rsi        indicator.Series
		wantStatus dto.Status
		wantMsg    string
	}{
		{
			name:       "too few points",
			rsi:        seriesOf(45),
			wantStatus: dto.StatusFail,
			wantMsg:    "Not enough RSI data",
		},
		{
			name:       "in range and rising",
			rsi:        seriesOf(40, 45),
			wantStatus: dto.StatusPass,
			wantMsg:    "RSI is between 30-60 and rising (45.00)",
		},
		{
			name:       "rising but above range",
			rsi:        seriesOf(65, 70),
			wantStatus: dto.StatusFail,
			wantMsg:    "RSI condition not met (70.00)",
		},
		{
			name:       "in range but falling",
			rsi:        seriesOf(50, 45),
			wantStatus: dto.StatusFail,
			wantMsg:    "RSI condition not met (45.00)",
		},
		{
			name:       "previous point outside the band",
			rsi:        seriesOf(25, 40),
			wantStatus: dto.StatusFail,
			wantMsg:    "RSI condition not met (40.00)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RSIConfirmation(tt.rsi)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestMACDCrossoverOrRising(t *testing.T) {
	tests := []struct {
		name       string
		macd       indicator.Series
		signal     indicator.Series
		wantStatus dto.Status
	}{
		{
			name:       "too few points",
			macd:       seriesOf(0.1),
			signal:     seriesOf(0.2),
			wantStatus: dto.StatusFail,
		},
		{
			name:       "rising macd",
			macd:       seriesOf(-1, -0.5, 0.2),
			signal:     seriesOf(-0.8, -0.6, 0.1),
			wantStatus: dto.StatusPass,
		},
		{
			name:       "crossover while falling",
			macd:       seriesOf(-0.5, -0.6),
			signal:     seriesOf(-0.4, -0.7),
			wantStatus: dto.StatusPass,
		},
		{
			name:       "falling below signal",
			macd:       seriesOf(0.5, 0.2),
			signal:     seriesOf(0.6, 0.4),
			wantStatus: dto.StatusFail,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MACDCrossoverOrRising(tt.macd, tt.signal)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestDMITrend(t *testing.T) {
	t.Run("too few bars", func(t *testing.T) {
		got := DMITrend(barsOf(repeat(100, 27), nil))
		assert.Equal(t, dto.StatusFail, got.Status)
		assert.Equal(t, "Not enough data for DMI calculation", got.Message)
	})

	t.Run("sustained uptrend confirms", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100 + 2*float64(i)
		}
		got := DMITrend(barsOf(closes, nil))
		assert.Equal(t, dto.StatusPass, got.Status)
		value, ok := got.Value.(dto.DMIValue)
		assert.True(t, ok)
		assert.Greater(t, value.PlusDI, value.MinusDI)
		assert.Greater(t, value.ADX, 20.0)
	})

	t.Run("flat market does not confirm", func(t *testing.T) {
		got := DMITrend(barsOf(repeat(100, 60), nil))
		assert.Equal(t, dto.StatusFail, got.Status)
	})
}

func TestEMACrossover(t *testing.T) {
	base := append(repeat(10, 25), 9, 11)

	t.Run("too few bars", func(t *testing.T) {
		got := EMACrossover(barsOf(repeat(10, 20), nil), EMAFastSpan, EMASlowSpan)
		assert.Equal(t, dto.StatusFail, got.Status)
		assert.Equal(t, "Not enough data for EMA calculation", got.Message)
	})

	t.Run("fresh crossover passes", func(t *testing.T) {
		got := EMACrossover(barsOf(base, nil), EMAFastSpan, EMASlowSpan)
		assert.Equal(t, dto.StatusPass, got.Status)
		assert.Equal(t, "EMA 8 just crossed above EMA 21", got.Message)
	})

	t.Run("no crossover on the last bar fails", func(t *testing.T) {
		got := EMACrossover(barsOf(base[:len(base)-1], nil), EMAFastSpan, EMASlowSpan)
		assert.Equal(t, dto.StatusFail, got.Status)
		assert.Equal(t, "No recent bullish EMA crossover", got.Message)
	})

	t.Run("already above for a while fails", func(t *testing.T) {
		closes := make([]float64, 40)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		got := EMACrossover(barsOf(closes, nil), EMAFastSpan, EMASlowSpan)
		assert.Equal(t, dto.StatusFail, got.Status)
	})
}

func TestShortSqueezeRisk(t *testing.T) {
	t.Run("too few bars", func(t *testing.T) {
		got := ShortSqueezeRisk(barsOf(repeat(100, 29), nil))
		assert.Equal(t, dto.StatusFail, got.Status)
		assert.Equal(t, "Not enough data for squeeze analysis", got.Message)
	})

	t.Run("breakout on heavy volume warns", func(t *testing.T) {
		closes := append(repeat(100, 30), 105)
		volumes := append(repeat(1000, 30), 3000)
		got := ShortSqueezeRisk(barsOf(closes, volumes))
		assert.Equal(t, dto.StatusWarn, got.Status)
		value, ok := got.Value.(dto.SqueezeValue)
		assert.True(t, ok)
		assert.InDelta(t, 3000.0/1100.0, value.RVOL, 1e-9)
		assert.Equal(t, 100.0, value.Resistance)
		assert.Equal(t, 105.0, value.Price)
	})

	t.Run("breakout on normal volume passes", func(t *testing.T) {
		closes := append(repeat(100, 30), 105)
		got := ShortSqueezeRisk(barsOf(closes, nil))
		assert.Equal(t, dto.StatusPass, got.Status)
		assert.Equal(t, "No major short squeeze risk detected", got.Message)
	})

	t.Run("exactly thirty bars has no resistance to break", func(t *testing.T) {
		closes := append(repeat(100, 29), 105)
		volumes := append(repeat(1000, 29), 3000)
		got := ShortSqueezeRisk(barsOf(closes, volumes))
		assert.Equal(t, dto.StatusPass, got.Status)
	})
}

func TestNextEarningsDate(t *testing.T) {
	t.Run("known date passes with the date as message", func(t *testing.T) {
		date := time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC)
		got := NextEarningsDate(&date, "")
		assert.Equal(t, dto.StatusPass, got.Status)
		assert.Equal(t, "2025-07-24", got.Message)
		assert.Equal(t, dto.EarningsValue{Date: "2025-07-24"}, got.Value)
	})

	t.Run("lookup failure carries its reason", func(t *testing.T) {
		got := NextEarningsDate(nil, "No upcoming earnings found.")
		assert.Equal(t, dto.StatusFail, got.Status)
		assert.Equal(t, "No upcoming earnings found.", got.Message)
	})

	t.Run("missing reason gets a default", func(t *testing.T) {
		got := NextEarningsDate(nil, "")
		assert.Equal(t, dto.StatusFail, got.Status)
		assert.Equal(t, "No upcoming earnings found.", got.Message)
	})
}
