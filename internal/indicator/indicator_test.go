package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ticker-screener/internal/dto"
)

func makeBars(closes ...float64) dto.BarSeries {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make(dto.BarSeries, len(closes))
	for i, c := range closes {
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

func TestRSI(t *testing.T) {
	tests := []struct {
		name    string
		closes  []float64
		period  int
		wantLen int
		check   func(t *testing.T, got Series)
	}{
		{
			name:    "empty on too few bars",
			closes:  []float64{1, 2, 3},
			period:  14,
			wantLen: 0,
		},
		{
			name:    "one point per bar past the period",
			closes:  []float64{10, 11, 10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18},
			period:  14,
			wantLen: 2,
		},
		{
			name:    "all gains pin to 100",
			closes:  []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
			period:  14,
			wantLen: 2,
			check: func(t *testing.T, got Series) {
				for _, p := range got {
					assert.Equal(t, 100.0, p.Value)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RSI(makeBars(tt.closes...), tt.period)
			assert.Equal(t, tt.wantLen, got.Len())
			for _, p := range got {
				assert.GreaterOrEqual(t, p.Value, 0.0)
				assert.LessOrEqual(t, p.Value, 100.0)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestRSI_Deterministic(t *testing.T) {
	bars := makeBars(10, 11, 10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18)
	first := RSI(bars, 14)
	second := RSI(bars, 14)
	assert.Equal(t, first, second)
}

func TestEMA(t *testing.T) {
	t.Run("starts at the first close", func(t *testing.T) {
		got := EMA(makeBars(5, 6, 7), 3)
		assert.Equal(t, 3, got.Len())
		assert.Equal(t, 5.0, got[0].Value)
	})

	t.Run("constant input stays constant", func(t *testing.T) {
		got := EMA(makeBars(42, 42, 42, 42, 42), 3)
		for _, p := range got {
			assert.Equal(t, 42.0, p.Value)
		}
	})

	t.Run("converges toward a level shift", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100
			if i >= 30 {
				closes[i] = 200
			}
		}
		got := EMA(makeBars(closes...), 8)
		last, ok := got.Last()
		assert.True(t, ok)
		assert.InDelta(t, 200.0, last.Value, 1.0)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.True(t, EMA(nil, 8).Empty())
	})
}

func TestMACD(t *testing.T) {
	t.Run("empty pair below slow span", func(t *testing.T) {
		macd, signal := MACD(makeBars(1, 2, 3, 4, 5), 12, 26, 9)
		assert.True(t, macd.Empty())
		assert.True(t, signal.Empty())
	})

	t.Run("full length and aligned dates", func(t *testing.T) {
		closes := make([]float64, 40)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		bars := makeBars(closes...)
		macd, signal := MACD(bars, 12, 26, 9)
		assert.Equal(t, len(bars), macd.Len())
		assert.Equal(t, len(bars), signal.Len())
		assert.Equal(t, bars[0].Date, macd[0].Date)
		assert.Equal(t, bars[len(bars)-1].Date, signal[signal.Len()-1].Date)
	})

	t.Run("rising prices put macd above signal", func(t *testing.T) {
		closes := make([]float64, 40)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		macd, signal := MACD(makeBars(closes...), 12, 26, 9)
		lastMACD, _ := macd.Last()
		lastSignal, _ := signal.Last()
		assert.Greater(t, lastMACD.Value, lastSignal.Value)
	})
}

func TestDMI(t *testing.T) {
	uptrend := func(n int) dto.BarSeries {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + 2*float64(i)
		}
		return makeBars(closes...)
	}

	t.Run("empty below window plus one", func(t *testing.T) {
		got := DMI(uptrend(14), 14)
		assert.True(t, got.PlusDI.Empty())
		assert.True(t, got.MinusDI.Empty())
		assert.True(t, got.ADX.Empty())
	})

	t.Run("exactly one ADX point at 2x window bars", func(t *testing.T) {
		got := DMI(uptrend(28), 14)
		assert.Equal(t, 14, got.PlusDI.Len())
		assert.Equal(t, 14, got.MinusDI.Len())
		assert.Equal(t, 1, got.ADX.Len())
	})

	t.Run("uptrend puts plusDI above minusDI with strong ADX", func(t *testing.T) {
		got := DMI(uptrend(60), 14)
		plus, _ := got.PlusDI.Last()
		minus, _ := got.MinusDI.Last()
		adx, _ := got.ADX.Last()
		assert.Greater(t, plus.Value, minus.Value)
		assert.Greater(t, adx.Value, 20.0)
	})

	t.Run("DI and ADX stay within 0 to 100", func(t *testing.T) {
		closes := []float64{100, 104, 99, 106, 98, 108, 97, 110, 96, 112,
			95, 114, 94, 116, 93, 118, 92, 120, 91, 122,
			90, 124, 89, 126, 88, 128, 87, 130, 86, 132}
		got := DMI(makeBars(closes...), 14)
		for _, s := range []Series{got.PlusDI, got.MinusDI, got.ADX} {
			for _, p := range s {
				assert.GreaterOrEqual(t, p.Value, 0.0)
				assert.LessOrEqual(t, p.Value, 100.0)
			}
		}
	})
}

func TestRollingMean(t *testing.T) {
	got := RollingMean([]float64{1, 2, 3, 4, 5}, 3)
	assert.Equal(t, []float64{2, 3, 4}, got)
	assert.Nil(t, RollingMean([]float64{1, 2}, 3))
}

func TestRollingMax(t *testing.T) {
	got := RollingMax([]float64{3, 1, 4, 1, 5, 9, 2}, 3)
	assert.Equal(t, []float64{4, 4, 5, 9, 9}, got)
}

func TestPriorRollingMax(t *testing.T) {
	// The window ends one element before the point it is aligned to, so the
	// final value ignores the last element entirely.
	got := PriorRollingMax([]float64{3, 1, 4, 1, 5, 100}, 3)
	assert.Equal(t, []float64{4, 4, 5}, got)
	assert.Nil(t, PriorRollingMax([]float64{1, 2, 3}, 3))
}

func TestRelativeVolume(t *testing.T) {
	volumes := make([]float64, 21)
	for i := range volumes {
		volumes[i] = 1000
	}
	volumes[20] = 3000

	got := RelativeVolume(volumes, 20)
	assert.Equal(t, 2, len(got))
	assert.Equal(t, 1.0, got[0])
	// Spike bar counts toward its own mean: 3000 / ((19*1000+3000)/20).
	assert.InDelta(t, 3000.0/1100.0, got[1], 1e-9)
}
