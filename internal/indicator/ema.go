package indicator

import "ticker-screener/internal/dto"

// EMA computes the exponential moving average of the close prices with
// smoothing factor 2/(span+1). Unlike RSI there is no minimum-period gate:
// the series starts at the first observation, so it is never empty for a
// non-empty input.
func EMA(bars dto.BarSeries, span int) Series {
	values := emaValues(bars.Closes(), span)
	if values == nil {
		return nil
	}

	out := make(Series, len(values))
	for i, v := range values {
		out[i] = Point{Date: bars[i].Date, Value: v}
	}
	return out
}

// emaValues is the raw recursion shared by EMA and MACD.
func emaValues(values []float64, span int) []float64 {
	if span <= 0 || len(values) == 0 {
		return nil
	}

	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
