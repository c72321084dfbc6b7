package indicator

import "ticker-screener/internal/dto"

// Default MACD spans for the weekly series; the daily screen uses 8/21/9.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// MACD computes the MACD line (fast EMA minus slow EMA of the closes) and
// its signal line (EMA of the MACD line). Both series are empty when fewer
// than `slow` bars are available.
func MACD(bars dto.BarSeries, fast, slow, signalPeriod int) (macd, signal Series) {
	if len(bars) < slow {
		return nil, nil
	}

	closes := bars.Closes()
	emaFast := emaValues(closes, fast)
	emaSlow := emaValues(closes, slow)

	macdVals := make([]float64, len(closes))
	for i := range closes {
		macdVals[i] = emaFast[i] - emaSlow[i]
	}
	signalVals := emaValues(macdVals, signalPeriod)

	macd = make(Series, len(bars))
	signal = make(Series, len(bars))
	for i, b := range bars {
		macd[i] = Point{Date: b.Date, Value: macdVals[i]}
		signal[i] = Point{Date: b.Date, Value: signalVals[i]}
	}
	return macd, signal
}
