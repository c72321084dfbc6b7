package indicator

import "ticker-screener/internal/dto"

const DefaultRSIPeriod = 14

// RSI computes the Relative Strength Index with Wilder smoothing: average
// gain and loss are exponential moving averages with alpha = 1/period,
// seeded at the first price change and emitted only once `period` changes
// have been observed. Values are bounded to [0, 100].
//
// When the average loss is exactly zero (all gains in the window) the RSI
// is defined as 100, keeping the series total instead of leaving the ratio
// undefined.
func RSI(bars dto.BarSeries, period int) Series {
	if period <= 0 || len(bars) < period {
		return nil
	}

	alpha := 1.0 / float64(period)
	var avgGain, avgLoss float64

	out := make(Series, 0, len(bars)-period)
	for i := 1; i < len(bars); i++ {
		delta := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}

		if i == 1 {
			avgGain, avgLoss = gain, loss
		} else {
			avgGain = (1-alpha)*avgGain + alpha*gain
			avgLoss = (1-alpha)*avgLoss + alpha*loss
		}

		// Not enough price changes observed yet.
		if i < period {
			continue
		}

		value := 100.0
		if avgLoss > 0 {
			rs := avgGain / avgLoss
			value = 100.0 - 100.0/(1.0+rs)
		}
		out = append(out, Point{Date: bars[i].Date, Value: value})
	}
	return out
}
