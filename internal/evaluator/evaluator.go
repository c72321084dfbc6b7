// Package evaluator turns indicator series into screening verdicts. Each
// evaluator is a pure function over already-fetched data; it never performs
// I/O and it reports missing lookback as a Fail verdict instead of an error
// so a single ticker result can carry a mix of outcomes.
package evaluator

import (
	"fmt"
	"time"

	"ticker-screener/internal/dto"
	"ticker-screener/internal/indicator"
)

const (
	rsiLow  = 30.0
	rsiHigh = 60.0

	dmiWindow    = indicator.DefaultDMIWindow
	dmiMinBars   = 2 * dmiWindow
	adxThreshold = 20.0

	// Daily EMA and MACD spans used by the stock screen.
	EMAFastSpan    = 8
	EMASlowSpan    = 21
	DailyMACDFast   = 8
	DailyMACDSlow   = 21
	DailyMACDSignal = 9

	squeezeMinBars   = 30
	resistanceWindow = 30
	rvolWindow       = 20
	rvolThreshold    = 2.0
)

// RSIConfirmation passes when the two most recent RSI values are both inside
// the 30 to 60 band and the latest one is higher than the previous.
func RSIConfirmation(rsi indicator.Series) dto.Verdict {
	prev, last, ok := rsi.LastTwo()
	if !ok {
		return dto.NewFailVerdict("Not enough RSI data", nil)
	}

	inRange := last.Value >= rsiLow && last.Value <= rsiHigh &&
		prev.Value >= rsiLow && prev.Value <= rsiHigh
	rising := last.Value > prev.Value

	value := dto.RSIValue{RSI: last.Value}
	if inRange && rising {
		return dto.NewPassVerdict(fmt.Sprintf("RSI is between 30-60 and rising (%.2f)", last.Value), value)
	}
	return dto.NewFailVerdict(fmt.Sprintf("RSI condition not met (%.2f)", last.Value), value)
}

// MACDCrossoverOrRising passes when the MACD line just crossed above its
// signal line, or when it is simply higher than on the previous bar.
func MACDCrossoverOrRising(macd, signal indicator.Series) dto.Verdict {
	macdPrev, macdLast, okM := macd.LastTwo()
	signalPrev, signalLast, okS := signal.LastTwo()
	if !okM || !okS {
		return dto.NewFailVerdict("Not enough MACD data", nil)
	}

	crossover := macdLast.Value > signalLast.Value && macdPrev.Value <= signalPrev.Value
	rising := macdLast.Value > macdPrev.Value

	value := dto.MACDValue{MACD: macdLast.Value, Signal: signalLast.Value}
	if crossover || rising {
		return dto.NewPassVerdict("MACD is rising or has crossed above the signal line", value)
	}
	return dto.NewFailVerdict("MACD condition not met", value)
}

// DMITrend passes when the latest ADX exceeds 20 and +DI leads -DI. It needs
// at least 28 daily bars before a single ADX value exists.
func DMITrend(bars dto.BarSeries) dto.Verdict {
	if len(bars) < dmiMinBars {
		return dto.NewFailVerdict("Not enough data for DMI calculation", nil)
	}

	dmi := indicator.DMI(bars, dmiWindow)
	adx, okA := dmi.ADX.Last()
	plusDI, okP := dmi.PlusDI.Last()
	minusDI, okM := dmi.MinusDI.Last()
	if !okA || !okP || !okM {
		return dto.NewFailVerdict("Not enough data for DMI calculation", nil)
	}

	value := dto.DMIValue{ADX: adx.Value, PlusDI: plusDI.Value, MinusDI: minusDI.Value}
	if adx.Value > adxThreshold && plusDI.Value > minusDI.Value {
		return dto.NewPassVerdict(fmt.Sprintf("Bullish DMI trend confirmed (ADX: %.2f)", adx.Value), value)
	}
	return dto.NewFailVerdict(fmt.Sprintf("DMI condition not met (ADX: %.2f)", adx.Value), value)
}

// EMACrossover passes only when the fast EMA crossed above the slow EMA on
// the most recent bar, not when it has been above for a while.
func EMACrossover(bars dto.BarSeries, fastSpan, slowSpan int) dto.Verdict {
	if len(bars) < slowSpan {
		return dto.NewFailVerdict("Not enough data for EMA calculation", nil)
	}

	fast := indicator.EMA(bars, fastSpan)
	slow := indicator.EMA(bars, slowSpan)
	fastPrev, fastLast, okF := fast.LastTwo()
	slowPrev, slowLast, okS := slow.LastTwo()
	if !okF || !okS {
		return dto.NewFailVerdict("Not enough data to check for crossover", nil)
	}

	value := dto.EMAValue{Fast: fastLast.Value, Slow: slowLast.Value}
	if fastPrev.Value <= slowPrev.Value && fastLast.Value > slowLast.Value {
		return dto.NewPassVerdict(fmt.Sprintf("EMA %d just crossed above EMA %d", fastSpan, slowSpan), value)
	}
	return dto.NewFailVerdict("No recent bullish EMA crossover", value)
}

// ShortSqueezeRisk warns when the latest close broke above the prior 30-bar
// high on relative volume over 2x, and passes otherwise. With exactly 30
// bars no prior-window resistance exists yet, so no breakout can be
// detected.
func ShortSqueezeRisk(bars dto.BarSeries) dto.Verdict {
	if len(bars) < squeezeMinBars {
		return dto.NewFailVerdict("Not enough data for squeeze analysis", nil)
	}

	closes := bars.Closes()
	rvol := indicator.RelativeVolume(bars.Volumes(), rvolWindow)
	lastRVOL := rvol[len(rvol)-1]
	lastClose := closes[len(closes)-1]

	var lastResistance float64
	breakout := false
	if resistance := indicator.PriorRollingMax(closes, resistanceWindow); len(resistance) > 0 {
		lastResistance = resistance[len(resistance)-1]
		breakout = lastClose > lastResistance && lastRVOL > rvolThreshold
	}

	value := dto.SqueezeValue{RVOL: lastRVOL, Resistance: lastResistance, Price: lastClose}
	if breakout {
		return dto.NewWarnVerdict(fmt.Sprintf(
			"Potential short squeeze risk detected! Price broke resistance on high relative volume (RVOL: %.2f)", lastRVOL), value)
	}
	return dto.NewPassVerdict("No major short squeeze risk detected", value)
}

// NextEarningsDate passes when an upcoming earnings date is known; the date
// itself becomes the verdict message. When the lookup failed or found
// nothing, errMsg explains why.
func NextEarningsDate(date *time.Time, errMsg string) dto.Verdict {
	if date == nil {
		if errMsg == "" {
			errMsg = "No upcoming earnings found."
		}
		return dto.NewFailVerdict(errMsg, nil)
	}

	formatted := date.Format("2006-01-02")
	return dto.NewPassVerdict(formatted, dto.EarningsValue{Date: formatted})
}
