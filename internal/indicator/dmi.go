package indicator

import "ticker-screener/internal/dto"

const DefaultDMIWindow = 14

// DMIResult holds the three directional-movement series. PlusDI and MinusDI
// start once `window` true ranges have been accumulated; ADX needs a further
// `window` DX observations, so it starts at bar index 2*window-1.
type DMIResult struct {
	PlusDI  Series
	MinusDI Series
	ADX     Series
}

// DMI computes Wilder's Directional Movement Index. Smoothed sums are seeded
// with the plain sum of the first `window` raw values and then updated with
// s = s - s/window + x. ADX is seeded with the arithmetic mean of the first
// `window` DX values and Wilder-smoothed afterwards.
func DMI(bars dto.BarSeries, window int) DMIResult {
	if window <= 0 || len(bars) < window+1 {
		return DMIResult{}
	}

	n := len(bars)
	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		cur, prev := bars[i], bars[i-1]

		hl := cur.High - cur.Low
		hc := abs(cur.High - prev.Close)
		lc := abs(cur.Low - prev.Close)
		tr[i] = max3(hl, hc, lc)

		up := cur.High - prev.High
		down := prev.Low - cur.Low
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	result := DMIResult{
		PlusDI:  make(Series, 0, n-window),
		MinusDI: make(Series, 0, n-window),
	}

	var smTR, smPlus, smMinus float64
	var adx float64
	var dxSum float64
	dxCount := 0

	for i := 1; i < n; i++ {
		if i <= window {
			smTR += tr[i]
			smPlus += plusDM[i]
			smMinus += minusDM[i]
			if i < window {
				continue
			}
		} else {
			smTR = smTR - smTR/float64(window) + tr[i]
			smPlus = smPlus - smPlus/float64(window) + plusDM[i]
			smMinus = smMinus - smMinus/float64(window) + minusDM[i]
		}

		var plusDI, minusDI float64
		if smTR > 0 {
			plusDI = 100.0 * smPlus / smTR
			minusDI = 100.0 * smMinus / smTR
		}
		result.PlusDI = append(result.PlusDI, Point{Date: bars[i].Date, Value: plusDI})
		result.MinusDI = append(result.MinusDI, Point{Date: bars[i].Date, Value: minusDI})

		var dx float64
		if sum := plusDI + minusDI; sum > 0 {
			dx = 100.0 * abs(plusDI-minusDI) / sum
		}

		dxCount++
		if dxCount < window {
			dxSum += dx
			continue
		}
		if dxCount == window {
			adx = (dxSum + dx) / float64(window)
		} else {
			adx = (adx*float64(window-1) + dx) / float64(window)
		}
		result.ADX = append(result.ADX, Point{Date: bars[i].Date, Value: adx})
	}

	return result
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
