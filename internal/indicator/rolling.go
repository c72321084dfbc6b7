package indicator

// RollingMean returns the moving average over a fixed window. The first
// point is aligned to input index window-1.
func RollingMean(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}

	out := make([]float64, 0, len(values)-window+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// RollingMax returns the moving maximum over a fixed window, aligned like
// RollingMean. Window sizes here are small, so the rescan is fine.
func RollingMax(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}

	out := make([]float64, 0, len(values)-window+1)
	for i := window - 1; i < len(values); i++ {
		m := values[i-window+1]
		for _, v := range values[i-window+2 : i+1] {
			if v > m {
				m = v
			}
		}
		out = append(out, m)
	}
	return out
}

// RelativeVolume is each volume divided by the rolling mean volume over the
// window ending at (and including) that bar. Alignment follows RollingMean.
//
// Including the current bar in the denominator dampens the ratio on the very
// bar being screened. It matches the established screening behavior, so it
// stays; a trailing-window variant would need its threshold recalibrated.
func RelativeVolume(volumes []float64, window int) []float64 {
	means := RollingMean(volumes, window)
	if means == nil {
		return nil
	}

	out := make([]float64, len(means))
	for i, m := range means {
		if m > 0 {
			out[i] = volumes[i+window-1] / m
		}
	}
	return out
}

// PriorRollingMax is the rolling maximum of the window ending at the
// PREVIOUS element, so out includes no contribution from the element it is
// aligned to. The first point is aligned to input index window. Used as the
// resistance level a breakout is measured against.
func PriorRollingMax(values []float64, window int) []float64 {
	if len(values) < window+1 {
		return nil
	}
	return RollingMax(values[:len(values)-1], window)
}
