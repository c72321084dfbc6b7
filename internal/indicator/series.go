// Package indicator computes technical-analysis series from OHLCV bars.
// All functions are pure: they never mutate their input and they return an
// empty series (never an error) when the input is shorter than the minimum
// lookback. Callers must treat an empty series as "insufficient data".
package indicator

import "time"

// Point is one defined observation of an indicator, aligned to a bar date.
type Point struct {
	Date  time.Time
	Value float64
}

// Series is an ordered sequence of defined indicator points. Bars without
// enough lookback simply have no point; undefined values are never encoded
// as NaN or sentinel numbers.
type Series []Point

func (s Series) Len() int {
	return len(s)
}

func (s Series) Empty() bool {
	return len(s) == 0
}

// Last returns the most recent point, if any.
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// LastTwo returns the previous and the most recent point. Crossover
// evaluators only ever look at these two.
func (s Series) LastTwo() (prev, last Point, ok bool) {
	if len(s) < 2 {
		return Point{}, Point{}, false
	}
	return s[len(s)-2], s[len(s)-1], true
}

func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

func (s Series) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Date
	}
	return out
}

// Tail returns the trailing n points, or the whole series when shorter.
func (s Series) Tail(n int) Series {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
