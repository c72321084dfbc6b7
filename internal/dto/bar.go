package dto

import "time"

type Granularity string

const (
	GranularityDaily  Granularity = "daily"
	GranularityWeekly Granularity = "weekly"
)

// Bar is a single OHLCV observation for one calendar day (or one week for
// weekly granularity). Dates inside a BarSeries are unique and strictly
// ascending; the data source guarantees this ordering.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

type BarSeries []Bar

func (s BarSeries) Len() int {
	return len(s)
}

func (s BarSeries) Empty() bool {
	return len(s) == 0
}

func (s BarSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

func (s BarSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}
	return out
}

func (s BarSeries) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, b := range s {
		out[i] = b.Date
	}
	return out
}

// Tail returns the trailing n bars, or the whole series when shorter.
func (s BarSeries) Tail(n int) BarSeries {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
