package dto

import (
	"fmt"
	"time"
)

type ChartType string

const (
	ChartRSI        ChartType = "rsi"
	ChartMACD       ChartType = "macd"
	ChartWeeklyMACD ChartType = "weekly_macd"
	ChartEMA        ChartType = "ema"
	ChartDMI        ChartType = "dmi"
)

func ParseChartType(s string) (ChartType, error) {
	switch ChartType(s) {
	case ChartRSI, ChartMACD, ChartWeeklyMACD, ChartEMA, ChartDMI:
		return ChartType(s), nil
	default:
		return "", fmt.Errorf("unknown chart type: %s", s)
	}
}

// Trace is one renderer-agnostic line on a chart.
type Trace struct {
	Name  string      `json:"name"`
	X     []time.Time `json:"x"`
	Y     []float64   `json:"y"`
	Style string      `json:"style"`
}

// RefLine is a horizontal reference line, e.g. the RSI 70/30 levels.
type RefLine struct {
	Y      float64 `json:"y"`
	Style  string  `json:"style"`
	Dashed bool    `json:"dashed"`
}

// ChartBundle carries everything a renderer needs for one chart. When the
// underlying data is missing the bundle degrades to a single error trace
// with ErrorMessage set instead of failing the request.
type ChartBundle struct {
	Title        string    `json:"title"`
	Traces       []Trace   `json:"traces"`
	RefLines     []RefLine `json:"ref_lines,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

func NewErrorChartBundle(title, message string) ChartBundle {
	return ChartBundle{
		Title:        title,
		Traces:       []Trace{{Name: "error"}},
		ErrorMessage: message,
	}
}
