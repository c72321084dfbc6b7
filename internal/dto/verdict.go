package dto

// Status is the outcome of one evaluator for one ticker. Glyphs are a
// presentation concern; everything below the delivery layer works with the
// enum only.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Passing reports whether the status counts toward the composite
// watchlist filter.
func (s Status) Passing() bool {
	return s == StatusPass || s == StatusWarn
}

func (s Status) Glyph() string {
	switch s {
	case StatusPass:
		return "✅"
	case StatusWarn:
		return "⚠️"
	default:
		return "❌"
	}
}

// VerdictValue is the numeric payload of a Verdict. Each evaluator has its
// own concrete shape so consumers never dig through untyped maps.
type VerdictValue interface {
	verdictValue()
}

type RSIValue struct {
	RSI float64 `json:"rsi"`
}

type MACDValue struct {
	MACD   float64 `json:"macd"`
	Signal float64 `json:"signal"`
}

type DMIValue struct {
	ADX     float64 `json:"adx"`
	PlusDI  float64 `json:"plus_di"`
	MinusDI float64 `json:"minus_di"`
}

type EMAValue struct {
	Fast float64 `json:"ema_fast"`
	Slow float64 `json:"ema_slow"`
}

type SqueezeValue struct {
	RVOL       float64 `json:"rvol"`
	Resistance float64 `json:"resistance"`
	Price      float64 `json:"price"`
}

type EarningsValue struct {
	Date string `json:"date"`
}

func (RSIValue) verdictValue()      {}
func (MACDValue) verdictValue()     {}
func (DMIValue) verdictValue()      {}
func (EMAValue) verdictValue()      {}
func (SqueezeValue) verdictValue()  {}
func (EarningsValue) verdictValue() {}

// Verdict is immutable once produced and lives for one analysis request.
type Verdict struct {
	Status  Status       `json:"status"`
	Message string       `json:"message"`
	Value   VerdictValue `json:"value,omitempty"`
}

func NewPassVerdict(message string, value VerdictValue) Verdict {
	return Verdict{Status: StatusPass, Message: message, Value: value}
}

func NewWarnVerdict(message string, value VerdictValue) Verdict {
	return Verdict{Status: StatusWarn, Message: message, Value: value}
}

func NewFailVerdict(message string, value VerdictValue) Verdict {
	return Verdict{Status: StatusFail, Message: message, Value: value}
}
