package dto

// Criterion keys, also used as keys of AnalysisResult.Verdicts.
const (
	CriterionAvoidSqueeze    = "avoid_squeeze"
	CriterionRSIConfirmation = "rsi_confirmation"
	CriterionDMIConfirmation = "dmi_confirmation"
	CriterionEMACrossover    = "ema_crossover"
	CriterionMACDCrossover   = "macd_crossover"
	CriterionWeeklyMACD      = "weekly_macd"
	CriterionNextEarningDate = "next_earning_date"
)

// CriteriaSet selects which evaluators run for one analysis request.
// It is supplied per request and never persisted by the core.
type CriteriaSet struct {
	AvoidSqueeze    bool `json:"avoid_squeeze"`
	RSIConfirmation bool `json:"rsi_confirmation"`
	DMIConfirmation bool `json:"dmi_confirmation"`
	EMACrossover    bool `json:"ema_crossover"`
	MACDCrossover   bool `json:"macd_crossover"`
	WeeklyMACD      bool `json:"weekly_macd"`
	NextEarningDate bool `json:"next_earning_date"`
}

// AllCriteria enables every criterion; used by scheduled scans.
func AllCriteria() CriteriaSet {
	return CriteriaSet{
		AvoidSqueeze:    true,
		RSIConfirmation: true,
		DMIConfirmation: true,
		EMACrossover:    true,
		MACDCrossover:   true,
		WeeklyMACD:      true,
		NextEarningDate: true,
	}
}

// Enabled lists the keys of the enabled criteria in a stable order.
func (c CriteriaSet) Enabled() []string {
	var keys []string
	if c.AvoidSqueeze {
		keys = append(keys, CriterionAvoidSqueeze)
	}
	if c.RSIConfirmation {
		keys = append(keys, CriterionRSIConfirmation)
	}
	if c.DMIConfirmation {
		keys = append(keys, CriterionDMIConfirmation)
	}
	if c.EMACrossover {
		keys = append(keys, CriterionEMACrossover)
	}
	if c.MACDCrossover {
		keys = append(keys, CriterionMACDCrossover)
	}
	if c.WeeklyMACD {
		keys = append(keys, CriterionWeeklyMACD)
	}
	if c.NextEarningDate {
		keys = append(keys, CriterionNextEarningDate)
	}
	return keys
}
