package dto

type AssetType string

const (
	AssetTypeStock  AssetType = "Stock"
	AssetTypeOption AssetType = "Option"
)

func (a AssetType) Valid() bool {
	return a == AssetTypeStock || a == AssetTypeOption
}

// AnalysisResult is the composite outcome of screening one ticker against
// the enabled criteria. Built fresh per request; never cached by the core.
type AnalysisResult struct {
	Ticker         string             `json:"ticker"`
	AssetType      AssetType          `json:"asset_type"`
	CurrentPrice   *float64           `json:"current_price"`
	FormattedPrice string             `json:"formatted_price"`
	Verdicts       map[string]Verdict `json:"verdicts"`
}

// HasPassing reports whether at least one evaluated criterion passed or
// warned. The presentation layer uses this to filter the watchlist view.
func (r AnalysisResult) HasPassing() bool {
	for _, v := range r.Verdicts {
		if v.Status.Passing() {
			return true
		}
	}
	return false
}
