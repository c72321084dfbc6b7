package dto

// Polygon.io aggregates API response.
type PolygonAggsResponse struct {
	Ticker       string             `json:"ticker"`
	ResultsCount int                `json:"resultsCount"`
	Status       string             `json:"status"`
	Results      []PolygonAggResult `json:"results"`
	Error        string             `json:"error"`
}

type PolygonAggResult struct {
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
	Timestamp int64   `json:"t"`
}

// Polygon.io ticker events API response (earnings calendar).
type PolygonEventsResponse struct {
	Status  string `json:"status"`
	Results struct {
		Name   string         `json:"name"`
		Events []PolygonEvent `json:"events"`
	} `json:"results"`
}

type PolygonEvent struct {
	Type string `json:"type"`
	Date string `json:"date"`
}
