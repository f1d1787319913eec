package dto

import "time"

// IndexComponents are the four 0-100 inputs of the composite index.
type IndexComponents struct {
	Directional float64 `json:"directional"`
	Confidence  float64 `json:"confidence"`
	Accuracy    float64 `json:"accuracy"`
	Momentum    float64 `json:"momentum"`
}

// CompositeIndexResult is the outcome of one composite index run: the three
// scoped indices, the overall components, and the classified sentiment.
type CompositeIndexResult struct {
	Date             time.Time       `json:"date"`
	Overall          float64         `json:"overall"`
	Hard             float64         `json:"hard"`
	Soft             float64         `json:"soft"`
	Components       IndexComponents `json:"components"`
	TotalPredictions int             `json:"total_predictions"`
	MarketSentiment  string          `json:"market_sentiment"`
}

// FearGreedIndex is the consumer-facing transform of the latest overall index.
type FearGreedIndex struct {
	Value          int       `json:"value"`
	Classification string    `json:"classification"`
	Date           time.Time `json:"date"`
}
