package dto

import "time"

// AccuracyResult is recomputed on demand for one (model, commodity) pair.
// It is never persisted.
type AccuracyResult struct {
	AIModelID          uint      `json:"ai_model_id"`
	CommodityID        uint      `json:"commodity_id"`
	TotalPredictions   int       `json:"total_predictions"`
	CorrectPredictions int       `json:"correct_predictions"`
	AvgAbsoluteError   float64   `json:"avg_absolute_error"`
	AvgPercentageError float64   `json:"avg_percentage_error"`
	Accuracy           float64   `json:"accuracy"`
	LastUpdated        time.Time `json:"last_updated"`
}

// CommodityAccuracy is the per-commodity drill-down entry on a ranking row.
type CommodityAccuracy struct {
	CommodityID      uint    `json:"commodity_id"`
	CommodityName    string  `json:"commodity_name"`
	Accuracy         float64 `json:"accuracy"`
	TotalPredictions int     `json:"total_predictions"`
}

// ModelRanking is one leaderboard row. Trend compares the model's rank with
// its rank from the previous stored ranking run: +1 improved, -1 worsened,
// 0 unchanged or no prior rank.
type ModelRanking struct {
	AIModelID            uint                `json:"ai_model_id"`
	AIModelName          string              `json:"ai_model_name"`
	Provider             string              `json:"provider"`
	OverallAccuracy      float64             `json:"overall_accuracy"`
	TotalPredictions     int                 `json:"total_predictions"`
	AvgAbsoluteError     float64             `json:"avg_absolute_error"`
	AvgPercentageError   float64             `json:"avg_percentage_error"`
	CommodityPerformance []CommodityAccuracy `json:"commodity_performance"`
	Rank                 int                 `json:"rank"`
	Trend                int                 `json:"trend"`
}
