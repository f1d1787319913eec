package dto

// Trailing accuracy windows, applied on prediction target dates.
const (
	Period7Day  = "7d"
	Period30Day = "30d"
	Period90Day = "90d"
	PeriodAll   = "all"
)

// Fear/Greed classification bands.
const (
	FearGreedExtremeGreed = "Extreme Greed"
	FearGreedGreed        = "Greed"
	FearGreedNeutral      = "Neutral"
	FearGreedFear         = "Fear"
	FearGreedExtremeFear  = "Extreme Fear"
)

// Cache keys.
const (
	KeyActualPrices = "actual_prices:%d"
	KeyLatestIndex  = "composite_index:latest"
)
