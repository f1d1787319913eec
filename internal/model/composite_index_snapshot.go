package model

import "time"

type MarketSentiment string

const (
	SentimentBullish MarketSentiment = "bullish"
	SentimentBearish MarketSentiment = "bearish"
	SentimentNeutral MarketSentiment = "neutral"
)

// CompositeIndexSnapshot is one calculation run of the commodity sentiment
// index. Rows are written once per run and never updated in place.
type CompositeIndexSnapshot struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	Date                 time.Time       `gorm:"not null;uniqueIndex" json:"date"`
	OverallIndex         string          `gorm:"type:numeric(6,2);not null" json:"overall_index"`
	HardCommoditiesIndex string          `gorm:"type:numeric(6,2);not null" json:"hard_commodities_index"`
	SoftCommoditiesIndex string          `gorm:"type:numeric(6,2);not null" json:"soft_commodities_index"`
	DirectionalComponent string          `gorm:"type:numeric(6,2);not null" json:"directional_component"`
	ConfidenceComponent  string          `gorm:"type:numeric(6,2);not null" json:"confidence_component"`
	AccuracyComponent    string          `gorm:"type:numeric(6,2);not null" json:"accuracy_component"`
	MomentumComponent    string          `gorm:"type:numeric(6,2);not null" json:"momentum_component"`
	TotalPredictions     int             `gorm:"not null" json:"total_predictions"`
	MarketSentiment      MarketSentiment `gorm:"type:varchar(20);not null" json:"market_sentiment"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (CompositeIndexSnapshot) TableName() string {
	return "composite_index_snapshots"
}
