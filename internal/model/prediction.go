package model

import (
	"time"

	"gorm.io/datatypes"
)

type Timeframe string

const (
	Timeframe3Month  Timeframe = "3mo"
	Timeframe6Month  Timeframe = "6mo"
	Timeframe9Month  Timeframe = "9mo"
	Timeframe12Month Timeframe = "12mo"
)

func Timeframes() []Timeframe {
	return []Timeframe{Timeframe3Month, Timeframe6Month, Timeframe9Month, Timeframe12Month}
}

// Prediction is one LLM price call for a commodity. Rows are immutable once
// written; monetary fields stay decimal strings until the computation boundary.
type Prediction struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	AIModelID      uint           `gorm:"not null;index" json:"ai_model_id"`
	CommodityID    uint           `gorm:"not null;index" json:"commodity_id"`
	PredictionDate time.Time      `gorm:"not null" json:"prediction_date"`
	TargetDate     time.Time      `gorm:"not null;index" json:"target_date"`
	PredictedPrice string         `gorm:"type:numeric(18,4);not null" json:"predicted_price"`
	Confidence     *string        `gorm:"type:numeric(5,4)" json:"confidence"`
	Timeframe      Timeframe      `gorm:"type:varchar(10);not null" json:"timeframe"`
	Metadata       datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`

	AIModel   *AIModel   `gorm:"foreignKey:AIModelID" json:"ai_model,omitempty"`
	Commodity *Commodity `gorm:"foreignKey:CommodityID" json:"commodity,omitempty"`
}

func (Prediction) TableName() string {
	return "predictions"
}

type GetPredictionParam struct {
	CommodityID *uint
	AIModelID   *uint
	Timeframe   *Timeframe
	Since       *time.Time
	Limit       *int
}
