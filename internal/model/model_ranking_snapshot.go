package model

import "time"

// ModelRankingSnapshot stores one model's rank from a ranking run so the next
// run can report a rank-change trend.
type ModelRankingSnapshot struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AIModelID       uint      `gorm:"not null;index" json:"ai_model_id"`
	Period          string    `gorm:"type:varchar(10);not null" json:"period"`
	Rank            int       `gorm:"not null" json:"rank"`
	OverallAccuracy string    `gorm:"type:numeric(6,2);not null" json:"overall_accuracy"`
	Date            time.Time `gorm:"not null;index" json:"date"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ModelRankingSnapshot) TableName() string {
	return "model_ranking_snapshots"
}
