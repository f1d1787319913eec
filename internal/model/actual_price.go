package model

import "time"

// ActualPrice is one observed market price. Append-only.
type ActualPrice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CommodityID uint      `gorm:"not null;index" json:"commodity_id"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Price       string    `gorm:"type:numeric(18,4);not null" json:"price"`
	Volume      *string   `gorm:"type:numeric(24,4)" json:"volume"`
	Source      string    `gorm:"type:varchar(50);not null" json:"source"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ActualPrice) TableName() string {
	return "actual_prices"
}
