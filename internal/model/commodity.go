package model

import "time"

type Category string

const (
	// CategoryHard covers metals, energy and crypto assets.
	CategoryHard Category = "hard"
	// CategorySoft covers agricultural commodities.
	CategorySoft Category = "soft"
)

type PriceSource string

const (
	PriceSourceYahoo     PriceSource = "yahoo"
	PriceSourceCoinGecko PriceSource = "coingecko"
)

type Commodity struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"type:varchar(100);not null" json:"name"`
	Symbol       string      `gorm:"type:varchar(20);not null;uniqueIndex" json:"symbol"`
	Category     Category    `gorm:"type:varchar(20);not null" json:"category"`
	PriceSource  PriceSource `gorm:"type:varchar(20);not null" json:"price_source"`
	SourceSymbol string      `gorm:"type:varchar(50);not null" json:"source_symbol"`
	IsActive     *bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Commodity) TableName() string {
	return "commodities"
}
