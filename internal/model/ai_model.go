package model

import "time"

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderDeepseek  Provider = "deepseek"
	ProviderGemini    Provider = "gemini"
)

// AIModel is a registered LLM whose predictions are tracked and ranked.
type AIModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Provider  Provider  `gorm:"type:varchar(50);not null" json:"provider"`
	ModelSlug string    `gorm:"type:varchar(100);not null" json:"model_slug"`
	IsActive  *bool     `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AIModel) TableName() string {
	return "ai_models"
}
