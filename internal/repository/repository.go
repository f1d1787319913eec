package repository

import (
	"commodity-index/config"
	"commodity-index/internal/model"
	"commodity-index/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	AIModelRepo        AIModelRepository
	CommodityRepo      CommodityRepository
	PredictionRepo     PredictionRepository
	ActualPriceRepo    ActualPriceRepository
	CompositeIndexRepo CompositeIndexRepository
	ModelRankingRepo   ModelRankingRepository
	JobRepo            JobRepository
	YahooFinanceRepo   YahooFinanceRepository
	CoinGeckoRepo      CoinGeckoRepository
	AIProviders        map[model.Provider]AIProviderRepository
	UnitOfWork         UnitOfWork
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	geminiRepo, err := NewGeminiRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	providers := map[model.Provider]AIProviderRepository{
		model.ProviderOpenAI:    NewOpenAIRepository(cfg, log),
		model.ProviderAnthropic: NewAnthropicRepository(cfg, log),
		model.ProviderDeepseek:  NewDeepseekRepository(cfg, log),
		model.ProviderGemini:    geminiRepo,
	}

	return &Repository{
		AIModelRepo:        NewAIModelRepository(db),
		CommodityRepo:      NewCommodityRepository(db),
		PredictionRepo:     NewPredictionRepository(db),
		ActualPriceRepo:    NewActualPriceRepository(db),
		CompositeIndexRepo: NewCompositeIndexRepository(db),
		ModelRankingRepo:   NewModelRankingRepository(db),
		JobRepo:            NewJobRepository(db),
		YahooFinanceRepo:   NewYahooFinanceRepository(cfg, log),
		CoinGeckoRepo:      NewCoinGeckoRepository(cfg, log),
		AIProviders:        providers,
		UnitOfWork:         NewUnitOfWork(db),
	}, nil
}
