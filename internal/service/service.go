package service

import (
	"commodity-index/config"
	"commodity-index/internal/repository"
	"commodity-index/internal/strategy"
	"commodity-index/pkg/cache"
	"commodity-index/pkg/logger"
	"commodity-index/pkg/telegram"
)

type Service struct {
	AccuracyService       AccuracyService
	RankingService        RankingService
	CompositeIndexService CompositeIndexService
	MarketDataService     MarketDataService
	PredictionService     PredictionService
	SchedulerService      SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	notifier *telegram.Notifier,
) *Service {
	accuracyService := NewAccuracyService(cfg, log, repo.AIModelRepo, repo.CommodityRepo, repo.PredictionRepo, repo.ActualPriceRepo)
	rankingService := NewRankingService(cfg, log, repo.AIModelRepo, repo.CommodityRepo, repo.PredictionRepo, repo.ActualPriceRepo, repo.ModelRankingRepo, repo.UnitOfWork)
	compositeIndexService := NewCompositeIndexService(cfg, log, repo.CommodityRepo, repo.PredictionRepo, repo.CompositeIndexRepo, inmemoryCache)
	marketDataService := NewMarketDataService(cfg, log, repo.CommodityRepo, repo.ActualPriceRepo, repo.YahooFinanceRepo, repo.CoinGeckoRepo, inmemoryCache)
	predictionService := NewPredictionService(cfg, log, repo.AIModelRepo, repo.CommodityRepo, repo.PredictionRepo, repo.ActualPriceRepo, repo.AIProviders)

	executorStrategies := map[strategy.JobType]strategy.JobExecutionStrategy{
		strategy.JobTypeCompositeIndex:       strategy.NewCompositeIndexStrategy(cfg, log, compositeIndexService, notifier),
		strategy.JobTypePriceSync:            strategy.NewPriceSyncStrategy(cfg, log, marketDataService),
		strategy.JobTypePredictionGeneration: strategy.NewPredictionGenerationStrategy(cfg, log, predictionService),
		strategy.JobTypeDataCleanUp:          strategy.NewDataCleanUpStrategy(cfg, log, repo.ActualPriceRepo, repo.JobRepo),
	}

	taskExecutor := NewTaskExecutor(cfg, log, repo.JobRepo, executorStrategies)
	schedulerService := NewSchedulerService(cfg, log, repo.JobRepo, taskExecutor)

	return &Service{
		AccuracyService:       accuracyService,
		RankingService:        rankingService,
		CompositeIndexService: compositeIndexService,
		MarketDataService:     marketDataService,
		PredictionService:     predictionService,
		SchedulerService:      schedulerService,
	}
}
