package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"commodity-index/config"
	"commodity-index/internal/model"
	"commodity-index/internal/repository"
	"commodity-index/pkg/logger"
	"commodity-index/pkg/utils"
)

type PredictionService interface {
	// GeneratePredictions asks every active model to predict every active
	// commodity and stores the resulting per-timeframe predictions.
	GeneratePredictions(ctx context.Context) (int, error)
	GetPredictions(ctx context.Context, param model.GetPredictionParam) ([]model.Prediction, error)
	GetModels(ctx context.Context) ([]model.AIModel, error)
}

type predictionService struct {
	cfg             *config.Config
	log             *logger.Logger
	aiModelRepo     repository.AIModelRepository
	commodityRepo   repository.CommodityRepository
	predictionRepo  repository.PredictionRepository
	actualPriceRepo repository.ActualPriceRepository
	providers       map[model.Provider]repository.AIProviderRepository
	now             func() time.Time
}

func NewPredictionService(
	cfg *config.Config,
	log *logger.Logger,
	aiModelRepo repository.AIModelRepository,
	commodityRepo repository.CommodityRepository,
	predictionRepo repository.PredictionRepository,
	actualPriceRepo repository.ActualPriceRepository,
	providers map[model.Provider]repository.AIProviderRepository,
) PredictionService {
	return &predictionService{
		cfg:             cfg,
		log:             log,
		aiModelRepo:     aiModelRepo,
		commodityRepo:   commodityRepo,
		predictionRepo:  predictionRepo,
		actualPriceRepo: actualPriceRepo,
		providers:       providers,
		now:             time.Now,
	}
}

func (s *predictionService) GeneratePredictions(ctx context.Context) (int, error) {
	models, err := s.aiModelRepo.GetActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load models: %w", err)
	}
	commodities, err := s.commodityRepo.GetActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load commodities: %w", err)
	}

	created := 0
	for _, c := range commodities {
		latest, err := s.actualPriceRepo.GetLatest(ctx, c.ID)
		if err != nil {
			return created, fmt.Errorf("failed to load latest price for %s: %w", c.Symbol, err)
		}
		if latest == nil {
			s.log.WarnContext(ctx, "No price history, skipping commodity",
				logger.StringField("commodity", c.Symbol))
			continue
		}
		currentPrice, err := utils.ParseDecimal(latest.Price)
		if err != nil {
			return created, fmt.Errorf("latest price for %s: %w", c.Symbol, err)
		}

		for _, m := range models {
			provider, ok := s.providers[m.Provider]
			if !ok {
				s.log.WarnContext(ctx, "No provider registered for model",
					logger.StringField("model", m.Name),
					logger.StringField("provider", string(m.Provider)))
				continue
			}

			n, err := s.generateForPair(ctx, provider, m, c, currentPrice)
			if err != nil {
				s.log.ErrorContext(ctx, "Prediction generation failed",
					logger.StringField("model", m.Name),
					logger.StringField("commodity", c.Symbol),
					logger.ErrorField(err))
				continue
			}
			created += n
		}
	}

	s.log.InfoContext(ctx, "Prediction generation completed", logger.IntField("created", created))
	return created, nil
}

func (s *predictionService) generateForPair(ctx context.Context, provider repository.AIProviderRepository, m model.AIModel, c model.Commodity, currentPrice float64) (int, error) {
	drafts, err := provider.GeneratePredictions(ctx, m, c, currentPrice)
	if err != nil {
		return 0, err
	}

	now := s.now()
	predictions := make([]model.Prediction, 0, len(drafts))
	for _, d := range drafts {
		timeframe := model.Timeframe(d.Timeframe)
		targetDate, err := targetDateFor(now, timeframe)
		if err != nil {
			return 0, err
		}

		confidence := utils.ToPointer(strconv.FormatFloat(utils.Clamp(d.Confidence, 0, 1), 'f', 4, 64))
		metadata, err := json.Marshal(map[string]string{"reasoning": d.Reasoning})
		if err != nil {
			return 0, fmt.Errorf("failed to marshal metadata: %w", err)
		}

		predictions = append(predictions, model.Prediction{
			AIModelID:      m.ID,
			CommodityID:    c.ID,
			PredictionDate: now,
			TargetDate:     targetDate,
			PredictedPrice: strconv.FormatFloat(d.PredictedPrice, 'f', 4, 64),
			Confidence:     confidence,
			Timeframe:      timeframe,
			Metadata:       metadata,
		})
	}

	if err := s.predictionRepo.CreateBulk(ctx, predictions); err != nil {
		return 0, fmt.Errorf("failed to store predictions: %w", err)
	}
	return len(predictions), nil
}

func targetDateFor(now time.Time, timeframe model.Timeframe) (time.Time, error) {
	switch timeframe {
	case model.Timeframe3Month:
		return now.AddDate(0, 3, 0), nil
	case model.Timeframe6Month:
		return now.AddDate(0, 6, 0), nil
	case model.Timeframe9Month:
		return now.AddDate(0, 9, 0), nil
	case model.Timeframe12Month:
		return now.AddDate(0, 12, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown timeframe %q", timeframe)
	}
}

func (s *predictionService) GetPredictions(ctx context.Context, param model.GetPredictionParam) ([]model.Prediction, error) {
	return s.predictionRepo.Get(ctx, param)
}

func (s *predictionService) GetModels(ctx context.Context) ([]model.AIModel, error) {
	return s.aiModelRepo.GetActive(ctx)
}
