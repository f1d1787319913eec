package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"commodity-index/config"
	"commodity-index/internal/dto"
	"commodity-index/internal/model"
	"commodity-index/internal/repository"
	"commodity-index/pkg/logger"
	"commodity-index/pkg/utils"
)

const (
	// A prediction matches the earliest actual price observed within this
	// window on or after the target date.
	matchWindow = 7 * 24 * time.Hour
	// Fallback: an observation within a day of the target, either direction.
	sameDayWindow = 24 * time.Hour

	// A match counts as correct when its percentage error is at or below this.
	errorThresholdPct = 5.0

	mapeWeight        = 0.40
	directionalWeight = 0.35
	thresholdWeight   = 0.25
)

type AccuracyService interface {
	// GetAccuracy recomputes the accuracy result for one (model, commodity)
	// pair over the given period. Returns nil when there is nothing to score.
	GetAccuracy(ctx context.Context, aiModelID, commodityID uint, period string) (*dto.AccuracyResult, error)
}

type accuracyService struct {
	cfg             *config.Config
	log             *logger.Logger
	aiModelRepo     repository.AIModelRepository
	commodityRepo   repository.CommodityRepository
	predictionRepo  repository.PredictionRepository
	actualPriceRepo repository.ActualPriceRepository
	now             func() time.Time
}

func NewAccuracyService(
	cfg *config.Config,
	log *logger.Logger,
	aiModelRepo repository.AIModelRepository,
	commodityRepo repository.CommodityRepository,
	predictionRepo repository.PredictionRepository,
	actualPriceRepo repository.ActualPriceRepository,
) AccuracyService {
	return &accuracyService{
		cfg:             cfg,
		log:             log,
		aiModelRepo:     aiModelRepo,
		commodityRepo:   commodityRepo,
		predictionRepo:  predictionRepo,
		actualPriceRepo: actualPriceRepo,
		now:             time.Now,
	}
}

func (s *accuracyService) GetAccuracy(ctx context.Context, aiModelID, commodityID uint, period string) (*dto.AccuracyResult, error) {
	aiModel, err := s.aiModelRepo.FindByID(ctx, aiModelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	commodity, err := s.commodityRepo.FindByID(ctx, commodityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load commodity: %w", err)
	}
	if aiModel == nil || commodity == nil {
		return nil, nil
	}

	predictions, err := s.predictionRepo.Get(ctx, model.GetPredictionParam{
		CommodityID: &commodityID,
		AIModelID:   &aiModelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}
	if len(predictions) == 0 {
		return nil, nil
	}

	prices, err := s.actualPriceRepo.GetByCommodity(ctx, commodityID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load actual prices: %w", err)
	}

	now := s.now()
	return ComputeAccuracy(aiModelID, commodityID, FilterByPeriod(predictions, period, now), prices, now)
}

// FilterByPeriod restricts predictions to those whose target date falls within
// the trailing window from now. Period "all" (or anything unrecognized) keeps
// the full set.
func FilterByPeriod(predictions []model.Prediction, period string, now time.Time) []model.Prediction {
	var window time.Duration
	switch period {
	case dto.Period7Day:
		window = 7 * 24 * time.Hour
	case dto.Period30Day:
		window = 30 * 24 * time.Hour
	case dto.Period90Day:
		window = 90 * 24 * time.Hour
	default:
		return predictions
	}

	cutoff := now.Add(-window)
	filtered := make([]model.Prediction, 0, len(predictions))
	for _, p := range predictions {
		if !p.TargetDate.Before(cutoff) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// MatchedPair is one prediction paired with the actual price observation
// closest to its target date.
type MatchedPair struct {
	Predicted float64
	Actual    float64
	Date      time.Time
}

// MatchPrediction pairs a prediction with the nearest qualifying actual price:
// the earliest observation within seven days on or after the target date, or
// failing that an observation within a day of the target. Returns nil when no
// observation qualifies.
func MatchPrediction(prediction model.Prediction, prices []model.ActualPrice) (*MatchedPair, error) {
	target := prediction.TargetDate

	var best *model.ActualPrice
	for i := range prices {
		p := &prices[i]
		diff := p.Date.Sub(target)
		if diff < 0 || diff > matchWindow {
			continue
		}
		if best == nil || p.Date.Before(best.Date) {
			best = p
		}
	}

	if best == nil {
		for i := range prices {
			p := &prices[i]
			diff := p.Date.Sub(target)
			if diff < 0 {
				diff = -diff
			}
			if diff < sameDayWindow {
				best = p
				break
			}
		}
	}

	if best == nil {
		return nil, nil
	}

	predicted, err := utils.ParseDecimal(prediction.PredictedPrice)
	if err != nil {
		return nil, fmt.Errorf("prediction %d: %w", prediction.ID, err)
	}
	actual, err := utils.ParseDecimal(best.Price)
	if err != nil {
		return nil, fmt.Errorf("actual price %d: %w", best.ID, err)
	}

	return &MatchedPair{Predicted: predicted, Actual: actual, Date: best.Date}, nil
}

// ComputeAccuracy scores predictions against actual prices for one
// (model, commodity) pair. Only mature predictions (target date reached) are
// scored; a nil result means there was nothing to score.
func ComputeAccuracy(aiModelID, commodityID uint, predictions []model.Prediction, prices []model.ActualPrice, now time.Time) (*dto.AccuracyResult, error) {
	eligible := make([]model.Prediction, 0, len(predictions))
	for _, p := range predictions {
		if !p.TargetDate.After(now) {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	matches := make([]MatchedPair, 0, len(eligible))
	for _, p := range eligible {
		match, err := MatchPrediction(p, prices)
		if err != nil {
			return nil, err
		}
		if match != nil {
			matches = append(matches, *match)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.Before(matches[j].Date)
	})

	var sumAbsErr, sumPctErr float64
	correct := 0
	for _, m := range matches {
		if m.Actual == 0 {
			return nil, fmt.Errorf("actual price is zero at %s", m.Date.Format(time.RFC3339))
		}
		absErr := m.Actual - m.Predicted
		if absErr < 0 {
			absErr = -absErr
		}
		pctErr := absErr / m.Actual * 100

		sumAbsErr += absErr
		sumPctErr += pctErr
		if pctErr <= errorThresholdPct {
			correct++
		}
	}

	n := float64(len(matches))
	avgAbsErr := sumAbsErr / n
	avgPctErr := sumPctErr / n

	directional := directionalAccuracy(matches)
	threshold := float64(correct) / n * 100

	mapeScore := 100 - avgPctErr
	if avgPctErr > 100 {
		mapeScore = 0
	}
	accuracy := mapeScore*mapeWeight + directional*directionalWeight + threshold*thresholdWeight

	return &dto.AccuracyResult{
		AIModelID:          aiModelID,
		CommodityID:        commodityID,
		TotalPredictions:   len(matches),
		CorrectPredictions: correct,
		AvgAbsoluteError:   utils.RoundTo(avgAbsErr, 2),
		AvgPercentageError: utils.RoundTo(avgPctErr, 2),
		Accuracy:           utils.RoundTo(accuracy, 2),
		LastUpdated:        now,
	}, nil
}

// directionalAccuracy is the share of consecutive matches whose predicted
// trend direction agrees with the actual one. Zero with fewer than two
// matches.
func directionalAccuracy(matches []MatchedPair) float64 {
	if len(matches) < 2 {
		return 0
	}

	agreements := 0
	for i := 1; i < len(matches); i++ {
		actualDelta := matches[i].Actual - matches[i-1].Actual
		predictedDelta := matches[i].Predicted - matches[i-1].Predicted
		if sign(actualDelta) == sign(predictedDelta) {
			agreements++
		}
	}
	return float64(agreements) / float64(len(matches)-1) * 100
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
