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
	"commodity-index/pkg/cache"
	"commodity-index/pkg/logger"
	"commodity-index/pkg/utils"
)

const (
	directionalIndexWeight = 0.40
	confidenceIndexWeight  = 0.25
	accuracyIndexWeight    = 0.20
	momentumIndexWeight    = 0.15

	// The index's accuracy component is a fixed heuristic placeholder. It is
	// deliberately not derived from the prediction-vs-actual scorer.
	accuracyComponentValue = 60.0

	// Absent a confidence value, a prediction is treated as exactly
	// undecided. 0.5 never counts toward the bullish accumulator.
	defaultConfidence = 0.5

	neutralComponent = 50.0

	bullishThreshold = 55.0
	bearishThreshold = 45.0
)

type CompositeIndexService interface {
	// Calculate runs the composite index over all active commodities, writes
	// exactly one snapshot row, and returns the result. Runs with no
	// prediction data at all still produce a neutral snapshot.
	Calculate(ctx context.Context) (*dto.CompositeIndexResult, error)
	GetLatest(ctx context.Context) (*dto.CompositeIndexResult, error)
	GetHistory(ctx context.Context, days int) ([]model.CompositeIndexSnapshot, error)
	GetFearGreed(ctx context.Context) (*dto.FearGreedIndex, error)
}

type compositeIndexService struct {
	cfg            *config.Config
	log            *logger.Logger
	commodityRepo  repository.CommodityRepository
	predictionRepo repository.PredictionRepository
	indexRepo      repository.CompositeIndexRepository
	cache          cache.Cache
	now            func() time.Time
}

// PredictionGroup is one commodity's recent predictions tagged with the
// commodity's category.
type PredictionGroup struct {
	Category    model.Category
	Predictions []model.Prediction
}

func NewCompositeIndexService(
	cfg *config.Config,
	log *logger.Logger,
	commodityRepo repository.CommodityRepository,
	predictionRepo repository.PredictionRepository,
	indexRepo repository.CompositeIndexRepository,
	inmemoryCache cache.Cache,
) CompositeIndexService {
	return &compositeIndexService{
		cfg:            cfg,
		log:            log,
		commodityRepo:  commodityRepo,
		predictionRepo: predictionRepo,
		indexRepo:      indexRepo,
		cache:          inmemoryCache,
		now:            time.Now,
	}
}

func (s *compositeIndexService) Calculate(ctx context.Context) (*dto.CompositeIndexResult, error) {
	commodities, err := s.commodityRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load commodities: %w", err)
	}

	now := s.now()
	since := now.AddDate(0, 0, -s.cfg.Index.RecentWindowDays)

	groups := make([]PredictionGroup, 0, len(commodities))
	for _, c := range commodities {
		predictions, err := s.predictionRepo.GetRecentByCommodity(ctx, c.ID, since, s.cfg.Index.FallbackLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load predictions for commodity %d: %w", c.ID, err)
		}
		if len(predictions) == 0 {
			continue
		}
		groups = append(groups, PredictionGroup{Category: c.Category, Predictions: predictions})
	}

	result, err := CalculateCompositeIndex(groups, now)
	if err != nil {
		return nil, err
	}

	snapshot := &model.CompositeIndexSnapshot{
		Date:                 now,
		OverallIndex:         utils.FormatDecimal(result.Overall),
		HardCommoditiesIndex: utils.FormatDecimal(result.Hard),
		SoftCommoditiesIndex: utils.FormatDecimal(result.Soft),
		DirectionalComponent: utils.FormatDecimal(result.Components.Directional),
		ConfidenceComponent:  utils.FormatDecimal(result.Components.Confidence),
		AccuracyComponent:    utils.FormatDecimal(result.Components.Accuracy),
		MomentumComponent:    utils.FormatDecimal(result.Components.Momentum),
		TotalPredictions:     result.TotalPredictions,
		MarketSentiment:      model.MarketSentiment(result.MarketSentiment),
	}
	if err := s.indexRepo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store index snapshot: %w", err)
	}
	s.cache.Delete(dto.KeyLatestIndex)

	s.log.InfoContext(ctx, "Composite index calculated",
		logger.Float64Field("overall", result.Overall),
		logger.StringField("sentiment", result.MarketSentiment),
		logger.IntField("total_predictions", result.TotalPredictions),
	)
	return result, nil
}

// CalculateCompositeIndex runs the full aggregation over the prepared
// prediction groups: overall, hard-category and soft-category scopes, each
// from its own component calculation. Pure function of its inputs.
func CalculateCompositeIndex(groups []PredictionGroup, now time.Time) (*dto.CompositeIndexResult, error) {
	components, err := CalculateComponents(groups)
	if err != nil {
		return nil, err
	}

	hard := filterGroups(groups, model.CategoryHard)
	soft := filterGroups(groups, model.CategorySoft)

	hardIndex, err := scopedIndex(hard)
	if err != nil {
		return nil, err
	}
	softIndex, err := scopedIndex(soft)
	if err != nil {
		return nil, err
	}

	overall := CombineIndex(components)

	total := 0
	for _, g := range groups {
		total += len(g.Predictions)
	}

	return &dto.CompositeIndexResult{
		Date:             now,
		Overall:          utils.RoundTo(overall, 2),
		Hard:             utils.RoundTo(hardIndex, 2),
		Soft:             utils.RoundTo(softIndex, 2),
		Components:       components,
		TotalPredictions: total,
		MarketSentiment:  string(ClassifySentiment(overall)),
	}, nil
}

func filterGroups(groups []PredictionGroup, category model.Category) []PredictionGroup {
	filtered := make([]PredictionGroup, 0, len(groups))
	for _, g := range groups {
		if g.Category == category {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// scopedIndex combines the components of a category subset; an empty subset
// defaults to a neutral 50 rather than being omitted.
func scopedIndex(groups []PredictionGroup) (float64, error) {
	if len(groups) == 0 {
		return neutralComponent, nil
	}
	components, err := CalculateComponents(groups)
	if err != nil {
		return 0, err
	}
	return CombineIndex(components), nil
}

// CalculateComponents derives the four 0-100 components from the prediction
// groups. Each component is computed per group and then averaged across
// groups with a simple mean. No groups means all components neutral.
func CalculateComponents(groups []PredictionGroup) (dto.IndexComponents, error) {
	if len(groups) == 0 {
		return dto.IndexComponents{
			Directional: neutralComponent,
			Confidence:  neutralComponent,
			Accuracy:    neutralComponent,
			Momentum:    neutralComponent,
		}, nil
	}

	var sumDirectional, sumConfidence, sumAccuracy, sumMomentum float64
	for _, group := range groups {
		confidences, err := confidenceValues(group.Predictions)
		if err != nil {
			return dto.IndexComponents{}, err
		}
		momentum, err := momentumComponent(group.Predictions)
		if err != nil {
			return dto.IndexComponents{}, err
		}

		sumDirectional += directionalComponent(confidences)
		sumConfidence += confidenceComponent(confidences)
		sumAccuracy += accuracyComponentValue
		sumMomentum += momentum
	}

	n := float64(len(groups))
	return dto.IndexComponents{
		Directional: utils.RoundTo(sumDirectional/n, 2),
		Confidence:  utils.RoundTo(sumConfidence/n, 2),
		Accuracy:    utils.RoundTo(sumAccuracy/n, 2),
		Momentum:    utils.RoundTo(sumMomentum/n, 2),
	}, nil
}

func confidenceValues(predictions []model.Prediction) ([]float64, error) {
	values := make([]float64, 0, len(predictions))
	for _, p := range predictions {
		if p.Confidence == nil {
			values = append(values, defaultConfidence)
			continue
		}
		v, err := utils.ParseDecimal(*p.Confidence)
		if err != nil {
			return nil, fmt.Errorf("prediction %d confidence: %w", p.ID, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// directionalComponent accumulates confidence mass above the undecided 0.5
// mark against the total prediction count.
func directionalComponent(confidences []float64) float64 {
	if len(confidences) == 0 {
		return neutralComponent
	}

	var bullish, weight float64
	for _, c := range confidences {
		if c > defaultConfidence {
			bullish += c
		}
		weight++
	}
	return utils.Clamp(bullish/weight*100, 0, 100)
}

// confidenceComponent blends mean confidence with a variance penalty: widely
// scattered confidence values drag the component down.
func confidenceComponent(confidences []float64) float64 {
	if len(confidences) == 0 {
		return neutralComponent
	}

	var sum float64
	for _, c := range confidences {
		sum += c
	}
	mean := sum / float64(len(confidences))

	var variance float64
	for _, c := range confidences {
		variance += (c - mean) * (c - mean)
	}
	variance /= float64(len(confidences))

	confidenceScore := mean * 100
	varianceScore := 100 - variance*400
	if varianceScore < 0 {
		varianceScore = 0
	}
	return confidenceScore*0.7 + varianceScore*0.3
}

// momentumComponent maps the average step change between consecutive
// predicted prices to a 0-100 scale centered at 50.
func momentumComponent(predictions []model.Prediction) (float64, error) {
	if len(predictions) < 2 {
		return neutralComponent, nil
	}

	ordered := make([]model.Prediction, len(predictions))
	copy(ordered, predictions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PredictionDate.Before(ordered[j].PredictionDate)
	})

	prices := make([]float64, len(ordered))
	for i, p := range ordered {
		v, err := utils.ParseDecimal(p.PredictedPrice)
		if err != nil {
			return 0, fmt.Errorf("prediction %d price: %w", p.ID, err)
		}
		prices[i] = v
	}

	var sumChange float64
	changes := 0
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			return 0, fmt.Errorf("prediction %d has zero predicted price", ordered[i-1].ID)
		}
		sumChange += (prices[i] - prices[i-1]) / prices[i-1] * 100
		changes++
	}
	avgChange := sumChange / float64(changes)

	return utils.Clamp(neutralComponent+avgChange*10, 0, 100), nil
}

// CombineIndex blends the four components into the bounded composite index.
func CombineIndex(c dto.IndexComponents) float64 {
	index := c.Directional*directionalIndexWeight +
		c.Confidence*confidenceIndexWeight +
		c.Accuracy*accuracyIndexWeight +
		c.Momentum*momentumIndexWeight
	return utils.Clamp(index, 0, 100)
}

// ClassifySentiment maps an index value to the three-way market sentiment.
func ClassifySentiment(index float64) model.MarketSentiment {
	switch {
	case index >= bullishThreshold:
		return model.SentimentBullish
	case index <= bearishThreshold:
		return model.SentimentBearish
	default:
		return model.SentimentNeutral
	}
}

func (s *compositeIndexService) GetLatest(ctx context.Context) (*dto.CompositeIndexResult, error) {
	if cached, ok := cache.GetTyped[*dto.CompositeIndexResult](s.cache, dto.KeyLatestIndex); ok {
		return cached, nil
	}

	snapshot, err := s.indexRepo.GetLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest index: %w", err)
	}
	if snapshot == nil {
		return nil, nil
	}

	result, err := snapshotToResult(snapshot)
	if err != nil {
		return nil, err
	}
	s.cache.Set(dto.KeyLatestIndex, result, s.cfg.Cache.DefaultExpiration)
	return result, nil
}

func (s *compositeIndexService) GetHistory(ctx context.Context, days int) ([]model.CompositeIndexSnapshot, error) {
	if days <= 0 {
		days = s.cfg.Index.HistoryDefaultDays
	}
	since := s.now().AddDate(0, 0, -days)
	return s.indexRepo.GetHistory(ctx, since)
}

// GetFearGreed derives the consumer-facing Fear/Greed view from the latest
// snapshot's overall index.
func (s *compositeIndexService) GetFearGreed(ctx context.Context) (*dto.FearGreedIndex, error) {
	latest, err := s.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	value := FearGreedValue(latest.Overall)
	return &dto.FearGreedIndex{
		Value:          value,
		Classification: ClassifyFearGreed(value),
		Date:           latest.Date,
	}, nil
}

// FearGreedValue rescales the 0-100 overall index into the 10-90 band used by
// the Fear/Greed widget.
func FearGreedValue(overallIndex float64) int {
	return int(utils.RoundTo(overallIndex*0.8+10, 0))
}

func ClassifyFearGreed(value int) string {
	switch {
	case value >= 75:
		return dto.FearGreedExtremeGreed
	case value >= 60:
		return dto.FearGreedGreed
	case value >= 40:
		return dto.FearGreedNeutral
	case value >= 25:
		return dto.FearGreedFear
	default:
		return dto.FearGreedExtremeFear
	}
}

func snapshotToResult(snapshot *model.CompositeIndexSnapshot) (*dto.CompositeIndexResult, error) {
	fields := map[string]string{
		"overall":     snapshot.OverallIndex,
		"hard":        snapshot.HardCommoditiesIndex,
		"soft":        snapshot.SoftCommoditiesIndex,
		"directional": snapshot.DirectionalComponent,
		"confidence":  snapshot.ConfidenceComponent,
		"accuracy":    snapshot.AccuracyComponent,
		"momentum":    snapshot.MomentumComponent,
	}
	parsed := make(map[string]float64, len(fields))
	for name, raw := range fields {
		v, err := utils.ParseDecimal(raw)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d field %s: %w", snapshot.ID, name, err)
		}
		parsed[name] = v
	}

	return &dto.CompositeIndexResult{
		Date:    snapshot.Date,
		Overall: parsed["overall"],
		Hard:    parsed["hard"],
		Soft:    parsed["soft"],
		Components: dto.IndexComponents{
			Directional: parsed["directional"],
			Confidence:  parsed["confidence"],
			Accuracy:    parsed["accuracy"],
			Momentum:    parsed["momentum"],
		},
		TotalPredictions: snapshot.TotalPredictions,
		MarketSentiment:  string(snapshot.MarketSentiment),
	}, nil
}
