package service

import (
	"context"
	"testing"
	"time"

	"commodity-index/config"
	"commodity-index/internal/dto"
	"commodity-index/internal/model"
	"commodity-index/pkg/cache"
	"commodity-index/pkg/logger"
	"commodity-index/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func conf(v string) *string {
	return &v
}

func TestCalculateComponents_NoGroups(t *testing.T) {
	components, err := CalculateComponents(nil)
	require.NoError(t, err)

	assert.Equal(t, dto.IndexComponents{
		Directional: 50,
		Confidence:  50,
		Accuracy:    50,
		Momentum:    50,
	}, components)
}

func TestCalculateComponents_SingleGroup(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	group := PredictionGroup{
		Category: model.CategoryHard,
		Predictions: []model.Prediction{
			{ID: 1, PredictedPrice: "100.0000", Confidence: conf("0.8000"), PredictionDate: base},
			{ID: 2, PredictedPrice: "110.0000", Confidence: conf("0.6000"), PredictionDate: base.AddDate(0, 0, 1)},
		},
	}

	components, err := CalculateComponents([]PredictionGroup{group})
	require.NoError(t, err)

	// Both confidences sit above the undecided mark: (0.8+0.6)/2*100.
	assert.InDelta(t, 70.0, components.Directional, 1e-9)
	// Mean 0.7 with variance 0.01: 70*0.7 + (100-4)*0.3.
	assert.InDelta(t, 77.8, components.Confidence, 1e-9)
	assert.InDelta(t, 60.0, components.Accuracy, 1e-9)
	// A 10% average step change saturates the momentum scale.
	assert.InDelta(t, 100.0, components.Momentum, 1e-9)
}

func TestCalculateComponents_SinglePredictionDefaults(t *testing.T) {
	group := PredictionGroup{
		Category: model.CategorySoft,
		Predictions: []model.Prediction{
			{ID: 1, PredictedPrice: "40.0000", PredictionDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	components, err := CalculateComponents([]PredictionGroup{group})
	require.NoError(t, err)

	// A missing confidence counts as exactly undecided and never bullish.
	assert.InDelta(t, 0.0, components.Directional, 1e-9)
	assert.InDelta(t, 65.0, components.Confidence, 1e-9)
	assert.InDelta(t, 50.0, components.Momentum, 1e-9)
}

func TestCalculateComponents_ZeroPredictedPrice(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	group := PredictionGroup{
		Category: model.CategoryHard,
		Predictions: []model.Prediction{
			{ID: 1, PredictedPrice: "0.0000", PredictionDate: base},
			{ID: 2, PredictedPrice: "100.0000", PredictionDate: base.AddDate(0, 0, 1)},
		},
	}

	_, err := CalculateComponents([]PredictionGroup{group})
	assert.Error(t, err)
}

func TestCalculateComponents_MalformedConfidence(t *testing.T) {
	group := PredictionGroup{
		Category: model.CategoryHard,
		Predictions: []model.Prediction{
			{ID: 1, PredictedPrice: "100.0000", Confidence: conf("high")},
		},
	}

	_, err := CalculateComponents([]PredictionGroup{group})
	assert.Error(t, err)
}

func TestCalculateCompositeIndex(t *testing.T) {
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	base := now.AddDate(0, 0, -5)
	groups := []PredictionGroup{
		{
			Category: model.CategoryHard,
			Predictions: []model.Prediction{
				{ID: 1, PredictedPrice: "100.0000", Confidence: conf("0.8000"), PredictionDate: base},
				{ID: 2, PredictedPrice: "110.0000", Confidence: conf("0.6000"), PredictionDate: base.AddDate(0, 0, 1)},
			},
		},
	}

	result, err := CalculateCompositeIndex(groups, now)
	require.NoError(t, err)

	// 70*0.40 + 77.8*0.25 + 60*0.20 + 100*0.15
	assert.InDelta(t, 74.45, result.Overall, 1e-9)
	assert.InDelta(t, 74.45, result.Hard, 1e-9)
	// No soft commodities in scope: that slice stays neutral.
	assert.InDelta(t, 50.0, result.Soft, 1e-9)
	assert.Equal(t, 2, result.TotalPredictions)
	assert.Equal(t, string(model.SentimentBullish), result.MarketSentiment)
	assert.True(t, result.Date.Equal(now))
}

func TestCalculateCompositeIndex_NoGroups(t *testing.T) {
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	result, err := CalculateCompositeIndex(nil, now)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, result.Overall, 1e-9)
	assert.InDelta(t, 50.0, result.Hard, 1e-9)
	assert.InDelta(t, 50.0, result.Soft, 1e-9)
	assert.Equal(t, 0, result.TotalPredictions)
	assert.Equal(t, string(model.SentimentNeutral), result.MarketSentiment)
}

func TestCombineIndex_Clamped(t *testing.T) {
	index := CombineIndex(dto.IndexComponents{Directional: 100, Confidence: 100, Accuracy: 100, Momentum: 100})
	assert.InDelta(t, 100.0, index, 1e-9)

	index = CombineIndex(dto.IndexComponents{})
	assert.InDelta(t, 0.0, index, 1e-9)
}

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		index float64
		want  model.MarketSentiment
	}{
		{index: 55, want: model.SentimentBullish},
		{index: 80, want: model.SentimentBullish},
		{index: 54.99, want: model.SentimentNeutral},
		{index: 50, want: model.SentimentNeutral},
		{index: 45.01, want: model.SentimentNeutral},
		{index: 45, want: model.SentimentBearish},
		{index: 10, want: model.SentimentBearish},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySentiment(tt.index), "index %v", tt.index)
	}
}

func TestFearGreedValue(t *testing.T) {
	assert.Equal(t, 10, FearGreedValue(0))
	assert.Equal(t, 50, FearGreedValue(50))
	assert.Equal(t, 90, FearGreedValue(100))
}

func TestClassifyFearGreed(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{value: 90, want: dto.FearGreedExtremeGreed},
		{value: 75, want: dto.FearGreedExtremeGreed},
		{value: 74, want: dto.FearGreedGreed},
		{value: 60, want: dto.FearGreedGreed},
		{value: 59, want: dto.FearGreedNeutral},
		{value: 40, want: dto.FearGreedNeutral},
		{value: 39, want: dto.FearGreedFear},
		{value: 25, want: dto.FearGreedFear},
		{value: 24, want: dto.FearGreedExtremeFear},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyFearGreed(tt.value), "value %d", tt.value)
	}
}

func TestCalculateCompositeIndex_Repeatable(t *testing.T) {
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	base := now.AddDate(0, 0, -5)
	groups := []PredictionGroup{
		{
			Category: model.CategoryHard,
			Predictions: []model.Prediction{
				{ID: 1, PredictedPrice: "100.0000", Confidence: conf("0.8000"), PredictionDate: base},
				{ID: 2, PredictedPrice: "110.0000", Confidence: conf("0.6000"), PredictionDate: base.AddDate(0, 0, 1)},
			},
		},
		{
			Category: model.CategorySoft,
			Predictions: []model.Prediction{
				{ID: 3, PredictedPrice: "6.5000", Confidence: conf("0.4000"), PredictionDate: base},
			},
		},
	}

	first, err := CalculateCompositeIndex(groups, now)
	require.NoError(t, err)
	second, err := CalculateCompositeIndex(groups, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

type stubCommodityRepo struct {
	commodities []model.Commodity
}

func (s *stubCommodityRepo) GetActive(ctx context.Context) ([]model.Commodity, error) {
	return s.commodities, nil
}

func (s *stubCommodityRepo) FindByID(ctx context.Context, id uint) (*model.Commodity, error) {
	for i := range s.commodities {
		if s.commodities[i].ID == id {
			return &s.commodities[i], nil
		}
	}
	return nil, nil
}

type stubPredictionRepo struct {
	recent map[uint][]model.Prediction
}

func (s *stubPredictionRepo) Create(ctx context.Context, prediction *model.Prediction, opts ...utils.DBOption) error {
	return nil
}

func (s *stubPredictionRepo) CreateBulk(ctx context.Context, predictions []model.Prediction, opts ...utils.DBOption) error {
	return nil
}

func (s *stubPredictionRepo) Get(ctx context.Context, param model.GetPredictionParam) ([]model.Prediction, error) {
	return nil, nil
}

func (s *stubPredictionRepo) GetRecentByCommodity(ctx context.Context, commodityID uint, since time.Time, fallbackLimit int) ([]model.Prediction, error) {
	return s.recent[commodityID], nil
}

func (s *stubPredictionRepo) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

type stubCompositeIndexRepo struct {
	created []model.CompositeIndexSnapshot
}

func (s *stubCompositeIndexRepo) Create(ctx context.Context, snapshot *model.CompositeIndexSnapshot, opts ...utils.DBOption) error {
	s.created = append(s.created, *snapshot)
	return nil
}

func (s *stubCompositeIndexRepo) GetLatest(ctx context.Context) (*model.CompositeIndexSnapshot, error) {
	if len(s.created) == 0 {
		return nil, nil
	}
	last := s.created[len(s.created)-1]
	return &last, nil
}

func (s *stubCompositeIndexRepo) GetHistory(ctx context.Context, since time.Time) ([]model.CompositeIndexSnapshot, error) {
	return s.created, nil
}

func newIndexServiceForTest(commodities []model.Commodity, recent map[uint][]model.Prediction, indexRepo *stubCompositeIndexRepo) *compositeIndexService {
	return &compositeIndexService{
		cfg: &config.Config{
			Index: config.CompositeIndex{RecentWindowDays: 7, FallbackLimit: 10},
			Cache: config.Cache{DefaultExpiration: time.Minute},
		},
		log:            &logger.Logger{Logger: zap.NewNop()},
		commodityRepo:  &stubCommodityRepo{commodities: commodities},
		predictionRepo: &stubPredictionRepo{recent: recent},
		indexRepo:      indexRepo,
		cache:          cache.NewCache(time.Minute, time.Minute),
		now:            func() time.Time { return time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC) },
	}
}

func TestCalculate_NoPredictionsWritesNeutralSnapshot(t *testing.T) {
	indexRepo := &stubCompositeIndexRepo{}
	svc := newIndexServiceForTest([]model.Commodity{
		{ID: 1, Symbol: "XAU", Category: model.CategoryHard},
		{ID: 2, Symbol: "ZW", Category: model.CategorySoft},
	}, nil, indexRepo)

	result, err := svc.Calculate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, indexRepo.created, 1)
	snapshot := indexRepo.created[0]
	assert.Equal(t, "50.00", snapshot.OverallIndex)
	assert.Equal(t, "50.00", snapshot.HardCommoditiesIndex)
	assert.Equal(t, "50.00", snapshot.SoftCommoditiesIndex)
	assert.Equal(t, "50.00", snapshot.DirectionalComponent)
	assert.Equal(t, "50.00", snapshot.ConfidenceComponent)
	assert.Equal(t, "50.00", snapshot.AccuracyComponent)
	assert.Equal(t, "50.00", snapshot.MomentumComponent)
	assert.Equal(t, 0, snapshot.TotalPredictions)
	assert.Equal(t, model.SentimentNeutral, snapshot.MarketSentiment)
}

func TestCalculate_WritesOneSnapshotAndRefreshesLatest(t *testing.T) {
	indexRepo := &stubCompositeIndexRepo{}
	svc := newIndexServiceForTest([]model.Commodity{
		{ID: 1, Symbol: "XAU", Category: model.CategoryHard},
	}, map[uint][]model.Prediction{
		1: {
			{ID: 1, PredictedPrice: "100.0000", Confidence: conf("0.8000"), PredictionDate: time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)},
			{ID: 2, PredictedPrice: "110.0000", Confidence: conf("0.6000"), PredictionDate: time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)},
		},
	}, indexRepo)

	// Prime the cache with a stale entry; a new calculation must evict it.
	svc.cache.Set(dto.KeyLatestIndex, &dto.CompositeIndexResult{Overall: 1}, time.Minute)

	result, err := svc.Calculate(context.Background())
	require.NoError(t, err)
	require.Len(t, indexRepo.created, 1)
	assert.Equal(t, "74.45", indexRepo.created[0].OverallIndex)
	assert.Equal(t, model.SentimentBullish, indexRepo.created[0].MarketSentiment)

	latest, err := svc.GetLatest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.InDelta(t, result.Overall, latest.Overall, 1e-9)
	assert.Equal(t, result.MarketSentiment, latest.MarketSentiment)
}
