package service

import (
	"context"
	"testing"
	"time"

	"commodity-index/config"
	"commodity-index/internal/dto"
	"commodity-index/internal/model"
	"commodity-index/pkg/logger"
	"commodity-index/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func day(t time.Time, offset int) time.Time {
	return t.AddDate(0, 0, offset)
}

func TestMatchPrediction(t *testing.T) {
	target := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	prediction := model.Prediction{ID: 1, PredictedPrice: "100.0000", TargetDate: target}

	tests := []struct {
		name     string
		prices   []model.ActualPrice
		wantNil  bool
		wantDate time.Time
	}{
		{
			name: "earliest observation within forward window wins",
			prices: []model.ActualPrice{
				{ID: 1, Price: "101.0000", Date: day(target, 6)},
				{ID: 2, Price: "102.0000", Date: day(target, 3)},
			},
			wantDate: day(target, 3),
		},
		{
			name: "observation beyond seven days is ignored",
			prices: []model.ActualPrice{
				{ID: 1, Price: "101.0000", Date: day(target, 10)},
			},
			wantNil: true,
		},
		{
			name: "same day fallback matches within a day either direction",
			prices: []model.ActualPrice{
				{ID: 1, Price: "101.0000", Date: target.Add(-12 * time.Hour)},
			},
			wantDate: target.Add(-12 * time.Hour),
		},
		{
			name: "observation before target outside fallback does not match",
			prices: []model.ActualPrice{
				{ID: 1, Price: "101.0000", Date: day(target, -3)},
			},
			wantNil: true,
		},
		{
			name:    "no observations at all",
			prices:  nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := MatchPrediction(prediction, tt.prices)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, match)
				return
			}
			require.NotNil(t, match)
			assert.True(t, match.Date.Equal(tt.wantDate))
		})
	}
}

func TestMatchPrediction_MalformedPrice(t *testing.T) {
	target := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	prices := []model.ActualPrice{{ID: 1, Price: "102.0000", Date: target}}

	_, err := MatchPrediction(model.Prediction{ID: 1, PredictedPrice: "not-a-number", TargetDate: target}, prices)
	assert.Error(t, err)
}

func TestFilterByPeriod(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	predictions := []model.Prediction{
		{ID: 1, TargetDate: day(now, -3)},
		{ID: 2, TargetDate: day(now, -40)},
		{ID: 3, TargetDate: day(now, -100)},
	}

	tests := []struct {
		name    string
		period  string
		wantIDs []uint
	}{
		{name: "7d keeps only recent targets", period: dto.Period7Day, wantIDs: []uint{1}},
		{name: "30d", period: dto.Period30Day, wantIDs: []uint{1}},
		{name: "90d", period: dto.Period90Day, wantIDs: []uint{1, 2}},
		{name: "all keeps everything", period: dto.PeriodAll, wantIDs: []uint{1, 2, 3}},
		{name: "unknown period keeps everything", period: "1y", wantIDs: []uint{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByPeriod(predictions, tt.period, now)
			ids := make([]uint, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestComputeAccuracy(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	d1, d2, d3 := day(now, -30), day(now, -20), day(now, -10)

	predictions := []model.Prediction{
		{ID: 1, PredictedPrice: "100.0000", TargetDate: d1},
		{ID: 2, PredictedPrice: "110.0000", TargetDate: d2},
		{ID: 3, PredictedPrice: "105.0000", TargetDate: d3},
	}
	prices := []model.ActualPrice{
		{ID: 1, Price: "102.0000", Date: d1},
		{ID: 2, Price: "108.0000", Date: d2},
		{ID: 3, Price: "107.0000", Date: d3},
	}

	result, err := ComputeAccuracy(7, 9, predictions, prices, now)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, uint(7), result.AIModelID)
	assert.Equal(t, uint(9), result.CommodityID)
	assert.Equal(t, 3, result.TotalPredictions)
	assert.Equal(t, 3, result.CorrectPredictions)
	assert.InDelta(t, 2.0, result.AvgAbsoluteError, 1e-9)
	assert.InDelta(t, 1.89, result.AvgPercentageError, 1e-9)
	// Both consecutive moves agree in direction and every error is under the
	// 5% threshold, so only the percentage-error term costs anything.
	assert.InDelta(t, 99.24, result.Accuracy, 1e-9)
}

func TestComputeAccuracy_FuturePredictionsExcluded(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	predictions := []model.Prediction{
		{ID: 1, PredictedPrice: "100.0000", TargetDate: day(now, 30)},
	}
	prices := []model.ActualPrice{
		{ID: 1, Price: "102.0000", Date: now},
	}

	result, err := ComputeAccuracy(1, 1, predictions, prices, now)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestComputeAccuracy_NoMatches(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	predictions := []model.Prediction{
		{ID: 1, PredictedPrice: "100.0000", TargetDate: day(now, -30)},
	}

	result, err := ComputeAccuracy(1, 1, predictions, nil, now)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestComputeAccuracy_ZeroActualPrice(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	target := day(now, -10)

	predictions := []model.Prediction{
		{ID: 1, PredictedPrice: "100.0000", TargetDate: target},
	}
	prices := []model.ActualPrice{
		{ID: 1, Price: "0.0000", Date: target},
	}

	_, err := ComputeAccuracy(1, 1, predictions, prices, now)
	assert.Error(t, err)
}

func TestDirectionalAccuracy(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		matches []MatchedPair
		want    float64
	}{
		{
			name:    "fewer than two matches scores zero",
			matches: []MatchedPair{{Predicted: 100, Actual: 102, Date: base}},
			want:    0,
		},
		{
			name: "full agreement",
			matches: []MatchedPair{
				{Predicted: 100, Actual: 100, Date: base},
				{Predicted: 110, Actual: 105, Date: day(base, 1)},
				{Predicted: 105, Actual: 101, Date: day(base, 2)},
			},
			want: 100,
		},
		{
			name: "half agreement",
			matches: []MatchedPair{
				{Predicted: 100, Actual: 100, Date: base},
				{Predicted: 110, Actual: 105, Date: day(base, 1)},
				{Predicted: 120, Actual: 101, Date: day(base, 2)},
			},
			want: 50,
		},
		{
			name: "flat counts as agreement only when both are flat",
			matches: []MatchedPair{
				{Predicted: 100, Actual: 100, Date: base},
				{Predicted: 100, Actual: 100, Date: day(base, 1)},
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, directionalAccuracy(tt.matches), 1e-9)
		})
	}
}

type stubAIModelRepo struct {
	models []model.AIModel
}

func (s *stubAIModelRepo) GetActive(ctx context.Context) ([]model.AIModel, error) {
	return s.models, nil
}

func (s *stubAIModelRepo) FindByID(ctx context.Context, id uint) (*model.AIModel, error) {
	for i := range s.models {
		if s.models[i].ID == id {
			return &s.models[i], nil
		}
	}
	return nil, nil
}

type stubActualPriceRepo struct {
	prices []model.ActualPrice
}

func (s *stubActualPriceRepo) UpsertBulk(ctx context.Context, prices []model.ActualPrice, opts ...utils.DBOption) error {
	return nil
}

func (s *stubActualPriceRepo) GetByCommodity(ctx context.Context, commodityID uint, limit int) ([]model.ActualPrice, error) {
	return s.prices, nil
}

func (s *stubActualPriceRepo) GetLatest(ctx context.Context, commodityID uint) (*model.ActualPrice, error) {
	if len(s.prices) == 0 {
		return nil, nil
	}
	return &s.prices[0], nil
}

func (s *stubActualPriceRepo) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

func TestGetAccuracy_UnknownModelOrCommodity(t *testing.T) {
	svc := &accuracyService{
		cfg:             &config.Config{},
		log:             &logger.Logger{Logger: zap.NewNop()},
		aiModelRepo:     &stubAIModelRepo{models: []model.AIModel{{ID: 1, Name: "GPT-4o"}}},
		commodityRepo:   &stubCommodityRepo{commodities: []model.Commodity{{ID: 1, Symbol: "XAU"}}},
		predictionRepo:  &stubPredictionRepo{},
		actualPriceRepo: &stubActualPriceRepo{},
		now:             time.Now,
	}

	result, err := svc.GetAccuracy(context.Background(), 99, 1, dto.PeriodAll)
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = svc.GetAccuracy(context.Background(), 1, 99, dto.PeriodAll)
	require.NoError(t, err)
	assert.Nil(t, result)
}
