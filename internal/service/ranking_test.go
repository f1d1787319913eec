package service

import (
	"testing"

	"commodity-index/internal/dto"
	"commodity-index/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateModelAccuracy(t *testing.T) {
	aiModel := model.AIModel{ID: 3, Name: "GPT-4o", Provider: model.ProviderOpenAI}
	names := map[uint]string{1: "Gold", 2: "Wheat"}

	results := []dto.AccuracyResult{
		{CommodityID: 1, Accuracy: 90, TotalPredictions: 2, AvgAbsoluteError: 1, AvgPercentageError: 2},
		{CommodityID: 2, Accuracy: 60, TotalPredictions: 4, AvgAbsoluteError: 3, AvgPercentageError: 4},
	}

	row := AggregateModelAccuracy(aiModel, results, names)

	assert.Equal(t, uint(3), row.AIModelID)
	assert.Equal(t, "GPT-4o", row.AIModelName)
	assert.Equal(t, "openai", row.Provider)
	assert.Equal(t, 6, row.TotalPredictions)
	// The commodity with more predictions weighs heavier than a plain mean.
	assert.InDelta(t, 70.0, row.OverallAccuracy, 1e-9)
	assert.InDelta(t, 2.33, row.AvgAbsoluteError, 1e-9)
	assert.InDelta(t, 3.33, row.AvgPercentageError, 1e-9)

	require.Len(t, row.CommodityPerformance, 2)
	assert.Equal(t, "Gold", row.CommodityPerformance[0].CommodityName)
	assert.Equal(t, "Wheat", row.CommodityPerformance[1].CommodityName)
}

func TestAggregateModelAccuracy_NoResults(t *testing.T) {
	aiModel := model.AIModel{ID: 3, Name: "GPT-4o", Provider: model.ProviderOpenAI}

	row := AggregateModelAccuracy(aiModel, nil, nil)

	assert.Equal(t, 0, row.TotalPredictions)
	assert.Zero(t, row.OverallAccuracy)
	assert.Zero(t, row.AvgAbsoluteError)
	assert.Zero(t, row.AvgPercentageError)
	assert.Empty(t, row.CommodityPerformance)
}

func TestRankAndTrend(t *testing.T) {
	rows := []dto.ModelRanking{
		{AIModelID: 1, OverallAccuracy: 80},
		{AIModelID: 2, OverallAccuracy: 90},
		{AIModelID: 3, OverallAccuracy: 80},
	}
	prevRanks := map[uint]int{
		1: 1, // was first, now second
		2: 2, // was second, now first
	}

	ranked := RankAndTrend(rows, prevRanks)

	require.Len(t, ranked, 3)
	assert.Equal(t, uint(2), ranked[0].AIModelID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 1, ranked[0].Trend)

	assert.Equal(t, uint(1), ranked[1].AIModelID)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, -1, ranked[1].Trend)

	// No prior rank means no trend.
	assert.Equal(t, uint(3), ranked[2].AIModelID)
	assert.Equal(t, 3, ranked[2].Rank)
	assert.Equal(t, 0, ranked[2].Trend)
}

func TestRankAndTrend_TiesKeepInputOrder(t *testing.T) {
	rows := []dto.ModelRanking{
		{AIModelID: 10, OverallAccuracy: 75},
		{AIModelID: 20, OverallAccuracy: 75},
	}

	ranked := RankAndTrend(rows, nil)

	require.Len(t, ranked, 2)
	assert.Equal(t, uint(10), ranked[0].AIModelID)
	assert.Equal(t, uint(20), ranked[1].AIModelID)
}

func TestRankAndTrend_UnchangedRank(t *testing.T) {
	rows := []dto.ModelRanking{
		{AIModelID: 1, OverallAccuracy: 90},
		{AIModelID: 2, OverallAccuracy: 80},
	}
	prevRanks := map[uint]int{1: 1, 2: 2}

	ranked := RankAndTrend(rows, prevRanks)

	assert.Equal(t, 0, ranked[0].Trend)
	assert.Equal(t, 0, ranked[1].Trend)
}

func TestRankAndTrend_DoesNotMutateInput(t *testing.T) {
	rows := []dto.ModelRanking{
		{AIModelID: 1, OverallAccuracy: 10},
		{AIModelID: 2, OverallAccuracy: 20},
	}

	_ = RankAndTrend(rows, nil)

	assert.Equal(t, uint(1), rows[0].AIModelID)
	assert.Equal(t, 0, rows[0].Rank)
}
