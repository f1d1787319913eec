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

	"golang.org/x/sync/errgroup"
)

type RankingService interface {
	// RankModels builds the leaderboard for the given period and stores the
	// resulting ranks so the next run can report trends.
	RankModels(ctx context.Context, period string) ([]dto.ModelRanking, error)
}

type rankingService struct {
	cfg              *config.Config
	log              *logger.Logger
	aiModelRepo      repository.AIModelRepository
	commodityRepo    repository.CommodityRepository
	predictionRepo   repository.PredictionRepository
	actualPriceRepo  repository.ActualPriceRepository
	modelRankingRepo repository.ModelRankingRepository
	unitOfWork       repository.UnitOfWork
	now              func() time.Time
}

func NewRankingService(
	cfg *config.Config,
	log *logger.Logger,
	aiModelRepo repository.AIModelRepository,
	commodityRepo repository.CommodityRepository,
	predictionRepo repository.PredictionRepository,
	actualPriceRepo repository.ActualPriceRepository,
	modelRankingRepo repository.ModelRankingRepository,
	unitOfWork repository.UnitOfWork,
) RankingService {
	return &rankingService{
		cfg:              cfg,
		log:              log,
		aiModelRepo:      aiModelRepo,
		commodityRepo:    commodityRepo,
		predictionRepo:   predictionRepo,
		actualPriceRepo:  actualPriceRepo,
		modelRankingRepo: modelRankingRepo,
		unitOfWork:       unitOfWork,
		now:              time.Now,
	}
}

func (s *rankingService) RankModels(ctx context.Context, period string) ([]dto.ModelRanking, error) {
	models, err := s.aiModelRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load models: %w", err)
	}
	commodities, err := s.commodityRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load commodities: %w", err)
	}

	now := s.now()

	// Per-commodity price history is shared across models; fetch it once.
	pricesByCommodity := make(map[uint][]model.ActualPrice, len(commodities))
	for _, c := range commodities {
		prices, err := s.actualPriceRepo.GetByCommodity(ctx, c.ID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to load prices for commodity %d: %w", c.ID, err)
		}
		pricesByCommodity[c.ID] = prices
	}

	// Scoring is read-only per model, so models can be scored concurrently.
	rows := make([]dto.ModelRanking, len(models))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range models {
		g.Go(func() error {
			row, err := s.scoreModel(gctx, m, commodities, pricesByCommodity, period, now)
			if err != nil {
				return err
			}
			rows[i] = *row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prevRanks, err := s.modelRankingRepo.GetPreviousRanks(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous rankings: %w", err)
	}

	ranked := RankAndTrend(rows, prevRanks)

	snapshots := make([]model.ModelRankingSnapshot, 0, len(ranked))
	for _, r := range ranked {
		snapshots = append(snapshots, model.ModelRankingSnapshot{
			AIModelID:       r.AIModelID,
			Period:          period,
			Rank:            r.Rank,
			OverallAccuracy: utils.FormatDecimal(r.OverallAccuracy),
			Date:            now,
		})
	}
	// Trend detection diffs against the latest complete run, so the run's
	// snapshot rows must land all together or not at all.
	err = s.unitOfWork.Run(func(opts ...utils.DBOption) error {
		return s.modelRankingRepo.CreateBulk(ctx, snapshots, opts...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store ranking snapshots: %w", err)
	}

	return ranked, nil
}

func (s *rankingService) scoreModel(ctx context.Context, aiModel model.AIModel, commodities []model.Commodity, pricesByCommodity map[uint][]model.ActualPrice, period string, now time.Time) (*dto.ModelRanking, error) {
	results := make([]dto.AccuracyResult, 0, len(commodities))
	perfNames := make(map[uint]string, len(commodities))

	for _, c := range commodities {
		predictions, err := s.predictionRepo.Get(ctx, model.GetPredictionParam{
			CommodityID: &c.ID,
			AIModelID:   &aiModel.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load predictions for model %d commodity %d: %w", aiModel.ID, c.ID, err)
		}

		result, err := ComputeAccuracy(aiModel.ID, c.ID, FilterByPeriod(predictions, period, now), pricesByCommodity[c.ID], now)
		if err != nil {
			return nil, err
		}
		if result != nil {
			results = append(results, *result)
			perfNames[c.ID] = c.Name
		}
	}

	row := AggregateModelAccuracy(aiModel, results, perfNames)
	return &row, nil
}

// AggregateModelAccuracy folds per-commodity accuracy results into one
// leaderboard row using prediction-count-weighted means. A model with no
// scored predictions still gets a row with zero accuracy.
func AggregateModelAccuracy(aiModel model.AIModel, results []dto.AccuracyResult, commodityNames map[uint]string) dto.ModelRanking {
	row := dto.ModelRanking{
		AIModelID:            aiModel.ID,
		AIModelName:          aiModel.Name,
		Provider:             string(aiModel.Provider),
		CommodityPerformance: []dto.CommodityAccuracy{},
	}

	var weightedAccuracy, weightedAbsErr, weightedPctErr float64
	total := 0
	for _, r := range results {
		n := float64(r.TotalPredictions)
		weightedAccuracy += r.Accuracy * n
		weightedAbsErr += r.AvgAbsoluteError * n
		weightedPctErr += r.AvgPercentageError * n
		total += r.TotalPredictions

		row.CommodityPerformance = append(row.CommodityPerformance, dto.CommodityAccuracy{
			CommodityID:      r.CommodityID,
			CommodityName:    commodityNames[r.CommodityID],
			Accuracy:         r.Accuracy,
			TotalPredictions: r.TotalPredictions,
		})
	}

	row.TotalPredictions = total
	if total > 0 {
		n := float64(total)
		row.OverallAccuracy = utils.RoundTo(weightedAccuracy/n, 2)
		row.AvgAbsoluteError = utils.RoundTo(weightedAbsErr/n, 2)
		row.AvgPercentageError = utils.RoundTo(weightedPctErr/n, 2)
	}

	sort.SliceStable(row.CommodityPerformance, func(i, j int) bool {
		return row.CommodityPerformance[i].Accuracy > row.CommodityPerformance[j].Accuracy
	})

	return row
}

// RankAndTrend sorts rows by overall accuracy descending (stable: ties keep
// input order), assigns 1-based ranks, and annotates each row with its rank
// movement against the previous stored run.
func RankAndTrend(rows []dto.ModelRanking, prevRanks map[uint]int) []dto.ModelRanking {
	ranked := make([]dto.ModelRanking, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallAccuracy > ranked[j].OverallAccuracy
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		prev, ok := prevRanks[ranked[i].AIModelID]
		switch {
		case !ok || prev == ranked[i].Rank:
			ranked[i].Trend = 0
		case ranked[i].Rank < prev:
			ranked[i].Trend = 1
		default:
			ranked[i].Trend = -1
		}
	}
	return ranked
}
