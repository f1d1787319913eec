package repository

import (
	"context"

	"commodity-index/internal/model"
	"commodity-index/pkg/utils"

	"gorm.io/gorm"
)

type ModelRankingRepository interface {
	CreateBulk(ctx context.Context, snapshots []model.ModelRankingSnapshot, opts ...utils.DBOption) error
	// GetPreviousRanks returns the rank of each model from the most recent
	// stored ranking run for the given period, keyed by AI model ID.
	GetPreviousRanks(ctx context.Context, period string) (map[uint]int, error)
}

type modelRankingRepository struct {
	db *gorm.DB
}

func NewModelRankingRepository(db *gorm.DB) ModelRankingRepository {
	return &modelRankingRepository{db: db}
}

func (r *modelRankingRepository) CreateBulk(ctx context.Context, snapshots []model.ModelRankingSnapshot, opts ...utils.DBOption) error {
	if len(snapshots) == 0 {
		return nil
	}
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).CreateInBatches(snapshots, 100).Error
}

func (r *modelRankingRepository) GetPreviousRanks(ctx context.Context, period string) (map[uint]int, error) {
	var latest model.ModelRankingSnapshot
	err := r.db.WithContext(ctx).
		Where("period = ?", period).
		Order("date DESC").
		First(&latest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return map[uint]int{}, nil
		}
		return nil, err
	}

	var snapshots []model.ModelRankingSnapshot
	err = r.db.WithContext(ctx).
		Where("period = ? AND date = ?", period, latest.Date).
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}

	ranks := make(map[uint]int, len(snapshots))
	for _, s := range snapshots {
		ranks[s.AIModelID] = s.Rank
	}
	return ranks, nil
}
