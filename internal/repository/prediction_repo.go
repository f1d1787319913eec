package repository

import (
	"context"
	"time"

	"commodity-index/internal/model"
	"commodity-index/pkg/utils"

	"gorm.io/gorm"
)

type PredictionRepository interface {
	Create(ctx context.Context, prediction *model.Prediction, opts ...utils.DBOption) error
	CreateBulk(ctx context.Context, predictions []model.Prediction, opts ...utils.DBOption) error
	Get(ctx context.Context, param model.GetPredictionParam) ([]model.Prediction, error)
	GetRecentByCommodity(ctx context.Context, commodityID uint, since time.Time, fallbackLimit int) ([]model.Prediction, error)
	DeleteOlderThan(ctx context.Context, date time.Time) (int64, error)
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, prediction *model.Prediction, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(prediction).Error
}

func (r *predictionRepository) CreateBulk(ctx context.Context, predictions []model.Prediction, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).CreateInBatches(predictions, 100).Error
}

func (r *predictionRepository) Get(ctx context.Context, param model.GetPredictionParam) ([]model.Prediction, error) {
	query := r.db.WithContext(ctx)

	if param.CommodityID != nil {
		query = query.Where("commodity_id = ?", *param.CommodityID)
	}
	if param.AIModelID != nil {
		query = query.Where("ai_model_id = ?", *param.AIModelID)
	}
	if param.Timeframe != nil {
		query = query.Where("timeframe = ?", *param.Timeframe)
	}
	if param.Since != nil {
		query = query.Where("prediction_date >= ?", *param.Since)
	}
	if param.Limit != nil {
		query = query.Limit(*param.Limit)
	}

	var predictions []model.Prediction
	err := query.Order("prediction_date DESC").Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

// GetRecentByCommodity returns predictions made within the recency window, or
// falls back to the most recent fallbackLimit predictions of any age when the
// window is empty.
func (r *predictionRepository) GetRecentByCommodity(ctx context.Context, commodityID uint, since time.Time, fallbackLimit int) ([]model.Prediction, error) {
	var predictions []model.Prediction
	err := r.db.WithContext(ctx).
		Where("commodity_id = ? AND prediction_date >= ?", commodityID, since).
		Order("prediction_date DESC").
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	if len(predictions) > 0 {
		return predictions, nil
	}

	err = r.db.WithContext(ctx).
		Where("commodity_id = ?", commodityID).
		Order("prediction_date DESC").
		Limit(fallbackLimit).
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *predictionRepository) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	db := r.db.WithContext(ctx).Where("target_date < ?", date).Delete(&model.Prediction{})
	if db.Error != nil {
		return 0, db.Error
	}
	return db.RowsAffected, nil
}
