package repository

import (
	"context"
	"time"

	"commodity-index/internal/model"
	"commodity-index/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActualPriceRepository interface {
	UpsertBulk(ctx context.Context, prices []model.ActualPrice, opts ...utils.DBOption) error
	GetByCommodity(ctx context.Context, commodityID uint, limit int) ([]model.ActualPrice, error)
	GetLatest(ctx context.Context, commodityID uint) (*model.ActualPrice, error)
	DeleteOlderThan(ctx context.Context, date time.Time) (int64, error)
}

type actualPriceRepository struct {
	db *gorm.DB
}

func NewActualPriceRepository(db *gorm.DB) ActualPriceRepository {
	return &actualPriceRepository{db: db}
}

// UpsertBulk inserts price observations, skipping rows whose (commodity, date,
// source) already exist. The price history is append-only.
func (r *actualPriceRepository) UpsertBulk(ctx context.Context, prices []model.ActualPrice, opts ...utils.DBOption) error {
	if len(prices) == 0 {
		return nil
	}
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "commodity_id"}, {Name: "date"}, {Name: "source"}},
			DoNothing: true,
		}).
		CreateInBatches(prices, 200).Error
}

func (r *actualPriceRepository) GetByCommodity(ctx context.Context, commodityID uint, limit int) ([]model.ActualPrice, error) {
	query := r.db.WithContext(ctx).
		Where("commodity_id = ?", commodityID).
		Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var prices []model.ActualPrice
	if err := query.Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *actualPriceRepository) GetLatest(ctx context.Context, commodityID uint) (*model.ActualPrice, error) {
	var price model.ActualPrice
	err := r.db.WithContext(ctx).
		Where("commodity_id = ?", commodityID).
		Order("date DESC").
		First(&price).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}

func (r *actualPriceRepository) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	db := r.db.WithContext(ctx).Where("date < ?", date).Delete(&model.ActualPrice{})
	if db.Error != nil {
		return 0, db.Error
	}
	return db.RowsAffected, nil
}
