package repository

import (
	"context"

	"commodity-index/internal/model"

	"gorm.io/gorm"
)

type CommodityRepository interface {
	GetActive(ctx context.Context) ([]model.Commodity, error)
	FindByID(ctx context.Context, id uint) (*model.Commodity, error)
}

type commodityRepository struct {
	db *gorm.DB
}

func NewCommodityRepository(db *gorm.DB) CommodityRepository {
	return &commodityRepository{db: db}
}

func (r *commodityRepository) GetActive(ctx context.Context) ([]model.Commodity, error) {
	var commodities []model.Commodity
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&commodities).Error
	if err != nil {
		return nil, err
	}
	return commodities, nil
}

func (r *commodityRepository) FindByID(ctx context.Context, id uint) (*model.Commodity, error) {
	var c model.Commodity
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
