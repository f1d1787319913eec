package repository

import (
	"context"

	"commodity-index/internal/model"

	"gorm.io/gorm"
)

type AIModelRepository interface {
	GetActive(ctx context.Context) ([]model.AIModel, error)
	FindByID(ctx context.Context, id uint) (*model.AIModel, error)
}

type aiModelRepository struct {
	db *gorm.DB
}

func NewAIModelRepository(db *gorm.DB) AIModelRepository {
	return &aiModelRepository{db: db}
}

func (r *aiModelRepository) GetActive(ctx context.Context) ([]model.AIModel, error) {
	var models []model.AIModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return models, nil
}

func (r *aiModelRepository) FindByID(ctx context.Context, id uint) (*model.AIModel, error) {
	var m model.AIModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
