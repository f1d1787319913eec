package repository

import (
	"context"
	"time"

	"commodity-index/internal/model"
	"commodity-index/pkg/utils"

	"gorm.io/gorm"
)

type CompositeIndexRepository interface {
	Create(ctx context.Context, snapshot *model.CompositeIndexSnapshot, opts ...utils.DBOption) error
	GetLatest(ctx context.Context) (*model.CompositeIndexSnapshot, error)
	GetHistory(ctx context.Context, since time.Time) ([]model.CompositeIndexSnapshot, error)
}

type compositeIndexRepository struct {
	db *gorm.DB
}

func NewCompositeIndexRepository(db *gorm.DB) CompositeIndexRepository {
	return &compositeIndexRepository{db: db}
}

func (r *compositeIndexRepository) Create(ctx context.Context, snapshot *model.CompositeIndexSnapshot, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(snapshot).Error
}

func (r *compositeIndexRepository) GetLatest(ctx context.Context) (*model.CompositeIndexSnapshot, error) {
	var snapshot model.CompositeIndexSnapshot
	err := r.db.WithContext(ctx).Order("date DESC").First(&snapshot).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

func (r *compositeIndexRepository) GetHistory(ctx context.Context, since time.Time) ([]model.CompositeIndexSnapshot, error) {
	var snapshots []model.CompositeIndexSnapshot
	err := r.db.WithContext(ctx).
		Where("date >= ?", since).
		Order("date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
