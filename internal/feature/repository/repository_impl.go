package repository

import (
	"context"

	"github.com/steeplehq/steeple/internal/feature/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) List(ctx context.Context) ([]domain.Feature, error) {
	var items []domain.Feature
	err := r.db.WithContext(ctx).
		Raw(`SELECT key, description, created_at FROM features ORDER BY key`).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindByKey(ctx context.Context, key string) (*domain.Feature, error) {
	var f domain.Feature
	err := r.db.WithContext(ctx).
		Raw(`SELECT key, description, created_at FROM features WHERE key = ?`, key).
		Scan(&f).Error
	if err != nil {
		return nil, err
	}
	if f.Key == "" {
		return nil, nil
	}
	return &f, nil
}
