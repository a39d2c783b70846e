package repository

import (
	"context"

	"github.com/steeplehq/steeple/internal/plan/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) FindByCode(ctx context.Context, code string) (*domain.Plan, error) {
	var p domain.Plan
	err := r.db.WithContext(ctx).
		Raw(`SELECT code, name, created_at FROM plans WHERE code = ?`, code).
		Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.Code == "" {
		return nil, nil
	}

	var keys []string
	err = r.db.WithContext(ctx).
		Raw(`SELECT feature_key FROM plan_features WHERE plan_code = ?`, code).
		Scan(&keys).Error
	if err != nil {
		return nil, err
	}

	loaded := p.WithFeatureKeys(keys)
	return &loaded, nil
}

func (r *repo) List(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	err := r.db.WithContext(ctx).
		Raw(`SELECT code, name, created_at FROM plans ORDER BY code`).
		Scan(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repo) ListIncluding(ctx context.Context, featureKey string) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT plan_code FROM plan_features WHERE feature_key = ? ORDER BY plan_code`, featureKey).
		Scan(&codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}
