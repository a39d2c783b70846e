package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/override/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListByChurchID(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]domain.FeatureOverride, error) {
	var items []domain.FeatureOverride
	err := db.WithContext(ctx).Raw(
		`SELECT id, church_id, feature_key, enabled, created_at, updated_at
		 FROM feature_overrides WHERE church_id = ?`,
		churchID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, override *domain.FeatureOverride) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "church_id"}, {Name: "feature_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(override).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, churchID snowflake.ID, featureKey string) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM feature_overrides WHERE church_id = ? AND feature_key = ?`,
		churchID,
		featureKey,
	).Error
}
