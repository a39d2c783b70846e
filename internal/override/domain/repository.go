package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListByChurchID(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]FeatureOverride, error)
	Upsert(ctx context.Context, db *gorm.DB, override *FeatureOverride) error
	Delete(ctx context.Context, db *gorm.DB, churchID snowflake.ID, featureKey string) error
}
