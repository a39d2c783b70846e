package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, subscription *Subscription) error
	FindActiveByChurchID(ctx context.Context, db *gorm.DB, churchID snowflake.ID) (*Subscription, error)
	ListByChurchID(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]Subscription, error)
	// MarkSuperseded ends the subscription without deleting it; history is
	// kept for auditing plan changes.
	MarkSuperseded(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
