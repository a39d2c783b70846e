package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, e *Event) error
	FindByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*Event, error)
	List(ctx context.Context, db *gorm.DB, churchID snowflake.ID, from, to *time.Time) ([]Event, error)
	Update(ctx context.Context, db *gorm.DB, e *Event) error
	Delete(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) error
}
