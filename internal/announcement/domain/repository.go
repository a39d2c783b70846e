package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, a *Announcement) error
	FindByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*Announcement, error)
	// List returns up to limit+1 rows newest-first, starting strictly
	// after the cursor when one is given. The extra row lets callers
	// detect another page without a count query.
	List(ctx context.Context, db *gorm.DB, churchID snowflake.ID, publishedOnly bool, afterID snowflake.ID, limit int) ([]Announcement, error)
	Update(ctx context.Context, db *gorm.DB, a *Announcement) error
	Delete(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) error
}
