package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, church *Church) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Church, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Church, error)
	Update(ctx context.Context, db *gorm.DB, church *Church) error

	InsertMember(ctx context.Context, db *gorm.DB, member *ChurchMember) error
	FindMember(ctx context.Context, db *gorm.DB, churchID, userID snowflake.ID) (*ChurchMember, error)
	ListByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]Church, error)
}
