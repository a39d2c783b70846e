package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, g *Group) error
	FindByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*Group, error)
	List(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]Group, error)
	Update(ctx context.Context, db *gorm.DB, g *Group) error
	Delete(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) error

	InsertMember(ctx context.Context, db *gorm.DB, m *GroupMember) error
	ListMembers(ctx context.Context, db *gorm.DB, churchID, groupID snowflake.ID) ([]GroupMember, error)
	RemoveMember(ctx context.Context, db *gorm.DB, churchID, groupID, personID snowflake.ID) error
}
