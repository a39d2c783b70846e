package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertSession(ctx context.Context, db *gorm.DB, s *CheckinSession) error
	FindSessionByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*CheckinSession, error)
	ListOpenSessions(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]CheckinSession, error)
	CloseSession(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID, at time.Time) error

	InsertCheckin(ctx context.Context, db *gorm.DB, c *Checkin) error
	FindActiveCheckin(ctx context.Context, db *gorm.DB, churchID, sessionID, personID snowflake.ID) (*Checkin, error)
	ListCheckins(ctx context.Context, db *gorm.DB, churchID, sessionID snowflake.ID) ([]Checkin, error)
	MarkCheckedOut(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
}
