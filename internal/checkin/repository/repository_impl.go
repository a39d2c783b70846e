package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/checkin/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertSession(ctx context.Context, db *gorm.DB, s *domain.CheckinSession) error {
	return db.WithContext(ctx).Create(s).Error
}

func (r *repo) FindSessionByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*domain.CheckinSession, error) {
	var s domain.CheckinSession
	err := db.WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, id).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) ListOpenSessions(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]domain.CheckinSession, error) {
	var sessions []domain.CheckinSession
	err := db.WithContext(ctx).
		Where("church_id = ? AND closed_at IS NULL", churchID).
		Order("opened_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *repo) CloseSession(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID, at time.Time) error {
	tx := db.WithContext(ctx).
		Model(&domain.CheckinSession{}).
		Where("church_id = ? AND id = ? AND closed_at IS NULL", churchID, id).
		Update("closed_at", at)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *repo) InsertCheckin(ctx context.Context, db *gorm.DB, c *domain.Checkin) error {
	return db.WithContext(ctx).Create(c).Error
}

func (r *repo) FindActiveCheckin(ctx context.Context, db *gorm.DB, churchID, sessionID, personID snowflake.ID) (*domain.Checkin, error) {
	var c domain.Checkin
	err := db.WithContext(ctx).
		Where("church_id = ? AND session_id = ? AND person_id = ? AND checked_out_at IS NULL",
			churchID, sessionID, personID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) ListCheckins(ctx context.Context, db *gorm.DB, churchID, sessionID snowflake.ID) ([]domain.Checkin, error) {
	var checkins []domain.Checkin
	err := db.WithContext(ctx).
		Where("church_id = ? AND session_id = ?", churchID, sessionID).
		Order("checked_in_at").
		Find(&checkins).Error
	return checkins, err
}

func (r *repo) MarkCheckedOut(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error {
	tx := db.WithContext(ctx).
		Model(&domain.Checkin{}).
		Where("id = ? AND checked_out_at IS NULL", id).
		Update("checked_out_at", at)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrCheckinNotFound
	}
	return nil
}
