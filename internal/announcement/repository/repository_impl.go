package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/announcement/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, a *domain.Announcement) error {
	return db.WithContext(ctx).Create(a).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*domain.Announcement, error) {
	var a domain.Announcement
	err := db.WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, id).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, churchID snowflake.ID, publishedOnly bool, afterID snowflake.ID, limit int) ([]domain.Announcement, error) {
	q := db.WithContext(ctx).Where("church_id = ?", churchID)
	if publishedOnly {
		q = q.Where("status = ?", domain.StatusPublished)
	}
	if afterID != 0 {
		// Snowflake ids are time-ordered, so id keyset gives stable
		// newest-first pages.
		q = q.Where("id < ?", afterID)
	}
	if limit > 0 {
		q = q.Limit(limit + 1)
	}

	var announcements []domain.Announcement
	err := q.Order("id DESC").Find(&announcements).Error
	return announcements, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, a *domain.Announcement) error {
	return db.WithContext(ctx).Save(a).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, id).
		Delete(&domain.Announcement{}).Error
}
