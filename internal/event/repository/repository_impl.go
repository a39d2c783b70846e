package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/event/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, e *domain.Event) error {
	return db.WithContext(ctx).Create(e).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*domain.Event, error) {
	var e domain.Event
	err := db.WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, id).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, churchID snowflake.ID, from, to *time.Time) ([]domain.Event, error) {
	q := db.WithContext(ctx).Where("church_id = ?", churchID)
	if from != nil {
		q = q.Where("starts_at >= ?", from)
	}
	if to != nil {
		q = q.Where("starts_at < ?", to)
	}

	var events []domain.Event
	err := q.Order("starts_at").Find(&events).Error
	return events, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, e *domain.Event) error {
	return db.WithContext(ctx).Save(e).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, id).
		Delete(&domain.Event{}).Error
}
