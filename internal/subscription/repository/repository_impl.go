package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, subscription *domain.Subscription) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (
			id, church_id, plan_code, status, start_at, ended_at, metadata, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		subscription.ID,
		subscription.ChurchID,
		subscription.PlanCode,
		subscription.Status,
		subscription.StartAt,
		subscription.EndedAt,
		subscription.Metadata,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	).Error
}

func (r *repo) FindActiveByChurchID(ctx context.Context, db *gorm.DB, churchID snowflake.ID) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, church_id, plan_code, status, start_at, ended_at, metadata, created_at, updated_at
		 FROM subscriptions WHERE church_id = ? AND status = ?`,
		churchID,
		domain.SubscriptionStatusActive,
	).Scan(&sub).Error
	if err != nil {
		return nil, err
	}
	if sub.ID == 0 {
		return nil, nil
	}
	return &sub, nil
}

func (r *repo) ListByChurchID(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]domain.Subscription, error) {
	var items []domain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, church_id, plan_code, status, start_at, ended_at, metadata, created_at, updated_at
		 FROM subscriptions WHERE church_id = ? ORDER BY created_at DESC`,
		churchID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) MarkSuperseded(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	now := time.Now().UTC()
	return db.WithContext(ctx).Exec(
		`UPDATE subscriptions SET status = ?, ended_at = ?, updated_at = ? WHERE id = ?`,
		domain.SubscriptionStatusSuperseded,
		now,
		now,
		id,
	).Error
}
