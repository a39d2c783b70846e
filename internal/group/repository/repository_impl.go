package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/group/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, g *domain.Group) error {
	return db.WithContext(ctx).Create(g).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*domain.Group, error) {
	var g domain.Group
	err := db.WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, id).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]domain.Group, error) {
	var groups []domain.Group
	err := db.WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("name").
		Find(&groups).Error
	return groups, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, g *domain.Group) error {
	return db.WithContext(ctx).Save(g).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("church_id = ? AND group_id = ?", churchID, id).
			Delete(&domain.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Where("church_id = ? AND id = ?", churchID, id).
			Delete(&domain.Group{}).Error
	})
}

func (r *repo) InsertMember(ctx context.Context, db *gorm.DB, m *domain.GroupMember) error {
	return db.WithContext(ctx).Create(m).Error
}

func (r *repo) ListMembers(ctx context.Context, db *gorm.DB, churchID, groupID snowflake.ID) ([]domain.GroupMember, error) {
	var members []domain.GroupMember
	err := db.WithContext(ctx).
		Where("church_id = ? AND group_id = ?", churchID, groupID).
		Order("created_at").
		Find(&members).Error
	return members, err
}

func (r *repo) RemoveMember(ctx context.Context, db *gorm.DB, churchID, groupID, personID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("church_id = ? AND group_id = ? AND person_id = ?", churchID, groupID, personID).
		Delete(&domain.GroupMember{}).Error
}
