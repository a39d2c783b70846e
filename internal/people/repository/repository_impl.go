package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/people/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertPerson(ctx context.Context, db *gorm.DB, p *domain.Person) error {
	return db.WithContext(ctx).Create(p).Error
}

func (r *repo) FindPersonByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*domain.Person, error) {
	var p domain.Person
	err := db.WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) ListPeople(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]domain.Person, error) {
	var people []domain.Person
	err := db.WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("last_name, first_name").
		Find(&people).Error
	return people, err
}

func (r *repo) UpdatePerson(ctx context.Context, db *gorm.DB, p *domain.Person) error {
	return db.WithContext(ctx).Save(p).Error
}

func (r *repo) DeletePerson(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, id).
		Delete(&domain.Person{}).Error
}

func (r *repo) InsertHousehold(ctx context.Context, db *gorm.DB, h *domain.Household) error {
	return db.WithContext(ctx).Create(h).Error
}

func (r *repo) FindHouseholdByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*domain.Household, error) {
	var h domain.Household
	err := db.WithContext(ctx).
		Where("church_id = ? AND id = ?", churchID, id).
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repo) ListHouseholds(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]domain.Household, error) {
	var households []domain.Household
	err := db.WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("name").
		Find(&households).Error
	return households, err
}
