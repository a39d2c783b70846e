package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/church/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, church *domain.Church) error {
	return db.WithContext(ctx).Create(church).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Church, error) {
	var c domain.Church
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, support_email, campus_mode, timezone_name, settings, created_at, updated_at
		 FROM churches WHERE id = ?`,
		id,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Church, error) {
	var c domain.Church
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, support_email, campus_mode, timezone_name, settings, created_at, updated_at
		 FROM churches WHERE slug = ?`,
		slug,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, church *domain.Church) error {
	return db.WithContext(ctx).Exec(
		`UPDATE churches
		 SET name = ?, support_email = ?, campus_mode = ?, timezone_name = ?, settings = ?, updated_at = ?
		 WHERE id = ?`,
		church.Name,
		church.SupportEmail,
		church.CampusMode,
		church.TimezoneName,
		church.Settings,
		church.UpdatedAt,
		church.ID,
	).Error
}

func (r *repo) InsertMember(ctx context.Context, db *gorm.DB, member *domain.ChurchMember) error {
	return db.WithContext(ctx).Create(member).Error
}

func (r *repo) FindMember(ctx context.Context, db *gorm.DB, churchID, userID snowflake.ID) (*domain.ChurchMember, error) {
	var m domain.ChurchMember
	err := db.WithContext(ctx).Raw(
		`SELECT id, church_id, user_id, role, created_at
		 FROM church_members WHERE church_id = ? AND user_id = ?`,
		churchID,
		userID,
	).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) ListByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.Church, error) {
	var churches []domain.Church
	err := db.WithContext(ctx).Raw(
		`SELECT c.id, c.name, c.slug, c.support_email, c.campus_mode, c.timezone_name, c.settings, c.created_at, c.updated_at
		 FROM churches c
		 JOIN church_members m ON m.church_id = c.id
		 WHERE m.user_id = ?
		 ORDER BY c.created_at`,
		userID,
	).Scan(&churches).Error
	if err != nil {
		return nil, err
	}
	return churches, nil
}
