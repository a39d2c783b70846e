package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/steeplehq/steeple/internal/church/domain"
	"github.com/steeplehq/steeple/internal/churchctx"
	"github.com/steeplehq/steeple/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("church.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, ownerUserID snowflake.ID, req domain.CreateChurchRequest) (*domain.ChurchResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	campusMode, err := normalizeCampusMode(req.CampusMode)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.Church{
		ID:           s.genID.Generate(),
		Name:         name,
		Slug:         slug.Make(name),
		SupportEmail: strings.TrimSpace(req.SupportEmail),
		CampusMode:   campusMode,
		TimezoneName: strings.TrimSpace(req.TimezoneName),
		Settings:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, record); err != nil {
			if db.IsDuplicateKeyErr(err) {
				// Slug collision: disambiguate with the ID tail.
				record.Slug = fmt.Sprintf("%s-%d", record.Slug, record.ID.Int64()%10000)
				if err := s.repo.Insert(ctx, tx, record); err != nil {
					return err
				}
			} else {
				return err
			}
		}

		member := &domain.ChurchMember{
			ID:        s.genID.Generate(),
			ChurchID:  record.ID,
			UserID:    ownerUserID,
			Role:      domain.RoleOwner,
			CreatedAt: now,
		}
		return s.repo.InsertMember(ctx, tx, member)
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(record)
	return &resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.ChurchResponse, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	c, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(c)
	return &resp, nil
}

func (s *Service) UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest) (*domain.ChurchResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	c, err := s.repo.FindByID(ctx, s.db, churchID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	if req.SupportEmail != nil {
		c.SupportEmail = strings.TrimSpace(*req.SupportEmail)
	}
	if req.TimezoneName != nil {
		c.TimezoneName = strings.TrimSpace(*req.TimezoneName)
	}
	if req.CampusMode != nil {
		mode, err := normalizeCampusMode(*req.CampusMode)
		if err != nil {
			return nil, err
		}
		c.CampusMode = mode
	}
	if req.Settings != nil {
		c.Settings = datatypes.JSONMap(req.Settings)
	}

	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, c); err != nil {
		return nil, err
	}

	resp := toResponse(c)
	return &resp, nil
}

func (s *Service) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.ChurchResponse, error) {
	churches, err := s.repo.ListByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ChurchResponse, 0, len(churches))
	for i := range churches {
		out = append(out, toResponse(&churches[i]))
	}
	return out, nil
}

func (s *Service) Membership(ctx context.Context, churchID, userID snowflake.ID) (*domain.ChurchMember, error) {
	if churchID == 0 || userID == 0 {
		return nil, nil
	}
	return s.repo.FindMember(ctx, s.db, churchID, userID)
}

func toResponse(c *domain.Church) domain.ChurchResponse {
	return domain.ChurchResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Slug:         c.Slug,
		SupportEmail: c.SupportEmail,
		CampusMode:   c.CampusMode,
		TimezoneName: c.TimezoneName,
		CreatedAt:    c.CreatedAt,
	}
}

func normalizeCampusMode(value string) (domain.CampusMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(domain.CampusModeSingle):
		return domain.CampusModeSingle, nil
	case string(domain.CampusModeMulti):
		return domain.CampusModeMulti, nil
	default:
		return "", domain.ErrInvalidCampusMode
	}
}
