package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/announcement/domain"
	"github.com/steeplehq/steeple/internal/churchctx"
	"github.com/steeplehq/steeple/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("announcement.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.Request) (*domain.Response, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.ErrInvalidTitle
	}

	now := time.Now().UTC()
	a := &domain.Announcement{
		ID:        s.genID.Generate(),
		ChurchID:  churchID,
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		Status:    domain.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, a); err != nil {
		return nil, err
	}

	resp := toResponse(a)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toResponse(a)
	return &resp, nil
}

const (
	defaultPageSize = 25
	maxPageSize     = 250
)

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	limit := req.Page.PageSize
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var afterID snowflake.ID
	if req.Page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.Page.PageToken)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		afterID, err = snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
	}

	announcements, err := s.repo.List(ctx, s.db, churchID, req.PublishedOnly, afterID, limit)
	if err != nil {
		return nil, err
	}

	hasMore := len(announcements) > limit
	if hasMore {
		announcements = announcements[:limit]
	}

	out := make([]domain.Response, 0, len(announcements))
	for i := range announcements {
		out = append(out, toResponse(&announcements[i]))
	}

	info := &pagination.PageInfo{HasMore: hasMore}
	if hasMore {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID: announcements[len(announcements)-1].ID.String(),
		})
		if err != nil {
			return nil, err
		}
		info.NextPageToken = token
	}

	return &domain.ListResponse{Items: out, PageInfo: info}, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.Request) (*domain.Response, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) != "" {
		a.Title = strings.TrimSpace(req.Title)
	}
	a.Body = req.Body
	a.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, a); err != nil {
		return nil, err
	}

	resp := toResponse(a)
	return &resp, nil
}

func (s *Service) Publish(ctx context.Context, id string) (*domain.Response, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == domain.StatusPublished {
		return nil, domain.ErrAlreadyPublished
	}

	now := time.Now().UTC()
	a.Status = domain.StatusPublished
	a.PublishedAt = &now
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, s.db, a); err != nil {
		return nil, err
	}

	s.log.Info("announcement published",
		zap.String("church_id", a.ChurchID.String()),
		zap.String("announcement_id", a.ID.String()),
	)

	resp := toResponse(a)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return domain.ErrInvalidChurch
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, churchID, parsed)
}

func (s *Service) find(ctx context.Context, id string) (*domain.Announcement, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	a, err := s.repo.FindByID(ctx, s.db, churchID, parsed)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func toResponse(a *domain.Announcement) domain.Response {
	return domain.Response{
		ID:          a.ID.String(),
		Title:       a.Title,
		Body:        a.Body,
		Status:      a.Status,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
	}
}
