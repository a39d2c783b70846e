package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/churchctx"
	"github.com/steeplehq/steeple/internal/event/domain"
	"github.com/steeplehq/steeple/internal/event/ics"
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
		log:   p.Log.Named("event.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.EventRequest) (*domain.EventResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.ErrInvalidTitle
	}
	if req.StartsAt.IsZero() {
		return nil, domain.ErrInvalidTime
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, domain.ErrInvalidTime
	}

	now := time.Now().UTC()
	e := &domain.Event{
		ID:          s.genID.Generate(),
		ChurchID:    churchID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		StartsAt:    req.StartsAt.UTC(),
		EndsAt:      req.EndsAt,
		AllDay:      req.AllDay,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, e); err != nil {
		return nil, err
	}

	resp := toResponse(e)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.EventResponse, error) {
	churchID, eventID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, s.db, churchID, eventID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(e)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, from, to *time.Time) ([]domain.EventResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	events, err := s.repo.List(ctx, s.db, churchID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]domain.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toResponse(&events[i]))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.EventRequest) (*domain.EventResponse, error) {
	churchID, eventID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, s.db, churchID, eventID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}

	if strings.TrimSpace(req.Title) != "" {
		e.Title = strings.TrimSpace(req.Title)
	}
	e.Description = strings.TrimSpace(req.Description)
	e.Location = strings.TrimSpace(req.Location)
	if !req.StartsAt.IsZero() {
		e.StartsAt = req.StartsAt.UTC()
	}
	if req.EndsAt != nil {
		if req.EndsAt.Before(e.StartsAt) {
			return nil, domain.ErrInvalidTime
		}
		e.EndsAt = req.EndsAt
	}
	e.AllDay = req.AllDay
	if req.Tags != nil {
		e.Tags = req.Tags
	}
	e.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, e); err != nil {
		return nil, err
	}

	resp := toResponse(e)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	churchID, eventID, err := s.scope(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, churchID, eventID)
}

func (s *Service) ExportICS(ctx context.Context, from, to *time.Time) ([]byte, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	events, err := s.repo.List(ctx, s.db, churchID, from, to)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	icsEvents := make([]ics.Event, 0, len(events))
	for _, e := range events {
		icsEvents = append(icsEvents, ics.Event{
			UID:         ics.UIDFor(e.ID.String()),
			Summary:     e.Title,
			Description: e.Description,
			Location:    e.Location,
			Start:       e.StartsAt,
			End:         e.EndsAt,
			AllDay:      e.AllDay,
			Stamp:       now,
		})
	}

	return ics.Encode("Church Calendar", icsEvents), nil
}

func (s *Service) scope(ctx context.Context, id string) (snowflake.ID, snowflake.ID, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return 0, 0, domain.ErrInvalidChurch
	}
	eventID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, 0, domain.ErrInvalidID
	}
	return churchID, eventID, nil
}

func toResponse(e *domain.Event) domain.EventResponse {
	return domain.EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		AllDay:      e.AllDay,
		Tags:        e.Tags,
		CreatedAt:   e.CreatedAt,
	}
}
