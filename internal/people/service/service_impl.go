package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/churchctx"
	"github.com/steeplehq/steeple/internal/people/domain"
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
		log:   p.Log.Named("people.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreatePerson(ctx context.Context, req domain.PersonRequest) (*domain.PersonResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	p := &domain.Person{
		ID:        s.genID.Generate(),
		ChurchID:  churchID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Birthdate: req.Birthdate,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if raw := strings.TrimSpace(req.HouseholdID); raw != "" {
		householdID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		household, err := s.repo.FindHouseholdByID(ctx, s.db, churchID, householdID)
		if err != nil {
			return nil, err
		}
		if household == nil {
			return nil, domain.ErrNotFound
		}
		p.HouseholdID = &householdID
	}

	if err := s.repo.InsertPerson(ctx, s.db, p); err != nil {
		return nil, err
	}

	resp := toPersonResponse(p)
	return &resp, nil
}

func (s *Service) GetPerson(ctx context.Context, id string) (*domain.PersonResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}
	personID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	p, err := s.repo.FindPersonByID(ctx, s.db, churchID, personID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	resp := toPersonResponse(p)
	return &resp, nil
}

func (s *Service) ListPeople(ctx context.Context) ([]domain.PersonResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	people, err := s.repo.ListPeople(ctx, s.db, churchID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PersonResponse, 0, len(people))
	for i := range people {
		out = append(out, toPersonResponse(&people[i]))
	}
	return out, nil
}

func (s *Service) UpdatePerson(ctx context.Context, id string, req domain.PersonRequest) (*domain.PersonResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}
	personID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	p, err := s.repo.FindPersonByID(ctx, s.db, churchID, personID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if strings.TrimSpace(req.FirstName) != "" {
		p.FirstName = strings.TrimSpace(req.FirstName)
	}
	p.LastName = strings.TrimSpace(req.LastName)
	p.Email = strings.TrimSpace(req.Email)
	p.Phone = strings.TrimSpace(req.Phone)
	if req.Birthdate != nil {
		p.Birthdate = req.Birthdate
	}
	if req.Notes != "" {
		p.Notes = req.Notes
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdatePerson(ctx, s.db, p); err != nil {
		return nil, err
	}

	resp := toPersonResponse(p)
	return &resp, nil
}

func (s *Service) DeletePerson(ctx context.Context, id string) error {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return domain.ErrInvalidChurch
	}
	personID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}
	return s.repo.DeletePerson(ctx, s.db, churchID, personID)
}

func (s *Service) CreateHousehold(ctx context.Context, name string) (*domain.HouseholdResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	h := &domain.Household{
		ID:        s.genID.Generate(),
		ChurchID:  churchID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertHousehold(ctx, s.db, h); err != nil {
		return nil, err
	}

	return &domain.HouseholdResponse{
		ID:        h.ID.String(),
		Name:      h.Name,
		CreatedAt: h.CreatedAt,
	}, nil
}

func (s *Service) ListHouseholds(ctx context.Context) ([]domain.HouseholdResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	households, err := s.repo.ListHouseholds(ctx, s.db, churchID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.HouseholdResponse, 0, len(households))
	for _, h := range households {
		out = append(out, domain.HouseholdResponse{
			ID:        h.ID.String(),
			Name:      h.Name,
			CreatedAt: h.CreatedAt,
		})
	}
	return out, nil
}

func toPersonResponse(p *domain.Person) domain.PersonResponse {
	resp := domain.PersonResponse{
		ID:        p.ID.String(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Birthdate: p.Birthdate,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
	if p.HouseholdID != nil {
		resp.HouseholdID = p.HouseholdID.String()
	}
	return resp
}
