package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/churchctx"
	"github.com/steeplehq/steeple/internal/group/domain"
	peopledomain "github.com/steeplehq/steeple/internal/people/domain"
	"github.com/steeplehq/steeple/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	PeopleRepo peopledomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	peopleRepo peopledomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("group.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		peopleRepo: p.PeopleRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.GroupRequest) (*domain.GroupResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	g := &domain.Group{
		ID:          s.genID.Generate(),
		ChurchID:    churchID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		MeetingDay:  strings.TrimSpace(req.MeetingDay),
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, g); err != nil {
		return nil, err
	}

	resp := toResponse(g)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.GroupResponse, error) {
	churchID, groupID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	g, err := s.repo.FindByID(ctx, s.db, churchID, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(g)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.GroupResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	groups, err := s.repo.List(ctx, s.db, churchID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, toResponse(&groups[i]))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.GroupRequest) (*domain.GroupResponse, error) {
	churchID, groupID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	g, err := s.repo.FindByID(ctx, s.db, churchID, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}

	if strings.TrimSpace(req.Name) != "" {
		g.Name = strings.TrimSpace(req.Name)
	}
	g.Description = strings.TrimSpace(req.Description)
	g.MeetingDay = strings.TrimSpace(req.MeetingDay)
	if req.Tags != nil {
		g.Tags = req.Tags
	}
	g.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, g); err != nil {
		return nil, err
	}

	resp := toResponse(g)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	churchID, groupID, err := s.scope(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, churchID, groupID)
}

func (s *Service) AddMember(ctx context.Context, groupID, personID, role string) error {
	churchID, gid, err := s.scope(ctx, groupID)
	if err != nil {
		return err
	}
	pid, err := snowflake.ParseString(strings.TrimSpace(personID))
	if err != nil {
		return domain.ErrInvalidID
	}

	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case "":
		role = domain.MemberRoleMember
	case domain.MemberRoleLeader, domain.MemberRoleMember:
	default:
		return domain.ErrInvalidRole
	}

	g, err := s.repo.FindByID(ctx, s.db, churchID, gid)
	if err != nil {
		return err
	}
	if g == nil {
		return domain.ErrNotFound
	}

	person, err := s.peopleRepo.FindPersonByID(ctx, s.db, churchID, pid)
	if err != nil {
		return err
	}
	if person == nil {
		return domain.ErrPersonNotFound
	}

	member := &domain.GroupMember{
		ID:        s.genID.Generate(),
		ChurchID:  churchID,
		GroupID:   gid,
		PersonID:  pid,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertMember(ctx, s.db, member); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (s *Service) ListMembers(ctx context.Context, groupID string) ([]domain.MemberResponse, error) {
	churchID, gid, err := s.scope(ctx, groupID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, s.db, churchID, gid)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, domain.MemberResponse{
			PersonID: m.PersonID.String(),
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func (s *Service) RemoveMember(ctx context.Context, groupID, personID string) error {
	churchID, gid, err := s.scope(ctx, groupID)
	if err != nil {
		return err
	}
	pid, err := snowflake.ParseString(strings.TrimSpace(personID))
	if err != nil {
		return domain.ErrInvalidID
	}
	return s.repo.RemoveMember(ctx, s.db, churchID, gid, pid)
}

func (s *Service) scope(ctx context.Context, id string) (snowflake.ID, snowflake.ID, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return 0, 0, domain.ErrInvalidChurch
	}
	groupID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, 0, domain.ErrInvalidID
	}
	return churchID, groupID, nil
}

func toResponse(g *domain.Group) domain.GroupResponse {
	return domain.GroupResponse{
		ID:          g.ID.String(),
		Name:        g.Name,
		Description: g.Description,
		MeetingDay:  g.MeetingDay,
		Tags:        g.Tags,
		CreatedAt:   g.CreatedAt,
	}
}
