package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/steeplehq/steeple/internal/checkin/domain"
	"github.com/steeplehq/steeple/internal/churchctx"
	peopledomain "github.com/steeplehq/steeple/internal/people/domain"
	"github.com/steeplehq/steeple/internal/ratelimit"
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
	Limiter    *ratelimit.RequestLimiter `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	peopleRepo peopledomain.Repository
	limiter    *ratelimit.RequestLimiter
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("checkin.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		peopleRepo: p.PeopleRepo,
		limiter:    p.Limiter,
	}
}

func (s *Service) OpenSession(ctx context.Context, name string, eventID string) (*domain.SessionResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	session := &domain.CheckinSession{
		ID:       s.genID.Generate(),
		ChurchID: churchID,
		Name:     name,
		OpenedAt: time.Now().UTC(),
	}
	if raw := strings.TrimSpace(eventID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		session.EventID = &parsed
	}

	if err := s.repo.InsertSession(ctx, s.db, session); err != nil {
		return nil, err
	}

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *Service) ListOpenSessions(ctx context.Context) ([]domain.SessionResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	sessions, err := s.repo.ListOpenSessions(ctx, s.db, churchID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	return out, nil
}

func (s *Service) CloseSession(ctx context.Context, sessionID string) error {
	churchID, sid, err := s.scope(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.repo.CloseSession(ctx, s.db, churchID, sid, time.Now().UTC())
}

func (s *Service) CheckIn(ctx context.Context, sessionID, personID string) (*domain.CheckinResponse, error) {
	churchID, sid, err := s.scope(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	pid, err := snowflake.ParseString(strings.TrimSpace(personID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	if allowed, err := s.limiter.AllowCheckin(ctx, churchID.String()); err != nil {
		s.log.Warn("checkin rate limiter unavailable", zap.Error(err))
	} else if !allowed {
		return nil, domain.ErrRateLimited
	}

	session, err := s.repo.FindSessionByID(ctx, s.db, churchID, sid)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.ClosedAt != nil {
		return nil, domain.ErrSessionClosed
	}

	person, err := s.peopleRepo.FindPersonByID(ctx, s.db, churchID, pid)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, domain.ErrPersonNotFound
	}

	existing, err := s.repo.FindActiveCheckin(ctx, s.db, churchID, sid, pid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyCheckedIn
	}

	now := time.Now().UTC()
	record := &domain.Checkin{
		ID:           s.genID.Generate(),
		ChurchID:     churchID,
		SessionID:    sid,
		PersonID:     pid,
		SecurityCode: newSecurityCode(now),
		CheckedInAt:  now,
	}
	if err := s.repo.InsertCheckin(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.log.Info("child checked in",
		zap.String("church_id", churchID.String()),
		zap.String("session_id", sid.String()),
		zap.String("person_id", pid.String()),
	)

	resp := toCheckinResponse(record)
	return &resp, nil
}

func (s *Service) CheckOut(ctx context.Context, sessionID, personID, securityCode string) error {
	churchID, sid, err := s.scope(ctx, sessionID)
	if err != nil {
		return err
	}
	pid, err := snowflake.ParseString(strings.TrimSpace(personID))
	if err != nil {
		return domain.ErrInvalidID
	}

	record, err := s.repo.FindActiveCheckin(ctx, s.db, churchID, sid, pid)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrCheckinNotFound
	}

	presented := strings.ToUpper(strings.TrimSpace(securityCode))
	if subtle.ConstantTimeCompare([]byte(presented), []byte(record.SecurityCode)) != 1 {
		s.log.Warn("checkout code mismatch",
			zap.String("church_id", churchID.String()),
			zap.String("session_id", sid.String()),
		)
		return domain.ErrSecurityCodeWrong
	}

	return s.repo.MarkCheckedOut(ctx, s.db, record.ID, time.Now().UTC())
}

func (s *Service) ListCheckins(ctx context.Context, sessionID string) ([]domain.CheckinResponse, error) {
	churchID, sid, err := s.scope(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	checkins, err := s.repo.ListCheckins(ctx, s.db, churchID, sid)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CheckinResponse, 0, len(checkins))
	for i := range checkins {
		out = append(out, toCheckinResponse(&checkins[i]))
	}
	return out, nil
}

func (s *Service) scope(ctx context.Context, id string) (snowflake.ID, snowflake.ID, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return 0, 0, domain.ErrInvalidChurch
	}
	sid, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, 0, domain.ErrInvalidID
	}
	return churchID, sid, nil
}

// newSecurityCode returns a short pickup code. ULIDs are sortable and
// collision-free across instances; the last six characters are random
// enough for a same-session label while staying printable.
func newSecurityCode(now time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy())
	raw := id.String()
	return raw[len(raw)-6:]
}

func toSessionResponse(s *domain.CheckinSession) domain.SessionResponse {
	resp := domain.SessionResponse{
		ID:       s.ID.String(),
		Name:     s.Name,
		OpenedAt: s.OpenedAt,
		ClosedAt: s.ClosedAt,
	}
	if s.EventID != nil {
		resp.EventID = s.EventID.String()
	}
	return resp
}

func toCheckinResponse(c *domain.Checkin) domain.CheckinResponse {
	return domain.CheckinResponse{
		ID:           c.ID.String(),
		SessionID:    c.SessionID.String(),
		PersonID:     c.PersonID.String(),
		SecurityCode: c.SecurityCode,
		CheckedInAt:  c.CheckedInAt,
		CheckedOutAt: c.CheckedOutAt,
	}
}
