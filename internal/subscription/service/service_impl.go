package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/churchctx"
	plandomain "github.com/steeplehq/steeple/internal/plan/domain"
	"github.com/steeplehq/steeple/internal/subscription/domain"
	"github.com/steeplehq/steeple/pkg/rls"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	PlanRepo plandomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	planRepo plandomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("subscription.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		planRepo: p.PlanRepo,
	}
}

func (s *Service) ResolvePlan(ctx context.Context, churchID snowflake.ID) (*plandomain.Plan, error) {
	if churchID == 0 {
		return nil, nil
	}

	sub, err := s.repo.FindActiveByChurchID(ctx, s.db, churchID)
	if err != nil {
		// Availability failures degrade to "no plan": entitlement must
		// fail toward fewer features, never surface the store error.
		s.log.Warn("active subscription lookup failed",
			zap.String("church_id", churchID.String()),
			zap.Error(err),
		)
		return nil, nil
	}
	if sub == nil {
		return nil, nil
	}

	p, err := s.planRepo.FindByCode(ctx, sub.PlanCode)
	if err != nil {
		s.log.Warn("plan lookup failed",
			zap.String("plan_code", sub.PlanCode),
			zap.Error(err),
		)
		return nil, nil
	}
	return p, nil
}

func (s *Service) CreateInitial(ctx context.Context, churchID snowflake.ID, planCode string) (*domain.Subscription, error) {
	if churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}
	planCode = strings.TrimSpace(planCode)
	if planCode == "" {
		return nil, domain.ErrInvalidPlan
	}

	p, err := s.planRepo.FindByCode(ctx, planCode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrInvalidPlan
	}

	now := time.Now().UTC()
	record := &domain.Subscription{
		ID:        s.genID.Generate(),
		ChurchID:  churchID,
		PlanCode:  planCode,
		Status:    domain.SubscriptionStatusActive,
		StartAt:   now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) ChangePlan(ctx context.Context, req domain.ChangePlanRequest) (*domain.SubscriptionResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	planCode := strings.TrimSpace(req.PlanCode)
	if planCode == "" {
		return nil, domain.ErrInvalidPlan
	}
	p, err := s.planRepo.FindByCode(ctx, planCode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrInvalidPlan
	}

	var created *domain.Subscription
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.WithChurch(tx, churchID.Int64()); err != nil {
			return err
		}
		current, err := s.repo.FindActiveByChurchID(ctx, tx, churchID)
		if err != nil {
			return err
		}
		if current != nil {
			if current.PlanCode == planCode {
				return domain.ErrPlanUnchanged
			}
			if err := s.repo.MarkSuperseded(ctx, tx, current.ID); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		created = &domain.Subscription{
			ID:        s.genID.Generate(),
			ChurchID:  churchID,
			PlanCode:  planCode,
			Status:    domain.SubscriptionStatusActive,
			StartAt:   now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.repo.Insert(ctx, tx, created)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("plan changed",
		zap.String("church_id", churchID.String()),
		zap.String("plan_code", planCode),
	)
	resp := toResponse(created)
	return &resp, nil
}

func (s *Service) Current(ctx context.Context) (*domain.SubscriptionResponse, error) {
	churchID, ok := churchctx.ChurchIDFromContext(ctx)
	if !ok || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	sub, err := s.repo.FindActiveByChurchID(ctx, s.db, churchID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrSubscriptionNotFound
	}

	resp := toResponse(sub)
	return &resp, nil
}

func toResponse(sub *domain.Subscription) domain.SubscriptionResponse {
	return domain.SubscriptionResponse{
		ID:       sub.ID.String(),
		ChurchID: sub.ChurchID.String(),
		PlanCode: sub.PlanCode,
		Status:   sub.Status,
		StartAt:  sub.StartAt,
		EndedAt:  sub.EndedAt,
	}
}
