package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	featuredomain "github.com/steeplehq/steeple/internal/feature/domain"
	"github.com/steeplehq/steeple/internal/override/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	FeatureRepo featuredomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	featureRepo featuredomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("override.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		featureRepo: p.FeatureRepo,
	}
}

func (s *Service) ListOverrides(ctx context.Context, churchID snowflake.ID) map[string]bool {
	if churchID == 0 {
		return map[string]bool{}
	}

	items, err := s.repo.ListByChurchID(ctx, s.db, churchID)
	if err != nil {
		s.log.Warn("override lookup failed",
			zap.String("church_id", churchID.String()),
			zap.Error(err),
		)
		return map[string]bool{}
	}

	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item.FeatureKey] = item.Enabled
	}
	return out
}

func (s *Service) Set(ctx context.Context, req domain.SetRequest) (*domain.OverrideView, error) {
	churchID, err := snowflake.ParseString(strings.TrimSpace(req.ChurchID))
	if err != nil || churchID == 0 {
		return nil, domain.ErrInvalidChurch
	}

	key := strings.TrimSpace(req.FeatureKey)
	if key == "" {
		return nil, domain.ErrInvalidFeatureKey
	}
	known, err := s.featureRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if known == nil {
		return nil, domain.ErrUnknownFeatureKey
	}

	now := time.Now().UTC()
	record := &domain.FeatureOverride{
		ID:         s.genID.Generate(),
		ChurchID:   churchID,
		FeatureKey: key,
		Enabled:    req.Enabled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Upsert(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.log.Info("feature override set",
		zap.String("church_id", churchID.String()),
		zap.String("feature_key", key),
		zap.Bool("enabled", req.Enabled),
	)
	return &domain.OverrideView{FeatureKey: key, Enabled: req.Enabled}, nil
}

func (s *Service) Clear(ctx context.Context, churchID string, featureKey string) error {
	parsed, err := snowflake.ParseString(strings.TrimSpace(churchID))
	if err != nil || parsed == 0 {
		return domain.ErrInvalidChurch
	}
	key := strings.TrimSpace(featureKey)
	if key == "" {
		return domain.ErrInvalidFeatureKey
	}

	if err := s.repo.Delete(ctx, s.db, parsed, key); err != nil {
		return err
	}

	s.log.Info("feature override cleared",
		zap.String("church_id", parsed.String()),
		zap.String("feature_key", key),
	)
	return nil
}
