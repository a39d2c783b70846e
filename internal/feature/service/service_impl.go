package service

import (
	"context"
	"strings"

	"github.com/steeplehq/steeple/internal/feature/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:  p.Log.Named("feature.service"),
		repo: p.Repo,
	}
}

// ListFeatures returns the catalog sorted by key. A store failure is
// logged and surfaced as an empty catalog, never as an error to callers.
func (s *Service) ListFeatures(ctx context.Context) []domain.Feature {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn("feature catalog unavailable", zap.Error(err))
		return []domain.Feature{}
	}
	return items
}

func (s *Service) Describe(ctx context.Context, key string) (*domain.Feature, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.ErrInvalidKey
	}

	f, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}
