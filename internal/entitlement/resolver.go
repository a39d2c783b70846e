// Package entitlement merges plan membership with per-church overrides
// into the effective feature map consumed by the route guard.
package entitlement

import (
	"context"

	"github.com/bwmarrin/snowflake"
	featuredomain "github.com/steeplehq/steeple/internal/feature/domain"
	overridedomain "github.com/steeplehq/steeple/internal/override/domain"
	plandomain "github.com/steeplehq/steeple/internal/plan/domain"
	subscriptiondomain "github.com/steeplehq/steeple/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Resolver computes the effective feature map for a church.
type Resolver interface {
	Resolve(ctx context.Context, churchID snowflake.ID) (FeatureMap, error)
}

type Params struct {
	fx.In

	Log             *zap.Logger
	FeatureSvc      featuredomain.Service
	SubscriptionSvc subscriptiondomain.Service
	OverrideSvc     overridedomain.Service
}

type resolver struct {
	log             *zap.Logger
	featureSvc      featuredomain.Service
	subscriptionSvc subscriptiondomain.Service
	overrideSvc     overridedomain.Service
}

func New(p Params) Resolver {
	return &resolver{
		log:             p.Log.Named("entitlement.resolver"),
		featureSvc:      p.FeatureSvc,
		subscriptionSvc: p.SubscriptionSvc,
		overrideSvc:     p.OverrideSvc,
	}
}

// Resolve walks the catalog and computes each key's state: the baseline is
// plan membership (false with no active plan), then an override replaces
// the baseline unconditionally in either direction. Overrides for keys not
// in the catalog are ignored. The plan and override reads are independent
// and issued concurrently; both degrade to empty on store failure, so the
// merge only ever fails toward fewer enabled features.
func (r *resolver) Resolve(ctx context.Context, churchID snowflake.ID) (FeatureMap, error) {
	catalog := r.featureSvc.ListFeatures(ctx)

	var (
		activePlan *plandomain.Plan
		overrides  map[string]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := r.subscriptionSvc.ResolvePlan(gctx, churchID)
		if err != nil {
			return err
		}
		activePlan = p
		return nil
	})
	g.Go(func() error {
		overrides = r.overrideSvc.ListOverrides(gctx, churchID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(FeatureMap, len(catalog))
	for _, f := range catalog {
		state := FeatureState{Enabled: activePlan.IncludesFeature(f.Key)}
		if enabled, ok := overrides[f.Key]; ok {
			state.Enabled = enabled
			state.Overridden = true
		}
		out[f.Key] = state
	}
	return out, nil
}
