package entitlement

import (
	"context"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	featuredomain "github.com/steeplehq/steeple/internal/feature/domain"
	overridedomain "github.com/steeplehq/steeple/internal/override/domain"
	plandomain "github.com/steeplehq/steeple/internal/plan/domain"
	subscriptiondomain "github.com/steeplehq/steeple/internal/subscription/domain"
	"go.uber.org/zap"
)

var catalogKeys = []string{
	"core.people",
	"engage.groups",
	"engage.events",
	"kids.checkin",
	"give.partners",
	"reach.announcements",
	"reach.notifications",
}

type featureStub struct {
	keys []string
}

func (f *featureStub) ListFeatures(ctx context.Context) []featuredomain.Feature {
	out := make([]featuredomain.Feature, 0, len(f.keys))
	for _, k := range f.keys {
		out = append(out, featuredomain.Feature{Key: k})
	}
	return out
}

func (f *featureStub) Describe(ctx context.Context, key string) (*featuredomain.Feature, error) {
	for _, k := range f.keys {
		if k == key {
			return &featuredomain.Feature{Key: k}, nil
		}
	}
	return nil, featuredomain.ErrNotFound
}

type subscriptionStub struct {
	mu   sync.Mutex
	plan *plandomain.Plan
	err  error
}

func (s *subscriptionStub) ResolvePlan(ctx context.Context, churchID snowflake.ID) (*plandomain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.plan, nil
}

func (s *subscriptionStub) setPlan(p *plandomain.Plan) {
	s.mu.Lock()
	s.plan = p
	s.mu.Unlock()
}

func (s *subscriptionStub) CreateInitial(ctx context.Context, churchID snowflake.ID, planCode string) (*subscriptiondomain.Subscription, error) {
	return nil, nil
}

func (s *subscriptionStub) ChangePlan(ctx context.Context, req subscriptiondomain.ChangePlanRequest) (*subscriptiondomain.SubscriptionResponse, error) {
	return nil, nil
}

func (s *subscriptionStub) Current(ctx context.Context) (*subscriptiondomain.SubscriptionResponse, error) {
	return nil, nil
}

type overrideStub struct {
	overrides map[string]bool
}

func (o *overrideStub) ListOverrides(ctx context.Context, churchID snowflake.ID) map[string]bool {
	if o.overrides == nil {
		return map[string]bool{}
	}
	return o.overrides
}

func (o *overrideStub) Set(ctx context.Context, req overridedomain.SetRequest) (*overridedomain.OverrideView, error) {
	return nil, nil
}

func (o *overrideStub) Clear(ctx context.Context, churchID string, featureKey string) error {
	return nil
}

func planWithKeys(code string, keys ...string) *plandomain.Plan {
	p := plandomain.Plan{Code: code}.WithFeatureKeys(keys)
	return &p
}

func newTestResolver(subs *subscriptionStub, ovr *overrideStub) Resolver {
	return New(Params{
		Log:             zap.NewNop(),
		FeatureSvc:      &featureStub{keys: catalogKeys},
		SubscriptionSvc: subs,
		OverrideSvc:     ovr,
	})
}

func TestResolveBaselineFollowsPlanMembership(t *testing.T) {
	growth := planWithKeys("growth",
		"core.people", "engage.groups", "engage.events", "reach.announcements", "reach.notifications")
	r := newTestResolver(&subscriptionStub{plan: growth}, &overrideStub{})

	fm, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(fm) != len(catalogKeys) {
		t.Fatalf("expected %d keys, got %d", len(catalogKeys), len(fm))
	}

	if !fm.Has("engage.groups") {
		t.Fatal("engage.groups should be enabled on growth")
	}
	if fm.Has("kids.checkin") {
		t.Fatal("kids.checkin should be disabled on growth")
	}
	for key, state := range fm {
		if state.Overridden {
			t.Fatalf("%s marked overridden without an override", key)
		}
	}
}

func TestResolveOverrideGrantsBeyondPlan(t *testing.T) {
	starter := planWithKeys("starter", "core.people", "reach.announcements")
	r := newTestResolver(
		&subscriptionStub{plan: starter},
		&overrideStub{overrides: map[string]bool{"kids.checkin": true}},
	)

	fm, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	state := fm["kids.checkin"]
	if !state.Enabled || !state.Overridden {
		t.Fatalf("expected enabled override, got %+v", state)
	}
	// The rest of the plan is untouched by the override.
	if !fm.Has("core.people") {
		t.Fatal("core.people lost its plan grant")
	}
}

func TestResolveOverrideRevokesPlanFeature(t *testing.T) {
	flourish := planWithKeys("flourish", catalogKeys...)
	r := newTestResolver(
		&subscriptionStub{plan: flourish},
		&overrideStub{overrides: map[string]bool{"engage.groups": false}},
	)

	fm, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	state := fm["engage.groups"]
	if state.Enabled || !state.Overridden {
		t.Fatalf("expected disabled override, got %+v", state)
	}
}

func TestResolveIgnoresOverrideForRetiredKey(t *testing.T) {
	starter := planWithKeys("starter", "core.people")
	r := newTestResolver(
		&subscriptionStub{plan: starter},
		&overrideStub{overrides: map[string]bool{"legacy.video": true}},
	)

	fm, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := fm["legacy.video"]; ok {
		t.Fatal("key outside catalog leaked into the feature map")
	}
	if fm.Has("legacy.video") {
		t.Fatal("retired key resolved enabled")
	}
}

func TestResolveWithoutActiveSubscription(t *testing.T) {
	r := newTestResolver(
		&subscriptionStub{plan: nil},
		&overrideStub{overrides: map[string]bool{"core.people": true}},
	)

	fm, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !fm.Has("core.people") {
		t.Fatal("override should grant without a plan")
	}
	for _, key := range catalogKeys[1:] {
		if fm.Has(key) {
			t.Fatalf("%s enabled with no plan and no override", key)
		}
	}
}

// A degraded store shows up as a nil plan and empty overrides, and the
// merge must only ever lose features, never gain them.
func TestResolveDegradedStoresFailClosed(t *testing.T) {
	r := newTestResolver(&subscriptionStub{plan: nil}, &overrideStub{})

	fm, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, key := range catalogKeys {
		if fm.Has(key) {
			t.Fatalf("%s enabled while every store is degraded", key)
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	growth := planWithKeys("growth", "core.people", "engage.groups", "engage.events")
	r := newTestResolver(
		&subscriptionStub{plan: growth},
		&overrideStub{overrides: map[string]bool{"engage.events": false}},
	)

	first, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("key sets differ: %d vs %d", len(first), len(second))
	}
	for key, state := range first {
		if second[key] != state {
			t.Fatalf("%s changed between identical resolves: %+v vs %+v", key, state, second[key])
		}
	}
}

// A plan change is visible on the very next resolve since nothing caches
// the merge result.
func TestResolveSeesPlanChangeImmediately(t *testing.T) {
	subs := &subscriptionStub{plan: planWithKeys("starter", "core.people")}
	r := newTestResolver(subs, &overrideStub{})

	before, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if before.Has("kids.checkin") {
		t.Fatal("kids.checkin enabled on starter")
	}

	subs.setPlan(planWithKeys("flourish", catalogKeys...))

	after, err := r.Resolve(context.Background(), 42)
	if err != nil {
		t.Fatalf("resolve after change: %v", err)
	}
	if !after.Has("kids.checkin") {
		t.Fatal("kids.checkin still disabled after moving to flourish")
	}
}

func TestFeatureMapHasUnknownKey(t *testing.T) {
	fm := FeatureMap{"core.people": {Enabled: true}}
	if fm.Has("core.peoples") {
		t.Fatal("misspelled key resolved enabled")
	}
	if !fm.Has("core.people") {
		t.Fatal("known enabled key resolved disabled")
	}
}
