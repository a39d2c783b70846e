package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	featuredomain "github.com/steeplehq/steeple/internal/feature/domain"
	featurerepository "github.com/steeplehq/steeple/internal/feature/repository"
	"github.com/steeplehq/steeple/internal/override/domain"
	"github.com/steeplehq/steeple/internal/override/repository"
	"github.com/steeplehq/steeple/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupOverrideService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&featuredomain.Feature{}, &domain.FeatureOverride{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, key := range []string{"core.people", "kids.checkin", "engage.groups"} {
		if err := conn.Create(&featuredomain.Feature{Key: key, Description: key}).Error; err != nil {
			t.Fatalf("seed feature %s: %v", key, err)
		}
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := New(Params{
		DB:          conn,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		FeatureRepo: featurerepository.Provide(conn),
	})
	return svc, conn, node
}

func TestSetUpsertsPerChurchAndKey(t *testing.T) {
	svc, conn, node := setupOverrideService(t)
	churchID := node.Generate()
	ctx := context.Background()

	if _, err := svc.Set(ctx, domain.SetRequest{ChurchID: churchID.String(), FeatureKey: "kids.checkin", Enabled: true}); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Second write to the same (church, key) replaces, never duplicates.
	if _, err := svc.Set(ctx, domain.SetRequest{ChurchID: churchID.String(), FeatureKey: "kids.checkin", Enabled: false}); err != nil {
		t.Fatalf("set again: %v", err)
	}

	overrides := svc.ListOverrides(ctx, churchID)
	enabled, ok := overrides["kids.checkin"]
	if !ok || enabled {
		t.Fatalf("overrides = %v, want kids.checkin disabled", overrides)
	}

	var count int64
	if err := conn.Model(&domain.FeatureOverride{}).
		Where("church_id = ? AND feature_key = ?", churchID, "kids.checkin").
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}
}

func TestSetRejectsUnknownFeatureKey(t *testing.T) {
	svc, _, node := setupOverrideService(t)

	_, err := svc.Set(context.Background(), domain.SetRequest{
		ChurchID:   node.Generate().String(),
		FeatureKey: "legacy.video",
		Enabled:    true,
	})
	if !errors.Is(err, domain.ErrUnknownFeatureKey) {
		t.Fatalf("expected ErrUnknownFeatureKey, got %v", err)
	}
}

func TestSetRejectsInvalidChurch(t *testing.T) {
	svc, _, _ := setupOverrideService(t)

	_, err := svc.Set(context.Background(), domain.SetRequest{
		ChurchID:   "not-a-snowflake",
		FeatureKey: "core.people",
		Enabled:    true,
	})
	if !errors.Is(err, domain.ErrInvalidChurch) {
		t.Fatalf("expected ErrInvalidChurch, got %v", err)
	}
}

func TestClearRemovesOverride(t *testing.T) {
	svc, _, node := setupOverrideService(t)
	churchID := node.Generate()
	ctx := context.Background()

	if _, err := svc.Set(ctx, domain.SetRequest{ChurchID: churchID.String(), FeatureKey: "engage.groups", Enabled: true}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := svc.Clear(ctx, churchID.String(), "engage.groups"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if overrides := svc.ListOverrides(ctx, churchID); len(overrides) != 0 {
		t.Fatalf("overrides = %v, want empty", overrides)
	}

	// Clearing a key with no override is not an error.
	if err := svc.Clear(ctx, churchID.String(), "engage.groups"); err != nil {
		t.Fatalf("clear absent: %v", err)
	}
}

func TestOverridesAreScopedPerChurch(t *testing.T) {
	svc, _, node := setupOverrideService(t)
	ctx := context.Background()
	first := node.Generate()
	second := node.Generate()

	if _, err := svc.Set(ctx, domain.SetRequest{ChurchID: first.String(), FeatureKey: "kids.checkin", Enabled: true}); err != nil {
		t.Fatalf("set: %v", err)
	}

	if overrides := svc.ListOverrides(ctx, second); len(overrides) != 0 {
		t.Fatalf("override leaked across churches: %v", overrides)
	}
}

// A broken store degrades to no overrides rather than an error; the
// resolver then fails toward fewer features.
func TestListOverridesFailsOpenToEmpty(t *testing.T) {
	svc, conn, node := setupOverrideService(t)
	churchID := node.Generate()
	ctx := context.Background()

	if _, err := svc.Set(ctx, domain.SetRequest{ChurchID: churchID.String(), FeatureKey: "kids.checkin", Enabled: true}); err != nil {
		t.Fatalf("set: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if overrides := svc.ListOverrides(ctx, churchID); len(overrides) != 0 {
		t.Fatalf("overrides = %v, want empty on store failure", overrides)
	}
}
