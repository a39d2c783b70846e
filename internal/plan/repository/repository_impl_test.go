package repository

import (
	"context"
	"testing"

	"github.com/steeplehq/steeple/internal/plan/domain"
	"github.com/steeplehq/steeple/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPlanRepo(t *testing.T) (domain.Repository, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Plan{}, &domain.PlanFeature{}))

	plans := []domain.Plan{
		{Code: "starter", Name: "Starter"},
		{Code: "growth", Name: "Growth"},
		{Code: "flourish", Name: "Flourish"},
	}
	require.NoError(t, conn.Create(&plans).Error)

	memberships := []domain.PlanFeature{
		{PlanCode: "starter", FeatureKey: "core.people"},
		{PlanCode: "starter", FeatureKey: "reach.announcements"},
		{PlanCode: "growth", FeatureKey: "core.people"},
		{PlanCode: "growth", FeatureKey: "reach.announcements"},
		{PlanCode: "growth", FeatureKey: "engage.groups"},
		{PlanCode: "growth", FeatureKey: "engage.events"},
		{PlanCode: "growth", FeatureKey: "reach.notifications"},
		{PlanCode: "flourish", FeatureKey: "core.people"},
		{PlanCode: "flourish", FeatureKey: "reach.announcements"},
		{PlanCode: "flourish", FeatureKey: "engage.groups"},
		{PlanCode: "flourish", FeatureKey: "engage.events"},
		{PlanCode: "flourish", FeatureKey: "reach.notifications"},
		{PlanCode: "flourish", FeatureKey: "kids.checkin"},
		{PlanCode: "flourish", FeatureKey: "give.partners"},
	}
	require.NoError(t, conn.Create(&memberships).Error)

	return Provide(conn), conn
}

func TestFindByCodeLoadsMembership(t *testing.T) {
	repo, _ := setupPlanRepo(t)

	p, err := repo.FindByCode(context.Background(), "growth")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Growth", p.Name)
	assert.True(t, p.IncludesFeature("engage.groups"))
	assert.True(t, p.IncludesFeature("reach.notifications"))
	assert.False(t, p.IncludesFeature("kids.checkin"))
	assert.False(t, p.IncludesFeature("give.partners"))
}

func TestFindByCodeUnknownPlan(t *testing.T) {
	repo, _ := setupPlanRepo(t)

	p, err := repo.FindByCode(context.Background(), "enterprise")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestListOrdersByCode(t *testing.T) {
	repo, _ := setupPlanRepo(t)

	plans, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "flourish", plans[0].Code)
	assert.Equal(t, "growth", plans[1].Code)
	assert.Equal(t, "starter", plans[2].Code)
}

func TestListIncludingFeature(t *testing.T) {
	repo, _ := setupPlanRepo(t)

	codes, err := repo.ListIncluding(context.Background(), "engage.groups")
	require.NoError(t, err)
	assert.Equal(t, []string{"flourish", "growth"}, codes)

	codes, err = repo.ListIncluding(context.Background(), "give.partners")
	require.NoError(t, err)
	assert.Equal(t, []string{"flourish"}, codes)

	codes, err = repo.ListIncluding(context.Background(), "unknown.key")
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestIncludesFeatureNilPlan(t *testing.T) {
	var p *domain.Plan
	assert.False(t, p.IncludesFeature("core.people"))
}
