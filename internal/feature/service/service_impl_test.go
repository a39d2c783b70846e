package service

import (
	"context"
	"errors"
	"testing"

	"github.com/steeplehq/steeple/internal/feature/domain"
	"github.com/steeplehq/steeple/internal/feature/repository"
	"github.com/steeplehq/steeple/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupFeatureService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Feature{}))

	seed := []domain.Feature{
		{Key: "reach.announcements", Description: "Congregation-wide announcements"},
		{Key: "core.people", Description: "People and household directory"},
		{Key: "engage.groups", Description: "Small groups"},
	}
	require.NoError(t, conn.Create(&seed).Error)

	svc := New(Params{Log: zap.NewNop(), Repo: repository.Provide(conn)})
	return svc, conn
}

func TestListFeaturesSortedByKey(t *testing.T) {
	svc, _ := setupFeatureService(t)

	items := svc.ListFeatures(context.Background())
	require.Len(t, items, 3)
	assert.Equal(t, "core.people", items[0].Key)
	assert.Equal(t, "engage.groups", items[1].Key)
	assert.Equal(t, "reach.announcements", items[2].Key)
}

func TestListFeaturesDegradesToEmptyCatalog(t *testing.T) {
	svc, conn := setupFeatureService(t)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	items := svc.ListFeatures(context.Background())
	assert.Empty(t, items)
}

func TestDescribeKnownKey(t *testing.T) {
	svc, _ := setupFeatureService(t)

	f, err := svc.Describe(context.Background(), "engage.groups")
	require.NoError(t, err)
	assert.Equal(t, "Small groups", f.Description)
}

func TestDescribeUnknownKey(t *testing.T) {
	svc, _ := setupFeatureService(t)

	_, err := svc.Describe(context.Background(), "kids.checkin")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDescribeBlankKey(t *testing.T) {
	svc, _ := setupFeatureService(t)

	_, err := svc.Describe(context.Background(), "   ")
	assert.True(t, errors.Is(err, domain.ErrInvalidKey))
}
