package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	churchdomain "github.com/steeplehq/steeple/internal/church/domain"
	featuredomain "github.com/steeplehq/steeple/internal/feature/domain"
	plandomain "github.com/steeplehq/steeple/internal/plan/domain"
	subscriptiondomain "github.com/steeplehq/steeple/internal/subscription/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultChurchName = "Main"
	defaultChurchSlug = "main"
)

// catalog is the platform feature catalog. Keys are stable and
// dot-namespaced; descriptions are what the upgrade page shows.
var catalog = []featuredomain.Feature{
	{Key: "core.people", Description: "People and household directory"},
	{Key: "engage.groups", Description: "Small groups and rosters"},
	{Key: "engage.events", Description: "Events and calendar export"},
	{Key: "kids.checkin", Description: "Kids check-in with security codes"},
	{Key: "give.partners", Description: "Giving partner listings"},
	{Key: "reach.announcements", Description: "Announcements"},
	{Key: "reach.notifications", Description: "Member notifications"},
}

var planCatalog = map[string]struct {
	Name     string
	Features []string
}{
	"starter": {
		Name:     "Starter",
		Features: []string{"core.people", "reach.announcements"},
	},
	"growth": {
		Name: "Growth",
		Features: []string{
			"core.people", "reach.announcements",
			"engage.groups", "engage.events", "reach.notifications",
		},
	},
	"flourish": {
		Name: "Flourish",
		Features: []string{
			"core.people", "reach.announcements",
			"engage.groups", "engage.events", "reach.notifications",
			"kids.checkin", "give.partners",
		},
	},
}

// EnsurePlanCatalog seeds the feature catalog, the plans, and their
// feature membership. Reference data only; never touches tenant rows.
func EnsurePlanCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	now := time.Now().UTC()

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range catalog {
			feature := featuredomain.Feature{
				Key:         f.Key,
				Description: f.Description,
				CreatedAt:   now,
			}
			if err := tx.Where(featuredomain.Feature{Key: f.Key}).
				Attrs(feature).
				FirstOrCreate(&feature).Error; err != nil {
				return err
			}
		}

		for code, def := range planCatalog {
			plan := plandomain.Plan{Code: code, Name: def.Name, CreatedAt: now}
			if err := tx.Where(plandomain.Plan{Code: code}).
				Attrs(plan).
				FirstOrCreate(&plan).Error; err != nil {
				return err
			}
			for _, key := range def.Features {
				pf := plandomain.PlanFeature{PlanCode: code, FeatureKey: key}
				if err := tx.Where(pf).FirstOrCreate(&pf).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// EnsureDefaultChurchWithID seeds a church with a fixed ID plus its
// starter subscription. Used by local and self-hosted bootstraps where
// the church ID is pinned in the environment.
func EnsureDefaultChurchWithID(db *gorm.DB, id int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		church, err := ensureChurchTx(ctx, tx, snowflake.ID(id))
		if err != nil {
			return err
		}
		return ensureStarterSubscriptionTx(ctx, tx, node, church.ID)
	})
}

func ensureChurchTx(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*churchdomain.Church, error) {
	var church churchdomain.Church
	err := tx.WithContext(ctx).Where("slug = ?", defaultChurchSlug).First(&church).Error
	if err == nil {
		return &church, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	church = churchdomain.Church{
		ID:         id,
		Name:       defaultChurchName,
		Slug:       defaultChurchSlug,
		CampusMode: churchdomain.CampusModeSingle,
		Settings:   datatypes.JSONMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := tx.WithContext(ctx).Create(&church).Error; err != nil {
		return nil, err
	}
	return &church, nil
}

func ensureStarterSubscriptionTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, churchID snowflake.ID) error {
	var count int64
	err := tx.WithContext(ctx).
		Model(&subscriptiondomain.Subscription{}).
		Where("church_id = ? AND status = ?", churchID, subscriptiondomain.SubscriptionStatusActive).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	sub := subscriptiondomain.Subscription{
		ID:        node.Generate(),
		ChurchID:  churchID,
		PlanCode:  "starter",
		Status:    subscriptiondomain.SubscriptionStatusActive,
		StartAt:   now,
		Metadata:  datatypes.JSONMap{"seeded": true},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&sub).Error
}
