package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/steeplehq/steeple/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectChurchSettings = "church_settings"
	ObjectSubscription   = "subscription"
	ObjectOverride       = "feature_override"
	ObjectPerson         = "person"
	ObjectGroup          = "group"
	ObjectEvent          = "event"
	ObjectCheckin        = "checkin"
	ObjectAnnouncement   = "announcement"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"

	ActionSettingsUpdate     = "settings.update"
	ActionSubscriptionChange = "subscription.change"
	ActionOverrideWrite      = "override.write"
	ActionCheckinOperate     = "checkin.operate"
	ActionAnnouncementSend   = "announcement.send"
)

// PlatformDomain is the casbin domain for cross-church operators. Feature
// override writes are only ever granted here.
const PlatformDomain = "*"

type Service interface {
	// Authorize answers whether the actor may perform action on object
	// within the given church. Actor is "user:<id>" or "system".
	Authorize(ctx context.Context, actor string, churchID string, object string, action string) error
	// AuthorizePlatform answers whether the actor holds the platform role.
	AuthorizePlatform(ctx context.Context, actor string, object string, action string) error
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB, cfg config.Config) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := seedPlatformAdmins(enforcer, cfg.PlatformAdminUserIDs); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor string, churchID string, object string, action string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrInvalidActor
	}
	churchID = strings.TrimSpace(churchID)
	if churchID == "" {
		return ErrInvalidChurch
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject, roleName, err := s.resolveActor(ctx, actor, churchID)
	if err != nil {
		return err
	}

	domain := fmt.Sprintf("church:%s", churchID)
	if err := s.ensureGrouping(subject, roleName, domain); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, domain, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("subject", subject),
			zap.String("church_id", churchID),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) AuthorizePlatform(ctx context.Context, actor string, object string, action string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrInvalidActor
	}
	if actor == "system" {
		return nil
	}
	if !strings.HasPrefix(actor, "user:") {
		return ErrInvalidActor
	}

	allowed, err := s.enforcer.Enforce(actor, PlatformDomain, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("platform authorization denied",
			zap.String("subject", actor),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) resolveActor(ctx context.Context, actor string, churchID string) (string, string, error) {
	if actor == "system" {
		return actor, "role:system", nil
	}
	if strings.HasPrefix(actor, "user:") {
		userIDRaw := strings.TrimPrefix(actor, "user:")
		userID, err := snowflake.ParseString(userIDRaw)
		if err != nil || userID == 0 {
			return "", "", ErrInvalidActor
		}
		parsedChurchID, err := snowflake.ParseString(churchID)
		if err != nil || parsedChurchID == 0 {
			return "", "", ErrInvalidChurch
		}
		role, err := s.roleForUser(ctx, parsedChurchID, userID)
		if err != nil {
			return "", "", err
		}
		return actor, fmt.Sprintf("role:%s", strings.ToLower(role)), nil
	}
	return "", "", ErrInvalidActor
}

func (s *ServiceImpl) roleForUser(ctx context.Context, churchID snowflake.ID, userID snowflake.ID) (string, error) {
	var row struct {
		Role string `gorm:"column:role"`
	}
	if err := s.db.WithContext(ctx).Raw(
		`SELECT role
		 FROM church_members
		 WHERE church_id = ? AND user_id = ?
		 LIMIT 1`,
		churchID,
		userID,
	).Scan(&row).Error; err != nil {
		return "", err
	}

	role := strings.TrimSpace(row.Role)
	if role == "" {
		return "", ErrForbidden
	}
	return role, nil
}

func (s *ServiceImpl) ensureGrouping(subject string, roleName string, domain string) error {
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject, "", domain)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 {
			continue
		}
		if rule[1] != roleName {
			params := make([]interface{}, 0, len(rule))
			for _, value := range rule {
				params = append(params, value)
			}
			_, _ = s.enforcer.RemoveGroupingPolicy(params...)
		}
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, roleName, domain)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, roleName, domain)
	return err
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Member permissions (read-only surfaces)
		{"role:member", ObjectPerson, ActionView},
		{"role:member", ObjectGroup, ActionView},
		{"role:member", ObjectEvent, ActionView},
		{"role:member", ObjectAnnouncement, ActionView},

		// Admin permissions: day-to-day ministry operations
		{"role:admin", ObjectPerson, ActionView},
		{"role:admin", ObjectPerson, ActionCreate},
		{"role:admin", ObjectPerson, ActionUpdate},
		{"role:admin", ObjectPerson, ActionDelete},
		{"role:admin", ObjectGroup, ActionView},
		{"role:admin", ObjectGroup, ActionCreate},
		{"role:admin", ObjectGroup, ActionUpdate},
		{"role:admin", ObjectGroup, ActionDelete},
		{"role:admin", ObjectEvent, ActionView},
		{"role:admin", ObjectEvent, ActionCreate},
		{"role:admin", ObjectEvent, ActionUpdate},
		{"role:admin", ObjectEvent, ActionDelete},
		{"role:admin", ObjectCheckin, ActionCheckinOperate},
		{"role:admin", ObjectAnnouncement, ActionView},
		{"role:admin", ObjectAnnouncement, ActionCreate},
		{"role:admin", ObjectAnnouncement, ActionAnnouncementSend},
		{"role:admin", ObjectChurchSettings, ActionView},
		{"role:admin", ObjectSubscription, ActionView},

		// Owner permissions: everything admin has plus plan and settings
		{"role:owner", ObjectPerson, ActionView},
		{"role:owner", ObjectPerson, ActionCreate},
		{"role:owner", ObjectPerson, ActionUpdate},
		{"role:owner", ObjectPerson, ActionDelete},
		{"role:owner", ObjectGroup, ActionView},
		{"role:owner", ObjectGroup, ActionCreate},
		{"role:owner", ObjectGroup, ActionUpdate},
		{"role:owner", ObjectGroup, ActionDelete},
		{"role:owner", ObjectEvent, ActionView},
		{"role:owner", ObjectEvent, ActionCreate},
		{"role:owner", ObjectEvent, ActionUpdate},
		{"role:owner", ObjectEvent, ActionDelete},
		{"role:owner", ObjectCheckin, ActionCheckinOperate},
		{"role:owner", ObjectAnnouncement, ActionView},
		{"role:owner", ObjectAnnouncement, ActionCreate},
		{"role:owner", ObjectAnnouncement, ActionAnnouncementSend},
		{"role:owner", ObjectChurchSettings, ActionView},
		{"role:owner", ObjectChurchSettings, ActionSettingsUpdate},
		{"role:owner", ObjectSubscription, ActionView},
		{"role:owner", ObjectSubscription, ActionSubscriptionChange},
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], PlatformDomain, p[1], p[2]); err != nil {
			return err
		}
	}

	// Platform role: cross-church support and override control
	platform := [][]string{
		{ObjectOverride, ActionView},
		{ObjectOverride, ActionOverrideWrite},
		{ObjectChurchSettings, ActionView},
		{ObjectSubscription, ActionView},
	}
	for _, p := range platform {
		if _, err := enforcer.AddPolicy("role:platform", PlatformDomain, p[0], p[1]); err != nil {
			return err
		}
	}

	// System actor can do everything the platform role can.
	if _, err := enforcer.AddGroupingPolicy("system", "role:platform", PlatformDomain); err != nil {
		return err
	}
	if _, err := enforcer.AddGroupingPolicy("role:system", "role:platform", PlatformDomain); err != nil {
		return err
	}
	return nil
}

func seedPlatformAdmins(enforcer *casbin.SyncedEnforcer, userIDs []string) error {
	for _, raw := range userIDs {
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil || id == 0 {
			continue
		}
		if _, err := enforcer.AddGroupingPolicy(fmt.Sprintf("user:%s", id.String()), "role:platform", PlatformDomain); err != nil {
			return err
		}
	}
	return nil
}
