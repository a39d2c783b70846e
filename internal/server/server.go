package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/steeplehq/steeple/internal/announcement"
	announcementdomain "github.com/steeplehq/steeple/internal/announcement/domain"
	"github.com/steeplehq/steeple/internal/auth"
	authdomain "github.com/steeplehq/steeple/internal/auth/domain"
	"github.com/steeplehq/steeple/internal/auth/session"
	"github.com/steeplehq/steeple/internal/authorization"
	"github.com/steeplehq/steeple/internal/checkin"
	checkindomain "github.com/steeplehq/steeple/internal/checkin/domain"
	"github.com/steeplehq/steeple/internal/church"
	churchdomain "github.com/steeplehq/steeple/internal/church/domain"
	"github.com/steeplehq/steeple/internal/config"
	"github.com/steeplehq/steeple/internal/entitlement"
	"github.com/steeplehq/steeple/internal/event"
	eventdomain "github.com/steeplehq/steeple/internal/event/domain"
	"github.com/steeplehq/steeple/internal/feature"
	featuredomain "github.com/steeplehq/steeple/internal/feature/domain"
	"github.com/steeplehq/steeple/internal/group"
	groupdomain "github.com/steeplehq/steeple/internal/group/domain"
	"github.com/steeplehq/steeple/internal/observability"
	obslogger "github.com/steeplehq/steeple/internal/observability/logger"
	obsmetrics "github.com/steeplehq/steeple/internal/observability/metrics"
	obstracing "github.com/steeplehq/steeple/internal/observability/tracing"
	"github.com/steeplehq/steeple/internal/override"
	overridedomain "github.com/steeplehq/steeple/internal/override/domain"
	"github.com/steeplehq/steeple/internal/people"
	peopledomain "github.com/steeplehq/steeple/internal/people/domain"
	"github.com/steeplehq/steeple/internal/plan"
	plandomain "github.com/steeplehq/steeple/internal/plan/domain"
	"github.com/steeplehq/steeple/internal/ratelimit"
	"github.com/steeplehq/steeple/internal/signup"
	signupdomain "github.com/steeplehq/steeple/internal/signup/domain"
	"github.com/steeplehq/steeple/internal/subscription"
	subscriptiondomain "github.com/steeplehq/steeple/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	auth.Module,
	church.Module,
	feature.Module,
	plan.Module,
	subscription.Module,
	override.Module,
	entitlement.Module,
	people.Module,
	group.Module,
	event.Module,
	checkin.Module,
	announcement.Module,
	ratelimit.Module,
	signup.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, hosts config.HostConfig, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())
	r.Use(HostRouterMiddleware(hosts, log.Named("hostrouter")))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, hosts config.HostConfig, log *zap.Logger) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics, hosts, log)
}

func run(lc fx.Lifecycle, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	sessions        *session.Manager
	authsvc         authdomain.Service
	churchsvc       churchdomain.Service
	signupsvc       signupdomain.Service
	subscriptionSvc subscriptiondomain.Service
	featureSvc      featuredomain.Service
	planRepo        plandomain.Repository
	overrideSvc     overridedomain.Service
	entitlements    entitlement.Resolver
	authzSvc        authorization.Service
	planConfig      *config.PlanConfigHolder
	httpMetrics     *obsmetrics.HTTPMetrics
	limiter         *ratelimit.RequestLimiter

	peopleSvc       peopledomain.Service
	groupSvc        groupdomain.Service
	eventSvc        eventdomain.Service
	checkinSvc      checkindomain.Service
	announcementSvc announcementdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	Sessions        *session.Manager
	Authsvc         authdomain.Service
	Churchsvc       churchdomain.Service
	Signupsvc       signupdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	FeatureSvc      featuredomain.Service
	PlanRepo        plandomain.Repository
	OverrideSvc     overridedomain.Service
	Entitlements    entitlement.Resolver
	AuthzSvc        authorization.Service
	PlanConfig      *config.PlanConfigHolder
	HTTPMetrics     *obsmetrics.HTTPMetrics
	Limiter         *ratelimit.RequestLimiter `optional:"true"`

	PeopleSvc       peopledomain.Service
	GroupSvc        groupdomain.Service
	EventSvc        eventdomain.Service
	CheckinSvc      checkindomain.Service
	AnnouncementSvc announcementdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("server"),
		sessions:        p.Sessions,
		authsvc:         p.Authsvc,
		churchsvc:       p.Churchsvc,
		signupsvc:       p.Signupsvc,
		subscriptionSvc: p.SubscriptionSvc,
		featureSvc:      p.FeatureSvc,
		planRepo:        p.PlanRepo,
		overrideSvc:     p.OverrideSvc,
		entitlements:    p.Entitlements,
		authzSvc:        p.AuthzSvc,
		planConfig:      p.PlanConfig,
		httpMetrics:     p.HTTPMetrics,
		limiter:         p.Limiter,
		peopleSvc:       p.PeopleSvc,
		groupSvc:        p.GroupSvc,
		eventSvc:        p.EventSvc,
		checkinSvc:      p.CheckinSvc,
		announcementSvc: p.AnnouncementSvc,
	}

	s.registerPublicRoutes()
	s.registerAuthRoutes()
	s.registerAdminRoutes()
	s.registerPlatformRoutes()

	return s
}

func (s *Server) registerPublicRoutes() {
	s.engine.GET(loginPath, s.LoginPage)
	s.engine.POST("/signup", s.Signup)
}

func (s *Server) registerAuthRoutes() {
	grp := s.engine.Group("/auth")
	grp.POST("/login", s.Login)
	grp.POST("/logout", s.Logout)

	authed := grp.Group("", s.APIAuthRequired())
	authed.GET("/me", s.Me)
	authed.POST("/password", s.ChangePassword)
	authed.GET("/churches", s.ListMyChurches)
	authed.POST("/churches/:id/use", s.UseChurch)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.WebAuthRequired(), s.ChurchContext())

	// Entitlement-independent surfaces: the upgrade page must render for
	// churches whose plan lacks the very feature being asked about.
	admin.GET("/upgrade", s.UpgradePage)
	admin.GET("/features", s.AdminFeatures)

	admin.GET("/settings", s.GetChurchSettings)
	admin.PATCH("/settings", s.RequirePermission(authorization.ObjectChurchSettings, authorization.ActionSettingsUpdate), s.UpdateChurchSettings)

	admin.GET("/subscription", s.CurrentSubscription)
	admin.POST("/subscription/change", s.RequirePermission(authorization.ObjectSubscription, authorization.ActionSubscriptionChange), s.ChangePlan)

	peopleGrp := admin.Group("/people", s.RequireFeature("core.people"))
	peopleGrp.GET("", s.ListPeople)
	peopleGrp.POST("", s.RequirePermission(authorization.ObjectPerson, authorization.ActionCreate), s.CreatePerson)
	peopleGrp.GET("/:id", s.GetPerson)
	peopleGrp.PATCH("/:id", s.RequirePermission(authorization.ObjectPerson, authorization.ActionUpdate), s.UpdatePerson)
	peopleGrp.DELETE("/:id", s.RequirePermission(authorization.ObjectPerson, authorization.ActionDelete), s.DeletePerson)

	households := admin.Group("/households", s.RequireFeature("core.people"))
	households.GET("", s.ListHouseholds)
	households.POST("", s.RequirePermission(authorization.ObjectPerson, authorization.ActionCreate), s.CreateHousehold)

	groups := admin.Group("/groups", s.RequireFeature("engage.groups"))
	groups.GET("", s.ListGroups)
	groups.POST("", s.RequirePermission(authorization.ObjectGroup, authorization.ActionCreate), s.CreateGroup)
	groups.GET("/:id", s.GetGroup)
	groups.PATCH("/:id", s.RequirePermission(authorization.ObjectGroup, authorization.ActionUpdate), s.UpdateGroup)
	groups.DELETE("/:id", s.RequirePermission(authorization.ObjectGroup, authorization.ActionDelete), s.DeleteGroup)
	groups.GET("/:id/members", s.ListGroupMembers)
	groups.POST("/:id/members", s.RequirePermission(authorization.ObjectGroup, authorization.ActionUpdate), s.AddGroupMember)
	groups.DELETE("/:id/members/:personID", s.RequirePermission(authorization.ObjectGroup, authorization.ActionUpdate), s.RemoveGroupMember)

	events := admin.Group("/events", s.RequireFeature("engage.events"))
	events.GET("", s.ListEvents)
	events.POST("", s.RequirePermission(authorization.ObjectEvent, authorization.ActionCreate), s.CreateEvent)
	events.GET("/:id", s.GetEvent)
	events.PATCH("/:id", s.RequirePermission(authorization.ObjectEvent, authorization.ActionUpdate), s.UpdateEvent)
	events.DELETE("/:id", s.RequirePermission(authorization.ObjectEvent, authorization.ActionDelete), s.DeleteEvent)
	admin.GET("/events.ics", s.RequireFeature("engage.events"), s.ExportEventsICS)

	checkins := admin.Group("/checkin", s.RequireFeature("kids.checkin"))
	checkins.GET("/sessions", s.ListCheckinSessions)
	checkins.POST("/sessions", s.RequirePermission(authorization.ObjectCheckin, authorization.ActionCheckinOperate), s.OpenCheckinSession)
	checkins.POST("/sessions/:id/close", s.RequirePermission(authorization.ObjectCheckin, authorization.ActionCheckinOperate), s.CloseCheckinSession)
	checkins.GET("/sessions/:id", s.ListCheckins)
	checkins.POST("/sessions/:id/checkins", s.RequirePermission(authorization.ObjectCheckin, authorization.ActionCheckinOperate), s.CheckIn)
	checkins.POST("/sessions/:id/checkout", s.RequirePermission(authorization.ObjectCheckin, authorization.ActionCheckinOperate), s.CheckOut)

	announcements := admin.Group("/announcements", s.RequireFeature("reach.announcements"))
	announcements.GET("", s.ListAnnouncements)
	announcements.POST("", s.RequirePermission(authorization.ObjectAnnouncement, authorization.ActionCreate), s.CreateAnnouncement)
	announcements.GET("/:id", s.GetAnnouncement)
	announcements.PATCH("/:id", s.RequirePermission(authorization.ObjectAnnouncement, authorization.ActionUpdate), s.UpdateAnnouncement)
	announcements.POST("/:id/publish", s.RequirePermission(authorization.ObjectAnnouncement, authorization.ActionAnnouncementSend), s.PublishAnnouncement)
	announcements.DELETE("/:id", s.RequirePermission(authorization.ObjectAnnouncement, authorization.ActionDelete), s.DeleteAnnouncement)
}

func (s *Server) registerPlatformRoutes() {
	platform := s.engine.Group("/platform", s.APIAuthRequired())

	overrides := platform.Group("/churches/:id/overrides")
	overrides.GET("", s.RequirePlatformPermission(authorization.ObjectOverride, authorization.ActionView), s.ListOverrides)
	overrides.PUT("/:key", s.RequirePlatformPermission(authorization.ObjectOverride, authorization.ActionOverrideWrite), s.SetOverride)
	overrides.DELETE("/:key", s.RequirePlatformPermission(authorization.ObjectOverride, authorization.ActionOverrideWrite), s.ClearOverride)
}
