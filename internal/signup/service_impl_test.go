package signup

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/steeplehq/steeple/internal/auth/domain"
	authrepository "github.com/steeplehq/steeple/internal/auth/repository"
	authservice "github.com/steeplehq/steeple/internal/auth/service"
	churchdomain "github.com/steeplehq/steeple/internal/church/domain"
	churchrepository "github.com/steeplehq/steeple/internal/church/repository"
	churchservice "github.com/steeplehq/steeple/internal/church/service"
	"github.com/steeplehq/steeple/internal/churchctx"
	plandomain "github.com/steeplehq/steeple/internal/plan/domain"
	planrepository "github.com/steeplehq/steeple/internal/plan/repository"
	"github.com/steeplehq/steeple/internal/signup/domain"
	subscriptiondomain "github.com/steeplehq/steeple/internal/subscription/domain"
	subscriptionrepository "github.com/steeplehq/steeple/internal/subscription/repository"
	subscriptionservice "github.com/steeplehq/steeple/internal/subscription/service"
	"github.com/steeplehq/steeple/pkg/db"
	"go.uber.org/zap"
)

type signupFixture struct {
	svc             domain.Service
	churchsvc       churchdomain.Service
	authsvc         authdomain.Service
	subscriptionSvc subscriptiondomain.Service
}

func setupSignup(t *testing.T) *signupFixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(
		&authdomain.User{}, &authdomain.Session{},
		&churchdomain.Church{}, &churchdomain.ChurchMember{},
		&plandomain.Plan{}, &plandomain.PlanFeature{},
		&subscriptiondomain.Subscription{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := conn.Create(&plandomain.Plan{Code: StarterPlanCode, Name: "Starter"}).Error; err != nil {
		t.Fatalf("seed starter plan: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	log := zap.NewNop()

	userRepo, sessionRepo := authrepository.New(conn)
	authsvc := authservice.New(log, userRepo, sessionRepo, node)

	churchsvc := churchservice.New(churchservice.Params{
		DB:    conn,
		Log:   log,
		GenID: node,
		Repo:  churchrepository.Provide(),
	})

	subscriptionSvc := subscriptionservice.New(subscriptionservice.Params{
		DB:       conn,
		Log:      log,
		GenID:    node,
		Repo:     subscriptionrepository.Provide(),
		PlanRepo: planrepository.Provide(conn),
	})

	svc := NewService(authsvc, churchsvc, NewSubscriptionProvisioner(subscriptionSvc))
	return &signupFixture{
		svc:             svc,
		churchsvc:       churchsvc,
		authsvc:         authsvc,
		subscriptionSvc: subscriptionSvc,
	}
}

func TestSignupProvisionsChurchOwnerAndStarterPlan(t *testing.T) {
	f := setupSignup(t)
	ctx := context.Background()

	result, err := f.svc.Signup(ctx, domain.Request{
		ChurchName:  "New Life Community",
		DisplayName: "Sam",
		Email:       "sam@example.com",
		Password:    "a long enough password",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("signup did not return a live session token")
	}

	churchID, err := snowflake.ParseString(result.ChurchID)
	if err != nil {
		t.Fatalf("parse church id: %v", err)
	}
	userID, err := snowflake.ParseString(result.UserID)
	if err != nil {
		t.Fatalf("parse user id: %v", err)
	}

	member, err := f.churchsvc.Membership(ctx, churchID, userID)
	if err != nil {
		t.Fatalf("membership: %v", err)
	}
	if member == nil || member.Role != churchdomain.RoleOwner {
		t.Fatalf("member = %+v, want owner", member)
	}

	scoped := churchctx.WithChurchID(ctx, churchID.Int64())
	sub, err := f.subscriptionSvc.Current(scoped)
	if err != nil {
		t.Fatalf("current subscription: %v", err)
	}
	if sub.PlanCode != StarterPlanCode {
		t.Fatalf("plan = %s, want %s", sub.PlanCode, StarterPlanCode)
	}

	// The returned token authenticates immediately.
	sess, err := f.authsvc.Authenticate(ctx, result.RawToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sess.UserID != userID {
		t.Fatalf("session user = %s, want %s", sess.UserID, userID)
	}
}

func TestSignupRejectsMissingFields(t *testing.T) {
	f := setupSignup(t)

	cases := []domain.Request{
		{DisplayName: "Sam", Email: "sam@example.com", Password: "long enough pass"},
		{ChurchName: "New Life", DisplayName: "Sam", Password: "long enough pass"},
		{ChurchName: "New Life", DisplayName: "Sam", Email: "sam@example.com"},
	}
	for i, req := range cases {
		if _, err := f.svc.Signup(context.Background(), req); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("case %d: expected ErrInvalidRequest, got %v", i, err)
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := setupSignup(t)
	ctx := context.Background()

	req := domain.Request{
		ChurchName:  "First Church",
		DisplayName: "Sam",
		Email:       "sam@example.com",
		Password:    "a long enough password",
	}
	if _, err := f.svc.Signup(ctx, req); err != nil {
		t.Fatalf("signup: %v", err)
	}

	req.ChurchName = "Second Church"
	if _, err := f.svc.Signup(ctx, req); !errors.Is(err, authdomain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}
