package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/steeplehq/steeple/internal/auth/domain"
	"github.com/steeplehq/steeple/internal/entitlement"
	"go.uber.org/zap"
)

type resolverStub struct {
	fm    entitlement.FeatureMap
	err   error
	calls int
}

func (r *resolverStub) Resolve(ctx context.Context, churchID snowflake.ID) (entitlement.FeatureMap, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.fm, nil
}

// fakeIdentity stands in for WebAuthRequired plus ChurchContext so the
// gate can be exercised without a database.
func fakeIdentity(userID, churchID snowflake.ID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeySession, &authdomain.Session{ID: userID + 1, UserID: userID})
		c.Set(ctxKeyUserID, userID)
		c.Set(ctxKeyChurchID, churchID)
		c.Next()
	}
}

func newGuardEngine(t *testing.T, resolver *resolverStub, identity gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		log:          zap.NewNop(),
		entitlements: resolver,
	}

	r := gin.New()
	grp := r.Group("/admin")
	if identity != nil {
		grp.Use(identity)
	}
	grp.GET("/groups", s.RequireFeature("engage.groups"), func(c *gin.Context) {
		c.String(http.StatusOK, "groups")
	})
	return r
}

func serveGuard(r *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireFeatureAllowsEnabled(t *testing.T) {
	resolver := &resolverStub{fm: entitlement.FeatureMap{
		"engage.groups": {Enabled: true},
	}}
	r := newGuardEngine(t, resolver, fakeIdentity(10, 20))

	w := serveGuard(r, "/admin/groups")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected one resolution per request, got %d", resolver.calls)
	}
}

func TestRequireFeatureRedirectsToUpgrade(t *testing.T) {
	resolver := &resolverStub{fm: entitlement.FeatureMap{
		"core.people":   {Enabled: true},
		"engage.groups": {Enabled: false},
	}}
	r := newGuardEngine(t, resolver, fakeIdentity(10, 20))

	w := serveGuard(r, "/admin/groups")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	want := "/admin/upgrade?feature=engage.groups"
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("location = %q, want %q", got, want)
	}
}

// An override-revoked feature denies exactly like a plan gap.
func TestRequireFeatureHonorsRevokingOverride(t *testing.T) {
	resolver := &resolverStub{fm: entitlement.FeatureMap{
		"engage.groups": {Enabled: false, Overridden: true},
	}}
	r := newGuardEngine(t, resolver, fakeIdentity(10, 20))

	w := serveGuard(r, "/admin/groups")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
}

func TestRequireFeatureWithoutIdentityRedirectsToLogin(t *testing.T) {
	resolver := &resolverStub{fm: entitlement.FeatureMap{
		"engage.groups": {Enabled: true},
	}}
	r := newGuardEngine(t, resolver, nil)

	w := serveGuard(r, "/admin/groups")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != loginPath {
		t.Fatalf("location = %q, want %q", got, loginPath)
	}
	if resolver.calls != 0 {
		t.Fatal("resolver consulted without an identity")
	}
}

// Resolution failure denies rather than serving the page.
func TestRequireFeatureFailsClosedOnResolverError(t *testing.T) {
	resolver := &resolverStub{err: errors.New("boom")}
	r := newGuardEngine(t, resolver, fakeIdentity(10, 20))

	w := serveGuard(r, "/admin/groups")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	want := "/admin/upgrade?feature=engage.groups"
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("location = %q, want %q", got, want)
	}
}
