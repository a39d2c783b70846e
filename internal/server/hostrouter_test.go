package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/steeplehq/steeple/internal/config"
	"go.uber.org/zap"
)

func testHosts(env string) config.HostConfig {
	return config.HostConfig{
		CanonicalHost:  "my.steeple.church",
		APIHost:        "api.steeple.church",
		MarketingHosts: []string{"steeple.church", "www.steeple.church"},
		AliasHosts:     []string{"app.steeple.church"},
		Environment:    env,
	}
}

func newHostRouterEngine(t *testing.T, env string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(HostRouterMiddleware(testHosts(env), zap.NewNop()))
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/pricing", func(c *gin.Context) { c.String(http.StatusOK, "pricing") })
	r.GET("/admin/people", func(c *gin.Context) { c.String(http.StatusOK, "people") })
	return r
}

func serveHost(r *gin.Engine, host, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Host = host
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHostRouterCanonicalHostPasses(t *testing.T) {
	r := newHostRouterEngine(t, "production")

	w := serveHost(r, "my.steeple.church", "/admin/people")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHostRouterAliasRedirectsPermanently(t *testing.T) {
	r := newHostRouterEngine(t, "production")

	w := serveHost(r, "app.steeple.church", "/admin/people?tab=recent&page=2")
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", w.Code)
	}
	want := "http://my.steeple.church/admin/people?tab=recent&page=2"
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("location = %q, want %q", got, want)
	}
}

func TestHostRouterAliasStripsPort(t *testing.T) {
	r := newHostRouterEngine(t, "development")

	w := serveHost(r, "APP.steeple.church:8080", "/admin/people")
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", w.Code)
	}
}

func TestHostRouterMarketingHostAppPathRedirectsToLogin(t *testing.T) {
	r := newHostRouterEngine(t, "production")

	w := serveHost(r, "steeple.church", "/admin/people")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	want := "http://my.steeple.church/login"
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("location = %q, want %q", got, want)
	}
}

func TestHostRouterMarketingHostOwnPagesPass(t *testing.T) {
	r := newHostRouterEngine(t, "production")

	w := serveHost(r, "www.steeple.church", "/pricing")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHostRouterUnknownHostRejectedInProduction(t *testing.T) {
	r := newHostRouterEngine(t, "production")

	w := serveHost(r, "evil.example.com", "/admin/people")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHostRouterUnknownHostServedOutsideProduction(t *testing.T) {
	r := newHostRouterEngine(t, "development")

	w := serveHost(r, "localhost", "/admin/people")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHostRouterBypassesProbesOnAnyHost(t *testing.T) {
	r := newHostRouterEngine(t, "production")

	w := serveHost(r, "evil.example.com", "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
