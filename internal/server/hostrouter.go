package server

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/steeplehq/steeple/internal/config"
	"go.uber.org/zap"
)

// bypassPrefixes are served regardless of which host the request hit:
// probes and shared static assets must not bounce through redirects.
var bypassPrefixes = []string{"/assets/", "/static/", "/health", "/metrics"}

// appPrefixes are the path spaces that belong to the application host.
// Reaching them through a marketing host is a sign the user followed a
// stale link, so they get a login redirect rather than a marketing 404.
var appPrefixes = []string{"/admin", "/auth", "/signup", "/platform", "/login"}

// HostRouterMiddleware classifies the request host before any route
// matching. Alias hosts 301 to the canonical host with path and query
// intact so bookmarks survive a domain migration; unknown hosts are
// rejected in production and let through everywhere else so local and
// staging setups work with arbitrary hostnames.
func HostRouterMiddleware(hosts config.HostConfig, log *zap.Logger) gin.HandlerFunc {
	aliasSet := hostSet(hosts.AliasHosts)
	marketingSet := hostSet(hosts.MarketingHosts)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range bypassPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		host := normalizeHost(c.Request.Host)
		switch {
		case host == "" || host == hosts.CanonicalHost || host == hosts.APIHost:
			c.Next()
		case aliasSet[host]:
			target := requestScheme(c) + "://" + hosts.CanonicalHost + c.Request.URL.RequestURI()
			c.Redirect(http.StatusMovedPermanently, target)
			c.Abort()
		case marketingSet[host]:
			if isAppPath(path) {
				target := requestScheme(c) + "://" + hosts.CanonicalHost + loginPath
				c.Redirect(http.StatusFound, target)
				c.Abort()
				return
			}
			c.Next()
		default:
			if hosts.IsProduction() {
				c.AbortWithStatus(http.StatusNotFound)
				return
			}
			log.Debug("serving unknown host", zap.String("host", host))
			c.Next()
		}
	}
}

func isAppPath(path string) bool {
	for _, prefix := range appPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// normalizeHost lowercases the host header and strips any port so the
// classification table only needs bare hostnames.
func normalizeHost(raw string) string {
	host := strings.ToLower(strings.TrimSpace(raw))
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func requestScheme(c *gin.Context) string {
	if c.Request.TLS != nil {
		return "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
		return "https"
	}
	return "http"
}

func hostSet(hosts []string) map[string]bool {
	set := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		set[h] = true
	}
	return set
}
