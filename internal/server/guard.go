package server

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const upgradePath = "/admin/upgrade"

// RequireFeature gates a route group on the resolved entitlement for one
// feature key. Entitlements are re-resolved on every request rather than
// cached, so a plan change or operator override takes effect on the very
// next page load. Denials redirect to the upgrade page carrying the
// feature key; a resolution failure counts as a denial, never as access.
func (s *Server) RequireFeature(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, churchID, ok := identityFromContext(c)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		features, err := s.entitlements.Resolve(c.Request.Context(), churchID)
		if err != nil {
			s.log.Warn("entitlement resolution failed, denying",
				zap.String("church_id", churchID.String()),
				zap.String("feature", key),
				zap.Error(err),
			)
			s.redirectUpgrade(c, key)
			return
		}

		if !features.Has(key) {
			s.httpMetrics.RecordFeatureDenial(key)
			s.redirectUpgrade(c, key)
			return
		}

		c.Next()
	}
}

func (s *Server) redirectUpgrade(c *gin.Context, key string) {
	q := url.Values{}
	q.Set("feature", key)
	c.Redirect(http.StatusFound, upgradePath+"?"+q.Encode())
	c.Abort()
}
