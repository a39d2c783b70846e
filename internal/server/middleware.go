package server

import (
	"net/http"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/steeplehq/steeple/internal/auth/domain"
	"github.com/steeplehq/steeple/internal/churchctx"
	"go.uber.org/zap"
)

const (
	ctxKeySession    = "session"
	ctxKeyUserID     = "user_id"
	ctxKeyChurchID   = "church_id"
	ctxKeyMemberRole = "member_role"

	loginPath = "/login"
)

// WebAuthRequired resolves the session cookie into an authenticated user.
// Browser traffic without a valid session is redirected to the login page;
// the cookie is cleared so a stale token does not loop.
func (s *Server) WebAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := s.authenticate(c)
		if !ok {
			s.sessions.Clear(c)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(ctxKeySession, sess)
		c.Set(ctxKeyUserID, sess.UserID)
		c.Next()
	}
}

// APIAuthRequired is the JSON twin of WebAuthRequired for operator
// endpoints, answering 401 instead of redirecting.
func (s *Server) APIAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := s.authenticate(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(ctxKeySession, sess)
		c.Set(ctxKeyUserID, sess.UserID)
		c.Next()
	}
}

func (s *Server) authenticate(c *gin.Context) (*authdomain.Session, bool) {
	token, ok := s.sessions.ReadToken(c)
	if !ok {
		return nil, false
	}
	sess, err := s.authsvc.Authenticate(c.Request.Context(), token)
	if err != nil || sess == nil {
		return nil, false
	}
	return sess, true
}

// ChurchContext pins the request to the session's active church and
// verifies the user still belongs to it. Every church-scoped read and
// write downstream goes through the request context set here; a user
// with no membership anywhere is sent back to login.
func (s *Server) ChurchContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFromContext(c)
		if sess == nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		churchID, ok := s.activeChurch(c, sess)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		member, err := s.churchsvc.Membership(c.Request.Context(), churchID, sess.UserID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if member == nil {
			s.log.Debug("session active church without membership",
				zap.String("user_id", sess.UserID.String()),
				zap.String("church_id", churchID.String()),
			)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		ctx := churchctx.WithChurchID(c.Request.Context(), churchID.Int64())
		c.Request = c.Request.WithContext(ctx)
		c.Set(ctxKeyChurchID, churchID)
		c.Set(ctxKeyMemberRole, member.Role)
		c.Next()
	}
}

// activeChurch returns the church the session is pinned to. A fresh
// session with no pin adopts the user's sole membership; anything
// ambiguous falls back to login.
func (s *Server) activeChurch(c *gin.Context, sess *authdomain.Session) (snowflake.ID, bool) {
	if sess.ActiveChurchID != nil {
		return snowflake.ID(*sess.ActiveChurchID), true
	}

	churches, err := s.churchsvc.ListByUser(c.Request.Context(), sess.UserID)
	if err != nil || len(churches) != 1 {
		return 0, false
	}

	id, err := snowflake.ParseString(churches[0].ID)
	if err != nil {
		return 0, false
	}
	raw := id.Int64()
	if err := s.authsvc.UpdateActiveChurch(c.Request.Context(), sess.ID, &raw); err != nil {
		s.log.Warn("pin active church", zap.Error(err))
	}
	return id, true
}

// RequirePermission enforces a casbin check for the current user inside
// the active church domain.
func (s *Server) RequirePermission(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, churchID, ok := identityFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		actor := "user:" + userID.String()
		if err := s.authzSvc.Authorize(c.Request.Context(), actor, churchID.String(), object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequirePlatformPermission enforces a check in the platform wildcard
// domain; only operators granted the platform role pass.
func (s *Server) RequirePlatformPermission(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFromContext(c)
		if sess == nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		actor := "user:" + sess.UserID.String()
		if err := s.authzSvc.AuthorizePlatform(c.Request.Context(), actor, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func sessionFromContext(c *gin.Context) *authdomain.Session {
	value, ok := c.Get(ctxKeySession)
	if !ok {
		return nil
	}
	sess, _ := value.(*authdomain.Session)
	return sess
}

func identityFromContext(c *gin.Context) (snowflake.ID, snowflake.ID, bool) {
	sess := sessionFromContext(c)
	if sess == nil {
		return 0, 0, false
	}
	value, ok := c.Get(ctxKeyChurchID)
	if !ok {
		return 0, 0, false
	}
	churchID, ok := value.(snowflake.ID)
	if !ok {
		return 0, 0, false
	}
	return sess.UserID, churchID, true
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		return "-"
	}
	return ip
}

func parseBoolQuery(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}
