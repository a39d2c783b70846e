package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/steeplehq/steeple/internal/auth/domain"
	"go.uber.org/zap"
)

const loginPage = `<!doctype html>
<html>
<head><title>Sign in</title></head>
<body>
<form method="post" action="/auth/login">
<input type="email" name="email" placeholder="Email" required>
<input type="password" name="password" placeholder="Password" required>
<button type="submit">Sign in</button>
</form>
</body>
</html>
`

func (s *Server) LoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPage))
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	UserID    string `json:"user_id"`
	ExpiresAt string `json:"expires_at"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ip := clientIP(c)
	allowed, err := s.limiter.AllowLogin(c.Request.Context(), ip, req.Email)
	if err != nil {
		// Availability of the limiter must not lock users out.
		s.log.Warn("login rate limiter unavailable", zap.Error(err))
	} else if !allowed {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: ip,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.JSON(http.StatusOK, loginResponse{
		UserID:    result.UserID.String(),
		ExpiresAt: result.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
			s.log.Debug("logout", zap.Error(err))
		}
	}
	s.sessions.Clear(c)
	c.Status(http.StatusNoContent)
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func (s *Server) Me(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	user, err := s.authsvc.GetUser(c.Request.Context(), sess.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (s *Server) ChangePassword(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authsvc.ChangePassword(c.Request.Context(), sess.UserID.String(), req.NewPassword); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListMyChurches(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	churches, err := s.churchsvc.ListByUser(c.Request.Context(), sess.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"churches": churches})
}

// UseChurch pins the session to one of the caller's churches. Membership
// is checked here so a session can never be pinned to a church the user
// does not belong to.
func (s *Server) UseChurch(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	churchID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	member, err := s.churchsvc.Membership(c.Request.Context(), churchID, sess.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if member == nil {
		AbortWithError(c, ErrForbidden)
		return
	}

	raw := churchID.Int64()
	if err := s.authsvc.UpdateActiveChurch(c.Request.Context(), sess.ID, &raw); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
