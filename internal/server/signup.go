package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	signupdomain "github.com/steeplehq/steeple/internal/signup/domain"
)

type signupRequest struct {
	ChurchName  string `json:"church_name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type signupResponse struct {
	ChurchID string `json:"church_id"`
	UserID   string `json:"user_id"`
}

// Signup provisions a church, its owner account and a starter
// subscription in one call, and leaves the caller signed in.
func (s *Server) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.signupsvc.Signup(c.Request.Context(), signupdomain.Request{
		ChurchName:  req.ChurchName,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
		UserAgent:   c.Request.UserAgent(),
		IPAddress:   clientIP(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.JSON(http.StatusCreated, signupResponse{
		ChurchID: result.ChurchID,
		UserID:   result.UserID,
	})
}
