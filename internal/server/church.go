package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	churchdomain "github.com/steeplehq/steeple/internal/church/domain"
)

func (s *Server) GetChurchSettings(c *gin.Context) {
	_, churchID, ok := identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	church, err := s.churchsvc.GetByID(c.Request.Context(), churchID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, church)
}

func (s *Server) UpdateChurchSettings(c *gin.Context) {
	var req churchdomain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	church, err := s.churchsvc.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, church)
}
