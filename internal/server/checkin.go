package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type openCheckinSessionRequest struct {
	Name    string `json:"name"`
	EventID string `json:"event_id"`
}

func (s *Server) OpenCheckinSession(c *gin.Context) {
	var req openCheckinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	session, err := s.checkinSvc.OpenSession(c.Request.Context(), req.Name, req.EventID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (s *Server) ListCheckinSessions(c *gin.Context) {
	sessions, err := s.checkinSvc.ListOpenSessions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *Server) CloseCheckinSession(c *gin.Context) {
	if err := s.checkinSvc.CloseSession(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type checkInRequest struct {
	PersonID string `json:"person_id"`
}

func (s *Server) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	checkin, err := s.checkinSvc.CheckIn(c.Request.Context(), c.Param("id"), req.PersonID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, checkin)
}

type checkOutRequest struct {
	PersonID     string `json:"person_id"`
	SecurityCode string `json:"security_code"`
}

func (s *Server) CheckOut(c *gin.Context) {
	var req checkOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.checkinSvc.CheckOut(c.Request.Context(), c.Param("id"), req.PersonID, req.SecurityCode); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListCheckins(c *gin.Context) {
	checkins, err := s.checkinSvc.ListCheckins(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkins": checkins})
}
