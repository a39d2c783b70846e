package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	peopledomain "github.com/steeplehq/steeple/internal/people/domain"
)

func (s *Server) ListPeople(c *gin.Context) {
	people, err := s.peopleSvc.ListPeople(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": people})
}

func (s *Server) CreatePerson(c *gin.Context) {
	var req peopledomain.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	person, err := s.peopleSvc.CreatePerson(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

func (s *Server) GetPerson(c *gin.Context) {
	person, err := s.peopleSvc.GetPerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func (s *Server) UpdatePerson(c *gin.Context) {
	var req peopledomain.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	person, err := s.peopleSvc.UpdatePerson(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func (s *Server) DeletePerson(c *gin.Context) {
	if err := s.peopleSvc.DeletePerson(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createHouseholdRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateHousehold(c *gin.Context) {
	var req createHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	household, err := s.peopleSvc.CreateHousehold(c.Request.Context(), req.Name)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, household)
}

func (s *Server) ListHouseholds(c *gin.Context) {
	households, err := s.peopleSvc.ListHouseholds(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"households": households})
}
