package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	groupdomain "github.com/steeplehq/steeple/internal/group/domain"
)

func (s *Server) ListGroups(c *gin.Context) {
	groups, err := s.groupSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (s *Server) CreateGroup(c *gin.Context) {
	var req groupdomain.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	group, err := s.groupSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (s *Server) GetGroup(c *gin.Context) {
	group, err := s.groupSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (s *Server) UpdateGroup(c *gin.Context) {
	var req groupdomain.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	group, err := s.groupSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (s *Server) DeleteGroup(c *gin.Context) {
	if err := s.groupSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addGroupMemberRequest struct {
	PersonID string `json:"person_id"`
	Role     string `json:"role"`
}

func (s *Server) AddGroupMember(c *gin.Context) {
	var req addGroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.groupSvc.AddMember(c.Request.Context(), c.Param("id"), req.PersonID, req.Role); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListGroupMembers(c *gin.Context) {
	members, err := s.groupSvc.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *Server) RemoveGroupMember(c *gin.Context) {
	if err := s.groupSvc.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("personID")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
