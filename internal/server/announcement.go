package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	announcementdomain "github.com/steeplehq/steeple/internal/announcement/domain"
	"github.com/steeplehq/steeple/pkg/db/pagination"
)

func (s *Server) ListAnnouncements(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.announcementSvc.List(c.Request.Context(), announcementdomain.ListRequest{
		PublishedOnly: parseBoolQuery(c, "published"),
		Page:          page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"announcements": resp.Items,
		"page_info":     resp.PageInfo,
	})
}

func (s *Server) CreateAnnouncement(c *gin.Context) {
	var req announcementdomain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	announcement, err := s.announcementSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, announcement)
}

func (s *Server) GetAnnouncement(c *gin.Context) {
	announcement, err := s.announcementSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, announcement)
}

func (s *Server) UpdateAnnouncement(c *gin.Context) {
	var req announcementdomain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	announcement, err := s.announcementSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, announcement)
}

func (s *Server) PublishAnnouncement(c *gin.Context) {
	announcement, err := s.announcementSvc.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, announcement)
}

func (s *Server) DeleteAnnouncement(c *gin.Context) {
	if err := s.announcementSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
