package server

import (
	"net/http"
	"sort"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	overridedomain "github.com/steeplehq/steeple/internal/override/domain"
)

type featureRow struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
	Overridden  bool   `json:"overridden"`
}

// AdminFeatures shows the full catalog with the church's resolved state
// per key, the view an admin uses to understand what their plan covers.
func (s *Server) AdminFeatures(c *gin.Context) {
	_, churchID, ok := identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	catalog := s.featureSvc.ListFeatures(c.Request.Context())
	resolved, err := s.entitlements.Resolve(c.Request.Context(), churchID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows := make([]featureRow, 0, len(catalog))
	for _, f := range catalog {
		state := resolved[f.Key]
		rows = append(rows, featureRow{
			Key:         f.Key,
			Description: f.Description,
			Enabled:     state.Enabled,
			Overridden:  state.Overridden,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	c.JSON(http.StatusOK, gin.H{"features": rows})
}

type upgradePlanRow struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	Tagline         string `json:"tagline,omitempty"`
	Position        int    `json:"position"`
	IncludesFeature bool   `json:"includes_feature"`
}

// UpgradePage is where feature denials land. It names the feature that
// triggered the redirect and which plans would unlock it, so it stays
// reachable whatever the church's current plan is.
func (s *Server) UpgradePage(c *gin.Context) {
	key := c.Query("feature")

	var (
		description string
		planCodes   []string
	)
	if key != "" {
		if f, err := s.featureSvc.Describe(c.Request.Context(), key); err == nil && f != nil {
			description = f.Description
		}
		codes, err := s.planRepo.ListIncluding(c.Request.Context(), key)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		planCodes = codes
	}

	including := make(map[string]bool, len(planCodes))
	for _, code := range planCodes {
		including[code] = true
	}

	display := s.planConfig.Get()
	plans := make([]upgradePlanRow, 0, len(display.Plans))
	for _, p := range display.Plans {
		plans = append(plans, upgradePlanRow{
			Code:            p.Code,
			Name:            p.Name,
			Tagline:         p.Tagline,
			Position:        p.Position,
			IncludesFeature: including[p.Code],
		})
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Position < plans[j].Position })

	c.JSON(http.StatusOK, gin.H{
		"feature":     key,
		"description": description,
		"plans":       plans,
		"upgrade_url": display.UpgradeURL,
	})
}

// ListOverrides returns the operator view of a church's overrides.
func (s *Server) ListOverrides(c *gin.Context) {
	churchID, err := parseChurchParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	overrides := s.overrideSvc.ListOverrides(c.Request.Context(), churchID)
	c.JSON(http.StatusOK, gin.H{
		"church_id": churchID.String(),
		"overrides": overrides,
	})
}

type setOverrideRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) SetOverride(c *gin.Context) {
	var req setOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.overrideSvc.Set(c.Request.Context(), overridedomain.SetRequest{
		ChurchID:   c.Param("id"),
		FeatureKey: c.Param("key"),
		Enabled:    req.Enabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func parseChurchParam(c *gin.Context) (snowflake.ID, error) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		return 0, newValidationError("church_id", "invalid_church", "invalid value")
	}
	return id, nil
}

func (s *Server) ClearOverride(c *gin.Context) {
	if err := s.overrideSvc.Clear(c.Request.Context(), c.Param("id"), c.Param("key")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
