package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type SetRequest struct {
	ChurchID   string `json:"church_id"`
	FeatureKey string `json:"feature_key"`
	Enabled    bool   `json:"enabled"`
}

type OverrideView struct {
	FeatureKey string `json:"feature_key"`
	Enabled    bool   `json:"enabled"`
}

// Service reads and mutates per-church overrides. Reads fail open to an
// empty set (store unavailability means "no overrides", never an error);
// writes are platform-operator actions and do surface errors.
type Service interface {
	ListOverrides(ctx context.Context, churchID snowflake.ID) map[string]bool
	Set(ctx context.Context, req SetRequest) (*OverrideView, error)
	Clear(ctx context.Context, churchID string, featureKey string) error
}

var (
	ErrInvalidChurch     = errors.New("invalid_church")
	ErrInvalidFeatureKey = errors.New("invalid_feature_key")
	ErrUnknownFeatureKey = errors.New("unknown_feature_key")
)
