package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateChurchRequest struct {
	Name         string `json:"name"`
	SupportEmail string `json:"support_email"`
	TimezoneName string `json:"timezone_name"`
	CampusMode   string `json:"campus_mode"`
}

type UpdateSettingsRequest struct {
	SupportEmail *string        `json:"support_email,omitempty"`
	TimezoneName *string        `json:"timezone_name,omitempty"`
	CampusMode   *string        `json:"campus_mode,omitempty"`
	Settings     map[string]any `json:"settings,omitempty"`
}

type ChurchResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	SupportEmail string     `json:"support_email,omitempty"`
	CampusMode   CampusMode `json:"campus_mode"`
	TimezoneName string     `json:"timezone_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Service interface {
	Create(ctx context.Context, ownerUserID snowflake.ID, req CreateChurchRequest) (*ChurchResponse, error)
	GetByID(ctx context.Context, id string) (*ChurchResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*ChurchResponse, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]ChurchResponse, error)
	// Membership returns the caller's membership in the church, or nil
	// when the user does not belong to it.
	Membership(ctx context.Context, churchID, userID snowflake.ID) (*ChurchMember, error)
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidCampusMode = errors.New("invalid_campus_mode")
	ErrInvalidChurch     = errors.New("invalid_church")
	ErrNotFound          = errors.New("church_not_found")
)
