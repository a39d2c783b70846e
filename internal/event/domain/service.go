package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req EventRequest) (*EventResponse, error)
	Get(ctx context.Context, id string) (*EventResponse, error)
	List(ctx context.Context, from, to *time.Time) ([]EventResponse, error)
	Update(ctx context.Context, id string, req EventRequest) (*EventResponse, error)
	Delete(ctx context.Context, id string) error

	// ExportICS renders the church calendar as an iCalendar document.
	ExportICS(ctx context.Context, from, to *time.Time) ([]byte, error)
}

type EventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	AllDay      bool       `json:"all_day"`
	Tags        []string   `json:"tags"`
}

type EventResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	AllDay      bool       `json:"all_day"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

var (
	ErrInvalidChurch = errors.New("invalid church")
	ErrInvalidID     = errors.New("invalid event id")
	ErrInvalidTitle  = errors.New("invalid event title")
	ErrInvalidTime   = errors.New("invalid event time range")
	ErrNotFound      = errors.New("event not found")
)
