package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	OpenSession(ctx context.Context, name string, eventID string) (*SessionResponse, error)
	ListOpenSessions(ctx context.Context) ([]SessionResponse, error)
	CloseSession(ctx context.Context, sessionID string) error

	// CheckIn records a child into a session and returns the security
	// code for the pickup label.
	CheckIn(ctx context.Context, sessionID, personID string) (*CheckinResponse, error)
	// CheckOut releases a child; the presented code must match.
	CheckOut(ctx context.Context, sessionID, personID, securityCode string) error
	ListCheckins(ctx context.Context, sessionID string) ([]CheckinResponse, error)
}

type SessionResponse struct {
	ID       string     `json:"id"`
	EventID  string     `json:"event_id,omitempty"`
	Name     string     `json:"name"`
	OpenedAt time.Time  `json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`
}

type CheckinResponse struct {
	ID           string     `json:"id"`
	SessionID    string     `json:"session_id"`
	PersonID     string     `json:"person_id"`
	SecurityCode string     `json:"security_code"`
	CheckedInAt  time.Time  `json:"checked_in_at"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
}

var (
	ErrInvalidChurch      = errors.New("invalid church")
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidName        = errors.New("invalid session name")
	ErrSessionNotFound    = errors.New("checkin session not found")
	ErrSessionClosed      = errors.New("checkin session closed")
	ErrAlreadyCheckedIn   = errors.New("person already checked in")
	ErrCheckinNotFound    = errors.New("checkin not found")
	ErrSecurityCodeWrong  = errors.New("security code mismatch")
	ErrRateLimited        = errors.New("checkin rate limited")
	ErrPersonNotFound     = errors.New("person not found")
)
