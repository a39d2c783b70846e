package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req GroupRequest) (*GroupResponse, error)
	Get(ctx context.Context, id string) (*GroupResponse, error)
	List(ctx context.Context) ([]GroupResponse, error)
	Update(ctx context.Context, id string, req GroupRequest) (*GroupResponse, error)
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, groupID, personID, role string) error
	ListMembers(ctx context.Context, groupID string) ([]MemberResponse, error)
	RemoveMember(ctx context.Context, groupID, personID string) error
}

type GroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MeetingDay  string   `json:"meeting_day"`
	Tags        []string `json:"tags"`
}

type GroupResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	MeetingDay  string    `json:"meeting_day,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type MemberResponse struct {
	PersonID string    `json:"person_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

var (
	ErrInvalidChurch  = errors.New("invalid church")
	ErrInvalidID      = errors.New("invalid group id")
	ErrInvalidName    = errors.New("invalid group name")
	ErrInvalidRole    = errors.New("invalid member role")
	ErrNotFound       = errors.New("group not found")
	ErrAlreadyMember  = errors.New("person already in group")
	ErrPersonNotFound = errors.New("person not found")
)
