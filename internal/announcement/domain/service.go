package domain

import (
	"context"
	"errors"
	"time"

	"github.com/steeplehq/steeple/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req Request) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Update(ctx context.Context, id string, req Request) (*Response, error)
	Publish(ctx context.Context, id string) (*Response, error)
	Delete(ctx context.Context, id string) error
}

// ListRequest pages through the announcement feed newest-first.
type ListRequest struct {
	PublishedOnly bool
	Page          pagination.Pagination
}

type ListResponse struct {
	Items    []Response           `json:"items"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

type Request struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Response struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body,omitempty"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

var (
	ErrInvalidChurch    = errors.New("invalid church")
	ErrInvalidID        = errors.New("invalid announcement id")
	ErrInvalidTitle     = errors.New("invalid announcement title")
	ErrNotFound         = errors.New("announcement not found")
	ErrAlreadyPublished = errors.New("announcement already published")
	ErrInvalidPageToken = errors.New("invalid page token")
)
