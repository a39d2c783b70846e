package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/steeplehq/steeple/internal/auth/domain"
)

type Service interface {
	Signup(ctx context.Context, req Request) (*Result, error)
}

type Request struct {
	ChurchName  string `json:"church_name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	UserAgent   string `json:"-"`
	IPAddress   string `json:"-"`
}

type Result struct {
	Session   *authdomain.SessionView
	RawToken  string
	ExpiresAt time.Time
	ChurchID  string
	UserID    string
}

// Provisioner finishes setup for a freshly created church.
type Provisioner interface {
	Provision(ctx context.Context, churchID snowflake.ID) error
}

var ErrInvalidRequest = errors.New("invalid signup request")
