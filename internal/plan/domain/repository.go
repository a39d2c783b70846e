package domain

import (
	"context"
	"errors"
)

type Repository interface {
	// FindByCode loads a plan with its feature membership preloaded, or
	// nil when no such plan exists.
	FindByCode(ctx context.Context, code string) (*Plan, error)
	List(ctx context.Context) ([]Plan, error)
	// ListIncluding lists the plan codes whose membership contains the
	// feature key, for the upgrade page.
	ListIncluding(ctx context.Context, featureKey string) ([]string, error)
}

var ErrNotFound = errors.New("plan_not_found")
