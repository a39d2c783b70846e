package domain

import (
	"context"
	"errors"
)

// Service reads the feature catalog. Catalog reads degrade to an empty
// result when the backing store is unreachable; the entitlement resolver
// treats the returned key set as authoritative, so a degraded catalog
// means nothing resolves to enabled.
type Service interface {
	ListFeatures(ctx context.Context) []Feature
	Describe(ctx context.Context, key string) (*Feature, error)
}

var (
	ErrInvalidKey = errors.New("invalid_feature_key")
	ErrNotFound   = errors.New("feature_not_found")
)
