package domain

import "context"

type Repository interface {
	List(ctx context.Context) ([]Feature, error)
	FindByKey(ctx context.Context, key string) (*Feature, error)
}
