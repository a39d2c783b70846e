package churchctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// ChurchContextKey is the request context key for the active church ID.
type ChurchContextKey struct{}

// WithChurchID stores the church ID in the context.
func WithChurchID(ctx context.Context, churchID int64) context.Context {
	return context.WithValue(ctx, ChurchContextKey{}, churchID)
}

// ChurchIDFromContext returns the church ID from context, if set.
func ChurchIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	value := ctx.Value(ChurchContextKey{})
	if value == nil {
		return 0, false
	}
	switch typed := value.(type) {
	case int64:
		return snowflake.ID(typed), true
	case snowflake.ID:
		return typed, true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}
