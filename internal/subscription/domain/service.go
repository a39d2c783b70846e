package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	plandomain "github.com/steeplehq/steeple/internal/plan/domain"
)

type ChangePlanRequest struct {
	PlanCode string `json:"plan_code"`
}

type SubscriptionResponse struct {
	ID       string             `json:"id"`
	ChurchID string             `json:"church_id"`
	PlanCode string             `json:"plan_code"`
	Status   SubscriptionStatus `json:"status"`
	StartAt  time.Time          `json:"start_at"`
	EndedAt  *time.Time         `json:"ended_at,omitempty"`
}

type Service interface {
	// ResolvePlan returns the plan of the church's single active
	// subscription, with feature membership preloaded. It returns
	// (nil, nil) when no active subscription exists AND when the backing
	// store is unreachable: an availability failure must degrade to
	// "no plan-granted features", never to an error that could be
	// interpreted as access.
	ResolvePlan(ctx context.Context, churchID snowflake.ID) (*plandomain.Plan, error)

	// CreateInitial inserts the first active subscription for a church,
	// used by signup provisioning inside the caller's transaction scope.
	CreateInitial(ctx context.Context, churchID snowflake.ID, planCode string) (*Subscription, error)

	// ChangePlan supersedes the active subscription with a new one on the
	// requested plan, in one transaction.
	ChangePlan(ctx context.Context, req ChangePlanRequest) (*SubscriptionResponse, error)

	// Current returns the active subscription for the church in context.
	Current(ctx context.Context) (*SubscriptionResponse, error)
}

var (
	ErrInvalidChurch          = errors.New("invalid_church")
	ErrInvalidPlan            = errors.New("invalid_plan")
	ErrPlanUnchanged          = errors.New("plan_unchanged")
	ErrSubscriptionNotFound   = errors.New("subscription_not_found")
	ErrSubscriptionConflict   = errors.New("subscription_conflict")
	ErrSubscriptionPersistErr = errors.New("subscription_persist_failed")
)
