package signup

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/signup/domain"
	subscriptiondomain "github.com/steeplehq/steeple/internal/subscription/domain"
)

// StarterPlanCode is the plan every new church starts on.
const StarterPlanCode = "starter"

// SubscriptionProvisioner opens the initial starter subscription for a new
// church. Every church always has exactly one active subscription, so
// signup is not complete until this has run.
type SubscriptionProvisioner struct {
	subscriptionSvc subscriptiondomain.Service
}

func NewSubscriptionProvisioner(subscriptionSvc subscriptiondomain.Service) domain.Provisioner {
	return &SubscriptionProvisioner{subscriptionSvc: subscriptionSvc}
}

func (p *SubscriptionProvisioner) Provision(ctx context.Context, churchID snowflake.ID) error {
	return p.subscriptionSvc.CreateInitial(ctx, churchID, StarterPlanCode)
}
