package subscription

import (
	"github.com/steeplehq/steeple/internal/subscription/repository"
	"github.com/steeplehq/steeple/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
