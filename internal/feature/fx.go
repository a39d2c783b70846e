package feature

import (
	"github.com/steeplehq/steeple/internal/feature/repository"
	"github.com/steeplehq/steeple/internal/feature/service"
	"go.uber.org/fx"
)

var Module = fx.Module("feature.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
