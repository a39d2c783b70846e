package override

import (
	"github.com/steeplehq/steeple/internal/override/repository"
	"github.com/steeplehq/steeple/internal/override/service"
	"go.uber.org/fx"
)

var Module = fx.Module("override.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
