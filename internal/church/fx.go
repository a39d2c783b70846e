package church

import (
	"github.com/steeplehq/steeple/internal/church/repository"
	"github.com/steeplehq/steeple/internal/church/service"
	"go.uber.org/fx"
)

var Module = fx.Module("church.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
