package checkin

import (
	"github.com/steeplehq/steeple/internal/checkin/repository"
	"github.com/steeplehq/steeple/internal/checkin/service"
	"go.uber.org/fx"
)

var Module = fx.Module("checkin.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
