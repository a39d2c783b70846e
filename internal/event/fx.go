package event

import (
	"github.com/steeplehq/steeple/internal/event/repository"
	"github.com/steeplehq/steeple/internal/event/service"
	"go.uber.org/fx"
)

var Module = fx.Module("event.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
