package announcement

import (
	"github.com/steeplehq/steeple/internal/announcement/repository"
	"github.com/steeplehq/steeple/internal/announcement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("announcement.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
