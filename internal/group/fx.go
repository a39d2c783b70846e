package group

import (
	"github.com/steeplehq/steeple/internal/group/repository"
	"github.com/steeplehq/steeple/internal/group/service"
	"go.uber.org/fx"
)

var Module = fx.Module("group.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
