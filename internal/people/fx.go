package people

import (
	"github.com/steeplehq/steeple/internal/people/repository"
	"github.com/steeplehq/steeple/internal/people/service"
	"go.uber.org/fx"
)

var Module = fx.Module("people.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
