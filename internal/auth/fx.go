package auth

import (
	"github.com/steeplehq/steeple/internal/auth/repository"
	"github.com/steeplehq/steeple/internal/auth/service"
	"github.com/steeplehq/steeple/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	session.Module,
	fx.Provide(
		repository.New,
		service.New,
	),
)
