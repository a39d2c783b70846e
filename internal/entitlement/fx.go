package entitlement

import "go.uber.org/fx"

var Module = fx.Module("entitlement.resolver",
	fx.Provide(New),
)
