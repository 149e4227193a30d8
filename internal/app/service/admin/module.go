package admin

import "go.uber.org/fx"

// Module exposes the admin validator via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
