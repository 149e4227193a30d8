package inscription

import "go.uber.org/fx"

// Module exposes the inscription registry via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
