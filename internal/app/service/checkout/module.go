package checkout

import (
	"go.uber.org/fx"

	"github.com/olharfest/inscricao-backend/internal/platform/gateway"
)

// Module exposes the checkout orchestrator and the gateway client via Fx.
var Module = fx.Options(
	fx.Provide(gateway.New),
	fx.Provide(NewService),
)
