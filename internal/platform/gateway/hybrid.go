package gateway

import (
	"context"

	"go.uber.org/zap"
)

// hybridClient tries the real gateway and falls back to the simulated path on
// any transport, timeout or non-2xx failure instead of failing the caller.
type hybridClient struct {
	real *realClient
	sim  *simulatedClient
	log  *zap.SugaredLogger
}

func (c *hybridClient) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	order, err := c.real.CreateOrder(ctx, req)
	if err == nil {
		return order, nil
	}
	c.log.Warnw("gateway_hybrid_fallback", "external_id", req.ExternalID, "error", err.Error())
	return c.sim.CreateOrder(ctx, req)
}
