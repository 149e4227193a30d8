package gateway

import (
	"context"
	"fmt"

	"github.com/olharfest/inscricao-backend/pkg/config"
	"github.com/olharfest/inscricao-backend/pkg/tool"
	"github.com/olharfest/inscricao-backend/pkg/types"
)

// simulatedClient never contacts the network. It synthesizes an order id and
// a checkout URL so the rest of the flow (session persistence, webhook
// transitions driven by test tooling) behaves exactly as in real mode.
type simulatedClient struct {
	redirectURL string
}

func newSimulatedClient(cfg *config.GatewayConfig) *simulatedClient {
	return &simulatedClient{redirectURL: cfg.RedirectURL}
}

func (c *simulatedClient) CreateOrder(_ context.Context, req *OrderRequest) (*Order, error) {
	id := "sim_" + tool.GenerateUUIDV7()
	return &Order{
		ID:          id,
		CheckoutURL: fmt.Sprintf("%s?order=%s&simulated=true", c.redirectURL, id),
		Provenance:  types.ProvenanceSimulated,
		Domain:      "",
	}, nil
}
