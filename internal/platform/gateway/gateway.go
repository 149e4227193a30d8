package gateway

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/olharfest/inscricao-backend/pkg/config"
	"github.com/olharfest/inscricao-backend/pkg/types"
)

// ErrUpstream marks gateway transport failures and non-2xx responses.
// Handlers match it with errors.Is.
var ErrUpstream = errors.New("payment gateway upstream failure")

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Amount      int64  `json:"amount"`
}

// OrderRequest is the outbound order creation payload. ExternalID is the
// caller's idempotency token; the gateway dedupes on it.
type OrderRequest struct {
	ExternalID  string     `json:"external_id"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Description string     `json:"description"`
	Customer    Customer   `json:"customer"`
	Items       []LineItem `json:"items"`
	RedirectURL string     `json:"redirect_url"`
	WebhookURL  string     `json:"webhook_url"`
}

// Order is the gateway's view of a created order, tagged with the domain and
// provenance actually used so the checkout session can record them.
type Order struct {
	ID          string           `json:"id"`
	CheckoutURL string           `json:"checkout_url"`
	Provenance  types.Provenance `json:"provenance"`
	Domain      string           `json:"domain"`
}

// Client creates orders against the payment provider. Implementations are the
// closed strategy set real / simulated / hybrid, selected once at startup.
type Client interface {
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)
}

// New selects the client strategy from configuration.
func New(cfg *config.Config, log *zap.SugaredLogger) (Client, error) {
	switch cfg.Gateway.Mode {
	case types.GatewayModeReal:
		return newRealClient(&cfg.Gateway, log), nil
	case types.GatewayModeSimulation:
		return newSimulatedClient(&cfg.Gateway), nil
	case types.GatewayModeHybrid:
		return &hybridClient{
			real: newRealClient(&cfg.Gateway, log),
			sim:  newSimulatedClient(&cfg.Gateway),
			log:  log,
		}, nil
	default:
		return nil, errors.New("unknown gateway mode: " + string(cfg.Gateway.Mode))
	}
}
