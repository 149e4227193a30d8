package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/olharfest/inscricao-backend/pkg/config"
	"github.com/olharfest/inscricao-backend/pkg/types"
)

const defaultTimeout = 10 * time.Second

// realClient issues a single order-creation request to the configured gateway
// domain. It never retries; a failed call is terminal for the request and the
// caller may resubmit with the same external id.
type realClient struct {
	domain string
	apiKey string
	http   *http.Client
	log    *zap.SugaredLogger
}

func newRealClient(cfg *config.GatewayConfig, log *zap.SugaredLogger) *realClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &realClient{
		domain: cfg.Domain,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: timeout},
		log:    log,
	}
}

type createOrderResponse struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
}

func (c *realClient) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.domain+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Errorw("gateway_order_create_failed", "status", resp.StatusCode, "body", string(snippet))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	var out createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUpstream, err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: response missing order id", ErrUpstream)
	}

	return &Order{
		ID:          out.ID,
		CheckoutURL: out.CheckoutURL,
		Provenance:  types.ProvenanceReal,
		Domain:      c.domain,
	}, nil
}
