package types

type CheckoutStatus string

const (
	CheckoutStatusPending   CheckoutStatus = "pending"
	CheckoutStatusPaid      CheckoutStatus = "paid"
	CheckoutStatusCancelled CheckoutStatus = "cancelled"
	CheckoutStatusExpired   CheckoutStatus = "expired"
)

// Terminal reports whether no further transition may leave this status.
func (s CheckoutStatus) Terminal() bool {
	return s == CheckoutStatusPaid || s == CheckoutStatusCancelled || s == CheckoutStatusExpired
}

// Provenance records whether a checkout session was created against the real
// gateway, synthesized locally, or produced by test tooling.
type Provenance string

const (
	ProvenanceReal      Provenance = "real"
	ProvenanceSimulated Provenance = "simulated"
	ProvenanceTest      Provenance = "test"
)

// GatewayMode selects the gateway client strategy at startup.
type GatewayMode string

const (
	GatewayModeReal       GatewayMode = "real"
	GatewayModeSimulation GatewayMode = "simulation"
	GatewayModeHybrid     GatewayMode = "hybrid"
)

// Webhook event names sent by the payment provider.
type WebhookEventType string

const (
	WebhookEventOrderPaid      WebhookEventType = "order.paid"
	WebhookEventOrderCancelled WebhookEventType = "order.cancelled"
	WebhookEventOrderExpired   WebhookEventType = "order.expired"
)

// TargetStatus maps a provider event to the session status it drives.
// The second return is false for unrecognized events.
func (e WebhookEventType) TargetStatus() (CheckoutStatus, bool) {
	switch e {
	case WebhookEventOrderPaid:
		return CheckoutStatusPaid, true
	case WebhookEventOrderCancelled:
		return CheckoutStatusCancelled, true
	case WebhookEventOrderExpired:
		return CheckoutStatusExpired, true
	default:
		return "", false
	}
}
