package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olharfest/inscricao-backend/pkg/types"
)

func TestCheckoutSession_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   types.CheckoutStatus
		to     types.CheckoutStatus
		want   bool
	}{
		{name: "pending to paid", from: types.CheckoutStatusPending, to: types.CheckoutStatusPaid, want: true},
		{name: "pending to cancelled", from: types.CheckoutStatusPending, to: types.CheckoutStatusCancelled, want: true},
		{name: "pending to expired", from: types.CheckoutStatusPending, to: types.CheckoutStatusExpired, want: true},
		{name: "pending to pending", from: types.CheckoutStatusPending, to: types.CheckoutStatusPending, want: false},
		{name: "paid to cancelled", from: types.CheckoutStatusPaid, to: types.CheckoutStatusCancelled, want: false},
		{name: "paid to paid", from: types.CheckoutStatusPaid, to: types.CheckoutStatusPaid, want: false},
		{name: "cancelled to paid", from: types.CheckoutStatusCancelled, to: types.CheckoutStatusPaid, want: false},
		{name: "expired to paid", from: types.CheckoutStatusExpired, to: types.CheckoutStatusPaid, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &CheckoutSession{Status: tt.from}
			assert.Equal(t, tt.want, s.CanTransitionTo(tt.to))
		})
	}

	var nilSession *CheckoutSession
	assert.False(t, nilSession.CanTransitionTo(types.CheckoutStatusPaid))
}

func TestWebhookEventType_TargetStatus(t *testing.T) {
	for evt, want := range map[types.WebhookEventType]types.CheckoutStatus{
		types.WebhookEventOrderPaid:      types.CheckoutStatusPaid,
		types.WebhookEventOrderCancelled: types.CheckoutStatusCancelled,
		types.WebhookEventOrderExpired:   types.CheckoutStatusExpired,
	} {
		got, ok := evt.TargetStatus()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := types.WebhookEventType("order.unknown").TargetStatus()
	assert.False(t, ok)
}
