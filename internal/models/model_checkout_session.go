package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/olharfest/inscricao-backend/pkg/types"
)

// CheckoutSession is the durable record of one payment attempt. It is the
// source of truth the webhook ingestor updates later; the Domain and
// Provenance columns record which gateway (if any) actually served it.
type CheckoutSession struct {
	ID string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	// ExternalID is the caller-chosen idempotency token; retrying the same
	// logical submission with the same token returns the stored session.
	ExternalID     string `gorm:"column:external_id;type:varchar(128);not null;uniqueIndex" json:"external_id"`
	GatewayOrderID string `gorm:"column:gateway_order_id;type:varchar(128);not null;index" json:"gateway_order_id"`

	UserID    string `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	UserEmail string `gorm:"column:user_email;type:varchar(255);not null;index" json:"user_email"`

	Amount   int64  `gorm:"column:amount;type:bigint;not null" json:"amount"`
	Currency string `gorm:"column:currency;type:varchar(16);not null" json:"currency"`

	Status      types.CheckoutStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	CheckoutURL string               `gorm:"column:checkout_url;type:varchar(512)" json:"checkout_url"`
	Provenance  types.Provenance     `gorm:"column:provenance;type:varchar(32);not null" json:"provenance"`
	Domain      string               `gorm:"column:domain;type:varchar(255)" json:"domain"`

	// Payload snapshots the order request sent (or synthesized) at creation.
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`

	PaidAt    *time.Time `gorm:"column:paid_at;default:null" json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (CheckoutSession) TableName() string {
	return "checkout_session"
}

// CanTransitionTo reports whether the forward state machine permits moving
// from the session's current status to target. Only pending sessions move.
func (s *CheckoutSession) CanTransitionTo(target types.CheckoutStatus) bool {
	if s == nil || s.Status != types.CheckoutStatusPending {
		return false
	}
	return target.Terminal()
}
