package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/olharfest/inscricao-backend/internal/app/service/audit"
	"github.com/olharfest/inscricao-backend/internal/models"
	"github.com/olharfest/inscricao-backend/pkg/config"
	"github.com/olharfest/inscricao-backend/pkg/logctx"
	"github.com/olharfest/inscricao-backend/pkg/types"
)

var (
	// ErrMalformedPayload maps to a 4xx so the provider stops retrying.
	ErrMalformedPayload = errors.New("malformed webhook payload")
	ErrBadSignature     = errors.New("invalid webhook signature")
)

// Event is the provider callback body.
type Event struct {
	Event    string `json:"event"`
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Customer struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"customer"`
	Payment struct {
		Method        string `json:"method"`
		Status        string `json:"status"`
		PaidAt        string `json:"paidAt"`
		TransactionID string `json:"transactionId"`
	} `json:"payment"`
	Metadata struct {
		ExternalID string `json:"externalId"`
	} `json:"metadata"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"
)

type Result struct {
	Outcome   Outcome              `json:"outcome"`
	SessionID string               `json:"session_id,omitempty"`
	Status    types.CheckoutStatus `json:"status,omitempty"`
}

// Ingestor advances checkout sessions from asynchronous provider callbacks.
type Ingestor interface {
	Process(ctx context.Context, raw []byte, signature string) (*Result, error)
}

type Service struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	secret   string
	auditSvc *audit.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, cfg *config.Config, auditSvc *audit.Service) Ingestor {
	return &Service{db: db, log: log, secret: cfg.Gateway.WebhookSecret, auditSvc: auditSvc}
}

// Process validates and applies one provider callback. Everything that is not
// a malformed body or a bad signature acknowledges, including duplicates and
// unknown order ids, so the provider never retries pointlessly. The status
// transition is a single conditional update: two concurrent deliveries for
// the same session cannot both observe pending.
func (s *Service) Process(ctx context.Context, raw []byte, signature string) (*Result, error) {
	if s.secret != "" && !s.verifySignature(raw, signature) {
		s.auditSvc.Log(ctx, types.LogLevelSecurity, "webhook_bad_signature", map[string]any{
			"body_len": len(raw),
		}, audit.CtxContext(ctx, "handleWebhook", ""))
		return nil, ErrBadSignature
	}

	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	target, recognized := types.WebhookEventType(evt.Event).TargetStatus()
	if !recognized {
		logctx.FromCtx(ctx, s.log).Warnw("webhook_event_unrecognized", "event", evt.Event, "order_id", evt.ID)
		return &Result{Outcome: OutcomeIgnored}, nil
	}

	session, err := s.resolveSession(ctx, &evt)
	if err != nil {
		return nil, err
	}
	if session == nil {
		s.auditSvc.Log(ctx, types.LogLevelBusiness, "webhook_session_not_found", map[string]any{
			"event":       evt.Event,
			"order_id":    evt.ID,
			"external_id": evt.Metadata.ExternalID,
		}, audit.CtxContext(ctx, "handleWebhook", ""))
		return &Result{Outcome: OutcomeIgnored}, nil
	}

	updates := map[string]any{"status": target}
	if target == types.CheckoutStatusPaid {
		updates["paid_at"] = time.Now()
	}

	res := s.db.WithContext(ctx).Model(&models.CheckoutSession{}).
		Where("id = ? AND status = ?", session.ID, types.CheckoutStatusPending).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to apply webhook transition: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Already terminal: idempotent duplicate delivery.
		logctx.FromCtx(ctx, s.log).Infow("webhook_duplicate_delivery",
			"session_id", session.ID, "event", evt.Event, "current_status", session.Status)
		return &Result{Outcome: OutcomeDuplicate, SessionID: session.ID, Status: session.Status}, nil
	}

	// Payment success does not auto-approve the inscription; approval stays a
	// deliberate admin act.
	s.auditSvc.Log(ctx, types.LogLevelBusiness, "webhook_transition_applied", map[string]any{
		"session_id": session.ID,
		"event":      evt.Event,
		"status":     target,
	}, audit.CtxContext(ctx, "handleWebhook", session.UserID))

	return &Result{Outcome: OutcomeApplied, SessionID: session.ID, Status: target}, nil
}

func (s *Service) verifySignature(raw []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write(raw)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// resolveSession finds the target session by gateway order id, falling back
// to the external id carried in metadata.
func (s *Service) resolveSession(ctx context.Context, evt *Event) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	if evt.ID != "" {
		err := s.db.WithContext(ctx).Where("gateway_order_id = ?", evt.ID).First(&session).Error
		if err == nil {
			return &session, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve session by order id: %w", err)
		}
	}
	if evt.Metadata.ExternalID != "" {
		err := s.db.WithContext(ctx).Where("external_id = ?", evt.Metadata.ExternalID).First(&session).Error
		if err == nil {
			return &session, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve session by external id: %w", err)
		}
	}
	return nil, nil
}
